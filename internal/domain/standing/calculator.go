package standing

import (
	"cmp"
	"slices"
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/league"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/team"
)

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// Compute ranks the teams of category using every match and player given.
//
// Teams outside category are skipped, as are repeated team ids after the
// first, so the result may hold fewer rows than teams. Matches and players
// that reference no selected team are ignored, as are matches a team plays
// against itself.
// Rows are ordered by points, goal difference and goals for, all descending;
// rows equal on all three are ordered by team id ascending. Positions run
// 1..n without shared ranks. Inputs are not modified.
func Compute(category league.Category, teams []team.Team, matches []match.Match, players []player.Player) []Standing {
	out := make([]Standing, 0, len(teams))
	index := make(map[string]int, len(teams))
	for _, t := range teams {
		if t.Category != category {
			continue
		}
		if _, dup := index[t.ID]; dup {
			continue
		}
		index[t.ID] = len(out)
		out = append(out, Standing{
			TeamID:   t.ID,
			TeamName: t.Name,
			Manager:  t.Manager,
			Category: t.Category,
		})
	}
	if len(out) == 0 {
		return out
	}

	for _, m := range matches {
		if m.HomeTeamID == m.AwayTeamID {
			continue
		}
		for _, side := range [2]string{m.HomeTeamID, m.AwayTeamID} {
			i, ok := index[side]
			if !ok {
				continue
			}
			scored, conceded, _ := m.GoalsFor(side)
			out[i].record(scored, conceded)
		}
	}

	for _, p := range players {
		if i, ok := index[p.TeamID]; ok {
			out[i].YellowCards += p.YellowCards
			out[i].RedCards += p.RedCards
		}
	}

	for i := range out {
		out[i].Points = out[i].Won*pointsPerWin + out[i].Drawn*pointsPerDraw
		out[i].GoalDifference = out[i].GoalsFor - out[i].GoalsAgainst
	}

	slices.SortStableFunc(out, compareRank)
	for i := range out {
		out[i].Position = i + 1
	}

	return out
}

func (s *Standing) record(scored, conceded int) {
	s.Played++
	s.GoalsFor += scored
	s.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		s.Won++
	case scored == conceded:
		s.Drawn++
	default:
		s.Lost++
	}
}

func compareRank(a, b Standing) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalDifference, a.GoalDifference); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalsFor, a.GoalsFor); c != 0 {
		return c
	}
	return strings.Compare(a.TeamID, b.TeamID)
}

// BuildTeamDetail picks teamID out of computed standings and attaches its
// roster sorted by player name. ok is false when the team is not ranked.
func BuildTeamDetail(standings []Standing, teamID string, players []player.Player) (TeamDetail, bool) {
	idx := slices.IndexFunc(standings, func(s Standing) bool { return s.TeamID == teamID })
	if idx < 0 {
		return TeamDetail{}, false
	}

	roster := make([]RosterEntry, 0)
	for _, p := range players {
		if p.TeamID != teamID {
			continue
		}
		roster = append(roster, RosterEntry{
			PlayerID:    p.ID,
			Name:        p.Name,
			Goals:       p.Goals,
			YellowCards: p.YellowCards,
			RedCards:    p.RedCards,
		})
	}
	slices.SortStableFunc(roster, func(a, b RosterEntry) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.PlayerID, b.PlayerID)
	})

	return TeamDetail{Standing: standings[idx], Roster: roster}, true
}

// TopScorers ranks players of category teams by goals, then name. Players
// without goals are left out. limit <= 0 returns every scorer.
func TopScorers(category league.Category, teams []team.Team, players []player.Player, limit int) []Scorer {
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		if t.Category == category {
			names[t.ID] = t.Name
		}
	}

	out := make([]Scorer, 0)
	for _, p := range players {
		teamName, ok := names[p.TeamID]
		if !ok || p.Goals <= 0 {
			continue
		}
		out = append(out, Scorer{
			PlayerID: p.ID,
			Name:     p.Name,
			TeamID:   p.TeamID,
			TeamName: teamName,
			Goals:    p.Goals,
		})
	}

	slices.SortStableFunc(out, func(a, b Scorer) int {
		if c := cmp.Compare(b.Goals, a.Goals); c != 0 {
			return c
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.PlayerID, b.PlayerID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}

	return out
}
