package httpapi

import (
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

type teamRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Category string `json:"category" validate:"required"`
	Manager  string `json:"manager" validate:"required,max=100"`
}

type matchRequest struct {
	HomeTeamID string     `json:"home_team_id" validate:"required"`
	AwayTeamID string     `json:"away_team_id" validate:"required"`
	HomeGoals  *int       `json:"home_goals" validate:"required,gte=0"`
	AwayGoals  *int       `json:"away_goals" validate:"required,gte=0"`
	PlayedAt   *time.Time `json:"played_at,omitempty"`
}

type playerRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	TeamID      string `json:"team_id" validate:"required"`
	Goals       int    `json:"goals" validate:"gte=0"`
	YellowCards int    `json:"yellow_cards" validate:"gte=0"`
	RedCards    int    `json:"red_cards" validate:"gte=0"`
}

type teamDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Manager   string `json:"manager"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type matchDTO struct {
	ID         string `json:"id"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	HomeGoals  int    `json:"home_goals"`
	AwayGoals  int    `json:"away_goals"`
	PlayedAt   string `json:"played_at"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type playerDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TeamID      string `json:"team_id"`
	Goals       int    `json:"goals"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type standingDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	Manager        string `json:"manager"`
	Category       string `json:"category"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	YellowCards    int    `json:"yellow_cards"`
	RedCards       int    `json:"red_cards"`
	Points         int    `json:"points"`
}

type snapshotDTO struct {
	Category  string        `json:"category"`
	Standings []standingDTO `json:"standings"`
	Loading   bool          `json:"loading"`
	Error     string        `json:"error,omitempty"`
	UpdatedAt string        `json:"updated_at,omitempty"`
	Version   uint64        `json:"version"`
}

type rosterEntryDTO struct {
	PlayerID    string `json:"player_id"`
	Name        string `json:"name"`
	Goals       int    `json:"goals"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
}

type teamDetailDTO struct {
	Standing standingDTO      `json:"standing"`
	Roster   []rosterEntryDTO `json:"roster"`
}

type scorerDTO struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Goals    int    `json:"goals"`
}

func (r teamRequest) toInput() (usecase.TeamInput, error) {
	category, err := parseCategory(r.Category)
	if err != nil {
		return usecase.TeamInput{}, err
	}
	return usecase.TeamInput{Name: r.Name, Category: category, Manager: r.Manager}, nil
}

func (r matchRequest) toInput() usecase.MatchInput {
	input := usecase.MatchInput{
		HomeTeamID: r.HomeTeamID,
		AwayTeamID: r.AwayTeamID,
	}
	if r.HomeGoals != nil {
		input.HomeGoals = *r.HomeGoals
	}
	if r.AwayGoals != nil {
		input.AwayGoals = *r.AwayGoals
	}
	if r.PlayedAt != nil {
		input.PlayedAt = *r.PlayedAt
	}
	return input
}

func (r playerRequest) toInput() usecase.PlayerInput {
	return usecase.PlayerInput{
		Name:        r.Name,
		TeamID:      r.TeamID,
		Goals:       r.Goals,
		YellowCards: r.YellowCards,
		RedCards:    r.RedCards,
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:        v.ID,
		Name:      v.Name,
		Category:  v.Category.String(),
		Manager:   v.Manager,
		CreatedAt: formatTime(v.CreatedAt),
		UpdatedAt: formatTime(v.UpdatedAt),
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:         v.ID,
		HomeTeamID: v.HomeTeamID,
		AwayTeamID: v.AwayTeamID,
		HomeGoals:  v.HomeGoals,
		AwayGoals:  v.AwayGoals,
		PlayedAt:   formatTime(v.PlayedAt),
		CreatedAt:  formatTime(v.CreatedAt),
		UpdatedAt:  formatTime(v.UpdatedAt),
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:          v.ID,
		Name:        v.Name,
		TeamID:      v.TeamID,
		Goals:       v.Goals,
		YellowCards: v.YellowCards,
		RedCards:    v.RedCards,
		CreatedAt:   formatTime(v.CreatedAt),
		UpdatedAt:   formatTime(v.UpdatedAt),
	}
}

func standingToDTO(v standing.Standing) standingDTO {
	return standingDTO{
		Position:       v.Position,
		TeamID:         v.TeamID,
		TeamName:       v.TeamName,
		Manager:        v.Manager,
		Category:       v.Category.String(),
		Played:         v.Played,
		Won:            v.Won,
		Drawn:          v.Drawn,
		Lost:           v.Lost,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		YellowCards:    v.YellowCards,
		RedCards:       v.RedCards,
		Points:         v.Points,
	}
}

func standingsToDTO(items []standing.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, standingToDTO(item))
	}
	return out
}

func snapshotToDTO(v usecase.Snapshot) snapshotDTO {
	return snapshotDTO{
		Category:  v.Category.String(),
		Standings: standingsToDTO(v.Standings),
		Loading:   v.Loading,
		Error:     v.Error,
		UpdatedAt: formatTime(v.UpdatedAt),
		Version:   v.Version,
	}
}

func teamDetailToDTO(v standing.TeamDetail) teamDetailDTO {
	roster := make([]rosterEntryDTO, 0, len(v.Roster))
	for _, entry := range v.Roster {
		roster = append(roster, rosterEntryDTO{
			PlayerID:    entry.PlayerID,
			Name:        entry.Name,
			Goals:       entry.Goals,
			YellowCards: entry.YellowCards,
			RedCards:    entry.RedCards,
		})
	}
	return teamDetailDTO{Standing: standingToDTO(v.Standing), Roster: roster}
}

func scorersToDTO(items []standing.Scorer) []scorerDTO {
	out := make([]scorerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, scorerDTO{
			Rank:     item.Rank,
			PlayerID: item.PlayerID,
			Name:     item.Name,
			TeamID:   item.TeamID,
			TeamName: item.TeamName,
			Goals:    item.Goals,
		})
	}
	return out
}
