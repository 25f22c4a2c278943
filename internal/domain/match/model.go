package match

import (
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/league"
)

// Match is a played fixture between two teams.
type Match struct {
	ID         string
	HomeTeamID string
	AwayTeamID string
	HomeGoals  int
	AwayGoals  int
	PlayedAt   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// New builds a validated Match. A zero playedAt is accepted; callers stamp it.
func New(id, homeTeamID, awayTeamID string, homeGoals, awayGoals int, playedAt time.Time) (Match, error) {
	m := Match{
		ID:         id,
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		HomeGoals:  homeGoals,
		AwayGoals:  awayGoals,
		PlayedAt:   playedAt,
	}
	if err := m.Validate(); err != nil {
		return Match{}, err
	}
	return m, nil
}

func (m Match) Validate() error {
	if err := league.RequireID(league.FieldID, m.ID); err != nil {
		return err
	}
	if err := league.RequireID(league.FieldHomeTeamID, m.HomeTeamID); err != nil {
		return err
	}
	if err := league.RequireID(league.FieldAwayTeamID, m.AwayTeamID); err != nil {
		return err
	}
	if m.HomeTeamID == m.AwayTeamID {
		return league.NewValidationError(league.FieldAwayTeamID, "must differ from home team")
	}
	if err := league.RequireNonNegative(league.FieldHomeGoals, m.HomeGoals); err != nil {
		return err
	}
	if err := league.RequireNonNegative(league.FieldAwayGoals, m.AwayGoals); err != nil {
		return err
	}

	return nil
}

// Involves reports whether teamID played in the match.
func (m Match) Involves(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// GoalsFor returns the goals scored and conceded from teamID's perspective.
// ok is false when the team did not play.
func (m Match) GoalsFor(teamID string) (scored, conceded int, ok bool) {
	switch teamID {
	case m.HomeTeamID:
		return m.HomeGoals, m.AwayGoals, true
	case m.AwayTeamID:
		return m.AwayGoals, m.HomeGoals, true
	default:
		return 0, 0, false
	}
}
