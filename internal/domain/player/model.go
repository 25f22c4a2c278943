package player

import (
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/league"
)

// Player belongs to one team and carries season totals.
type Player struct {
	ID          string
	Name        string
	TeamID      string
	Goals       int
	YellowCards int
	RedCards    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func New(id, name, teamID string, goals, yellowCards, redCards int) (Player, error) {
	p := Player{
		ID:          id,
		Name:        name,
		TeamID:      teamID,
		Goals:       goals,
		YellowCards: yellowCards,
		RedCards:    redCards,
	}
	if err := p.normalize(); err != nil {
		return Player{}, err
	}
	return p, nil
}

func (p Player) Validate() error {
	return p.normalize()
}

func (p *Player) normalize() error {
	if err := league.RequireID(league.FieldID, p.ID); err != nil {
		return err
	}
	name, err := league.NormalizeName(league.FieldName, p.Name)
	if err != nil {
		return err
	}
	if err := league.RequireID(league.FieldTeamID, p.TeamID); err != nil {
		return err
	}
	if err := league.RequireNonNegative(league.FieldGoals, p.Goals); err != nil {
		return err
	}
	if err := league.RequireNonNegative(league.FieldYellowCards, p.YellowCards); err != nil {
		return err
	}
	if err := league.RequireNonNegative(league.FieldRedCards, p.RedCards); err != nil {
		return err
	}

	p.Name = name
	return nil
}
