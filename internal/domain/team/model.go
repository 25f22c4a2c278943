package team

import (
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/league"
)

// Team is a club competing in one category.
type Team struct {
	ID        string
	Name      string
	Category  league.Category
	Manager   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New builds a validated Team. Names are trimmed before validation.
func New(id, name string, category league.Category, manager string) (Team, error) {
	t := Team{
		ID:       id,
		Name:     name,
		Category: category,
		Manager:  manager,
	}
	if err := t.normalize(); err != nil {
		return Team{}, err
	}
	return t, nil
}

func (t Team) Validate() error {
	return t.normalize()
}

func (t *Team) normalize() error {
	if err := league.RequireID(league.FieldID, t.ID); err != nil {
		return err
	}
	name, err := league.NormalizeName(league.FieldName, t.Name)
	if err != nil {
		return err
	}
	if err := t.Category.Validate(); err != nil {
		return err
	}
	manager, err := league.NormalizeName(league.FieldManager, t.Manager)
	if err != nil {
		return err
	}

	t.Name = name
	t.Manager = manager
	return nil
}
