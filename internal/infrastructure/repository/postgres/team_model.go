package postgres

import (
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/league-standings/internal/domain/league"
	"github.com/riskibarqy/league-standings/internal/domain/team"
)

type teamTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	Category  string     `db:"category"`
	Manager   string     `db:"manager"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	Category  string    `db:"category"`
	Manager   string    `db:"manager"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type teamUpdateModel struct {
	Name      string    `db:"name"`
	Category  string    `db:"category"`
	Manager   string    `db:"manager"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m teamTableModel) toDomain() (team.Team, error) {
	category, err := league.ParseCategory(m.Category)
	if err != nil {
		return team.Team{}, crerr.Wrapf(err, "team %s has category %q", m.PublicID, m.Category)
	}
	return team.Team{
		ID:        m.PublicID,
		Name:      m.Name,
		Category:  category,
		Manager:   m.Manager,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func teamsToDomain(rows []teamTableModel) ([]team.Team, error) {
	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
