package postgres

import (
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/player"
)

type playerTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	Name        string     `db:"name"`
	TeamID      string     `db:"team_public_id"`
	Goals       int        `db:"goals"`
	YellowCards int        `db:"yellow_cards"`
	RedCards    int        `db:"red_cards"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type playerInsertModel struct {
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	TeamID      string    `db:"team_public_id"`
	Goals       int       `db:"goals"`
	YellowCards int       `db:"yellow_cards"`
	RedCards    int       `db:"red_cards"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type playerUpdateModel struct {
	Name        string    `db:"name"`
	TeamID      string    `db:"team_public_id"`
	Goals       int       `db:"goals"`
	YellowCards int       `db:"yellow_cards"`
	RedCards    int       `db:"red_cards"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:          m.PublicID,
		Name:        m.Name,
		TeamID:      m.TeamID,
		Goals:       m.Goals,
		YellowCards: m.YellowCards,
		RedCards:    m.RedCards,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func playersToDomain(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
