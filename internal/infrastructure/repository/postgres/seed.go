package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/league-standings/internal/platform/querybuilder"
)

const seedConflictSuffix = "ON CONFLICT (public_id) DO NOTHING"

// BootstrapSeed loads the demo league into an empty database. It is a no-op
// once any live team exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range memory.SeedTeams() {
		query, args, err := qb.InsertModel("teams", teamInsertModel{
			PublicID:  t.ID,
			Name:      t.Name,
			Category:  t.Category.String(),
			Manager:   t.Manager,
			CreatedAt: t.CreatedAt.UTC(),
			UpdatedAt: t.UpdatedAt.UTC(),
		}, seedConflictSuffix)
		if err != nil {
			return fmt.Errorf("build seed team %s query: %w", t.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, m := range memory.SeedMatches() {
		query, args, err := qb.InsertModel("matches", matchInsertModel{
			PublicID:   m.ID,
			HomeTeamID: m.HomeTeamID,
			AwayTeamID: m.AwayTeamID,
			HomeGoals:  m.HomeGoals,
			AwayGoals:  m.AwayGoals,
			PlayedAt:   m.PlayedAt.UTC(),
			CreatedAt:  m.CreatedAt.UTC(),
			UpdatedAt:  m.UpdatedAt.UTC(),
		}, seedConflictSuffix)
		if err != nil {
			return fmt.Errorf("build seed match %s query: %w", m.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		query, args, err := qb.InsertModel("players", playerInsertModel{
			PublicID:    p.ID,
			Name:        p.Name,
			TeamID:      p.TeamID,
			Goals:       p.Goals,
			YellowCards: p.YellowCards,
			RedCards:    p.RedCards,
			CreatedAt:   p.CreatedAt.UTC(),
			UpdatedAt:   p.UpdatedAt.UTC(),
		}, seedConflictSuffix)
		if err != nil {
			return fmt.Errorf("build seed player %s query: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
