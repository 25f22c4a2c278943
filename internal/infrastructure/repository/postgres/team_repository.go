package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/league-standings/internal/domain/league"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	qb "github.com/riskibarqy/league-standings/internal/platform/querybuilder"
)

var teamColumns = qb.MustColumns(teamTableModel{})

type TeamRepository struct {
	db *sqlx.DB
}

var _ team.Repository = (*TeamRepository)(nil)

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns...).From("teams").
		Where(qb.IsNull("deleted_at")).
		OrderBy("category", "name", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	return teamsToDomain(rows)
}

func (r *TeamRepository) ListByCategory(ctx context.Context, category league.Category) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns...).From("teams").
		Where(
			qb.Eq("category", category.String()),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by category query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by category: %w", err)
	}

	return teamsToDomain(rows)
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns...).From("teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	item, err := row.toDomain()
	if err != nil {
		return team.Team{}, false, err
	}
	return item, true, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	query, args, err := qb.InsertModel("teams", teamInsertModel{
		PublicID:  t.ID,
		Name:      t.Name,
		Category:  t.Category.String(),
		Manager:   t.Manager,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapWriteError(err, "insert team")
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	query, args, err := qb.Update("teams").
		SetModel(teamUpdateModel{
			Name:      t.Name,
			Category:  t.Category.String(),
			Manager:   t.Manager,
			UpdatedAt: t.UpdatedAt,
		}).
		Where(
			qb.Eq("public_id", t.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapWriteError(err, "update team")
	}
	return nil
}

// Delete soft deletes the team, its matches and its players in one transaction.
func (r *TeamRepository) Delete(ctx context.Context, teamID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx delete team: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteTeamQuery, deleteTeamArgs, err := qb.Update("teams").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build soft delete team query: %w", err)
	}
	result, err := tx.ExecContext(ctx, deleteTeamQuery, deleteTeamArgs...)
	if err != nil {
		return false, wrapWriteError(err, "soft delete team")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected soft delete team: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	deleteMatchesQuery, deleteMatchesArgs, err := qb.Update("matches").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Or(qb.Eq("home_team_public_id", teamID), qb.Eq("away_team_public_id", teamID)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build soft delete team matches query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteMatchesQuery, deleteMatchesArgs...); err != nil {
		return false, wrapWriteError(err, "soft delete team matches")
	}

	deletePlayersQuery, deletePlayersArgs, err := qb.Update("players").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build soft delete team players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deletePlayersQuery, deletePlayersArgs...); err != nil {
		return false, wrapWriteError(err, "soft delete team players")
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete team: %w", err)
	}
	return true, nil
}
