package team

import (
	"context"

	"github.com/riskibarqy/league-standings/internal/domain/league"
)

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	ListByCategory(ctx context.Context, category league.Category) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	Create(ctx context.Context, t Team) error
	Update(ctx context.Context, t Team) error
	// Delete removes the team with its matches and players. It reports false
	// when the team does not exist.
	Delete(ctx context.Context, teamID string) (bool, error)
}
