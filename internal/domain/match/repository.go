package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	// List returns every match, most recently played first.
	List(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Create(ctx context.Context, m Match) error
	Update(ctx context.Context, m Match) error
	Delete(ctx context.Context, matchID string) (bool, error)
}
