package cache

import (
	"context"

	"github.com/riskibarqy/league-standings/internal/domain/league"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	basecache "github.com/riskibarqy/league-standings/internal/platform/cache"
)

const (
	teamKeyPrefix   = "team:"
	matchKeyPrefix  = "match:"
	playerKeyPrefix = "player:"
)

type lookup[T any] struct {
	value  T
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

var _ team.Repository = (*TeamRepository)(nil)

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, teamKeyPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) ListByCategory(ctx context.Context, category league.Category) ([]team.Team, error) {
	key := teamKeyPrefix + "category:" + category.String()
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByCategory(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, teamKeyPrefix+"id:"+teamID, func(ctx context.Context) (lookup[team.Team], error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		return lookup[team.Team]{value: item, exists: exists}, err
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	defer r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return r.next.Create(ctx, t)
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	defer r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return r.next.Update(ctx, t)
}

// Delete purges the whole cache because the delete cascades to matches and
// players.
func (r *TeamRepository) Delete(ctx context.Context, teamID string) (bool, error) {
	defer r.cache.Purge()
	return r.next.Delete(ctx, teamID)
}

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

var _ match.Repository = (*MatchRepository)(nil)

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	items, err := basecache.Load(ctx, r.cache, matchKeyPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, matchKeyPrefix+"id:"+matchID, func(ctx context.Context) (lookup[match.Match], error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		return lookup[match.Match]{value: item, exists: exists}, err
	})
	if err != nil {
		return match.Match{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	defer r.cache.DeletePrefix(ctx, matchKeyPrefix)
	return r.next.Create(ctx, m)
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) error {
	defer r.cache.DeletePrefix(ctx, matchKeyPrefix)
	return r.next.Update(ctx, m)
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) (bool, error) {
	defer r.cache.DeletePrefix(ctx, matchKeyPrefix)
	return r.next.Delete(ctx, matchID)
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

var _ player.Repository = (*PlayerRepository)(nil)

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, playerKeyPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, playerKeyPrefix+"team:"+teamID, func(ctx context.Context) ([]player.Player, error) {
		return r.next.ListByTeam(ctx, teamID)
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, playerKeyPrefix+"id:"+playerID, func(ctx context.Context) (lookup[player.Player], error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		return lookup[player.Player]{value: item, exists: exists}, err
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	defer r.cache.DeletePrefix(ctx, playerKeyPrefix)
	return r.next.Create(ctx, p)
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	defer r.cache.DeletePrefix(ctx, playerKeyPrefix)
	return r.next.Update(ctx, p)
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) (bool, error) {
	defer r.cache.DeletePrefix(ctx, playerKeyPrefix)
	return r.next.Delete(ctx, playerID)
}
