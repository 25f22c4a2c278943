package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/changefeed"
	"github.com/riskibarqy/league-standings/internal/domain/league"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/league-standings/internal/platform/cache"
	feed "github.com/riskibarqy/league-standings/internal/platform/changefeed"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTeams struct {
	team.Repository
	lists int
	gets  int
}

func (c *countingTeams) List(ctx context.Context) ([]team.Team, error) {
	c.lists++
	return c.Repository.List(ctx)
}

func (c *countingTeams) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	c.gets++
	return c.Repository.GetByID(ctx, teamID)
}

type countingMatches struct {
	match.Repository
	lists int
}

func (c *countingMatches) List(ctx context.Context) ([]match.Match, error) {
	c.lists++
	return c.Repository.List(ctx)
}

// gatedMatches reads its rows, then waits for release before returning them.
type gatedMatches struct {
	match.Repository
	read    chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedMatches) List(ctx context.Context) ([]match.Match, error) {
	rows, err := g.Repository.List(ctx)
	g.once.Do(func() { close(g.read) })
	<-g.release
	return rows, err
}

type countingPlayers struct {
	player.Repository
	lists int
}

func (c *countingPlayers) List(ctx context.Context) ([]player.Player, error) {
	c.lists++
	return c.Repository.List(ctx)
}

func TestTeamRepository_CachesReadsUntilWrite(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore(nil)
	next := &countingTeams{Repository: store.Teams()}
	repo := NewTeamRepository(next, basecache.NewStore(0))

	first, err := repo.List(ctx)
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, next.lists)
	assert.NotEqual(t, "mutated", second[0].Name, "callers must get a private copy")

	created, err := team.New("3f0e8f8a-1c55-4c36-9a3e-0a4b5b1f0999", "Pumas", league.CategoryMen, "Ana Soto")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, created))

	third, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, next.lists)
	assert.Len(t, third, len(second)+1)
}

func TestTeamRepository_CachesMissingLookups(t *testing.T) {
	ctx := context.Background()
	next := &countingTeams{Repository: memory.NewSeededStore(nil).Teams()}
	repo := NewTeamRepository(next, basecache.NewStore(0))

	for range 3 {
		_, exists, err := repo.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, exists)
	}
	assert.Equal(t, 1, next.gets)

	got, exists, err := repo.GetByID(ctx, memory.TeamIDLeones)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "Leones", got.Name)
}

func TestTeamRepository_DeletePurgesDependentTables(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore(nil)
	shared := basecache.NewStore(0)
	matches := &countingMatches{Repository: store.Matches()}
	players := &countingPlayers{Repository: store.Players()}
	teamRepo := NewTeamRepository(store.Teams(), shared)
	matchRepo := NewMatchRepository(matches, shared)
	playerRepo := NewPlayerRepository(players, shared)

	beforeMatches, err := matchRepo.List(ctx)
	require.NoError(t, err)
	beforePlayers, err := playerRepo.List(ctx)
	require.NoError(t, err)

	deleted, err := teamRepo.Delete(ctx, memory.TeamIDAguilas)
	require.NoError(t, err)
	require.True(t, deleted)

	afterMatches, err := matchRepo.List(ctx)
	require.NoError(t, err)
	afterPlayers, err := playerRepo.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, matches.lists)
	assert.Equal(t, 2, players.lists)
	assert.Less(t, len(afterMatches), len(beforeMatches))
	assert.Less(t, len(afterPlayers), len(beforePlayers))
}

func TestBindInvalidation_DropsTableOnExternalChange(t *testing.T) {
	ctx := context.Background()
	broker := feed.NewBroker(logging.NewNop())
	shared := basecache.NewStore(0)
	store := memory.NewSeededStore(nil)
	matches := &countingMatches{Repository: store.Matches()}
	teams := &countingTeams{Repository: store.Teams()}
	matchRepo := NewMatchRepository(matches, shared)
	teamRepo := NewTeamRepository(teams, shared)

	unsubscribe := BindInvalidation(broker, shared)
	defer unsubscribe()

	_, err := matchRepo.List(ctx)
	require.NoError(t, err)
	_, err = teamRepo.List(ctx)
	require.NoError(t, err)

	broker.Publish(changefeed.Event{Table: changefeed.TableMatches, Op: changefeed.OpUpdate, ID: "m1"})

	_, err = matchRepo.List(ctx)
	require.NoError(t, err)
	_, err = teamRepo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, matches.lists)
	assert.Equal(t, 1, teams.lists)

	broker.Publish(changefeed.Resync())

	_, err = teamRepo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, teams.lists)
}

func TestMatchRepository_LoadOverlappingWriteIsNotCached(t *testing.T) {
	ctx := context.Background()
	broker := feed.NewBroker(logging.NewNop())
	shared := basecache.NewStore(time.Minute)
	unsubscribe := BindInvalidation(broker, shared)
	defer unsubscribe()

	store := memory.NewSeededStore(broker)
	gated := &gatedMatches{
		Repository: store.Matches(),
		read:       make(chan struct{}),
		release:    make(chan struct{}),
	}
	repo := NewMatchRepository(gated, shared)

	stale := make(chan []match.Match, 1)
	go func() {
		rows, err := repo.List(ctx)
		assert.NoError(t, err)
		stale <- rows
	}()

	<-gated.read
	created, err := match.New("8c1d2e3f-0000-4000-8000-000000000999", memory.TeamIDAguilas, memory.TeamIDLeones, 2, 0, time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, store.Matches().Create(ctx, created))
	close(gated.release)

	before := <-stale
	assert.Len(t, before, len(memory.SeedMatches()))

	// the gate is already open, later loads pass straight through
	after, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
}
