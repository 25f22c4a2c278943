package cache

import (
	"context"

	"github.com/riskibarqy/league-standings/internal/domain/changefeed"
	basecache "github.com/riskibarqy/league-standings/internal/platform/cache"
)

// BindInvalidation drops cached rows whenever the change feed reports a write
// made by any process. It returns the unsubscribe handle.
func BindInvalidation(source changefeed.Source, store *basecache.Store) func() {
	return source.Subscribe(func(event changefeed.Event) {
		Invalidate(store, event)
	})
}

func Invalidate(store *basecache.Store, event changefeed.Event) {
	ctx := context.Background()
	switch event.Table {
	case changefeed.TableMatches:
		store.DeletePrefix(ctx, matchKeyPrefix)
	case changefeed.TablePlayers:
		store.DeletePrefix(ctx, playerKeyPrefix)
	default:
		// team changes may cascade; resync events have no table
		store.Purge()
	}
}
