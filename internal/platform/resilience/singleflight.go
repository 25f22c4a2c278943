package resilience

import (
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// SingleFlight deduplicates concurrent calls for the same key.
type SingleFlight struct {
	group singleflight.Group

	mu   sync.Mutex
	keys map[string]struct{}
}

func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.track(key, true)
	defer g.track(key, false)

	return g.group.Do(key, fn)
}

// ForgetPrefix makes later calls for matching keys start a new execution
// instead of joining one already in flight. An empty prefix matches all keys.
func (g *SingleFlight) ForgetPrefix(prefix string) {
	g.mu.Lock()
	keys := make([]string, 0, len(g.keys))
	for key := range g.keys {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	g.mu.Unlock()

	for _, key := range keys {
		g.group.Forget(key)
	}
}

func (g *SingleFlight) track(key string, add bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.keys == nil {
		g.keys = make(map[string]struct{})
	}
	if add {
		g.keys[key] = struct{}{}
		return
	}
	delete(g.keys, key)
}
