package changefeed

import (
	"maps"
	"slices"
	"sync"

	"github.com/riskibarqy/league-standings/internal/domain/changefeed"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

// Broker fans events out to in-process subscribers. Delivery is synchronous on
// the publishing goroutine and follows subscription order, so subscribers must
// hand off slow work.
type Broker struct {
	logger *logging.Logger

	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]func(changefeed.Event)
}

var (
	_ changefeed.Source    = (*Broker)(nil)
	_ changefeed.Publisher = (*Broker)(nil)
)

func NewBroker(logger *logging.Logger) *Broker {
	if logger == nil {
		logger = logging.Default()
	}
	return &Broker{
		logger: logger,
		subs:   make(map[uint64]func(changefeed.Event)),
	}
}

func (b *Broker) Subscribe(fn func(changefeed.Event)) func() {
	if fn == nil {
		return func() {}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

func (b *Broker) Publish(event changefeed.Event) {
	b.mu.RLock()
	ids := slices.Sorted(maps.Keys(b.subs))
	subs := make([]func(changefeed.Event), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, b.subs[id])
	}
	b.mu.RUnlock()

	for _, fn := range subs {
		b.deliver(fn, event)
	}
}

func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Broker) deliver(fn func(changefeed.Event), event changefeed.Event) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("change feed subscriber panicked", "event", event, "panic", rec)
		}
	}()
	fn(event)
}
