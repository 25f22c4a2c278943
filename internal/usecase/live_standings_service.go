package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/league-standings/internal/domain/changefeed"
	"github.com/riskibarqy/league-standings/internal/domain/league"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

// StandingsComputer produces a fresh table for one category.
type StandingsComputer interface {
	ListByCategory(ctx context.Context, category league.Category) ([]standing.Standing, error)
}

// Snapshot is the latest live table for a category.
type Snapshot struct {
	Category  league.Category
	Standings []standing.Standing
	// Loading stays true until the first computation finishes.
	Loading bool
	// Error holds the last fetch failure; Standings keep the previous result.
	Error     string
	UpdatedAt time.Time
	Version   uint64
}

type LiveStandingsConfig struct {
	Workers    int
	RunTimeout time.Duration
}

// LiveStandingsService recomputes category tables whenever the change feed
// reports a write. Per category at most one run is in flight; events that
// arrive meanwhile collapse into a single follow-up run.
type LiveStandingsService struct {
	computer StandingsComputer
	source   changefeed.Source
	logger   *logging.Logger
	cfg      LiveStandingsConfig
	now      func() time.Time

	mu          sync.Mutex
	started     bool
	stopped     bool
	runCtx      context.Context
	cancel      context.CancelFunc
	pool        *ants.Pool
	unsubscribe func()
	runs        sync.WaitGroup
	nextSubID   uint64
	states      map[league.Category]*liveState
}

type liveState struct {
	running  bool
	pending  bool
	snapshot Snapshot
	subs     map[uint64]func(Snapshot)
}

func NewLiveStandingsService(computer StandingsComputer, source changefeed.Source, logger *logging.Logger, cfg LiveStandingsConfig) *LiveStandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = len(league.Categories())
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 10 * time.Second
	}

	states := make(map[league.Category]*liveState, len(league.Categories()))
	for _, category := range league.Categories() {
		states[category] = &liveState{
			snapshot: Snapshot{Category: category, Loading: true, Standings: []standing.Standing{}},
			subs:     make(map[uint64]func(Snapshot)),
		}
	}

	return &LiveStandingsService{
		computer: computer,
		source:   source,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
		states:   states,
	}
}

// Start subscribes to the change feed and schedules the first computation of
// every category. It does not wait for those computations.
func (s *LiveStandingsService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("live standings already started")
	}

	p, err := ants.NewPool(s.cfg.Workers, ants.WithNonblocking(false))
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("create worker pool: %w", err)
	}
	s.pool = p
	s.runCtx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.started = true
	s.mu.Unlock()

	unsubscribe := s.source.Subscribe(s.onEvent)
	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	for _, category := range league.Categories() {
		s.Refresh(category)
	}

	s.logger.InfoContext(ctx, "live standings started", "workers", s.cfg.Workers)
	return nil
}

// Stop unsubscribes, cancels running computations and waits for them.
func (s *LiveStandingsService) Stop() {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	unsubscribe := s.unsubscribe
	cancel := s.cancel
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	cancel()
	s.runs.Wait()
	s.pool.Release()
	s.logger.Info("live standings stopped")
}

func (s *LiveStandingsService) Snapshot(category league.Category) (Snapshot, error) {
	if err := category.Validate(); err != nil {
		return Snapshot{}, invalidInput(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[category].snapshot, nil
}

// Subscribe registers fn for every new snapshot of category. fn runs on a
// worker goroutine and must not block for long.
func (s *LiveStandingsService) Subscribe(category league.Category, fn func(Snapshot)) (func(), error) {
	if err := category.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: subscriber is required", ErrInvalidInput)
	}

	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.states[category].subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.states[category].subs, id)
			s.mu.Unlock()
		})
	}, nil
}

// Refresh schedules a recomputation of category.
func (s *LiveStandingsService) Refresh(category league.Category) {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	state := s.states[category]
	if state == nil {
		s.mu.Unlock()
		return
	}
	if state.running {
		state.pending = true
		s.mu.Unlock()
		return
	}
	state.running = true
	s.runs.Add(1)
	p := s.pool
	s.mu.Unlock()

	if err := p.Submit(func() { s.run(category) }); err != nil {
		s.mu.Lock()
		state.running = false
		state.pending = false
		s.mu.Unlock()
		s.runs.Done()
		s.logger.Error("submit standings computation", "category", category, "error", err)
	}
}

func (s *LiveStandingsService) onEvent(event changefeed.Event) {
	s.logger.Debug("change feed event", "event", event)
	for _, category := range league.Categories() {
		s.Refresh(category)
	}
}

func (s *LiveStandingsService) run(category league.Category) {
	defer s.runs.Done()

	for {
		ctx, cancel := context.WithTimeout(s.runCtx, s.cfg.RunTimeout)
		standings, err := s.computer.ListByCategory(ctx, category)
		cancel()

		s.mu.Lock()
		state := s.states[category]
		next := state.snapshot
		next.Loading = false
		next.UpdatedAt = s.now()
		next.Version++
		if err != nil {
			next.Error = err.Error()
		} else {
			next.Error = ""
			next.Standings = standings
		}
		state.snapshot = next
		subs := make([]func(Snapshot), 0, len(state.subs))
		for _, fn := range state.subs {
			subs = append(subs, fn)
		}
		s.mu.Unlock()

		if err != nil && s.runCtx.Err() == nil {
			s.logger.Warn("recompute standings failed, keeping previous table",
				"category", category,
				"version", next.Version,
				"error", err,
			)
		}
		for _, fn := range subs {
			s.notify(fn, next)
		}

		s.mu.Lock()
		if state.pending && !s.stopped {
			state.pending = false
			s.mu.Unlock()
			continue
		}
		state.running = false
		state.pending = false
		s.mu.Unlock()
		return
	}
}

func (s *LiveStandingsService) notify(fn func(Snapshot), snapshot Snapshot) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("live standings subscriber panicked", "category", snapshot.Category, "panic", rec)
		}
	}()
	fn(snapshot)
}
