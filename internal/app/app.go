package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/infrastructure/account/jwtauth"
	repocache "github.com/riskibarqy/league-standings/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/league-standings/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/league-standings/internal/platform/cache"
	"github.com/riskibarqy/league-standings/internal/platform/changefeed"
	idgen "github.com/riskibarqy/league-standings/internal/platform/id"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/platform/resilience"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

const dbPingTimeout = 5 * time.Second

// App owns every long-lived component of the API process.
type App struct {
	cfg    config.Config
	logger *logging.Logger

	server   *http.Server
	broker   *changefeed.Broker
	live     *usecase.LiveStandingsService
	listener *postgres.ChangeListener

	cleanups []func()
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

type repositories struct {
	teams   team.Repository
	matches match.Repository
	players player.Repository
}

// New wires storage, services and the HTTP router. Nothing runs until Start.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{
		cfg:    cfg,
		logger: logger,
		broker: changefeed.NewBroker(logger.Named("changefeed")),
	}

	repos, err := a.buildRepositories(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		// Subscribed before the live service so entries are dropped before
		// any recompute reads through the cache.
		a.cleanups = append(a.cleanups, repocache.BindInvalidation(a.broker, store))
		repos = repositories{
			teams:   repocache.NewTeamRepository(repos.teams, store),
			matches: repocache.NewMatchRepository(repos.matches, store),
			players: repocache.NewPlayerRepository(repos.players, store),
		}
	}

	ids := idgen.NewUUIDGenerator()
	breaker := resilience.NewCircuitBreakerFromConfig(cfg.StoreCircuit)
	standingsSvc := usecase.NewStandingsService(repos.teams, repos.matches, repos.players, breaker)
	teamSvc := usecase.NewTeamService(repos.teams, ids)
	matchSvc := usecase.NewMatchService(repos.matches, repos.teams, ids)
	playerSvc := usecase.NewPlayerService(repos.players, repos.teams, ids)
	a.live = usecase.NewLiveStandingsService(standingsSvc, a.broker, logger.Named("live"), usecase.LiveStandingsConfig{
		Workers:    cfg.LiveWorkers,
		RunTimeout: cfg.LiveRunTimeout,
	})

	verifier, err := newTokenVerifier(cfg, logger)
	if err != nil {
		a.close()
		return nil, err
	}

	handler := httpapi.NewHandler(standingsSvc, a.live, teamSvc, matchSvc, playerSvc, cfg.CORSAllowedOrigins, logger)
	router := httpapi.NewRouter(handler, verifier, logger, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	a.server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return a, nil
}

func (a *App) buildRepositories(ctx context.Context) (repositories, error) {
	if a.cfg.DataSource == config.DataSourceMemory {
		store := memory.NewSeededStore(a.broker)
		a.logger.Info("using in-memory store", "teams", len(memory.SeedTeams()))
		return repositories{
			teams:   store.Teams(),
			matches: store.Matches(),
			players: store.Players(),
		}, nil
	}

	db, err := openDB(ctx, a.cfg)
	if err != nil {
		return repositories{}, err
	}
	a.cleanups = append(a.cleanups, func() {
		if err := db.Close(); err != nil {
			a.logger.Warn("close database", "error", err)
		}
	})

	if a.cfg.DBSeedDemo {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return repositories{}, fmt.Errorf("seed demo league: %w", err)
		}
	}

	a.listener = postgres.NewChangeListener(postgres.ChangeListenerConfig{
		DSN:                  resolveDSN(a.cfg.DBURL, a.cfg.ServiceName, a.cfg.DBDisablePreparedBinary),
		Channel:              a.cfg.DBNotifyChannel,
		MinReconnectInterval: a.cfg.DBListenerMinReconnect,
		MaxReconnectInterval: a.cfg.DBListenerMaxReconnect,
	}, a.broker, a.logger.Named("listener"))

	return repositories{
		teams:   postgres.NewTeamRepository(db),
		matches: postgres.NewMatchRepository(db),
		players: postgres.NewPlayerRepository(db),
	}, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := resolveDSN(cfg.DBURL, cfg.ServiceName, cfg.DBDisablePreparedBinary)
	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(traceQuery),
		otelsql.WithAttributes(attribute.String("service.name", cfg.ServiceName)),
	}
	if name := databaseName(dsn); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	otelsql.ReportDBStatsMetrics(db.DB, opts...)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// newTokenVerifier returns a nil interface when no secret is configured so
// admin routes answer 503 instead of accepting unsigned requests.
func newTokenVerifier(cfg config.Config, logger *logging.Logger) (httpapi.TokenVerifier, error) {
	if cfg.AuthJWTSecret == "" {
		logger.Warn("admin routes disabled", "reason", "AUTH_JWT_SECRET empty")
		return nil, nil
	}

	verifier, err := jwtauth.NewVerifier(jwtauth.Config{
		Secret:   cfg.AuthJWTSecret,
		Issuer:   cfg.AuthJWTIssuer,
		Audience: cfg.AuthJWTAudience,
		Leeway:   cfg.AuthJWTLeeway,
	}, logger.Named("auth"))
	if err != nil {
		return nil, fmt.Errorf("build token verifier: %w", err)
	}
	return verifier, nil
}

// Start launches the change listener, the live standings service and the
// HTTP server. Serve errors are reported on the returned channel.
func (a *App) Start(ctx context.Context) (<-chan error, error) {
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	// Hijacked websocket streams outlive Server.Shutdown; they end when
	// runCtx is cancelled.
	a.server.BaseContext = func(net.Listener) context.Context { return runCtx }

	if a.listener != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if err := a.listener.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("change listener stopped", "error", err)
			}
		}()
	}

	if err := a.live.Start(runCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("start live standings: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.server.Addr, "data_source", a.cfg.DataSource)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return errCh, nil
}

// Shutdown drains HTTP traffic, then stops background work and releases
// storage.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("shutdown http server: %w", err)
		}
	}
	if a.live != nil {
		a.live.Stop()
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()
	a.close()

	a.logger.Info("http server stopped")
	return shutdownErr
}

func (a *App) close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}
