package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-roster/internal/config"
	"github.com/riskibarqy/fantasy-roster/internal/domain/advice"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/backend"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/kvstore"
	"github.com/riskibarqy/fantasy-roster/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/fantasy-roster/internal/platform/id"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"

	_ "github.com/lib/pq"
)

// App holds the HTTP server and the background pieces that share its
// lifetime.
type App struct {
	Server  *http.Server
	janitor *janitor
	db      *sqlx.DB
	logger  *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	client, err := backend.NewClient(backend.ClientConfig{
		BaseURL:           cfg.BackendBaseURL,
		Timeout:           cfg.BackendTimeout,
		MaxConnsPerHost:   cfg.BackendMaxConnsPerHost,
		PrincipalCacheTTL: cfg.PrincipalCacheTTL,
		Logger:            logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.BackendCircuitEnabled,
			FailureThreshold: cfg.BackendCircuitFailureCount,
			OpenTimeout:      cfg.BackendCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.BackendCircuitHalfOpenMaxReq,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build backend client: %w", err)
	}

	store, db, err := newAdviceStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	adviceCache := advice.NewCache(store, cfg.AdviceCacheTTL)

	// Add, remove and toggle share one gate so a user runs a single roster
	// workflow per league at a time.
	gate := resilience.NewKeyedGate()

	rosterSvc := usecase.NewRosterService(client, client, client, gate, logger)
	toggleSvc := usecase.NewToggleService(client, client, gate, idgen.NewUUIDGenerator(), logger)
	adviceSvc := usecase.NewAdviceService(client, client, client, adviceCache, logger)
	overviewSvc := usecase.NewOverviewService(client, cfg.OverviewMaxWorkers, logger)

	handler := httpapi.NewHandler(rosterSvc, toggleSvc, adviceSvc, overviewSvc, logger)
	router := httpapi.NewRouter(handler, client, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	j := &janitor{
		interval:   cfg.AdviceJanitorInterval,
		adviceTTL:  cfg.AdviceCacheTTL,
		principals: client,
		logger:     logger.Named("janitor"),
		now:        time.Now,
	}
	if pg, ok := store.(*kvstore.PostgresStore); ok {
		j.stale = pg
	}

	return &App{
		Server:  server,
		janitor: j,
		db:      db,
		logger:  logger,
	}, nil
}

// RunJanitor blocks until ctx is done.
func (a *App) RunJanitor(ctx context.Context) {
	a.janitor.run(ctx)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func newAdviceStore(cfg config.Config, logger *logging.Logger) (advice.KeyValueStore, *sqlx.DB, error) {
	switch cfg.AdviceStoreDriver {
	case config.AdviceStorePostgres:
		dbURL := normalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters)
		opts := []otelsql.Option{
			otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		}
		if name := dbNameFromURL(dbURL); name != "" {
			opts = append(opts, otelsql.WithDBName(name))
		}

		db, err := otelsqlx.Open("postgres", dbURL, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("open advice database: %w", err)
		}
		otelsql.ReportDBStatsMetrics(db.DB, opts...)

		logger.Info("advice store ready", "driver", config.AdviceStorePostgres, "db_name", dbNameFromURL(dbURL))
		return kvstore.NewPostgresStore(db), db, nil
	default:
		logger.Info("advice store ready", "driver", config.AdviceStoreMemory, "size_mb", cfg.AdviceMemoryMB)
		return kvstore.NewMemoryStore(cfg.AdviceMemoryMB<<20, cfg.AdviceCacheTTL), nil, nil
	}
}
