package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"catalog-selection/internal/common/pagination"
	appconfig "catalog-selection/internal/config"
	fileRepo "catalog-selection/internal/infra/adapter/persistence/file"
	pgRepo "catalog-selection/internal/infra/adapter/persistence/postgres"
	sqliteRepo "catalog-selection/internal/infra/adapter/persistence/sqlite"
	"catalog-selection/internal/infra/catalog"
	"catalog-selection/internal/infra/db"
	"catalog-selection/internal/observability/logging"
	"catalog-selection/internal/observability/tracing"
	"catalog-selection/internal/repository"
	"catalog-selection/internal/resilience/circuitbreaker"
	"catalog-selection/pkg/config"

	mirrorUC "catalog-selection/internal/usecase/mirror"
	selUC "catalog-selection/internal/usecase/selection"

	hhttp "catalog-selection/internal/handler/http"
	"catalog-selection/internal/handler/http/middleware"
	"catalog-selection/internal/handler/http/requestid"
	hselection "catalog-selection/internal/handler/http/selection"

	_ "catalog-selection/docs" // swagger docs
)

// @title           Catalog Selection API
// @version         1.0
// @description     ページ分割されたアートカタログを閲覧し、ページをまたいだ行選択を管理する REST API
// @description     選択状態は設定されたストア（file / sqlite / postgres）に永続化されます。

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	logger := initLogger()
	cfg := loadConfig(logger)

	shutdownTracing := tracing.Setup(tracing.Config{
		ServiceName:    "catalog-selection",
		ServiceVersion: cfg.Version,
		SampleRatio:    cfg.Tracing.SampleRatio,
	})
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	components, err := setupServer(context.Background(), logger, cfg)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}
	defer components.Close(logger)

	if err := runServer(logger, cfg, components); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger initializes the process logger from LOG_LEVEL and LOG_FORMAT.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadConfig loads the service configuration, logging every fallback applied.
func loadConfig(logger *slog.Logger) *appconfig.AppConfig {
	cfg, warnings, err := appconfig.Load()
	for _, w := range warnings {
		logger.Warn("configuration fallback", slog.String("detail", w))
	}
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler    http.Handler
	Controller *selUC.Controller
	// DB is nil for the file store.
	DB *sql.DB
	// Mirror is nil unless the catalog is served from the database.
	Mirror *mirrorUC.Service
}

// Close releases the database, if any.
func (c *ServerComponents) Close(logger *slog.Logger) {
	if c.DB == nil {
		return
	}
	if err := c.DB.Close(); err != nil {
		logger.Error("failed to close database", slog.Any("error", err))
	}
}

// storeBackend is the opened selection store and, for SQL backends, the
// database behind it.
type storeBackend struct {
	blobs   repository.BlobStore
	db      *sql.DB
	breaker *circuitbreaker.DBCircuitBreaker
	records repository.RecordRepository
}

// openStore opens the configured selection store. SQL backends are migrated
// and wrapped in the database circuit breaker; the same connection also
// serves the records table for the database catalog source.
func openStore(ctx context.Context, logger *slog.Logger, cfg appconfig.StoreConfig, paginationCfg pagination.Config) (*storeBackend, error) {
	switch cfg.Backend {
	case appconfig.StoreFile:
		blobs, err := fileRepo.NewBlobStore(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		logger.Info("selection store: file", slog.String("dir", cfg.FilePath))
		return &storeBackend{blobs: blobs}, nil

	case appconfig.StoreSQLite:
		database, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUp(database, db.DialectSQLite); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		cb := circuitbreaker.NewDBCircuitBreaker(database)
		logger.Info("selection store: sqlite", slog.String("path", cfg.SQLitePath))
		return &storeBackend{
			blobs:   sqliteRepo.NewBlobRepo(cb),
			db:      database,
			breaker: cb,
			records: sqliteRepo.NewRecordRepo(cb, paginationCfg),
		}, nil

	case appconfig.StorePostgres:
		database, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUp(database, db.DialectPostgres); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		cb := circuitbreaker.NewDBCircuitBreaker(database)
		logger.Info("selection store: postgres")
		return &storeBackend{
			blobs:   pgRepo.NewBlobRepo(cb),
			db:      database,
			breaker: cb,
			records: pgRepo.NewRecordRepo(cb, paginationCfg),
		}, nil
	}
	return nil, fmt.Errorf("unsupported selection store %q", cfg.Backend)
}

// setupServer wires the store, the catalog provider and the selection
// controller, and returns the HTTP handler with all routes and middleware.
func setupServer(ctx context.Context, logger *slog.Logger, cfg *appconfig.AppConfig) (*ServerComponents, error) {
	catalogCfg, err := catalog.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}

	paginationCfg := pagination.LoadFromEnv()
	if paginationCfg.DefaultLimit != catalogCfg.PageSize {
		logger.Warn("PAGINATION_DEFAULT_LIMIT differs from CATALOG_PAGE_SIZE, using the catalog page size",
			slog.Int("pagination_default_limit", paginationCfg.DefaultLimit),
			slog.Int("catalog_page_size", catalogCfg.PageSize))
		paginationCfg.DefaultLimit = catalogCfg.PageSize
	}
	if paginationCfg.MaxLimit < catalogCfg.MaxLimit {
		paginationCfg.MaxLimit = catalogCfg.MaxLimit
	}

	store, err := openStore(ctx, logger, cfg.Store, paginationCfg)
	if err != nil {
		return nil, err
	}

	components := &ServerComponents{DB: store.db}
	breakers := make(map[string]hhttp.BreakerState)
	if store.breaker != nil {
		breakers["db"] = store.breaker
	}

	upstream := catalog.NewHTTPProvider(catalogCfg)
	breakers["catalog"] = upstream.CircuitBreaker()

	var provider repository.RecordProvider = upstream
	if cfg.Catalog.Source == appconfig.SourceDatabase {
		provider = store.records
		components.Mirror = mirrorUC.NewService(upstream, store.records, mirrorUC.Config{
			BatchSize: catalogCfg.MaxLimit,
			MaxPages:  cfg.Jobs.MirrorPages,
		}, logger)
	}
	logger.Info("catalog source configured",
		slog.String("source", cfg.Catalog.Source),
		slog.String("base_url", catalogCfg.BaseURL),
		slog.Int("page_size", catalogCfg.PageSize))

	selStore := selUC.LoadStore(ctx, store.blobs, cfg.Store.Key, logger)
	ctrl := selUC.NewController(selStore, selUC.NewCursor(catalogCfg.PageSize), provider, logger)
	components.Controller = ctrl

	rootMux := setupRoutes(logger, cfg.Version, ctrl, paginationCfg, store.db, breakers)
	handler, err := applyMiddleware(logger, rootMux)
	if err != nil {
		components.Close(logger)
		return nil, err
	}
	components.Handler = handler
	return components, nil
}

// setupRoutes registers the selection API and the operational endpoints.
func setupRoutes(
	logger *slog.Logger,
	version string,
	ctrl *selUC.Controller,
	paginationCfg pagination.Config,
	database *sql.DB,
	breakers map[string]hhttp.BreakerState,
) *http.ServeMux {
	mux := http.NewServeMux()

	hselection.Register(mux, ctrl, paginationCfg, logger)

	// ヘルスチェック・メトリクス
	mux.Handle("/health", &hhttp.HealthHandler{
		DB:            database,
		Breakers:      breakers,
		SelectedCount: ctrl.SelectedCount,
		Version:       version,
	})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	// Swagger UI
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): CORS → Request ID → Tracing → Rate Limit → Recovery → Logging → Body Limit → Metrics
func applyMiddleware(logger *slog.Logger, handler http.Handler) (http.Handler, error) {
	corsConfig, corsEnabled, err := middleware.LoadCORSConfig()
	if err != nil {
		return nil, fmt.Errorf("load CORS configuration: %w", err)
	}
	rateLimitConfig := config.LoadRateLimitConfig()

	// Apply in reverse order (innermost to outermost)
	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)

	if rateLimitConfig.Enabled {
		chain = hhttp.NewRateLimiter(rateLimitConfig.RPS, rateLimitConfig.Burst).Limit(chain)
		logger.Info("rate limiting enabled",
			slog.Float64("rps", rateLimitConfig.RPS),
			slog.Int("burst", rateLimitConfig.Burst))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	if corsEnabled {
		corsConfig.Logger = logger
		chain = middleware.CORS(corsConfig)(chain)
		logger.Info("CORS enabled",
			slog.Any("allowed_origins", corsConfig.AllowedOrigins),
			slog.Any("allowed_methods", corsConfig.AllowedMethods),
			slog.Int("max_age", corsConfig.MaxAge))
	}

	return chain, nil
}

// runServer starts the HTTP server and the job scheduler, and shuts both
// down on SIGINT or SIGTERM.
func runServer(logger *slog.Logger, cfg *appconfig.AppConfig, components *ServerComponents) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler, err := startScheduler(ctx, logger, cfg.Jobs, components)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})
	if components.Mirror != nil {
		g.Go(func() error {
			seedMirror(gctx, logger, components.Mirror)
			return nil
		})
	}

	err = g.Wait()

	// 実行中のジョブの完了を待つ
	<-scheduler.Stop().Done()
	logger.Info("server exited gracefully")
	return err
}
