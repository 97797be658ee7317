package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	syncapp "github.com/chainsync/backend/internal/application/sync"
	"github.com/chainsync/backend/internal/infrastructure/auth"
	"github.com/chainsync/backend/internal/infrastructure/branch"
	"github.com/chainsync/backend/internal/infrastructure/cache"
	"github.com/chainsync/backend/internal/infrastructure/config"
	"github.com/chainsync/backend/internal/infrastructure/logger"
	"github.com/chainsync/backend/internal/infrastructure/persistence"
	"github.com/chainsync/backend/internal/infrastructure/telemetry"
	"github.com/chainsync/backend/internal/interfaces/http/handler"
	"github.com/chainsync/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting chainsync backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()

	if err := telemetry.RegisterDBTracing(db.DB, &cfg.Telemetry, log); err != nil {
		log.Fatal("failed to register database tracing", zap.Error(err))
	}

	// Production schemas come from the versioned migrations in cmd/migrate.
	if cfg.App.Env != "production" {
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	idempotency := newIdempotencyStore(cfg, log)
	defer func() {
		if err := idempotency.Close(); err != nil {
			log.Error("error closing idempotency store", zap.Error(err))
		}
	}()

	syncLogRepo := persistence.NewGormSyncLogRepository(db.DB)
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	repos := persistence.NewRepositories(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	registry := syncapp.NewRegistry(
		syncapp.NewCustomerAdapter(),
		syncapp.NewEmployeeAdapter(),
		syncapp.NewProductAdapter(),
		syncapp.NewInventoryAdapter(),
		syncapp.NewPriceAdapter(),
	)
	recorder := syncapp.NewRecorder(syncLogRepo, log)
	pusher := branch.NewClient(cfg.Branch.ClientTimeout)
	distributor := syncapp.NewDistributor(branchRepo, pusher, cfg.Branch.PushTimeout, log)
	engine := syncapp.NewEngine(registry, scope, repos, recorder, distributor, log)

	logService := syncapp.NewLogService(syncLogRepo, log)
	branchService := syncapp.NewBranchService(branchRepo, log)

	tokens := auth.NewTokenService(cfg.JWT)

	ginEngine := router.New(
		router.Options{Config: cfg, Logger: log, Tokens: tokens},
		handler.NewSyncHandler(engine, idempotency, &cfg.Branch),
		handler.NewEntityHandler(engine),
		handler.NewSyncLogHandler(logService),
		handler.NewBranchHandler(branchService),
	)
	handler.NewSystemHandler(db, version).RegisterRoutes(ginEngine)

	if cfg.SyncLog.CleanupEnabled {
		go runSyncLogCleanup(ctx, logService, cfg.SyncLog, log)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        ginEngine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

// newIdempotencyStore prefers Redis; the in-memory store is the fallback
// for single-instance deployments without one.
func newIdempotencyStore(cfg *config.Config, log *zap.Logger) cache.IdempotencyStore {
	store, err := cache.NewRedisIdempotencyStore(&cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, using in-memory idempotency store", zap.Error(err))
		return cache.NewInMemoryIdempotencyStore()
	}
	log.Info("redis idempotency store connected", zap.String("addr", cfg.Redis.Addr()))
	return store
}

// runSyncLogCleanup prunes finished sync logs past the retention window on
// a fixed interval until the context is cancelled.
func runSyncLogCleanup(ctx context.Context, logs *syncapp.LogService, cfg config.SyncLogConfig, log *zap.Logger) {
	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := logs.Cleanup(ctx, cfg.Retention)
			if err != nil {
				log.Error("sync log cleanup failed", zap.Error(err))
				continue
			}
			if deleted > 0 {
				log.Info("sync log cleanup", zap.Int64("deleted", deleted))
			}
		}
	}
}
