// Command server runs the bizcomply HTTP API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	appservice "github.com/bizcomply/bizcomply/internal/application/service"
	"github.com/bizcomply/bizcomply/internal/config"
	"github.com/bizcomply/bizcomply/internal/infrastructure/audit"
	"github.com/bizcomply/bizcomply/internal/infrastructure/cache"
	"github.com/bizcomply/bizcomply/internal/infrastructure/monitoring"
	"github.com/bizcomply/bizcomply/internal/infrastructure/persistence/postgres"
	"github.com/bizcomply/bizcomply/internal/interfaces/http/handlers"
	"github.com/bizcomply/bizcomply/internal/interfaces/http/router"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

const version = "1.0.0"

func main() {
	bootstrapLog := logger.MustNew(logger.Options{Level: "info", Format: "json"})
	ctx := context.Background()

	cfg, err := config.Load(bootstrapLog)
	if err != nil {
		bootstrapLog.Fatal(ctx, "failed to load configuration", err)
	}

	log := logger.MustNew(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := monitoring.NewMetrics(registry)

	conn, err := postgres.NewDBConnection(ctx, &cfg.Database, log)
	if err != nil {
		log.Fatal(ctx, "failed to connect to database", err)
	}
	defer conn.Close()

	if err := conn.Migrate(ctx); err != nil {
		log.Fatal(ctx, "failed to run migrations", err)
	}
	if err := postgres.NewSeeder(conn.DB(), log).Seed(ctx); err != nil {
		log.Fatal(ctx, "failed to seed regulation corpus", err)
	}

	store := buildCacheStore(ctx, cfg, log, metrics)
	cacheManager := cache.NewManager(store, cfg.Cache.TTL)
	defer cacheManager.Close()

	var auditPublisher audit.Publisher
	if cfg.Audit.Enabled {
		auditPublisher = audit.NewKafkaPublisher(&cfg.Audit, log, metrics)
	} else {
		auditPublisher = audit.NewNoopPublisher()
	}
	defer auditPublisher.Close()

	businessRepo := postgres.NewBusinessRepository(conn.DB(), log)
	regulationRepo := postgres.NewRegulationRepository(conn.DB(), log)
	complianceRepo := postgres.NewComplianceRepository(conn.DB(), log)

	complianceSvc := appservice.NewComplianceAppService(
		businessRepo, regulationRepo, complianceRepo,
		cacheManager, auditPublisher, metrics, log,
	)

	engine := router.New(&cfg.Server, log, metrics, registry, router.Handlers{
		Compliance: handlers.NewComplianceHandler(complianceSvc),
		Business:   handlers.NewBusinessHandler(appservice.NewBusinessAppService(businessRepo, log)),
		Regulation: handlers.NewRegulationHandler(appservice.NewRegulationAppService(regulationRepo, cacheManager, log)),
		Health:     handlers.NewHealthHandler(conn, cacheManager, version),
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info(ctx, "server listening", logger.String("addr", cfg.Server.Addr()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(ctx, "server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "graceful shutdown failed", err)
	}
	log.Info(ctx, "server stopped")
}

// buildCacheStore selects the configured cache backend. A failed Redis
// connection degrades to the in-process cache rather than aborting startup.
func buildCacheStore(ctx context.Context, cfg *config.Config, log logger.Logger, metrics *monitoring.Metrics) cache.Store {
	switch cfg.Cache.Backend {
	case "redis":
		store, err := cache.NewRedisStore(ctx, &cfg.Cache.Redis, log, metrics)
		if err != nil {
			log.Warn(ctx, "redis unavailable, falling back to in-process cache",
				logger.String("addr", cfg.Cache.Redis.Addr),
				logger.String("error", err.Error()),
			)
			return cache.NewMemoryStore(cfg.Cache.TTL, metrics)
		}
		return store
	case "disabled":
		return cache.NewNoopStore()
	default:
		return cache.NewMemoryStore(cfg.Cache.TTL, metrics)
	}
}
