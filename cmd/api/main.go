// ABOUTME: Main entry point for the Contractes API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"contractes-api/api"
	"contractes-api/api/handlers"
	"contractes-api/api/middleware"
	coreconfig "contractes-api/core/config"
	"contractes-api/core/dataset"
	"contractes-api/core/domain"
	"contractes-api/core/interfaces"
	"contractes-api/core/schema"
	"contractes-api/core/source"
	"contractes-api/infrastructure/cache/memory"
	"contractes-api/infrastructure/cache/redis"
	"contractes-api/infrastructure/cache/sqlite"
	stdhttp "contractes-api/infrastructure/http/standard"
	"contractes-api/infrastructure/logger/structured"
	"contractes-api/infrastructure/metrics/prometheus"
	"contractes-api/pkg/config"
	"contractes-api/pkg/featureflags"
)

const warmUpTimeout = 60 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := structured.New(structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	flags := featureflags.NewEnvManager("FEATURE_")
	ctx := context.Background()

	logger.Info("Starting Contractes API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"endpoint":   cfg.Dataset.Endpoint,
		"cache_type": cfg.Cache.Type,
		"row_cap":    cfg.Dataset.RowCap,
	})

	var metrics *prometheus.Metrics
	if flags.IsEnabled(ctx, featureflags.MetricsEnabled) {
		metrics = prometheus.New()
	}

	cache, cacheName, closer := newCache(cfg, logger)
	if closer != nil {
		defer closer.Close()
	}

	// Create HTTP client with outgoing request logging
	httpClient := stdhttp.NewStandardHTTPClient(cfg.Dataset.Timeout, cfg.Dataset.RequestsPerSecond)
	httpClient.SetTransport(&middleware.LoggingRoundTripper{
		Transport: http.DefaultTransport,
		Logger:    logger,
	})

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}
	if metrics != nil {
		deps.Metrics = metrics
	}

	table, err := schema.LoadTable(cfg.Dataset.AliasesFile)
	if err != nil {
		log.Fatalf("Failed to load schema aliases: %v", err)
	}

	client := source.NewClient(deps, source.Options{
		Endpoint: cfg.Dataset.Endpoint,
		AppToken: cfg.Dataset.AppToken,
		Timeout:  cfg.Dataset.Timeout,
	})

	service := dataset.NewDatasetService(deps, client, schema.NewResolver(table), engineConfig(ctx, cfg, flags))

	go warmUp(service, logger)

	// Create API with middleware
	apiConfig := api.APIConfig{
		Logger:  logger,
		Metrics: deps.Metrics,
	}
	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		apiConfig.RateLimit = cfg.Server.RateLimit
		apiConfig.RateWindow = cfg.Server.RateWindow
	}
	if metrics != nil {
		apiConfig.MetricsHandler = metrics.Handler()
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	handlers.NewContractHandler(service).RegisterRoutes(humaAPI)

	handlers.NewHealthHandler(cacheName, cache, flags).RegisterRoutes(humaAPI)

	// Create HTTP server; bulk fetches can take most of the dataset timeout
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Dataset.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     log.New(logger.Writer(), "", 0),
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

// newCache selects the configured backend, falling back to memory on failure.
// The returned closer may be nil.
func newCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, string, io.Closer) {
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err == nil {
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
			return redisCache, "redis", redisCache
		}
		logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path, logger)
		if err == nil {
			logger.Info("Using SQLite cache", map[string]interface{}{
				"path": cfg.Cache.SQLite.Path,
			})
			return sqliteCache, "sqlite", sqliteCache
		}
		logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Using memory cache", nil)
	return memory.NewMemoryCache(), "memory", nil
}

// engineConfig maps application configuration and flags onto the engine
func engineConfig(ctx context.Context, cfg *config.Config, flags featureflags.Manager) coreconfig.EngineConfig {
	opts := []coreconfig.EngineOption{
		coreconfig.WithRowCap(cfg.Dataset.RowCap),
		coreconfig.WithSearchRowCap(cfg.Dataset.SearchRowCap),
		coreconfig.WithTTLs(cfg.Cache.SnapshotTTL, cfg.Cache.SearchTTL),
		coreconfig.WithOrderField(cfg.Dataset.OrderField),
		coreconfig.WithTopN(cfg.Ranking.TopN),
		coreconfig.WithLabelWidth(cfg.Ranking.LabelWidth),
		coreconfig.WithCache(flags.IsEnabled(ctx, featureflags.CacheEnabled)),
		coreconfig.WithDelegatedSearch(flags.IsEnabled(ctx, featureflags.DelegatedSearch)),
	}
	if scope, ok := domain.ParseScope(cfg.Search.DefaultScope); ok {
		opts = append(opts, coreconfig.WithDefaultScope(scope))
	}
	return coreconfig.NewEngineConfig(opts...)
}

// warmUp loads the bulk snapshot and the company directory in parallel so
// the first requests hit a warm cache. Failures are logged, never fatal.
func warmUp(service *dataset.DatasetService, logger interfaces.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), warmUpTimeout)
	defer cancel()

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := service.Snapshot(gctx)
		return err
	})
	g.Go(func() error {
		_, err := service.Companies(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Warn("Cache warm-up failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	logger.Info("Cache warmed", map[string]interface{}{
		"duration": time.Since(start).String(),
	})
}

func init() {
	// Print banner
	fmt.Println(`
   ______            __                  __
  / ____/___  ____  / /__________ ______/ /____  _____
 / /   / __ \/ __ \/ __/ ___/ __ '/ ___/ __/ _ \/ ___/
/ /___/ /_/ / / / / /_/ /  / /_/ / /__/ /_/  __(__  )
\____/\____/_/ /_/\__/_/   \__,_/\___/\__/\___/____/
	`)
}
