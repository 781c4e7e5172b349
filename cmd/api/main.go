// Package main is the entry point for the Anbu web backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/anbu-gynaecare/webapp/config"
	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/infra/db"
	"github.com/anbu-gynaecare/webapp/internal/infra/dependency"
	"github.com/anbu-gynaecare/webapp/internal/infra/redis"
	"github.com/anbu-gynaecare/webapp/internal/integration/cache"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Anbu web backend",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"api_base_url", cfg.API.BaseURL,
	)

	// The session store holds every browser's token, so there is no
	// degraded mode without it.
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	checks := dependency.HealthCheckers{Database: database.HealthCheck}
	responseCache, closeCache := newCache(cfg, &checks)
	defer closeCache()

	injector := dependency.NewInjector(cfg, database.DB(), responseCache, checks)
	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go runSweeper(sweepCtx, injector, cfg.Session.CleanupInterval)

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	injector.Registry.CloseAll()

	slog.Info("Server exited properly")
}

// newCache selects the response cache backend. Redis failures fall back to
// the in-process cache.
func newCache(cfg *config.Config, checks *dependency.HealthCheckers) (adapter.Cache, func()) {
	if cfg.Cache.Backend != config.CacheBackendRedis {
		return cache.NewMemoryCache(), func() {}
	}

	client, err := redis.NewConnection(&cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, using in-memory cache", "error", err)
		return cache.NewMemoryCache(), func() {}
	}

	checks.Cache = redis.HealthChecker(client)
	return cache.NewRedisCache(client), func() {
		if err := client.Close(); err != nil {
			slog.Error("Failed to close Redis connection", "error", err)
		}
	}
}

func runSweeper(ctx context.Context, injector *dependency.Injector, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			injector.Sweep(ctx, now)
		}
	}
}
