package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"userapp/internal/adapter/database/memory"
	pgdatabase "userapp/internal/adapter/database/postgres"
	pgrepository "userapp/internal/adapter/database/postgres/repository"
	rediscache "userapp/internal/adapter/database/redis"
	sqlitedatabase "userapp/internal/adapter/database/sqlite"
	sqliterepository "userapp/internal/adapter/database/sqlite/repository"
	"userapp/internal/adapter/http/routes"
	"userapp/internal/core/port"
	"userapp/pkg/config"
)

func StartServer(metrics *config.AppMetrics, logger *config.AppLogger) {
	StartServerWithConfig(metrics, logger, config.GetDefaultConfig())
}

func StartServerWithConfig(metrics *config.AppMetrics, logger *config.AppLogger, cfg *config.AppConfig) {
	repo, cleanup := newUserRepository()
	defer cleanup()

	cache := newCache(cfg)
	defer cache.Close()

	container := NewContainer(repo, cache, logger)

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		UserHandler: container.UserHandler,
	}, metrics, logger, cfg)

	port := config.GetServerPort()

	slog.Info("Server starting",
		"port", port,
		"environment", cfg.Environment,
		"rate_limit_enabled", cfg.RateLimitEnabled)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
	}
}

// newUserRepository prefers postgres and falls back to the embedded sqlite
// database when DATABASE_URL is not configured.
func newUserRepository() (port.UserRepository, func()) {
	if os.Getenv("DATABASE_URL") != "" {
		db, err := pgdatabase.NewDB()

		if err != nil {
			slog.Error("Failed to connect to postgres", "error", err)
			os.Exit(1)
		}

		return pgrepository.NewUserRepository(db), db.Close
	}

	db, err := sqlitedatabase.NewDB()

	if err != nil {
		slog.Error("Failed to open sqlite database", "error", err)
		os.Exit(1)
	}

	return sqliterepository.NewUserRepository(db), func() { db.Close() }
}

func newCache(cfg *config.AppConfig) port.CacheRepository {
	if cfg.RedisAddr == "" {
		return memory.NewMemoryRepository()
	}

	cache, err := rediscache.New(context.Background(), cfg.RedisAddr)

	if err != nil {
		slog.Error("Failed to connect to redis, using in-memory cache", "error", err)
		return memory.NewMemoryRepository()
	}

	return cache
}
