// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

// Command api runs the Bookhaven marketplace HTTP server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bookhaven/api/internal/api"
	"github.com/bookhaven/api/internal/catalog"
	"github.com/bookhaven/api/internal/platform/config"
	"github.com/bookhaven/api/internal/platform/constants"
	"github.com/bookhaven/api/internal/platform/migration"
	"github.com/bookhaven/api/internal/platform/postgres"
	"github.com/bookhaven/api/internal/platform/redis"
	"github.com/bookhaven/api/internal/platform/sec"
	"github.com/bookhaven/api/internal/platform/upload"
	"github.com/bookhaven/api/internal/users/admin"
	"github.com/bookhaven/api/internal/users/auth"
)

func main() {
	// ── 1. Logging ────────────────────────────────────────────────────────
	logLevel := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("starting", slog.String("app", constants.AppName), slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(logger, "config_load_failed", err)

	// Root context cancelled on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 3. Infrastructure ─────────────────────────────────────────────────
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	must(logger, "postgres_connect_failed", err)
	defer pool.Close()

	cacheClient, err := redis.NewClient(ctx, cfg.RedisURL, logger)
	must(logger, "redis_connect_failed", err)
	defer func() { _ = cacheClient.Close() }()

	must(logger, "migration_failed", migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger))

	tokenService, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(logger, "token_service_init_failed", err)

	imageSaver, err := upload.NewSaver(cfg.UploadDir)
	must(logger, "upload_dir_init_failed", err)

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)

	authService := auth.NewService(userRepository, tokenService)
	authHandler := auth.NewHandler(authService)

	adminService := admin.NewService(userRepository)
	adminHandler := admin.NewHandler(adminService)

	bookRepository := catalog.NewRepository(pool)
	bookCache := catalog.NewRedisCache(cacheClient, logger)
	catalogService := catalog.NewService(bookRepository, bookCache)
	catalogHandler := catalog.NewHandler(catalogService, imageSaver)

	// ── 5. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(ctx, cfg, logger, tokenService, api.Handlers{
		Liveness:  api.Liveness,
		Readiness: api.Readiness(pool, cacheClient),
		Auth:      authHandler.Routes(),
		Users:     adminHandler.Routes(),
		Books:     catalogHandler.Routes(),
	})

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("http_server_listening", slog.String("addr", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_failed", slog.Any("error", err))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown_signal_received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful_shutdown_failed", slog.Any("error", err))
			_ = server.Close()
		}
	}

	logger.Info("stopped")
}

// must aborts startup when a critical dependency fails to initialize.
func must(logger *slog.Logger, message string, err error) {
	if err != nil {
		logger.Error(message, slog.Any("error", err))
		os.Exit(1)
	}
}
