// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

/*
Package api assembles the HTTP server for the Bookhaven marketplace.

It owns the middleware chain and the route tree; the domain packages supply
their own sub-routers which are mounted here.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/bookhaven/api/internal/platform/config"
	"github.com/bookhaven/api/internal/platform/constants"
	"github.com/bookhaven/api/internal/platform/middleware"
)

// Handlers bundles every mounted route group for dependency injection.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc
	Auth      chi.Router
	Users     chi.Router
	Books     chi.Router
}

// NewServer builds the fully wired http.Server.
//
// # Middleware Order
//
// The chain is deliberate: tracing and logging first so every outcome is
// correlated, then throttling and recovery, then authentication so claims
// are available to all route groups. Role gates live on the sub-routers
// that own them.
func NewServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	verifier middleware.TokenVerifier,
	handlers Handlers,
) *http.Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(ctx))
	router.Use(middleware.PanicRecovery(logger))
	router.Use(middleware.Authenticate(verifier))
	router.Use(middleware.CORS(cfg))
	router.Use(chimw.CleanPath)

	// Infrastructure probes
	router.Get("/health", handlers.Liveness)
	router.Get("/ready", handlers.Readiness)

	// Uploaded book images are served statically.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
	router.Get("/uploads/*", fileServer.ServeHTTP)

	// Business routes
	router.Route("/api", func(api chi.Router) {
		api.Mount("/auth", handlers.Auth)
		api.Mount("/users", handlers.Users)
		api.Mount("/books", handlers.Books)
	})

	return &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadTimeout:       constants.DefaultReadTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
	}
}
