// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/bookhaven/api/internal/platform/constants"
	"github.com/bookhaven/api/internal/platform/postgres"
	"github.com/bookhaven/api/internal/platform/redis"
	"github.com/bookhaven/api/internal/platform/respond"
)

// healthStatus is the body for the liveness and readiness endpoints.
type healthStatus struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Liveness reports that the process is up. It never touches dependencies so
// an unhealthy database cannot cause a restart loop.
func Liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, healthStatus{
		Status:  "ok",
		Version: constants.AppVersion,
	})
}

// Readiness verifies the backing services and reports per-dependency status.
//
// A single failing dependency yields 503 so the load balancer drains this
// instance without killing it.
func Readiness(pool *pgxpool.Pool, cache *goredis.Client) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		checks := map[string]string{
			"postgres": "ok",
			"redis":    "ok",
		}
		healthy := true

		if err := postgres.Ping(request.Context(), pool); err != nil {
			checks["postgres"] = "unreachable"
			healthy = false
		}

		if err := redis.Ping(request.Context(), cache); err != nil {
			checks["redis"] = "unreachable"
			healthy = false
		}

		status := healthStatus{
			Status:  "ok",
			Version: constants.AppVersion,
			Checks:  checks,
		}

		if !healthy {
			status.Status = "degraded"
			respond.JSON(writer, http.StatusServiceUnavailable, status)
			return
		}

		respond.OK(writer, status)
	}
}
