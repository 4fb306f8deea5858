// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"time"

	"github.com/tomtom215/kinograph/internal/catalog"
	"github.com/tomtom215/kinograph/internal/config"
	"github.com/tomtom215/kinograph/internal/metadata"
	"github.com/tomtom215/kinograph/internal/middleware"
	"github.com/tomtom215/kinograph/internal/recommend"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_catalog.go: Catalog contract endpoints
//   - handlers_recommend.go: Recommendation endpoints and training control
//   - handlers_health.go: Health and monitoring endpoints
type Handler struct {
	catalog   *catalog.Service
	engine    *recommend.Engine
	client    metadata.TMDBClientInterface
	breaker   *metadata.CircuitBreakerClient
	config    *config.Config
	startTime time.Time
	perfMon   *middleware.PerformanceMonitor
}

// NewHandler creates a new API handler.
//
// Dependencies:
//   - catalogSvc: Catalog service backing the contract endpoints
//   - engine: Recommendation engine (nil when recommendations are disabled;
//     the recommend endpoints then answer 503 MODEL_NOT_READY)
//   - client: Upstream client used by the health endpoints to probe
//     connectivity; pass the breaker-wrapped client when the breaker is on
//   - breaker: Circuit-breaker wrapper, used by the health endpoints to
//     report upstream state (nil when disabled)
//   - cfg: Application configuration
//
// Example:
//
//	handler := api.NewHandler(catalogSvc, engine, client, breaker, cfg)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(":8000", router.SetupChi())
func NewHandler(catalogSvc *catalog.Service, engine *recommend.Engine, client metadata.TMDBClientInterface, breaker *metadata.CircuitBreakerClient, cfg *config.Config) *Handler {
	return &Handler{
		catalog:   catalogSvc,
		engine:    engine,
		client:    client,
		breaker:   breaker,
		config:    cfg,
		startTime: time.Now(),
		perfMon:   middleware.NewPerformanceMonitor(1000), // Keep last 1000 requests
	}
}
