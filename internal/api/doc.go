// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

/*
Package api provides the HTTP REST API layer for Kinograph.

This package implements the catalog and recommendation endpoints that the
frontend consumes, plus the operational surface (health, training control,
metrics, swagger). It is the interface between HTTP clients and the catalog
service and recommendation engine.

Key Components:

  - Router: Chi route configuration and middleware stack integration
  - Handler: Request handlers for all API endpoints
  - Response formatting: bare contract payloads for the catalog routes,
    standardized JSON envelopes for the operational routes and all errors
  - Error handling: structured error bodies with machine-readable codes
  - Rate limiting: per-IP limits via go-chi/httprate
  - CORS: Cross-Origin Resource Sharing for frontend compatibility

API Categories:

1. Catalog Contract Endpoints (served at the root for client compatibility):
  - GET /movies?page=N          paginated catalog listing
  - GET /movies/popular         popular movies, first page
  - GET /movies/recommend/{id}  content-based similar movies
  - GET /movies/{id}            single movie detail
  - GET /genres                 the fixed genre registry

2. Operational Endpoints (/api/v1/):
  - Health checks (health, health/live, health/ready)
  - Recommendation model status and training control

3. Infrastructure:
  - GET /metrics   Prometheus exposition
  - GET /swagger/* interactive API documentation

Response Contract:

The catalog endpoints return their payloads bare, exactly as the frontend
expects ({"movies": [...]}, {"recommendations": [...]}). Every error, and
every operational endpoint, uses the models.APIResponse envelope with a
status, optional data, and a structured error carrying a machine-readable
code such as VALIDATION_ERROR or UPSTREAM_UNAVAILABLE.

Usage Example:

	import (
	    "github.com/tomtom215/kinograph/internal/api"
	    "github.com/tomtom215/kinograph/internal/catalog"
	    "github.com/tomtom215/kinograph/internal/recommend"
	)

	handler := api.NewHandler(catalogSvc, engine, client, breaker, cfg)
	router := api.NewRouter(handler, cfg)
	http.ListenAndServe(":8000", router.SetupChi())
*/
package api
