// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

/*
Package middleware provides HTTP middleware components for the application.

This package implements infrastructure middleware for compression, performance
monitoring, and Prometheus metrics integration. The router composes these into
the stack applied to every catalog and recommendation request; request ID
handling lives with the router itself on top of chi's middleware.

Key Components:

  - Compression: Gzip compression for JSON responses
  - Performance Monitor: Recent-request latency window with percentile aggregation
  - Prometheus Metrics: HTTP request/response instrumentation

Usage Example - Compression:

	import "github.com/tomtom215/kinograph/internal/middleware"

	// Wrap handler with gzip compression
	http.HandleFunc("/movies",
	    middleware.Compression(handler),
	)

Usage Example - Performance Monitoring:

	// Create performance monitor with a 1000-sample window
	perfMon := middleware.NewPerformanceMonitor(1000)

	// Wrap handler
	mux.Handle("/movies", perfMon.Middleware(handler))

	// Get per-endpoint latency statistics (surfaced by /api/v1/health)
	stats := perfMon.GetStats()

Thread Safety:

All middleware components are thread-safe:
  - Compression uses pooled per-request gzip writers
  - Performance monitor guards its window with sync.RWMutex
  - Prometheus metrics use atomic operations

See Also:

  - internal/api: HTTP handlers and router-level middleware
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
