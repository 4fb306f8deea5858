// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package models

// HealthStatus is the payload of GET /api/v1/health.
//
// Status is "healthy" when the upstream metadata provider is reachable,
// "degraded" otherwise. A degraded service still serves cached catalog
// responses and recommendations from the trained model.
type HealthStatus struct {
	Status            string            `json:"status"`
	Version           string            `json:"version"`
	UpstreamConnected bool              `json:"upstream_connected"`
	BreakerState      string            `json:"breaker_state,omitempty"`
	ModelTrained      bool              `json:"model_trained"`
	ModelVersion      int               `json:"model_version"`
	Uptime            float64           `json:"uptime"`
	Performance       []EndpointLatency `json:"performance,omitempty"`
}

// EndpointLatency summarizes observed request latency for one endpoint
// over the recent-request window. Durations are milliseconds.
type EndpointLatency struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	AvgMS        float64 `json:"avg_ms"`
	P95MS        int64   `json:"p95_ms"`
	P99MS        int64   `json:"p99_ms"`
}
