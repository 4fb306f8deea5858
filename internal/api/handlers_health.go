// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/kinograph/internal/models"
)

// Version is the service version reported by the health endpoints.
const Version = "1.0.0"

// Health handles GET /api/v1/health
//
// @Summary Get system health status
// @Description Returns upstream connectivity, circuit-breaker state, recommendation model state, and uptime.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Health status"
// @Router /api/v1/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	upstreamConnected := h.client != nil && h.client.Ping(r.Context()) == nil

	status := "healthy"
	if !upstreamConnected {
		status = "degraded"
	}

	breakerState := ""
	if h.breaker != nil {
		breakerState = h.breaker.StateString()
	}

	modelTrained := false
	modelVersion := 0
	if h.engine != nil {
		modelTrained = h.engine.IsTrained()
		modelVersion = h.engine.GetStatus().ModelVersion
	}

	health := models.HealthStatus{
		Status:            status,
		Version:           Version,
		UpstreamConnected: upstreamConnected,
		BreakerState:      breakerState,
		ModelTrained:      modelTrained,
		ModelVersion:      modelVersion,
		Uptime:            time.Since(h.startTime).Seconds(),
		Performance:       h.performanceSummary(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK if the process is alive, regardless of external dependencies.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /api/v1/health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Ready means the upstream provider is reachable, so catalog requests can
// be served from source rather than only from cache.
//
// @Summary Kubernetes readiness probe
// @Description Returns 200 OK when the upstream metadata provider is reachable; 503 otherwise.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Service is ready"
// @Failure 503 {object} models.APIResponse "Service is not ready"
// @Router /api/v1/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	upstreamConnected := h.client != nil && h.client.Ping(r.Context()) == nil

	statusCode := http.StatusOK
	status := models.StatusSuccess
	if !upstreamConnected {
		statusCode = http.StatusServiceUnavailable
		status = models.StatusError
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"upstream_connected": upstreamConnected,
			"ready_to_serve":     upstreamConnected,
			"uptime":             time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// performanceSummary converts the latency monitor's per-endpoint stats
// into the health payload shape. Empty until the first request passes
// through the monitored routes.
func (h *Handler) performanceSummary() []models.EndpointLatency {
	if h.perfMon == nil {
		return nil
	}

	stats := h.perfMon.GetStats()
	if len(stats) == 0 {
		return nil
	}

	summary := make([]models.EndpointLatency, 0, len(stats))
	for _, s := range stats {
		summary = append(summary, models.EndpointLatency{
			Endpoint:     s.Path,
			RequestCount: s.RequestCount,
			AvgMS:        s.AvgDuration,
			P95MS:        s.P95Duration,
			P99MS:        s.P99Duration,
		})
	}
	return summary
}
