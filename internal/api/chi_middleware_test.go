// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/kinograph/internal/metrics"
	"github.com/tomtom215/kinograph/internal/models"
)

func TestRateLimit_RejectionEnvelope(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	cfg.RateLimitWindow = time.Minute
	m := NewChiMiddleware(cfg)

	handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	before := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("/movies"))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/movies", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/movies", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected status 429, got %d", second.Code)
	}

	var resp models.APIResponse
	if err := json.Unmarshal(second.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if resp.Status != models.StatusError {
		t.Errorf("Expected error status, got %v", resp.Status)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeRateLimited {
		t.Errorf("Expected error code %s, got %+v", models.ErrCodeRateLimited, resp.Error)
	}

	after := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("/movies"))
	if after != before+1 {
		t.Errorf("Expected rate limit counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	cfg.RateLimitDisabled = true
	m := NewChiMiddleware(cfg)

	handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected all requests to pass when disabled, got %d on request %d", rec.Code, i+1)
		}
	}
}
