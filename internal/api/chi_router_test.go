// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/kinograph/internal/models"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	h := newTestHandler(t, newTestMockClient(), newTestEngine(t, true))
	return NewRouter(h, newTestConfig()).SetupChi()
}

func TestSetupChi_ContractRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		topLevelKey    string
	}{
		{"movies", "/movies?page=1", http.StatusOK, "movies"},
		{"popular", "/movies/popular", http.StatusOK, "movies"},
		{"recommend", "/movies/recommend/603", http.StatusOK, "recommendations"},
		{"detail", "/movies/603", http.StatusOK, "id"},
		{"genres", "/genres", http.StatusOK, "genres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}

			var raw map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if _, ok := raw[tt.topLevelKey]; !ok {
				t.Errorf("Expected top-level key %q in response to %s", tt.topLevelKey, tt.path)
			}
		})
	}
}

func TestSetupChi_RecommendBeatsDetailRoute(t *testing.T) {
	router := newTestRouter(t)

	// /movies/recommend/{id} must not be captured by /movies/{id}
	req := httptest.NewRequest(http.MethodGet, "/movies/recommend/603", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp models.Recommendations
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if len(resp.Recommendations) == 0 {
		t.Error("Expected recommendations payload, route may have been shadowed")
	}
}

func TestSetupChi_OperationalRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"health", http.MethodGet, "/api/v1/health", http.StatusOK},
		{"liveness", http.MethodGet, "/api/v1/health/live", http.StatusOK},
		{"readiness", http.MethodGet, "/api/v1/health/ready", http.StatusOK},
		{"recommend status", http.MethodGet, "/api/v1/recommendations/status", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/nope", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/movies", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestSetupChi_RequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	t.Run("generates request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/genres", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("Expected X-Request-ID header in response")
		}
	})

	t.Run("honors inbound request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/genres", nil)
		req.Header.Set("X-Request-ID", "client-supplied-id")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got != "client-supplied-id" {
			t.Errorf("Expected inbound request ID to be echoed, got %q", got)
		}
	})
}

func TestSetupChi_CORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/movies", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected preflight status 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Expected Access-Control-Allow-Origin header on preflight response")
	}
}

func TestSetupChi_CompressedResponse(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/movies?page=1", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if enc := rec.Header().Get("Content-Encoding"); enc != "gzip" {
		t.Errorf("Expected gzip Content-Encoding, got %q", enc)
	}
}
