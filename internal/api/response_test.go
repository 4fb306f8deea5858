// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/kinograph/internal/models"
)

func TestGenerateETag(t *testing.T) {
	a := generateETag([]byte("hello"))
	b := generateETag([]byte("hello"))
	c := generateETag([]byte("world"))

	if a != b {
		t.Errorf("Expected identical input to produce identical ETags, got %q and %q", a, b)
	}
	if a == c {
		t.Errorf("Expected different input to produce different ETags, both %q", a)
	}
	if a == "" {
		t.Error("Expected non-empty ETag")
	}
}

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain string", "hello world", "hello world"},
		{"newline injection", "line1\nline2", "line1\\x0aline2"},
		{"carriage return", "a\rb", "a\\x0db"},
		{"tab", "a\tb", "a\\x09b"},
		{"delete char", "a\x7fb", "a\\x7fb"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeLogValue(tt.input); got != tt.expected {
				t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, http.StatusBadRequest, models.ErrCodeValidation, "Page must be an integer between 1 and 500", nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Expected JSON content type, got %q", ct)
	}

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if resp.Status != models.StatusError {
		t.Errorf("Expected status %q, got %q", models.StatusError, resp.Status)
	}
	if resp.Error == nil {
		t.Fatal("Expected error details in response")
	}
	if resp.Error.Code != models.ErrCodeValidation {
		t.Errorf("Expected code %q, got %q", models.ErrCodeValidation, resp.Error.Code)
	}
	if resp.Metadata.Timestamp.IsZero() {
		t.Error("Expected metadata timestamp to be set")
	}
}

func TestRespondPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	respondPayload(rec, http.StatusOK, models.PopularPage{Movies: []models.Movie{{ID: 603, Title: "The Matrix"}}})

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("Expected ETag header on 200 response")
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=60" {
		t.Errorf("Expected Cache-Control header, got %q", cc)
	}

	// Bare payload, no envelope
	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if _, ok := payload["movies"]; !ok {
		t.Error("Expected top-level movies key")
	}
	if _, ok := payload["status"]; ok {
		t.Error("Contract payloads must not carry an envelope status field")
	}
}

func TestGetIntParam(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		key         string
		defaultVal  int
		expected    int
		expectError bool
	}{
		{"missing uses default", "", "page", 1, 1, false},
		{"valid value", "page=7", "page", 1, 7, false},
		{"negative value parses", "page=-3", "page", 1, -3, false},
		{"non-numeric errors", "page=abc", "page", 1, 0, true},
		{"empty value uses default", "page=", "page", 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/movies?"+tt.query, nil)
			got, err := getIntParam(r, tt.key, tt.defaultVal)
			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     interface{}
		wantErr bool
	}{
		{"valid movies request", &MoviesRequest{Page: 1}, false},
		{"page at upper bound", &MoviesRequest{Page: 500}, false},
		{"page zero", &MoviesRequest{Page: 0}, true},
		{"page beyond domain", &MoviesRequest{Page: 501}, true},
		{"valid recommend request", &RecommendRequest{ID: 603, K: 5}, false},
		{"k at max", &RecommendRequest{ID: 603, K: 20}, false},
		{"k beyond max", &RecommendRequest{ID: 603, K: 21}, true},
		{"k zero", &RecommendRequest{ID: 603, K: 0}, true},
		{"negative id", &RecommendRequest{ID: -1, K: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := validateRequest(tt.req)
			if tt.wantErr && apiErr == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !tt.wantErr && apiErr != nil {
				t.Fatalf("Unexpected validation error: %s", apiErr.Message)
			}
			if apiErr != nil && apiErr.Code != models.ErrCodeValidation {
				t.Errorf("Expected code %q, got %q", models.ErrCodeValidation, apiErr.Code)
			}
		})
	}
}
