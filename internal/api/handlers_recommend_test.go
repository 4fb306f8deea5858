// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/kinograph/internal/models"
	"github.com/tomtom215/kinograph/internal/recommend"
)

func TestRecommend(t *testing.T) {
	h := newTestHandler(t, newTestMockClient(), newTestEngine(t, true))

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/movies/recommend/603", nil), "id", "603")
	rec := httptest.NewRecorder()
	h.Recommend(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.Recommendations
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if len(resp.Recommendations) == 0 {
		t.Fatal("Expected at least one recommendation")
	}
	if len(resp.Recommendations) > 3 {
		t.Errorf("Corpus has 4 movies, expected at most 3 recommendations, got %d", len(resp.Recommendations))
	}
	for _, r := range resp.Recommendations {
		if r.ID == 603 {
			t.Error("Recommendations must exclude the source movie")
		}
		if r.Score < 0 || r.Score > 1 {
			t.Errorf("Expected score in [0,1], got %f for movie %d", r.Score, r.ID)
		}
		if r.Title == "" {
			t.Errorf("Expected full movie metadata for %d", r.ID)
		}
	}

	// Scores must be ordered descending
	for i := 1; i < len(resp.Recommendations); i++ {
		if resp.Recommendations[i].Score > resp.Recommendations[i-1].Score {
			t.Error("Expected recommendations ordered by descending score")
		}
	}

	// The sequel shares vocabulary and genres with the source; it must rank first
	if resp.Recommendations[0].ID != 604 {
		t.Errorf("Expected The Matrix Reloaded (604) to rank first, got %d", resp.Recommendations[0].ID)
	}
}

func TestRecommend_KParameter(t *testing.T) {
	h := newTestHandler(t, newTestMockClient(), newTestEngine(t, true))

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/movies/recommend/603?k=1", nil), "id", "603")
	rec := httptest.NewRecorder()
	h.Recommend(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp models.Recommendations
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if len(resp.Recommendations) != 1 {
		t.Errorf("Expected exactly 1 recommendation, got %d", len(resp.Recommendations))
	}
}

func TestRecommend_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		id   string
		url  string
	}{
		{"non-numeric id", "abc", "/movies/recommend/abc"},
		{"zero id", "0", "/movies/recommend/0"},
		{"k zero", "603", "/movies/recommend/603?k=0"},
		{"k beyond max", "603", "/movies/recommend/603?k=21"},
		{"k non-numeric", "603", "/movies/recommend/603?k=five"},
	}

	h := newTestHandler(t, newTestMockClient(), newTestEngine(t, true))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withURLParam(httptest.NewRequest(http.MethodGet, tt.url, nil), "id", tt.id)
			rec := httptest.NewRecorder()
			h.Recommend(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", rec.Code)
			}
			resp := decodeErrorBody(t, rec)
			if resp.Error.Code != models.ErrCodeValidation {
				t.Errorf("Expected code %q, got %q", models.ErrCodeValidation, resp.Error.Code)
			}
		})
	}
}

func TestRecommend_UnknownMovie(t *testing.T) {
	h := newTestHandler(t, newTestMockClient(), newTestEngine(t, true))

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/movies/recommend/99999", nil), "id", "99999")
	rec := httptest.NewRecorder()
	h.Recommend(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rec.Code)
	}
	resp := decodeErrorBody(t, rec)
	if resp.Error.Code != models.ErrCodeNotFound {
		t.Errorf("Expected code %q, got %q", models.ErrCodeNotFound, resp.Error.Code)
	}
}

func TestRecommend_NotTrained(t *testing.T) {
	h := newTestHandler(t, newTestMockClient(), newTestEngine(t, false))

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/movies/recommend/603", nil), "id", "603")
	rec := httptest.NewRecorder()
	h.Recommend(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d", rec.Code)
	}
	resp := decodeErrorBody(t, rec)
	if resp.Error.Code != models.ErrCodeModelNotReady {
		t.Errorf("Expected code %q, got %q", models.ErrCodeModelNotReady, resp.Error.Code)
	}
}

func TestRecommend_EngineDisabled(t *testing.T) {
	h := newTestHandler(t, newTestMockClient(), nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/movies/recommend/603", nil), "id", "603")
	rec := httptest.NewRecorder()
	h.Recommend(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d", rec.Code)
	}
}

func TestRecommendationStatus(t *testing.T) {
	h := newTestHandler(t, newTestMockClient(), newTestEngine(t, true))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/status", nil)
	rec := httptest.NewRecorder()
	h.RecommendationStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if resp.Status != models.StatusSuccess {
		t.Errorf("Expected status success, got %q", resp.Status)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected object data, got %T", resp.Data)
	}
	if trained, _ := data["trained"].(bool); !trained {
		t.Error("Expected trained=true after training")
	}
}

func TestTriggerTraining(t *testing.T) {
	engine := newTestEngine(t, false)
	h := newTestHandler(t, newTestMockClient(), engine)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/train", nil)
	rec := httptest.NewRecorder()
	h.TriggerTraining(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d: %s", rec.Code, rec.Body.String())
	}

	// Training runs in the background; wait for it to take effect
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if engine.IsTrained() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("Expected engine to be trained after triggering training")
}

// slowTrainCorpusProvider delays the corpus fetch so a training run
// stays in flight long enough for a second trigger to collide with it.
type slowTrainCorpusProvider struct {
	testCorpusProvider
	delay time.Duration
}

func (p *slowTrainCorpusProvider) GetCorpus(ctx context.Context) ([]recommend.Item, error) {
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return p.testCorpusProvider.GetCorpus(ctx)
}

func TestTriggerTraining_ConcurrentConflict(t *testing.T) {
	engine := newTestEngine(t, false)
	engine.SetCatalogProvider(&slowTrainCorpusProvider{
		testCorpusProvider: testCorpusProvider{movies: testMovies()},
		delay:              200 * time.Millisecond,
	})
	h := newTestHandler(t, newTestMockClient(), engine)

	first := httptest.NewRecorder()
	h.TriggerTraining(first, httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/train", nil))
	if first.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202 for first trigger, got %d: %s", first.Code, first.Body.String())
	}

	// The first run holds the training lock; a second trigger must get a
	// definitive 409 instead of a second 202.
	second := httptest.NewRecorder()
	h.TriggerTraining(second, httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/train", nil))
	if second.Code != http.StatusConflict {
		t.Fatalf("Expected status 409 for concurrent trigger, got %d: %s", second.Code, second.Body.String())
	}

	var resp models.APIResponse
	if err := json.Unmarshal(second.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeTrainingInProgress {
		t.Errorf("Expected error code %s, got %+v", models.ErrCodeTrainingInProgress, resp.Error)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if engine.IsTrained() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("Expected first training run to complete")
}
