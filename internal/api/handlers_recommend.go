// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/kinograph/internal/models"
	"github.com/tomtom215/kinograph/internal/recommend"
)

// Recommend handles GET /movies/recommend/{id}
//
// @Summary Get similar movies
// @Description Returns the movies most similar to the given one, ranked by blended content similarity and excluding the movie itself.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param id path int true "Source movie ID"
// @Param k query int false "Number of recommendations (1-20)" default(5)
// @Success 200 {object} models.Recommendations "Ranked similar movies"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 404 {object} models.APIResponse "Movie not in the corpus"
// @Failure 503 {object} models.APIResponse "Model not trained yet"
// @Router /movies/recommend/{id} [get]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeModelNotReady, "Recommendations are disabled", nil)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Movie ID must be an integer", err)
		return
	}

	k, err := getIntParam(r, "k", h.config.Recommend.DefaultK)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Parameter k must be an integer", err)
		return
	}

	req := RecommendRequest{ID: id, K: k}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	resp, err := h.engine.Similar(r.Context(), req.ID, req.K)
	if err != nil {
		respondServiceError(r.Context(), w, err)
		return
	}

	recommendations := make([]models.RecommendedMovie, 0, len(resp.Items))
	for _, scored := range resp.Items {
		recommendations = append(recommendations, models.RecommendedMovie{
			Movie: itemToMovie(scored.Item),
			Score: scored.Score,
		})
	}

	respondPayload(w, http.StatusOK, models.Recommendations{Recommendations: recommendations})
}

// itemToMovie converts a corpus item back to the catalog wire shape.
func itemToMovie(item recommend.Item) models.Movie {
	return models.Movie{
		ID:          item.ID,
		Title:       item.Title,
		Overview:    item.Overview,
		PosterPath:  item.PosterPath,
		ReleaseDate: item.ReleaseDate,
		GenreIDs:    item.GenreIDs,
		VoteAverage: item.VoteAverage,
		VoteCount:   item.VoteCount,
		Popularity:  item.Popularity,
	}
}

// RecommendationStatus handles GET /api/v1/recommendations/status
//
// @Summary Get recommendation model status
// @Description Returns training state, corpus size, model version, and engine counters.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Model status"
// @Router /api/v1/recommendations/status [get]
func (h *Handler) RecommendationStatus(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeModelNotReady, "Recommendations are disabled", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: map[string]interface{}{
			"training": h.engine.GetStatus(),
			"metrics":  h.engine.GetMetrics(),
			"trained":  h.engine.IsTrained(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// TriggerTraining handles POST /api/v1/recommendations/train
//
// @Summary Trigger model training
// @Description Starts a training run in the background. Returns 409 if a run is already in progress.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Success 202 {object} models.APIResponse "Training started"
// @Failure 409 {object} models.APIResponse "Training already in progress"
// @Router /api/v1/recommendations/train [post]
func (h *Handler) TriggerTraining(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeModelNotReady, "Recommendations are disabled", nil)
		return
	}

	// Detached from the request context so the run survives the 202.
	// The engine bounds it with its own training timeout and claims the
	// training lock before returning, so concurrent POSTs cannot both
	// get a 202.
	if err := h.engine.StartTraining(context.Background()); err != nil {
		respondError(w, http.StatusConflict, models.ErrCodeTrainingInProgress, "A training run is already in progress", err)
		return
	}

	respondJSON(w, http.StatusAccepted, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: map[string]interface{}{
			"message": "Training started",
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
