// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/kinograph/internal/models"
)

// Movies handles GET /movies?page=N
//
// @Summary List catalog movies
// @Description Returns one page of the movie catalog ordered by popularity. Pages follow the upstream provider's domain (1-500).
// @Tags Catalog
// @Accept json
// @Produce json
// @Param page query int false "Page number (1-500)" default(1)
// @Success 200 {object} models.CatalogPage "One catalog page"
// @Failure 400 {object} models.APIResponse "Invalid page parameter"
// @Failure 502 {object} models.APIResponse "Upstream provider error"
// @Failure 503 {object} models.APIResponse "Upstream provider unavailable"
// @Router /movies [get]
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	page, err := getIntParam(r, "page", 1)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Page must be an integer between 1 and 500", err)
		return
	}

	req := MoviesRequest{Page: page}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	list, _, err := h.catalog.List(r.Context(), req.Page)
	if err != nil {
		respondServiceError(r.Context(), w, err)
		return
	}

	movies := list.Results
	if movies == nil {
		movies = []models.Movie{}
	}

	respondPayload(w, http.StatusOK, models.CatalogPage{
		Movies:       movies,
		TotalPages:   list.TotalPages,
		CurrentPage:  list.Page,
		TotalResults: list.TotalResults,
	})
}

// PopularMovies handles GET /movies/popular
//
// @Summary List popular movies
// @Description Returns the first page of currently popular movies.
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} models.PopularPage "Popular movies"
// @Failure 502 {object} models.APIResponse "Upstream provider error"
// @Failure 503 {object} models.APIResponse "Upstream provider unavailable"
// @Router /movies/popular [get]
func (h *Handler) PopularMovies(w http.ResponseWriter, r *http.Request) {
	movies, _, err := h.catalog.Popular(r.Context())
	if err != nil {
		respondServiceError(r.Context(), w, err)
		return
	}

	if movies == nil {
		movies = []models.Movie{}
	}

	respondPayload(w, http.StatusOK, models.PopularPage{Movies: movies})
}

// MovieDetail handles GET /movies/{id}
//
// @Summary Get a single movie
// @Description Returns one movie by its catalog identifier, flattened to the list shape.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} models.Movie "Movie detail"
// @Failure 400 {object} models.APIResponse "Invalid movie ID"
// @Failure 404 {object} models.APIResponse "Movie not found"
// @Router /movies/{id} [get]
func (h *Handler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Movie ID must be an integer", err)
		return
	}

	req := MovieDetailRequest{ID: id}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	movie, _, err := h.catalog.Get(r.Context(), req.ID)
	if err != nil {
		respondServiceError(r.Context(), w, err)
		return
	}

	respondPayload(w, http.StatusOK, movie)
}

// Genres handles GET /genres
//
// @Summary List the genre registry
// @Description Returns the fixed mapping of genre identifiers to display names, sorted by ID.
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} models.GenreList "Genre registry"
// @Router /genres [get]
func (h *Handler) Genres(w http.ResponseWriter, _ *http.Request) {
	respondPayload(w, http.StatusOK, models.GenreList{Genres: models.Genres()})
}
