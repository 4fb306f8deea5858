// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

// Package api provides HTTP request validation structs with
// go-playground/validator tags. These structs are used to validate incoming
// request parameters before processing.
//
// Example usage:
//
//	req := MoviesRequest{Page: page}
//	if apiErr := validateRequest(&req); apiErr != nil {
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package api

// MoviesRequest represents the validated query parameters for GET /movies.
// The page domain is the upstream provider's: pages 1 through 500.
type MoviesRequest struct {
	Page int `validate:"min=1,max=500"`
}

// MovieDetailRequest represents the validated path parameters for
// GET /movies/{id}.
type MovieDetailRequest struct {
	ID int `validate:"min=1"`
}

// RecommendRequest represents the validated parameters for
// GET /movies/recommend/{id}.
//
// Fields:
//   - ID: Source movie identifier (path)
//   - K: Number of recommendations to return (query, default 5)
type RecommendRequest struct {
	ID int `validate:"min=1"`
	K  int `validate:"min=1,max=20"`
}
