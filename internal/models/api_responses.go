// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package models

import (
	"time"
)

// Response status values used in the APIResponse envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Machine-readable error codes returned in APIError.Code.
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeUpstreamError       = "UPSTREAM_ERROR"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeModelNotReady       = "MODEL_NOT_READY"
	ErrCodeTrainingInProgress  = "TRAINING_IN_PROGRESS"
	ErrCodeRateLimited         = "RATE_LIMITED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// APIResponse is the standardized envelope used by the operational
// endpoints under /api/v1 and by every error response. The catalog
// contract endpoints (/movies, /movies/popular, /movies/recommend)
// return their payloads bare on success for client compatibility, but
// fall back to this envelope on error.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "Invalid page parameter (must be 1 to 500)",
//	    "details": {"field": "page"}
//	  },
//	  "metadata": {"timestamp": "2026-08-31T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Fields:
//   - Timestamp: Server time when response was generated (RFC3339 format)
//   - QueryTimeMS: Upstream fetch time in milliseconds (0 if cached)
//   - Cached: Whether response was served from cache (omitted if false)
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Fields:
//   - Code: Machine-readable error code (e.g., "VALIDATION_ERROR", "UPSTREAM_ERROR")
//   - Message: Human-readable error message
//   - Details: Additional context (field names, constraints, etc.)
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// CatalogPage is the paged catalog response returned by GET /movies.
//
// Example:
//
//	{
//	  "movies": [{"id": 603, "title": "The Matrix", ...}],
//	  "total_pages": 500,
//	  "current_page": 1,
//	  "total_results": 10000
//	}
type CatalogPage struct {
	Movies       []Movie `json:"movies"`
	TotalPages   int     `json:"total_pages"`
	CurrentPage  int     `json:"current_page"`
	TotalResults int     `json:"total_results"`
}

// PopularPage is the popular-movies response returned by GET /movies/popular.
type PopularPage struct {
	Movies []Movie `json:"movies"`
}

// Recommendations wraps the scored results returned by
// GET /movies/recommend/{id}, ordered by descending score.
type Recommendations struct {
	Recommendations []RecommendedMovie `json:"recommendations"`
}

// RecommendedMovie is a catalog entry annotated with its similarity
// score (0.0 to 1.0) relative to the source movie.
type RecommendedMovie struct {
	Movie
	Score float64 `json:"score"`
}

// GenreList is the genre registry response returned by GET /genres.
type GenreList struct {
	Genres []Genre `json:"genres"`
}
