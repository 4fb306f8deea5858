// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

/*
Package models defines data structures for the Kinograph application.

This package contains the data models used throughout the application:
upstream TMDB wire shapes, API response payloads, and the standardized
response envelope. It serves as the single source of truth for data
structure definitions.

Model Categories:

1. Upstream (TMDB) Models:
  - Movie: A list entry as TMDB returns it (genre IDs, not objects)
  - MovieList: One page of discover/popular results
  - MovieDetail: The single-movie payload with full genre objects
  - Genre: A named genre

2. API Payload Models:
  - CatalogPage: GET /movies response
  - PopularPage: GET /movies/popular response
  - Recommendations / RecommendedMovie: GET /movies/recommend/{id} response
  - GenreList: GET /genres response
  - HealthStatus: GET /api/v1/health payload

3. Response Envelope:
  - APIResponse: Standard wrapper for operational endpoints and errors
  - APIError: Error code, message, and optional details
  - Metadata: Response metadata (timestamp, query time, cache flag)

The genre registry (genres.go) carries the TMDB movie genre list as a
static table so /genres never needs an upstream round trip and detail
flattening can map IDs to names offline.

JSON serialization uses goccy/go-json throughout for performance; the
struct tags are standard encoding/json tags and stay compatible with
both.
*/
package models
