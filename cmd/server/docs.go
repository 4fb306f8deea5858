// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

// Package main provides the Kinograph HTTP server
//
// Kinograph is a movie catalog and recommendation backend that proxies
// The Movie Database (TMDB) and serves content-based recommendations.
//
// @title Kinograph API
// @version 1.0
// @description Movie catalog and recommendation backend proxying The Movie Database (TMDB)
// @description
// @description ## Features
// @description
// @description - **Catalog Browsing**: Paged discovery and popular listings straight from TMDB
// @description - **Movie Details**: Full metadata for a single title
// @description - **Recommendations**: Content-based similar-movie scoring (TF-IDF + genre + popularity blend)
// @description - **Genre Reference**: The TMDB movie genre registry
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description
// @description ## Caching
// @description
// @description Successful catalog responses carry `Cache-Control: public, max-age=60` and an ETag.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-08-31T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/kinograph/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8000
// @BasePath /
// @schemes http https
//
// @tag.name Catalog
// @tag.description Movie listing, detail, and genre endpoints backed by TMDB
//
// @tag.name Recommendations
// @tag.description Similar-movie recommendations and model training control
//
// @tag.name Core
// @tag.description Health checks and operational status
package main
