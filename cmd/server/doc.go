// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

/*
Package main is the entry point for the Kinograph server application.

Kinograph is a movie catalog and recommendation backend. It proxies The
Movie Database (TMDB) for catalog browsing and serves content-based
similar-movie recommendations from a model trained on the popular-movies
corpus.

# Application Architecture

The server implements a layered architecture with Suture v4 process
supervision:

	RootSupervisor ("kinograph")
	├── ModelSupervisor ("model-layer")
	│   └── Training Service (startup + periodic retraining)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (Chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. TMDB Client: rate-limited HTTP client, optional circuit breaker
 4. Catalog Service: TTL response cache over the upstream
 5. Recommendation Engine: TF-IDF, genre, and popularity algorithms
 6. Supervisor Tree: Suture v4 process supervision
 7. HTTP Server: Chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest
priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=8000               # HTTP server port
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Upstream
	TMDB_API_KEY=<key>           # Required
	TMDB_BREAKER_ENABLED=true    # Circuit breaker around TMDB calls

	# Recommendations
	RECOMMEND_ENABLED=true
	RECOMMEND_TRAIN_ON_STARTUP=true
	RECOMMEND_TRAIN_INTERVAL=6h
	RECOMMEND_CORPUS_PAGES=25    # 20 movies per page

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:
  - Stops accepting new connections
  - Waits for in-flight requests to complete (10s timeout)
  - Cancels any in-flight training run

# Example Usage

Development with console logging:

	export TMDB_API_KEY=your-api-key
	export LOG_FORMAT=console
	./kinograph

Docker:

	docker run -d \
	  -e TMDB_API_KEY=your-api-key \
	  -p 8000:8000 \
	  ghcr.io/tomtom215/kinograph
*/
package main
