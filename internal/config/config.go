// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

// Package config handles application configuration loaded from defaults,
// an optional YAML file, and environment variables (highest priority).
package config

import (
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// TMDBConfig configures the upstream movie metadata provider client.
type TMDBConfig struct {
	// BaseURL is the provider API root, including the version path.
	// Default: https://api.themoviedb.org/3
	BaseURL string `koanf:"base_url"`

	// APIKey authenticates every upstream request. Required.
	APIKey string `koanf:"api_key"`

	// Language is the preferred metadata language (BCP 47 tag).
	// Default: en-US
	Language string `koanf:"language"`

	// Timeout bounds a single upstream HTTP request.
	Timeout time.Duration `koanf:"timeout"`

	// MaxRetries is the retry budget for rate-limited (429) responses.
	MaxRetries int `koanf:"max_retries"`

	// RetryBaseDelay is the base for exponential backoff between retries.
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`

	// RateLimitRPS throttles outbound requests to stay under the
	// provider's limit. Zero disables client-side throttling.
	RateLimitRPS float64 `koanf:"rate_limit_rps"`

	// RateLimitBurst is the token bucket size for the outbound throttle.
	RateLimitBurst int `koanf:"rate_limit_burst"`

	// BreakerEnabled wraps the client in a circuit breaker so a dead
	// upstream fails fast instead of tying up request goroutines.
	BreakerEnabled bool `koanf:"breaker_enabled"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// Environment mode: "development", "staging", "production".
	// Default: "development"
	Environment string `koanf:"environment"`
}

// APIConfig configures API behaviour: response caching, rate limiting,
// CORS, and the swagger UI.
type APIConfig struct {
	// CacheTTL is how long catalog responses are served from cache
	// before the upstream is consulted again.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// CacheMaxEntries bounds the response cache.
	CacheMaxEntries int `koanf:"cache_max_entries"`

	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins []string `koanf:"cors_origins"`

	// SwaggerEnabled serves interactive API docs at /swagger.
	SwaggerEnabled bool `koanf:"swagger_enabled"`
}

// RecommendConfig configures the recommendation engine.
type RecommendConfig struct {
	// Enabled controls whether the engine is built and trained at all.
	// When false, /movies/recommend returns 503 MODEL_NOT_READY.
	Enabled bool `koanf:"enabled"`

	// TrainOnStartup trains the model as soon as the service starts so
	// the first recommendation request does not pay the training cost.
	TrainOnStartup bool `koanf:"train_on_startup"`

	// TrainInterval is how often the model is retrained to pick up
	// catalog drift. Zero disables periodic retraining.
	TrainInterval time.Duration `koanf:"train_interval"`

	// TrainTimeout bounds a single training run.
	TrainTimeout time.Duration `koanf:"train_timeout"`

	// CorpusPages is how many pages of popular movies form the
	// training corpus (20 movies per page).
	CorpusPages int `koanf:"corpus_pages"`

	// DefaultK is the number of recommendations returned when the
	// client does not specify a count.
	DefaultK int `koanf:"default_k"`

	// MaxK caps the per-request recommendation count.
	MaxK int `koanf:"max_k"`

	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`

	// PredictionTimeout bounds a single scoring pass across algorithms.
	PredictionTimeout time.Duration `koanf:"prediction_timeout"`

	// Algorithm blend weights. Normalized before use, so only the
	// ratios matter.
	WeightTFIDF      float64 `koanf:"weight_tfidf"`
	WeightGenre      float64 `koanf:"weight_genre"`
	WeightPopularity float64 `koanf:"weight_popularity"`
}

// LoggingConfig configures the logging package.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Adds slight performance overhead.
	// Default: false
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
