// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateTMDB validates the upstream metadata provider configuration.
func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}
	if err := validateBaseURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if c.TMDB.Timeout < time.Second {
		return fmt.Errorf("TMDB_TIMEOUT must be at least 1s")
	}
	if c.TMDB.MaxRetries < 0 || c.TMDB.MaxRetries > 10 {
		return fmt.Errorf("TMDB_MAX_RETRIES must be between 0 and 10")
	}
	if c.TMDB.RetryBaseDelay <= 0 {
		return fmt.Errorf("TMDB_RETRY_BASE_DELAY must be positive")
	}
	if c.TMDB.RateLimitRPS < 0 {
		return fmt.Errorf("TMDB_RATE_LIMIT_RPS must not be negative")
	}
	if c.TMDB.RateLimitRPS > 0 && c.TMDB.RateLimitBurst < 1 {
		return fmt.Errorf("TMDB_RATE_LIMIT_BURST must be at least 1 when throttling is enabled")
	}
	return nil
}

// validateServer validates the HTTP server configuration.
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("SERVER_TIMEOUT must be at least 1s")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
}

// validateAPI validates API behaviour configuration.
func (c *Config) validateAPI() error {
	if c.API.CacheTTL < 0 {
		return fmt.Errorf("API_CACHE_TTL must not be negative")
	}
	if c.API.CacheMaxEntries < 1 {
		return fmt.Errorf("API_CACHE_MAX_ENTRIES must be at least 1")
	}
	if !c.API.RateLimitDisabled {
		if c.API.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.API.RateLimitWindow < time.Second {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
		}
	}
	return nil
}

// validateRecommend validates the recommendation engine configuration.
// Skipped entirely when the engine is disabled.
func (c *Config) validateRecommend() error {
	if !c.Recommend.Enabled {
		return nil
	}

	r := &c.Recommend
	if r.CorpusPages < 1 || r.CorpusPages > 500 {
		return fmt.Errorf("RECOMMEND_CORPUS_PAGES must be between 1 and 500")
	}
	if r.MaxK < 1 || r.MaxK > 50 {
		return fmt.Errorf("RECOMMEND_MAX_K must be between 1 and 50")
	}
	if r.DefaultK < 1 || r.DefaultK > r.MaxK {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be between 1 and RECOMMEND_MAX_K (%d)", r.MaxK)
	}
	if r.PredictionTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_PREDICTION_TIMEOUT must be positive")
	}
	if r.TrainTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_TRAIN_TIMEOUT must be positive")
	}
	if r.WeightTFIDF < 0 || r.WeightGenre < 0 || r.WeightPopularity < 0 {
		return fmt.Errorf("recommendation weights must not be negative")
	}
	if r.WeightTFIDF+r.WeightGenre+r.WeightPopularity <= 0 {
		return fmt.Errorf("at least one recommendation weight must be positive")
	}
	if r.CacheMaxEntries < 1 {
		return fmt.Errorf("RECOMMEND_CACHE_MAX_ENTRIES must be at least 1")
	}
	return nil
}

// validateLogging validates the logging configuration.
func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled", "":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled")
	}

	switch c.Logging.Format {
	case "json", "console", "":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
}

// validateBaseURL validates that a URL is a usable HTTP/HTTPS API root.
// Unlike service endpoints, a version path (e.g. /3) is allowed.
func validateBaseURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
