// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/kinograph/config.yaml",
	"/etc/kinograph/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:        "https://api.themoviedb.org/3",
			APIKey:         "",
			Language:       "en-US",
			Timeout:        15 * time.Second,
			MaxRetries:     5,
			RetryBaseDelay: 1 * time.Second,
			// TMDB allows ~50 req/s per key; stay comfortably under it.
			RateLimitRPS:   35,
			RateLimitBurst: 35,
			BreakerEnabled: true,
		},
		Server: ServerConfig{
			Port:        8000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		API: APIConfig{
			CacheTTL:          60 * time.Second,
			CacheMaxEntries:   1000,
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			SwaggerEnabled:    true,
		},
		Recommend: RecommendConfig{
			Enabled:           true,
			TrainOnStartup:    true,
			TrainInterval:     24 * time.Hour,
			TrainTimeout:      2 * time.Minute,
			CorpusPages:       5,
			DefaultK:          5,
			MaxK:              20,
			CacheTTL:          5 * time.Minute,
			CacheMaxEntries:   1024,
			PredictionTimeout: 2 * time.Second,
			WeightTFIDF:       1.0,
			WeightGenre:       0.6,
			WeightPopularity:  0.2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function is the preferred way to load configuration and provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// TMDB_API_KEY -> tmdb.api_key
	// HTTP_PORT -> server.port
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - TMDB_API_KEY -> tmdb.api_key
//   - TMDB_BASE_URL -> tmdb.base_url
//   - HTTP_PORT -> server.port
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Upstream metadata provider
		"tmdb_api_key":          "tmdb.api_key",
		"tmdb_base_url":         "tmdb.base_url",
		"tmdb_language":         "tmdb.language",
		"tmdb_timeout":          "tmdb.timeout",
		"tmdb_max_retries":      "tmdb.max_retries",
		"tmdb_retry_base_delay": "tmdb.retry_base_delay",
		"tmdb_rate_limit_rps":   "tmdb.rate_limit_rps",
		"tmdb_rate_limit_burst": "tmdb.rate_limit_burst",
		"tmdb_breaker_enabled":  "tmdb.breaker_enabled",

		// HTTP server
		"http_port":      "server.port",
		"http_host":      "server.host",
		"server_timeout": "server.timeout",
		"environment":    "server.environment",

		// API behaviour
		"api_cache_ttl":         "api.cache_ttl",
		"api_cache_max_entries": "api.cache_max_entries",
		"rate_limit_requests":   "api.rate_limit_requests",
		"rate_limit_window":     "api.rate_limit_window",
		"rate_limit_disabled":   "api.rate_limit_disabled",
		"cors_origins":          "api.cors_origins",
		"swagger_enabled":       "api.swagger_enabled",

		// Recommendation engine
		"recommend_enabled":            "recommend.enabled",
		"recommend_train_on_startup":   "recommend.train_on_startup",
		"recommend_train_interval":     "recommend.train_interval",
		"recommend_train_timeout":      "recommend.train_timeout",
		"recommend_corpus_pages":       "recommend.corpus_pages",
		"recommend_default_k":          "recommend.default_k",
		"recommend_max_k":              "recommend.max_k",
		"recommend_cache_ttl":          "recommend.cache_ttl",
		"recommend_cache_max_entries":  "recommend.cache_max_entries",
		"recommend_prediction_timeout": "recommend.prediction_timeout",
		"recommend_weight_tfidf":       "recommend.weight_tfidf",
		"recommend_weight_genre":       "recommend.weight_genre",
		"recommend_weight_popularity":  "recommend.weight_popularity",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

// ConfigFilePath returns the config file LoadWithKoanf would read, or an
// empty string when configuration comes from defaults and environment only.
func ConfigFilePath() string {
	return findConfigFile()
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// Note: The caller is responsible for mutex protection when accessing
// configuration during reloads.
//
// Example usage:
//
//	err := WatchConfigFile(configPath, func() {
//	    newCfg, err := LoadWithKoanf()
//	    ...
//	})
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	// Start watching the file for changes
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
