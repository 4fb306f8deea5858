// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights are normalized at runtime, so they don't need to sum to 1.0.
	Weights AlgorithmWeights `json:"weights"`

	// Training contains training schedule parameters.
	Training TrainingConfig `json:"training"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains prediction caching parameters.
	Cache CacheConfig `json:"cache"`
}

// AlgorithmWeights defines the relative contribution of each algorithm.
type AlgorithmWeights struct {
	// TFIDF is the weight for text similarity over overview and title.
	TFIDF float64 `json:"tfidf"`

	// Genre is the weight for genre-set overlap.
	Genre float64 `json:"genre"`

	// Popularity is the weight for the popularity prior.
	Popularity float64 `json:"popularity"`
}

// Normalize returns a copy with weights normalized to sum to 1.0.
func (w AlgorithmWeights) Normalize() AlgorithmWeights {
	sum := w.TFIDF + w.Genre + w.Popularity

	if sum == 0 {
		const equalWeight = 1.0 / 3.0
		return AlgorithmWeights{TFIDF: equalWeight, Genre: equalWeight, Popularity: equalWeight}
	}

	return AlgorithmWeights{
		TFIDF:      w.TFIDF / sum,
		Genre:      w.Genre / sum,
		Popularity: w.Popularity / sum,
	}
}

// ToMap returns the weights as a string-keyed map.
func (w AlgorithmWeights) ToMap() map[string]float64 {
	return map[string]float64{
		"tfidf":      w.TFIDF,
		"genre":      w.Genre,
		"popularity": w.Popularity,
	}
}

// TrainingConfig contains training schedule parameters.
type TrainingConfig struct {
	// Timeout bounds a single training run, corpus fetch included.
	Timeout time.Duration `json:"timeout"`

	// MinItems is the minimum corpus size to accept for training.
	MinItems int `json:"min_items"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the number of recommendations when the caller does
	// not specify one.
	DefaultK int `json:"default_k"`

	// MaxK caps the number of recommendations per request.
	MaxK int `json:"max_k"`

	// PredictionTimeout bounds each algorithm's prediction call.
	PredictionTimeout time.Duration `json:"prediction_timeout"`
}

// CacheConfig contains prediction caching parameters.
type CacheConfig struct {
	// Enabled toggles the prediction cache.
	Enabled bool `json:"enabled"`

	// TTL is how long cached predictions stay valid.
	TTL time.Duration `json:"ttl"`

	// MaxEntries bounds the cache size.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights: AlgorithmWeights{
			TFIDF:      1.0,
			Genre:      0.6,
			Popularity: 0.2,
		},
		Training: TrainingConfig{
			Timeout:  2 * time.Minute,
			MinItems: 2,
		},
		Limits: LimitsConfig{
			DefaultK:          5,
			MaxK:              20,
			PredictionTimeout: 2 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1024,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Weights.TFIDF < 0 || c.Weights.Genre < 0 || c.Weights.Popularity < 0 {
		return fmt.Errorf("algorithm weights must be non-negative")
	}
	if c.Weights.TFIDF+c.Weights.Genre+c.Weights.Popularity == 0 {
		return fmt.Errorf("at least one algorithm weight must be positive")
	}
	if c.Training.Timeout <= 0 {
		return fmt.Errorf("training timeout must be positive, got %v", c.Training.Timeout)
	}
	if c.Training.MinItems < 2 {
		return fmt.Errorf("min_items must be at least 2, got %d", c.Training.MinItems)
	}
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("default_k must be at least 1, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("max_k (%d) must be >= default_k (%d)", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Limits.PredictionTimeout <= 0 {
		return fmt.Errorf("prediction timeout must be positive, got %v", c.Limits.PredictionTimeout)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache TTL must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache max_entries must be at least 1, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
