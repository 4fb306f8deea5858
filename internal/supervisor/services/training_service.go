// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RecommendEngine defines the interface for the recommendation engine.
// This allows the service to work with the engine without circular imports.
type RecommendEngine interface {
	// Train fetches the corpus and trains all registered algorithms.
	Train(ctx context.Context) error
}

// TrainingServiceConfig holds configuration for the training service.
type TrainingServiceConfig struct {
	// TrainOnStartup triggers training when the service starts.
	TrainOnStartup bool

	// TrainInterval is how often to retrain the model.
	TrainInterval time.Duration

	// TrainTimeout bounds a single training run.
	TrainTimeout time.Duration
}

// TrainingService wraps the recommendation engine for Suture supervision.
// It manages the training lifecycle and periodic retraining.
//
// Training failures are never fatal: a failed run is logged and retried
// on the next tick, so the HTTP layer keeps serving catalog endpoints
// (and 503s for recommendations) until a run succeeds.
type TrainingService struct {
	engine RecommendEngine
	config TrainingServiceConfig
	logger zerolog.Logger
	name   string
}

// NewTrainingService creates a new training service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainingService(engine RecommendEngine, cfg TrainingServiceConfig, logger zerolog.Logger) *TrainingService {
	return &TrainingService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "training").Logger(),
		name:   "training-service",
	}
}

// Serve implements the suture.Service interface.
// It manages the training loop for the recommendation engine.
func (s *TrainingService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("train_interval", s.config.TrainInterval).
		Msg("training service starting")

	// Train on startup if configured
	if s.config.TrainOnStartup {
		s.logger.Info().Msg("training model on startup")
		if err := s.train(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("initial training failed (will retry on schedule)")
		}
	}

	// Set up periodic retraining
	if s.config.TrainInterval <= 0 {
		s.config.TrainInterval = 24 * time.Hour
	}

	ticker := time.NewTicker(s.config.TrainInterval)
	defer ticker.Stop()

	s.logger.Info().Msg("training service running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("training service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.logger.Debug().Msg("scheduled training triggered")
			if err := s.train(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled training failed")
			}
		}
	}
}

// train performs a training cycle with proper context handling.
func (s *TrainingService) train(ctx context.Context) error {
	timeout := s.config.TrainTimeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}

	// Use a separate context with timeout for training
	trainCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	s.logger.Info().Msg("starting model training")

	if err := s.engine.Train(trainCtx); err != nil {
		return err
	}

	s.logger.Info().
		Dur("duration", time.Since(start)).
		Msg("model training complete")

	return nil
}

// String returns the service name for logging.
func (s *TrainingService) String() string {
	return s.name
}
