// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package main

import (
	"context"

	"github.com/tomtom215/kinograph/internal/catalog"
	"github.com/tomtom215/kinograph/internal/config"
	"github.com/tomtom215/kinograph/internal/logging"
	"github.com/tomtom215/kinograph/internal/models"
	"github.com/tomtom215/kinograph/internal/recommend"
	"github.com/tomtom215/kinograph/internal/recommend/algorithms"
	"github.com/tomtom215/kinograph/internal/supervisor"
	"github.com/tomtom215/kinograph/internal/supervisor/services"
)

// RecommendComponents holds all recommendation-related components.
type RecommendComponents struct {
	Engine  *recommend.Engine
	Service *services.TrainingService
}

// initRecommend initializes the recommendation engine if enabled.
// Returns nil if recommendations are disabled in config.
func initRecommend(cfg *config.Config, catalogSvc *catalog.Service, tree *supervisor.SupervisorTree) *RecommendComponents {
	// Check if recommendations are disabled
	if !cfg.Recommend.Enabled {
		logging.Info().Msg("Recommendation engine disabled (RECOMMEND_ENABLED=false)")
		return nil
	}

	logging.Info().
		Dur("train_interval", cfg.Recommend.TrainInterval).
		Bool("train_on_startup", cfg.Recommend.TrainOnStartup).
		Int("corpus_pages", cfg.Recommend.CorpusPages).
		Msg("initializing recommendation engine")

	// Create engine
	engine, err := recommend.NewEngine(buildEngineConfig(cfg), logging.Logger())
	if err != nil {
		logging.Error().Err(err).Msg("failed to create recommendation engine")
		return nil
	}

	// Register the scoring algorithms that make up the blend
	engine.RegisterAlgorithm(algorithms.NewTFIDF(algorithms.TFIDFConfig{}))
	engine.RegisterAlgorithm(algorithms.NewGenre())
	engine.RegisterAlgorithm(algorithms.NewPopularity())

	// The catalog service supplies the training corpus
	engine.SetCatalogProvider(&catalogCorpusProvider{catalog: catalogSvc})

	// Create service for Suture
	serviceCfg := services.TrainingServiceConfig{
		TrainOnStartup: cfg.Recommend.TrainOnStartup,
		TrainInterval:  cfg.Recommend.TrainInterval,
		TrainTimeout:   cfg.Recommend.TrainTimeout,
	}
	service := services.NewTrainingService(engine, serviceCfg, logging.Logger())

	// Add to supervisor tree
	tree.AddModelService(service)
	logging.Info().Msg("training service added to supervisor tree")

	return &RecommendComponents{
		Engine:  engine,
		Service: service,
	}
}

// buildEngineConfig creates the engine configuration from app config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		Weights: recommend.AlgorithmWeights{
			TFIDF:      cfg.Recommend.WeightTFIDF,
			Genre:      cfg.Recommend.WeightGenre,
			Popularity: cfg.Recommend.WeightPopularity,
		},
		Training: recommend.TrainingConfig{
			Timeout:  cfg.Recommend.TrainTimeout,
			MinItems: 2,
		},
		Limits: recommend.LimitsConfig{
			DefaultK:          cfg.Recommend.DefaultK,
			MaxK:              cfg.Recommend.MaxK,
			PredictionTimeout: cfg.Recommend.PredictionTimeout,
		},
		Cache: recommend.CacheConfig{
			Enabled:    true,
			TTL:        cfg.Recommend.CacheTTL,
			MaxEntries: cfg.Recommend.CacheMaxEntries,
		},
	}
}

// catalogCorpusProvider adapts the catalog service to the engine's
// CatalogProvider interface.
type catalogCorpusProvider struct {
	catalog *catalog.Service
}

// GetCorpus fetches popular movies from the catalog service and converts
// them into training items.
func (p *catalogCorpusProvider) GetCorpus(ctx context.Context) ([]recommend.Item, error) {
	movies, err := p.catalog.GetCorpus(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]recommend.Item, 0, len(movies))
	for i := range movies {
		items = append(items, movieToItem(&movies[i]))
	}
	return items, nil
}

// movieToItem converts a catalog movie into a training item.
func movieToItem(m *models.Movie) recommend.Item {
	return recommend.Item{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		GenreIDs:    m.GenreIDs,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.ReleaseDate,
		Year:        m.ReleaseYear(),
		VoteCount:   m.VoteCount,
		Popularity:  m.Popularity,
		VoteAverage: m.VoteAverage,
	}
}
