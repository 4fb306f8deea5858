// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

// Package catalog mediates between the HTTP handlers and the upstream
// metadata client. It adds a read-through TTL cache on every operation
// and adapts popular listings into the recommendation engine's corpus.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/kinograph/internal/cache"
	"github.com/tomtom215/kinograph/internal/logging"
	"github.com/tomtom215/kinograph/internal/metadata"
	"github.com/tomtom215/kinograph/internal/metrics"
	"github.com/tomtom215/kinograph/internal/models"
)

const cacheType = "catalog"

// Service serves catalog reads backed by the metadata client.
//
// All methods are safe for concurrent use. The boolean return reports
// whether the result came from cache, so handlers can surface it in
// response metadata.
type Service struct {
	client      metadata.TMDBClientInterface
	cache       *cache.Cache // nil disables caching
	corpusPages int
	logger      zerolog.Logger
}

// NewService creates a catalog service. Pass a nil cache to disable
// read-through caching (useful in tests).
func NewService(client metadata.TMDBClientInterface, c *cache.Cache, corpusPages int) *Service {
	if corpusPages < 1 {
		corpusPages = 1
	}
	return &Service{
		client:      client,
		cache:       c,
		corpusPages: corpusPages,
		logger:      logging.WithComponent("catalog"),
	}
}

// lookup checks the cache for key and records hit/miss metrics.
func (s *Service) lookup(key string) (interface{}, bool) {
	if s.cache == nil {
		return nil, false
	}
	if v, ok := s.cache.Get(key); ok {
		metrics.RecordCacheHit(cacheType)
		return v, true
	}
	metrics.RecordCacheMiss(cacheType)
	return nil, false
}

func (s *Service) store(key string, value interface{}) {
	if s.cache != nil {
		s.cache.Set(key, value)
	}
}

// List returns one page of the discover listing, sorted by descending
// popularity. TMDB paging fields pass through untouched.
func (s *Service) List(ctx context.Context, page int) (*models.MovieList, bool, error) {
	key := cache.GenerateKey("catalog.list", page)
	if v, ok := s.lookup(key); ok {
		return v.(*models.MovieList), true, nil
	}

	list, err := s.client.DiscoverMovies(ctx, page)
	if err != nil {
		return nil, false, err
	}

	s.store(key, list)
	return list, false, nil
}

// Popular returns the first page of the popular listing.
func (s *Service) Popular(ctx context.Context) ([]models.Movie, bool, error) {
	key := cache.GenerateKey("catalog.popular", 1)
	if v, ok := s.lookup(key); ok {
		return v.([]models.Movie), true, nil
	}

	list, err := s.client.GetPopularMovies(ctx, 1)
	if err != nil {
		return nil, false, err
	}

	s.store(key, list.Results)
	return list.Results, false, nil
}

// Get returns a single movie, detail flattened to the list shape.
// Propagates metadata.ErrNotFound for unknown IDs.
func (s *Service) Get(ctx context.Context, id int) (*models.Movie, bool, error) {
	key := cache.GenerateKey("catalog.movie", id)
	if v, ok := s.lookup(key); ok {
		return v.(*models.Movie), true, nil
	}

	movie, err := s.client.GetMovie(ctx, id)
	if err != nil {
		return nil, false, err
	}

	s.store(key, movie)
	return movie, false, nil
}

// GetCorpus fetches the training corpus by paging the popular listing.
// A failure mid-pagination returns the pages fetched so far as long as
// at least one page succeeded; a model trained on a partial corpus
// beats no model at all.
func (s *Service) GetCorpus(ctx context.Context) ([]models.Movie, error) {
	seen := make(map[int]struct{})
	var corpus []models.Movie

	start := time.Now()
	for page := 1; page <= s.corpusPages; page++ {
		list, err := s.client.GetPopularMovies(ctx, page)
		if err != nil {
			if len(corpus) == 0 {
				return nil, fmt.Errorf("failed to fetch corpus page %d: %w", page, err)
			}
			s.logger.Warn().Err(err).Int("page", page).Int("fetched", len(corpus)).
				Msg("Corpus pagination failed partway, training on partial corpus")
			break
		}

		// Popular listings shift between requests; dedupe across pages
		for _, m := range list.Results {
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
			corpus = append(corpus, m)
		}

		if page >= list.TotalPages {
			break
		}
	}

	s.logger.Debug().Int("movies", len(corpus)).Int("pages", s.corpusPages).
		Dur("elapsed", time.Since(start)).Msg("Fetched training corpus")

	return corpus, nil
}
