// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/tomtom215/kinograph/internal/catalog"
	"github.com/tomtom215/kinograph/internal/config"
	"github.com/tomtom215/kinograph/internal/logging"
	"github.com/tomtom215/kinograph/internal/metadata"
	"github.com/tomtom215/kinograph/internal/models"
	"github.com/tomtom215/kinograph/internal/recommend"
	"github.com/tomtom215/kinograph/internal/recommend/algorithms"
)

// mockMetadataClient is a canned-response TMDBClientInterface for handler tests.
type mockMetadataClient struct {
	pingErr      error
	discoverErr  error
	popularErr   error
	movieErr     error
	discoverPage *models.MovieList
	popularPage  *models.MovieList
	movies       map[int]*models.Movie
}

func (m *mockMetadataClient) Ping(_ context.Context) error {
	return m.pingErr
}

func (m *mockMetadataClient) DiscoverMovies(_ context.Context, page int) (*models.MovieList, error) {
	if m.discoverErr != nil {
		return nil, m.discoverErr
	}
	list := *m.discoverPage
	list.Page = page
	return &list, nil
}

func (m *mockMetadataClient) GetPopularMovies(_ context.Context, page int) (*models.MovieList, error) {
	if m.popularErr != nil {
		return nil, m.popularErr
	}
	list := *m.popularPage
	list.Page = page
	return &list, nil
}

func (m *mockMetadataClient) GetMovie(_ context.Context, id int) (*models.Movie, error) {
	if m.movieErr != nil {
		return nil, m.movieErr
	}
	movie, ok := m.movies[id]
	if !ok {
		return nil, fmt.Errorf("movie %d: %w", id, metadata.ErrNotFound)
	}
	return movie, nil
}

func testMovies() []models.Movie {
	return []models.Movie{
		{ID: 603, Title: "The Matrix", Overview: "A hacker discovers a simulated reality and joins a rebellion.", GenreIDs: []int{28, 878}, ReleaseDate: "1999-03-31", VoteAverage: 8.2, VoteCount: 24000, Popularity: 91.5},
		{ID: 604, Title: "The Matrix Reloaded", Overview: "The hacker rebellion fights the simulated reality machines.", GenreIDs: []int{28, 878}, ReleaseDate: "2003-05-15", VoteAverage: 7.0, VoteCount: 11000, Popularity: 55.3},
		{ID: 12, Title: "Finding Nemo", Overview: "A clownfish crosses the ocean searching for his son.", GenreIDs: []int{16, 10751}, ReleaseDate: "2003-05-30", VoteAverage: 7.8, VoteCount: 18000, Popularity: 60.1},
		{ID: 218, Title: "The Terminator", Overview: "A machine from the future hunts a woman whose son will lead a rebellion.", GenreIDs: []int{28, 878, 53}, ReleaseDate: "1984-10-26", VoteAverage: 7.6, VoteCount: 12000, Popularity: 45.8},
	}
}

func newTestMockClient() *mockMetadataClient {
	movies := testMovies()
	byID := make(map[int]*models.Movie, len(movies))
	for i := range movies {
		byID[movies[i].ID] = &movies[i]
	}
	list := &models.MovieList{
		Page:         1,
		Results:      movies,
		TotalPages:   1,
		TotalResults: len(movies),
	}
	return &mockMetadataClient{
		discoverPage: list,
		popularPage:  list,
		movies:       byID,
	}
}

func newTestConfig() *config.Config {
	return &config.Config{
		Recommend: config.RecommendConfig{
			Enabled:     true,
			CorpusPages: 1,
			DefaultK:    5,
			MaxK:        20,
		},
		API: config.APIConfig{
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
	}
}

// corpusFromClient adapts the mock's popular listing into engine items,
// matching how the catalog service feeds the engine in production.
type testCorpusProvider struct {
	movies []models.Movie
}

func (p *testCorpusProvider) GetCorpus(_ context.Context) ([]recommend.Item, error) {
	items := make([]recommend.Item, 0, len(p.movies))
	for _, m := range p.movies {
		items = append(items, recommend.Item{
			ID:          m.ID,
			Title:       m.Title,
			Overview:    m.Overview,
			GenreIDs:    m.GenreIDs,
			PosterPath:  m.PosterPath,
			ReleaseDate: m.ReleaseDate,
			Year:        m.ReleaseYear(),
			VoteCount:   m.VoteCount,
			VoteAverage: m.VoteAverage,
			Popularity:  m.Popularity,
		})
	}
	return items, nil
}

// newTestEngine builds an engine over the shared fixture corpus. When
// trained is true the model is fitted before return.
func newTestEngine(t *testing.T, trained bool) *recommend.Engine {
	t.Helper()

	cfg := recommend.DefaultConfig()
	engine, err := recommend.NewEngine(cfg, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	engine.RegisterAlgorithm(algorithms.NewTFIDF(algorithms.TFIDFConfig{}))
	engine.RegisterAlgorithm(algorithms.NewGenre())
	engine.RegisterAlgorithm(algorithms.NewPopularity())
	engine.SetCatalogProvider(&testCorpusProvider{movies: testMovies()})

	if trained {
		if err := engine.Train(context.Background()); err != nil {
			t.Fatalf("Failed to train engine: %v", err)
		}
	}
	return engine
}

// newTestHandler wires a handler over the mock client. Pass a nil engine
// to exercise the recommendations-disabled paths.
func newTestHandler(t *testing.T, client metadata.TMDBClientInterface, engine *recommend.Engine) *Handler {
	t.Helper()
	svc := catalog.NewService(client, nil, 1)
	return NewHandler(svc, engine, client, nil, newTestConfig())
}
