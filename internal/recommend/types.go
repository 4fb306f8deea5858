// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors that call sites branch on. The HTTP layer maps them
// to distinct status codes and error bodies.
var (
	// ErrNotTrained is returned when a prediction is requested before
	// any successful training run.
	ErrNotTrained = errors.New("recommend: model not trained")

	// ErrItemNotFound is returned when the subject item is not in the
	// training corpus.
	ErrItemNotFound = errors.New("recommend: item not in corpus")

	// ErrTrainingInProgress is returned when a training run is
	// requested while another is still running.
	ErrTrainingInProgress = errors.New("recommend: training already in progress")
)

// Item represents a movie with the metadata the algorithms consume.
type Item struct {
	// ID is the TMDB movie identifier.
	ID int `json:"id"`

	// Title is the movie title.
	Title string `json:"title"`

	// Overview is the plot synopsis, the main text-similarity signal.
	Overview string `json:"overview"`

	// GenreIDs is the set of TMDB genre identifiers.
	GenreIDs []int `json:"genre_ids"`

	// PosterPath is the provider poster path, carried through so
	// recommendation responses render like catalog entries.
	PosterPath *string `json:"poster_path,omitempty"`

	// ReleaseDate is the provider release date (YYYY-MM-DD).
	ReleaseDate string `json:"release_date,omitempty"`

	// Year is the release year (0 when unknown).
	Year int `json:"year,omitempty"`

	// VoteCount is the number of user ratings behind VoteAverage.
	VoteCount int `json:"vote_count,omitempty"`

	// Popularity is the TMDB popularity metric.
	Popularity float64 `json:"popularity,omitempty"`

	// VoteAverage is the mean user rating (0-10).
	VoteAverage float64 `json:"vote_average,omitempty"`
}

// ScoredItem represents an item with a recommendation score.
type ScoredItem struct {
	// Item is the movie metadata.
	Item Item `json:"item"`

	// Score is the combined recommendation score (higher is better).
	Score float64 `json:"score"`

	// Scores is a breakdown of scores by algorithm.
	Scores map[string]float64 `json:"scores,omitempty"`
}

// Response represents a similarity query response.
type Response struct {
	// Items is the ordered list of recommended items.
	Items []ScoredItem `json:"items"`

	// TotalCandidates is the number of corpus items considered.
	TotalCandidates int `json:"total_candidates"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// ItemID is the subject movie of the similarity query.
	ItemID int `json:"item_id"`

	// K is the number of recommendations requested.
	K int `json:"k"`

	// AlgorithmsUsed lists the algorithms that contributed scores.
	AlgorithmsUsed []string `json:"algorithms_used"`

	// LatencyMS is the total prediction latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// ModelVersion is the version of the trained model used.
	ModelVersion int `json:"model_version"`

	// TrainedAt is when the model was last trained.
	TrainedAt time.Time `json:"trained_at"`
}

// Algorithm defines the interface all recommendation algorithms implement.
type Algorithm interface {
	// Name returns the algorithm identifier (e.g., "tfidf", "genre").
	Name() string

	// Train fits the model on the movie corpus.
	Train(ctx context.Context, items []Item) error

	// PredictSimilar returns scores for candidate items relative to the
	// given item. The returned map contains item IDs as keys and scores
	// normalized to [0, 1] as values.
	PredictSimilar(ctx context.Context, itemID int, candidates []int) (map[int]float64, error)

	// IsTrained returns whether the model has been trained.
	IsTrained() bool

	// Version returns the model version (incremented on each train).
	Version() int

	// LastTrainedAt returns when the model was last trained.
	LastTrainedAt() time.Time
}

// CatalogProvider supplies the training corpus. Implemented by an
// adapter over the catalog service; kept as an interface so the engine
// has no dependency on the upstream client and tests can inject
// fixtures.
type CatalogProvider interface {
	// GetCorpus returns the items to train on.
	GetCorpus(ctx context.Context) ([]Item, error)
}

// TrainingStatus represents the current training state.
type TrainingStatus struct {
	// IsTraining indicates whether training is currently in progress.
	IsTraining bool `json:"is_training"`

	// Progress is the training progress (0-100).
	Progress int `json:"progress"`

	// CurrentAlgorithm is the algorithm currently being trained.
	CurrentAlgorithm string `json:"current_algorithm,omitempty"`

	// LastTrainedAt is when training last completed.
	LastTrainedAt time.Time `json:"last_trained_at"`

	// LastTrainingDurationMS is how long the last training took.
	LastTrainingDurationMS int64 `json:"last_training_duration_ms"`

	// LastError contains the last training error, if any.
	LastError string `json:"last_error,omitempty"`

	// ItemCount is the number of movies in the training corpus.
	ItemCount int `json:"item_count"`

	// ModelVersion is the current model version.
	ModelVersion int `json:"model_version"`
}

// Metrics contains recommendation system counters for observability.
type Metrics struct {
	// RequestCount is the total number of similarity requests.
	RequestCount int64 `json:"request_count"`

	// CacheHits is the number of prediction cache hits.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of prediction cache misses.
	CacheMisses int64 `json:"cache_misses"`

	// TrainingCount is the number of training runs completed.
	TrainingCount int64 `json:"training_count"`

	// ErrorCount is the total number of errors.
	ErrorCount int64 `json:"error_count"`
}
