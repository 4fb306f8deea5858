// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/kinograph/internal/cache"
	"github.com/tomtom215/kinograph/internal/metrics"
)

// Engine coordinates the similarity algorithms and produces blended
// recommendations. It is safe for concurrent use; predictions keep
// serving the previous model while a retrain is in flight.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// Registered algorithms
	algorithms []Algorithm
	algMu      sync.RWMutex

	// Trained corpus: id -> item, plus stable candidate order
	corpus       map[int]Item
	candidateIDs []int
	corpusMu     sync.RWMutex

	// Training state
	trainMu       sync.Mutex
	statusMu      sync.RWMutex
	trainStatus   TrainingStatus
	modelVersion  atomic.Int32
	lastTrainedAt time.Time

	// Counters
	requestCount  atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
	trainingCount atomic.Int64
	errorCount    atomic.Int64

	// Prediction cache, keyed by (itemID, k, modelVersion) so retrains
	// invalidate implicitly
	predCache *cache.LRUCache[*Response]

	provider CatalogProvider
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:     cfg,
		logger:     logger.With().Str("component", "recommend").Logger(),
		algorithms: make([]Algorithm, 0),
		corpus:     make(map[int]Item),
	}

	if cfg.Cache.Enabled {
		e.predCache = cache.NewLRUCache[*Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	return e, nil
}

// SetCatalogProvider sets the corpus source for training.
func (e *Engine) SetCatalogProvider(cp CatalogProvider) {
	e.provider = cp
}

// RegisterAlgorithm adds an algorithm to the ensemble.
func (e *Engine) RegisterAlgorithm(alg Algorithm) {
	e.algMu.Lock()
	defer e.algMu.Unlock()

	e.algorithms = append(e.algorithms, alg)
	e.logger.Info().
		Str("algorithm", alg.Name()).
		Msg("registered algorithm")
}

// Similar returns up to k movies most similar to the given item.
// Returns ErrNotTrained before the first successful training run and
// ErrItemNotFound when the item is not in the corpus.
func (e *Engine) Similar(ctx context.Context, itemID, k int) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	k = e.clampK(k)

	version := int(e.modelVersion.Load())
	if version == 0 {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("not_ready", time.Since(start))
		return nil, ErrNotTrained
	}

	e.corpusMu.RLock()
	_, inCorpus := e.corpus[itemID]
	candidates := e.candidateIDs
	e.corpusMu.RUnlock()

	if !inCorpus {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("not_found", time.Since(start))
		return nil, fmt.Errorf("item %d: %w", itemID, ErrItemNotFound)
	}

	cacheKey := fmt.Sprintf("sim:%d:%d:%d", itemID, k, version)
	if resp := e.checkCache(cacheKey); resp != nil {
		e.cacheHits.Add(1)
		resp.Metadata.CacheHit = true
		resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
		metrics.RecordRecommendation("cache_hit", time.Since(start))
		return resp, nil
	}
	e.cacheMisses.Add(1)

	scored, algorithmsUsed := e.scoreCandidates(ctx, itemID, candidates)

	// Deterministic ordering: score descending, then ID ascending
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Item.ID < scored[j].Item.ID
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	resp := &Response{
		Items:           scored,
		TotalCandidates: len(candidates) - 1, // subject excluded
		Metadata: ResponseMetadata{
			ItemID:         itemID,
			K:              k,
			AlgorithmsUsed: algorithmsUsed,
			LatencyMS:      time.Since(start).Milliseconds(),
			ModelVersion:   version,
			TrainedAt:      e.trainedAt(),
		},
	}

	e.storeCache(cacheKey, resp)
	metrics.RecordRecommendation("success", time.Since(start))

	e.logger.Debug().
		Int("item_id", itemID).
		Int("k", k).
		Int("returned", len(scored)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("similarity query complete")

	return resp, nil
}

// clampK applies the default and maximum recommendation counts.
func (e *Engine) clampK(k int) int {
	if k <= 0 {
		return e.config.Limits.DefaultK
	}
	if k > e.config.Limits.MaxK {
		return e.config.Limits.MaxK
	}
	return k
}

// algResult holds the result of a single algorithm prediction.
type algResult struct {
	name   string
	scores map[int]float64
	err    error
}

// scoreCandidates runs every trained algorithm in parallel and blends
// the scores by weight.
func (e *Engine) scoreCandidates(ctx context.Context, itemID int, candidates []int) ([]ScoredItem, []string) {
	algorithms := e.getAlgorithms()
	weights := e.config.Weights.Normalize().ToMap()

	results := make([]algResult, len(algorithms))
	var wg sync.WaitGroup

	for i, alg := range algorithms {
		wg.Add(1)
		go func(idx int, a Algorithm) {
			defer wg.Done()
			results[idx] = e.runSingleAlgorithm(ctx, a, itemID, candidates)
		}(i, alg)
	}

	wg.Wait()

	return e.combineScores(itemID, results, weights)
}

// runSingleAlgorithm runs one algorithm's prediction under a timeout.
func (e *Engine) runSingleAlgorithm(ctx context.Context, alg Algorithm, itemID int, candidates []int) algResult {
	result := algResult{name: alg.Name()}

	if !alg.IsTrained() {
		return result
	}

	algCtx, cancel := context.WithTimeout(ctx, e.config.Limits.PredictionTimeout)
	defer cancel()

	result.scores, result.err = alg.PredictSimilar(algCtx, itemID, candidates)
	return result
}

// combineScores blends per-algorithm scores by weight. Algorithms that
// failed or returned nothing are skipped, not fatal.
func (e *Engine) combineScores(itemID int, results []algResult, weights map[string]float64) ([]ScoredItem, []string) {
	combined := make(map[int]float64)
	breakdown := make(map[int]map[string]float64)
	algorithmsUsed := make([]string, 0, len(results))

	for _, result := range results {
		if result.err != nil {
			e.logger.Warn().
				Str("algorithm", result.name).
				Err(result.err).
				Msg("algorithm prediction failed")
			continue
		}
		if len(result.scores) == 0 || weights[result.name] <= 0 {
			continue
		}

		algorithmsUsed = append(algorithmsUsed, result.name)
		weight := weights[result.name]

		for id, score := range result.scores {
			if id == itemID {
				continue
			}
			combined[id] += weight * score
			if breakdown[id] == nil {
				breakdown[id] = make(map[string]float64)
			}
			breakdown[id][result.name] = score
		}
	}

	sort.Strings(algorithmsUsed)

	e.corpusMu.RLock()
	defer e.corpusMu.RUnlock()

	items := make([]ScoredItem, 0, len(combined))
	for id, score := range combined {
		item, ok := e.corpus[id]
		if !ok {
			continue
		}
		items = append(items, ScoredItem{
			Item:   item,
			Score:  score,
			Scores: breakdown[id],
		})
	}

	return items, algorithmsUsed
}

// getAlgorithms returns the registered algorithms.
func (e *Engine) getAlgorithms() []Algorithm {
	e.algMu.RLock()
	defer e.algMu.RUnlock()
	return e.algorithms
}

// Train fetches a fresh corpus and retrains all registered algorithms.
// Returns ErrTrainingInProgress if another run holds the training lock.
func (e *Engine) Train(ctx context.Context) error {
	if !e.trainMu.TryLock() {
		return ErrTrainingInProgress
	}
	defer e.trainMu.Unlock()

	return e.trainLocked(ctx)
}

// StartTraining claims the training lock and runs the training in the
// background. Claiming before returning means concurrent callers get a
// definitive ErrTrainingInProgress rather than racing a detached run.
func (e *Engine) StartTraining(ctx context.Context) error {
	if !e.trainMu.TryLock() {
		return ErrTrainingInProgress
	}

	go func() {
		defer e.trainMu.Unlock()
		if err := e.trainLocked(ctx); err != nil {
			e.logger.Error().Err(err).Msg("background training failed")
		}
	}()
	return nil
}

// trainLocked runs one training pass. Caller holds e.trainMu.
func (e *Engine) trainLocked(ctx context.Context) error {
	if e.provider == nil {
		return fmt.Errorf("catalog provider not set")
	}

	start := time.Now()
	e.setTrainingStarted()
	e.logger.Info().Msg("starting model training")

	trainCtx, cancel := context.WithTimeout(ctx, e.config.Training.Timeout)
	defer cancel()

	err := e.runTraining(trainCtx)
	e.setTrainingFinished(start, err)

	corpusSize := e.trainStatusSnapshot().ItemCount
	metrics.RecordTrainingRun(time.Since(start), corpusSize, int64(e.modelVersion.Load()), err)

	if err != nil {
		e.errorCount.Add(1)
		return err
	}

	e.trainingCount.Add(1)
	e.logger.Info().
		Int("version", int(e.modelVersion.Load())).
		Int("items", corpusSize).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("model training complete")

	return nil
}

// runTraining does the corpus fetch and per-algorithm training.
// Called with trainMu held.
func (e *Engine) runTraining(ctx context.Context) error {
	items, err := e.provider.GetCorpus(ctx)
	if err != nil {
		return fmt.Errorf("fetch corpus: %w", err)
	}

	if len(items) < e.config.Training.MinItems {
		return fmt.Errorf("insufficient corpus: %d items < %d", len(items), e.config.Training.MinItems)
	}

	e.setStatusItemCount(len(items))
	e.logger.Info().Int("items", len(items)).Msg("loaded training corpus")

	algorithms := e.getAlgorithms()
	if len(algorithms) == 0 {
		return fmt.Errorf("no algorithms registered")
	}

	trained := 0
	for i, alg := range algorithms {
		e.setStatusProgress(alg.Name(), (i*100)/len(algorithms))

		if err := alg.Train(ctx, items); err != nil {
			e.logger.Error().
				Str("algorithm", alg.Name()).
				Err(err).
				Msg("algorithm training failed")
			continue
		}
		trained++

		e.logger.Debug().
			Str("algorithm", alg.Name()).
			Msg("algorithm training complete")
	}

	if trained == 0 {
		return fmt.Errorf("all %d algorithms failed to train", len(algorithms))
	}

	// Swap in the new corpus, then bump the version so the old cache
	// keys stop matching
	corpus := make(map[int]Item, len(items))
	ids := make([]int, 0, len(items))
	for _, item := range items {
		corpus[item.ID] = item
		ids = append(ids, item.ID)
	}
	sort.Ints(ids)

	e.corpusMu.Lock()
	e.corpus = corpus
	e.candidateIDs = ids
	e.corpusMu.Unlock()

	e.modelVersion.Add(1)
	return nil
}

// setTrainingStarted marks the status as in progress.
func (e *Engine) setTrainingStarted() {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	e.trainStatus.IsTraining = true
	e.trainStatus.Progress = 0
	e.trainStatus.LastError = ""
}

// setTrainingFinished records the outcome of a training run.
func (e *Engine) setTrainingFinished(start time.Time, err error) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	e.trainStatus.IsTraining = false
	e.trainStatus.CurrentAlgorithm = ""
	e.trainStatus.LastTrainingDurationMS = time.Since(start).Milliseconds()

	if err != nil {
		e.trainStatus.LastError = err.Error()
		return
	}

	e.lastTrainedAt = time.Now()
	e.trainStatus.Progress = 100
	e.trainStatus.LastTrainedAt = e.lastTrainedAt
	e.trainStatus.ModelVersion = int(e.modelVersion.Load())
}

func (e *Engine) setStatusItemCount(n int) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	e.trainStatus.ItemCount = n
}

func (e *Engine) setStatusProgress(algorithm string, progress int) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	e.trainStatus.CurrentAlgorithm = algorithm
	e.trainStatus.Progress = progress
}

func (e *Engine) trainStatusSnapshot() TrainingStatus {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.trainStatus
}

func (e *Engine) trainedAt() time.Time {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.lastTrainedAt
}

// IsTrained reports whether at least one training run has completed.
func (e *Engine) IsTrained() bool {
	return e.modelVersion.Load() > 0
}

// GetStatus returns the current training status.
func (e *Engine) GetStatus() TrainingStatus {
	return e.trainStatusSnapshot()
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:  e.requestCount.Load(),
		CacheHits:     e.cacheHits.Load(),
		CacheMisses:   e.cacheMisses.Load(),
		TrainingCount: e.trainingCount.Load(),
		ErrorCount:    e.errorCount.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// checkCache returns a copy of a cached response, or nil.
func (e *Engine) checkCache(key string) *Response {
	if e.predCache == nil {
		return nil
	}

	cached, ok := e.predCache.Get(key)
	if !ok {
		return nil
	}

	items := make([]ScoredItem, len(cached.Items))
	copy(items, cached.Items)

	return &Response{
		Items:           items,
		TotalCandidates: cached.TotalCandidates,
		Metadata:        cached.Metadata,
	}
}

// storeCache stores a response in the prediction cache.
func (e *Engine) storeCache(key string, resp *Response) {
	if e.predCache != nil {
		e.predCache.Add(key, resp)
	}
}
