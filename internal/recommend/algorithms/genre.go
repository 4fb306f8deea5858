// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package algorithms

import (
	"context"

	"github.com/tomtom215/kinograph/internal/recommend"
)

// Genre implements similarity as Jaccard overlap of genre ID sets.
// It complements TF-IDF: two movies with disjoint plot vocabulary can
// still be close if TMDB files them under the same genres, which keeps
// sparse-overview movies recommendable.
type Genre struct {
	BaseAlgorithm

	// Trained model
	itemGenres map[int][]int // item_id -> genre IDs
}

// NewGenre creates a new genre-overlap algorithm.
func NewGenre() *Genre {
	return &Genre{
		BaseAlgorithm: NewBaseAlgorithm("genre"),
		itemGenres:    make(map[int][]int),
	}
}

// Train stores the genre sets of the corpus.
//
//nolint:gocritic // rangeValCopy: Item passed by value in range, acceptable for clarity
func (g *Genre) Train(ctx context.Context, items []recommend.Item) error {
	genres := make(map[int][]int, len(items))
	for _, item := range items {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}
		genres[item.ID] = item.GenreIDs
	}

	g.acquireTrainLock()
	defer g.releaseTrainLock()

	g.itemGenres = genres
	g.markTrained()
	return nil
}

// PredictSimilar returns Jaccard similarities between the given item's
// genre set and each candidate's, min-max normalized to [0, 1].
func (g *Genre) PredictSimilar(ctx context.Context, itemID int, candidates []int) (map[int]float64, error) {
	g.acquirePredictLock()
	defer g.releasePredictLock()

	if !g.trained {
		return nil, nil
	}

	source, ok := g.itemGenres[itemID]
	if !ok || len(source) == 0 {
		return nil, nil
	}

	scores := make(map[int]float64, len(candidates))
	for _, candidateID := range candidates {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		if candidateID == itemID {
			continue
		}

		candidate, ok := g.itemGenres[candidateID]
		if !ok {
			continue
		}

		if sim := jaccardSimilarity(source, candidate); sim > 0 {
			scores[candidateID] = sim
		}
	}

	return normalizeScores(scores), nil
}
