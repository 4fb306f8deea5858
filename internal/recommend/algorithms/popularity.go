// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package algorithms

import (
	"context"
	"sort"

	"github.com/tomtom215/kinograph/internal/recommend"
)

// Popularity ranks candidates by their TMDB popularity metric,
// independent of the subject movie. With a small blend weight it acts
// as a tie-breaker: when text and genre similarity cannot separate two
// candidates, the better-known one wins.
type Popularity struct {
	BaseAlgorithm

	// Trained model
	itemScores map[int]float64
	sortedIDs  []int // item IDs sorted by popularity descending
}

// NewPopularity creates a new popularity prior algorithm.
func NewPopularity() *Popularity {
	return &Popularity{
		BaseAlgorithm: NewBaseAlgorithm("popularity"),
		itemScores:    make(map[int]float64),
	}
}

// Train stores per-item popularity scores.
//
//nolint:gocritic // rangeValCopy: Item passed by value in range, acceptable for clarity
func (p *Popularity) Train(ctx context.Context, items []recommend.Item) error {
	scores := make(map[int]float64, len(items))
	for _, item := range items {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}
		scores[item.ID] = item.Popularity
	}

	ids := make([]int, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})

	p.acquireTrainLock()
	defer p.releaseTrainLock()

	p.itemScores = scores
	p.sortedIDs = ids
	p.markTrained()
	return nil
}

// PredictSimilar returns normalized popularity for each candidate.
// The subject item only gates on corpus membership; popularity is a
// global prior.
func (p *Popularity) PredictSimilar(ctx context.Context, itemID int, candidates []int) (map[int]float64, error) {
	p.acquirePredictLock()
	defer p.releasePredictLock()

	if !p.trained || len(p.itemScores) == 0 {
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

		if score, ok := p.itemScores[candidateID]; ok {
			scores[candidateID] = score
		}
	}

	return normalizeScores(scores), nil
}

// GetTopK returns the top K most popular item IDs.
func (p *Popularity) GetTopK(k int) []int {
	p.acquirePredictLock()
	defer p.releasePredictLock()

	if k <= 0 || len(p.sortedIDs) == 0 {
		return nil
	}

	if k > len(p.sortedIDs) {
		k = len(p.sortedIDs)
	}

	result := make([]int, k)
	copy(result, p.sortedIDs[:k])
	return result
}
