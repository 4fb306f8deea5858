// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package algorithms

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/tomtom215/kinograph/internal/recommend"
)

// TFIDF implements text similarity over movie overviews and titles.
// Each movie becomes an L2-normalized TF-IDF vector and similarity is
// the cosine between vectors, which for unit vectors reduces to a
// sparse dot product.
//
// The weighting follows the smoothed-IDF convention:
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// so terms appearing in every document still carry a small weight and
// an empty document frequency cannot divide by zero.
type TFIDF struct {
	BaseAlgorithm

	// minTokenLength drops single-letter noise tokens.
	minTokenLength int

	// Trained model
	vectors map[int]map[int]float64 // item_id -> term index -> weight
	vocab   map[string]int          // term -> index
}

// TFIDFConfig contains configuration for the TF-IDF algorithm.
type TFIDFConfig struct {
	// MinTokenLength is the minimum token length to index.
	// Default: 2.
	MinTokenLength int
}

// NewTFIDF creates a new TF-IDF text similarity algorithm.
func NewTFIDF(cfg TFIDFConfig) *TFIDF {
	if cfg.MinTokenLength <= 0 {
		cfg.MinTokenLength = 2
	}

	return &TFIDF{
		BaseAlgorithm:  NewBaseAlgorithm("tfidf"),
		minTokenLength: cfg.MinTokenLength,
		vectors:        make(map[int]map[int]float64),
		vocab:          make(map[string]int),
	}
}

// tokenize lowercases text and splits it on non-letter boundaries,
// dropping stop words and short tokens.
func (t *TFIDF) tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len(tok) < t.minTokenLength || isStopWord(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Train builds TF-IDF vectors for the corpus.
//
//nolint:gocritic // rangeValCopy: Item passed by value in range, acceptable for clarity
func (t *TFIDF) Train(ctx context.Context, items []recommend.Item) error {
	// Tokenize outside the lock; this is the expensive part
	docs := make(map[int][]string, len(items))
	for _, item := range items {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}
		docs[item.ID] = t.tokenize(item.Overview + " " + item.Title)
	}

	// Vocabulary and document frequencies
	vocab := make(map[string]int)
	df := make(map[int]int)
	termCounts := make(map[int]map[int]int, len(docs))

	for id, tokens := range docs {
		counts := make(map[int]int)
		for _, tok := range tokens {
			idx, ok := vocab[tok]
			if !ok {
				idx = len(vocab)
				vocab[tok] = idx
			}
			counts[idx]++
		}
		termCounts[id] = counts
		for idx := range counts {
			df[idx]++
		}
	}

	// Smoothed IDF
	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for idx, count := range df {
		idf[idx] = math.Log((1+n)/(1+float64(count))) + 1
	}

	// TF-IDF vectors, L2-normalized so dot product equals cosine
	vectors := make(map[int]map[int]float64, len(docs))
	for id, counts := range termCounts {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}

		vec := make(map[int]float64, len(counts))
		for idx, count := range counts {
			vec[idx] = float64(count) * idf[idx]
		}

		if norm := l2Norm(vec); norm > 0 {
			for idx := range vec {
				vec[idx] /= norm
			}
		}
		vectors[id] = vec
	}

	t.acquireTrainLock()
	defer t.releaseTrainLock()

	t.vocab = vocab
	t.vectors = vectors
	t.markTrained()
	return nil
}

// PredictSimilar returns cosine similarities between the given item and
// each candidate, min-max normalized to [0, 1].
func (t *TFIDF) PredictSimilar(ctx context.Context, itemID int, candidates []int) (map[int]float64, error) {
	t.acquirePredictLock()
	defer t.releasePredictLock()

	if !t.trained {
		return nil, nil
	}

	source, ok := t.vectors[itemID]
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

		candidate, ok := t.vectors[candidateID]
		if !ok {
			continue
		}

		if sim := sparseDot(source, candidate); sim > 0 {
			scores[candidateID] = sim
		}
	}

	return normalizeScores(scores), nil
}

// sparseDot computes the dot product of two sparse vectors, iterating
// over the smaller one.
func sparseDot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	for idx, wa := range a {
		if wb, ok := b[idx]; ok {
			dot += wa * wb
		}
	}
	return dot
}

// VocabularySize returns the number of distinct indexed terms.
func (t *TFIDF) VocabularySize() int {
	t.acquirePredictLock()
	defer t.releasePredictLock()
	return len(t.vocab)
}
