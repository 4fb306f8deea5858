// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package algorithms

import (
	"context"
	"testing"

	"github.com/tomtom215/kinograph/internal/recommend"
)

func popularityCorpus() []recommend.Item {
	return []recommend.Item{
		{ID: 1, Title: "Blockbuster", Popularity: 95.0},
		{ID: 2, Title: "Mid-tier", Popularity: 50.0},
		{ID: 3, Title: "Obscure", Popularity: 5.0},
	}
}

func TestPopularity_Train(t *testing.T) {
	alg := NewPopularity()

	if err := alg.Train(context.Background(), popularityCorpus()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if !alg.IsTrained() {
		t.Error("Algorithm should be trained after Train")
	}
}

func TestPopularity_PredictSimilar(t *testing.T) {
	alg := NewPopularity()
	if err := alg.Train(context.Background(), popularityCorpus()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	scores, err := alg.PredictSimilar(context.Background(), 3, []int{1, 2})
	if err != nil {
		t.Fatalf("PredictSimilar failed: %v", err)
	}

	if scores[1] <= scores[2] {
		t.Errorf("Expected higher popularity to score higher: %v", scores)
	}
	if scores[1] != 1.0 || scores[2] != 0.0 {
		t.Errorf("Expected min-max normalized scores, got %v", scores)
	}
}

func TestPopularity_ExcludesSubject(t *testing.T) {
	alg := NewPopularity()
	if err := alg.Train(context.Background(), popularityCorpus()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	scores, err := alg.PredictSimilar(context.Background(), 1, []int{1, 2, 3})
	if err != nil {
		t.Fatalf("PredictSimilar failed: %v", err)
	}

	if _, ok := scores[1]; ok {
		t.Error("Subject item must not appear in scores")
	}
}

func TestPopularity_GetTopK(t *testing.T) {
	alg := NewPopularity()
	if err := alg.Train(context.Background(), popularityCorpus()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	tests := []struct {
		name     string
		k        int
		expected []int
	}{
		{name: "top 2", k: 2, expected: []int{1, 2}},
		{name: "k beyond corpus", k: 10, expected: []int{1, 2, 3}},
		{name: "zero k", k: 0, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := alg.GetTopK(tt.k)
			if len(got) != len(tt.expected) {
				t.Fatalf("GetTopK(%d) = %v, want %v", tt.k, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("GetTopK(%d)[%d] = %d, want %d", tt.k, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestPopularity_Untrained(t *testing.T) {
	alg := NewPopularity()

	scores, err := alg.PredictSimilar(context.Background(), 1, []int{2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if scores != nil {
		t.Error("Untrained algorithm should return nil scores")
	}
}
