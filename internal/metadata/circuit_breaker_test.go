// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package metadata

import (
	"context"
	"errors"
	"fmt"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/kinograph/internal/models"
)

// mockMetadataClient implements TMDBClientInterface with scriptable
// behavior for breaker tests.
type mockMetadataClient struct {
	pingErr    error
	listErr    error
	movieErr   error
	list       *models.MovieList
	movie      *models.Movie
	callCount  int
	pingCalled int
}

func (m *mockMetadataClient) Ping(_ context.Context) error {
	m.pingCalled++
	return m.pingErr
}

func (m *mockMetadataClient) DiscoverMovies(_ context.Context, _ int) (*models.MovieList, error) {
	m.callCount++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

func (m *mockMetadataClient) GetPopularMovies(_ context.Context, _ int) (*models.MovieList, error) {
	m.callCount++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

func (m *mockMetadataClient) GetMovie(_ context.Context, _ int) (*models.Movie, error) {
	m.callCount++
	if m.movieErr != nil {
		return nil, m.movieErr
	}
	return m.movie, nil
}

func TestNewCircuitBreakerClient(t *testing.T) {
	mock := &mockMetadataClient{}
	cbc := NewCircuitBreakerClient(mock)

	if cbc == nil {
		t.Fatal("NewCircuitBreakerClient returned nil")
	}

	if cbc.State() != gobreaker.StateClosed {
		t.Errorf("Expected initial state closed, got %v", cbc.State())
	}

	if cbc.StateString() != "closed" {
		t.Errorf("Expected state string 'closed', got %s", cbc.StateString())
	}
}

func TestCircuitBreakerClient_PassThrough(t *testing.T) {
	mock := &mockMetadataClient{
		list: &models.MovieList{
			Page:       1,
			Results:    []models.Movie{{ID: 603, Title: "The Matrix"}},
			TotalPages: 500,
		},
		movie: &models.Movie{ID: 603, Title: "The Matrix"},
	}
	cbc := NewCircuitBreakerClient(mock)
	ctx := context.Background()

	if err := cbc.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	list, err := cbc.DiscoverMovies(ctx, 1)
	if err != nil {
		t.Fatalf("DiscoverMovies failed: %v", err)
	}
	if len(list.Results) != 1 || list.Results[0].ID != 603 {
		t.Errorf("Unexpected discover result: %+v", list)
	}

	popular, err := cbc.GetPopularMovies(ctx, 1)
	if err != nil {
		t.Fatalf("GetPopularMovies failed: %v", err)
	}
	if popular.TotalPages != 500 {
		t.Errorf("Expected 500 total pages, got %d", popular.TotalPages)
	}

	movie, err := cbc.GetMovie(ctx, 603)
	if err != nil {
		t.Fatalf("GetMovie failed: %v", err)
	}
	if movie.Title != "The Matrix" {
		t.Errorf("Expected title 'The Matrix', got %s", movie.Title)
	}

	if cbc.State() != gobreaker.StateClosed {
		t.Errorf("Expected closed state after successes, got %v", cbc.State())
	}
}

func TestCircuitBreakerClient_OpensAfterFailures(t *testing.T) {
	mock := &mockMetadataClient{
		listErr: fmt.Errorf("upstream down"),
	}
	cbc := NewCircuitBreakerClient(mock)
	ctx := context.Background()

	// Breaker needs at least 10 requests at >= 60% failure to trip
	for i := 0; i < 12; i++ {
		_, _ = cbc.GetPopularMovies(ctx, 1)
	}

	if cbc.State() != gobreaker.StateOpen {
		t.Fatalf("Expected open state after repeated failures, got %v", cbc.State())
	}

	// While open, calls are rejected without reaching the client
	before := mock.callCount
	_, err := cbc.GetPopularMovies(ctx, 1)
	if err == nil {
		t.Fatal("Expected rejection while circuit is open, got nil")
	}
	if !IsUnavailable(err) {
		t.Errorf("Expected IsUnavailable to report true for %v", err)
	}
	if mock.callCount != before {
		t.Error("Open circuit should not forward calls to the client")
	}
}

func TestCircuitBreakerClient_NotFoundDoesNotTrip(t *testing.T) {
	mock := &mockMetadataClient{
		movieErr: fmt.Errorf("/movie/999: %w", ErrNotFound),
	}
	cbc := NewCircuitBreakerClient(mock)
	ctx := context.Background()

	// Unknown IDs are the caller's mistake, not upstream failures
	for i := 0; i < 20; i++ {
		_, err := cbc.GetMovie(ctx, 999)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	}

	if cbc.State() != gobreaker.StateClosed {
		t.Errorf("Expected closed state after 404s, got %v", cbc.State())
	}
}

func TestCircuitBreakerClient_BelowThresholdStaysClosed(t *testing.T) {
	mock := &mockMetadataClient{
		listErr: fmt.Errorf("transient error"),
	}
	cbc := NewCircuitBreakerClient(mock)
	ctx := context.Background()

	// Fewer than 10 requests should never trip regardless of failure rate
	for i := 0; i < 9; i++ {
		_, _ = cbc.GetPopularMovies(ctx, 1)
	}

	if cbc.State() != gobreaker.StateClosed {
		t.Errorf("Expected closed state below minimum request count, got %v", cbc.State())
	}
}

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "open state error",
			err:      gobreaker.ErrOpenState,
			expected: true,
		},
		{
			name:     "too many requests error",
			err:      gobreaker.ErrTooManyRequests,
			expected: true,
		},
		{
			name:     "wrapped open state error",
			err:      fmt.Errorf("call failed: %w", gobreaker.ErrOpenState),
			expected: true,
		},
		{
			name:     "generic error",
			err:      errors.New("something else"),
			expected: false,
		},
		{
			name:     "not found error",
			err:      ErrNotFound,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUnavailable(tt.err); got != tt.expected {
				t.Errorf("IsUnavailable(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestCastResult(t *testing.T) {
	t.Run("valid type", func(t *testing.T) {
		want := &models.Movie{ID: 603}
		got, err := castResult[models.Movie](want, nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != want {
			t.Error("Expected same pointer back")
		}
	})

	t.Run("error passes through", func(t *testing.T) {
		wantErr := errors.New("boom")
		_, err := castResult[models.Movie](nil, wantErr)
		if !errors.Is(err, wantErr) {
			t.Errorf("Expected original error, got %v", err)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := castResult[models.Movie]("not a movie", nil)
		if err == nil {
			t.Fatal("Expected type assertion error, got nil")
		}
	})
}

func TestStateConversions(t *testing.T) {
	stateFloats := []struct {
		state    gobreaker.State
		expected float64
	}{
		{gobreaker.StateClosed, 0},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateOpen, 2},
	}
	for _, tt := range stateFloats {
		if got := stateToFloat(tt.state); got != tt.expected {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.expected)
		}
	}

	stateStrings := []struct {
		state    gobreaker.State
		expected string
	}{
		{gobreaker.StateClosed, "closed"},
		{gobreaker.StateHalfOpen, "half-open"},
		{gobreaker.StateOpen, "open"},
	}
	for _, tt := range stateStrings {
		if got := stateToString(tt.state); got != tt.expected {
			t.Errorf("stateToString(%v) = %q, want %q", tt.state, got, tt.expected)
		}
	}
}
