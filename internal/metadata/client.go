// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

// Package metadata provides the client for the upstream movie metadata
// API (TMDB) with rate limiting, retry, and circuit breaker protection.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/kinograph/internal/config"
	"github.com/tomtom215/kinograph/internal/metrics"
	"github.com/tomtom215/kinograph/internal/models"
)

// maxErrorBodySize limits the maximum amount of response body read for error reporting
// This prevents unbounded memory allocation when reading large error responses
const maxErrorBodySize = 64 * 1024 // 64KB

// ErrNotFound is returned when the upstream reports 404 for a resource.
// Handlers map it to a client-facing NOT_FOUND response rather than a
// gateway error: an unknown movie ID is the caller's mistake, not an
// upstream outage.
var ErrNotFound = errors.New("metadata: resource not found")

// UpstreamError describes a non-2xx upstream response that is not a 404.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed with status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// readBodyForError reads the response body for error reporting (max 64KB)
// Returns the body content or a placeholder message if reading fails
// Uses io.LimitReader to prevent unbounded memory allocation
func readBodyForError(r io.Reader) []byte {
	// Limit reading to prevent memory issues with large responses
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	// If we hit the limit, indicate truncation
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// TMDBClientInterface defines the operations the rest of the service
// needs from the metadata provider.
//
// It is implemented by TMDBClient for production use and by mock
// implementations for testing. CircuitBreakerClient also implements it,
// so callers can be handed either transparently.
//
// All methods follow a consistent pattern:
//   - Accept context.Context as first parameter for cancellation/timeout support
//   - Return typed structs from internal/models
//   - Return error on HTTP failures, API errors, or JSON parse failures
//
// Thread Safety: All methods are safe for concurrent use.
type TMDBClientInterface interface {
	// Ping verifies connectivity and key validity against a cheap endpoint.
	Ping(ctx context.Context) error

	// DiscoverMovies returns one page of the discover listing,
	// sorted by descending popularity.
	DiscoverMovies(ctx context.Context, page int) (*models.MovieList, error)

	// GetPopularMovies returns one page of the popular listing.
	GetPopularMovies(ctx context.Context, page int) (*models.MovieList, error)

	// GetMovie returns full details for a single movie, flattened to
	// the list-entry shape. Returns ErrNotFound for unknown IDs.
	GetMovie(ctx context.Context, id int) (*models.Movie, error)
}

// TMDBClient handles communication with the TMDB HTTP API.
//
// Features:
//   - Configurable request timeout
//   - Client-side throttle (token bucket) to stay under the provider limit
//   - Automatic retry on rate limiting (up to MaxRetries)
//   - Exponential backoff (1s, 2s, 4s, 8s, 16s delays), honoring Retry-After
//   - JSON parsing with typed response structs
//
// Thread Safety: Safe for concurrent use. Each request creates its own HTTP request.
//
// Example:
//
//	client := metadata.NewTMDBClient(&cfg.TMDB)
//	if err := client.Ping(ctx); err != nil {
//	    log.Fatal("TMDB not reachable:", err)
//	}
//	page, err := client.GetPopularMovies(ctx, 1)
type TMDBClient struct {
	baseURL        string
	apiKey         string
	language       string
	client         *http.Client
	limiter        *rate.Limiter // nil when client-side throttling is disabled
	maxRetries     int           // Maximum retries for rate limiting
	retryBaseDelay time.Duration // Base delay for exponential backoff
}

// NewTMDBClient creates a new TMDB API client with the provided configuration.
func NewTMDBClient(cfg *config.TMDBConfig) *TMDBClient {
	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	return &TMDBClient{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:        limiter,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
	}
}

// doRequestWithRateLimit performs an HTTP request with automatic rate limit handling.
// It first waits on the client-side throttle, then implements exponential backoff
// for HTTP 429 responses. The context is used for cancellation during waits.
func (c *TMDBClient) doRequestWithRateLimit(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Check context before attempting request
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		// Client-side throttle before hitting the wire
		if c.limiter != nil {
			if !c.limiter.Allow() {
				metrics.UpstreamThrottleWaits.Inc()
				if err := c.limiter.Wait(ctx); err != nil {
					return nil, err
				}
			}
		}

		// Create request with context
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		// Success - return response
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Rate limited (HTTP 429) - close body and retry with backoff
		_ = resp.Body.Close() // Explicitly ignore error - will retry anyway
		metrics.UpstreamRetries.Inc()

		// Last attempt - return error
		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
			break
		}

		// Calculate exponential backoff delay: 1s, 2s, 4s, 8s, 16s
		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))

		// Check for Retry-After header (RFC 6585)
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			// Try parsing as seconds (integer)
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				delay = seconds
			}
		}

		// Use cancellable wait instead of time.Sleep
		select {
		case <-time.After(delay):
			// Continue to next attempt
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// makeRequest is a generic helper that handles common TMDB API request boilerplate.
// It builds the URL with the API key and language, makes the request, checks HTTP
// status, and decodes the JSON response.
//
// Parameters:
//   - ctx: Context for cancellation and timeout support
//   - endpoint: API path relative to the base URL (e.g., "/movie/603")
//   - label: low-cardinality endpoint name for metrics (e.g., "/movie/{id}")
//   - params: Additional URL parameters (without api_key/language which are added automatically)
//   - result: Pointer to response struct that will be populated
//
// Returns ErrNotFound on HTTP 404, an *UpstreamError on other non-200
// statuses, and wraps transport or decode failures.
func (c *TMDBClient) makeRequest(ctx context.Context, endpoint, label string, params url.Values, result interface{}) error {
	// Add required parameters
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	start := time.Now()
	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		metrics.RecordUpstreamRequest(label, "error", time.Since(start))
		return fmt.Errorf("failed to make %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.RecordUpstreamRequest(label, "error", time.Since(start))
		return fmt.Errorf("%s: %w", endpoint, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		metrics.RecordUpstreamRequest(label, "error", time.Since(start))
		body := readBodyForError(resp.Body)
		return &UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}

	// Decode JSON response
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(result); err != nil {
		metrics.RecordUpstreamRequest(label, "error", time.Since(start))
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	metrics.RecordUpstreamRequest(label, "success", time.Since(start))
	return nil
}

// Ping verifies connectivity and key validity against the configuration
// endpoint, the cheapest authenticated call the provider offers.
func (c *TMDBClient) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s/configuration?%s", c.baseURL, params.Encode())

	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		return fmt.Errorf("failed to ping metadata provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("metadata provider ping failed with status: %d", resp.StatusCode)
	}

	return nil
}

// DiscoverMovies returns one page of the discover listing sorted by
// descending popularity. Page must be in [1, 500]; the provider rejects
// values outside that range, so callers validate before reaching here.
func (c *TMDBClient) DiscoverMovies(ctx context.Context, page int) (*models.MovieList, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	params.Set("include_video", "false")

	var list models.MovieList
	if err := c.makeRequest(ctx, "/discover/movie", "/discover/movie", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetPopularMovies returns one page of the popular listing.
func (c *TMDBClient) GetPopularMovies(ctx context.Context, page int) (*models.MovieList, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var list models.MovieList
	if err := c.makeRequest(ctx, "/movie/popular", "/movie/popular", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetMovie returns full details for a single movie, flattened to the
// list-entry shape so callers handle one movie type everywhere.
// Returns ErrNotFound for unknown IDs.
func (c *TMDBClient) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	var detail models.MovieDetail
	endpoint := fmt.Sprintf("/movie/%d", id)
	if err := c.makeRequest(ctx, endpoint, "/movie/{id}", nil, &detail); err != nil {
		return nil, err
	}
	return detail.Flatten(), nil
}
