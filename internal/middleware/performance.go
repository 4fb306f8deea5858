// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/kinograph/internal/logging"
)

// RequestMetrics is one observed request: which catalog or recommendation
// endpoint was hit, how long it took, and what status it returned.
type RequestMetrics struct {
	Path       string
	Method     string
	DurationMS int64
	StatusCode int
	Timestamp  time.Time
}

// PerformanceMonitor keeps a bounded window of recent request timings and
// aggregates them per endpoint. The window feeds the latency summary in the
// health payload; long-term series go to Prometheus instead.
type PerformanceMonitor struct {
	mu         sync.RWMutex
	window     []RequestMetrics
	next       int
	filled     bool
	maxMetrics int
}

// EndpointStats is the aggregated latency profile of one method+path pair
// over the recent-request window.
type EndpointStats struct {
	Path         string
	RequestCount int64
	AvgDuration  float64
	P95Duration  int64
	P99Duration  int64
}

// NewPerformanceMonitor creates a monitor holding the last maxMetrics
// requests.
func NewPerformanceMonitor(maxMetrics int) *PerformanceMonitor {
	if maxMetrics < 1 {
		maxMetrics = 1
	}
	return &PerformanceMonitor{
		window:     make([]RequestMetrics, maxMetrics),
		maxMetrics: maxMetrics,
	}
}

// RecordRequest adds a request observation, evicting the oldest one once
// the window is full.
func (pm *PerformanceMonitor) RecordRequest(metric *RequestMetrics) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.window[pm.next] = *metric
	pm.next++
	if pm.next == pm.maxMetrics {
		pm.next = 0
		pm.filled = true
	}
}

// GetStats aggregates the window per endpoint, ordered by request count
// descending.
func (pm *PerformanceMonitor) GetStats() []EndpointStats {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	count := pm.next
	if pm.filled {
		count = pm.maxMetrics
	}

	byEndpoint := make(map[string][]int64)
	for i := 0; i < count; i++ {
		m := pm.window[i]
		key := m.Method + " " + m.Path
		byEndpoint[key] = append(byEndpoint[key], m.DurationMS)
	}

	stats := make([]EndpointStats, 0, len(byEndpoint))
	for endpoint, durations := range byEndpoint {
		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

		var sum int64
		for _, d := range durations {
			sum += d
		}

		stats = append(stats, EndpointStats{
			Path:         endpoint,
			RequestCount: int64(len(durations)),
			AvgDuration:  float64(sum) / float64(len(durations)),
			P95Duration:  percentile(durations, 0.95),
			P99Duration:  percentile(durations, 0.99),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].RequestCount > stats[j].RequestCount
	})

	return stats
}

// Middleware times each request and records it in the window. Requests
// slower than one second are logged as they complete.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapper, r)

		duration := time.Since(start).Milliseconds()

		pm.RecordRequest(&RequestMetrics{
			Path:       r.URL.Path,
			Method:     r.Method,
			DurationMS: duration,
			StatusCode: wrapper.statusCode,
			Timestamp:  time.Now(),
		})

		if duration > 1000 {
			logging.Warn().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int64("duration_ms", duration).
				Msg("Slow request detected")
		}
	})
}

// percentile returns the value at rank p from an ascending-sorted slice.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)-1) * p)
	return sorted[index]
}

// responseWriter captures the status code written by the wrapped handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
