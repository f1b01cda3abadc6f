// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache lookup results.
const (
	CacheResultHit   = "hit"
	CacheResultMiss  = "miss"
	CacheResultStale = "stale"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Cache Metrics
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Cache lookups by key and result (hit, miss, stale)",
		},
		[]string{"key", "result"},
	)

	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Entries removed by the periodic sweep",
		},
	)

	CacheFallbackResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_fallback_responses_total",
			Help: "Responses served from a fallback cache tier",
		},
		[]string{"resource", "tier"},
	)

	// Notion API Metrics
	NotionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notion_requests_total",
			Help: "Total number of Notion API requests",
		},
		[]string{"operation", "status"},
	)

	NotionRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notion_request_duration_seconds",
			Help:    "Notion API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	NotionRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notion_retries_total",
			Help: "Notion requests retried after HTTP 429",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Sync Monitor Metrics
	MonitorEvents = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "monitor_events",
			Help: "Events per time bucket observed by the last monitor poll",
		},
		[]string{"bucket"},
	)

	MonitorRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monitor_runs_total",
			Help: "Sync monitor polls by result",
		},
		[]string{"result"},
	)

	MonitorDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "monitor_duration_seconds",
			Help:    "Duration of sync monitor polls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	MonitorLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "monitor_last_success_timestamp",
			Help: "Unix timestamp of the last successful monitor poll",
		},
	)

	SyncRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_requests_total",
			Help: "Administrative cache reset requests by result",
		},
		[]string{"result"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup records a cache lookup outcome.
func RecordCacheLookup(key, result string) {
	CacheLookups.WithLabelValues(key, result).Inc()
}

// RecordFallback records a response served from a fallback tier.
func RecordFallback(resource, tier string) {
	CacheFallbackResponses.WithLabelValues(resource, tier).Inc()
}

// RecordNotionRequest records one Notion HTTP round trip.
func RecordNotionRequest(operation string, status int, duration time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	NotionRequestsTotal.WithLabelValues(operation, label).Inc()
	NotionRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordMonitorRun records a sync monitor poll and its bucket counts.
func RecordMonitorRun(duration time.Duration, buckets map[string]int, err error) {
	MonitorDuration.Observe(duration.Seconds())
	if err != nil {
		MonitorRuns.WithLabelValues("error").Inc()
		return
	}
	MonitorRuns.WithLabelValues("success").Inc()
	MonitorLastSuccess.Set(float64(time.Now().Unix()))
	for bucket, n := range buckets {
		MonitorEvents.WithLabelValues(bucket).Set(float64(n))
	}
}

// RecordSync records an administrative sync request.
func RecordSync(err error) {
	if err != nil {
		SyncRequests.WithLabelValues("error").Inc()
		return
	}
	SyncRequests.WithLabelValues("success").Inc()
}
