// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

// Package metrics exposes Prometheus collectors for the HTTP layer, the
// recommendation engine, the catalog and the caches. Collectors are
// registered once at import time via promauto; handlers and the engine
// record through the helper functions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts HTTP requests by method, route and status.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinity_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// APIRequestDuration observes HTTP request latency.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "affinity_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// APIActiveRequests gauges in-flight HTTP requests.
	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "affinity_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// RecommendationsTotal counts engine runs by media kind and outcome.
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinity_recommendations_total",
			Help: "Total recommendation computations by media kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// RecommendationDuration observes end-to-end engine latency per kind.
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "affinity_recommendation_duration_seconds",
			Help:    "Recommendation computation duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"kind"},
	)

	// CacheOperationsTotal counts cache hits and misses per cache name.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinity_cache_operations_total",
			Help: "Cache operations by cache name and result (hit/miss)",
		},
		[]string{"cache", "result"},
	)

	// CatalogItems gauges the number of items in the active snapshot per kind.
	CatalogItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "affinity_catalog_items",
			Help: "Number of items in the active catalog snapshot",
		},
		[]string{"kind"},
	)

	// CatalogSnapshotVersion gauges the monotonic snapshot version per kind.
	CatalogSnapshotVersion = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "affinity_catalog_snapshot_version",
			Help: "Version of the active catalog snapshot",
		},
		[]string{"kind"},
	)

	// ArtworkUpstreamRequests counts metadata-service calls by outcome.
	ArtworkUpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinity_artwork_upstream_requests_total",
			Help: "Upstream artwork/metadata requests by outcome",
		},
		[]string{"outcome"},
	)

	// ArtworkBreakerState gauges the circuit breaker state (0 closed,
	// 1 half-open, 2 open).
	ArtworkBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "affinity_artwork_breaker_state",
			Help: "Artwork client circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one engine run.
func RecordRecommendation(kind, outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(kind, outcome).Inc()
	RecommendationDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordCacheHit records a hit on the named cache.
func RecordCacheHit(cache string) {
	CacheOperationsTotal.WithLabelValues(cache, "hit").Inc()
}

// RecordCacheMiss records a miss on the named cache.
func RecordCacheMiss(cache string) {
	CacheOperationsTotal.WithLabelValues(cache, "miss").Inc()
}

// SetCatalogSnapshot publishes item count and version for a swapped-in
// snapshot.
func SetCatalogSnapshot(kind string, items int, version int64) {
	CatalogItems.WithLabelValues(kind).Set(float64(items))
	CatalogSnapshotVersion.WithLabelValues(kind).Set(float64(version))
}
