// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/games/genres", "200"))
	RecordAPIRequest("GET", "/api/v1/games/genres", "200", 5*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/games/genres", "200"))

	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("active gauge = %v, want %v", got, base+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("active gauge = %v, want %v", got, base)
	}
}

func TestRecordRecommendationOutcomes(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("movies", "success"))
	RecordRecommendation("movies", "success", 40*time.Millisecond)
	RecordRecommendation("movies", "error", 2*time.Millisecond)

	if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("movies", "success")); got != before+1 {
		t.Errorf("success counter = %v, want %v", got, before+1)
	}
}

func TestCacheCounters(t *testing.T) {
	hits := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("engine", "hit"))
	misses := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("engine", "miss"))

	RecordCacheHit("engine")
	RecordCacheMiss("engine")

	if got := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("engine", "hit")); got != hits+1 {
		t.Errorf("hit counter = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("engine", "miss")); got != misses+1 {
		t.Errorf("miss counter = %v, want %v", got, misses+1)
	}
}

func TestSetCatalogSnapshot(t *testing.T) {
	SetCatalogSnapshot("music", 1234, 7)

	if got := testutil.ToFloat64(CatalogItems.WithLabelValues("music")); got != 1234 {
		t.Errorf("catalog items gauge = %v, want 1234", got)
	}
	if got := testutil.ToFloat64(CatalogSnapshotVersion.WithLabelValues("music")); got != 7 {
		t.Errorf("snapshot version gauge = %v, want 7", got)
	}
}
