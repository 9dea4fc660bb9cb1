// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package recommend

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jpvasconcelos/affinity/internal/catalog"
	"github.com/jpvasconcelos/affinity/internal/metrics"
)

// Engine computes recommendations over catalog snapshots. Safe for
// concurrent use; all per-request state is local.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	catalogs SnapshotProvider

	cacheMu sync.RWMutex
	cache   map[string]cacheEntry

	// rng feeds display-score jitter and discovery sampling. Guarded by
	// rngMu since rand.Rand is not concurrency-safe.
	rngMu sync.Mutex
	rng   *rand.Rand

	requests    atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
	errorCount  atomic.Int64
}

type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// NewEngine validates cfg and builds an engine over the given snapshots.
func NewEngine(cfg *Config, catalogs SnapshotProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if catalogs == nil {
		return nil, fmt.Errorf("snapshot provider is required")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		catalogs: catalogs,
		cache:    make(map[string]cacheEntry),
		rng:      rand.New(rand.NewSource(seed)),
	}, nil
}

// Recommend runs the full pipeline for req. The bool reports whether
// the response came from the cache.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, bool, error) {
	e.requests.Add(1)
	start := time.Now()
	kind := req.Kind.String()

	resp, cached, err := e.recommend(ctx, req)
	duration := time.Since(start)

	switch {
	case err != nil:
		e.errorCount.Add(1)
		metrics.RecordRecommendation(kind, "error", duration)
	case cached:
		metrics.RecordRecommendation(kind, "cached", duration)
	default:
		metrics.RecordRecommendation(kind, "success", duration)
		e.logger.Debug().
			Str("kind", kind).
			Int("selected", len(req.SelectedIDs)).
			Str("genre", req.Genre).
			Dur("duration", duration).
			Msg("recommendation computed")
	}
	return resp, cached, err
}

func (e *Engine) recommend(ctx context.Context, req Request) (*Response, bool, error) {
	if len(req.SelectedIDs) == 0 {
		return nil, false, fmt.Errorf("%w: no ids selected", ErrInvalidInput)
	}

	snap, ok := e.catalogs.Snapshot(req.Kind)
	if !ok {
		return nil, false, fmt.Errorf("%w: no %s snapshot loaded", ErrCatalogUnavailable, req.Kind)
	}

	key := cacheKey(req, snap.Version)
	if resp, hit := e.cacheGet(key); hit {
		e.cacheHits.Add(1)
		metrics.RecordCacheHit("recommend")
		return resp, true, nil
	}
	e.cacheMisses.Add(1)
	metrics.RecordCacheMiss("recommend")

	selected, err := e.resolveSelection(snap, req.SelectedIDs)
	if err != nil {
		return nil, false, err
	}

	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("recommendation cancelled: %w", err)
	}

	var resp *Response
	switch req.Kind {
	case catalog.KindGame:
		resp = e.recommendGames(snap, selected, req.Genre)
	case catalog.KindMovie:
		resp = e.recommendMovies(snap, selected, req.Genre)
	case catalog.KindTrack:
		resp = e.recommendMusic(snap, selected, req.Genre)
	default:
		return nil, false, fmt.Errorf("%w: unsupported media kind %v", ErrInvalidInput, req.Kind)
	}

	resp.Profile = e.buildProfile(snap, selected, req.Genre)
	e.cachePut(key, resp)
	return resp, false, nil
}

// resolveSelection maps ids to snapshot rows. Unknown ids are logged and
// skipped; a selection with no resolvable id is invalid.
func (e *Engine) resolveSelection(snap *catalog.Snapshot, ids []string) ([]int, error) {
	selected := make([]int, 0, len(ids))
	for _, id := range ids {
		idx, ok := snap.Lookup(id)
		if !ok {
			e.logger.Warn().
				Str("kind", snap.Kind.String()).
				Str("id", id).
				Msg("selected id not in catalog, skipping")
			continue
		}
		selected = append(selected, idx)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: none of the %d selected ids exist in the %s catalog",
			ErrInvalidInput, len(ids), snap.Kind)
	}
	return selected, nil
}

func (e *Engine) buildProfile(snap *catalog.Snapshot, selected []int, genre string) Profile {
	summaries := make([]ItemSummary, len(selected))
	for i, idx := range selected {
		summaries[i] = summarize(&snap.Items[idx])
	}
	return Profile{
		SelectedItems: summaries,
		DominantGenre: dominantGenre(snap.Items, selected),
		SelectedGenre: genre,
	}
}

// Status reports the engine's lifetime counters.
func (e *Engine) Status() Metrics {
	return Metrics{
		Requests:    e.requests.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		Errors:      e.errorCount.Load(),
	}
}

// cacheKey fingerprints a request. The selection is order-insensitive;
// the snapshot version is mixed in so a swap invalidates every entry.
func cacheKey(req Request, version int64) string {
	ids := make([]string, len(req.SelectedIDs))
	copy(ids, req.SelectedIDs)
	sort.Strings(ids)

	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%s|", req.Kind, version, req.Genre)
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%s:%x", req.Kind, h.Sum64())
}

func (e *Engine) cacheGet(key string) (*Response, bool) {
	if e.config.CacheTTL <= 0 || e.config.CacheMaxEntries <= 0 {
		return nil, false
	}
	e.cacheMu.RLock()
	entry, ok := e.cache[key]
	e.cacheMu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.response, true
}

func (e *Engine) cachePut(key string, resp *Response) {
	if e.config.CacheTTL <= 0 || e.config.CacheMaxEntries <= 0 {
		return
	}
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	if len(e.cache) >= e.config.CacheMaxEntries {
		now := time.Now()
		for k, entry := range e.cache {
			if now.After(entry.expiresAt) {
				delete(e.cache, k)
			}
		}
		// Still full after dropping expired entries: evict one arbitrary
		// entry rather than grow without bound.
		if len(e.cache) >= e.config.CacheMaxEntries {
			for k := range e.cache {
				delete(e.cache, k)
				break
			}
		}
	}

	e.cache[key] = cacheEntry{response: resp, expiresAt: time.Now().Add(e.config.CacheTTL)}
}

// randFloat returns a uniform float64 in [lo, hi) from the engine RNG.
func (e *Engine) randFloat(lo, hi float64) float64 {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return lo + e.rng.Float64()*(hi-lo)
}

// randPerm returns a seeded permutation of n indices.
func (e *Engine) randPerm(n int) []int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Perm(n)
}
