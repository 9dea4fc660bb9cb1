// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jpvasconcelos/affinity/internal/catalog"
)

// Search result caps per kind, matching what the clients render.
var searchLimits = map[catalog.MediaKind]int{
	catalog.KindGame:  30,
	catalog.KindMovie: 20,
	catalog.KindTrack: 50,
}

const discoverCount = 24

// Genres returns the catalog's genre vocabulary.
func (e *Engine) Genres(kind catalog.MediaKind) ([]string, error) {
	snap, ok := e.catalogs.Snapshot(kind)
	if !ok {
		return nil, fmt.Errorf("%w: no %s snapshot loaded", ErrCatalogUnavailable, kind)
	}
	return snap.Genres, nil
}

// Search matches query case-insensitively against item names (and
// attributions, so artist search works), ranked by popularity.
func (e *Engine) Search(ctx context.Context, kind catalog.MediaKind, query string) ([]ItemSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrInvalidInput)
	}

	snap, ok := e.catalogs.Snapshot(kind)
	if !ok {
		return nil, fmt.Errorf("%w: no %s snapshot loaded", ErrCatalogUnavailable, kind)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search cancelled: %w", err)
	}

	needle := strings.ToLower(query)
	var matches []int
	for i := range snap.Items {
		item := &snap.Items[i]
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Attribution), needle) {
			matches = append(matches, i)
		}
	}

	sort.Slice(matches, func(a, b int) bool {
		pa, pb := snap.Items[matches[a]].Popularity, snap.Items[matches[b]].Popularity
		if pa != pb {
			return pa > pb
		}
		return snap.Items[matches[a]].ID < snap.Items[matches[b]].ID
	})

	if limit := searchLimits[kind]; len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]ItemSummary, len(matches))
	for i, idx := range matches {
		results[i] = summarize(&snap.Items[idx])
	}
	return results, nil
}

// Discover returns a starter list for users with nothing selected yet:
// a popular head the user will recognize, mixed with a seeded random
// sample of the well-regarded tail so the page is not identical for
// everyone forever.
func (e *Engine) Discover(ctx context.Context, kind catalog.MediaKind) ([]ItemSummary, error) {
	snap, ok := e.catalogs.Snapshot(kind)
	if !ok {
		return nil, fmt.Errorf("%w: no %s snapshot loaded", ErrCatalogUnavailable, kind)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover cancelled: %w", err)
	}

	byPopularity := make([]int, snap.Len())
	for i := range byPopularity {
		byPopularity[i] = i
	}
	sort.Slice(byPopularity, func(a, b int) bool {
		pa, pb := snap.Items[byPopularity[a]].Popularity, snap.Items[byPopularity[b]].Popularity
		if pa != pb {
			return pa > pb
		}
		return snap.Items[byPopularity[a]].ID < snap.Items[byPopularity[b]].ID
	})

	head := discoverCount / 2
	if head > len(byPopularity) {
		head = len(byPopularity)
	}
	picks := append([]int(nil), byPopularity[:head]...)

	// Sample the rest of the top quartile for variety.
	tail := byPopularity[head:]
	quartile := len(byPopularity) / 4
	if quartile > len(tail) {
		quartile = len(tail)
	}
	if quartile > 0 {
		for _, p := range e.randPerm(quartile) {
			if len(picks) == discoverCount {
				break
			}
			picks = append(picks, tail[p])
		}
	}

	results := make([]ItemSummary, len(picks))
	for i, idx := range picks {
		results[i] = summarize(&snap.Items[idx])
	}
	return results, nil
}

// SnapshotInfo describes one loaded catalog for the status endpoint.
type SnapshotInfo struct {
	Kind    string    `json:"kind"`
	Items   int       `json:"items"`
	Genres  int       `json:"genres"`
	Version int64     `json:"version"`
	BuiltAt time.Time `json:"built_at"`
}

// Snapshots lists the loaded catalogs.
func (e *Engine) Snapshots() []SnapshotInfo {
	var infos []SnapshotInfo
	for _, kind := range catalog.Kinds() {
		snap, ok := e.catalogs.Snapshot(kind)
		if !ok {
			continue
		}
		infos = append(infos, SnapshotInfo{
			Kind:    kind.String(),
			Items:   snap.Len(),
			Genres:  len(snap.Genres),
			Version: snap.Version,
			BuiltAt: snap.BuiltAt,
		})
	}
	return infos
}
