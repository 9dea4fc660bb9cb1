// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package recommend

import (
	"sort"
	"strings"

	"github.com/jpvasconcelos/affinity/internal/catalog"
)

// SnapshotProvider hands the engine the active catalog snapshot for a
// media kind. Implemented by catalog.Store; tests supply fixtures.
type SnapshotProvider interface {
	Snapshot(kind catalog.MediaKind) (*catalog.Snapshot, bool)
}

// Request asks for recommendations over one media kind.
type Request struct {
	// Kind selects the catalog.
	Kind catalog.MediaKind

	// SelectedIDs are the user's picks. At least one resolvable id is
	// required; unknown ids are skipped with a warning.
	SelectedIDs []string

	// Genre optionally biases results toward one genre and unlocks the
	// genre-specific categories.
	Genre string
}

// ItemSummary is the wire representation of a catalog item.
type ItemSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Genres      []string `json:"genres,omitempty"`
	Attribution string   `json:"attribution,omitempty"`
	Year        int      `json:"year,omitempty"`
	Quality     float64  `json:"quality,omitempty"`
	Popularity  float64  `json:"popularity,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	PreviewURL  string   `json:"preview_url,omitempty"`
}

// ScoredItem is an ItemSummary plus its display score.
type ScoredItem struct {
	ItemSummary
	// SimilarityScore is the user-facing 70-99 match percentage, not
	// the raw cosine.
	SimilarityScore int `json:"similarity_score"`
}

// Profile summarizes the taste profile a response was computed from.
type Profile struct {
	SelectedItems []ItemSummary `json:"selected_items"`

	// DominantGenre is the most frequent genre across the selection,
	// "Varied" when the selection carries no genres.
	DominantGenre string `json:"dominant_genre"`

	// SelectedGenre echoes the requested genre filter, if any.
	SelectedGenre string `json:"selected_genre,omitempty"`
}

// Response is a full recommendation result. Categories preserve their
// assembly order through CategoryOrder; empty categories are omitted.
type Response struct {
	Recommendations map[string][]ScoredItem `json:"recommendations"`
	CategoryOrder   []string                `json:"category_order"`
	Profile         Profile                 `json:"profile"`
}

// Metrics are the engine's lifetime counters.
type Metrics struct {
	Requests    int64 `json:"requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	Errors      int64 `json:"errors"`
}

// candidate is one catalog row moving through the scoring pipeline.
type candidate struct {
	idx   int
	sim   float64
	score float64
}

// sortCandidates orders by descending score, breaking ties by ascending
// catalog id so equal-scored runs are stable across processes.
func sortCandidates(cands []candidate, items []catalog.Item) {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return items[cands[i].idx].ID < items[cands[j].idx].ID
	})
}

// summarize flattens a catalog item for the wire.
func summarize(item *catalog.Item) ItemSummary {
	return ItemSummary{
		ID:          item.ID,
		Name:        item.Name,
		Genres:      item.Genres,
		Attribution: item.Attribution,
		Year:        item.Year,
		Quality:     item.Quality,
		Popularity:  item.Popularity,
		ImageURL:    item.ImageURL,
		PreviewURL:  item.PreviewURL,
	}
}

// dominantGenre returns the modal genre over the selected items, ties
// broken alphabetically, or "Varied" when no genres are present.
func dominantGenre(items []catalog.Item, selected []int) string {
	counts := make(map[string]int)
	display := make(map[string]string)
	for _, idx := range selected {
		for _, g := range items[idx].Genres {
			key := strings.ToLower(g)
			counts[key]++
			if _, ok := display[key]; !ok {
				display[key] = g
			}
		}
	}
	if len(counts) == 0 {
		return "Varied"
	}

	best, bestCount := "", -1
	for key, n := range counts {
		if n > bestCount || (n == bestCount && key < best) {
			best, bestCount = key, n
		}
	}
	return display[best]
}
