// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/jpvasconcelos/affinity/internal/catalog"
)

// recommendMusic runs per-track kNN instead of profile averaging: a
// playlist mixing metal and ambient should pull neighbors of each, not
// neighbors of their meaningless midpoint. Neighbor lists are unioned
// keeping each track's best similarity, then amplified to the 4th power
// so only genuinely close tracks keep weight.
func (e *Engine) recommendMusic(snap *catalog.Snapshot, selected []int, genre string) *Response {
	selectedSet := indexSet(selected)

	best := make(map[int]float64)
	for _, idx := range selected {
		sims := snap.Matrix.CosineAll(snap.Matrix.Row(idx))
		for _, n := range topNeighbors(sims, selectedSet, e.config.NeighborCount) {
			if sims[n] > best[n] {
				best[n] = sims[n]
			}
		}
	}

	selectedArtists := make(map[string]struct{}, len(selected))
	for _, idx := range selected {
		if a := strings.ToLower(snap.Items[idx].Attribution); a != "" {
			selectedArtists[a] = struct{}{}
		}
	}

	cands := make([]candidate, 0, len(best))
	for idx, sim := range best {
		cands = append(cands, candidate{idx: idx, sim: sim, score: math.Pow(sim, 4)})
	}
	sortCandidates(cands, snap.Items)
	applyArtistPenalties(cands, snap.Items, selectedArtists, e.config.AttributionPenalty, e.config.SelectedArtistFactor)
	sortCandidates(cands, snap.Items)

	if len(cands) > e.config.PoolSize {
		cands = cands[:e.config.PoolSize]
	}

	used := seedUsed(snap.Items, selected)
	resp := newResponse()

	main := takeFiltered(cands, snap.Items, e.config.MainCount, used, nil)
	addCategory(resp, "main", scoredItems(main, snap.Items, e.topHeavyScores(main)))

	if genre != "" {
		exploring := takeFiltered(cands, snap.Items, e.config.CategoryCount, used, func(it *catalog.Item) bool {
			return it.HasGenre(genre)
		})
		addCategory(resp, "exploring_"+categorySlug(genre), scoredItems(exploring, snap.Items, e.topHeavyScores(exploring)))
	}

	if dominant := dominantGenre(snap.Items, selected); dominant != "Varied" && !strings.EqualFold(dominant, genre) {
		based := takeFiltered(cands, snap.Items, e.config.CategoryCount, used, func(it *catalog.Item) bool {
			return it.HasGenre(dominant)
		})
		addCategory(resp, "based_on_"+categorySlug(dominant), scoredItems(based, snap.Items, e.topHeavyScores(based)))
	}

	gems := takeFiltered(cands, snap.Items, e.config.CategoryCount, used, func(it *catalog.Item) bool {
		return it.Popularity < e.config.HiddenGemPopularity
	})
	addCategory(resp, "hidden_gems", scoredItems(gems, snap.Items, e.topHeavyScores(gems)))

	return resp
}

// topNeighbors returns the k highest-similarity indices, excluding the
// selection itself and zero-similarity rows.
func topNeighbors(sims []float64, exclude map[int]struct{}, k int) []int {
	idxs := make([]int, 0, len(sims))
	for i, sim := range sims {
		if sim <= 0 {
			continue
		}
		if _, own := exclude[i]; own {
			continue
		}
		idxs = append(idxs, i)
	}
	sort.Slice(idxs, func(a, b int) bool {
		if sims[idxs[a]] != sims[idxs[b]] {
			return sims[idxs[a]] > sims[idxs[b]]
		}
		return idxs[a] < idxs[b]
	})
	if len(idxs) > k {
		idxs = idxs[:k]
	}
	return idxs
}

// categorySlug lowercases a genre for use in a category name:
// "Hip-Hop" -> "hip_hop".
func categorySlug(genre string) string {
	slug := strings.ToLower(genre)
	slug = strings.ReplaceAll(slug, " ", "_")
	slug = strings.ReplaceAll(slug, "-", "_")
	return slug
}
