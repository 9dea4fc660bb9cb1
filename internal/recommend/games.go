// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package recommend

import (
	"github.com/jpvasconcelos/affinity/internal/catalog"
	"github.com/jpvasconcelos/affinity/internal/recommend/vectorize"
)

// recommendGames scores the game catalog against the selection profile.
//
// The hybrid is sim² x (quality x 0.5 + 0.5): squaring widens the gap
// between close and loose matches, and the quality term scales the
// result between 50% and 100% so a mediocre clone cannot outrank a
// well-reviewed one. A requested genre boosts matching items by 20%.
func (e *Engine) recommendGames(snap *catalog.Snapshot, selected []int, genre string) *Response {
	profile := selectionProfile(snap.Matrix, selected)
	sims := snap.Matrix.CosineAll(profile)
	selectedSet := indexSet(selected)

	cands := make([]candidate, 0, snap.Len())
	for i := range snap.Items {
		if _, own := selectedSet[i]; own {
			continue
		}
		item := &snap.Items[i]
		score := sims[i] * sims[i] * (item.Quality*0.5 + 0.5)
		if genre != "" && item.HasGenre(genre) {
			score *= e.config.GenreBoost
		}
		cands = append(cands, candidate{idx: i, sim: sims[i], score: score})
	}

	sortCandidates(cands, snap.Items)
	applyAttributionPenalty(cands, snap.Items, e.config.AttributionPenalty)
	sortCandidates(cands, snap.Items)

	// Display scores are rescaled over the whole candidate list, so an
	// item shows the same percentage whichever category it lands in.
	displays := rescaledScores(cands)
	displayByIdx := make(map[int]int, len(cands))
	for i, cand := range cands {
		displayByIdx[cand.idx] = displays[i]
	}

	used := seedUsed(snap.Items, selected)
	resp := newResponse()

	main := takeFiltered(cands, snap.Items, e.config.MainCount, used, nil)
	addCategory(resp, "main", e.gameItems(main, snap.Items, displayByIdx))

	gems := takeFiltered(cands, snap.Items, e.config.CategoryCount, used, func(it *catalog.Item) bool {
		return it.Quality < e.config.HiddenGemQuality
	})
	addCategory(resp, "hidden_gems", e.gameItems(gems, snap.Items, displayByIdx))

	if genre != "" {
		favs := takeFiltered(cands, snap.Items, e.config.CategoryCount, used, func(it *catalog.Item) bool {
			return it.HasGenre(genre)
		})
		addCategory(resp, "genre_favorites", e.gameItems(favs, snap.Items, displayByIdx))
	}

	return resp
}

func (e *Engine) gameItems(cands []candidate, items []catalog.Item, displayByIdx map[int]int) []ScoredItem {
	displays := make([]int, len(cands))
	for i, cand := range cands {
		displays[i] = displayByIdx[cand.idx]
	}
	return scoredItems(cands, items, displays)
}

// selectionProfile averages the selected rows into the taste vector.
func selectionProfile(matrix *vectorize.Matrix, selected []int) vectorize.Sparse {
	rows := make([]vectorize.Sparse, len(selected))
	for i, idx := range selected {
		rows[i] = matrix.Row(idx)
	}
	return vectorize.Mean(rows)
}

func indexSet(selected []int) map[int]struct{} {
	set := make(map[int]struct{}, len(selected))
	for _, idx := range selected {
		set[idx] = struct{}{}
	}
	return set
}
