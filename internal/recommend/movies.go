// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package recommend

import (
	"math"

	"github.com/jpvasconcelos/affinity/internal/catalog"
)

// recommendMovies blends rescaled text similarity with the vote average:
// hybrid = 0.70 x min(sim/0.35 x 95, 99) + 0.30 x (vote x 10). Sequels
// and remakes are collapsed by the near-duplicate title filter during
// category assembly.
func (e *Engine) recommendMovies(snap *catalog.Snapshot, selected []int, genre string) *Response {
	profile := selectionProfile(snap.Matrix, selected)
	sims := snap.Matrix.CosineAll(profile)
	selectedSet := indexSet(selected)

	cands := make([]candidate, 0, snap.Len())
	for i := range snap.Items {
		if _, own := selectedSet[i]; own {
			continue
		}
		item := &snap.Items[i]
		cands = append(cands, candidate{idx: i, sim: sims[i], score: e.movieHybridScore(sims[i], item.Quality)})
	}
	sortCandidates(cands, snap.Items)

	used := seedUsed(snap.Items, selected)
	resp := newResponse()
	threshold := e.config.RedundancyThreshold

	main := takeNonRedundant(cands, snap.Items, e.config.MainCount, used, threshold, nil)
	addCategory(resp, "main", scoredItems(main, snap.Items, e.topHeavyScores(main)))

	if genre != "" {
		favs := e.movieGenreFavorites(snap, cands, genre, used)
		addCategory(resp, "genre_favorites", scoredItems(favs, snap.Items, e.topHeavyScores(favs)))
	}

	blockbusters := e.movieBlockbusters(snap, selectedSet, used)
	addCategory(resp, "blockbusters", scoredItems(blockbusters, snap.Items, e.topHeavyScores(blockbusters)))

	cult := takeNonRedundant(cands, snap.Items, e.config.CategoryCount, used, threshold, func(it *catalog.Item) bool {
		return it.Year != 0 && it.Year < e.config.CultClassicYear && it.Quality > e.config.CultClassicQuality
	})
	addCategory(resp, "cult_classics", scoredItems(cult, snap.Items, e.topHeavyScores(cult)))

	gems := takeNonRedundant(cands, snap.Items, e.config.CategoryCount, used, threshold, func(it *catalog.Item) bool {
		return it.Quality > e.config.MovieHiddenGemQuality &&
			it.Popularity > snap.PopP30 && it.Popularity < snap.PopP70
	})
	addCategory(resp, "hidden_gems", scoredItems(gems, snap.Items, e.topHeavyScores(gems)))

	return resp
}

// movieHybridScore blends the rescaled similarity with the vote
// average. The similarity component saturates at 99 once raw similarity
// reaches the ceiling, so two very close matches cannot leapfrog each
// other on similarity alone.
func (e *Engine) movieHybridScore(sim, quality float64) float64 {
	simScore := math.Min(sim/e.config.SimilarityCeiling*95, 99)
	return e.config.SimilarityWeight*simScore + e.config.QualityWeight*quality*10
}

// movieGenreFavorites re-scores the genre's films on quality and
// popularity instead of similarity: the category answers "what is good
// in this genre", not "what is close to the selection".
func (e *Engine) movieGenreFavorites(snap *catalog.Snapshot, cands []candidate, genre string, used map[string]struct{}) []candidate {
	maxPop := 0.0
	for _, cand := range cands {
		item := &snap.Items[cand.idx]
		if item.HasGenre(genre) && item.Popularity > maxPop {
			maxPop = item.Popularity
		}
	}
	if maxPop == 0 {
		maxPop = 1
	}

	genreCands := make([]candidate, 0, len(cands))
	for _, cand := range cands {
		item := &snap.Items[cand.idx]
		if !item.HasGenre(genre) {
			continue
		}
		score := 0.8*(item.Quality*10) + 0.2*(item.Popularity/maxPop*100)
		genreCands = append(genreCands, candidate{idx: cand.idx, sim: cand.sim, score: score})
	}
	sortCandidates(genreCands, snap.Items)

	return takeNonRedundant(genreCands, snap.Items, e.config.CategoryCount, used, e.config.RedundancyThreshold, nil)
}

// movieBlockbusters picks the most popular films above the catalog's
// 95th popularity percentile, ordered by popularity.
func (e *Engine) movieBlockbusters(snap *catalog.Snapshot, selectedSet map[int]struct{}, used map[string]struct{}) []candidate {
	cands := make([]candidate, 0, 64)
	for i := range snap.Items {
		if _, own := selectedSet[i]; own {
			continue
		}
		if snap.Items[i].Popularity > snap.PopP95 {
			cands = append(cands, candidate{idx: i, score: snap.Items[i].Popularity})
		}
	}
	sortCandidates(cands, snap.Items)

	return takeNonRedundant(cands, snap.Items, e.config.CategoryCount, used, e.config.RedundancyThreshold, nil)
}
