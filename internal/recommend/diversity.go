// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package recommend

import (
	"math"
	"strings"

	"github.com/jpvasconcelos/affinity/internal/catalog"
)

// applyAttributionPenalty walks cands in their current (descending
// score) order and multiplies the n-th item sharing an attribution by
// penalty^n. The first item from each maker keeps its full score; each
// repeat is compounded down so a prolific studio cannot fill the list.
// Items without attribution are never penalized. Callers re-sort after.
func applyAttributionPenalty(cands []candidate, items []catalog.Item, penalty float64) {
	seen := make(map[string]int)
	for i := range cands {
		maker := strings.ToLower(items[cands[i].idx].Attribution)
		if maker == "" {
			continue
		}
		n := seen[maker]
		if n > 0 {
			cands[i].score *= math.Pow(penalty, float64(n))
		}
		seen[maker] = n + 1
	}
}

// applyArtistPenalties is the music variant: tracks by an artist already
// in the user's selection take a flat selectedFactor cut before the
// per-repeat compounding.
func applyArtistPenalties(cands []candidate, items []catalog.Item, selectedArtists map[string]struct{}, penalty, selectedFactor float64) {
	seen := make(map[string]int)
	for i := range cands {
		artist := strings.ToLower(items[cands[i].idx].Attribution)
		if artist == "" {
			continue
		}
		if _, own := selectedArtists[artist]; own {
			cands[i].score *= selectedFactor
		}
		n := seen[artist]
		if n > 0 {
			cands[i].score *= math.Pow(penalty, float64(n))
		}
		seen[artist] = n + 1
	}
}
