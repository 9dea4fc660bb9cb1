// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package recommend

import (
	"github.com/jpvasconcelos/affinity/internal/catalog"
	"github.com/jpvasconcelos/affinity/internal/recommend/textsim"
)

// takeFiltered collects up to count candidates passing filter, skipping
// ids already used by earlier categories and marking everything taken.
// The shared used set is what keeps categories mutually exclusive: it
// starts seeded with the user's selection, so selected items can never
// be recommended back.
func takeFiltered(cands []candidate, items []catalog.Item, count int, used map[string]struct{}, filter func(*catalog.Item) bool) []candidate {
	taken := make([]candidate, 0, count)
	for _, cand := range cands {
		if len(taken) == count {
			break
		}
		item := &items[cand.idx]
		if _, dup := used[item.ID]; dup {
			continue
		}
		if filter != nil && !filter(item) {
			continue
		}
		used[item.ID] = struct{}{}
		taken = append(taken, cand)
	}
	return taken
}

// takeNonRedundant is takeFiltered plus a near-duplicate title check
// against the candidates already accepted into this category. The scan
// is bounded at 3x the requested count so a pathological catalog of
// clones cannot turn assembly quadratic.
func takeNonRedundant(cands []candidate, items []catalog.Item, count int, used map[string]struct{}, threshold int, filter func(*catalog.Item) bool) []candidate {
	taken := make([]candidate, 0, count)
	names := make([]string, 0, count)
	examined := 0
	for _, cand := range cands {
		if len(taken) == count || examined >= 3*count {
			break
		}
		item := &items[cand.idx]
		if _, dup := used[item.ID]; dup {
			continue
		}
		if filter != nil && !filter(item) {
			continue
		}
		examined++

		redundant := false
		for _, prior := range names {
			if textsim.TokenSortRatio(item.Name, prior) > threshold {
				redundant = true
				break
			}
		}
		if redundant {
			continue
		}

		used[item.ID] = struct{}{}
		taken = append(taken, cand)
		names = append(names, item.Name)
	}
	return taken
}

// scoredItems joins candidates with their display scores into wire form.
func scoredItems(cands []candidate, items []catalog.Item, displays []int) []ScoredItem {
	out := make([]ScoredItem, len(cands))
	for i, cand := range cands {
		out[i] = ScoredItem{
			ItemSummary:     summarize(&items[cand.idx]),
			SimilarityScore: displays[i],
		}
	}
	return out
}

// addCategory appends a non-empty category to the response.
func addCategory(resp *Response, name string, items []ScoredItem) {
	if len(items) == 0 {
		return
	}
	resp.Recommendations[name] = items
	resp.CategoryOrder = append(resp.CategoryOrder, name)
}

func newResponse() *Response {
	return &Response{Recommendations: make(map[string][]ScoredItem)}
}

// seedUsed returns the cross-category de-dup set primed with the
// selected items' ids.
func seedUsed(items []catalog.Item, selected []int) map[string]struct{} {
	used := make(map[string]struct{}, len(selected))
	for _, idx := range selected {
		used[items[idx].ID] = struct{}{}
	}
	return used
}
