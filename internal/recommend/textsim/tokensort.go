// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

// Package textsim provides deterministic string similarity for redundancy
// filtering. TokenSortRatio normalizes word order before comparing, so
// retitled releases ("Mission: Impossible" vs "Mission Impossible") score
// as near-duplicates.
package textsim

import (
	"sort"
	"strings"
	"unicode"
)

// TokenSortRatio returns a 0-100 similarity between a and b. Both strings
// are lowercased, stripped of punctuation and re-joined with their words
// sorted, then compared by weighted edit distance (substitutions cost 2).
// The function is symmetric and returns 100 for equal token sets.
func TokenSortRatio(a, b string) int {
	na, nb := normalize(a), normalize(b)
	if na == "" && nb == "" {
		return 100
	}
	return ratio(na, nb)
}

func normalize(s string) string {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// ratio is the classic Levenshtein ratio: (lensum - dist) / lensum * 100,
// where dist counts insertions and deletions as 1 and substitutions as 2.
func ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	lensum := len(ra) + len(rb)
	if lensum == 0 {
		return 100
	}
	dist := weightedDistance(ra, rb)
	return int(float64(lensum-dist)/float64(lensum)*100 + 0.5)
}

func weightedDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			subCost := 2
			if a[i-1] == b[j-1] {
				subCost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+subCost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
