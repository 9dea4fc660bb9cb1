// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package vectorize

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vocabulary maps terms to vector columns with smoothed inverse document
// frequencies. Fit once per catalog snapshot; Transform is read-only and
// safe for concurrent use.
type Vocabulary struct {
	terms map[string]int
	idf   []float64
}

// Tokenize lowercases text and splits it on non-alphanumeric runes,
// dropping single-character tokens and english stop words.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, tok := range fields {
		if len(tok) < 2 {
			continue
		}
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// FitVocabulary builds a vocabulary over docs, keeping at most maxTerms
// terms. When the corpus exceeds the cap, terms are kept by descending
// total corpus frequency, ties broken alphabetically so snapshots built
// from the same catalog are identical.
func FitVocabulary(docs []string, maxTerms int) *Vocabulary {
	docFreq := make(map[string]int)
	totalFreq := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			totalFreq[tok]++
			if _, dup := seen[tok]; !dup {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}

	terms := make([]string, 0, len(totalFreq))
	for term := range totalFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totalFreq[terms[i]] != totalFreq[terms[j]] {
			return totalFreq[terms[i]] > totalFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxTerms > 0 && len(terms) > maxTerms {
		terms = terms[:maxTerms]
	}

	// Columns are assigned in alphabetical order so the layout does not
	// depend on frequency ties.
	sort.Strings(terms)

	v := &Vocabulary{
		terms: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	nDocs := float64(len(docs))
	for col, term := range terms {
		v.terms[term] = col
		// Smoothed IDF: ln((1+n)/(1+df)) + 1 keeps unseen-doc terms finite.
		v.idf[col] = math.Log((1+nDocs)/(1+float64(docFreq[term]))) + 1
	}
	return v
}

// Size returns the number of terms, which is the vector dimensionality.
func (v *Vocabulary) Size() int { return len(v.idf) }

// Transform converts doc into an L2-normalized TF-IDF vector over the
// fitted vocabulary. Out-of-vocabulary terms are ignored; a doc with no
// known terms maps to the zero vector.
func (v *Vocabulary) Transform(doc string) Sparse {
	counts := make(map[int]float64)
	for _, tok := range Tokenize(doc) {
		if col, ok := v.terms[tok]; ok {
			counts[col]++
		}
	}
	if len(counts) == 0 {
		return Sparse{}
	}

	for col, tf := range counts {
		counts[col] = tf * v.idf[col]
	}
	vec := FromMap(counts)

	norm := vec.Norm()
	if norm == 0 {
		return Sparse{}
	}
	return vec.Scale(1 / norm)
}
