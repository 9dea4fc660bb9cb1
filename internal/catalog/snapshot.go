// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jpvasconcelos/affinity/internal/recommend/vectorize"
)

// Feature block weights. Genre overlap dominates game similarity, with
// gameplay tags close behind; free text and developer identity contribute
// but cannot overwhelm the categorical signal. Music balances what a
// track is (genre) against how it sounds (audio features).
const (
	gameGenreWeight       = 4.0
	gameCategoryWeight    = 3.0
	gameDescriptionWeight = 1.0
	gameDeveloperWeight   = 1.0

	movieGenreRepeat   = 2
	movieKeywordRepeat = 3

	musicGenreWeight = 0.6
	musicAudioWeight = 0.4
)

// BuildOptions tunes snapshot construction.
type BuildOptions struct {
	// MaxVocabulary caps the TF-IDF vocabulary size.
	MaxVocabulary int

	// Version tags the snapshot; the Store increments it per swap.
	Version int64
}

// Snapshot is one immutable, fully vectorized catalog. All fields are
// read-only after Build; sharing a snapshot across goroutines needs no
// locking.
type Snapshot struct {
	Kind    MediaKind
	Items   []Item
	Matrix  *vectorize.Matrix
	Genres  []string
	Version int64
	BuiltAt time.Time

	// Popularity percentiles, precomputed for movie categorization.
	PopP30, PopP70, PopP95 float64

	index map[string]int
}

// Build vectorizes items into a Snapshot. Duplicate ids are rejected:
// the id is the lookup key and silent last-writer-wins would make
// recommendations depend on file order.
func Build(kind MediaKind, items []Item, opts BuildOptions) (*Snapshot, error) {
	index := make(map[string]int, len(items))
	for i := range items {
		if prev, dup := index[items[i].ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q at rows %d and %d", items[i].ID, prev, i)
		}
		index[items[i].ID] = i
	}

	snap := &Snapshot{
		Kind:    kind,
		Items:   items,
		Genres:  genreVocabulary(items),
		Version: opts.Version,
		BuiltAt: time.Now(),
		index:   index,
	}

	switch kind {
	case KindGame:
		snap.Matrix = buildGameMatrix(items, opts.MaxVocabulary)
	case KindMovie:
		snap.Matrix = buildMovieMatrix(items, opts.MaxVocabulary)
		snap.PopP30 = percentile(popularities(items), 30)
		snap.PopP70 = percentile(popularities(items), 70)
		snap.PopP95 = percentile(popularities(items), 95)
	case KindTrack:
		snap.Matrix = buildMusicMatrix(items, snap.Genres)
	default:
		return nil, fmt.Errorf("cannot build snapshot for kind %v", kind)
	}

	return snap, nil
}

// Lookup returns the row index of id.
func (s *Snapshot) Lookup(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Len returns the number of items.
func (s *Snapshot) Len() int { return len(s.Items) }

// buildGameMatrix fits one vocabulary over four per-item text facets and
// composes each item's vector as a weighted sum of its facet vectors.
// Sharing the vocabulary keeps the facets in the same term space, so a
// genre term and the same word in a description reinforce each other.
func buildGameMatrix(items []Item, maxVocabulary int) *vectorize.Matrix {
	genreDocs := make([]string, len(items))
	categoryDocs := make([]string, len(items))
	descDocs := make([]string, len(items))
	devDocs := make([]string, len(items))

	for i := range items {
		genreDocs[i] = strings.Join(items[i].Genres, " ")
		categoryDocs[i] = strings.Join(items[i].Categories, " ")
		descDocs[i] = items[i].Description
		devDocs[i] = attributionToken(items[i].Attribution)
	}

	corpus := make([]string, 0, 4*len(items))
	corpus = append(corpus, genreDocs...)
	corpus = append(corpus, categoryDocs...)
	corpus = append(corpus, descDocs...)
	corpus = append(corpus, devDocs...)
	vocab := vectorize.FitVocabulary(corpus, maxVocabulary)

	weights := []float64{gameGenreWeight, gameCategoryWeight, gameDescriptionWeight, gameDeveloperWeight}
	rows := make([]vectorize.Sparse, len(items))
	for i := range items {
		rows[i] = vectorize.WeightedSum(weights, []vectorize.Sparse{
			vocab.Transform(genreDocs[i]),
			vocab.Transform(categoryDocs[i]),
			vocab.Transform(descDocs[i]),
			vocab.Transform(devDocs[i]),
		})
	}
	return vectorize.NewMatrix(vocab.Size(), rows)
}

// buildMovieMatrix folds genres and keywords into the overview document
// by term repetition, weighting them without leaving plain TF-IDF.
func buildMovieMatrix(items []Item, maxVocabulary int) *vectorize.Matrix {
	docs := make([]string, len(items))
	for i := range items {
		var b strings.Builder
		b.WriteString(items[i].Description)
		genreText := strings.Join(items[i].Genres, " ")
		for r := 0; r < movieGenreRepeat; r++ {
			b.WriteByte(' ')
			b.WriteString(genreText)
		}
		keywordText := strings.Join(items[i].Keywords, " ")
		for r := 0; r < movieKeywordRepeat; r++ {
			b.WriteByte(' ')
			b.WriteString(keywordText)
		}
		docs[i] = b.String()
	}

	vocab := vectorize.FitVocabulary(docs, maxVocabulary)
	rows := make([]vectorize.Sparse, len(items))
	for i := range items {
		rows[i] = vocab.Transform(docs[i])
	}
	return vectorize.NewMatrix(vocab.Size(), rows)
}

// buildMusicMatrix concatenates a one-hot genre block with the min-max
// scaled audio feature block. Audio features are rescaled across the
// whole catalog so loudness (dB, negative) and tempo (BPM, ~60-200) sit
// in the same [0,1] range as the probabilities.
func buildMusicMatrix(items []Item, genres []string) *vectorize.Matrix {
	genreCol := make(map[string]int, len(genres))
	for i, g := range genres {
		genreCol[strings.ToLower(g)] = i
	}
	audioOffset := len(genres)
	dim := audioOffset + AudioFeatureCount

	mins := make([]float64, AudioFeatureCount)
	maxs := make([]float64, AudioFeatureCount)
	for f := 0; f < AudioFeatureCount; f++ {
		first := true
		for i := range items {
			if len(items[i].AudioFeatures) != AudioFeatureCount {
				continue
			}
			v := items[i].AudioFeatures[f]
			if first || v < mins[f] {
				mins[f] = v
			}
			if first || v > maxs[f] {
				maxs[f] = v
			}
			first = false
		}
	}

	rows := make([]vectorize.Sparse, len(items))
	for i := range items {
		entries := make(map[int]float64)
		for _, g := range items[i].Genres {
			if col, ok := genreCol[strings.ToLower(g)]; ok {
				entries[col] = musicGenreWeight
			}
		}
		if len(items[i].AudioFeatures) == AudioFeatureCount {
			for f, v := range items[i].AudioFeatures {
				scaled := 0.0
				if spread := maxs[f] - mins[f]; spread > 0 {
					scaled = (v - mins[f]) / spread
				}
				entries[audioOffset+f] = scaled * musicAudioWeight
			}
		}
		rows[i] = vectorize.FromMap(entries)
	}
	return vectorize.NewMatrix(dim, rows)
}

// attributionToken squashes a maker name into a single token so
// "Larian Studios" matches itself and nothing else.
func attributionToken(name string) string {
	if name == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// genreVocabulary collects the sorted distinct genre names.
func genreVocabulary(items []Item) []string {
	seen := make(map[string]string)
	for i := range items {
		for _, g := range items[i].Genres {
			key := strings.ToLower(g)
			if _, ok := seen[key]; !ok {
				seen[key] = g
			}
		}
	}
	genres := make([]string, 0, len(seen))
	for _, g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}

func popularities(items []Item) []float64 {
	pops := make([]float64, len(items))
	for i := range items {
		pops[i] = items[i].Popularity
	}
	return pops
}

// percentile computes the p-th percentile with linear interpolation
// between closest ranks. Returns 0 for an empty slice.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(rank)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}
