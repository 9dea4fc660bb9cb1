// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package catalog

import "strings"

// AudioFeatureCount is the number of scalar audio features carried by
// music items: acousticness, danceability, energy, instrumentalness,
// liveness, loudness, speechiness, tempo, valence.
const AudioFeatureCount = 9

// Item is one catalog entry of any media kind. IDs are strings because
// the three upstream catalogs disagree: game and movie ids arrive
// numeric, track ids are opaque base-62 strings.
type Item struct {
	ID   string
	Name string
	Kind MediaKind

	// Genres holds display-cased genre names.
	Genres []string

	// Categories holds gameplay/feature tags. Games only.
	Categories []string

	// Keywords holds plot keywords. Movies only.
	Keywords []string

	// Description is the store blurb or plot overview.
	Description string

	// Attribution names whoever made the item: developer, artist or
	// studio. Diversity penalties group by this field.
	Attribution string

	// Quality is the catalog's quality signal: games carry a 0-1
	// aggregate review score, movies a 0-10 vote average. Unused for
	// music.
	Quality float64

	// Popularity is an unbounded popularity signal (player count,
	// TMDB popularity, 0-100 track popularity).
	Popularity float64

	Year int

	// AudioFeatures are min-max scaled to [0,1] at snapshot build.
	// Music only; nil otherwise.
	AudioFeatures []float64

	// ImageURL and PreviewURL are pass-through display fields.
	ImageURL   string
	PreviewURL string
}

// HasGenre reports whether the item carries genre, matching
// case-insensitively on an exact name.
func (it *Item) HasGenre(genre string) bool {
	for _, g := range it.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}
