// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package recommend

import (
	"fmt"
	"time"
)

// Config holds every tunable of the engine. DefaultConfig returns the
// production values; tests shrink counts and fix the seed.
type Config struct {
	// MainCount sizes the main category; CategoryCount the secondary
	// ones (hidden_gems, blockbusters, ...).
	MainCount     int
	CategoryCount int

	// AttributionPenalty is the per-repeat multiplier applied to the
	// n-th item from the same developer or artist: score * penalty^n.
	AttributionPenalty float64

	// SelectedArtistFactor is a flat multiplier for tracks whose artist
	// already appears in the user's selection. The user knows that
	// artist; surface someone new.
	SelectedArtistFactor float64

	// GenreBoost multiplies game scores on a requested-genre match.
	GenreBoost float64

	// HiddenGemQuality is the quality ceiling for game hidden gems.
	HiddenGemQuality float64

	// SimilarityCeiling rescales raw movie cosine: sim/ceiling*95,
	// capped at 99. Text-only cosine rarely clears 0.35 for genuinely
	// related films, so 0.35 maps to "near-perfect match".
	SimilarityCeiling float64

	// SimilarityWeight and QualityWeight blend the movie hybrid score.
	SimilarityWeight float64
	QualityWeight    float64

	// RedundancyThreshold is the token-sort-ratio above which two movie
	// titles count as the same film.
	RedundancyThreshold int

	// NeighborCount is the per-selected-track k for music kNN.
	NeighborCount int

	// PoolSize bounds the music candidate pool after penalties.
	PoolSize int

	// HiddenGemPopularity is the popularity ceiling for music hidden
	// gems; MovieHiddenGemQuality the vote floor for movie ones.
	HiddenGemPopularity   float64
	MovieHiddenGemQuality float64

	// CultClassicYear / CultClassicQuality gate the cult_classics
	// movie category.
	CultClassicYear    int
	CultClassicQuality float64

	// CacheTTL and CacheMaxEntries control the response cache. A zero
	// TTL or zero max disables it.
	CacheTTL        time.Duration
	CacheMaxEntries int

	// Seed fixes the display-score RNG. Zero seeds from the clock.
	Seed int64
}

// DefaultConfig returns the standard engine tuning.
func DefaultConfig() *Config {
	return &Config{
		MainCount:             12,
		CategoryCount:         6,
		AttributionPenalty:    0.85,
		SelectedArtistFactor:  0.5,
		GenreBoost:            1.2,
		HiddenGemQuality:      0.88,
		SimilarityCeiling:     0.35,
		SimilarityWeight:      0.70,
		QualityWeight:         0.30,
		RedundancyThreshold:   90,
		NeighborCount:         20,
		PoolSize:              100,
		HiddenGemPopularity:   50,
		MovieHiddenGemQuality: 7.5,
		CultClassicYear:       2005,
		CultClassicQuality:    7.0,
		CacheTTL:              5 * time.Minute,
		CacheMaxEntries:       1000,
		Seed:                  0,
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.MainCount < 1 || c.CategoryCount < 1 {
		return fmt.Errorf("category counts must be positive: main=%d secondary=%d", c.MainCount, c.CategoryCount)
	}
	if c.AttributionPenalty <= 0 || c.AttributionPenalty > 1 {
		return fmt.Errorf("attribution penalty %v must be in (0, 1]", c.AttributionPenalty)
	}
	if c.SelectedArtistFactor <= 0 || c.SelectedArtistFactor > 1 {
		return fmt.Errorf("selected artist factor %v must be in (0, 1]", c.SelectedArtistFactor)
	}
	if c.GenreBoost < 1 {
		return fmt.Errorf("genre boost %v must be at least 1", c.GenreBoost)
	}
	if c.SimilarityCeiling <= 0 {
		return fmt.Errorf("similarity ceiling must be positive")
	}
	if w := c.SimilarityWeight + c.QualityWeight; w < 0.999 || w > 1.001 {
		return fmt.Errorf("similarity and quality weights must sum to 1, got %v", w)
	}
	if c.RedundancyThreshold < 1 || c.RedundancyThreshold > 100 {
		return fmt.Errorf("redundancy threshold %d must be in [1, 100]", c.RedundancyThreshold)
	}
	if c.NeighborCount < 1 {
		return fmt.Errorf("neighbor count must be positive")
	}
	if c.PoolSize < c.MainCount {
		return fmt.Errorf("pool size %d must cover the main category %d", c.PoolSize, c.MainCount)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	return nil
}

// Clone returns a copy safe to mutate.
func (c *Config) Clone() *Config {
	dup := *c
	return &dup
}
