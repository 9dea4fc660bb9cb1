// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package recommend

import (
	"context"
	"testing"

	"github.com/jpvasconcelos/affinity/internal/catalog"
)

// musicFixture clusters tracks by genre and audio profile: a synthwave
// cluster around the selection (two tracks by the selected artist Nova),
// ambient and metal clusters further out, and low-popularity tracks for
// the hidden gems category.
func musicFixture() []catalog.Item {
	synth := []float64{0.10, 0.80, 0.90, 0.70, 0.20, 0.60, 0.10, 0.70, 0.80}
	ambient := []float64{0.90, 0.20, 0.10, 0.90, 0.10, 0.20, 0.05, 0.30, 0.40}
	metal := []float64{0.05, 0.40, 0.95, 0.30, 0.60, 0.90, 0.20, 0.90, 0.30}
	folk := []float64{0.80, 0.50, 0.30, 0.10, 0.30, 0.30, 0.15, 0.40, 0.60}

	shift := func(base []float64, delta float64) []float64 {
		out := make([]float64, len(base))
		for i, v := range base {
			out[i] = v + delta
		}
		return out
	}

	return []catalog.Item{
		{ID: "t1", Name: "Neon Drive", Kind: catalog.KindTrack, Genres: []string{"Synthwave"},
			Attribution: "Nova", Popularity: 70, AudioFeatures: synth},
		{ID: "t2", Name: "Midnight Grid", Kind: catalog.KindTrack, Genres: []string{"Synthwave"},
			Attribution: "Nova", Popularity: 65, AudioFeatures: shift(synth, 0.02)},
		{ID: "t3", Name: "Chrome Sunset", Kind: catalog.KindTrack, Genres: []string{"Synthwave"},
			Attribution: "Vega", Popularity: 60, AudioFeatures: shift(synth, 0.01)},
		{ID: "t4", Name: "Laser Horizon", Kind: catalog.KindTrack, Genres: []string{"Synthwave"},
			Attribution: "Vega", Popularity: 40, AudioFeatures: shift(synth, 0.03)},
		{ID: "t5", Name: "Night Circuit", Kind: catalog.KindTrack, Genres: []string{"Synthwave"},
			Attribution: "Nova", Popularity: 80, AudioFeatures: shift(synth, 0.015)},
		{ID: "t6", Name: "Starlit Loop", Kind: catalog.KindTrack, Genres: []string{"Synthwave"},
			Attribution: "Pulse", Popularity: 30, AudioFeatures: shift(synth, 0.05)},
		{ID: "t7", Name: "Slow Tide", Kind: catalog.KindTrack, Genres: []string{"Ambient"},
			Attribution: "Mist", Popularity: 45, AudioFeatures: ambient},
		{ID: "t8", Name: "Fog Lines", Kind: catalog.KindTrack, Genres: []string{"Ambient"},
			Attribution: "Mist", Popularity: 20, AudioFeatures: shift(ambient, 0.02)},
		{ID: "t9", Name: "Iron Chant", Kind: catalog.KindTrack, Genres: []string{"Metal"},
			Attribution: "Forge", Popularity: 55, AudioFeatures: metal},
		{ID: "t10", Name: "Granite", Kind: catalog.KindTrack, Genres: []string{"Metal"},
			Attribution: "Forge", Popularity: 35, AudioFeatures: shift(metal, 0.02)},
		{ID: "t11", Name: "Porch Song", Kind: catalog.KindTrack, Genres: []string{"Folk"},
			Attribution: "Wren", Popularity: 25, AudioFeatures: folk},
		{ID: "t12", Name: "Meadow", Kind: catalog.KindTrack, Genres: []string{"Folk"},
			Attribution: "Wren", Popularity: 15, AudioFeatures: shift(folk, 0.02)},
	}
}

func musicProvider(t *testing.T) *stubProvider {
	return &stubProvider{snaps: map[catalog.MediaKind]*catalog.Snapshot{
		catalog.KindTrack: buildSnapshot(t, catalog.KindTrack, musicFixture()),
	}}
}

func musicEngine(t *testing.T) *Engine {
	return testEngine(t, musicProvider(t), func(c *Config) {
		c.MainCount = 3
		c.CategoryCount = 3
	})
}

func TestRecommendMusicMain(t *testing.T) {
	resp, _, err := musicEngine(t).Recommend(context.Background(), Request{
		Kind:        catalog.KindTrack,
		SelectedIDs: []string{"t1", "t2"},
	})
	if err != nil {
		t.Fatal(err)
	}

	main := resp.Recommendations["main"]
	if len(main) != 3 {
		t.Fatalf("main has %d tracks, want 3", len(main))
	}
	// A track by an unselected artist leads: Nova's own tracks take
	// the selected-artist cut and cannot hold rank 1. Vega's nearest
	// track t4 edges out t3 on union-max similarity and, taken first,
	// escapes the repeat penalty that t3 then absorbs.
	if main[0].Attribution == "Nova" {
		t.Errorf("top track %s is by the selected artist", main[0].Name)
	}
	if main[0].ID != "t4" {
		t.Errorf("top track = %s, want t4", main[0].ID)
	}
	found := false
	for _, item := range main {
		if item.ID == "t3" {
			found = true
		}
	}
	if !found {
		t.Error("t3 should still rank in main behind its penalized artist repeat")
	}
}

func TestRecommendMusicBasedOnDominantGenre(t *testing.T) {
	resp, _, err := musicEngine(t).Recommend(context.Background(), Request{
		Kind:        catalog.KindTrack,
		SelectedIDs: []string{"t1", "t2"},
	})
	if err != nil {
		t.Fatal(err)
	}

	based, ok := resp.Recommendations["based_on_synthwave"]
	if !ok {
		t.Fatal("expected based_on_synthwave for an all-synthwave selection")
	}
	for _, item := range based {
		if len(item.Genres) == 0 || item.Genres[0] != "Synthwave" {
			t.Errorf("%s in based_on_synthwave has genres %v", item.Name, item.Genres)
		}
	}
	if resp.Profile.DominantGenre != "Synthwave" {
		t.Errorf("dominant genre = %q, want Synthwave", resp.Profile.DominantGenre)
	}
}

func TestRecommendMusicExploringGenre(t *testing.T) {
	resp, _, err := musicEngine(t).Recommend(context.Background(), Request{
		Kind:        catalog.KindTrack,
		SelectedIDs: []string{"t1", "t2"},
		Genre:       "Ambient",
	})
	if err != nil {
		t.Fatal(err)
	}

	exploring, ok := resp.Recommendations["exploring_ambient"]
	if !ok {
		t.Fatal("expected exploring_ambient")
	}
	for _, item := range exploring {
		if item.Genres[0] != "Ambient" {
			t.Errorf("%s in exploring_ambient has genres %v", item.Name, item.Genres)
		}
	}

	// Dominant genre differs from the requested one, so both categories
	// appear.
	if _, ok := resp.Recommendations["based_on_synthwave"]; !ok {
		t.Error("expected based_on_synthwave alongside exploring_ambient")
	}
}

func TestRecommendMusicNoBasedOnWhenGenreMatches(t *testing.T) {
	resp, _, err := musicEngine(t).Recommend(context.Background(), Request{
		Kind:        catalog.KindTrack,
		SelectedIDs: []string{"t1", "t2"},
		Genre:       "Synthwave",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := resp.Recommendations["based_on_synthwave"]; ok {
		t.Error("based_on should be dropped when it matches the requested genre")
	}
	if _, ok := resp.Recommendations["exploring_synthwave"]; !ok {
		t.Error("expected exploring_synthwave")
	}
}

func TestRecommendMusicHiddenGems(t *testing.T) {
	resp, _, err := musicEngine(t).Recommend(context.Background(), Request{
		Kind:        catalog.KindTrack,
		SelectedIDs: []string{"t1", "t2"},
	})
	if err != nil {
		t.Fatal(err)
	}

	gems := resp.Recommendations["hidden_gems"]
	if len(gems) == 0 {
		t.Fatal("expected hidden gems")
	}
	for _, item := range gems {
		if item.Popularity >= 50 {
			t.Errorf("hidden gem %s has popularity %.0f, want < 50", item.Name, item.Popularity)
		}
	}
}

func TestRecommendMusicDisplayRange(t *testing.T) {
	resp, _, err := musicEngine(t).Recommend(context.Background(), Request{
		Kind:        catalog.KindTrack,
		SelectedIDs: []string{"t1", "t2", "t9"},
	})
	if err != nil {
		t.Fatal(err)
	}

	for category, items := range resp.Recommendations {
		for i, item := range items {
			if item.SimilarityScore < 70 || item.SimilarityScore > 99 {
				t.Errorf("%s[%d] %s score = %d, want in [70, 99]", category, i, item.Name, item.SimilarityScore)
			}
		}
	}
}

func TestTopNeighbors(t *testing.T) {
	sims := []float64{0.9, 0.0, 0.7, 0.8, -0.1, 0.6}
	exclude := map[int]struct{}{0: {}}

	got := topNeighbors(sims, exclude, 2)
	if len(got) != 2 || got[0] != 3 || got[1] != 2 {
		t.Errorf("topNeighbors = %v, want [3 2]", got)
	}

	if got := topNeighbors(sims, exclude, 10); len(got) != 3 {
		t.Errorf("len = %d, want 3 (zero and negative sims excluded)", len(got))
	}
}
