// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package recommend

import (
	"context"
	"math"
	"testing"

	"github.com/jpvasconcelos/affinity/internal/catalog"
	"github.com/jpvasconcelos/affinity/internal/recommend/textsim"
)

// movieFixture builds a catalog with a spy-thriller cluster around the
// selection, a near-duplicate title pair, unrelated blockbusters and a
// spread of popularity and vote averages for the percentile categories.
func movieFixture() []catalog.Item {
	return []catalog.Item{
		{ID: "m1", Name: "Night Agent", Kind: catalog.KindMovie, Genres: []string{"Action", "Thriller"},
			Keywords: []string{"spy", "espionage", "agent"}, Description: "an agent uncovers an espionage plot",
			Quality: 7.8, Popularity: 50, Year: 2019},
		{ID: "m2", Name: "Shadow Protocol", Kind: catalog.KindMovie, Genres: []string{"Action", "Thriller"},
			Keywords: []string{"spy", "espionage", "mission"}, Description: "an undercover agent on a secret mission",
			Quality: 7.2, Popularity: 60, Year: 2015},
		{ID: "m3", Name: "Mission: Impossible", Kind: catalog.KindMovie, Genres: []string{"Action", "Thriller"},
			Keywords: []string{"spy", "espionage", "mission"}, Description: "an agent accepts an impossible mission",
			Quality: 7.1, Popularity: 80, Year: 1996},
		{ID: "m4", Name: "Mission Impossible", Kind: catalog.KindMovie, Genres: []string{"Action", "Thriller"},
			Keywords: []string{"spy", "espionage", "mission"}, Description: "an agent returns for another mission",
			Quality: 6.0, Popularity: 20, Year: 2011},
		{ID: "m5", Name: "The Quiet Courier", Kind: catalog.KindMovie, Genres: []string{"Thriller", "Drama"},
			Keywords: []string{"spy", "courier", "secrets"}, Description: "a courier carries secrets across borders",
			Quality: 8.0, Popularity: 35, Year: 2018},
		{ID: "m6", Name: "Cold Harbor", Kind: catalog.KindMovie, Genres: []string{"Thriller"},
			Keywords: []string{"spy", "cold", "war"}, Description: "a cold war espionage drama",
			Quality: 7.6, Popularity: 15, Year: 1998},
		{ID: "m7", Name: "Blast Radius", Kind: catalog.KindMovie, Genres: []string{"Adventure", "Family"},
			Keywords: []string{"treasure", "island"}, Description: "a treasure hunt across a lost island",
			Quality: 6.5, Popularity: 200, Year: 2023},
		{ID: "m8", Name: "Blast Radius Returns", Kind: catalog.KindMovie, Genres: []string{"Adventure", "Family"},
			Keywords: []string{"treasure", "island"}, Description: "the treasure hunters return to the island",
			Quality: 6.0, Popularity: 150, Year: 2024},
		{ID: "m9", Name: "Garden of Years", Kind: catalog.KindMovie, Genres: []string{"Drama"},
			Keywords: []string{"family", "memory"}, Description: "three generations tend the same garden",
			Quality: 8.2, Popularity: 30, Year: 2001},
		{ID: "m10", Name: "Paper Moonlight", Kind: catalog.KindMovie, Genres: []string{"Drama", "Romance"},
			Keywords: []string{"romance", "letters"}, Description: "two strangers exchange letters for a decade",
			Quality: 7.9, Popularity: 40, Year: 2017},
		{ID: "m11", Name: "Steel Legion", Kind: catalog.KindMovie, Genres: []string{"Action", "Science Fiction"},
			Keywords: []string{"war", "robots"}, Description: "soldiers fight a robot uprising",
			Quality: 6.8, Popularity: 90, Year: 2012},
		{ID: "m12", Name: "Laugh Track", Kind: catalog.KindMovie, Genres: []string{"Comedy"},
			Keywords: []string{"comedy", "standup"}, Description: "a failed comedian mounts a comeback",
			Quality: 6.2, Popularity: 25, Year: 2010},
		{ID: "m13", Name: "Silent Depths", Kind: catalog.KindMovie, Genres: []string{"Thriller", "Mystery"},
			Keywords: []string{"ocean", "mystery"}, Description: "a submarine crew finds something below",
			Quality: 7.4, Popularity: 55, Year: 2008},
		{ID: "m14", Name: "Driftwood", Kind: catalog.KindMovie, Genres: []string{"Drama"},
			Keywords: []string{"smalltown", "memory"}, Description: "a drifter settles in a dying town",
			Quality: 7.7, Popularity: 10, Year: 1995},
	}
}

func movieProvider(t *testing.T) *stubProvider {
	return &stubProvider{snaps: map[catalog.MediaKind]*catalog.Snapshot{
		catalog.KindMovie: buildSnapshot(t, catalog.KindMovie, movieFixture()),
	}}
}

func movieEngine(t *testing.T) *Engine {
	return testEngine(t, movieProvider(t), func(c *Config) {
		c.MainCount = 4
		c.CategoryCount = 3
	})
}

func TestRecommendMoviesCategories(t *testing.T) {
	resp, _, err := movieEngine(t).Recommend(context.Background(), Request{
		Kind:        catalog.KindMovie,
		SelectedIDs: []string{"m1", "m2"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if resp.CategoryOrder[0] != "main" {
		t.Errorf("first category = %s, want main", resp.CategoryOrder[0])
	}
	if len(resp.Recommendations["main"]) != 4 {
		t.Errorf("main has %d items, want 4", len(resp.Recommendations["main"]))
	}
	for _, item := range resp.Recommendations["cult_classics"] {
		if item.Year >= 2005 || item.Quality <= 7.0 {
			t.Errorf("cult classic %s: year %d quality %.1f", item.Name, item.Year, item.Quality)
		}
	}
	if len(resp.Recommendations["cult_classics"]) == 0 {
		t.Error("expected cult classics")
	}
	for _, item := range resp.Recommendations["hidden_gems"] {
		if item.Quality <= 7.5 {
			t.Errorf("hidden gem %s has vote average %.1f, want > 7.5", item.Name, item.Quality)
		}
	}
	if len(resp.Recommendations["hidden_gems"]) == 0 {
		t.Error("expected hidden gems")
	}
}

func TestRecommendMoviesBlockbusters(t *testing.T) {
	resp, _, err := movieEngine(t).Recommend(context.Background(), Request{
		Kind:        catalog.KindMovie,
		SelectedIDs: []string{"m1", "m2"},
	})
	if err != nil {
		t.Fatal(err)
	}

	blockbusters := resp.Recommendations["blockbusters"]
	if len(blockbusters) == 0 {
		t.Fatal("expected blockbusters")
	}
	// Only the catalog's most popular film sits above the 95th
	// popularity percentile of this fixture.
	if blockbusters[0].ID != "m7" {
		t.Errorf("top blockbuster = %s, want m7", blockbusters[0].ID)
	}
	for i := 1; i < len(blockbusters); i++ {
		if blockbusters[i].Popularity > blockbusters[i-1].Popularity {
			t.Error("blockbusters not sorted by popularity")
		}
	}
}

func TestRecommendMoviesRedundantTitlesCollapse(t *testing.T) {
	resp, _, err := movieEngine(t).Recommend(context.Background(), Request{
		Kind:        catalog.KindMovie,
		SelectedIDs: []string{"m1", "m2"},
	})
	if err != nil {
		t.Fatal(err)
	}

	for category, items := range resp.Recommendations {
		for i := range items {
			for j := i + 1; j < len(items); j++ {
				if textsim.TokenSortRatio(items[i].Name, items[j].Name) > 90 {
					t.Errorf("%s carries near-duplicate titles %q and %q", category, items[i].Name, items[j].Name)
				}
			}
		}
	}
}

func TestRecommendMoviesSequelPairCollapses(t *testing.T) {
	resp, _, err := movieEngine(t).Recommend(context.Background(), Request{
		Kind:        catalog.KindMovie,
		SelectedIDs: []string{"m1", "m2"},
	})
	if err != nil {
		t.Fatal(err)
	}

	// "Mission: Impossible" and "Mission Impossible" token-sort to the
	// same title. The better-scored original survives; the sequel is
	// collapsed out of every category, not pushed to a later one.
	foundOriginal := false
	for category, items := range resp.Recommendations {
		for _, item := range items {
			if item.ID == "m3" {
				foundOriginal = true
			}
			if item.ID == "m4" {
				t.Errorf("near-duplicate m4 %q surfaced in %s", item.Name, category)
			}
		}
	}
	if !foundOriginal {
		t.Error("m3 should rank in the spy-cluster recommendations")
	}
}

func TestRecommendMoviesGenreFavorites(t *testing.T) {
	resp, _, err := movieEngine(t).Recommend(context.Background(), Request{
		Kind:        catalog.KindMovie,
		SelectedIDs: []string{"m1", "m2"},
		Genre:       "Drama",
	})
	if err != nil {
		t.Fatal(err)
	}

	favs := resp.Recommendations["genre_favorites"]
	if len(favs) == 0 {
		t.Fatal("expected genre favorites")
	}
	for _, item := range favs {
		found := false
		for _, g := range item.Genres {
			if g == "Drama" {
				found = true
			}
		}
		if !found {
			t.Errorf("genre favorite %s lacks the Drama genre", item.Name)
		}
	}
}

func TestRecommendMoviesDisplayRange(t *testing.T) {
	resp, _, err := movieEngine(t).Recommend(context.Background(), Request{
		Kind:        catalog.KindMovie,
		SelectedIDs: []string{"m1", "m2", "m3"},
	})
	if err != nil {
		t.Fatal(err)
	}

	for category, items := range resp.Recommendations {
		for i, item := range items {
			if item.SimilarityScore < 70 || item.SimilarityScore > 99 {
				t.Errorf("%s[%d] %s score = %d, want in [70, 99]", category, i, item.Name, item.SimilarityScore)
			}
			if i == 0 && item.SimilarityScore < 98 {
				t.Errorf("%s top item score = %d, want 98 or 99", category, item.SimilarityScore)
			}
		}
	}
}

func TestMovieHybridScoreCapsSimilarity(t *testing.T) {
	e := movieEngine(t)

	// 0.40/0.35*95 would be ~108.6 uncapped; the component saturates
	// at 99, so 0.70*99 + 0.30*80 = 93.3.
	got := e.movieHybridScore(0.40, 8.0)
	want := 0.70*99 + 0.30*80
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("movieHybridScore(0.40, 8.0) = %f, want %f", got, want)
	}

	if a, b := e.movieHybridScore(0.40, 8.0), e.movieHybridScore(0.90, 8.0); a != b {
		t.Errorf("scores above the ceiling should saturate equally: %f vs %f", a, b)
	}

	// Below the ceiling the similarity component scales linearly.
	got = e.movieHybridScore(0.175, 5.0)
	want = 0.70*47.5 + 0.30*50
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("movieHybridScore(0.175, 5.0) = %f, want %f", got, want)
	}
}
