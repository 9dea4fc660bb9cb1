// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package catalog

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/jpvasconcelos/affinity/internal/logging"
	"github.com/jpvasconcelos/affinity/internal/recommend/vectorize"
)

func TestParseMediaKind(t *testing.T) {
	tests := []struct {
		input   string
		want    MediaKind
		wantErr bool
	}{
		{"games", KindGame, false},
		{"movies", KindMovie, false},
		{"music", KindTrack, false},
		{"books", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMediaKind(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMediaKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseMediaKind(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := ParseMediaKind(kind.String())
		if err != nil || parsed != kind {
			t.Errorf("round trip failed for %v: %v, %v", kind, parsed, err)
		}
	}
}

func gameItems() []Item {
	return []Item{
		{ID: "10", Name: "Shadow Realm", Kind: KindGame, Genres: []string{"RPG", "Adventure"},
			Categories: []string{"Single-player"}, Description: "dark fantasy role playing",
			Attribution: "Obsidian North", Quality: 0.92, Popularity: 50000},
		{ID: "20", Name: "Shadow Realm II", Kind: KindGame, Genres: []string{"RPG"},
			Categories: []string{"Single-player"}, Description: "dark fantasy sequel",
			Attribution: "Obsidian North", Quality: 0.85, Popularity: 30000},
		{ID: "30", Name: "Turbo League", Kind: KindGame, Genres: []string{"Racing", "Sports"},
			Categories: []string{"Multi-player"}, Description: "fast car soccer",
			Attribution: "Vortex Games", Quality: 0.8, Popularity: 90000},
	}
}

func TestBuildGameSnapshot(t *testing.T) {
	snap, err := Build(KindGame, gameItems(), BuildOptions{MaxVocabulary: 5000})
	if err != nil {
		t.Fatal(err)
	}

	if snap.Matrix.Len() != 3 {
		t.Fatalf("matrix rows = %d, want 3", snap.Matrix.Len())
	}

	// The two RPGs from the same developer must be far more alike than
	// either is to the racing game.
	simSequel := vectorize.Cosine(snap.Matrix.Row(0), snap.Matrix.Row(1))
	simCross := vectorize.Cosine(snap.Matrix.Row(0), snap.Matrix.Row(2))
	if simSequel <= simCross {
		t.Errorf("sequel similarity %v should exceed cross-genre %v", simSequel, simCross)
	}

	wantGenres := []string{"Adventure", "RPG", "Racing", "Sports"}
	if len(snap.Genres) != len(wantGenres) {
		t.Fatalf("genres = %v, want %v", snap.Genres, wantGenres)
	}
	for i, g := range wantGenres {
		if snap.Genres[i] != g {
			t.Errorf("genres[%d] = %q, want %q", i, snap.Genres[i], g)
		}
	}

	if idx, ok := snap.Lookup("20"); !ok || idx != 1 {
		t.Errorf("Lookup(20) = %d, %v; want 1, true", idx, ok)
	}
	if _, ok := snap.Lookup("999"); ok {
		t.Error("Lookup of unknown id should fail")
	}
}

func TestBuildRejectsDuplicateIDs(t *testing.T) {
	items := gameItems()
	items[2].ID = "10"
	if _, err := Build(KindGame, items, BuildOptions{MaxVocabulary: 100}); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestBuildMovieSnapshotPercentiles(t *testing.T) {
	items := make([]Item, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, Item{
			ID: string(rune('a' + i)), Name: "Movie", Kind: KindMovie,
			Genres: []string{"Drama"}, Description: "a story about things",
			Popularity: float64((i + 1) * 10), Quality: 7,
		})
	}
	snap, err := Build(KindMovie, items, BuildOptions{MaxVocabulary: 1000})
	if err != nil {
		t.Fatal(err)
	}

	if snap.PopP30 >= snap.PopP70 || snap.PopP70 >= snap.PopP95 {
		t.Errorf("percentiles not ordered: p30=%v p70=%v p95=%v", snap.PopP30, snap.PopP70, snap.PopP95)
	}
	if snap.PopP95 > 200 || snap.PopP30 < 10 {
		t.Errorf("percentiles out of data range: p30=%v p95=%v", snap.PopP30, snap.PopP95)
	}
}

func TestBuildMusicSnapshotScaling(t *testing.T) {
	items := []Item{
		{ID: "t1", Name: "Quiet Song", Kind: KindTrack, Genres: []string{"ambient"},
			AudioFeatures: []float64{0.9, 0.2, 0.1, 0.8, 0.1, -30, 0.03, 70, 0.2}},
		{ID: "t2", Name: "Loud Song", Kind: KindTrack, Genres: []string{"metal"},
			AudioFeatures: []float64{0.01, 0.5, 0.98, 0.0, 0.3, -4, 0.1, 180, 0.6}},
		{ID: "t3", Name: "Mid Song", Kind: KindTrack, Genres: []string{"ambient"},
			AudioFeatures: []float64{0.5, 0.4, 0.5, 0.4, 0.2, -15, 0.05, 120, 0.4}},
	}
	snap, err := Build(KindTrack, items, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if snap.Matrix.Dim() != 2+AudioFeatureCount {
		t.Errorf("dim = %d, want %d", snap.Matrix.Dim(), 2+AudioFeatureCount)
	}

	// Same-genre tracks with closer audio profiles should be more similar.
	simSameGenre := vectorize.Cosine(snap.Matrix.Row(0), snap.Matrix.Row(2))
	simCrossGenre := vectorize.Cosine(snap.Matrix.Row(0), snap.Matrix.Row(1))
	if simSameGenre <= simCrossGenre {
		t.Errorf("same-genre similarity %v should exceed cross-genre %v", simSameGenre, simCrossGenre)
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{50, 5.5},
		{100, 10},
	}
	for _, tt := range tests {
		if got := percentile(values, tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("percentile of empty slice = %v, want 0", got)
	}
}

func TestLoadJSONCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")
	payload := `[
		{"id": "10", "name": "Alpha", "genres": ["RPG"], "categories": ["Single-player"],
		 "description": "first", "attribution": "Dev A", "quality": 0.9, "popularity": 100, "year": 2020},
		{"id": "20", "name": "Beta", "genres": ["Action", "Indie"],
		 "description": "second", "attribution": "Dev B", "quality": 0.7, "popularity": 50, "year": 2018}
	]`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatal(err)
	}

	items, err := LoadItems(path, KindGame)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("loaded %d items, want 2", len(items))
	}
	if items[0].Name != "Alpha" || items[0].Genres[0] != "RPG" || items[0].Year != 2020 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Kind != KindGame {
		t.Errorf("kind = %v, want %v", items[1].Kind, KindGame)
	}
}

func TestLoadParquetCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "music.parquet")
	rows := []catalogRow{
		{
			ID: "t1", Name: "Neon Drive", Genres: "Synthwave|Electronic",
			Keywords: "retro|night", Attribution: "Nova",
			Quality: 0.8, Popularity: 120, Year: 2021,
			ImageURL: "https://img.example/t1.jpg", PreviewURL: "https://cdn.example/t1.mp3",
			Acousticness: 0.1, Danceability: 0.7, Energy: 0.9,
			Instrumentalness: 0.5, Liveness: 0.2, Loudness: 0.6,
			Speechiness: 0.05, Tempo: 0.8, Valence: 0.4,
		},
		{ID: "t2", Name: "Low Tide", Genres: "Ambient", Attribution: "Mare", Popularity: 30, Year: 2019},
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("parquet.WriteFile: %v", err)
	}

	items, err := LoadItems(path, KindTrack)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("loaded %d items, want 2", len(items))
	}

	got := items[0]
	if got.Name != "Neon Drive" || got.Attribution != "Nova" || got.Year != 2021 {
		t.Errorf("unexpected first item: %+v", got)
	}
	if len(got.Genres) != 2 || got.Genres[0] != "Synthwave" || got.Genres[1] != "Electronic" {
		t.Errorf("pipe-delimited genres = %v, want [Synthwave Electronic]", got.Genres)
	}
	if len(got.Keywords) != 2 || got.Keywords[1] != "night" {
		t.Errorf("keywords = %v", got.Keywords)
	}
	if len(got.AudioFeatures) != 9 || got.AudioFeatures[2] != 0.9 {
		t.Errorf("audio features = %v", got.AudioFeatures)
	}
	if items[1].Kind != KindTrack || items[1].Genres[0] != "Ambient" {
		t.Errorf("unexpected second item: %+v", items[1])
	}
}

func TestLoadItemsRejectsUnknownFormat(t *testing.T) {
	if _, err := LoadItems("/tmp/catalog.csv", KindGame); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestLoadJSONRejectsMissingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`[{"name": "No ID"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadItems(path, KindMovie); err == nil {
		t.Fatal("expected missing id error")
	}
}

func TestStoreSwapAndVersioning(t *testing.T) {
	store := NewStore(logging.NewTestLogger(io.Discard))

	if _, ok := store.Snapshot(KindGame); ok {
		t.Fatal("empty store should have no snapshot")
	}

	first, err := Build(KindGame, gameItems(), BuildOptions{MaxVocabulary: 100})
	if err != nil {
		t.Fatal(err)
	}
	store.Swap(first)

	snap, ok := store.Snapshot(KindGame)
	if !ok || snap.Version != 1 {
		t.Fatalf("first swap: version = %d, ok = %v; want 1, true", snap.Version, ok)
	}

	second, err := Build(KindGame, gameItems()[:2], BuildOptions{MaxVocabulary: 100})
	if err != nil {
		t.Fatal(err)
	}
	store.Swap(second)

	snap, _ = store.Snapshot(KindGame)
	if snap.Version != 2 || snap.Len() != 2 {
		t.Errorf("after second swap: version=%d len=%d, want 2/2", snap.Version, snap.Len())
	}

	// The first snapshot is untouched; a request holding it keeps working.
	if first.Len() != 3 {
		t.Error("old snapshot mutated by swap")
	}

	kinds := store.LoadedKinds()
	if len(kinds) != 1 || kinds[0] != KindGame {
		t.Errorf("LoadedKinds = %v, want [games]", kinds)
	}
}

func TestHasGenre(t *testing.T) {
	item := Item{Genres: []string{"Hip-Hop", "Pop"}}
	if !item.HasGenre("hip-hop") {
		t.Error("genre match should be case-insensitive")
	}
	if item.HasGenre("Rock") {
		t.Error("absent genre should not match")
	}
}
