// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/parquet-go/parquet-go"
)

// catalogRow is the flat on-disk schema shared by the Parquet and JSON
// loaders. List fields are pipe-delimited in Parquet ("Action|RPG") and
// native arrays in JSON.
type catalogRow struct {
	ID          string  `parquet:"id" json:"id"`
	Name        string  `parquet:"name" json:"name"`
	Genres      string  `parquet:"genres" json:"-"`
	Categories  string  `parquet:"categories,optional" json:"-"`
	Keywords    string  `parquet:"keywords,optional" json:"-"`
	Description string  `parquet:"description,optional" json:"description"`
	Attribution string  `parquet:"attribution,optional" json:"attribution"`
	Quality     float64 `parquet:"quality,optional" json:"quality"`
	Popularity  float64 `parquet:"popularity,optional" json:"popularity"`
	Year        int32   `parquet:"year,optional" json:"year"`
	ImageURL    string  `parquet:"image_url,optional" json:"image_url"`
	PreviewURL  string  `parquet:"preview_url,optional" json:"preview_url"`

	Acousticness     float64 `parquet:"acousticness,optional" json:"acousticness"`
	Danceability     float64 `parquet:"danceability,optional" json:"danceability"`
	Energy           float64 `parquet:"energy,optional" json:"energy"`
	Instrumentalness float64 `parquet:"instrumentalness,optional" json:"instrumentalness"`
	Liveness         float64 `parquet:"liveness,optional" json:"liveness"`
	Loudness         float64 `parquet:"loudness,optional" json:"loudness"`
	Speechiness      float64 `parquet:"speechiness,optional" json:"speechiness"`
	Tempo            float64 `parquet:"tempo,optional" json:"tempo"`
	Valence          float64 `parquet:"valence,optional" json:"valence"`
}

// jsonRow adds the array-valued fields for the JSON format.
type jsonRow struct {
	catalogRow
	GenresList     []string `json:"genres"`
	CategoriesList []string `json:"categories"`
	KeywordsList   []string `json:"keywords"`
}

// LoadItems reads a catalog file into items of the given kind. The
// format is chosen by file extension: .parquet or .json.
func LoadItems(path string, kind MediaKind) ([]Item, error) {
	switch {
	case strings.HasSuffix(path, ".parquet"):
		return loadParquet(path, kind)
	case strings.HasSuffix(path, ".json"):
		return loadJSON(path, kind)
	default:
		return nil, fmt.Errorf("unsupported catalog format for %s", path)
	}
}

func loadParquet(path string, kind MediaKind) ([]Item, error) {
	rows, err := parquet.ReadFile[catalogRow](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet catalog %s: %w", path, err)
	}

	items := make([]Item, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		item, err := rowToItem(row, splitList(row.Genres), splitList(row.Categories), splitList(row.Keywords), kind)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func loadJSON(path string, kind MediaKind) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var rows []jsonRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse JSON catalog %s: %w", path, err)
	}

	items := make([]Item, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		item, err := rowToItem(&row.catalogRow, row.GenresList, row.CategoriesList, row.KeywordsList, kind)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func rowToItem(row *catalogRow, genres, categories, keywords []string, kind MediaKind) (Item, error) {
	if row.ID == "" {
		return Item{}, fmt.Errorf("missing id")
	}
	if row.Name == "" {
		return Item{}, fmt.Errorf("item %s: missing name", row.ID)
	}

	item := Item{
		ID:          row.ID,
		Name:        row.Name,
		Kind:        kind,
		Genres:      genres,
		Categories:  categories,
		Keywords:    keywords,
		Description: row.Description,
		Attribution: row.Attribution,
		Quality:     row.Quality,
		Popularity:  row.Popularity,
		Year:        int(row.Year),
		ImageURL:    row.ImageURL,
		PreviewURL:  row.PreviewURL,
	}

	if kind == KindTrack {
		item.AudioFeatures = []float64{
			row.Acousticness, row.Danceability, row.Energy,
			row.Instrumentalness, row.Liveness, row.Loudness,
			row.Speechiness, row.Tempo, row.Valence,
		}
	}
	return item, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
