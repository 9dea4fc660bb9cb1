// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package config

import "time"

// Config is the root configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Artwork   ArtworkConfig   `koanf:"artwork"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// CatalogConfig points at the media catalog files. A media kind is served
// only when its path is set; at least one path must be configured.
// Files may be Parquet (.parquet) or JSON (.json), detected by extension.
type CatalogConfig struct {
	GamesPath  string `koanf:"games_path"`
	MoviesPath string `koanf:"movies_path"`
	MusicPath  string `koanf:"music_path"`

	// MaxVocabulary caps the TF-IDF vocabulary built per snapshot.
	MaxVocabulary int `koanf:"max_vocabulary"`

	// RefreshInterval rebuilds snapshots from disk periodically.
	// Zero disables refresh; the startup snapshot lives forever.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	// MinSelection is enforced at the API boundary.
	MinSelection int `koanf:"min_selection"`

	// MainCount and CategoryCount size the main and secondary categories.
	MainCount     int `koanf:"main_count"`
	CategoryCount int `koanf:"category_count"`

	// CacheTTL bounds how long a computed response may be served from
	// cache. CacheMaxEntries bounds memory; zero disables the cache.
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`

	// Seed fixes the engine RNG for reproducible display scores.
	// Zero seeds from the clock.
	Seed int64 `koanf:"seed"`
}

// ArtworkConfig controls the upstream track metadata client.
type ArtworkConfig struct {
	Enabled      bool          `koanf:"enabled"`
	BaseURL      string        `koanf:"base_url"`
	TokenURL     string        `koanf:"token_url"`
	ClientID     string        `koanf:"client_id"`
	ClientSecret string        `koanf:"client_secret"`
	Timeout      time.Duration `koanf:"timeout"`

	// RequestsPerSecond throttles upstream calls.
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	// CacheBackend is "memory" or "badger". CachePath is the badger
	// directory; ignored for the memory backend.
	CacheBackend string        `koanf:"cache_backend"`
	CachePath    string        `koanf:"cache_path"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
}

// SecurityConfig controls CORS and rate limiting.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, applied before the config
// file and environment layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8400,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			GamesPath:       "",
			MoviesPath:      "",
			MusicPath:       "",
			MaxVocabulary:   5000,
			RefreshInterval: 0,
		},
		Recommend: RecommendConfig{
			MinSelection:    3,
			MainCount:       12,
			CategoryCount:   6,
			CacheTTL:        5 * time.Minute,
			CacheMaxEntries: 1000,
			Seed:            0,
		},
		Artwork: ArtworkConfig{
			Enabled:           false,
			BaseURL:           "https://api.spotify.com/v1",
			TokenURL:          "https://accounts.spotify.com/api/token",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 10,
			CacheBackend:      "memory",
			CachePath:         "/data/artwork-cache",
			CacheTTL:          24 * time.Hour,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// EnabledKinds returns the media kind names that have a catalog path set.
func (c *CatalogConfig) EnabledKinds() []string {
	var kinds []string
	if c.GamesPath != "" {
		kinds = append(kinds, "games")
	}
	if c.MoviesPath != "" {
		kinds = append(kinds, "movies")
	}
	if c.MusicPath != "" {
		kinds = append(kinds, "music")
	}
	return kinds
}
