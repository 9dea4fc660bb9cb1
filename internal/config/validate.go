// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for values the service cannot run
// with. It returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 1-65535", c.Server.Port)
	}

	if len(c.Catalog.EnabledKinds()) == 0 {
		return fmt.Errorf("no catalog configured: set at least one of catalog.games_path, catalog.movies_path, catalog.music_path")
	}

	for _, path := range []string{c.Catalog.GamesPath, c.Catalog.MoviesPath, c.Catalog.MusicPath} {
		if path == "" {
			continue
		}
		if !strings.HasSuffix(path, ".parquet") && !strings.HasSuffix(path, ".json") {
			return fmt.Errorf("catalog path %q must end in .parquet or .json", path)
		}
	}

	if c.Catalog.MaxVocabulary < 100 {
		return fmt.Errorf("catalog.max_vocabulary %d too small, minimum 100", c.Catalog.MaxVocabulary)
	}

	if c.Recommend.MinSelection < 1 {
		return fmt.Errorf("recommend.min_selection must be at least 1, got %d", c.Recommend.MinSelection)
	}
	if c.Recommend.MainCount < 1 {
		return fmt.Errorf("recommend.main_count must be at least 1, got %d", c.Recommend.MainCount)
	}
	if c.Recommend.CategoryCount < 1 {
		return fmt.Errorf("recommend.category_count must be at least 1, got %d", c.Recommend.CategoryCount)
	}
	if c.Recommend.CacheTTL < 0 {
		return fmt.Errorf("recommend.cache_ttl must not be negative")
	}

	if c.Artwork.Enabled {
		if c.Artwork.BaseURL == "" {
			return fmt.Errorf("artwork.base_url is required when artwork is enabled")
		}
		if c.Artwork.ClientID == "" || c.Artwork.ClientSecret == "" {
			return fmt.Errorf("artwork.client_id and artwork.client_secret are required when artwork is enabled")
		}
		switch c.Artwork.CacheBackend {
		case "memory", "badger":
		default:
			return fmt.Errorf("artwork.cache_backend %q must be \"memory\" or \"badger\"", c.Artwork.CacheBackend)
		}
		if c.Artwork.CacheBackend == "badger" && c.Artwork.CachePath == "" {
			return fmt.Errorf("artwork.cache_path is required for the badger cache backend")
		}
		if c.Artwork.RequestsPerSecond <= 0 {
			return fmt.Errorf("artwork.requests_per_second must be positive, got %v", c.Artwork.RequestsPerSecond)
		}
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive")
		}
	}

	return nil
}
