// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where the config file is searched, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/affinity/config.yaml",
	"/etc/affinity/config.yml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, then validates it. Precedence: ENV > file >
// defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via
// environment variables.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransform maps flat environment variable names to nested config
// paths. Unknown variables map to "" and are dropped, so arbitrary
// environment noise cannot reach the configuration.
func envTransform(key string) string {
	envMappings := map[string]string{
		"http_host":               "server.host",
		"http_port":               "server.port",
		"http_read_timeout":       "server.read_timeout",
		"http_write_timeout":      "server.write_timeout",
		"http_shutdown_timeout":   "server.shutdown_timeout",
		"catalog_games_path":      "catalog.games_path",
		"catalog_movies_path":     "catalog.movies_path",
		"catalog_music_path":      "catalog.music_path",
		"catalog_max_vocabulary":  "catalog.max_vocabulary",
		"catalog_refresh":         "catalog.refresh_interval",
		"recommend_min_selection": "recommend.min_selection",
		"recommend_main_count":    "recommend.main_count",
		"recommend_category_count": "recommend.category_count",
		"recommend_cache_ttl":      "recommend.cache_ttl",
		"recommend_cache_entries":  "recommend.cache_max_entries",
		"recommend_seed":           "recommend.seed",
		"artwork_enabled":          "artwork.enabled",
		"artwork_base_url":         "artwork.base_url",
		"artwork_token_url":        "artwork.token_url",
		"artwork_client_id":        "artwork.client_id",
		"artwork_client_secret":    "artwork.client_secret",
		"artwork_timeout":          "artwork.timeout",
		"artwork_rps":              "artwork.requests_per_second",
		"artwork_cache_backend":    "artwork.cache_backend",
		"artwork_cache_path":       "artwork.cache_path",
		"artwork_cache_ttl":        "artwork.cache_ttl",
		"cors_origins":             "security.cors_origins",
		"rate_limit_requests":      "security.rate_limit_reqs",
		"rate_limit_window":        "security.rate_limit_window",
		"disable_rate_limit":       "security.rate_limit_disabled",
		"log_level":                "logging.level",
		"log_format":               "logging.format",
		"log_caller":               "logging.caller",
	}

	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

// WatchConfigFile invokes callback whenever the config file changes.
// Callers own any locking around reloads.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
