// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

/*
Package config loads and validates the service configuration using
Koanf v2 with layered sources:

 1. Built-in defaults
 2. Optional YAML config file (CONFIG_PATH or the default search paths)
 3. Environment variables (highest priority)

Environment variable names map to nested config paths through an explicit
table (HTTP_PORT -> server.port, CATALOG_GAMES_PATH -> catalog.games_path).
Unmapped variables are ignored so unrelated environment noise cannot leak
into the configuration.
*/
package config
