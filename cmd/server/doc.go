// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

// Command server runs the Affinity recommendation service.
//
// Configuration is layered: built-in defaults, then an optional
// config.yaml, then environment variables (HTTP_PORT,
// CATALOG_GAMES_PATH and friends, see internal/config). At least
// one catalog path (games, movies or music) must be configured; each
// catalog is loaded, vectorized and served as an immutable in-memory
// snapshot.
package main
