// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

// Package artwork enriches music recommendations with album art and
// preview URLs from the upstream track catalog.
//
// The client authenticates with OAuth client credentials, batches
// lookups 50 ids at a time, rate-limits outgoing calls and caches
// results per track id in a cache.Store (in-memory or Badger-backed).
// A circuit breaker fails lookups fast while the upstream is down;
// cached entries keep being served regardless.
package artwork
