// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

/*
Package cache provides a keyed byte store with per-entry TTL behind the
Store interface, with two implementations:

  - Memory: sync.RWMutex map with a background sweep, bounded entry count
  - Badger: persistent BadgerDB store, entries expire via WithTTL

Values are opaque []byte; callers serialize with goccy/go-json. The
artwork client uses the store to keep upstream metadata across requests
(and across restarts with the badger backend).
*/
package cache
