// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

/*
Package catalog loads media catalogs from disk and turns them into
immutable, fully vectorized snapshots.

A Snapshot carries the items of one media kind, their feature matrix,
the genre vocabulary and precomputed popularity percentiles. Building is
expensive (TF-IDF fit plus per-item transforms) and happens at startup
and on refresh; serving is read-only. The Store publishes snapshots
behind atomic pointers so a refresh swaps a whole catalog without
blocking in-flight requests; a request that grabbed the old snapshot
finishes against it.

Catalog files are Parquet or JSON, detected by extension. Both formats
share one flat row schema; list-valued fields are pipe-delimited in
Parquet and native arrays in JSON.
*/
package catalog
