// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

/*
Package recommend implements the similarity-based recommendation engine
for games, movies and music.

# Pipeline

Every request runs the same stateless pipeline over the active catalog
snapshot:

 1. Resolve the selected ids and average their feature vectors into a
    taste profile.
 2. Score every catalog item by cosine similarity against the profile,
    blended with the item's quality signal (per-kind hybrid formulas).
 3. Penalize repeated attributions (developer, artist) so one studio
    cannot monopolize the list, and drop near-duplicate movie titles.
 4. Assemble named categories (main, hidden_gems, blockbusters, ...)
    with cross-category de-duplication, and map internal scores to the
    85-99 / 70-99 display ranges the clients expect.

# Determinism

Results are reproducible: scoring is pure arithmetic, ties break on
catalog id, and the only randomness (display-score jitter, discovery
sampling) comes from a single seeded RNG.

# Concurrency

The engine is safe for concurrent use. It never mutates a snapshot;
request state lives on the stack. A small TTL response cache keyed by
the request fingerprint absorbs repeated selections.

# Usage

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), store, logger)
	resp, cached, err := engine.Recommend(ctx, recommend.Request{
	    Kind:        catalog.KindMovie,
	    SelectedIDs: []string{"603", "604", "605"},
	})
*/
package recommend
