// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

/*
Package vectorize turns catalog items into sparse feature vectors and
computes cosine similarity over them.

Two building blocks are provided:

  - Vocabulary: a TF-IDF vectorizer fit once per catalog snapshot.
    Transform produces L2-normalized sparse term vectors, so weighted
    sums of sub-vectors (genres, categories, description) compose with
    predictable magnitudes.
  - Matrix: an immutable row-aligned collection of sparse vectors with
    cached norms. CosineAll scores a query against every row, fanning
    out across GOMAXPROCS workers for large catalogs.

Vectors are sparse because a 5000-term vocabulary over a catalog of tens
of thousands of items would waste two orders of magnitude of memory as
dense rows.
*/
package vectorize
