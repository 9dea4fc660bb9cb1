// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package recommend

import "errors"

var (
	// ErrInvalidInput indicates an empty or unusable selection: no ids,
	// or none of the given ids exist in the catalog.
	ErrInvalidInput = errors.New("invalid recommendation input")

	// ErrCatalogUnavailable indicates no snapshot is loaded for the
	// requested media kind.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
