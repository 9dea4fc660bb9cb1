// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package models

// RecommendRequest is the body of POST /api/v1/{media}/recommend.
type RecommendRequest struct {
	// SelectedIDs are the catalog ids the user picked. The configured
	// minimum (recommend.min_selection, default 3) is enforced by the
	// handler so the taste profile has some signal.
	SelectedIDs []string `json:"selected_ids" validate:"required,min=1,dive,required"`

	// Genre optionally narrows recommendations toward one genre.
	Genre string `json:"genre" validate:"omitempty,max=64"`
}

// TrackDetailsRequest is the body of POST /api/v1/music/track-details.
type TrackDetailsRequest struct {
	TrackIDs []string `json:"track_ids" validate:"required,min=1,max=100,dive,required"`
}
