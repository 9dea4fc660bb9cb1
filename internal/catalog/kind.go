// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package catalog

import "fmt"

// MediaKind identifies which catalog an item or request belongs to.
type MediaKind int

const (
	KindGame MediaKind = iota
	KindMovie
	KindTrack
)

// String returns the route-level name of the kind.
func (k MediaKind) String() string {
	switch k {
	case KindGame:
		return "games"
	case KindMovie:
		return "movies"
	case KindTrack:
		return "music"
	default:
		return fmt.Sprintf("MediaKind(%d)", int(k))
	}
}

// ParseMediaKind maps a route segment to a MediaKind.
func ParseMediaKind(s string) (MediaKind, error) {
	switch s {
	case "games":
		return KindGame, nil
	case "movies":
		return KindMovie, nil
	case "music":
		return KindTrack, nil
	default:
		return 0, fmt.Errorf("unknown media kind %q", s)
	}
}

// Kinds lists all media kinds in route order.
func Kinds() []MediaKind {
	return []MediaKind{KindGame, KindMovie, KindTrack}
}
