// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package catalog

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/jpvasconcelos/affinity/internal/metrics"
)

// Store publishes the active snapshot per media kind behind atomic
// pointers. Readers take whatever snapshot is current and keep using it
// for the whole request; Swap never blocks them.
type Store struct {
	logger   zerolog.Logger
	games    atomic.Pointer[Snapshot]
	movies   atomic.Pointer[Snapshot]
	music    atomic.Pointer[Snapshot]
	versions [3]atomic.Int64
}

// NewStore creates an empty store.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{logger: logger.With().Str("component", "catalog").Logger()}
}

// Swap installs snap as the active snapshot for its kind and stamps it
// with the next version number.
func (s *Store) Swap(snap *Snapshot) {
	version := s.versions[snap.Kind].Add(1)
	snap.Version = version

	s.pointerFor(snap.Kind).Store(snap)
	metrics.SetCatalogSnapshot(snap.Kind.String(), snap.Len(), version)

	s.logger.Info().
		Str("kind", snap.Kind.String()).
		Int("items", snap.Len()).
		Int("genres", len(snap.Genres)).
		Int64("version", version).
		Msg("catalog snapshot swapped in")
}

// Snapshot returns the active snapshot for kind, or false when none has
// been loaded.
func (s *Store) Snapshot(kind MediaKind) (*Snapshot, bool) {
	snap := s.pointerFor(kind).Load()
	return snap, snap != nil
}

// LoadAndSwap reads a catalog file, builds its snapshot and installs it.
func (s *Store) LoadAndSwap(kind MediaKind, path string, maxVocabulary int) error {
	items, err := LoadItems(path, kind)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("catalog %s is empty", path)
	}

	snap, err := Build(kind, items, BuildOptions{MaxVocabulary: maxVocabulary})
	if err != nil {
		return fmt.Errorf("failed to build %s snapshot: %w", kind, err)
	}
	s.Swap(snap)
	return nil
}

// LoadedKinds returns the kinds that currently have a snapshot.
func (s *Store) LoadedKinds() []MediaKind {
	var kinds []MediaKind
	for _, kind := range Kinds() {
		if _, ok := s.Snapshot(kind); ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func (s *Store) pointerFor(kind MediaKind) *atomic.Pointer[Snapshot] {
	switch kind {
	case KindGame:
		return &s.games
	case KindMovie:
		return &s.movies
	default:
		return &s.music
	}
}
