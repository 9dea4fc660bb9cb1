// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process Store with a background expiry sweep.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	maxEntries int

	hits   atomic.Int64
	misses atomic.Int64

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemory creates a memory store sweeping expired entries every
// cleanupInterval. maxEntries bounds the map; when full, Set evicts the
// entry closest to expiry. maxEntries <= 0 means unbounded.
func NewMemory(cleanupInterval time.Duration, maxEntries int) *Memory {
	m := &Memory{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		stop:       make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go m.sweepLoop(cleanupInterval)
	}
	return m
}

// Get returns the value for key if present and unexpired.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		m.misses.Add(1)
		return nil, false
	}
	m.hits.Add(1)
	return entry.value, true
}

// Set stores value under key for ttl.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		if _, exists := m.entries[key]; !exists {
			m.evictSoonestLocked()
		}
	}

	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Delete removes key.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Close stops the sweep goroutine.
func (m *Memory) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

// Stats returns hit/miss counters and the current entry count.
func (m *Memory) Stats() Stats {
	m.mu.RLock()
	entries := len(m.entries)
	m.mu.RUnlock()
	return Stats{
		Hits:    m.hits.Load(),
		Misses:  m.misses.Load(),
		Entries: entries,
	}
}

// evictSoonestLocked drops the entry with the nearest expiry. Caller
// holds the write lock.
func (m *Memory) evictSoonestLocked() {
	var victim string
	var soonest time.Time
	first := true
	for key, entry := range m.entries {
		if first || entry.expiresAt.Before(soonest) {
			victim, soonest, first = key, entry.expiresAt, false
		}
	}
	if !first {
		delete(m.entries, victim)
	}
}

func (m *Memory) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for key, entry := range m.entries {
				if now.After(entry.expiresAt) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}
