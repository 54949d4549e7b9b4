// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package ratelimit

import (
	"sync"
	"time"
)

// Window is the counter state of one identifier.
type Window struct {
	Count   int
	ResetAt time.Time
}

// Store holds fixed-window counters.
type Store interface {
	// Hit counts one request for key at now and returns the window it fell
	// into. A missing or expired window is replaced by a fresh one ending
	// at now+interval.
	Hit(key string, now time.Time, interval time.Duration) Window

	// Sweep removes windows that ended at or before now and reports how many
	// were removed.
	Sweep(now time.Time) int

	// Len returns the number of windows held.
	Len() int
}

// MemoryStore is a mutex-guarded in-process Store.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]Window
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]Window)}
}

// Hit implements Store.
func (s *MemoryStore) Hit(key string, now time.Time, interval time.Duration) Window {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || !now.Before(w.ResetAt) {
		w = Window{ResetAt: now.Add(interval)}
	}
	w.Count++
	s.windows[key] = w
	return w
}

// Sweep implements Store.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, w := range s.windows {
		if !now.Before(w.ResetAt) {
			delete(s.windows, key)
			removed++
		}
	}
	return removed
}

// Len implements Store.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}
