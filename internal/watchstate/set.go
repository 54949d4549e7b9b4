// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

// Package watchstate models a user's watched titles and derives progress
// statistics from them.
package watchstate

import (
	"slices"

	"github.com/goccy/go-json"
)

// WatchedSet is a set of title ids. The zero value is an empty set ready to use.
// It is not safe for concurrent mutation.
type WatchedSet struct {
	ids map[string]struct{}
}

// NewSet returns a set holding ids.
func NewSet(ids ...string) WatchedSet {
	return FromSlice(ids)
}

// FromSlice builds a set from ids, dropping duplicates and empty strings.
func FromSlice(ids []string) WatchedSet {
	s := WatchedSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

// Contains reports whether id is in the set.
func (s WatchedSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of ids.
func (s WatchedSet) Len() int {
	return len(s.ids)
}

// Toggle adds id if absent and removes it otherwise. It reports whether id is
// in the set afterwards.
func (s *WatchedSet) Toggle(id string) bool {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Add inserts id.
func (s *WatchedSet) Add(id string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[id] = struct{}{}
}

// Union returns a new set holding the ids of s and other.
func (s WatchedSet) Union(other WatchedSet) WatchedSet {
	out := WatchedSet{ids: make(map[string]struct{}, len(s.ids)+len(other.ids))}
	for id := range s.ids {
		out.ids[id] = struct{}{}
	}
	for id := range other.ids {
		out.ids[id] = struct{}{}
	}
	return out
}

// Clone returns an independent copy.
func (s WatchedSet) Clone() WatchedSet {
	return s.Union(WatchedSet{})
}

// Equal reports whether both sets hold the same ids.
func (s WatchedSet) Equal(other WatchedSet) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// IDs returns the ids in ascending order.
func (s WatchedSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s WatchedSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON decodes an array, dropping duplicates.
func (s *WatchedSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = FromSlice(ids)
	return nil
}

// ReconcileOnLogin returns the set a client should hold after signing in.
// The account's server-held set replaces the anonymous local set outright.
func ReconcileOnLogin(_, server WatchedSet) WatchedSet {
	return server.Clone()
}
