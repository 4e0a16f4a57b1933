// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package contextset gathers task context for planning requests.
package contextset

// =============================================================================
// ENTRY
// =============================================================================

// Entry represents one piece of collected context. Entries are created once
// during collection and never mutated afterward.
type Entry struct {
	// Content is the text of the artifact at collection time
	Content string

	// Handle is an opaque reference to the live artifact, present when the
	// entry was collected from an open editable artifact rather than a
	// read-only file snapshot.
	Handle any
}

// Snapshot reports whether the entry is a read-only file snapshot
// (no live handle).
func (e Entry) Snapshot() bool {
	return e.Handle == nil
}

// =============================================================================
// SET
// =============================================================================

// Set is an insertion-ordered collection of context entries keyed by
// identifier. Iteration order is the order entries were added, which keeps
// prompt rendering deterministic.
type Set struct {
	ids     []string
	entries map[string]Entry
}

// NewSet creates an empty context set.
func NewSet() *Set {
	return &Set{
		entries: make(map[string]Entry),
	}
}

// Add inserts an entry under the given identifier. Returns false if an
// entry with that identifier already exists; the set is unchanged.
func (s *Set) Add(id string, entry Entry) bool {
	if _, exists := s.entries[id]; exists {
		return false
	}
	s.ids = append(s.ids, id)
	s.entries[id] = entry
	return true
}

// Get returns the entry for an identifier.
func (s *Set) Get(id string) (Entry, bool) {
	e, ok := s.entries[id]
	return e, ok
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.ids)
}

// IDs returns the identifiers in insertion order.
func (s *Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Each calls fn for every entry in insertion order.
func (s *Set) Each(fn func(id string, entry Entry)) {
	for _, id := range s.ids {
		fn(id, s.entries[id])
	}
}
