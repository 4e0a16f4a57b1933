// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package contextset gathers task context for planning requests.
package contextset

import (
	"os"
)

// =============================================================================
// FILE READER COLLABORATOR
// =============================================================================

// FileReader is the file-read collaborator consumed by the Collector.
type FileReader interface {
	// Exists reports whether the path names a readable regular file.
	Exists(path string) bool

	// ReadAll returns the full content of the file at path.
	ReadAll(path string) (string, error)
}

// OSFileReader reads files from the local filesystem with a size cap.
type OSFileReader struct {
	// MaxFileSize is the largest file ReadAll will return, in bytes
	// (0 = DefaultMaxFileSize).
	MaxFileSize int64
}

// DefaultMaxFileSize caps context files at 100KB.
const DefaultMaxFileSize = 100 * 1024

// Exists reports whether path names a regular file within the size cap.
func (r OSFileReader) Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !info.Mode().IsRegular() {
		return false
	}
	return info.Size() <= r.maxSize()
}

// ReadAll returns the file content.
func (r OSFileReader) ReadAll(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r OSFileReader) maxSize() int64 {
	if r.MaxFileSize > 0 {
		return r.MaxFileSize
	}
	return DefaultMaxFileSize
}

// =============================================================================
// PRIMARY ARTIFACT
// =============================================================================

// Artifact is the currently-focused artifact a task concerns: its
// identifier, live content, and an opaque handle back to the host.
type Artifact struct {
	ID      string
	Content string
	Handle  any
}

// =============================================================================
// COLLECTOR
// =============================================================================

// Collector builds a context Set from a primary artifact and additionally
// named paths.
type Collector struct {
	reader FileReader
}

// NewCollector creates a collector over the given file-read collaborator.
func NewCollector(reader FileReader) *Collector {
	return &Collector{reader: reader}
}

// Collect gathers the primary artifact and every readable extra path into a
// new Set. The primary artifact, when present, is always included first,
// with its handle recorded. Extra paths are included only if they exist and
// do not duplicate an already-collected identifier; unreadable or duplicate
// paths are silently skipped. Nothing is ever written.
func (c *Collector) Collect(primary *Artifact, extraPaths []string) *Set {
	set := NewSet()

	if primary != nil {
		set.Add(primary.ID, Entry{
			Content: primary.Content,
			Handle:  primary.Handle,
		})
	}

	for _, path := range extraPaths {
		if _, exists := set.Get(path); exists {
			continue
		}
		if !c.reader.Exists(path) {
			continue
		}
		content, err := c.reader.ReadAll(path)
		if err != nil {
			continue
		}
		set.Add(path, Entry{Content: content})
	}

	return set
}
