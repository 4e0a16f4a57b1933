// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package contextset gathers task context for planning requests.
//
// A Set is an insertion-ordered collection of context entries keyed by
// identifier: the primary artifact the task concerns plus any additionally
// named files. Duplicate and unreadable paths are silently skipped.
//
// # Key Types
//
//   - Entry: One piece of context (content plus optional source handle)
//   - Set: Insertion-ordered identifier -> Entry collection
//   - Collector: Builds a Set from a primary artifact and extra paths
//   - FileReader: The file-read collaborator interface
package contextset
