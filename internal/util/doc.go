// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions shared across rigrun-agent.
//
// # Key Functions
//
//   - TruncateRunes: Rune-aware string truncation safe for UTF-8
//   - ExpandHome: Expands a leading ~ to the user home directory
//   - AtomicWriteFile: Crash-safe file writes via temp file + rename
package util
