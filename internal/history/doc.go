// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists agent run history to SQLite.
//
// Every terminal session records one row: the task, the outcome, the number
// of plan steps, the response token estimate, and timing. The `rigrun-agent
// history` subcommand lists recent runs.
package history
