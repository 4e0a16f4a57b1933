// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools declares the capability registry a step-execution engine
// dispatches into.
//
// The orchestration core only enumerates these capabilities; it never
// invokes one. Each capability carries a risk level and a permission level
// so a future executor can decide when to prompt the user.
package tools
