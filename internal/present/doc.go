// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package present renders a proposed plan in the terminal and collects the
// user's confirm/cancel decision.
//
// TerminalPresenter is the presentation collaborator consumed by the
// orchestrator: it receives a title, a body, and the two decision callbacks,
// and invokes exactly one of them exactly once.
package present
