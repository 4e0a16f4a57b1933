// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agent orchestrates a task from request to completion.
//
// The Orchestrator drives the pipeline: collect context, stream a planning
// request, parse the response into steps, gate execution behind an explicit
// user confirmation, then advance through the steps one at a time on the
// scheduler. The Session tracks one task's progress through the pipeline.
//
// # State machine
//
//	Idle -> Planning -> AwaitingConfirm -> Running -> Completed
//	                 \-> Failed          \-> Cancelled
//
// The completion callback fires exactly once per session, on exactly one of
// planning failure, user cancellation, or step exhaustion.
//
// Cancellation during step execution is deferred: Cancel clears the
// session's active flag, and the next scheduled advance observes it and
// terminates. Only one session may be active at a time; starting a second
// returns ErrSessionActive.
package agent
