// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sched provides a single-worker scheduler for deferred continuations.
//
// The orchestrator advances through plan steps by scheduling the next
// advance as a delayed continuation rather than blocking between steps. The
// Runner drains the queue on one goroutine, so continuations run to
// completion one at a time in due order: cooperative, timer-deferred
// execution with no parallel workers.
//
// # Usage
//
//	queue := sched.NewQueue()
//	runner := sched.NewRunner(queue)
//	runner.Start()
//	defer runner.Stop()
//
//	queue.Schedule(time.Second, func() {
//	    // runs on the runner goroutine one second from now
//	})
package sched
