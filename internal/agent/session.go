// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agent orchestrates a task from request to completion.
package agent

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/rigrun-agent/internal/contextset"
	"github.com/jeranaias/rigrun-agent/internal/plan"
)

// =============================================================================
// SESSION STATE
// =============================================================================

// State represents the current phase of a session.
type State int

const (
	// StateIdle - Session created but pipeline not yet started
	StateIdle State = iota

	// StatePlanning - Collecting context and streaming the planning request
	StatePlanning

	// StateAwaitingConfirm - Plan presented, waiting on the user decision
	StateAwaitingConfirm

	// StateRunning - Advancing through plan steps
	StateRunning

	// StateCompleted - Step sequence exhausted (terminal)
	StateCompleted

	// StateCancelled - User declined at the confirmation gate (terminal)
	StateCancelled

	// StateFailed - Planning failed (terminal)
	StateFailed
)

// String returns the string representation of a session state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlanning:
		return "Planning"
	case StateAwaitingConfirm:
		return "AwaitingConfirm"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	case StateCancelled:
		return "Cancelled"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal returns true if the state is terminal.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

// =============================================================================
// SESSION
// =============================================================================

// Session tracks one task's progress from request to completion. It is
// created by the Orchestrator, owned by the Run call that started it, and
// mutated by each pipeline phase in order.
type Session struct {
	id   string
	task string

	mu        sync.Mutex
	active    bool
	state     State
	context   *contextset.Set
	plan      *plan.Plan
	cursor    int // 1-based step cursor; monotonically increasing
	startedAt time.Time
}

// newSession creates an active session for a task with the cursor at 1.
func newSession(task string) *Session {
	return &Session{
		id:        uuid.New().String(),
		task:      task,
		active:    true,
		state:     StateIdle,
		cursor:    1,
		startedAt: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Task returns the original task description.
func (s *Session) Task() string {
	return s.task
}

// Active reports whether the session has not yet reached a terminal event.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cursor returns the 1-based step cursor.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Plan returns the parsed plan, or nil before planning completes.
func (s *Session) Plan() *plan.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// Context returns the collected context set, or nil before collection.
func (s *Session) Context() *contextset.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.context
}

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// setState transitions to a non-terminal state.
func (s *Session) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// setContext records the collected context set.
func (s *Session) setContext(set *contextset.Set) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.context = set
}

// setPlan records the parsed plan. Steps are populated once and never
// reordered.
func (s *Session) setPlan(p *plan.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = p
}

// nextStep returns the 1-based index and step under the cursor and advances
// the cursor by one. ok is false when the cursor is already past the last
// step; the cursor is then left unchanged.
func (s *Session) nextStep() (idx int, step plan.Step, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plan == nil || s.cursor > len(s.plan.Steps) {
		return 0, plan.Step{}, false
	}
	idx = s.cursor
	step = s.plan.Steps[s.cursor-1]
	s.cursor++
	return idx, step, true
}

// cancel clears the active flag without touching the cursor. Deferred
// cancellation: the next scheduled advance observes the flag and terminates.
func (s *Session) cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// terminate marks the session inactive in the given terminal state.
func (s *Session) terminate(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.state = state
}
