// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package agent

import (
	"testing"

	"github.com/jeranaias/rigrun-agent/internal/plan"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StatePlanning, "Planning"},
		{StateAwaitingConfirm, "AwaitingConfirm"},
		{StateRunning, "Running"},
		{StateCompleted, "Completed"},
		{StateCancelled, "Cancelled"},
		{StateFailed, "Failed"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestStateTerminal(t *testing.T) {
	for _, s := range []State{StateIdle, StatePlanning, StateAwaitingConfirm, StateRunning} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []State{StateCompleted, StateCancelled, StateFailed} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestNewSession(t *testing.T) {
	s := newSession("add logging")

	if !s.Active() {
		t.Error("new session should be active")
	}
	if s.State() != StateIdle {
		t.Errorf("State = %s", s.State())
	}
	if s.Cursor() != 1 {
		t.Errorf("Cursor = %d, want 1", s.Cursor())
	}
	if s.Task() != "add logging" {
		t.Errorf("Task = %q", s.Task())
	}
	if s.ID() == "" {
		t.Error("session should get an ID")
	}
}

func TestNextStepAdvancesCursorOnce(t *testing.T) {
	s := newSession("task")
	s.setPlan(&plan.Plan{Steps: []plan.Step{
		{Description: "first"},
		{Description: "second"},
	}})

	idx, step, ok := s.nextStep()
	if !ok || idx != 1 || step.Description != "first" {
		t.Fatalf("nextStep = %d, %q, %v", idx, step.Description, ok)
	}
	if s.Cursor() != 2 {
		t.Errorf("Cursor = %d, want 2", s.Cursor())
	}

	idx, step, ok = s.nextStep()
	if !ok || idx != 2 || step.Description != "second" {
		t.Fatalf("nextStep = %d, %q, %v", idx, step.Description, ok)
	}

	// Exhausted: cursor is past the last step and stays put.
	if _, _, ok := s.nextStep(); ok {
		t.Error("nextStep should report exhaustion")
	}
	if s.Cursor() != 3 {
		t.Errorf("Cursor = %d, want len(steps)+1 = 3", s.Cursor())
	}
}

func TestNextStepWithoutPlan(t *testing.T) {
	s := newSession("task")
	if _, _, ok := s.nextStep(); ok {
		t.Error("nextStep should fail before a plan is set")
	}
	if s.Cursor() != 1 {
		t.Errorf("Cursor = %d, want 1", s.Cursor())
	}
}

func TestCancelLeavesCursor(t *testing.T) {
	s := newSession("task")
	s.setPlan(&plan.Plan{Steps: []plan.Step{{Description: "a"}, {Description: "b"}}})
	s.nextStep()

	s.cancel()
	if s.Active() {
		t.Error("cancel should clear active")
	}
	if s.Cursor() != 2 {
		t.Errorf("cancel must not touch the cursor, got %d", s.Cursor())
	}
}

func TestTerminate(t *testing.T) {
	s := newSession("task")
	s.terminate(StateFailed)

	if s.Active() {
		t.Error("terminated session should be inactive")
	}
	if s.State() != StateFailed {
		t.Errorf("State = %s", s.State())
	}
}
