// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan turns a task description into an ordered sequence of steps.
package plan

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// STEP
// =============================================================================

// FileEdit is a reserved extension point for a step-level file edit.
// The current planner never populates it.
type FileEdit struct {
	Path    string
	OldText string
	NewText string
}

// Command is a reserved extension point for a step-level terminal command.
// The current planner never populates it.
type Command struct {
	Command string
	Args    []string
}

// Step represents a single unit of a parsed plan. Steps are immutable after
// creation; execution advances on Description alone.
type Step struct {
	// Description is the human-readable text of the step
	Description string

	// FileEdits are reserved for a future step-execution engine
	FileEdits []FileEdit

	// Commands are reserved for a future step-execution engine
	Commands []Command
}

// =============================================================================
// PLAN
// =============================================================================

// Plan is a parsed, ordered sequence of steps for one task.
type Plan struct {
	// ID is a unique identifier for this plan
	ID string

	// Task is the user's original task description
	Task string

	// Steps are the parsed steps, in order of appearance. Never empty.
	Steps []Step

	// Response is the full accumulated model response the steps were
	// parsed from
	Response string

	// EstimatedTokens is the heuristic token estimate of the response
	EstimatedTokens int

	// CreatedAt is when the plan was parsed
	CreatedAt time.Time
}

// Progress renders a 1-based cursor as a progress string (e.g., "2/5").
func (p *Plan) Progress(cursor int) string {
	total := len(p.Steps)
	done := cursor - 1
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	return fmt.Sprintf("%d/%d", done, total)
}

// Body renders the plan as a numbered list for presentation to the user.
func (p *Plan) Body() string {
	var sb strings.Builder
	for i, step := range p.Steps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step.Description)
	}
	return sb.String()
}
