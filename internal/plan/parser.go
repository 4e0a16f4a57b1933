// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan turns a task description into an ordered sequence of steps.
package plan

import (
	"regexp"
	"strings"
)

// =============================================================================
// RESPONSE PARSER
// =============================================================================

// FallbackDescription is the single step emitted when a response contains no
// numbered lines.
const FallbackDescription = "Execute the plan"

// stepLineRe matches a numbered-list marker at line start: an integer, a
// period, and the rest of the line.
var stepLineRe = regexp.MustCompile(`^\s*\d+\.\s+(.+)$`)

// ParseSteps converts a model response into an ordered sequence of steps.
// It is a total function: every numbered line at line start becomes one step
// in appearance order, and a response with zero numbered lines (including
// the empty string) yields exactly one fallback step. Structured actions,
// file names, and commands are never recovered from the text; the FileEdits
// and Commands slots stay empty.
func ParseSteps(response string) []Step {
	var steps []Step

	for _, line := range strings.Split(response, "\n") {
		m := stepLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		steps = append(steps, Step{
			Description: strings.TrimSpace(m[1]),
			FileEdits:   []FileEdit{},
			Commands:    []Command{},
		})
	}

	if len(steps) == 0 {
		steps = append(steps, Step{
			Description: FallbackDescription,
			FileEdits:   []FileEdit{},
			Commands:    []Command{},
		})
	}

	return steps
}
