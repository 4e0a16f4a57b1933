// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan turns a task description into an ordered sequence of steps.
package plan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/rigrun-agent/internal/contextset"
	"github.com/jeranaias/rigrun-agent/internal/llm"
)

// =============================================================================
// STREAM CLIENT INTERFACE
// =============================================================================

// StreamClient is the LLM transport collaborator consumed by the Requester.
type StreamClient interface {
	// ChatStreamWithTools sends a streaming chat request and calls the
	// callback for each chunk until the final chunk arrives.
	ChatStreamWithTools(ctx context.Context, model string, messages []llm.Message, tools []llm.Tool, callback llm.StreamCallback) error
}

// =============================================================================
// PROMPTS
// =============================================================================

// systemPrompt is the planning system instruction.
const systemPrompt = `You are an expert planning assistant. Given a task and the relevant files, produce a short, concrete plan as a numbered list. One step per line, each line starting with the step number and a period. Do not include anything except the numbered steps.`

// BuildUserPrompt renders the task description followed by every context
// entry as its identifier plus a fenced content block, in the set's
// iteration order.
func BuildUserPrompt(task string, set *contextset.Set) string {
	var sb strings.Builder
	sb.WriteString("Task: ")
	sb.WriteString(task)
	sb.WriteString("\n")

	if set != nil && set.Len() > 0 {
		sb.WriteString("\nContext:\n")
		set.Each(func(id string, entry contextset.Entry) {
			sb.WriteString("\n")
			sb.WriteString(id)
			sb.WriteString("\n```\n")
			sb.WriteString(entry.Content)
			if !strings.HasSuffix(entry.Content, "\n") {
				sb.WriteString("\n")
			}
			sb.WriteString("```\n")
		})
	}

	return sb.String()
}

// =============================================================================
// REQUESTER
// =============================================================================

// Requester submits planning requests and parses the streamed response.
type Requester struct {
	client StreamClient
	model  string

	// maxSteps caps the number of parsed steps kept (0 = unlimited)
	maxSteps int
}

// NewRequester creates a requester over the given transport.
func NewRequester(client StreamClient, model string) *Requester {
	return &Requester{client: client, model: model}
}

// SetMaxSteps caps the number of steps accepted from a parsed plan.
func (r *Requester) SetMaxSteps(n int) {
	r.maxSteps = n
}

// RequestPlan builds the planning prompt for task and its context set,
// streams the request, and parses the accumulated response into a Plan.
//
// onChunk, when non-nil, observes each streamed text delta. Stream failure
// is fail-fast: the error is returned immediately, no retry is attempted,
// and no partial plan is salvaged.
func (r *Requester) RequestPlan(ctx context.Context, task string, set *contextset.Set, onChunk func(string)) (*Plan, error) {
	if r.client == nil {
		return nil, fmt.Errorf("stream client not configured")
	}

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: BuildUserPrompt(task, set)},
	}

	acc := llm.NewStreamAccumulator()
	// The planning call itself never invokes tools.
	err := r.client.ChatStreamWithTools(ctx, r.model, messages, nil, func(chunk llm.StreamChunk) {
		acc.Add(chunk)
		if onChunk != nil && chunk.Content != "" {
			onChunk(chunk.Content)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("planning request failed: %w", err)
	}
	if serr := acc.Err(); serr != nil {
		return nil, fmt.Errorf("planning stream failed: %w", serr)
	}

	response := acc.Content()
	steps := ParseSteps(response)
	if r.maxSteps > 0 && len(steps) > r.maxSteps {
		steps = steps[:r.maxSteps]
	}

	return &Plan{
		ID:              uuid.New().String(),
		Task:            task,
		Steps:           steps,
		Response:        response,
		EstimatedTokens: acc.EstimatedTokens(),
		CreatedAt:       time.Now(),
	}, nil
}
