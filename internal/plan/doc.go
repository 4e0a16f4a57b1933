// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan turns a task description into an ordered sequence of steps.
//
// The Requester builds a planning prompt from the task and its context set,
// submits it as a streaming request to the LLM, and accumulates the streamed
// text into a complete response. The parser then extracts numbered-list
// lines into discrete steps; a response with no numbered lines yields a
// single fallback step, so a parsed plan is never empty.
//
// # Key Types
//
//   - Plan: Parsed plan with steps, response text, and token estimate
//   - Step: One unit of the plan with reserved file-edit/command slots
//   - Requester: Streams the planning request and parses the response
//
// # Usage
//
//	requester := plan.NewRequester(client, "qwen2.5-coder:14b")
//	p, err := requester.RequestPlan(ctx, "add logging", set, nil)
//	for i, step := range p.Steps {
//	    fmt.Printf("%d. %s\n", i+1, step.Description)
//	}
package plan
