// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm provides the HTTP client for streaming chat completions from
// an Ollama-compatible local LLM API.
//
// # Key Types
//
//   - Client: HTTP client with health check and streaming chat
//   - StreamChunk: One incremental piece of a streaming response
//   - StreamReader: Line-by-line JSON parsing of the response stream
//   - StreamAccumulator: Collects chunks into the full response text
//   - ClientError: Typed error with a category for handling
//
// # Usage
//
// Stream a chat completion:
//
//	client := llm.NewClient()
//	err := client.ChatStream(ctx, "qwen2.5-coder:7b", messages, func(chunk llm.StreamChunk) {
//	    fmt.Print(chunk.Content)
//	})
//
// Accumulate the full response:
//
//	acc := llm.NewStreamAccumulator()
//	err := client.ChatStream(ctx, model, messages, acc.Add)
//	text := acc.Content()
package llm
