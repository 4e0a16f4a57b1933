// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm provides the HTTP client for streaming chat completions.
package llm

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Message represents a chat message in the conversation.
type Message struct {
	Role    string `json:"role"`    // "user", "assistant", "system"
	Content string `json:"content"` // The message content
}

// ChatRequest is the request body for the /api/chat endpoint.
type ChatRequest struct {
	Model    string    `json:"model"`             // Model name (e.g., "qwen2.5-coder:14b")
	Messages []Message `json:"messages"`          // Conversation history
	Stream   bool      `json:"stream"`            // Enable streaming
	Options  *Options  `json:"options,omitempty"` // Model parameters
	Tools    []Tool    `json:"tools,omitempty"`   // Available tools for function calling
}

// Tool represents a tool definition for function calling. Planning requests
// always send an empty tool set; the field exists for the wire format.
type Tool struct {
	Type     string     `json:"type"` // Always "function"
	Function ToolSchema `json:"function"`
}

// ToolSchema defines a tool's interface.
type ToolSchema struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Options contains model parameters for inference.
type Options struct {
	Temperature float64 `json:"temperature,omitempty"` // 0.0-2.0
	NumCtx      int     `json:"num_ctx,omitempty"`     // Context window size
}

// =============================================================================
// STREAM TYPES
// =============================================================================

// StreamChunk represents one incremental piece of a streaming response.
type StreamChunk struct {
	// Content is the text delta carried by this chunk
	Content string

	// Done is true on the final chunk of the stream
	Done bool

	// DoneReason reports why the stream ended (e.g., "stop", "length")
	DoneReason string

	// Model is the model that produced the chunk
	Model string

	// Error is set when the stream terminated abnormally. A chunk with a
	// non-nil Error is always the final chunk.
	Error error
}

// StreamCallback is called for each chunk received during streaming.
type StreamCallback func(chunk StreamChunk)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// APIError is the error body returned by the API on failure.
type APIError struct {
	Error string `json:"error"`
}

// ModelInfo describes a model available on the server.
type ModelInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}
