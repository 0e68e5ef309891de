// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm implements the Streaming Client: an HTTPS POST + Server-Sent
// Event transport for a single configured LLM endpoint, decoding OpenAI-
// style delta chunks into an ordered event sequence.
package llm

import (
	"encoding/json"

	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

// Tool is the wire shape of a tool schema sent in the request body's
// "tools" array.
type Tool struct {
	Type     string       `json:"type"` // always "function"
	Function ToolFunction `json:"function"`
}

// ToolFunction is the name/description/parameters triple for one tool.
type ToolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ChatRequest is the JSON body of a streaming chat completions request.
type ChatRequest struct {
	Model       string                 `json:"model"`
	Messages    []model.RequestMessage `json:"messages"`
	Stream      bool                   `json:"stream"`
	Temperature float64                `json:"temperature"`
	Tools       []Tool                 `json:"tools,omitempty"`
	ToolChoice  string                 `json:"tool_choice,omitempty"`
}

// deltaToolCall is one element of choices[0].delta.tool_calls.
type deltaToolCall struct {
	Index    int    `json:"index"`
	ID       string `json:"id,omitempty"`
	Function struct {
		Name      string `json:"name,omitempty"`
		Arguments string `json:"arguments,omitempty"`
	} `json:"function"`
}

// reasoningDetail is one element of choices[0].delta.reasoning_details.
// It unmarshals into Raw first so every field the server sent survives for
// history's opaque-blob echo, then Text is pulled out of Raw for the
// ReasoningChunk event text.
type reasoningDetail struct {
	Text string
	Raw  map[string]any
}

func (r *reasoningDetail) UnmarshalJSON(b []byte) error {
	if err := json.Unmarshal(b, &r.Raw); err != nil {
		return err
	}
	if t, ok := r.Raw["text"].(string); ok {
		r.Text = t
	}
	return nil
}

// streamChunk is the JSON shape of one SSE data payload.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content          string          `json:"content,omitempty"`
			ReasoningContent string          `json:"reasoning_content,omitempty"`
			ReasoningDetails []reasoningDetail `json:"reasoning_details,omitempty"`
			ToolCalls        []deltaToolCall `json:"tool_calls,omitempty"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason,omitempty"`
	} `json:"choices"`
	Usage *Usage `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type,omitempty"`
	} `json:"error,omitempty"`
}

// Usage is the cumulative token accounting reported by the server.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// QuotaResponse is the shape of GET /coding_plan/remains.
type QuotaResponse struct {
	ModelRemains []struct {
		CurrentIntervalTotalCount int   `json:"current_interval_total_count"`
		CurrentIntervalUsageCount int   `json:"current_interval_usage_count"`
		RemainsTimeMS             int64 `json:"remains_time_ms"`
	} `json:"model_remains"`
}
