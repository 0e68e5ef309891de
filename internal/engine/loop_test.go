// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ezeoli88/agentic-conversation-engine/internal/history"
	"github.com/ezeoli88/agentic-conversation-engine/internal/llm"
	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

type staticPrompts struct{ prompt string }

func (p staticPrompts) SystemPrompt(model.Mode) string { return p.prompt }

type fakeTools struct {
	calls int32
}

func (f *fakeTools) Execute(_ context.Context, call model.ToolCall, _ model.Mode) (string, *model.ToolPreview, error) {
	atomic.AddInt32(&f.calls, 1)
	return fmt.Sprintf("ran %s", call.Name), nil, nil
}

func (f *fakeTools) Specs(model.Mode) []llm.Tool { return nil }

// newTestEngine spins up an httptest SSE server that returns bodies[0] on
// the first request, and bodies[len(bodies)-1] on every request after --
// letting a test simulate a tool-call round followed by a final answer.
func newTestEngine(t *testing.T, bodies ...string) (*Engine, *fakeTools) {
	t.Helper()
	var reqCount int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&reqCount, 1)
		idx := int(n) - 1
		if idx >= len(bodies) {
			idx = len(bodies) - 1
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(bodies[idx]))
	}))
	t.Cleanup(server.Close)

	client := llm.New(llm.Config{BaseURL: server.URL, APIKey: "test-key"})
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	tools := &fakeTools{}
	eng := New(client, tools, store, staticPrompts{prompt: "system prompt"}, nil)
	require.NoError(t, eng.StartSession(context.Background(), "minimax-m2"))
	return eng, tools
}

func drain(bus *Bus) []Event {
	var out []Event
	for e := range bus.Events() {
		out = append(out, e)
	}
	return out
}

func TestRunTurnNoToolCallsReachesTurnDone(t *testing.T) {
	body := `data: {"choices":[{"delta":{"content":"Hello there"}}]}` + "\n\n" +
		`data: {"choices":[{"delta":{},"finish_reason":"stop"}],"usage":{"total_tokens":42}}` + "\n\n" +
		"data: [DONE]\n\n"

	eng, _ := newTestEngine(t, body)
	bus := eng.RunTurn(context.Background(), "hi", nil)
	events := drain(bus)

	var sawTurnDone, sawFinalized bool
	for _, e := range events {
		if e.Kind == EventTurnDone {
			sawTurnDone = true
		}
		if e.Kind == EventAssistantFinalized {
			sawFinalized = true
			require.Equal(t, "Hello there", e.Message.Content)
		}
	}
	require.True(t, sawTurnDone)
	require.True(t, sawFinalized)
}

func TestRunTurnExecutesToolCallThenLoops(t *testing.T) {
	toolCallBody := `data: {"choices":[{"delta":{"tool_calls":[{"index":0,"id":"c1","function":{"name":"glob","arguments":"{}"}}]}}]}` + "\n\n" +
		`data: {"choices":[{"delta":{},"finish_reason":"tool_calls"}],"usage":{"total_tokens":10}}` + "\n\n" +
		"data: [DONE]\n\n"
	finalBody := `data: {"choices":[{"delta":{"content":"done"}}]}` + "\n\n" +
		`data: {"choices":[{"delta":{},"finish_reason":"stop"}],"usage":{"total_tokens":20}}` + "\n\n" +
		"data: [DONE]\n\n"

	eng, tools := newTestEngine(t, toolCallBody, finalBody)
	bus := eng.RunTurn(context.Background(), "list files", nil)
	events := drain(bus)

	var sawToolStart, sawToolEnd bool
	for _, e := range events {
		if e.Kind == EventToolStart {
			sawToolStart = true
			require.Equal(t, "glob", e.ToolCall.Name)
		}
		if e.Kind == EventToolEnd {
			sawToolEnd = true
		}
	}
	require.True(t, sawToolStart)
	require.True(t, sawToolEnd)
	require.GreaterOrEqual(t, int(atomic.LoadInt32(&tools.calls)), 1)
}

func TestRunTurnPersistsMessagesToHistoryStore(t *testing.T) {
	body := `data: {"choices":[{"delta":{"content":"ack"}}]}` + "\n\n" +
		`data: {"choices":[{"delta":{},"finish_reason":"stop"}],"usage":{"total_tokens":5}}` + "\n\n" +
		"data: [DONE]\n\n"

	eng, _ := newTestEngine(t, body)
	drain(eng.RunTurn(context.Background(), "hello", nil))

	sess := eng.CurrentSession()
	loaded, err := eng.store.LoadTranscript(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 2)
	require.Equal(t, model.RoleUser, loaded.Messages[0].Role)
	require.Equal(t, model.RoleAssistant, loaded.Messages[1].Role)
}

func TestRunTurnCancelMidStreamFinalizesPlainContentNoToolRun(t *testing.T) {
	// Mirrors what llm.Client.processStream now emits for a mid-read
	// cancellation: whatever content had already arrived, plus a
	// tool-call delta that never got to close, followed by Done with
	// FinishReason "cancelled" instead of an Error event.
	body := `data: {"choices":[{"delta":{"content":"Par"}}]}` + "\n\n" +
		`data: {"choices":[{"delta":{"tool_calls":[{"index":0,"id":"c1","function":{"name":"glob","arguments":"{\"pat"}}]}}]}` + "\n\n" +
		`data: {"choices":[{"delta":{},"finish_reason":"cancelled"}],"usage":{"total_tokens":7}}` + "\n\n" +
		"data: [DONE]\n\n"

	eng, tools := newTestEngine(t, body)
	bus := eng.RunTurn(context.Background(), "hi", nil)
	events := drain(bus)

	var finalized *model.Message
	for i := range events {
		if events[i].Kind == EventAssistantFinalized {
			finalized = &events[i].Message
		}
		require.NotEqual(t, EventToolStart, events[i].Kind)
	}
	require.NotNil(t, finalized)
	require.Equal(t, "Par", finalized.Content)
	require.Empty(t, finalized.ToolCalls)
	require.Equal(t, int32(0), atomic.LoadInt32(&tools.calls))

	sess := eng.CurrentSession()
	loaded, err := eng.store.LoadTranscript(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 2)
	require.Equal(t, model.RoleAssistant, loaded.Messages[1].Role)
}

func TestRunTurnStreamErrorSynthesizesFailedToolResult(t *testing.T) {
	// A tool-call delta closes, then the transport reports an upstream
	// error before Done -- the finalized Assistant message still carries
	// the tool-call, so its ToolResult must be synthesized rather than
	// left unresolved.
	body := `data: {"choices":[{"delta":{"tool_calls":[{"index":0,"id":"c1","function":{"name":"glob","arguments":"{}"}}]}}]}` + "\n\n" +
		`data: {"error":{"message":"upstream exploded"}}` + "\n\n"

	eng, tools := newTestEngine(t, body)
	bus := eng.RunTurn(context.Background(), "list files", nil)
	events := drain(bus)

	var sawError bool
	for _, e := range events {
		if e.Kind == EventError {
			sawError = true
		}
		require.NotEqual(t, EventToolStart, e.Kind)
	}
	require.True(t, sawError)
	require.Equal(t, int32(0), atomic.LoadInt32(&tools.calls))

	sess := eng.CurrentSession()
	loaded, err := eng.store.LoadTranscript(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 3)
	require.Equal(t, model.RoleAssistant, loaded.Messages[1].Role)
	require.Len(t, loaded.Messages[1].ToolCalls, 1)
	require.Equal(t, model.RoleTool, loaded.Messages[2].Role)
	require.Equal(t, "c1", loaded.Messages[2].ToolCallID)
	require.Contains(t, loaded.Messages[2].Content, "stream failed before this tool could run")

	require.Empty(t, loaded.PendingToolResults())
}

func TestRunTurnRetitlesSessionFromFirstMessage(t *testing.T) {
	body := `data: {"choices":[{"delta":{"content":"ack"}}]}` + "\n\n" +
		`data: {"choices":[{"delta":{},"finish_reason":"stop"}]}` + "\n\n" +
		"data: [DONE]\n\n"

	eng, _ := newTestEngine(t, body)
	drain(eng.RunTurn(context.Background(), "what is the capital of France", nil))

	sess := eng.CurrentSession()
	require.Equal(t, "what is the capital of France", sess.DisplayName)
}
