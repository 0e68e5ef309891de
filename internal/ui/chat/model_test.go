// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ezeoli88/agentic-conversation-engine/internal/engine"
	"github.com/ezeoli88/agentic-conversation-engine/internal/history"
	"github.com/ezeoli88/agentic-conversation-engine/internal/llm"
	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

type staticPrompts struct{}

func (staticPrompts) SystemPrompt(model.Mode) string { return "system prompt" }

type noopTools struct{}

func (noopTools) Execute(context.Context, model.ToolCall, model.Mode) (string, *model.ToolPreview, error) {
	return "", nil, nil
}

func (noopTools) Specs(model.Mode) []llm.Tool { return nil }

func newTestEngine(t *testing.T) (*engine.Engine, *history.Store) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := llm.New(llm.Config{BaseURL: server.URL, APIKey: "test-key"})
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	eng := engine.New(client, noopTools{}, store, staticPrompts{}, nil)
	require.NoError(t, eng.StartSession(context.Background(), "minimax-m2"))
	return eng, store
}

func TestNewShowsWelcomeForFreshSession(t *testing.T) {
	eng, _ := newTestEngine(t)
	m := New(context.Background(), eng)

	if !m.showWelcome {
		t.Error("New() on a fresh session should show the welcome screen")
	}
	if len(m.messages) != 0 {
		t.Errorf("New() on a fresh session should have no seeded messages, got %d", len(m.messages))
	}
}

func TestNewSeedsTranscriptOnResume(t *testing.T) {
	eng, store := newTestEngine(t)
	sess := eng.CurrentSession()
	require.NoError(t, store.AppendMessage(context.Background(), model.NewUserMessage(sess.ID, "earlier question", nil)))
	require.NoError(t, eng.LoadSession(context.Background(), sess.ID))

	m := New(context.Background(), eng)
	if m.showWelcome {
		t.Error("New() resuming a session with history should not show the welcome screen")
	}
	if len(m.messages) != 1 {
		t.Fatalf("New() should seed the transcript, got %d messages", len(m.messages))
	}
	if m.messages[0].Content != "earlier question" {
		t.Errorf("seeded message content = %q, want %q", m.messages[0].Content, "earlier question")
	}
}

func TestInitFocusesInput(t *testing.T) {
	eng, _ := newTestEngine(t)
	m := New(context.Background(), eng)

	if cmd := m.Init(); cmd == nil {
		t.Error("Init() should return a non-nil command batch")
	}
}

func TestToComponentMode(t *testing.T) {
	if got := toComponentMode(model.ModePlan); got.String() != "PLAN" {
		t.Errorf("toComponentMode(ModePlan) = %v, want PLAN", got)
	}
	if got := toComponentMode(model.ModeBuilder); got.String() != "BUILDER" {
		t.Errorf("toComponentMode(ModeBuilder) = %v, want BUILDER", got)
	}
}
