// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateSessionAndGetRoundTrips(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	sess := model.NewSession("minimax-m2")
	require.NoError(t, s.CreateSession(ctx, sess))

	got, err := s.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, sess.DisplayName, got.DisplayName)
	require.Equal(t, sess.ModelName, got.ModelName)
}

func TestGetSessionMissingReturnsErrSessionNotFound(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.GetSession(ctx, "nonexistent")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAppendMessageTouchesSessionUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	sess := model.NewSession("minimax-m2")
	require.NoError(t, s.CreateSession(ctx, sess))
	before, err := s.GetSession(ctx, sess.ID)
	require.NoError(t, err)

	msg := model.NewUserMessage(sess.ID, "hello", nil)
	msg.CreatedAt = before.UpdatedAt.Add(time.Hour)
	require.NoError(t, s.AppendMessage(ctx, msg))

	after, err := s.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	require.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestLoadTranscriptPreservesOrderAndToolCalls(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	sess := model.NewSession("minimax-m2")
	require.NoError(t, s.CreateSession(ctx, sess))

	tr := model.NewTranscript(sess.ID)
	user := tr.Append(model.NewUserMessage(sess.ID, "list files", nil))
	require.NoError(t, s.AppendMessage(ctx, user))

	asst := model.NewStreamingAssistantMessage(sess.ID)
	asst.FinalizeStream("", "", []model.ToolCall{{ID: "c1", Name: "glob", Arguments: `{"pattern":"*.go"}`}}, nil)
	appended := tr.Append(*asst)
	require.NoError(t, s.AppendMessage(ctx, appended))

	result := tr.Append(model.NewToolResultMessage(sess.ID, "c1", "glob", "[]", nil))
	require.NoError(t, s.AppendMessage(ctx, result))

	loaded, err := s.LoadTranscript(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 3)
	require.Equal(t, model.RoleUser, loaded.Messages[0].Role)
	require.Equal(t, model.RoleAssistant, loaded.Messages[1].Role)
	require.Len(t, loaded.Messages[1].ToolCalls, 1)
	require.Equal(t, "glob", loaded.Messages[1].ToolCalls[0].Name)
	require.Equal(t, model.RoleTool, loaded.Messages[2].Role)
	require.Equal(t, int64(3), loaded.NextSeq())
}

func TestListSessionsOrdersByUpdatedAtDescending(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	older := model.NewSession("m1")
	require.NoError(t, s.CreateSession(ctx, older))

	newer := model.NewSession("m2")
	newer.CreatedAt = older.CreatedAt.Add(time.Minute)
	newer.UpdatedAt = newer.CreatedAt
	require.NoError(t, s.CreateSession(ctx, newer))

	sessions, err := s.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, newer.ID, sessions[0].ID)
}

func TestDeleteSessionCascadesMessages(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	sess := model.NewSession("minimax-m2")
	require.NoError(t, s.CreateSession(ctx, sess))
	require.NoError(t, s.AppendMessage(ctx, model.NewUserMessage(sess.ID, "hi", nil)))

	require.NoError(t, s.DeleteSession(ctx, sess.ID))

	_, err := s.GetSession(ctx, sess.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)

	loaded, err := s.LoadTranscript(ctx, sess.ID)
	require.NoError(t, err)
	require.Empty(t, loaded.Messages)
}
