// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranscriptAppendAssignsDenseSeq(t *testing.T) {
	tr := NewTranscript("sess-1")
	a := tr.Append(NewUserMessage("sess-1", "hi", nil))
	b := tr.Append(NewToolResultMessage("sess-1", "c1", "glob", "ok", nil))
	require.Equal(t, int64(0), a.Seq)
	require.Equal(t, int64(1), b.Seq)
}

func TestRetitleFromFirstMessageOnlyOnce(t *testing.T) {
	s := NewSession("model-x")
	require.True(t, s.RetitleFromFirstMessage("Hello\nworld, please help me with this very long question that exceeds fifty characters total"))
	require.Len(t, []rune(s.DisplayName), SessionTitleLength)
	require.NotContains(t, s.DisplayName, "\n")

	before := s.DisplayName
	require.False(t, s.RetitleFromFirstMessage("second message"))
	require.Equal(t, before, s.DisplayName)
}

func TestPendingToolResultsDetectsUnresolvedCalls(t *testing.T) {
	tr := NewTranscript("sess-1")
	tr.Append(NewUserMessage("sess-1", "list files", nil))
	asst := NewStreamingAssistantMessage("sess-1")
	asst.FinalizeStream("", "", []ToolCall{{ID: "c1", Name: "glob", Arguments: "{}"}}, nil)
	tr.Append(*asst)

	pending := tr.PendingToolResults()
	require.Len(t, pending, 1)
	require.Equal(t, "c1", pending[0].ID)

	tr.Append(NewToolResultMessage("sess-1", "c1", "glob", "[]", nil))
	require.Empty(t, tr.PendingToolResults())
}

func TestToRequestMessagesRecomputesSystemEachCall(t *testing.T) {
	tr := NewTranscript("sess-1")
	tr.Append(NewUserMessage("sess-1", "hi", nil))

	a := tr.ToRequestMessages("prompt A")
	b := tr.ToRequestMessages("prompt B")

	require.Equal(t, "prompt A", a[0].Content)
	require.Equal(t, "prompt B", b[0].Content)
	require.Equal(t, string(RoleSystem), a[0].Role)
}
