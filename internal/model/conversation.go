// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSessionName is the synthetic default name assigned to a session
// until the first user message retitles it. HS uses presence of this exact
// string, not a schema flag, to detect "not yet renamed".
const DefaultSessionName = "New Session"

// SessionTitleLength is how many characters of the first user message
// become the session's display name.
const SessionTitleLength = 50

// Session is {id, display-name, model-name, created-at, updated-at}.
// Exactly one session is "current" per engine instance.
type Session struct {
	ID          string
	DisplayName string
	ModelName   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSession creates a session with the synthetic default name.
func NewSession(modelName string) Session {
	now := time.Now()
	return Session{
		ID:          uuid.NewString(),
		DisplayName: DefaultSessionName,
		ModelName:   modelName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// RetitleFromFirstMessage renames the session to the first 50 characters of
// content, newlines collapsed to spaces, if it still carries the default
// name. Returns true if it retitled.
func (s *Session) RetitleFromFirstMessage(content string) bool {
	if s.DisplayName != DefaultSessionName {
		return false
	}
	s.DisplayName = Preview(content, SessionTitleLength)
	return true
}

// Transcript is the in-memory, ordered message history for one session,
// mirrored append-for-append into the history store.
type Transcript struct {
	SessionID string
	Messages  []Message
	nextSeq   int64
}

// NewTranscript creates an empty transcript for a session.
func NewTranscript(sessionID string) *Transcript {
	return &Transcript{SessionID: sessionID}
}

// Append assigns the next dense sequence number and appends the message.
func (t *Transcript) Append(m Message) Message {
	m.SessionID = t.SessionID
	m.Seq = t.nextSeq
	t.nextSeq++
	t.Messages = append(t.Messages, m)
	return m
}

// Last returns the last message, or the zero value and false if empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.Messages) == 0 {
		return Message{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}

// PendingToolResults returns the tool-call ids from the most recent
// Assistant message that do not yet have a matching ToolResult -- used to
// synthesize failed results when a turn terminates early, preserving
// invariant 3 (every ToolCall eventually gets a ToolResult before the next
// Assistant message).
func (t *Transcript) PendingToolResults() []ToolCall {
	lastIdx := -1
	for i := len(t.Messages) - 1; i >= 0; i-- {
		if t.Messages[i].Role == RoleAssistant {
			lastIdx = i
			break
		}
	}
	if lastIdx == -1 || len(t.Messages[lastIdx].ToolCalls) == 0 {
		return nil
	}
	have := make(map[string]bool)
	for i := len(t.Messages) - 1; i > lastIdx; i-- {
		if t.Messages[i].Role == RoleTool {
			have[t.Messages[i].ToolCallID] = true
		}
	}
	var pending []ToolCall
	for _, tc := range t.Messages[lastIdx].ToolCalls {
		if !have[tc.ID] {
			pending = append(pending, tc)
		}
	}
	return pending
}

// NextSeq returns the sequence number the next Append will assign.
func (t *Transcript) NextSeq() int64 { return t.nextSeq }

// SetNextSeq overrides the next sequence number to assign, used by the
// history store when rehydrating a transcript from persisted rows.
func (t *Transcript) SetNextSeq(n int64) { t.nextSeq = n }

// RequestMessage is the shape sent to the LLM API: role + content, plus the
// assistant-only tool_calls and tool-only tool_call_id/name fields.
type RequestMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// ToRequestMessages converts the transcript to request messages, prepending
// a freshly computed System message. Per invariant 5, the persisted history
// never contains the System message -- it is recomputed on every call.
func (t *Transcript) ToRequestMessages(systemPrompt string) []RequestMessage {
	out := make([]RequestMessage, 0, len(t.Messages)+1)
	out = append(out, RequestMessage{Role: string(RoleSystem), Content: systemPrompt})
	for _, m := range t.Messages {
		switch m.Role {
		case RoleUser:
			out = append(out, RequestMessage{Role: string(RoleUser), Content: m.Content})
		case RoleAssistant:
			out = append(out, RequestMessage{Role: string(RoleAssistant), Content: m.Content, ToolCalls: m.ToolCalls})
		case RoleTool:
			out = append(out, RequestMessage{Role: string(RoleTool), Content: m.Content, ToolCallID: m.ToolCallID, Name: m.ToolName})
		}
	}
	return out
}
