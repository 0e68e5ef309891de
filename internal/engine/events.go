// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine is the Conversation Loop (CL): the per-turn algorithm
// that drives the Streaming Client, Incremental Parser, and Tool Executor,
// and the Event Bus (EB) that reports progress to a UI collaborator.
package engine

import "github.com/ezeoli88/agentic-conversation-engine/internal/model"

type EventKind int

const (
	EventStreamStart EventKind = iota
	EventReasoningDelta
	EventContentDelta
	EventToolCallSnapshot
	EventAssistantFinalized
	EventToolStart
	EventToolEnd
	EventTokenUsage
	EventSystemNotice
	EventError
	EventTurnDone
)

// Event is one element the Event Bus delivers to a UI collaborator. Only
// the fields relevant to Kind are populated.
type Event struct {
	Kind EventKind

	SessionID string

	Text string // ReasoningDelta / ContentDelta / SystemNotice

	ToolCall    model.ToolCall     // ToolStart
	ToolResult  string             // ToolEnd
	ToolErr     error              // ToolEnd
	ToolPreview *model.ToolPreview // ToolEnd

	Message model.Message // AssistantFinalized

	TokenTotal int // TokenUsage

	Err error // Error
}

// Bus is a single-reader fan-out of engine Events for one running turn. A
// fresh Bus is created per RunTurn call; the UI subscribes by draining
// Events until the channel closes.
type Bus struct {
	events chan Event
}

func newBus(buffer int) *Bus {
	return &Bus{events: make(chan Event, buffer)}
}

// Events returns the receive-only channel of Events for this turn.
func (b *Bus) Events() <-chan Event { return b.events }

func (b *Bus) emit(e Event) { b.events <- e }

func (b *Bus) close() { close(b.events) }
