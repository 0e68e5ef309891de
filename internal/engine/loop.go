// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ezeoli88/agentic-conversation-engine/internal/history"
	"github.com/ezeoli88/agentic-conversation-engine/internal/llm"
	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
	"github.com/ezeoli88/agentic-conversation-engine/internal/obslog"
	"github.com/ezeoli88/agentic-conversation-engine/internal/parser"
)

const (
	SoftTokenBudget = 180_000
	HardTokenBudget = 200_000

	truncationNoticeBytes = 500
)

// ToolExecutor is the Tool Executor (TE) seam the loop dispatches through,
// satisfied by internal/tools.Registry.
type ToolExecutor interface {
	Execute(ctx context.Context, call model.ToolCall, mode model.Mode) (content string, preview *model.ToolPreview, err error)
	Specs(mode model.Mode) []llm.Tool
}

// PromptBuilder supplies the system prompt for the current mode, recomputed
// fresh on every SC call per invariant 5.
type PromptBuilder interface {
	SystemPrompt(mode model.Mode) string
}

// Engine is the Conversation Loop (CL): it owns the current session and
// transcript and drives SC -> IP -> TE -> SC until a turn reaches a
// terminal state.
type Engine struct {
	client  *llm.Client
	tools   ToolExecutor
	store   *history.Store
	prompts PromptBuilder
	log     *obslog.Logger

	mu         sync.Mutex
	mode       model.Mode
	session    model.Session
	transcript *model.Transcript
	totalUsed  int
	warnedSoft bool
}

func New(client *llm.Client, tools ToolExecutor, store *history.Store, prompts PromptBuilder, log *obslog.Logger) *Engine {
	if log == nil {
		log = obslog.Default()
	}
	return &Engine{client: client, tools: tools, store: store, prompts: prompts, log: log, mode: model.ModePlan}
}

func (e *Engine) SetMode(mode model.Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = mode
}

func (e *Engine) Mode() model.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Engine) CurrentSession() model.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Transcript returns a snapshot of the current session's messages, for a
// UI collaborator to render on session start or resume.
func (e *Engine) Transcript() []model.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.transcript == nil {
		return nil
	}
	out := make([]model.Message, len(e.transcript.Messages))
	copy(out, e.transcript.Messages)
	return out
}

// TokenUsage returns the running total tokens used by the current session.
func (e *Engine) TokenUsage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalUsed
}

// StartSession creates and persists a fresh session, replacing whatever was
// current.
func (e *Engine) StartSession(ctx context.Context, modelName string) error {
	sess := model.NewSession(modelName)
	if err := e.store.CreateSession(ctx, sess); err != nil {
		return fmt.Errorf("engine: start session: %w", err)
	}
	e.mu.Lock()
	e.session = sess
	e.transcript = model.NewTranscript(sess.ID)
	e.totalUsed = 0
	e.warnedSoft = false
	e.mu.Unlock()
	e.log.Info("SESSION_START", "id", sess.ID, "model", modelName)
	return nil
}

// LoadSession rehydrates a persisted session and its transcript as current.
func (e *Engine) LoadSession(ctx context.Context, sessionID string) error {
	sess, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("engine: load session: %w", err)
	}
	tr, err := e.store.LoadTranscript(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("engine: load transcript: %w", err)
	}
	e.mu.Lock()
	e.session = sess
	e.transcript = tr
	e.totalUsed = 0
	e.warnedSoft = false
	e.mu.Unlock()
	return nil
}

func (e *Engine) ListSessions(ctx context.Context) ([]model.Session, error) {
	return e.store.ListSessions(ctx)
}

// RunTurn drives one user turn to completion per the algorithm in 4.5: the
// returned Bus delivers ordered events and closes when the turn reaches a
// terminal state (tool-calls exhausted, error, cancellation, or budget cap).
func (e *Engine) RunTurn(ctx context.Context, content string, attached []model.AttachedFile) *Bus {
	bus := newBus(32)
	go e.runTurn(ctx, content, attached, bus)
	return bus
}

func (e *Engine) runTurn(ctx context.Context, content string, attached []model.AttachedFile, bus *Bus) {
	defer bus.close()

	e.mu.Lock()
	tr := e.transcript
	sess := e.session
	mode := e.mode
	e.mu.Unlock()

	userMsg := tr.Append(model.NewUserMessage(sess.ID, content, attached))
	if sess.RetitleFromFirstMessage(content) {
		if err := e.store.RenameSession(ctx, sess.ID, sess.DisplayName); err != nil {
			e.log.Warn("RETITLE_FAILED", "session", sess.ID, "error", err)
		}
		e.mu.Lock()
		e.session.DisplayName = sess.DisplayName
		e.mu.Unlock()
	}
	if err := e.store.AppendMessage(ctx, userMsg); err != nil {
		bus.emit(Event{Kind: EventError, SessionID: sess.ID, Err: fmt.Errorf("persist user message: %w", err)})
		return
	}

	toolIdx := 0
	for {
		select {
		case <-ctx.Done():
			bus.emit(Event{Kind: EventError, SessionID: sess.ID, Err: ctx.Err()})
			return
		default:
		}

		asst := model.NewStreamingAssistantMessage(sess.ID)
		bus.emit(Event{Kind: EventStreamStart, SessionID: sess.ID})

		requestMessages := tr.ToRequestMessages(e.prompts.SystemPrompt(mode))
		toolSpecs := e.tools.Specs(mode)

		handle := e.client.Stream(ctx, sess.ModelName, requestMessages, toolSpecs)

		structuredCalls, structuredDetails, finishReason, usageTotal, streamErr := e.drainStream(handle, asst, bus, sess.ID)

		e.applyTokenUsage(usageTotal, bus, sess.ID)

		parsed := parser.Parse(asst.LiveContent(), asst.LiveReasoning(), newXMLCallID(&toolIdx))

		finalCalls := structuredCalls
		if len(finalCalls) == 0 {
			finalCalls = parsed.ToolCalls
		}
		if finishReason == "cancelled" {
			// A cancel mid-stream never executes a tool, even one whose
			// delta had already arrived -- so the finalized Assistant
			// carries no tool-calls to keep invariant 3 intact.
			finalCalls = nil
		}

		finalContent := finalizeContent(parsed.Content, finalCalls, asst.LiveContent(), finishReason, streamErr)

		asst.FinalizeStream(finalContent, parsed.Reasoning, finalCalls, structuredDetails)
		appended := tr.Append(*asst)

		if err := e.store.AppendMessage(ctx, appended); err != nil {
			bus.emit(Event{Kind: EventError, SessionID: sess.ID, Err: fmt.Errorf("persist assistant message: %w", err)})
			return
		}
		bus.emit(Event{Kind: EventAssistantFinalized, SessionID: sess.ID, Message: appended})

		if streamErr != nil {
			e.synthesizeFailedToolResults(ctx, tr, bus, sess.ID)
			bus.emit(Event{Kind: EventError, SessionID: sess.ID, Err: streamErr})
			return
		}

		if len(finalCalls) == 0 {
			bus.emit(Event{Kind: EventTurnDone, SessionID: sess.ID})
			return
		}

		if e.overHardBudget() {
			e.emitBudgetCapAndRotate(ctx, bus, sess.ID, finalCalls)
			return
		}

		for _, call := range finalCalls {
			select {
			case <-ctx.Done():
				bus.emit(Event{Kind: EventError, SessionID: sess.ID, Err: ctx.Err()})
				return
			default:
			}

			bus.emit(Event{Kind: EventToolStart, SessionID: sess.ID, ToolCall: call})
			resultContent, preview, err := e.tools.Execute(ctx, call, mode)
			bus.emit(Event{Kind: EventToolEnd, SessionID: sess.ID, ToolCall: call, ToolResult: resultContent, ToolErr: err, ToolPreview: preview})

			toolMsg := tr.Append(model.NewToolResultMessage(sess.ID, call.ID, call.Name, resultContent, preview))
			if persistErr := e.store.AppendMessage(ctx, toolMsg); persistErr != nil {
				bus.emit(Event{Kind: EventError, SessionID: sess.ID, Err: fmt.Errorf("persist tool result: %w", persistErr)})
				return
			}
		}
	}
}

// drainStream consumes one SC stream to completion, updating asst in-flight
// and forwarding Reasoning/Content/ToolCallSnapshot events to the bus.
func (e *Engine) drainStream(handle *llm.StreamHandle, asst *model.Message, bus *Bus, sessionID string) (calls []model.ToolCall, details []model.ReasoningDetail, finishReason string, usageTotal int, streamErr error) {
	toolOrder := map[int]int{}
	for ev := range handle.Events {
		switch ev.Kind {
		case llm.EventReasoningChunk:
			asst.AppendReasoning(ev.Text)
			if ev.ReasoningDetail != nil {
				details = append(details, *ev.ReasoningDetail)
			}
			bus.emit(Event{Kind: EventReasoningDelta, SessionID: sessionID, Text: ev.Text})
		case llm.EventContentChunk:
			asst.AppendContent(ev.Text)
			bus.emit(Event{Kind: EventContentDelta, SessionID: sessionID, Text: ev.Text})
		case llm.EventToolCallDelta:
			idx, ok := toolOrder[ev.ToolCall.Index]
			if !ok {
				idx = len(calls)
				toolOrder[ev.ToolCall.Index] = idx
				calls = append(calls, model.ToolCall{})
			}
			calls[idx].ID = ev.ToolCall.ID
			calls[idx].Name = ev.ToolCall.Name
			calls[idx].Arguments = ev.ToolCall.Arguments
			bus.emit(Event{Kind: EventToolCallSnapshot, SessionID: sessionID, ToolCall: calls[idx]})
		case llm.EventDone:
			finishReason = ev.FinishReason
			usageTotal = ev.Total
		case llm.EventError:
			streamErr = ev.Err
		}
	}
	return calls, details, finishReason, usageTotal, streamErr
}

// finalizeContent applies 4.5's step g content-derivation rules.
func finalizeContent(parsedContent string, calls []model.ToolCall, rawBuffer, finishReason string, streamErr error) string {
	content := parsedContent
	if content == "" && len(calls) == 0 {
		if rawBuffer != "" {
			notice := "[Note: response truncated or unparsed, showing raw output]\n\n"
			raw := rawBuffer
			if len(raw) > truncationNoticeBytes {
				raw = raw[:truncationNoticeBytes]
			}
			content = notice + raw
		} else {
			content = emptyResponseNotice(finishReason)
		}
	}
	if streamErr != nil {
		content = fmt.Sprintf("[Error: %s]\n\n%s", streamErr.Error(), content)
	}
	return content
}

func emptyResponseNotice(finishReason string) string {
	if finishReason == "" {
		return "[Note: empty response from model]"
	}
	return fmt.Sprintf("[Note: empty response from model, finish_reason=%s]", finishReason)
}

func (e *Engine) applyTokenUsage(total int, bus *Bus, sessionID string) {
	if total <= 0 {
		return
	}
	e.mu.Lock()
	e.totalUsed = total
	overSoft := !e.warnedSoft && total >= SoftTokenBudget
	if overSoft {
		e.warnedSoft = true
	}
	e.mu.Unlock()

	bus.emit(Event{Kind: EventTokenUsage, SessionID: sessionID, TokenTotal: total})
	if overSoft {
		bus.emit(Event{Kind: EventSystemNotice, SessionID: sessionID, Text: "token budget warning: approaching session limit"})
	}
}

func (e *Engine) overHardBudget() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalUsed >= HardTokenBudget
}

// emitBudgetCapAndRotate synthesizes error results for any tool calls the
// now-finalized Assistant message still carries (preserving the
// tool-call/result bijection invariant), notifies the bus, and starts a
// fresh session so the next user input lands in a clean context.
func (e *Engine) emitBudgetCapAndRotate(ctx context.Context, bus *Bus, sessionID string, pendingCalls []model.ToolCall) {
	e.mu.Lock()
	tr := e.transcript
	modelName := e.session.ModelName
	e.mu.Unlock()

	for _, call := range pendingCalls {
		msg := model.NewToolResultMessage(sessionID, call.ID, call.Name, "[Error: token budget exceeded before this tool could run]", nil)
		toolMsg := tr.Append(msg)
		if err := e.store.AppendMessage(ctx, toolMsg); err != nil {
			e.log.Warn("BUDGET_ROTATE_PERSIST_FAILED", "session", sessionID, "error", err)
		}
	}

	bus.emit(Event{Kind: EventSystemNotice, SessionID: sessionID, Text: "token budget exceeded; starting a fresh session"})
	if err := e.StartSession(ctx, modelName); err != nil {
		bus.emit(Event{Kind: EventError, SessionID: sessionID, Err: fmt.Errorf("rotate session: %w", err)})
		return
	}
	bus.emit(Event{Kind: EventTurnDone, SessionID: sessionID})
}

// synthesizeFailedToolResults closes out any tool-calls the just-finalized
// Assistant message still carries after a stream error, the same invariant-3
// repair emitBudgetCapAndRotate performs for the budget-exceeded path, via
// Transcript.PendingToolResults rather than the caller's own finalCalls slice
// so it also covers structured calls the SC had already closed server-side.
func (e *Engine) synthesizeFailedToolResults(ctx context.Context, tr *model.Transcript, bus *Bus, sessionID string) {
	for _, call := range tr.PendingToolResults() {
		msg := model.NewToolResultMessage(sessionID, call.ID, call.Name, "[Error: stream failed before this tool could run]", nil)
		toolMsg := tr.Append(msg)
		if err := e.store.AppendMessage(ctx, toolMsg); err != nil {
			e.log.Warn("STREAM_ERROR_PERSIST_FAILED", "session", sessionID, "error", err)
		}
	}
}

// newXMLCallID returns the parser.IDFunc used to synthesize ids for tool
// calls recognized only from embedded XML, distinguishable from
// server-assigned ids: xml_tc_<ts>_<i>, with the timestamp fixed once per
// round (the parser itself performs no wall-clock reads) and <i> the
// call's position within the buffer.
func newXMLCallID(counter *int) parser.IDFunc {
	ts := time.Now().UnixNano()
	return func(i int) string {
		*counter++
		return fmt.Sprintf("xml_tc_%d_%d", ts, i)
	}
}
