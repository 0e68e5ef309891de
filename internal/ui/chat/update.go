// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ezeoli88/agentic-conversation-engine/internal/engine"
	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
	"github.com/ezeoli88/agentic-conversation-engine/internal/ui/components"
)

const toastTickInterval = 500 * time.Millisecond

func tickToasts() tea.Cmd {
	return tea.Tick(toastTickInterval, func(time.Time) tea.Msg {
		return components.NewToastTickMsg()
	})
}

// turnStartedMsg carries the Bus for a newly started turn.
type turnStartedMsg struct{ bus *engine.Bus }

// turnEventMsg wraps one Event drained from the current turn's Bus.
type turnEventMsg struct {
	event engine.Event
	ok    bool
}

// waitForEvent returns a tea.Cmd that blocks on the next Bus event.
func waitForEvent(bus *engine.Bus) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-bus.Events()
		return turnEventMsg{event: ev, ok: ok}
	}
}

// Update handles all incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case turnStartedMsg:
		m.bus = msg.bus
		m.streaming = true
		m.statusBar.SetStatus(components.StatusThinking)
		return m, tea.Batch(waitForEvent(m.bus), m.spinner.Start())

	case turnEventMsg:
		return m.handleTurnEvent(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		return m, tickToasts()
	}

	return m, nil
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height

	m.header.SetWidth(msg.Width)
	m.statusBar.SetWidth(msg.Width)
	m.input.SetWidth(msg.Width - 4)
	m.welcome.SetSize(msg.Width, msg.Height)
	m.fatalError.SetSize(msg.Width, msg.Height)
	m.permission.SetSize(msg.Width, msg.Height)

	headerHeight := 4
	statusHeight := 1
	inputHeight := 3
	viewportHeight := msg.Height - headerHeight - statusHeight - inputHeight
	if viewportHeight < 3 {
		viewportHeight = 3
	}
	m.viewport.SetSize(msg.Width, viewportHeight)
	m.refreshViewport()

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.CycleMode):
		if m.streaming {
			return m, nil
		}
		m.cycleMode()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if m.streaming {
			m.streaming = false
			m.spinner.Stop()
			m.statusBar.SetStatus(components.StatusReady)
			m.toasts.AddStatus("turn canceled")
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.streaming {
			return m, nil
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) cycleMode() {
	next := model.ModeBuilder
	if m.engine.Mode() == model.ModeBuilder {
		next = model.ModePlan
	}
	m.engine.SetMode(next)
	mode := toComponentMode(next)
	m.header.SetMode(mode)
	m.statusBar.SetMode(mode)
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		return m, nil
	}
	m.input.Reset()
	m.showWelcome = false

	userMsg := model.NewUserMessage(m.engine.CurrentSession().ID, content, nil)
	m.messages = append(m.messages, &userMsg)
	m.refreshViewport()

	bus := m.engine.RunTurn(m.ctx, content, nil)
	return m, func() tea.Msg { return turnStartedMsg{bus: bus} }
}

func (m *Model) handleTurnEvent(msg turnEventMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		m.streaming = false
		m.spinner.Stop()
		m.statusBar.SetStatus(components.StatusReady)
		return m, nil
	}

	ev := msg.event
	switch ev.Kind {
	case engine.EventStreamStart:
		streaming := model.NewStreamingAssistantMessage(ev.SessionID)
		m.messages = append(m.messages, streaming)
		m.statusBar.SetStatus(components.StatusStreaming)

	case engine.EventReasoningDelta:
		if last := m.lastMessage(); last != nil {
			last.AppendReasoning(ev.Text)
		}
		m.refreshViewport()

	case engine.EventContentDelta:
		if last := m.lastMessage(); last != nil {
			last.AppendContent(ev.Text)
		}
		m.refreshViewport()

	case engine.EventToolCallSnapshot:
		// Structured tool-call argument streaming; nothing to render yet.

	case engine.EventAssistantFinalized:
		if last := m.lastMessage(); last != nil {
			*last = ev.Message
		}
		m.refreshViewport()

	case engine.EventToolStart:
		m.statusBar.SetStatus(components.StatusToolRunning)
		m.permission.Show(ev.ToolCall)

	case engine.EventToolEnd:
		m.permission.Hide()
		result := model.NewToolResultMessage(ev.SessionID, ev.ToolCall.ID, ev.ToolCall.Name, ev.ToolResult, ev.ToolPreview)
		if ev.ToolErr != nil {
			m.toasts.AddError(ev.ToolCall.Name + ": " + ev.ToolErr.Error())
		}
		m.messages = append(m.messages, &result)
		m.statusBar.SetStatus(components.StatusThinking)
		m.refreshViewport()

	case engine.EventTokenUsage:
		m.statusBar.SetTokenUsage(ev.TokenTotal, engine.SoftTokenBudget, engine.HardTokenBudget)

	case engine.EventSystemNotice:
		m.toasts.AddStatus(ev.Text)

	case engine.EventError:
		m.streaming = false
		m.spinner.Stop()
		m.statusBar.SetStatus(components.StatusError)
		m.toasts.AddError(ev.Err.Error())

	case engine.EventTurnDone:
		m.streaming = false
		m.spinner.Stop()
		m.statusBar.SetStatus(components.StatusReady)
	}

	return m, waitForEvent(m.bus)
}

func (m *Model) lastMessage() *model.Message {
	if len(m.messages) == 0 {
		return nil
	}
	return m.messages[len(m.messages)-1]
}

func (m *Model) refreshViewport() {
	m.viewport.SetMessages(m.messages)
}
