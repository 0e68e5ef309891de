// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat is the TUI projection: a Bubble Tea program that drains the
// engine's Event Bus and renders the transcript, streaming deltas, tool
// activity, and turn status using the components package.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ezeoli88/agentic-conversation-engine/internal/engine"
	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
	"github.com/ezeoli88/agentic-conversation-engine/internal/ui/components"
	"github.com/ezeoli88/agentic-conversation-engine/internal/ui/styles"
)

// Model is the root Bubble Tea model for the chat UI.
type Model struct {
	ctx    context.Context
	engine *engine.Engine
	theme  *styles.Theme
	keys   KeyMap

	header     *components.Header
	statusBar  *components.StatusBar
	viewport   *components.ChatViewport
	input      *components.InputArea
	welcome    components.Welcome
	spinner    components.Spinner
	toasts     *components.ToastManager
	fatalError components.ErrorDisplay
	permission *components.PermissionPrompt

	width, height int

	messages    []*model.Message
	streamingID int64
	streaming   bool
	bus         *engine.Bus

	showWelcome bool
	quitting    bool
	fatal       error
}

// New builds a chat Model around a running Engine. The current session's
// model name and display name seed the header/status bar before the first
// RunTurn.
func New(ctx context.Context, eng *engine.Engine) *Model {
	theme := styles.NewTheme()

	header := components.NewHeader(theme)
	statusBar := components.NewStatusBar(theme)
	viewport := components.NewChatViewport(theme)
	input := components.NewInputArea(theme)
	welcome := components.NewWelcome(theme)
	spinner := components.NewThinkingSpinner()
	toasts := components.NewToastManager()
	fatalError := components.NewErrorDisplay()
	permission := components.NewPermissionPrompt(theme)

	sess := eng.CurrentSession()
	header.SetModel(sess.ModelName)
	statusBar.SetModel(sess.ModelName)
	statusBar.SetSessionName(sess.DisplayName)
	welcome.SetModelName(sess.ModelName)

	mode := toComponentMode(eng.Mode())
	header.SetMode(mode)
	statusBar.SetMode(mode)

	m := &Model{
		ctx:         ctx,
		engine:      eng,
		theme:       theme,
		keys:        DefaultKeyMap(),
		header:      header,
		statusBar:   statusBar,
		viewport:    viewport,
		input:       input,
		welcome:     welcome,
		spinner:     spinner,
		toasts:      toasts,
		fatalError:  fatalError,
		permission:  permission,
		showWelcome: true,
	}

	for _, msg := range eng.Transcript() {
		msg := msg
		m.messages = append(m.messages, &msg)
	}
	if len(m.messages) > 0 {
		m.showWelcome = false
	}

	return m
}

func toComponentMode(mode model.Mode) components.Mode {
	if mode == model.ModePlan {
		return components.ModePlan
	}
	return components.ModeBuilder
}

// Init starts the input focus and the toast-expiry ticker.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.input.Focus(), tickToasts())
}
