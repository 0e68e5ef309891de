// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/ezeoli88/agentic-conversation-engine/internal/ui/components"
)

// View renders the full frame.
func (m *Model) View() string {
	if m.fatal != nil {
		m.fatalError.SetTitle("Fatal error")
		m.fatalError.SetMessage(m.fatal.Error())
		m.fatalError.Show()
		return m.fatalError.View()
	}
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var body string
	if m.showWelcome {
		body = m.welcome.View()
	} else if m.permission.IsVisible() {
		body = m.permission.View()
	} else {
		body = m.viewport.View()
	}

	var b strings.Builder
	b.WriteString(m.header.View())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())

	frame := b.String()

	if m.toasts.HasToasts() {
		frame += "\n" + components.RenderToastStack(m.toasts.GetToasts(), m.width, 3)
	}

	return frame
}
