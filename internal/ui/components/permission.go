// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the TUI.
package components

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
	"github.com/ezeoli88/agentic-conversation-engine/internal/ui/styles"
)

// PermissionPrompt displays a non-blocking notice while a tool call is
// running. The engine executes tool calls synchronously between its
// ToolStart and ToolEnd events (it never waits on a UI decision), so this
// is informational rather than a gate: builder mode always runs the call,
// and plan mode already refused a mutating one before ToolStart by
// returning PermissionDeniedMessage as the tool result.
type PermissionPrompt struct {
	call model.ToolCall

	visible bool
	width   int
	height  int

	theme *styles.Theme
}

// NewPermissionPrompt creates a new permission prompt.
func NewPermissionPrompt(theme *styles.Theme) *PermissionPrompt {
	return &PermissionPrompt{theme: theme}
}

// Show displays the notice for a running tool call.
func (p *PermissionPrompt) Show(call model.ToolCall) {
	p.call = call
	p.visible = true
}

// Hide hides the notice.
func (p *PermissionPrompt) Hide() {
	p.visible = false
	p.call = model.ToolCall{}
}

// IsVisible returns whether the notice is visible.
func (p *PermissionPrompt) IsVisible() bool { return p.visible }

// SetSize updates the notice dimensions.
func (p *PermissionPrompt) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// View renders the notice.
func (p *PermissionPrompt) View() string {
	if !p.visible || p.call.Name == "" {
		return ""
	}

	boxWidth := 60
	if p.width > 0 && p.width < 80 {
		boxWidth = p.width - 10
	}
	if boxWidth < 40 {
		boxWidth = 40
	}

	accent := styles.Amber

	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)
	content.WriteString(titleStyle.Render("Running tool"))
	content.WriteString("\n\n")

	toolNameStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	content.WriteString(toolNameStyle.Render(p.call.Name))
	content.WriteString("\n\n")

	paramsBox := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextPrimary).
		Padding(0, 1).
		Width(boxWidth - 6).
		Render(p.renderParameters())

	content.WriteString(paramsBox)

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Background(styles.Surface).
		Padding(1, 2).
		Width(boxWidth)

	box := boxStyle.Render(content.String())

	if p.width > 0 && p.height > 0 {
		return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (p *PermissionPrompt) renderParameters() string {
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(p.call.Arguments), &args); err != nil || len(args) == 0 {
		return lipgloss.NewStyle().Foreground(styles.TextMuted).Render("(no arguments)")
	}

	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	paramStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	valueStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)

	var builder strings.Builder
	for _, name := range names {
		valStr := fmt.Sprintf("%v", args[name])
		valRunes := []rune(valStr)
		if len(valRunes) > 100 {
			valStr = string(valRunes[:97]) + "..."
		}
		builder.WriteString(paramStyle.Render(name + ": "))
		builder.WriteString(valueStyle.Render(valStr))
		builder.WriteString("\n")
	}

	return strings.TrimSuffix(builder.String(), "\n")
}
