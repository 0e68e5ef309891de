// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ezeoli88/agentic-conversation-engine/internal/diff"
	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
	"github.com/ezeoli88/agentic-conversation-engine/internal/ui/styles"
	"github.com/ezeoli88/agentic-conversation-engine/internal/util"
)

// MessageBubble renders one model.Message as a styled, role-colored bubble.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	IsLatest      bool
	ShowTimestamp bool
	theme         *styles.Theme
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	if msg == nil {
		msg = &model.Message{Role: model.RoleSystem}
	}
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

func (b *MessageBubble) SetWidth(width int)      { b.Width = width }
func (b *MessageBubble) SetIsLatest(latest bool) { b.IsLatest = latest }

func (b *MessageBubble) displayContent() string {
	if b.Message.IsStreaming() {
		return b.Message.LiveContent()
	}
	return b.Message.Content
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	case model.RoleAssistant:
		return b.renderAssistantBubble()
	case model.RoleTool:
		return b.renderToolBubble()
	case model.RoleSystem:
		return b.renderSystemBubble()
	default:
		return b.renderGenericBubble()
	}
}

func (b *MessageBubble) renderUserBubble() string {
	content := b.displayContent()
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubbleStyle := lipgloss.NewStyle().
		Foreground(styles.UserBubbleFg).
		Background(styles.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.UserBubbleBorder).
		Padding(0, 2).
		Width(contentWidth)

	bubble := bubbleStyle.Render(wrapped)

	roleIndicator := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true).Render("you")

	headerParts := []string{roleIndicator}
	if ts := b.renderTimestamp(); ts != "" {
		headerParts = append(headerParts, ts)
	}
	header := strings.Join(headerParts, " ")

	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	for _, a := range b.Message.Attached {
		header += " " + lipgloss.NewStyle().Foreground(styles.Cyan).Render("["+a.Path+"]")
	}

	return lipgloss.JoinVertical(lipgloss.Right, marginStyle.Render(header), marginStyle.Render(bubble))
}

func (b *MessageBubble) renderAssistantBubble() string {
	content := b.displayContent()
	streaming := b.Message.IsStreaming()
	if streaming {
		content += b.renderStreamingCursor()
	}
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	var wrapped string
	var contentWidth int
	if streaming {
		// Markdown is rendered only once a message is finalized -- a
		// partial fenced code block or unclosed emphasis marker mid-stream
		// would otherwise flicker through glamour's own parse-error
		// fallback on every delta.
		wrapped = wordWrap(content, maxContentWidth)
		contentWidth = minInt(maxLineWidth(wrapped)+4, b.Width-8)
	} else {
		wrapped = strings.TrimRight(RenderMarkdown(content, maxContentWidth), "\n")
		contentWidth = b.Width - 8
	}

	bubbleStyle := lipgloss.NewStyle().
		Foreground(styles.AssistantBubbleFg).
		Background(styles.AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.AssistantBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		MarginRight(4)

	bubble := bubbleStyle.Render(wrapped)

	roleIndicator := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true).Render("assistant")

	headerParts := []string{roleIndicator}
	reasoning := b.Message.LiveReasoning()
	if reasoning == "" {
		reasoning = b.Message.Reasoning
	}
	if reasoning != "" {
		headerParts = append(headerParts, lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true).Render("(reasoned)"))
	}
	if ts := b.renderTimestamp(); ts != "" {
		headerParts = append(headerParts, ts)
	}
	header := strings.Join(headerParts, " ")

	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

func (b *MessageBubble) renderSystemBubble() string {
	content := b.displayContent()
	if content == "" {
		content = "System message"
	}

	maxContentWidth := b.Width - 20
	if maxContentWidth < 30 {
		maxContentWidth = 30
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-16)

	bubbleStyle := lipgloss.NewStyle().
		Foreground(styles.SystemBubbleFg).
		Background(styles.SystemBubbleBg).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.SystemBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		Align(lipgloss.Center)

	bubble := bubbleStyle.Render(wrapped)

	centerStyle := lipgloss.NewStyle().Width(b.Width).Align(lipgloss.Center)
	icon := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true).Render("system")

	header := icon
	if ts := b.renderTimestamp(); ts != "" {
		header = icon + " " + ts
	}

	return lipgloss.JoinVertical(lipgloss.Center, centerStyle.Render(header), centerStyle.Render(bubble))
}

func (b *MessageBubble) renderToolBubble() string {
	if preview := b.Message.Preview; preview != nil && preview.Kind == "diff" {
		return b.renderDiffPreview(preview)
	}

	content := b.Message.Content

	maxLines := 20
	lines := strings.Split(content, "\n")
	truncated := false
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		truncated = true
	}
	content = strings.Join(lines, "\n")
	if truncated {
		content += "\n... (output truncated)"
	}

	maxContentWidth := b.Width - 10
	if maxContentWidth < 30 {
		maxContentWidth = 30
	}
	wrapped := wordWrap(content, maxContentWidth)

	success := b.Message.Preview == nil || b.Message.Preview.Kind != "error"

	var bubbleStyle, iconStyle lipgloss.Style
	var icon string
	if success {
		bubbleStyle = lipgloss.NewStyle().
			Foreground(styles.ToolSuccessFg).
			Background(styles.ToolSuccessBg).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(styles.SuccessHighContrast).
			BorderLeft(true).
			PaddingLeft(2)
		iconStyle = lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
		icon = styles.StatusIndicators.Success
	} else {
		bubbleStyle = lipgloss.NewStyle().
			Foreground(styles.ToolErrorFg).
			Background(styles.ToolErrorBg).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(styles.ErrorHighContrast).
			BorderLeft(true).
			PaddingLeft(2)
		iconStyle = lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
		icon = styles.StatusIndicators.Error
	}

	bubble := bubbleStyle.Render(wrapped)

	toolName := b.Message.ToolName
	if toolName == "" {
		toolName = "tool"
	}
	toolNameStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary).Bold(true)
	header := iconStyle.Render(icon) + " " + toolNameStyle.Render(toolName)
	if ts := b.renderTimestamp(); ts != "" {
		header += " " + ts
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

// renderDiffPreview renders a write/edit tool's before/after as a unified
// diff instead of the plain-text tool bubble, reusing DiffViewer's hunk
// rendering.
func (b *MessageBubble) renderDiffPreview(preview *model.ToolPreview) string {
	d := diff.ComputeDiff(preview.Path, preview.OldStr, preview.NewStr)
	dv := NewDiffViewer(d)
	dv.SetSize(b.Width, 0)
	dv.SetShowHelp(false)

	toolName := b.Message.ToolName
	if toolName == "" {
		toolName = "tool"
	}
	toolNameStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary).Bold(true)
	iconStyle := lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	header := iconStyle.Render(styles.StatusIndicators.Success) + " " + toolNameStyle.Render(toolName)
	if ts := b.renderTimestamp(); ts != "" {
		header += " " + ts
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, dv.View())
}

func (b *MessageBubble) renderGenericBubble() string {
	content := b.displayContent()
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 10
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	if maxContentWidth > b.Width-2 {
		maxContentWidth = b.Width - 2
	}
	wrapped := wordWrap(content, maxContentWidth)

	bubbleStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 2)

	return bubbleStyle.Render(wrapped)
}

func (b *MessageBubble) renderTimestamp() string {
	ts := b.Message.CreatedAt
	if ts.IsZero() {
		return ""
	}

	timestampStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)

	now := time.Now()
	var formatted string
	if ts.Year() == now.Year() && ts.YearDay() == now.YearDay() {
		formatted = formatTime(ts)
	} else {
		formatted = formatDate(ts) + ", " + formatTime(ts)
	}

	return timestampStyle.Render(formatted)
}

func (b *MessageBubble) renderStreamingCursor() string {
	return lipgloss.NewStyle().Foreground(styles.Purple).Blink(true).Render("_")
}

// wordWrap wraps text to fit within the specified width.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for lineIdx, line := range lines {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if runeLen(currentLine)+1+runeLen(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
	}

	return result.String()
}

func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runeLen(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func runeLen(s string) int {
	return len([]rune(s))
}

func formatTime(t time.Time) string {
	hour := t.Hour()
	minute := t.Minute()
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
		if hour > 12 {
			hour -= 12
		}
	}
	if hour == 0 {
		hour = 12
	}

	minuteStr := util.IntToString(minute)
	if minute < 10 {
		minuteStr = "0" + minuteStr
	}

	return util.IntToString(hour) + ":" + minuteStr + " " + ampm
}

func formatDate(t time.Time) string {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	return months[t.Month()-1] + " " + util.IntToString(t.Day())
}

// MessageList renders a vertical list of message bubbles.
type MessageList struct {
	Messages       []*model.Message
	Width          int
	ShowTimestamps bool
	theme          *styles.Theme
}

// NewMessageList creates a new MessageList.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Messages:       []*model.Message{},
		Width:          80,
		ShowTimestamps: true,
		theme:          theme,
	}
}

func (ml *MessageList) SetMessages(messages []*model.Message) { ml.Messages = messages }
func (ml *MessageList) SetWidth(width int)                    { ml.Width = width }

// View renders all messages.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0)

		return emptyStyle.Render("No messages yet. Start a conversation.")
	}

	bubbles := make([]string, 0, len(ml.Messages))
	for i, msg := range ml.Messages {
		bubble := NewMessageBubble(msg, ml.theme)
		bubble.SetWidth(ml.Width)
		bubble.ShowTimestamp = ml.ShowTimestamps
		bubble.SetIsLatest(i == len(ml.Messages)-1)
		bubbles = append(bubbles, bubble.View())
	}

	return strings.Join(bubbles, "\n")
}
