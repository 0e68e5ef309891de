// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ezeoli88/agentic-conversation-engine/internal/ui/styles"
)

// Mode identifies which of the two operating modes the header badge shows.
type Mode int

const (
	ModePlan Mode = iota
	ModeBuilder
)

func (m Mode) String() string {
	switch m {
	case ModePlan:
		return "PLAN"
	case ModeBuilder:
		return "BUILDER"
	default:
		return "UNKNOWN"
	}
}

// Header is the title bar shown above the conversation.
type Header struct {
	Title     string
	ModelName string
	Mode      Mode
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a Header with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "ace",
		Mode:  ModeBuilder,
		Width: 80,
		theme: theme,
	}
}

func (h *Header) SetWidth(width int)       { h.Width = width }
func (h *Header) SetModel(modelName string) { h.ModelName = modelName }
func (h *Header) SetMode(mode Mode)        { h.Mode = mode }

// View renders the boxed, multi-line header.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}
	innerWidth := width - 6

	brandStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Cyan)
	accentStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	brand := accentStyle.Render("< ") + brandStyle.Render(h.Title) + accentStyle.Render(" >")

	var subtitleParts []string
	if h.ModelName != "" {
		subtitleParts = append(subtitleParts, lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(h.ModelName))
	}
	subtitleParts = append(subtitleParts, h.getModeStyle().Render("["+h.Mode.String()+"]"))
	subtitle := strings.Join(subtitleParts, " ")

	brandLine := lipgloss.NewStyle().Width(innerWidth).Align(lipgloss.Center).Render(brand)
	subtitleLine := lipgloss.NewStyle().Width(innerWidth).Align(lipgloss.Center).Foreground(styles.TextMuted).Render(subtitle)
	content := lipgloss.JoinVertical(lipgloss.Center, brandLine, subtitleLine)

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Background(styles.SurfaceDim).
		Padding(0, 2).
		Width(width).
		Render(content)
}

// ViewCompact renders a single-line header for narrow terminals.
func (h *Header) ViewCompact() string {
	brandStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Cyan)
	accentStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	brand := accentStyle.Render("<") + brandStyle.Render(h.Title) + accentStyle.Render(">")

	parts := []string{brand}
	if h.ModelName != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.TextMuted).Render(h.ModelName))
	}
	parts = append(parts, h.getModeStyle().Render("["+h.Mode.String()+"]"))

	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	return strings.Join(parts, separator)
}

func (h *Header) getModeStyle() lipgloss.Style {
	switch h.Mode {
	case ModePlan:
		return lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)
	case ModeBuilder:
		return lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
