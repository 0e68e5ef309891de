// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ezeoli88/agentic-conversation-engine/internal/ui/styles"
)

// Status represents the current turn status.
type Status int

const (
	StatusReady Status = iota
	StatusStreaming
	StatusThinking
	StatusToolRunning
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusStreaming:
		return "Streaming..."
	case StatusThinking:
		return "Thinking..."
	case StatusToolRunning:
		return "Running tool..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusStreaming, StatusToolRunning:
		return "~"
	case StatusThinking:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// StatusBar shows the current mode, model, token-budget usage against
// the engine's soft/hard budget, and turn status.
type StatusBar struct {
	Mode          Mode
	ModelName     string
	SessionName   string
	TokenCount    int
	SoftBudget    int
	HardBudget    int
	Status        Status
	Width         int
	ShowShortcuts bool
	theme         *styles.Theme
}

// NewStatusBar creates a StatusBar with default values.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Mode:          ModeBuilder,
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

func (s *StatusBar) SetWidth(width int) { s.Width = width }

func (s *StatusBar) SetTokenUsage(used, soft, hard int) {
	s.TokenCount = used
	s.SoftBudget = soft
	s.HardBudget = hard
}

func (s *StatusBar) SetStatus(status Status)       { s.Status = status }
func (s *StatusBar) SetMode(mode Mode)             { s.Mode = mode }
func (s *StatusBar) SetModel(modelName string)     { s.ModelName = modelName }
func (s *StatusBar) SetSessionName(name string)    { s.SessionName = name }

// View renders the status bar, choosing a layout based on width.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

func (s *StatusBar) viewNarrow() string {
	modeStyle := s.getModeStyle()
	modeChar := string([]rune(s.Mode.String())[0])
	statusStyle := s.getStatusStyle()

	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" ")
	result := "[" + modeStyle.Render(modeChar) + "]" + sep + s.renderBudgetBarSmall() + sep + statusStyle.Render(s.Status.Icon())

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

func (s *StatusBar) viewWide() string {
	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	var parts []string
	parts = append(parts, s.getModeStyle().Render(s.Mode.String()))
	if s.ModelName != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(s.ModelName))
	}
	if s.SessionName != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.TextMuted).Render(s.SessionName))
	}
	parts = append(parts, "ctx: "+s.renderBudgetBar()+" "+s.renderBudgetPercent())
	parts = append(parts, s.getStatusStyle().Render(s.Status.String()))
	if s.ShowShortcuts {
		parts = append(parts, s.renderShortcuts())
	}

	result := strings.Join(parts, sep)
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

func (s *StatusBar) budgetPercent() float64 {
	if s.HardBudget == 0 {
		return 0
	}
	return float64(s.TokenCount) / float64(s.HardBudget) * 100
}

func (s *StatusBar) renderBudgetBar() string {
	percent := s.budgetPercent()
	filled := int(percent / 10)
	if filled > 10 {
		filled = 10
	}
	barColor := s.budgetColor(percent)
	filledStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(styles.Overlay)
	return "[" + filledStyle.Render(strings.Repeat("#", filled)) + emptyStyle.Render(strings.Repeat("-", 10-filled)) + "]"
}

func (s *StatusBar) renderBudgetBarSmall() string {
	percent := s.budgetPercent()
	filled := int(percent / 100 * 6)
	if filled > 6 {
		filled = 6
	}
	barColor := s.budgetColor(percent)
	filledStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(styles.Overlay)
	return filledStyle.Render(strings.Repeat("#", filled)) + emptyStyle.Render(strings.Repeat("-", 6-filled))
}

func (s *StatusBar) budgetColor(percent float64) lipgloss.AdaptiveColor {
	switch {
	case percent >= 90:
		return styles.Rose
	case percent >= 75:
		return styles.Amber
	case percent >= 50:
		return styles.Emerald
	default:
		return styles.Cyan
	}
}

func (s *StatusBar) renderBudgetPercent() string {
	percent := s.budgetPercent()
	color := styles.TextMuted
	if percent >= 90 {
		color = styles.Rose
	} else if percent >= 75 {
		color = styles.Amber
	}
	return lipgloss.NewStyle().Foreground(color).Render(
		fmt.Sprintf("%s/%s (%.1f%%)", formatNumber(s.TokenCount), formatNumber(s.HardBudget), percent))
}

func (s *StatusBar) renderShortcuts() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	shortcuts := []string{
		keyStyle.Render("^P") + descStyle.Render("cmds"),
		keyStyle.Render("^C") + descStyle.Render("cancel"),
	}
	return strings.Join(shortcuts, " ")
}

func (s *StatusBar) getModeStyle() lipgloss.Style {
	switch s.Mode {
	case ModePlan:
		return lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)
	case ModeBuilder:
		return lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}

func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case StatusStreaming, StatusThinking, StatusToolRunning:
		return lipgloss.NewStyle().Foreground(styles.InfoHighContrast).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}

func formatNumber(n int) string {
	return fmtNumber(n)
}
