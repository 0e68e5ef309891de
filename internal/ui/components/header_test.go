// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/ezeoli88/agentic-conversation-engine/internal/ui/styles"
)

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModePlan, "PLAN"},
		{ModeBuilder, "BUILDER"},
		{Mode(99), "UNKNOWN"},
	}

	for _, tc := range tests {
		if got := tc.mode.String(); got != tc.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tc.mode, got, tc.want)
		}
	}
}

func TestNewHeader(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)

	if h.Title != "ace" {
		t.Errorf("NewHeader() Title = %q, want %q", h.Title, "ace")
	}
	if h.ModelName != "" {
		t.Errorf("NewHeader() ModelName = %q, want empty", h.ModelName)
	}
	if h.Mode != ModeBuilder {
		t.Errorf("NewHeader() Mode = %v, want %v", h.Mode, ModeBuilder)
	}
	if h.Width != 80 {
		t.Errorf("NewHeader() Width = %d, want 80", h.Width)
	}
}

func TestHeaderSetWidth(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	for _, width := range []int{40, 80, 120, 200} {
		h.SetWidth(width)
		if h.Width != width {
			t.Errorf("SetWidth(%d) Width = %d", width, h.Width)
		}
	}
}

func TestHeaderSetModel(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetModel("minimax-m2")
	if h.ModelName != "minimax-m2" {
		t.Errorf("SetModel() ModelName = %q", h.ModelName)
	}
}

func TestHeaderSetMode(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	for _, mode := range []Mode{ModePlan, ModeBuilder} {
		h.SetMode(mode)
		if h.Mode != mode {
			t.Errorf("SetMode(%v) Mode = %v", mode, h.Mode)
		}
	}
}

func TestHeaderView(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	view := h.View()
	if view == "" {
		t.Error("View() should return non-empty string")
	}
	if !strings.Contains(view, "ace") {
		t.Error("View() should contain title")
	}
}

func TestHeaderViewWithModel(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetModel("test-model")
	if view := h.View(); !strings.Contains(view, "test-model") {
		t.Error("View() should contain model name")
	}
}

func TestHeaderViewWithMode(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	for _, tc := range []struct {
		mode Mode
		want string
	}{
		{ModePlan, "PLAN"},
		{ModeBuilder, "BUILDER"},
	} {
		h.SetMode(tc.mode)
		if view := h.View(); !strings.Contains(view, tc.want) {
			t.Errorf("View() with mode %v should contain %q", tc.mode, tc.want)
		}
	}
}

func TestHeaderViewMinimumWidth(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetWidth(10)
	if view := h.View(); view == "" || !strings.Contains(view, "ace") {
		t.Error("View() should handle minimum width gracefully")
	}
}

func TestHeaderViewCompact(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetModel("test-model")
	h.SetMode(ModePlan)

	view := h.ViewCompact()
	if !strings.Contains(view, "ace") || !strings.Contains(view, "test-model") || !strings.Contains(view, "PLAN") {
		t.Errorf("ViewCompact() missing expected content: %q", view)
	}
}

func TestHeaderEmptyTitle(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.Title = ""
	if view := h.View(); view == "" {
		t.Error("View() should handle empty title gracefully")
	}
}

func TestHeaderVeryWideWidth(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetWidth(10000)
	if view := h.View(); view == "" {
		t.Error("View() should handle very wide width")
	}
}
