// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// markdownRenderers caches one glamour.TermRenderer per word-wrap width,
// since the viewport is resizable.
var (
	markdownMu        sync.Mutex
	markdownRenderers = map[int]*glamour.TermRenderer{}
)

func glamourRenderer(width int) *glamour.TermRenderer {
	if width < 20 {
		width = 20
	}
	markdownMu.Lock()
	defer markdownMu.Unlock()

	if r, ok := markdownRenderers[width]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fallback to plain text if renderer initialization fails.
		markdownRenderers[width] = nil
		return nil
	}
	markdownRenderers[width] = r
	return r
}

// RenderMarkdown renders content as markdown for terminal display (headers,
// lists, emphasis, and fenced code blocks with syntax highlighting via
// glamour's own chroma-backed ANSI renderer). Returns content unchanged if
// rendering fails or the renderer is unavailable.
func RenderMarkdown(content string, width int) string {
	r := glamourRenderer(width)
	if r == nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
