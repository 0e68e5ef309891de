// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

const agentMdHeader = "--- agent.md ---"

const basePromptTemplate = `You are a terminal-based coding and operations assistant. You work inside %s, reading and modifying files and running commands through the tools available to you.

Guidelines:
- Be concise and direct; prefer action over discussion.
- Read a file before editing it.
- Prefer editing existing files over creating new ones.
- Don't create documentation unless explicitly asked.
- State the invariant or constraint you relied on, not a restatement of what the code does.
`

const planModeAddendum = `
You are in PLAN mode. Mutating tools (file writes, shell commands that change state) are unavailable to you. Read, search, and reason about the codebase, then present a plan. Only read-only tools may be called.
`

// PromptBuilder implements engine.PromptBuilder, constructing the
// system prompt sent with every request. The base prompt varies by
// model.Mode; on each call it also appends agent.md from the current
// working directory, if present, under a fixed header line.
type PromptBuilder struct {
	customPrompt string
	cwd          func() (string, error)
}

// NewPromptBuilder creates a PromptBuilder rooted at the process's
// current working directory.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{cwd: os.Getwd}
}

// SetCustomPrompt appends additional standing instructions to every
// system prompt, regardless of mode.
func (p *PromptBuilder) SetCustomPrompt(prompt string) {
	p.customPrompt = prompt
}

// SystemPrompt builds the full system prompt for the given mode,
// satisfying engine.PromptBuilder.
func (p *PromptBuilder) SystemPrompt(mode model.Mode) string {
	dir, err := p.cwd()
	if err != nil {
		dir = "."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf(basePromptTemplate, dir))
	if mode == model.ModePlan {
		b.WriteString(planModeAddendum)
	}
	if p.customPrompt != "" {
		b.WriteString("\n")
		b.WriteString(p.customPrompt)
	}

	if agentMd := readAgentMd(dir); agentMd != "" {
		b.WriteString("\n\n")
		b.WriteString(agentMdHeader)
		b.WriteString("\n")
		b.WriteString(agentMd)
	}

	return b.String()
}

func readAgentMd(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "agent.md"))
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(data), "\n")
}
