// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses the command-line surface: one command, a handful
// of flags, no subcommands.
package cli

import (
	"fmt"
)

const usageText = `ace - a terminal assistant that drives a remote model through tool calls

Usage:
  ace [flags]

Flags:
  --model <id>        Model id to use for this run (overrides config.json)
  --plan               Start in PLAN mode (read-only tools only)
  --theme <name>       Color theme name (overrides config.json)
  --session <id>       Resume an existing session by id
  --list-sessions       List saved sessions and exit
  --help                Show this help text and exit
  --version             Show the version and exit
`

// Version is the engine's reported version string, set at build time via
// -ldflags "-X github.com/ezeoli88/agentic-conversation-engine/internal/cli.Version=...".
var Version = "dev"

// Args is the parsed command-line surface.
type Args struct {
	Model        string
	Plan         bool
	Theme        string
	SessionID    string
	ListSessions bool
	Help         bool
	ShowVersion  bool
}

// Parse parses raw command-line arguments (excluding argv[0]).
func Parse(raw []string) (*Args, error) {
	p := NewArgParser(raw)

	args := &Args{
		Model:        p.Flag("model"),
		Plan:         p.BoolFlag("plan"),
		Theme:        p.Flag("theme"),
		SessionID:    p.Flag("session"),
		ListSessions: p.BoolFlag("list-sessions"),
		Help:         p.BoolFlag("help") || p.BoolFlag("h"),
		ShowVersion:  p.BoolFlag("version") || p.BoolFlag("v"),
	}

	if p.PositionalCount() > 0 {
		return nil, fmt.Errorf("cli: unexpected argument %q (ace takes flags only)", p.Positional(0))
	}

	return args, nil
}

// Usage returns the help text printed for --help.
func Usage() string {
	return usageText
}
