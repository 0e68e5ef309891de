// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package bridge

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ezeoli88/agentic-conversation-engine/internal/llm"
	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

// namePrefixSep is the separator convention for bridge-sourced tool names,
// mcp__<server>__<tool>, double-underscored to stay unambiguous against
// tool names that legitimately contain single underscores.
const namePrefixSep = "__"

// Manager aggregates named external servers and routes tool calls to
// whichever connection owns the requested tool, serializing access per
// server (access to one server's stdio channel is never concurrent).
type Manager struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewManager() *Manager {
	return &Manager{clients: make(map[string]*Client)}
}

// Connect launches and registers a named server. A second Connect for the
// same name is a no-op.
func (m *Manager) Connect(name string, cfg ServerConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[name]; ok {
		return nil
	}
	client, err := Connect(cfg)
	if err != nil {
		return fmt.Errorf("bridge: connect %q: %w", name, err)
	}
	m.clients[name] = client
	return nil
}

// Specs returns every connected server's tools as llm.Tool schemas filtered
// by mode, with names prefixed mcp__<server>__<tool>: in PLAN, a Mutating
// bridge tool is omitted entirely rather than exposed then refused, the
// same policy Registry.Schemas applies to built-in tools.
func (m *Manager) Specs(ctx context.Context, mode model.Mode) ([]llm.Tool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []llm.Tool
	for name, client := range m.clients {
		tools, err := client.ListTools(ctx)
		if err != nil {
			return nil, fmt.Errorf("bridge: list tools from %q: %w", name, err)
		}
		for _, t := range tools {
			if !mode.Allows(t.Class) {
				continue
			}
			out = append(out, llm.Tool{
				Type: "function",
				Function: llm.ToolFunction{
					Name:        prefixedName(name, t.Name),
					Description: t.Description,
					Parameters:  t.InputSchema,
				},
			})
		}
	}
	return out, nil
}

// ClassOf reports the ReadOnly/Mutating classification of a prefixed
// bridge tool name, for callers that must mode-gate before CallTool.
func (m *Manager) ClassOf(ctx context.Context, toolName string) (model.ToolClass, bool) {
	server, actual, ok := splitPrefixedName(toolName)
	if !ok {
		return "", false
	}
	m.mu.RLock()
	client, ok := m.clients[server]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	tools, err := client.ListTools(ctx)
	if err != nil {
		return "", false
	}
	for _, t := range tools {
		if t.Name == actual {
			return t.Class, true
		}
	}
	return "", false
}

// CallTool dispatches toolName (already prefixed) to its owning server.
func (m *Manager) CallTool(ctx context.Context, toolName string, args map[string]any) (string, error) {
	server, actual, ok := splitPrefixedName(toolName)
	if !ok {
		return "", fmt.Errorf("bridge: %q is not a bridge-prefixed tool name", toolName)
	}

	m.mu.RLock()
	client, ok := m.clients[server]
	m.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("bridge: no connected server %q", server)
	}
	return client.CallTool(ctx, actual, args)
}

// IsBridgeTool reports whether toolName uses the bridge naming convention.
func IsBridgeTool(toolName string) bool {
	_, _, ok := splitPrefixedName(toolName)
	return ok
}

func prefixedName(server, tool string) string {
	return "mcp" + namePrefixSep + server + namePrefixSep + tool
}

func splitPrefixedName(toolName string) (server, tool string, ok bool) {
	const prefix = "mcp" + namePrefixSep
	if !strings.HasPrefix(toolName, prefix) {
		return "", "", false
	}
	rest := toolName[len(prefix):]
	idx := strings.Index(rest, namePrefixSep)
	if idx == -1 {
		return "", "", false
	}
	return rest[:idx], rest[idx+len(namePrefixSep):], true
}

// Close shuts down every connected server.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, client := range m.clients {
		client.Close()
	}
	m.clients = make(map[string]*Client)
}
