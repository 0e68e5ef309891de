// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools provides the agentic tool system.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ezeoli88/agentic-conversation-engine/internal/bridge"
	"github.com/ezeoli88/agentic-conversation-engine/internal/llm"
	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

// Executor is the Tool Executor: it decodes a model-issued call, mode-gates
// it against the tool's ReadOnly/Mutating class, dispatches to the registry
// or the external bridge, and normalizes whatever the handler returns into
// result text and optional preview metadata. It satisfies the engine
// package's ToolExecutor interface structurally, without importing it.
type Executor struct {
	registry *Registry
	bridg    *bridge.Manager
}

// NewExecutor pairs a registry with the external-bridge manager (nil when
// no external servers are configured) that owns mcp__-prefixed tool calls.
func NewExecutor(registry *Registry, bridg *bridge.Manager) *Executor {
	return &Executor{registry: registry, bridg: bridg}
}

// Specs returns the tool schemas available in mode.
func (e *Executor) Specs(mode model.Mode) []llm.Tool {
	return e.registry.Schemas(context.Background(), mode)
}

// Execute runs one tool call to completion. It never returns an error for
// a tool-level failure -- those become textual "Error: ..." results -- a
// non-nil error return means the call could not be attempted at all (e.g.
// the context was already cancelled).
func (e *Executor) Execute(ctx context.Context, call model.ToolCall, mode model.Mode) (string, *model.ToolPreview, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	var params map[string]interface{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &params); err != nil {
			params = map[string]interface{}{}
		}
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	if bridge.IsBridgeTool(call.Name) {
		return e.executeBridge(ctx, call.Name, params, mode)
	}

	def := e.registry.Lookup(call.Name)
	if def == nil {
		return fmt.Sprintf("Error: unknown tool %q", call.Name), nil, nil
	}

	if !mode.Allows(def.Class) {
		return PermissionDeniedMessage(call.Name), nil, nil
	}

	if err := validateParams(def, params); err != nil {
		return fmt.Sprintf("Error: %s", err.Error()), nil, nil
	}

	content, preview, err := def.Handler.Execute(ctx, params)
	if err != nil {
		return fmt.Sprintf("Error: %s", err.Error()), nil, nil
	}
	return content, preview, nil
}

func (e *Executor) executeBridge(ctx context.Context, name string, params map[string]interface{}, mode model.Mode) (string, *model.ToolPreview, error) {
	if e.bridg == nil {
		return fmt.Sprintf("Error: no external server is connected to serve %q", name), nil, nil
	}
	if class, ok := e.bridg.ClassOf(ctx, name); ok && !mode.Allows(class) {
		return PermissionDeniedMessage(name), nil, nil
	}
	result, err := e.bridg.CallTool(ctx, name, params)
	if err != nil {
		return fmt.Sprintf("Error: %s", err.Error()), nil, nil
	}
	return result, nil, nil
}

// ValidationError names the parameter a tool's schema check rejected.
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string { return e.Param + ": " + e.Message }

// validateParams checks required parameters are present and, when present,
// of the declared type, plus the numeric and string-length bounds the
// schema-driven check has always applied regardless of tool domain.
func validateParams(def *Definition, params map[string]interface{}) error {
	const maxStringLength = 10 * 1024 * 1024
	const maxNumeric = 1e15

	for _, p := range def.Parameters {
		val, exists := params[p.Name]
		if p.Required && (!exists || val == nil) {
			return &ValidationError{Param: p.Name, Message: "required parameter is missing"}
		}
		if !exists || val == nil {
			continue
		}
		switch p.Type {
		case "string":
			s, ok := val.(string)
			if !ok {
				return &ValidationError{Param: p.Name, Message: "expected string"}
			}
			if len(s) > maxStringLength {
				return &ValidationError{Param: p.Name, Message: "string value exceeds maximum length"}
			}
		case "integer", "number":
			n, ok := asFloat(val)
			if !ok {
				return &ValidationError{Param: p.Name, Message: "expected number"}
			}
			if n > maxNumeric || n < -maxNumeric {
				return &ValidationError{Param: p.Name, Message: "numeric value out of reasonable bounds"}
			}
		case "boolean":
			if _, ok := val.(bool); !ok {
				return &ValidationError{Param: p.Name, Message: "expected boolean"}
			}
		}
	}
	return nil
}

func asFloat(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
