// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools is the Tool Registry and Tool Executor: a process-wide set
// of named tools, each with a description, a parameter schema, and a
// ReadOnly/Mutating classification, plus the sequential dispatcher that
// decodes a model-issued call, mode-gates it, invokes the matching handler,
// and normalizes the result into text and optional preview metadata.
package tools

import (
	"context"
	"fmt"

	"github.com/ezeoli88/agentic-conversation-engine/internal/bridge"
	"github.com/ezeoli88/agentic-conversation-engine/internal/llm"
	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

// Parameter describes one entry of a tool's input schema.
type Parameter struct {
	Name        string
	Type        string // "string", "integer", "boolean", "number"
	Required    bool
	Description string
	Default     interface{}
	Enum        []string
}

// Handler executes one tool call's parameters and returns its result text
// plus optional preview metadata for rendering collaborators.
type Handler interface {
	Execute(ctx context.Context, params map[string]interface{}) (string, *model.ToolPreview, error)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, params map[string]interface{}) (string, *model.ToolPreview, error)

func (f HandlerFunc) Execute(ctx context.Context, params map[string]interface{}) (string, *model.ToolPreview, error) {
	return f(ctx, params)
}

// Definition is one registered tool: its schema and the handler that runs it.
type Definition struct {
	Name        string
	Description string
	Class       model.ToolClass
	Parameters  []Parameter
	Handler     Handler
}

func (d *Definition) toLLMTool() llm.Tool {
	properties := make(map[string]any, len(d.Parameters))
	var required []string
	for _, p := range d.Parameters {
		prop := map[string]any{
			"type":        jsonSchemaType(p.Type),
			"description": p.Description,
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	params := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		params["required"] = required
	}
	return llm.Tool{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  params,
		},
	}
}

func jsonSchemaType(t string) string {
	if t == "" {
		return "string"
	}
	return t
}

// Registry holds every built-in tool this engine ships.
type Registry struct {
	tools map[string]*Definition
	order []string
	bridg *bridge.Manager
}

// NewRegistry builds the registry of built-in filesystem, search, shell,
// and web-search tools rooted at workDir, plus bridg for mcp__ delegation
// (bridg may be nil when no external servers are configured).
func NewRegistry(workDir string, bridg *bridge.Manager, searchEndpoint string) *Registry {
	r := &Registry{tools: make(map[string]*Definition), bridg: bridg}
	r.register(readFileDefinition())
	r.register(writeFileDefinition())
	r.register(editFileDefinition())
	r.register(globDefinition(workDir))
	r.register(grepDefinition(workDir))
	r.register(listDirectoryDefinition(workDir))
	r.register(bashDefinition(workDir))
	r.register(webSearchDefinition(searchEndpoint))
	return r
}

func (r *Registry) register(d *Definition) {
	r.tools[d.Name] = d
	r.order = append(r.order, d.Name)
}

// Lookup returns the named built-in tool, or nil if none matches (the
// caller should then try the bridge via bridge.IsBridgeTool).
func (r *Registry) Lookup(name string) *Definition {
	return r.tools[name]
}

// Schemas returns every built-in and bridge tool's schema filtered by mode:
// in PLAN, Mutating tools and Mutating bridge tools are omitted entirely
// rather than exposed-then-refused, so the model never attempts them.
func (r *Registry) Schemas(ctx context.Context, mode model.Mode) []llm.Tool {
	out := make([]llm.Tool, 0, len(r.order))
	for _, name := range r.order {
		d := r.tools[name]
		if !mode.Allows(d.Class) {
			continue
		}
		out = append(out, d.toLLMTool())
	}
	if r.bridg != nil {
		bridgeTools, err := r.bridg.Specs(ctx, mode)
		if err == nil {
			for _, t := range bridgeTools {
				out = append(out, t)
			}
		}
	}
	return out
}

// PermissionDeniedMessage is the literal policy-refusal text returned for a
// Mutating tool invoked while in PLAN mode.
func PermissionDeniedMessage(name string) string {
	return fmt.Sprintf("Tool %q is not available in PLAN mode. Switch to BUILDER mode to make changes.", name)
}
