// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

func TestRegistrySchemasFiltersMutatingInPlanMode(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry(dir, nil, "")

	planTools := reg.Schemas(context.Background(), model.ModePlan)
	for _, spec := range planTools {
		def := reg.Lookup(spec.Function.Name)
		require.NotNil(t, def, "plan-mode schema %q must resolve to a registered tool", spec.Function.Name)
		require.Equal(t, model.ToolClassReadOnly, def.Class)
	}

	builderTools := reg.Schemas(context.Background(), model.ModeBuilder)
	require.Greater(t, len(builderTools), len(planTools), "builder mode must expose more tools than plan mode")
}

func TestRegistryLookupUnknownToolReturnsNil(t *testing.T) {
	reg := NewRegistry(t.TempDir(), nil, "")
	require.Nil(t, reg.Lookup("does_not_exist"))
}

func TestExecutorRefusesMutatingToolInPlanMode(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry(dir, nil, "")
	exec := NewExecutor(reg, nil)

	args, err := json.Marshal(map[string]string{"path": "new.txt", "content": "hello"})
	require.NoError(t, err)

	out, preview, err := exec.Execute(context.Background(), model.ToolCall{Name: "write_file", Arguments: string(args)}, model.ModePlan)
	require.NoError(t, err)
	require.Nil(t, preview)
	require.Contains(t, out, "not available in PLAN mode")
}

func TestExecutorUnknownToolReturnsTextualError(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry(dir, nil, "")
	exec := NewExecutor(reg, nil)

	out, preview, err := exec.Execute(context.Background(), model.ToolCall{Name: "nonexistent", Arguments: "{}"}, model.ModeBuilder)
	require.NoError(t, err)
	require.Nil(t, preview)
	require.Contains(t, out, "unknown tool")
}

func TestExecutorMalformedArgumentsFallBackToEmptyMap(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry(dir, nil, "")
	exec := NewExecutor(reg, nil)

	// glob's "pattern" parameter is required, so
	// malformed JSON should decode to {} and then fail required-param
	// validation rather than panicking.
	out, _, err := exec.Execute(context.Background(), model.ToolCall{Name: "glob", Arguments: "not json"}, model.ModeBuilder)
	require.NoError(t, err)
	require.Contains(t, out, "Error:")
}

func TestExecutorRequiredParamMissing(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry(dir, nil, "")
	exec := NewExecutor(reg, nil)

	out, _, err := exec.Execute(context.Background(), model.ToolCall{Name: "read_file", Arguments: "{}"}, model.ModeBuilder)
	require.NoError(t, err)
	require.Contains(t, out, "required parameter is missing")
}
