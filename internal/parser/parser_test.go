// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func seqIDs(i int) string {
	switch i {
	case 0:
		return "xml_tc_0"
	default:
		return "xml_tc_n"
	}
}

func TestParsePlainContentPassesThrough(t *testing.T) {
	r := Parse("hello there", "", seqIDs)
	require.Equal(t, "hello there", r.Content)
	require.Empty(t, r.Reasoning)
	require.Empty(t, r.ToolCalls)
	require.False(t, r.Pending)
}

func TestParseExtractsThinkBlockFromContent(t *testing.T) {
	raw := "before<think>deliberating</think>after"
	r := Parse(raw, "", seqIDs)
	require.Equal(t, "beforeafter", r.Content)
	require.Equal(t, "deliberating", r.Reasoning)
	require.False(t, r.Pending)
}

func TestParseJoinsStructuredAndXMLReasoningWithoutDedup(t *testing.T) {
	raw := "<think>xml-side</think>done"
	r := Parse(raw, "structured-side", seqIDs)
	require.Equal(t, "structured-side\nxml-side", r.Reasoning)
}

func TestParseUnclosedThinkMarksPending(t *testing.T) {
	raw := "prefix<think>still going"
	r := Parse(raw, "", seqIDs)
	require.True(t, r.Pending)
	require.Equal(t, "prefix", r.Content)
}

func TestParseDanglingTagPrefixStrippedFromContent(t *testing.T) {
	raw := "hello <thi"
	r := Parse(raw, "", seqIDs)
	require.Equal(t, "hello ", r.Content)
	require.True(t, r.Pending)
}

func TestParseExtractsSingleToolCall(t *testing.T) {
	raw := `<minimax:tool_call><invoke name="glob"><parameter name="pattern">*.go</parameter></invoke></minimax:tool_call>`
	r := Parse(raw, "", seqIDs)
	require.Len(t, r.ToolCalls, 1)
	require.Equal(t, "glob", r.ToolCalls[0].Name)
	require.Equal(t, "xml_tc_0", r.ToolCalls[0].ID)
	require.JSONEq(t, `{"pattern":"*.go"}`, r.ToolCalls[0].Arguments)
}

func TestParseExtractsMultipleInvokesInOneBlock(t *testing.T) {
	raw := `<minimax:tool_call>` +
		`<invoke name="glob"><parameter name="pattern">*.go</parameter></invoke>` +
		`<invoke name="read_file"><parameter name="path">main.go</parameter></invoke>` +
		`</minimax:tool_call>`
	r := Parse(raw, "", seqIDs)
	require.Len(t, r.ToolCalls, 2)
	require.Equal(t, "glob", r.ToolCalls[0].Name)
	require.Equal(t, "read_file", r.ToolCalls[1].Name)
}

func TestParseCoercesParameterTypesInOrder(t *testing.T) {
	raw := `<minimax:tool_call><invoke name="edit_file">` +
		`<parameter name="enabled">true</parameter>` +
		`<parameter name="count">42</parameter>` +
		`<parameter name="ratio">3.5</parameter>` +
		`<parameter name="tags">["a","b"]</parameter>` +
		`<parameter name="label">plain text</parameter>` +
		`</invoke></minimax:tool_call>`
	r := Parse(raw, "", seqIDs)
	require.Len(t, r.ToolCalls, 1)
	require.JSONEq(t, `{"enabled":true,"count":42,"ratio":3.5,"tags":["a","b"],"label":"plain text"}`, r.ToolCalls[0].Arguments)
}

func TestParseUnclosedToolCallBlockMarksPending(t *testing.T) {
	raw := `<minimax:tool_call><invoke name="glob">`
	r := Parse(raw, "", seqIDs)
	require.True(t, r.Pending)
	require.Empty(t, r.ToolCalls)
}

func TestParseIsIdempotentOnAlreadyStrippedContent(t *testing.T) {
	raw := "<think>reason</think>plain output"
	first := Parse(raw, "", seqIDs)
	second := Parse(first.Content, "", seqIDs)
	require.Equal(t, first.Content, second.Content)
	require.Empty(t, second.ToolCalls)
}
