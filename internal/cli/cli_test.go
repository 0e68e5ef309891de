// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsAreZeroValue(t *testing.T) {
	args, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, &Args{}, args)
}

func TestParseModelFlag(t *testing.T) {
	args, err := Parse([]string{"--model", "minimax-m2-thinking"})
	require.NoError(t, err)
	require.Equal(t, "minimax-m2-thinking", args.Model)
}

func TestParseModelFlagEqualsForm(t *testing.T) {
	args, err := Parse([]string{"--model=minimax-m2-thinking"})
	require.NoError(t, err)
	require.Equal(t, "minimax-m2-thinking", args.Model)
}

func TestParsePlanFlag(t *testing.T) {
	args, err := Parse([]string{"--plan"})
	require.NoError(t, err)
	require.True(t, args.Plan)
}

func TestParseThemeAndSession(t *testing.T) {
	args, err := Parse([]string{"--theme", "light", "--session", "abc-123"})
	require.NoError(t, err)
	require.Equal(t, "light", args.Theme)
	require.Equal(t, "abc-123", args.SessionID)
}

func TestParseListSessions(t *testing.T) {
	args, err := Parse([]string{"--list-sessions"})
	require.NoError(t, err)
	require.True(t, args.ListSessions)
}

func TestParseHelpAndVersion(t *testing.T) {
	args, err := Parse([]string{"--help"})
	require.NoError(t, err)
	require.True(t, args.Help)

	args, err = Parse([]string{"--version"})
	require.NoError(t, err)
	require.True(t, args.ShowVersion)
}

func TestParseRejectsPositionalArguments(t *testing.T) {
	_, err := Parse([]string{"do-something"})
	require.Error(t, err)
}

func TestParseCombinesFlags(t *testing.T) {
	args, err := Parse([]string{"--plan", "--model", "minimax-m2", "--theme", "dark"})
	require.NoError(t, err)
	require.True(t, args.Plan)
	require.Equal(t, "minimax-m2", args.Model)
	require.Equal(t, "dark", args.Theme)
}

func TestUsageMentionsEveryFlag(t *testing.T) {
	usage := Usage()
	for _, flag := range []string{"--model", "--plan", "--theme", "--session", "--list-sessions", "--help", "--version"} {
		require.True(t, strings.Contains(usage, flag), "usage text missing %q", flag)
	}
}
