// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package obslog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventFormatsKeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)
	l.Info("TOOL_EXEC", "tool", "glob", "status", "ok")
	require.Contains(t, buf.String(), "INFO TOOL_EXEC | tool=glob status=ok")
}

func TestDebugSuppressedBelowConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)
	l.Info("SHOULD_NOT_APPEAR")
	l.Warn("SHOULD_APPEAR")
	out := buf.String()
	require.False(t, strings.Contains(out, "SHOULD_NOT_APPEAR"))
	require.True(t, strings.Contains(out, "SHOULD_APPEAR"))
}

func TestSetLevelChangesGateAtRuntime(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelError)
	l.Debug("FILTERED")
	require.Empty(t, buf.String())

	l.SetLevel(LevelDebug)
	l.Debug("VISIBLE")
	require.Contains(t, buf.String(), "VISIBLE")
}
