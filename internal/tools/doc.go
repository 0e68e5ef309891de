// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools is the Tool Registry and Tool Executor.
//
// The registry holds the fixed set of built-in tools this engine ships --
// read_file, write_file, edit_file, glob, grep, list_directory, bash, and
// web_search -- each with a JSON-schema parameter description and a
// ReadOnly/Mutating classification. The executor decodes a model-issued
// call, mode-gates Mutating tools out of PLAN mode, dispatches to the
// matching handler or to the external-bridge manager for mcp__-prefixed
// names, and normalizes the outcome into result text and optional preview
// metadata for history and the UI.
//
// Every filesystem tool shares the path-security boundary in security.go:
// absolute-path resolution, symlink canonicalization, and rejection of
// paths outside the working, home and temp directories, protected system
// paths, and shell startup and credential files, applied ahead of any open.
// Other files matching SensitivePathPatterns are not rejected.
package tools
