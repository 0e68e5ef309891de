// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools provides the agentic tool system.
// file.go implements read_file, write_file, and edit_file.
package tools

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
	"github.com/ezeoli88/agentic-conversation-engine/internal/util"
)

const (
	// fileDefaultLineLimit is how many lines read_file returns absent an
	// explicit limit, and the point past which it auto-truncates with a
	// tail marker.
	fileDefaultLineLimit = 2000

	// fileMaxLineLength truncates any single overlong line so one pathological
	// line can't blow the result past the tool's effective size budget.
	fileMaxLineLength = 2000

	// fileMaxWriteSize bounds write_file's content parameter.
	fileMaxWriteSize = 10 * 1024 * 1024
)

func readFileDefinition() *Definition {
	return &Definition{
		Name:  "read_file",
		Class: model.ToolClassReadOnly,
		Description: "Read a file's contents, returned as 1-based numbered lines. " +
			"Optionally pass start_line/end_line (inclusive) to read a slice of a large file.",
		Parameters: []Parameter{
			{Name: "path", Type: "string", Required: true, Description: "Absolute or relative path to the file."},
			{Name: "start_line", Type: "integer", Description: "First line to return, 1-indexed. Default: 1."},
			{Name: "end_line", Type: "integer", Description: "Last line to return, inclusive. Default: start_line + 1999 (2000 lines)."},
		},
		Handler: HandlerFunc(executeReadFile),
	}
}

func executeReadFile(ctx context.Context, params map[string]interface{}) (string, *model.ToolPreview, error) {
	path, _ := params["path"].(string)
	if path == "" {
		return "", nil, fmt.Errorf("path is required")
	}
	startLine := getIntParam(params, "start_line", 1)
	if startLine < 1 {
		startLine = 1
	}
	endLine := getIntParam(params, "end_line", startLine+fileDefaultLineLimit-1)

	file, err := OpenSecureFile(path, os.O_RDONLY)
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("cannot read a directory, use glob or list_directory instead")
	}

	var out strings.Builder
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	emitted := 0
	truncated := false
	for scanner.Scan() {
		lineNum++
		if ctx.Err() != nil {
			return "", nil, ctx.Err()
		}
		if lineNum < startLine {
			continue
		}
		if lineNum > endLine {
			truncated = true
			break
		}
		line := scanner.Text()
		if len(line) > fileMaxLineLength {
			line = line[:fileMaxLineLength] + "..."
		}
		fmt.Fprintf(&out, "%6d\t%s\n", lineNum, line)
		emitted++
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("error reading file: %w", err)
	}

	output := out.String()
	if output == "" {
		return "(empty file)", nil, nil
	}
	if truncated {
		output += fmt.Sprintf("\n[truncated at line %d; pass a later start_line to continue]", endLine)
	}
	return output, nil, nil
}

func writeFileDefinition() *Definition {
	return &Definition{
		Name:        "write_file",
		Class:       model.ToolClassMutating,
		Description: "Write content to a file, creating parent directories and overwriting any existing file atomically.",
		Parameters: []Parameter{
			{Name: "path", Type: "string", Required: true, Description: "Absolute or relative path to write."},
			{Name: "content", Type: "string", Required: true, Description: "Full file content to write."},
		},
		Handler: HandlerFunc(executeWriteFile),
	}
}

func executeWriteFile(ctx context.Context, params map[string]interface{}) (string, *model.ToolPreview, error) {
	path, _ := params["path"].(string)
	content, _ := params["content"].(string)
	if path == "" {
		return "", nil, fmt.Errorf("path is required")
	}
	if len(content) > fileMaxWriteSize {
		return "", nil, fmt.Errorf("content too large (%s), max %s", formatSize(int64(len(content))), formatSize(fileMaxWriteSize))
	}

	validated, err := ValidatePathSecure(path)
	if err != nil {
		return "", nil, err
	}
	path = validated

	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	isNew := true
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		isNew = false
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", nil, fmt.Errorf("cannot create directory: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(content), 0o644); err != nil {
		return "", nil, fmt.Errorf("cannot write file: %w", err)
	}

	action := "Created"
	if !isNew {
		action = "Wrote"
	}
	output := fmt.Sprintf("%s %s (%d lines, %s)", action, path, fileCountLines(content), formatSize(int64(len(content))))
	return output, &model.ToolPreview{Kind: "write", Path: path, Content: content, IsNew: isNew}, nil
}

func editFileDefinition() *Definition {
	return &Definition{
		Name:  "edit_file",
		Class: model.ToolClassMutating,
		Description: "Edit a file by replacing an exact, unique occurrence of old_str with new_str. " +
			"Fails if old_str occurs zero times or more than once.",
		Parameters: []Parameter{
			{Name: "path", Type: "string", Required: true, Description: "Absolute or relative path to edit."},
			{Name: "old_str", Type: "string", Required: true, Description: "Exact text to find; must match exactly once."},
			{Name: "new_str", Type: "string", Required: true, Description: "Replacement text."},
		},
		Handler: HandlerFunc(executeEditFile),
	}
}

func executeEditFile(ctx context.Context, params map[string]interface{}) (string, *model.ToolPreview, error) {
	path, _ := params["path"].(string)
	oldStr, _ := params["old_str"].(string)
	newStr, _ := params["new_str"].(string)
	if path == "" {
		return "", nil, fmt.Errorf("path is required")
	}
	if oldStr == "" {
		return "", nil, fmt.Errorf("old_str is required")
	}
	if oldStr == newStr {
		return "", nil, fmt.Errorf("old_str and new_str must be different")
	}

	validated, err := ValidatePathSecure(path)
	if err != nil {
		return "", nil, err
	}
	path = validated

	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %s", path)
		}
		return "", nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("cannot edit a directory")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("cannot read file: %w", err)
	}
	contentStr := string(content)

	count := strings.Count(contentStr, oldStr)
	if count == 0 {
		return "", nil, fmt.Errorf("old_str not found in file")
	}
	if count > 1 {
		return "", nil, fmt.Errorf("old_str found %d times, needs to be unique -- provide more surrounding context", count)
	}

	newContent := strings.Replace(contentStr, oldStr, newStr, 1)
	if err := os.WriteFile(path, []byte(newContent), info.Mode()); err != nil {
		return "", nil, fmt.Errorf("cannot write file: %w", err)
	}

	output := fmt.Sprintf("Edited %s\n\n--- Before:\n%s\n+++ After:\n%s", path, fileDiffContext(oldStr), fileDiffContext(newStr))
	return output, &model.ToolPreview{Kind: "diff", Path: path, OldStr: oldStr, NewStr: newStr}, nil
}

func fileCountLines(content string) int {
	if content == "" {
		return 0
	}
	lines := bytes.Count([]byte(content), []byte("\n")) + 1
	if strings.HasSuffix(content, "\n") {
		lines--
	}
	return lines
}

func fileDiffContext(s string) string {
	if s == "" {
		return "  (empty)\n"
	}
	lines := strings.Split(s, "\n")
	var b strings.Builder
	const maxLines = 10
	for i, line := range lines {
		if i >= maxLines {
			fmt.Fprintf(&b, "  ... (%d more lines)\n", len(lines)-maxLines)
			break
		}
		b.WriteString("  ")
		b.WriteString(util.TruncateRunes(line, 80))
		b.WriteString("\n")
	}
	return b.String()
}

func formatSize(n int64) string {
	const kb, mb = 1024, 1024 * 1024
	switch {
	case n >= mb:
		return fmt.Sprintf("%.1fMB", float64(n)/float64(mb))
	case n >= kb:
		return fmt.Sprintf("%.1fKB", float64(n)/float64(kb))
	default:
		return fmt.Sprintf("%dB", n)
	}
}

func getIntParam(params map[string]interface{}, name string, defaultVal int) int {
	val, ok := params[name]
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return defaultVal
	}
}

func getStringParam(params map[string]interface{}, name, defaultVal string) string {
	if v, ok := params[name].(string); ok && v != "" {
		return v
	}
	return defaultVal
}

func getBoolParam(params map[string]interface{}, name string, defaultVal bool) bool {
	if v, ok := params[name].(bool); ok {
		return v
	}
	return defaultVal
}
