// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools provides the agentic tool system.
// search.go implements glob, grep, and list_directory.
package tools

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

const (
	globMaxResults = 500
	grepMaxMatches = 200
)

var searchIgnoreDirs = []string{".git", "node_modules", "__pycache__", ".venv", "venv", ".idea", ".vscode", "target", "dist", "build", ".cache"}

func shouldIgnoreDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, ignore := range searchIgnoreDirs {
		if name == ignore {
			return true
		}
	}
	return false
}

func globDefinition(workDir string) *Definition {
	return &Definition{
		Name:        "glob",
		Class:       model.ToolClassReadOnly,
		Description: "Find files matching a glob pattern (supports ** for recursive matching). Dotfiles and common build directories are excluded.",
		Parameters: []Parameter{
			{Name: "pattern", Type: "string", Required: true, Description: "Glob pattern, e.g. \"**/*.go\"."},
			{Name: "path", Type: "string", Description: "Directory to search under. Default: the working directory."},
		},
		Handler: HandlerFunc(func(ctx context.Context, params map[string]interface{}) (string, *model.ToolPreview, error) {
			return executeGlob(ctx, params, workDir)
		}),
	}
}

func executeGlob(ctx context.Context, params map[string]interface{}, workDir string) (string, *model.ToolPreview, error) {
	pattern, _ := params["pattern"].(string)
	if pattern == "" {
		return "", nil, fmt.Errorf("pattern is required")
	}
	basePath := getStringParam(params, "path", workDir)

	validated, err := ValidatePathSecure(basePath)
	if err != nil {
		return "", nil, err
	}
	basePath = validated

	type match struct {
		path string
	}
	var matches []match
	total := 0

	walkErr := filepath.WalkDir(basePath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if path != basePath && shouldIgnoreDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(basePath, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		matched, _ := matchGlob(pattern, rel)
		if !matched {
			return nil
		}
		total++
		if len(matches) < globMaxResults {
			matches = append(matches, match{path: path})
		}
		return nil
	})
	if walkErr != nil && walkErr != context.Canceled {
		return "", nil, fmt.Errorf("error walking directory: %w", walkErr)
	}

	if len(matches) == 0 {
		return fmt.Sprintf("No files found matching %q in %q", pattern, basePath), nil, nil
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].path < matches[j].path })
	var out strings.Builder
	for _, m := range matches {
		out.WriteString(m.path)
		out.WriteString("\n")
	}
	output := strings.TrimSuffix(out.String(), "\n")
	if total > len(matches) {
		output += fmt.Sprintf("\n\n[limited to %d of %d matches]", globMaxResults, total)
	}
	return output, nil, nil
}

// matchGlob supports "**" spanning path separators in addition to
// filepath.Match's single-segment wildcards.
func matchGlob(pattern, path string) (bool, error) {
	if !strings.Contains(pattern, "**") {
		return filepath.Match(pattern, path)
	}
	parts := strings.SplitN(pattern, "**", 2)
	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")
	if prefix != "" && !strings.HasPrefix(path, prefix) {
		return false, nil
	}
	remaining := strings.TrimPrefix(strings.TrimPrefix(path, prefix), "/")
	if suffix == "" {
		return true, nil
	}
	segments := strings.Split(remaining, "/")
	for i := range segments {
		candidate := strings.Join(segments[i:], "/")
		if matched, err := filepath.Match(suffix, candidate); err == nil && matched {
			return true, nil
		}
	}
	return false, nil
}

func grepDefinition(workDir string) *Definition {
	return &Definition{
		Name:        "grep",
		Class:       model.ToolClassReadOnly,
		Description: "Search file contents for a regular expression. Excludes .git, node_modules, and dotfiles.",
		Parameters: []Parameter{
			{Name: "pattern", Type: "string", Required: true, Description: "RE2 regular expression to search for."},
			{Name: "path", Type: "string", Description: "File or directory to search. Default: the working directory."},
			{Name: "include", Type: "string", Description: "Glob filter for filenames to search, e.g. \"*.go\"."},
			{Name: "context_lines", Type: "integer", Description: "Lines of context to show around each match. Default: 0."},
		},
		Handler: HandlerFunc(func(ctx context.Context, params map[string]interface{}) (string, *model.ToolPreview, error) {
			return executeGrep(ctx, params, workDir)
		}),
	}
}

type grepMatch struct {
	file    string
	line    int
	text    string
	context []string
}

func executeGrep(ctx context.Context, params map[string]interface{}, workDir string) (string, *model.ToolPreview, error) {
	pattern, _ := params["pattern"].(string)
	if pattern == "" {
		return "", nil, fmt.Errorf("pattern is required")
	}
	basePath := getStringParam(params, "path", workDir)
	include := getStringParam(params, "include", "")
	contextLines := getIntParam(params, "context_lines", 0)
	if contextLines < 0 {
		contextLines = 0
	}
	if contextLines > 10 {
		contextLines = 10
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", nil, fmt.Errorf("invalid regex pattern: %w", err)
	}

	validated, err := ValidatePathSecure(basePath)
	if err != nil {
		return "", nil, err
	}
	basePath = validated

	info, err := os.Stat(basePath)
	if err != nil {
		return "", nil, fmt.Errorf("cannot access path: %w", err)
	}

	var matches []grepMatch
	total := 0

	searchFile := func(path string) error {
		if include != "" {
			if ok, _ := filepath.Match(include, filepath.Base(path)); !ok {
				return nil
			}
		}
		f, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer f.Close()

		var lines []string
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		for i, line := range lines {
			if !re.MatchString(line) {
				continue
			}
			total++
			if len(matches) >= grepMaxMatches {
				continue
			}
			var ctxLines []string
			if contextLines > 0 {
				start := i - contextLines
				if start < 0 {
					start = 0
				}
				end := i + contextLines + 1
				if end > len(lines) {
					end = len(lines)
				}
				ctxLines = lines[start:end]
			}
			matches = append(matches, grepMatch{file: path, line: i + 1, text: line, context: ctxLines})
		}
		return nil
	}

	if !info.IsDir() {
		if err := searchFile(basePath); err != nil {
			return "", nil, err
		}
	} else {
		walkErr := filepath.WalkDir(basePath, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if d.IsDir() {
				if path != basePath && shouldIgnoreDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return nil
			}
			if isLikelyBinary(path) {
				return nil
			}
			return searchFile(path)
		})
		if walkErr != nil && walkErr != context.Canceled {
			return "", nil, fmt.Errorf("error walking directory: %w", walkErr)
		}
	}

	if len(matches) == 0 {
		return fmt.Sprintf("No matches found for pattern: %s", pattern), nil, nil
	}

	var out strings.Builder
	for _, m := range matches {
		if contextLines > 0 {
			fmt.Fprintf(&out, "%s:%d:\n", m.file, m.line)
			for _, c := range m.context {
				out.WriteString("  " + c + "\n")
			}
			out.WriteString("\n")
			continue
		}
		fmt.Fprintf(&out, "%s:%d:%s\n", m.file, m.line, m.text)
	}
	output := strings.TrimRight(out.String(), "\n")
	if total > len(matches) {
		output += fmt.Sprintf("\n\n[limited to %d of %d matches]", grepMaxMatches, total)
	}
	return output, nil, nil
}

var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true, ".pdf": true,
	".zip": true, ".tar": true, ".gz": true, ".exe": true, ".dll": true, ".so": true,
	".bin": true, ".dat": true, ".db": true, ".sqlite": true, ".woff": true, ".woff2": true,
}

func isLikelyBinary(path string) bool {
	return binaryExtensions[strings.ToLower(filepath.Ext(path))]
}

func listDirectoryDefinition(workDir string) *Definition {
	return &Definition{
		Name:        "list_directory",
		Class:       model.ToolClassReadOnly,
		Description: "List a directory as a depth-limited tree, with human-readable file sizes. Directories are marked with a trailing slash.",
		Parameters: []Parameter{
			{Name: "path", Type: "string", Description: "Directory to list. Default: the working directory."},
			{Name: "max_depth", Type: "integer", Description: "Maximum depth to descend. Default: 3."},
		},
		Handler: HandlerFunc(func(ctx context.Context, params map[string]interface{}) (string, *model.ToolPreview, error) {
			return executeListDirectory(ctx, params, workDir)
		}),
	}
}

func executeListDirectory(ctx context.Context, params map[string]interface{}, workDir string) (string, *model.ToolPreview, error) {
	path := getStringParam(params, "path", workDir)
	maxDepth := getIntParam(params, "max_depth", 3)
	if maxDepth < 1 {
		maxDepth = 1
	}

	validated, err := ValidatePathSecure(path)
	if err != nil {
		return "", nil, err
	}
	path = validated

	info, err := os.Stat(path)
	if err != nil {
		return "", nil, fmt.Errorf("cannot access path: %w", err)
	}
	if !info.IsDir() {
		return "", nil, fmt.Errorf("%s is not a directory", path)
	}

	var out strings.Builder
	out.WriteString(path + "/\n")
	if err := listTree(ctx, path, "", 1, maxDepth, &out); err != nil {
		return "", nil, err
	}
	return strings.TrimRight(out.String(), "\n"), nil, nil
}

func listTree(ctx context.Context, dir, prefix string, depth, maxDepth int, out *strings.Builder) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if e.IsDir() && shouldIgnoreDir(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if e.IsDir() {
			fmt.Fprintf(out, "%s%s/\n", prefix, e.Name())
			if depth < maxDepth {
				if err := listTree(ctx, filepath.Join(dir, e.Name()), prefix+"  ", depth+1, maxDepth, out); err != nil {
					return err
				}
			}
		} else {
			fmt.Fprintf(out, "%s%s (%s)\n", prefix, e.Name(), formatSize(info.Size()))
		}
	}
	return nil
}
