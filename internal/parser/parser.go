// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package parser implements the Incremental Parser (IP): a single forward
// scan over a raw content buffer that separates prose, <think> reasoning,
// and <minimax:tool_call> invocations, tolerating a buffer that may end
// mid-tag because it was assembled from a partial stream.
package parser

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

const (
	thinkOpen     = "<think>"
	thinkClose    = "</think>"
	toolCallOpen  = "<minimax:tool_call>"
	toolCallClose = "</minimax:tool_call>"
	invokeOpen    = "<invoke"
	invokeClose   = "</invoke>"
	paramOpen     = "<parameter"
	paramClose    = "</parameter>"
)

// danglingPrefixes are the literal tags whose prefix, if it is the last
// thing in the buffer, must be stripped from content rather than shown to
// the user as a fragment of markup. Checked longest-first so a full tag
// isn't mistaken for a shorter one's prefix.
var danglingPrefixes = []string{toolCallClose, toolCallOpen, thinkClose, thinkOpen}

// Result is the parse output for one complete or partial buffer.
type Result struct {
	Content   string
	Reasoning string
	ToolCalls []model.ToolCall

	// Pending is true if the buffer ends mid-tag or with an unclosed
	// <think> / <minimax:tool_call> block -- a live-preview flag, not an
	// error.
	Pending bool
}

// IDFunc supplies the deterministic suffix for synthesized XML tool-call
// ids (xml_tc_<ts>_<i>); the timestamp is supplied by the caller (CL) so
// the parser itself performs no wall-clock reads, keeping it pure.
type IDFunc func(i int) string

// Parse scans rawContent for <think> and <minimax:tool_call> blocks,
// joins their reasoning with structuredReasoning by a single newline (per
// the policy of preserving both channels verbatim, never deduplicating),
// and returns the user-visible content with all complete blocks removed.
func Parse(rawContent, structuredReasoning string, newID IDFunc) Result {
	var (
		content   strings.Builder
		reasoning []string
		calls     []model.ToolCall
		pending   bool
		callIndex int
	)

	if structuredReasoning != "" {
		reasoning = append(reasoning, structuredReasoning)
	}

	i := 0
	for i < len(rawContent) {
		if rest := rawContent[i:]; strings.HasPrefix(rest, thinkOpen) {
			closeIdx := strings.Index(rest, thinkClose)
			if closeIdx == -1 {
				// Unclosed <think>: everything after it is partial
				// reasoning; truncate content here.
				if partial := strings.TrimSpace(rest[len(thinkOpen):]); partial != "" {
					reasoning = append(reasoning, partial)
				}
				pending = true
				break
			}
			inner := rest[len(thinkOpen):closeIdx]
			reasoning = append(reasoning, strings.TrimSpace(inner))
			i += closeIdx + len(thinkClose)
			continue
		}

		if rest := rawContent[i:]; strings.HasPrefix(rest, toolCallOpen) {
			closeIdx := strings.Index(rest, toolCallClose)
			if closeIdx == -1 {
				pending = true
				break
			}
			block := rest[len(toolCallOpen):closeIdx]
			calls = append(calls, parseInvokes(block, newID, &callIndex)...)
			i += closeIdx + len(toolCallClose)
			continue
		}

		content.WriteByte(rawContent[i])
		i++
	}

	// Strip a dangling prefix of any recognized tag at the very end of the
	// accumulated content, per the single shared detector used for both
	// think- and tool-call-tag prefixes regardless of why the scan stopped.
	contentStr, stripped := stripDanglingPrefix(content.String())
	if stripped {
		pending = true
	}

	return Result{
		Content:   contentStr,
		Reasoning: strings.Join(reasoning, "\n"),
		ToolCalls: calls,
		Pending:   pending,
	}
}

// stripDanglingPrefix removes a trailing dangling prefix of any recognized
// tag literal from s -- the one function spec's REDESIGN FLAG calls for,
// shared by both the think- and tool-call-tag cases. The bool return
// reports whether a prefix was actually stripped, so the caller can mark
// the result pending.
func stripDanglingPrefix(s string) (string, bool) {
	for _, tag := range danglingPrefixes {
		for n := len(tag) - 1; n > 0; n-- {
			if strings.HasSuffix(s, tag[:n]) {
				return s[:len(s)-n], true
			}
		}
	}
	return s, false
}

// parseInvokes extracts every <invoke name="N">...</invoke> in block.
func parseInvokes(block string, newID IDFunc, callIndex *int) []model.ToolCall {
	var calls []model.ToolCall
	i := 0
	for {
		start := strings.Index(block[i:], invokeOpen)
		if start == -1 {
			break
		}
		start += i
		tagEnd := strings.Index(block[start:], ">")
		if tagEnd == -1 {
			break
		}
		tagEnd += start
		name := extractAttr(block[start:tagEnd+1], "name")

		bodyStart := tagEnd + 1
		end := strings.Index(block[bodyStart:], invokeClose)
		if end == -1 {
			break
		}
		end += bodyStart
		body := block[bodyStart:end]

		args := parseParameters(body)
		encoded, _ := json.Marshal(args)

		id := newID(*callIndex)
		*callIndex++

		calls = append(calls, model.ToolCall{
			ID:        id,
			Name:      name,
			Arguments: string(encoded),
		})

		i = end + len(invokeClose)
	}
	return calls
}

// parseParameters extracts every <parameter name="K">V</parameter> in
// body and coerces V per the documented ordering: bool, int, float, JSON,
// else string.
func parseParameters(body string) map[string]any {
	args := map[string]any{}
	i := 0
	for {
		start := strings.Index(body[i:], paramOpen)
		if start == -1 {
			break
		}
		start += i
		tagEnd := strings.Index(body[start:], ">")
		if tagEnd == -1 {
			break
		}
		tagEnd += start
		key := extractAttr(body[start:tagEnd+1], "name")

		valStart := tagEnd + 1
		end := strings.Index(body[valStart:], paramClose)
		if end == -1 {
			break
		}
		end += valStart
		raw := strings.TrimSpace(body[valStart:end])

		args[key] = coerce(raw)
		i = end + len(paramClose)
	}
	return args
}

// coerce converts a trimmed parameter value string in the order: bool,
// int, float, JSON array/object, else leaves it as a string.
func coerce(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if isAllDigits(raw) {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	}
	if isFloatLike(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	if strings.HasPrefix(raw, "[") || strings.HasPrefix(raw, "{") {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			return v
		}
	}
	return raw
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isFloatLike(s string) bool {
	dot := strings.IndexByte(s, '.')
	if dot <= 0 || dot == len(s)-1 {
		return false
	}
	return isAllDigits(s[:dot]) && isAllDigits(s[dot+1:])
}

// extractAttr finds name="VALUE" inside an opening tag's literal text.
func extractAttr(tag, attr string) string {
	needle := attr + "=\""
	idx := strings.Index(tag, needle)
	if idx == -1 {
		return ""
	}
	idx += len(needle)
	end := strings.IndexByte(tag[idx:], '"')
	if end == -1 {
		return ""
	}
	return tag[idx : idx+end]
}
