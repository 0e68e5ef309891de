// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package bridge is the External Bridge: a JSON-RPC 2.0 client per
// configured external server, spoken over the server's stdio using
// Content-Length length-prefixed framing.
package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

const callTimeout = 15 * time.Second

// ServerConfig describes how to launch one external server subprocess.
type ServerConfig struct {
	Command string
	Args    []string
	Env     map[string]string
}

// Tool is one tool schema exposed by a connected server, before it is
// name-prefixed by Manager.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any

	// Class is inferred from the MCP tool's own annotations.readOnlyHint
	// (protocol revision 2024-11-05 §Tool Annotations); see
	// classFromReadOnlyHint for the default when it's absent.
	Class model.ToolClass
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *rpcError) Error() string { return fmt.Sprintf("bridge: rpc error %d: %s", e.Code, e.Message) }

// Client is a JSON-RPC 2.0 connection to one external server subprocess,
// framed with Content-Length headers in both directions.
type Client struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader

	requestID atomic.Int64
	mu        sync.Mutex
	pending   sync.Map // map[int64]chan *response

	toolsOnce sync.Once
	tools     []Tool
	toolsErr  error
}

// Connect launches the server and completes the initialize handshake.
func Connect(cfg ServerConfig) (*Client, error) {
	cmd := exec.Command(cfg.Command, cfg.Args...)
	for k, v := range cfg.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("bridge: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("bridge: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("bridge: start server: %w", err)
	}

	c := &Client{cmd: cmd, stdin: stdin, stdout: bufio.NewReader(stdout)}
	go c.readLoop()

	if err := c.initialize(); err != nil {
		c.Close()
		return nil, fmt.Errorf("bridge: initialize: %w", err)
	}
	return c, nil
}

// readLoop parses Content-Length framed messages from stdout and routes
// each response to the goroutine awaiting its id.
func (c *Client) readLoop() {
	for {
		header, err := c.stdout.ReadString('\n')
		if err != nil {
			return
		}
		header = strings.TrimSpace(header)
		if header == "" {
			continue
		}
		if !strings.HasPrefix(header, "Content-Length: ") {
			continue
		}
		length, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(header, "Content-Length: ")))
		if err != nil {
			continue
		}
		// Blank line separating headers from the body.
		if _, err := c.stdout.ReadString('\n'); err != nil {
			return
		}
		body := make([]byte, length)
		if _, err := io.ReadFull(c.stdout, body); err != nil {
			return
		}

		var resp response
		if err := json.Unmarshal(body, &resp); err != nil {
			continue
		}
		if ch, ok := c.pending.LoadAndDelete(resp.ID); ok {
			ch.(chan *response) <- &resp
		}
	}
}

func (c *Client) writeFramed(req *request) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("bridge: marshal request: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintf(c.stdin, "Content-Length: %d\r\n\r\n%s", len(data), data); err != nil {
		return fmt.Errorf("bridge: write request: %w", err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method string, params any) (*response, error) {
	req := &request{JSONRPC: "2.0", ID: c.requestID.Add(1), Method: method, Params: params}

	ch := make(chan *response, 1)
	c.pending.Store(req.ID, ch)
	defer c.pending.Delete(req.ID)

	if err := c.writeFramed(req); err != nil {
		return nil, err
	}

	select {
	case resp := <-ch:
		if resp.Error != nil {
			return nil, resp.Error
		}
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(callTimeout):
		return nil, fmt.Errorf("bridge: call %q timed out after %s", method, callTimeout)
	}
}

func (c *Client) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	_, err := c.call(ctx, "initialize", map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "agentic-conversation-engine", "version": "1"},
	})
	if err != nil {
		return err
	}

	notif := &request{JSONRPC: "2.0", ID: c.requestID.Add(1), Method: "notifications/initialized"}
	return c.writeFramed(notif)
}

// ListTools fetches and caches the server's tool schemas.
func (c *Client) ListTools(ctx context.Context) ([]Tool, error) {
	c.toolsOnce.Do(func() {
		resp, err := c.call(ctx, "tools/list", nil)
		if err != nil {
			c.toolsErr = err
			return
		}
		tools, err := decodeToolsList(resp.Result)
		if err != nil {
			c.toolsErr = err
			return
		}
		c.tools = tools
	})
	return c.tools, c.toolsErr
}

// decodeToolsList parses a tools/list result into Tools, inferring each
// one's Class from its annotations.readOnlyHint.
func decodeToolsList(raw json.RawMessage) ([]Tool, error) {
	var result struct {
		Tools []struct {
			Name        string         `json:"name"`
			Description string         `json:"description"`
			InputSchema map[string]any `json:"inputSchema"`
			Annotations *struct {
				ReadOnlyHint *bool `json:"readOnlyHint"`
			} `json:"annotations"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("bridge: decode tools/list: %w", err)
	}
	tools := make([]Tool, 0, len(result.Tools))
	for _, t := range result.Tools {
		var readOnlyHint *bool
		if t.Annotations != nil {
			readOnlyHint = t.Annotations.ReadOnlyHint
		}
		tools = append(tools, Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
			Class:       classFromReadOnlyHint(readOnlyHint),
		})
	}
	return tools, nil
}

// classFromReadOnlyHint maps an MCP tool's optional annotations.readOnlyHint
// to a ToolClass. A server that omits the hint is assumed Mutating: a
// bridge tool's side effects are opaque to this engine, so the safe default
// in PLAN mode is to deny rather than guess it's read-only.
func classFromReadOnlyHint(readOnlyHint *bool) model.ToolClass {
	if readOnlyHint != nil && *readOnlyHint {
		return model.ToolClassReadOnly
	}
	return model.ToolClassMutating
}

// CallTool invokes name on the server with args and returns its
// concatenated text content.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	resp, err := c.call(ctx, "tools/call", map[string]any{"name": name, "arguments": args})
	if err != nil {
		return "", err
	}
	out, isError, err := decodeToolCallResult(resp.Result)
	if err != nil {
		return "", err
	}
	if isError {
		return out, fmt.Errorf("bridge: tool error: %s", out)
	}
	return out, nil
}

// decodeToolCallResult parses a tools/call result's content array into a
// single string, joining each text entry with a newline.
func decodeToolCallResult(raw json.RawMessage) (string, bool, error) {
	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", false, fmt.Errorf("bridge: decode tools/call result: %w", err)
	}
	var parts []string
	for _, c := range result.Content {
		if c.Type == "text" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n"), result.IsError, nil
}

// Close terminates the subprocess.
func (c *Client) Close() error {
	c.stdin.Close()
	if c.cmd.Process != nil {
		return c.cmd.Process.Kill()
	}
	return nil
}
