// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

// ErrNotConfigured is returned when the client has no API key set.
var ErrNotConfigured = errors.New("llm: client not configured (missing api key)")

// ReasoningSplitHeader is the literal header the protocol requires on
// every streaming chat request.
const ReasoningSplitHeader = "X-Reasoning-Split"

// Temperature is fixed by the protocol.
const Temperature = 1.0

// sharedClient is a single pooled transport reused across requests, the
// way internal/cloud/client.go pools connections rather than dialing fresh
// per call.
var sharedClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
	},
}

// Config holds the endpoint and credentials for the Streaming Client.
type Config struct {
	BaseURL string
	APIKey  string

	// MaxRetries bounds connection-level retry attempts before the first
	// byte of a response body is read. Retries never occur mid-stream, to
	// avoid double-executing tool calls on a partially delivered turn.
	MaxRetries int
}

// Client is the Streaming Client (SC): HTTPS POST + SSE framing + delta
// decoding for a single configured LLM endpoint.
type Client struct {
	cfg Config
}

// New constructs a Client. An empty APIKey means Stream/Chat return
// ErrNotConfigured immediately.
func New(cfg Config) *Client {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &Client{cfg: cfg}
}

func (c *Client) configured() bool { return c.cfg.APIKey != "" }

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ReasoningSplitHeader, "true")
}

// StreamHandle is the handle returned by Stream: drain Events until a
// terminal Done or Error event arrives.
type StreamHandle struct {
	Events <-chan Event
}

// Stream issues a streaming chat completion request and returns a handle
// whose Events channel delivers the ordered sequence described in SPEC_FULL
// §4.1. The channel is closed after the terminal event. Cancelling ctx
// aborts the request; Stream then emits Done with finish_reason
// "cancelled" using whatever was accumulated up to that point.
func (c *Client) Stream(ctx context.Context, modelName string, messages []model.RequestMessage, tools []Tool) *StreamHandle {
	events := make(chan Event, 8)
	go c.runStream(ctx, modelName, messages, tools, events)
	return &StreamHandle{Events: events}
}

func (c *Client) runStream(ctx context.Context, modelName string, messages []model.RequestMessage, tools []Tool, out chan<- Event) {
	defer close(out)

	if !c.configured() {
		out <- Event{Kind: EventError, ErrKind: ErrTransport, Err: ErrNotConfigured}
		return
	}

	reqBody := ChatRequest{
		Model:       modelName,
		Messages:    messages,
		Stream:      true,
		Temperature: Temperature,
	}
	if len(tools) > 0 {
		reqBody.Tools = tools
		reqBody.ToolChoice = "auto"
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		out <- Event{Kind: EventError, ErrKind: ErrTransport, Err: fmt.Errorf("encode request: %w", err)}
		return
	}

	resp, err := c.doWithRetry(ctx, body)
	if err != nil {
		if ctx.Err() != nil {
			out <- Event{Kind: EventDone, FinishReason: "cancelled"}
			return
		}
		out <- Event{Kind: EventError, ErrKind: ErrTransport, Err: err}
		return
	}
	defer resp.Body.Close()

	c.processStream(ctx, resp.Body, out)
}

func (c *Client) doWithRetry(ctx context.Context, body []byte) (*http.Response, error) {
	url := c.cfg.BaseURL + "/chat/completions"

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff(attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		c.setHeaders(req)
		req.Header.Set("Accept", "text/event-stream")

		resp, err := sharedClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			defer resp.Body.Close()
			b, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf("llm: http %d: %s", resp.StatusCode, string(b))
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("llm: http %d: %s", resp.StatusCode, string(b))
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("llm: max retries exceeded: %w", lastErr)
}

func backoff(attempt int) time.Duration {
	d := 500 * time.Millisecond * time.Duration(1<<uint(attempt-1))
	if d > 10*time.Second {
		d = 10 * time.Second
	}
	return d
}

func (c *Client) processStream(ctx context.Context, body io.Reader, out chan<- Event) {
	reader := newSSEReader(body)

	var (
		chunkCount int
		sawContent bool
		toolCalls  = map[int]*ToolCallSnapshot{}
		lastFinish string
		lastUsage  int
	)

	emitToolCall := func(idx int) {
		tc := toolCalls[idx]
		out <- Event{Kind: EventToolCallDelta, ToolCall: *tc}
	}

	for {
		select {
		case <-ctx.Done():
			out <- Event{Kind: EventDone, Total: lastUsage, FinishReason: "cancelled"}
			return
		default:
		}

		data, err := reader.readEvent()
		if err != nil {
			if err == io.EOF {
				break
			}
			if errors.Is(err, context.Canceled) {
				out <- Event{Kind: EventDone, Total: lastUsage, FinishReason: "cancelled"}
				return
			}
			out <- Event{Kind: EventError, ErrKind: ErrTransport, Err: err}
			return
		}

		if bytes.Equal(data, doneSentinel) {
			break
		}

		var chunk streamChunk
		if err := json.Unmarshal(data, &chunk); err != nil {
			continue // malformed chunk, skip per transport tolerance
		}
		chunkCount++

		if chunk.Error != nil {
			out <- Event{Kind: EventError, ErrKind: ErrTransport, Err: errors.New(chunk.Error.Message)}
			return
		}
		if chunk.Usage != nil {
			lastUsage = chunk.Usage.TotalTokens
		}

		if len(chunk.Choices) > 0 {
			d := chunk.Choices[0].Delta
			if chunk.Choices[0].FinishReason != "" {
				lastFinish = chunk.Choices[0].FinishReason
			}

			if d.Content != "" {
				sawContent = true
				out <- Event{Kind: EventContentChunk, Text: d.Content}
			}
			if d.ReasoningContent != "" {
				out <- Event{Kind: EventReasoningChunk, Text: d.ReasoningContent}
			}
			for _, rd := range d.ReasoningDetails {
				if rd.Text != "" {
					out <- Event{Kind: EventReasoningChunk, Text: rd.Text, ReasoningDetail: &model.ReasoningDetail{Text: rd.Text, Raw: rd.Raw}}
				}
			}
			for _, dtc := range d.ToolCalls {
				existing, ok := toolCalls[dtc.Index]
				if !ok {
					existing = &ToolCallSnapshot{Index: dtc.Index}
					toolCalls[dtc.Index] = existing
				}
				if dtc.ID != "" {
					existing.ID = dtc.ID
				}
				if dtc.Function.Name != "" {
					existing.Name = dtc.Function.Name
				}
				existing.Arguments += dtc.Function.Arguments
				emitToolCall(dtc.Index)
			}
		}
	}

	if chunkCount == 0 && !sawContent && len(toolCalls) == 0 {
		out <- Event{Kind: EventError, ErrKind: ErrEmptyResponse, Err: errors.New("empty response")}
		return
	}

	out <- Event{Kind: EventDone, Total: lastUsage, FinishReason: lastFinish}
}

// Chat performs a single non-streaming chat completion outside the core
// loop and returns the reply text. The quota poll uses Quota, not Chat.
func (c *Client) Chat(ctx context.Context, modelName string, messages []model.RequestMessage) (string, error) {
	if !c.configured() {
		return "", ErrNotConfigured
	}

	reqBody := ChatRequest{Model: modelName, Messages: messages, Stream: false, Temperature: Temperature}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := sharedClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm: http %d: %s", resp.StatusCode, string(b))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("empty response")
	}
	return out.Choices[0].Message.Content, nil
}

// Quota polls GET /coding_plan/remains outside the core loop.
func (c *Client) Quota(ctx context.Context) (*QuotaResponse, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/coding_plan/remains", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := sharedClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("llm: http %d: %s", resp.StatusCode, string(b))
	}

	var q QuotaResponse
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &q, nil
}

