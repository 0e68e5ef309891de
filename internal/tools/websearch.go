// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools provides the agentic tool system.
// websearch.go implements web_search against a configured search endpoint.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

const (
	webSearchDefaultResults = 5
	webSearchMaxResults     = 10
	webSearchTimeout        = 15 * time.Second
)

// webSearchResult is one ranked hit returned by the configured search endpoint.
type webSearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

func webSearchDefinition(searchEndpoint string) *Definition {
	return &Definition{
		Name:        "web_search",
		Class:       model.ToolClassReadOnly,
		Description: "Search the web for a query and return a ranked list of results.",
		Parameters: []Parameter{
			{Name: "query", Type: "string", Required: true, Description: "Search query."},
			{Name: "max_results", Type: "integer", Description: "Maximum results to return. Default: 5, max: 10."},
		},
		Handler: HandlerFunc(func(ctx context.Context, params map[string]interface{}) (string, *model.ToolPreview, error) {
			return executeWebSearch(ctx, params, searchEndpoint)
		}),
	}
}

func executeWebSearch(ctx context.Context, params map[string]interface{}, searchEndpoint string) (string, *model.ToolPreview, error) {
	if searchEndpoint == "" {
		return "", nil, fmt.Errorf("no search endpoint is configured")
	}

	query, _ := params["query"].(string)
	if strings.TrimSpace(query) == "" {
		return "", nil, fmt.Errorf("query is required")
	}

	maxResults := getIntParam(params, "max_results", webSearchDefaultResults)
	if maxResults < 1 {
		maxResults = webSearchDefaultResults
	}
	if maxResults > webSearchMaxResults {
		maxResults = webSearchMaxResults
	}

	reqCtx, cancel := context.WithTimeout(ctx, webSearchTimeout)
	defer cancel()

	body, err := json.Marshal(map[string]interface{}{
		"query":       query,
		"max_results": maxResults,
	})
	if err != nil {
		return "", nil, fmt.Errorf("cannot encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, searchEndpoint, strings.NewReader(string(body)))
	if err != nil {
		return "", nil, fmt.Errorf("cannot build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("search endpoint returned status %d", resp.StatusCode)
	}

	var decoded struct {
		Results []webSearchResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", nil, fmt.Errorf("cannot parse search response: %w", err)
	}

	if len(decoded.Results) == 0 {
		return fmt.Sprintf("No results for query: %s", query), nil, nil
	}
	if len(decoded.Results) > maxResults {
		decoded.Results = decoded.Results[:maxResults]
	}

	var out strings.Builder
	for i, r := range decoded.Results {
		fmt.Fprintf(&out, "%d. %s\n   %s\n", i+1, r.Title, r.URL)
		if r.Snippet != "" {
			fmt.Fprintf(&out, "   %s\n", r.Snippet)
		}
	}
	return strings.TrimRight(out.String(), "\n"), nil, nil
}
