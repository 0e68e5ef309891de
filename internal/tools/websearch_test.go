// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecuteWebSearchReturnsRankedResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "golang channels", req["query"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]string{
				{"title": "Effective Go", "url": "https://go.dev/doc/effective_go", "snippet": "channels..."},
				{"title": "Concurrency patterns", "url": "https://go.dev/blog/pipelines", "snippet": "pipeline..."},
			},
		})
	}))
	defer srv.Close()

	out, preview, err := executeWebSearch(context.Background(), map[string]interface{}{
		"query": "golang channels",
	}, srv.URL)
	require.NoError(t, err)
	require.Nil(t, preview)
	require.Contains(t, out, "Effective Go")
	require.Contains(t, out, "Concurrency patterns")
}

func TestExecuteWebSearchNoEndpointConfigured(t *testing.T) {
	_, _, err := executeWebSearch(context.Background(), map[string]interface{}{"query": "x"}, "")
	require.Error(t, err)
}

func TestExecuteWebSearchEmptyQuery(t *testing.T) {
	_, _, err := executeWebSearch(context.Background(), map[string]interface{}{"query": "  "}, "http://example.invalid")
	require.Error(t, err)
}

func TestExecuteWebSearchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []map[string]string{}})
	}))
	defer srv.Close()

	out, _, err := executeWebSearch(context.Background(), map[string]interface{}{"query": "nothing"}, srv.URL)
	require.NoError(t, err)
	require.Contains(t, out, "No results")
}
