// ace - a terminal assistant that drives a remote model through tool calls.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ezeoli88/agentic-conversation-engine/internal/bridge"
	"github.com/ezeoli88/agentic-conversation-engine/internal/cli"
	"github.com/ezeoli88/agentic-conversation-engine/internal/config"
	"github.com/ezeoli88/agentic-conversation-engine/internal/engine"
	"github.com/ezeoli88/agentic-conversation-engine/internal/history"
	"github.com/ezeoli88/agentic-conversation-engine/internal/llm"
	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
	"github.com/ezeoli88/agentic-conversation-engine/internal/obslog"
	"github.com/ezeoli88/agentic-conversation-engine/internal/tools"
	"github.com/ezeoli88/agentic-conversation-engine/internal/ui/chat"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func init() {
	cli.Version = Version
}

func main() {
	args, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if args.Help {
		fmt.Print(cli.Usage())
		return
	}
	if args.ShowVersion {
		fmt.Println(cli.Version)
		return
	}

	cfg := config.Global()
	cfg.ApplyEnvOverrides()
	if args.Model != "" {
		cfg.Model = args.Model
	}
	if args.Theme != "" {
		cfg.Theme = args.Theme
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := obslog.Default()

	store, err := openHistoryStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if args.ListSessions {
		if err := listSessions(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	bridgeMgr := bridge.NewManager()
	for name, srv := range cfg.ExternalServers {
		if err := bridgeMgr.Connect(name, bridge.ServerConfig{
			Command: srv.Command,
			Args:    srv.Args,
			Env:     srv.Env,
		}); err != nil {
			log.Warn("BRIDGE_CONNECT_FAILED", "server", name, "err", err.Error())
		}
	}

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	registry := tools.NewRegistry(workDir, bridgeMgr, cfg.SearchEndpoint)
	executor := tools.NewExecutor(registry, bridgeMgr)

	client := llm.New(llm.Config{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey})
	prompts := config.NewPromptBuilder()

	eng := engine.New(client, executor, store, prompts, log)
	if args.Plan {
		eng.SetMode(model.ModePlan)
	}

	ctx := context.Background()

	if args.SessionID != "" {
		if err := eng.LoadSession(ctx, args.SessionID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not load session %q: %v\n", args.SessionID, err)
			os.Exit(1)
		}
	} else if err := eng.StartSession(ctx, cfg.Model); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not start session: %v\n", err)
		os.Exit(1)
	}

	m := chat.New(ctx, eng)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running ace: %v\n", err)
		os.Exit(1)
	}
}

func openHistoryStore() (*history.Store, error) {
	path, err := config.SessionsDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve sessions database path: %w", err)
	}
	if err := config.EnsureConfigDir(); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	store, err := history.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sessions database: %w", err)
	}
	return store, nil
}

func listSessions(store *history.Store) error {
	sessions, err := store.ListSessions(context.Background())
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("no saved sessions")
		return nil
	}
	for _, sess := range sessions {
		fmt.Printf("%s  %-30s  %s  %s\n", sess.ID, sess.DisplayName, sess.ModelName, sess.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
