// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses the engine's command-line surface.
//
// There is one command and seven flags: --model, --plan, --theme,
// --session, --list-sessions, --help, --version. main.go calls Parse,
// merges the result into config.Global() (flags win over config.json),
// then either lists sessions and exits, prints help/version and exits,
// or starts the Bubble Tea program.
package cli
