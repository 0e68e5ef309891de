// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package config manages the engine's home-directory state.

All persisted state lives under ~/.ace/:

	~/.ace/config.json   api key, base URL, model id, theme name,
	                     external-server map, search endpoint
	~/.ace/sessions.db   the History Store's SQLite file (see
	                     internal/history)

config.json is plain JSON, read and written with encoding/json; there
is no TOML layer. Five environment variables override the corresponding
fields after the file is loaded, in this order of precedence (lowest
to highest): built-in defaults, config.json, environment:

	ACE_API_KEY
	ACE_BASE_URL
	ACE_MODEL
	ACE_THEME
	ACE_SEARCH_ENDPOINT

Load/Save round-trip the file; Save writes to a temp file and renames
it into place so a crash mid-write can never leave config.json
truncated. Global/SetGlobal/ReloadGlobal manage a process-wide
singleton. main.go reads it once at startup and passes the values the
LLM client, the bridge manager and the tool registry (the web_search
endpoint) need through their constructors; those packages do not read
the singleton themselves. Watcher, in
watch.go, uses fsnotify to call ReloadGlobal automatically when
config.json changes on disk.
*/
package config
