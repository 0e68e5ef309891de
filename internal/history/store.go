// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history is the History Store (HS): SQLite-backed persistence
// for sessions and their transcripts.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/ezeoli88/agentic-conversation-engine/internal/model"
)

var ErrSessionNotFound = errors.New("history: session not found")

// pragmas mirror the connection tuning used elsewhere in this codebase for
// a single-writer, WAL-journaled SQLite database.
var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA cache_size=-64000",
	"PRAGMA temp_store=MEMORY",
	"PRAGMA mmap_size=268435456",
	"PRAGMA foreign_keys=ON",
	"PRAGMA wal_autocheckpoint=1000",
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id           TEXT PRIMARY KEY,
	display_name TEXT NOT NULL,
	model_name   TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	updated_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	session_id  TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	seq         INTEGER NOT NULL,
	role        TEXT NOT NULL,
	content     TEXT NOT NULL,
	reasoning   TEXT NOT NULL DEFAULT '',
	tool_calls  TEXT NOT NULL DEFAULT '',
	tool_call_id TEXT NOT NULL DEFAULT '',
	tool_name   TEXT NOT NULL DEFAULT '',
	preview     TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	PRIMARY KEY (session_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
`

// Store is the History Store: one SQLite database file holding every
// session and its transcript.
type Store struct {
	db *sql.DB
}

// Open creates or reopens the history database at path, applying the
// pragma set and schema on every open (both are idempotent).
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: create dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// CreateSession inserts a new session row.
func (s *Store) CreateSession(ctx context.Context, sess model.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, display_name, model_name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.DisplayName, sess.ModelName, sess.CreatedAt.UTC().Format(time.RFC3339Nano), sess.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("history: create session: %w", err)
	}
	return nil
}

// RenameSession updates display_name, used when the first user message
// retitles a session still on its default name.
func (s *Store) RenameSession(ctx context.Context, sessionID, displayName string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE sessions SET display_name = ? WHERE id = ?`, displayName, sessionID)
	if err != nil {
		return fmt.Errorf("history: rename session: %w", err)
	}
	return nil
}

// touchSession bumps updated_at, called on every appended message.
func (s *Store) touchSession(ctx context.Context, tx *sql.Tx, sessionID string, at time.Time) error {
	_, err := tx.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, at.UTC().Format(time.RFC3339Nano), sessionID)
	return err
}

// AppendMessage persists one transcript entry and bumps the owning
// session's updated_at in the same transaction.
func (s *Store) AppendMessage(ctx context.Context, m model.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("history: begin tx: %w", err)
	}
	defer tx.Rollback()

	toolCallsJSON, err := encodeToolCalls(m.ToolCalls)
	if err != nil {
		return fmt.Errorf("history: encode tool calls: %w", err)
	}
	previewJSON, err := encodePreview(m.Preview)
	if err != nil {
		return fmt.Errorf("history: encode preview: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO messages (session_id, seq, role, content, reasoning, tool_calls, tool_call_id, tool_name, preview, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.SessionID, m.Seq, string(m.Role), m.Content, m.Reasoning, toolCallsJSON, m.ToolCallID, m.ToolName, previewJSON,
		m.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("history: insert message: %w", err)
	}

	if err := s.touchSession(ctx, tx, m.SessionID, m.CreatedAt); err != nil {
		return fmt.Errorf("history: touch session: %w", err)
	}

	return tx.Commit()
}

// LoadTranscript rebuilds a Transcript from every message row for sessionID
// in ascending sequence order.
func (s *Store) LoadTranscript(ctx context.Context, sessionID string) (*model.Transcript, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, role, content, reasoning, tool_calls, tool_call_id, tool_name, preview, created_at
		FROM messages WHERE session_id = ? ORDER BY seq ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("history: load transcript: %w", err)
	}
	defer rows.Close()

	tr := model.NewTranscript(sessionID)
	for rows.Next() {
		var (
			seq                                                      int64
			role, content, reasoning, toolCallsJSON                  string
			toolCallID, toolName, previewJSON, createdAtStr          string
		)
		if err := rows.Scan(&seq, &role, &content, &reasoning, &toolCallsJSON, &toolCallID, &toolName, &previewJSON, &createdAtStr); err != nil {
			return nil, fmt.Errorf("history: scan message: %w", err)
		}

		toolCalls, err := decodeToolCalls(toolCallsJSON)
		if err != nil {
			return nil, fmt.Errorf("history: decode tool calls: %w", err)
		}
		preview, err := decodePreview(previewJSON)
		if err != nil {
			return nil, fmt.Errorf("history: decode preview: %w", err)
		}
		createdAt, _ := time.Parse(time.RFC3339Nano, createdAtStr)

		tr.Messages = append(tr.Messages, model.Message{
			Seq:        seq,
			SessionID:  sessionID,
			Role:       model.Role(role),
			CreatedAt:  createdAt,
			Content:    content,
			Reasoning:  reasoning,
			ToolCalls:  toolCalls,
			ToolCallID: toolCallID,
			ToolName:   toolName,
			Preview:    preview,
		})
		if seq >= tr.NextSeq() {
			tr.SetNextSeq(seq + 1)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate messages: %w", err)
	}
	return tr, nil
}

// GetSession fetches session metadata by id.
func (s *Store) GetSession(ctx context.Context, sessionID string) (model.Session, error) {
	var sess model.Session
	var createdAtStr, updatedAtStr string
	row := s.db.QueryRowContext(ctx, `SELECT id, display_name, model_name, created_at, updated_at FROM sessions WHERE id = ?`, sessionID)
	if err := row.Scan(&sess.ID, &sess.DisplayName, &sess.ModelName, &createdAtStr, &updatedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return model.Session{}, ErrSessionNotFound
		}
		return model.Session{}, fmt.Errorf("history: get session: %w", err)
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)
	sess.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAtStr)
	return sess, nil
}

// ListSessions returns session metadata ordered most-recently-updated first.
func (s *Store) ListSessions(ctx context.Context) ([]model.Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, display_name, model_name, created_at, updated_at FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("history: list sessions: %w", err)
	}
	defer rows.Close()

	var out []model.Session
	for rows.Next() {
		var sess model.Session
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&sess.ID, &sess.DisplayName, &sess.ModelName, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("history: scan session: %w", err)
		}
		sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)
		sess.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAtStr)
		out = append(out, sess)
	}
	return out, rows.Err()
}

// DeleteSession removes a session and its messages (cascade via foreign key).
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("history: delete session: %w", err)
	}
	return nil
}
