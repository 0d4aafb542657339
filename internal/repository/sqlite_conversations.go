package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"antisocial-agent/internal/domain"
)

// SQLiteConversationStore persists conversation logs so they survive a
// restart. It is an opt-in alternative to MemoryConversationStore.
type SQLiteConversationStore struct {
	db *sql.DB
}

// OpenSQLiteConversationStore opens (or creates) the database at path.
// Pass ":memory:" for an in-memory database (used by tests).
func OpenSQLiteConversationStore(path string) (*SQLiteConversationStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repository: sqlite path must not be empty")
	}
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("repository: create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("repository: open database: %w", err)
	}
	// Single connection avoids "database is locked" and keeps ":memory:" shared.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repository: ping database: %w", err)
	}

	s := &SQLiteConversationStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repository: initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteConversationStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS conversation_turns (
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		PRIMARY KEY (session_id, seq)
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteConversationStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteConversationStore) LoadConversation(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content FROM conversation_turns WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("repository: LoadConversation query: %w", err)
	}
	defer rows.Close()

	var out []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.Role, &m.Content); err != nil {
			return nil, fmt.Errorf("repository: LoadConversation scan: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: LoadConversation rows: %w", err)
	}
	return out, nil
}

// SaveConversation replaces the whole log for sessionID in one transaction.
func (s *SQLiteConversationStore) SaveConversation(ctx context.Context, sessionID string, msgs []domain.ChatMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: SaveConversation begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM conversation_turns WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("repository: SaveConversation clear: %w", err)
	}
	for i, m := range msgs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO conversation_turns (session_id, seq, role, content) VALUES (?, ?, ?, ?)`,
			sessionID, i, m.Role, m.Content); err != nil {
			return fmt.Errorf("repository: SaveConversation insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: SaveConversation commit: %w", err)
	}
	return nil
}
