// Package history keeps a client-local log of searches and generated
// recommendations in SQLite. It is a convenience record; nothing else
// depends on it and losing it loses nothing but the log.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump on schema changes;
// mismatched databases are recreated, the log is not worth migrating.
const schemaVersion = 1

// Kind labels what a history entry records.
type Kind string

const (
	KindSearch         Kind = "search"
	KindRecommendation Kind = "recommendation"
)

// Entry is one logged event.
type Entry struct {
	ID        int64
	Kind      Kind
	Subject   string
	Detail    string
	CreatedAt time.Time
}

// Store manages history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		if err := s.dropSchema(ctx); err != nil {
			return err
		}
		return s.createSchema(ctx)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}

func (s *Store) dropSchema(ctx context.Context) error {
	for _, stmt := range []string{
		"DROP TABLE IF EXISTS history_entries",
		"DROP TABLE IF EXISTS schema_version",
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset schema: %w", err)
		}
	}
	return nil
}

// RecordSearch logs one search submission.
func (s *Store) RecordSearch(ctx context.Context, mode, keyword string) error {
	return s.insert(ctx, KindSearch, keyword, mode)
}

// RecordRecommendation logs one generated recommendation.
func (s *Store) RecordRecommendation(ctx context.Context, itemName, text string) error {
	return s.insert(ctx, KindRecommendation, itemName, text)
}

func (s *Store) insert(ctx context.Context, kind Kind, subject, detail string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return errors.New("history subject cannot be empty")
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO history_entries (kind, subject, detail, created_at) VALUES (?, ?, ?, ?)",
		string(kind),
		subject,
		nullableString(detail),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, kind, subject, COALESCE(detail, ''), created_at FROM history_entries ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var kind, createdAt string
		if err := rows.Scan(&entry.ID, &kind, &entry.Subject, &entry.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entry.Kind = Kind(kind)
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
