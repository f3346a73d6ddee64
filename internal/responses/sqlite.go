// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package responses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

// SQLiteStore persists responses in a SQLite database. Every accepted event
// is also appended to an append-only history table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and creates the
// schema if it does not exist.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite allows one writer; a single connection serializes Set calls.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS responses (
			user_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			id TEXT NOT NULL,
			value TEXT NOT NULL,
			answered_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, item_id)
		)`,
		`CREATE TABLE IF NOT EXISTS response_history (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			value TEXT NOT NULL,
			answered_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_key ON response_history(user_id, item_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key Key) (types.ResponseEvent, error) {
	return getRow(ctx, s.db, key)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getRow(ctx context.Context, q querier, key Key) (types.ResponseEvent, error) {
	var (
		ev    types.ResponseEvent
		value string
		at    int64
	)
	err := q.QueryRowContext(ctx,
		`SELECT id, item_id, value, answered_at FROM responses WHERE user_id = ? AND item_id = ?`,
		key.UserID, key.ItemID,
	).Scan(&ev.ID, &ev.ItemID, &value, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ResponseEvent{}, ErrNotFound
	}
	if err != nil {
		return types.ResponseEvent{}, fmt.Errorf("reading response %s: %w", key, err)
	}
	return decodeRow(ev, value, at)
}

func decodeRow(ev types.ResponseEvent, value string, at int64) (types.ResponseEvent, error) {
	if err := json.Unmarshal([]byte(value), &ev.Value); err != nil {
		return types.ResponseEvent{}, fmt.Errorf("decoding response %s: %w", ev.ItemID, err)
	}
	ev.AnsweredAt = time.Unix(0, at).UTC()
	return ev, nil
}

// Set upserts the event in a transaction. The conflict clause refuses to
// overwrite a row with a later answered_at, which Set reports as ErrStale.
func (s *SQLiteStore) Set(ctx context.Context, key Key, ev types.ResponseEvent) (types.ResponseEvent, error) {
	ev, err := prepare(key, ev)
	if err != nil {
		return types.ResponseEvent{}, err
	}
	value, err := json.Marshal(ev.Value)
	if err != nil {
		return types.ResponseEvent{}, fmt.Errorf("encoding response %s: %w", key, err)
	}
	at := ev.AnsweredAt.UnixNano()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.ResponseEvent{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO responses (user_id, item_id, id, value, answered_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, item_id) DO UPDATE SET
			id = excluded.id,
			value = excluded.value,
			answered_at = excluded.answered_at
		WHERE excluded.answered_at >= responses.answered_at`,
		key.UserID, key.ItemID, ev.ID, string(value), at,
	)
	if err != nil {
		return types.ResponseEvent{}, fmt.Errorf("upserting response %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return types.ResponseEvent{}, fmt.Errorf("upserting response %s: %w", key, err)
	}
	if n == 0 {
		stored, err := getRow(ctx, tx, key)
		if err != nil {
			return types.ResponseEvent{}, err
		}
		return stored, ErrStale
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO response_history (id, user_id, item_id, value, answered_at) VALUES (?, ?, ?, ?, ?)`,
		ev.ID, key.UserID, key.ItemID, string(value), at,
	)
	if err != nil {
		return types.ResponseEvent{}, fmt.Errorf("recording history for %s: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return types.ResponseEvent{}, fmt.Errorf("committing transaction: %w", err)
	}
	return ev, nil
}

// Delete removes the current response. History rows are kept.
func (s *SQLiteStore) Delete(ctx context.Context, key Key) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM responses WHERE user_id = ? AND item_id = ?`, key.UserID, key.ItemID)
	if err != nil {
		return fmt.Errorf("deleting response %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting response %s: %w", key, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, userID string) ([]types.ResponseEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, item_id, value, answered_at FROM responses
		WHERE user_id = ? ORDER BY answered_at, item_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing responses for %q: %w", userID, err)
	}
	return scanEvents(rows)
}

// History returns every accepted event for key, oldest first, including
// events later superseded or deleted.
func (s *SQLiteStore) History(ctx context.Context, key Key) ([]types.ResponseEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, item_id, value, answered_at FROM response_history
		WHERE user_id = ? AND item_id = ? ORDER BY seq`, key.UserID, key.ItemID)
	if err != nil {
		return nil, fmt.Errorf("reading history for %s: %w", key, err)
	}
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]types.ResponseEvent, error) {
	defer rows.Close()

	out := []types.ResponseEvent{}
	for rows.Next() {
		var (
			ev    types.ResponseEvent
			value string
			at    int64
		)
		if err := rows.Scan(&ev.ID, &ev.ItemID, &value, &at); err != nil {
			return nil, fmt.Errorf("scanning response: %w", err)
		}
		ev, err := decodeRow(ev, value, at)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
