package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/okian/sema/pkg/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	channel_id TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// SQLiteStore implements Store on a single SQLite file. WAL mode and a
// busy timeout keep concurrent per-channel writers from tripping over
// each other. One row per channel holds the serialized session.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if missing) the session database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get returns the stored blob for channelID.
func (s *SQLiteStore) Get(ctx context.Context, channelID string) ([]byte, error) {
	defer observe(time.Now())

	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM sessions WHERE channel_id = ?`, channelID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("get session %s: %w", channelID, err)
	}
	return data, nil
}

// Put upserts the blob for channelID. The write is committed before Put
// returns, which is what lets the coordinator release a channel's scope
// only after the session is durable.
func (s *SQLiteStore) Put(ctx context.Context, channelID string, data []byte) error {
	defer observe(time.Now())

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (channel_id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(channel_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		channelID, data, time.Now().UTC(),
	)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("put session %s: %w", channelID, err)
	}
	return nil
}

// Delete removes the row for channelID.
func (s *SQLiteStore) Delete(ctx context.Context, channelID string) error {
	defer observe(time.Now())

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE channel_id = ?`, channelID,
	); err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("delete session %s: %w", channelID, err)
	}
	return nil
}

// Count returns the number of stored sessions.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func observe(start time.Time) {
	metrics.RecordStoreLatency(float64(time.Since(start).Milliseconds()))
}
