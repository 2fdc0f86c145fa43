package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tartampluch/go-contacts/internal/config"
)

const (
	createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS snapshots (
	slot TEXT PRIMARY KEY,
	data BLOB NOT NULL
);`
	selectSnapshot = `SELECT data FROM snapshots WHERE slot = ?;`
	upsertSnapshot = `
INSERT INTO snapshots (slot, data) VALUES (?, ?)
ON CONFLICT(slot) DO UPDATE SET data = excluded.data;`
)

// SQLiteStore keeps the snapshot slot as a row in a local SQLite database,
// the closest native analog of a browser's key-value storage.
type SQLiteStore struct {
	db   *sql.DB
	slot string
}

// OpenSQLiteStore opens (creating if needed) the database and the snapshots
// table.
func OpenSQLiteStore(path, slot string) (*SQLiteStore, error) {
	db, err := sql.Open(config.SQLiteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStorageOpen, err)
	}
	if _, err := db.Exec(createSnapshotsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrStorageOpen, err)
	}
	return &SQLiteStore{db: db, slot: slot}, nil
}

// Load returns the slot payload, or (nil, nil) when the slot was never
// written.
func (s *SQLiteStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, selectSnapshot, s.slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSnapshotRead, err)
	}
	return data, nil
}

// Save replaces the slot payload. The upsert makes the write last-writer-wins,
// matching the persistence policy of the book.
func (s *SQLiteStore) Save(ctx context.Context, data []byte) error {
	if _, err := s.db.ExecContext(ctx, upsertSnapshot, s.slot, data); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSnapshotWrite, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
