// Package storage provides the persistence slot the contact book synchronizes
// with: one named slot holding the serialized contact list. Two backends are
// available, a plain JSON file and a single-table SQLite database.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Store is a snapshot slot with a lifecycle. It satisfies the book's
// Snapshot interface.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// Open creates the backend selected by preference, rooted in the user's
// config directory.
func Open(backend string) (Store, error) {
	dir, err := appDataDir()
	if err != nil {
		return nil, err
	}

	slog.Debug("Opening snapshot storage",
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyBackend, backend)

	switch backend {
	case config.StorageBackendFile:
		return NewFileStore(filepath.Join(dir, config.SnapshotFileName)), nil
	case config.StorageBackendSQLite:
		return OpenSQLiteStore(filepath.Join(dir, config.SQLiteFileName), config.SnapshotSlot)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrUnknownBackend, backend)
	}
}

// appDataDir resolves and creates the platform-specific data directory.
func appDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrConfigDir, err)
	}

	appDir := filepath.Join(configDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return appDir, nil
}
