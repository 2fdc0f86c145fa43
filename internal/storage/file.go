package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-contacts/internal/config"
)

// FileStore keeps the snapshot slot in a single JSON file.
type FileStore struct {
	Path string
}

// NewFileStore creates a file-backed slot at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load returns the file contents, or (nil, nil) when no snapshot has ever
// been written.
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	_ = ctx
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSnapshotRead, err)
	}
	return data, nil
}

// Save writes the slot atomically: the payload goes to a sibling temp file
// which is then renamed over the target, so a crash mid-write never leaves a
// truncated snapshot behind.
func (s *FileStore) Save(ctx context.Context, data []byte) error {
	_ = ctx
	if err := os.MkdirAll(filepath.Dir(s.Path), config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSnapshotWrite, err)
	}

	tmp := s.Path + config.SnapshotTmpExt
	if err := os.WriteFile(tmp, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSnapshotWrite, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%s: %w", config.ErrSnapshotWrite, err)
	}
	return nil
}

// Close implements Store; a file slot holds no open handle.
func (s *FileStore) Close() error {
	return nil
}
