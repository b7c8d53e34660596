package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"hotels/internal/domain"
	"hotels/internal/storage/snapshot"
)

// defaultMode applies to a snapshot file that does not exist yet.
const defaultMode fs.FileMode = 0o644

// Store keeps the snapshot in a single file on disk.
type Store struct{ path string }

func New(path string) *Store { return &Store{path: path} }

func (s *Store) Path() string { return s.path }

func (s *Store) Load(ctx context.Context) (*domain.Hotel, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	h, err := snapshot.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	return h, nil
}

// Save replaces the file atomically: the snapshot is written to a temp file in
// the same directory and renamed over the target. An existing file keeps its
// permission bits.
func (s *Store) Save(ctx context.Context, h *domain.Hotel) error {
	b, err := snapshot.Encode(h)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".hotel-*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if err := tmp.Chmod(s.mode()); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) mode() fs.FileMode {
	fi, err := os.Stat(s.path)
	if err != nil {
		return defaultMode
	}
	return fi.Mode().Perm()
}

func (s *Store) Close() error { return nil }
