// Package file provides a plain-text file backend for sequence state.
//
// The record is a single line of base-10 ASCII digits. Writes go to a
// temporary sibling and are renamed over the record, so a failed write
// never leaves a truncated record behind.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/seqgen/internal/sequence/storage"
)

// DefaultPath is the record location relative to the working directory.
const DefaultPath = "seed.txt"

const recordMode fs.FileMode = 0o644

// Store persists sequence state in a text file.
type Store struct {
	path string
}

// Open returns a store for the record at path. The record itself is not
// touched until Load or Save.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	return &Store{path: filepath.Clean(path)}, nil
}

// Location returns the record path.
func (s *Store) Location() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Load reads the record. A missing record reports ok=false.
func (s *Store) Load(ctx context.Context) (uint32, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if s == nil || s.path == "" {
		return 0, false, fmt.Errorf("storage is not configured")
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read state: %w", err)
	}
	seed, err := storage.ParseState(s.path, string(data))
	if err != nil {
		return 0, false, err
	}
	return seed, true, nil
}

// Save replaces the record with seed.
func (s *Store) Save(ctx context.Context, seed uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.path == "" {
		return fmt.Errorf("storage is not configured")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(storage.FormatState(seed) + "\n"); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state: %w", err)
	}
	if err := os.Chmod(tmpName, recordMode); err != nil {
		return fmt.Errorf("chmod temp state: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	committed = true
	return nil
}

var _ storage.StateStore = (*Store)(nil)
