package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists each collection as a single JSON array file under a data
// directory. This reproduces the original deployment's storage model: one flat
// file per collection, rewritten in full on every save.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating the directory if it
// does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load reads the named collection file into dst. A missing file is created
// holding an empty array before first use. A file that exists but cannot be
// read or parsed is an error, never an empty result.
func (s *FileStore) Load(ctx context.Context, name string, dst any) error {
	raw, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		if err := s.writeFile(name, []byte("[]")); err != nil {
			return err
		}
		raw = []byte("[]")
	} else if err != nil {
		return fmt.Errorf("failed to read collection %s: %w", name, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("collection %s is corrupt: %w", name, err)
	}

	return nil
}

// Save replaces the named collection file with the given records.
func (s *FileStore) Save(ctx context.Context, name string, records any) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", name, err)
	}

	return s.writeFile(name, raw)
}

// writeFile writes via a temp file plus rename so a crash mid-write never
// leaves a truncated collection behind.
func (s *FileStore) writeFile(name string, raw []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for collection %s: %w", name, err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write collection %s: %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close collection %s: %w", name, err)
	}

	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace collection %s: %w", name, err)
	}

	return nil
}
