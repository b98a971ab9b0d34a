// Package file persists the catalog overlay as a single JSON document on
// disk. Writes go through a temp file in the same directory followed by a
// rename, so a rejected or interrupted write never corrupts the committed
// document.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store is a file-backed overlay slot.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a file store at the given path, creating parent
// directories as needed.
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create overlay directory: %w", err)
		}
	}
	return &Store{path: path, logger: logger}, nil
}

// Read returns the overlay document, reporting absence when the file does not
// exist yet.
func (s *Store) Read(ctx context.Context) ([]byte, bool, error) {
	doc, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, true, fmt.Errorf("read overlay: %w", err)
	}
	return doc, true, nil
}

// WriteAll replaces the overlay document wholesale.
func (s *Store) WriteAll(ctx context.Context, doc []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".overlay-*.json")
	if err != nil {
		return fmt.Errorf("create temp overlay: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp overlay: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp overlay: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace overlay: %w", err)
	}

	s.logger.Debug("overlay replaced", zap.String("path", s.path), zap.Int("bytes", len(doc)))
	return nil
}
