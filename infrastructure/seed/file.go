// Package seed provides sources for the bundled read-only dataset that feeds
// the catalog until an overlay exists.
package seed

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads the seed dataset from a path on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a seed source over the given file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads the seed document. A missing file is a fetch failure, not an
// empty dataset.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	doc, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read seed dataset: %w", err)
	}
	return doc, nil
}
