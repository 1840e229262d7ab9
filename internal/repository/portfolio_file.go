package repository

import (
	"context"
	"log"
	"os"
	"path/filepath"
)

// FileStore writes the assembled portfolio to a local markdown file.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir ("." for the working
// directory).
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir}
}

// Save writes content to <dir>/<name>, creating the directory if needed.
func (s *FileStore) Save(_ context.Context, name, content string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	log.Printf("[File Store] wrote %s (%d bytes)", path, len(content))
	return nil
}
