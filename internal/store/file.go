package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements KV as a single JSON object on disk mapping keys to
// string values. Writes go to a temp file that is renamed into place,
// under an exclusive file lock.
type FileStore struct {
	path string
	lock *FileLocker
	mu   sync.Mutex
}

// NewFileStore returns a FileStore for path, creating the parent directory.
// The file itself is created on the first Set.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileStore{
		path: path,
		lock: NewFileLocker(path + ".lock"),
	}, nil
}

// Path returns the JSON document path.
func (s *FileStore) Path() string { return s.path }

// Get implements KV. The document is re-read on every call.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := doc[key]
	return v, ok, nil
}

// Set implements KV.
func (s *FileStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(ctx); err != nil {
		return err
	}
	defer func() { _ = s.lock.Unlock() }()

	doc, err := s.read()
	if errors.Is(err, ErrCorrupt) {
		// The other keys are unreadable anyway; start a fresh document.
		doc = make(map[string]string)
	} else if err != nil {
		return err
	}
	doc[key] = value

	return s.write(doc)
}

// Close implements KV.
func (s *FileStore) Close() error { return nil }

// read loads the document. A missing or empty file is an empty document.
func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return make(map[string]string), nil
	}

	doc := make(map[string]string)
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w: %v", s.path, ErrCorrupt, err)
	}
	return doc, nil
}

// write replaces the document atomically.
func (s *FileStore) write(doc map[string]string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
