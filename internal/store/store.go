package store

import (
	"context"
	"errors"
	"sync"
)

// Keys used in the local key-value store.
const (
	KeyTodos = "todos"
	KeyTheme = "theme"
)

var (
	// ErrNotFound is returned when no todo has the requested id.
	ErrNotFound = errors.New("todo not found")

	// ErrEmptyTitle is returned when a todo would be stored without a title.
	ErrEmptyTitle = errors.New("todo title must not be empty")

	// ErrCorrupt is returned by a backend whose underlying document cannot
	// be parsed at all.
	ErrCorrupt = errors.New("stored data is corrupt")
)

// KV is durable local key-value storage holding string values. It plays
// the part of browser localStorage: whole values are read and replaced,
// never patched.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error

	// Close releases the backend.
	Close() error
}

// MemoryKV is a process-local KV used by tests and dry runs.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryKV returns an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get implements KV.
func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KV.
func (m *MemoryKV) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Close implements KV.
func (m *MemoryKV) Close() error { return nil }
