package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nhle/todo/internal/model"
)

// Adapter reads and writes the whole todo collection and the theme flag
// in a KV. It never writes partially: Save always replaces the full
// collection.
type Adapter struct {
	kv     KV
	logger *log.Logger
}

// NewAdapter returns an adapter over kv. A nil logger uses the default
// charmbracelet logger.
func NewAdapter(kv KV, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{kv: kv, logger: logger}
}

// Load returns the stored collection in stored order. An absent or
// unparseable value yields an empty collection; only backend I/O failures
// are returned as errors.
func (a *Adapter) Load(ctx context.Context) ([]model.Todo, error) {
	raw, ok, err := a.kv.Get(ctx, KeyTodos)
	if errors.Is(err, ErrCorrupt) {
		a.logger.Warn("stored document unreadable, starting empty", "err", err)
		return []model.Todo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading todos: %w", err)
	}
	if !ok {
		return []model.Todo{}, nil
	}

	todos, err := decodeTodos(raw)
	if err != nil {
		a.logger.Warn("stored todos malformed, starting empty", "err", err)
		return []model.Todo{}, nil
	}
	return todos, nil
}

// Save serializes the full collection, overwriting the previous value.
func (a *Adapter) Save(ctx context.Context, todos []model.Todo) error {
	raw, err := encodeTodos(todos)
	if err != nil {
		return err
	}
	if err := a.kv.Set(ctx, KeyTodos, raw); err != nil {
		return fmt.Errorf("saving todos: %w", err)
	}
	a.logger.Debug("saved todos", "count", len(todos))
	return nil
}

// LoadTheme returns the stored theme. ok is false when none is stored or
// the stored value is not "dark" or "light".
func (a *Adapter) LoadTheme(ctx context.Context) (model.Theme, bool, error) {
	raw, ok, err := a.kv.Get(ctx, KeyTheme)
	if errors.Is(err, ErrCorrupt) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("loading theme: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	t, err := model.ParseTheme(raw)
	if err != nil {
		a.logger.Warn("ignoring stored theme", "value", raw)
		return "", false, nil
	}
	return t, true, nil
}

// SaveTheme stores the theme flag.
func (a *Adapter) SaveTheme(ctx context.Context, t model.Theme) error {
	if _, err := model.ParseTheme(string(t)); err != nil {
		return err
	}
	if err := a.kv.Set(ctx, KeyTheme, string(t)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}
