package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nhle/todo/internal/model"
)

// Repository is the one place that mutates the persisted collection.
// Every mutation re-reads the latest stored collection, applies its change
// and writes the full collection back while holding the Locker, so views
// never overwrite each other's changes with stale in-memory state.
type Repository struct {
	adapter *Adapter
	locker  Locker
	logger  *log.Logger
	now     func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithLocker sets the lock held around read-modify-write cycles.
func WithLocker(l Locker) Option {
	return func(r *Repository) { r.locker = l }
}

// WithClock overrides time.Now, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Repository) { r.logger = l }
}

// NewRepository returns a repository over adapter. Without WithLocker it
// only serializes callers within this process.
func NewRepository(adapter *Adapter, opts ...Option) *Repository {
	r := &Repository{
		adapter: adapter,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.locker == nil {
		r.locker = &mutexLocker{}
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// Adapter returns the underlying store adapter.
func (r *Repository) Adapter() *Adapter { return r.adapter }

// List loads the full collection.
func (r *Repository) List(ctx context.Context) ([]model.Todo, error) {
	return r.adapter.Load(ctx)
}

// Get loads the collection and returns the todo with id.
func (r *Repository) Get(ctx context.Context, id int64) (model.Todo, error) {
	todos, err := r.adapter.Load(ctx)
	if err != nil {
		return model.Todo{}, err
	}
	if i := indexOf(todos, id); i >= 0 {
		return todos[i], nil
	}
	return model.Todo{}, fmt.Errorf("todo %d: %w", id, ErrNotFound)
}

// Add creates a todo at the front of the collection. The id is the
// current Unix time in milliseconds, bumped past the largest id when it
// is already taken.
func (r *Repository) Add(
	ctx context.Context,
	title string,
	priority model.Priority,
	due *time.Time,
) (model.Todo, []model.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Todo{}, nil, ErrEmptyTitle
	}

	var created model.Todo
	todos, err := r.mutate(ctx, func(todos []model.Todo) ([]model.Todo, error) {
		now := r.timestamp()
		created = model.Todo{
			ID:        nextID(todos, now),
			Title:     title,
			Priority:  priority.OrDefault(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if due != nil {
			d := *due
			created.DueDate = &d
		}
		return append([]model.Todo{created}, todos...), nil
	})
	if err != nil {
		return model.Todo{}, nil, err
	}
	r.logger.Debug("added todo", "id", created.ID)
	return created, todos, nil
}

// Toggle flips the completed flag of the todo with id.
func (r *Repository) Toggle(ctx context.Context, id int64) (model.Todo, []model.Todo, error) {
	var toggled model.Todo
	todos, err := r.mutate(ctx, func(todos []model.Todo) ([]model.Todo, error) {
		i := indexOf(todos, id)
		if i < 0 {
			return nil, fmt.Errorf("todo %d: %w", id, ErrNotFound)
		}
		todos[i].Completed = !todos[i].Completed
		todos[i].UpdatedAt = r.updatedAt(todos[i])
		toggled = todos[i]
		return todos, nil
	})
	if err != nil {
		return model.Todo{}, nil, err
	}
	return toggled, todos, nil
}

// Update applies patch to the todo with id and bumps its updatedAt.
func (r *Repository) Update(
	ctx context.Context,
	id int64,
	patch model.TodoPatch,
) (model.Todo, []model.Todo, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return model.Todo{}, nil, ErrEmptyTitle
	}

	var updated model.Todo
	todos, err := r.mutate(ctx, func(todos []model.Todo) ([]model.Todo, error) {
		i := indexOf(todos, id)
		if i < 0 {
			return nil, fmt.Errorf("todo %d: %w", id, ErrNotFound)
		}
		todos[i] = patch.Apply(todos[i])
		todos[i].UpdatedAt = r.updatedAt(todos[i])
		updated = todos[i]
		return todos, nil
	})
	if err != nil {
		return model.Todo{}, nil, err
	}
	return updated, todos, nil
}

// Remove deletes the todo with id.
func (r *Repository) Remove(ctx context.Context, id int64) ([]model.Todo, error) {
	return r.mutate(ctx, func(todos []model.Todo) ([]model.Todo, error) {
		i := indexOf(todos, id)
		if i < 0 {
			return nil, fmt.Errorf("todo %d: %w", id, ErrNotFound)
		}
		return append(todos[:i], todos[i+1:]...), nil
	})
}

// ClearCompleted deletes every completed todo and reports how many went.
func (r *Repository) ClearCompleted(ctx context.Context) (int, []model.Todo, error) {
	removed := 0
	todos, err := r.mutate(ctx, func(todos []model.Todo) ([]model.Todo, error) {
		kept := todos[:0]
		for _, t := range todos {
			if t.Completed {
				removed++
				continue
			}
			kept = append(kept, t)
		}
		return kept, nil
	})
	if err != nil {
		return 0, nil, err
	}
	return removed, todos, nil
}

// Theme returns the stored theme, or fallback when none is stored.
func (r *Repository) Theme(ctx context.Context, fallback model.Theme) (model.Theme, error) {
	t, ok, err := r.adapter.LoadTheme(ctx)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	return t, nil
}

// SetTheme persists the theme flag.
func (r *Repository) SetTheme(ctx context.Context, t model.Theme) error {
	return r.adapter.SaveTheme(ctx, t)
}

// mutate runs one locked read-modify-write cycle. When fn fails nothing
// is written.
func (r *Repository) mutate(
	ctx context.Context,
	fn func([]model.Todo) ([]model.Todo, error),
) ([]model.Todo, error) {
	if err := r.locker.Lock(ctx); err != nil {
		return nil, err
	}
	defer func() {
		if err := r.locker.Unlock(); err != nil {
			r.logger.Warn("releasing store lock", "err", err)
		}
	}()

	todos, err := r.adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	todos, err = fn(todos)
	if err != nil {
		return nil, err
	}
	if err := r.adapter.Save(ctx, todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Now returns the repository clock's current time.
func (r *Repository) Now() time.Time { return r.now() }

// timestamp returns now at the precision timestamps are stored with.
func (r *Repository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

// updatedAt returns the new updatedAt for t, never earlier than its
// createdAt even when the clock steps backwards.
func (r *Repository) updatedAt(t model.Todo) time.Time {
	now := r.timestamp()
	if now.Before(t.CreatedAt) {
		return t.CreatedAt
	}
	return now
}

func indexOf(todos []model.Todo, id int64) int {
	for i, t := range todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func nextID(todos []model.Todo, now time.Time) int64 {
	id := now.UnixMilli()
	if indexOf(todos, id) < 0 {
		return id
	}
	for _, t := range todos {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}
