// Package todos holds the view controllers shared by the terminal UI and
// the CLI: List backs the overview screen, Detail backs a single todo.
// Controllers keep an in-memory copy of what they show and route every
// mutation through store.Repository.
package todos

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/store"
)

// Draft is the unsaved state of the add form. It is never persisted.
type Draft struct {
	Input    string
	Expanded bool
	Priority model.Priority
	DueDate  *time.Time
}

func newDraft() Draft {
	return Draft{Priority: model.PriorityMedium}
}

// List is the controller behind the list view.
type List struct {
	repo         *store.Repository
	todos        []model.Todo
	theme        model.Theme
	defaultTheme model.Theme

	// Draft is the pending add-form state.
	Draft Draft
}

// NewList returns a list controller. defaultTheme applies until a theme
// has been stored.
func NewList(repo *store.Repository, defaultTheme model.Theme) *List {
	return &List{
		repo:         repo,
		theme:        defaultTheme,
		defaultTheme: defaultTheme,
		Draft:        newDraft(),
	}
}

// Mount loads the collection and the theme from storage.
func (l *List) Mount(ctx context.Context) error {
	todos, err := l.repo.List(ctx)
	if err != nil {
		return err
	}
	l.todos = todos

	theme, err := l.repo.Theme(ctx, l.defaultTheme)
	if err != nil {
		return err
	}
	l.theme = theme
	return nil
}

// Todos returns the in-memory collection, newest first.
func (l *List) Todos() []model.Todo {
	out := make([]model.Todo, len(l.todos))
	copy(out, l.todos)
	return out
}

// Add creates a todo. A blank title is ignored and reports false.
func (l *List) Add(
	ctx context.Context,
	title string,
	priority model.Priority,
	due *time.Time,
) (bool, error) {
	if strings.TrimSpace(title) == "" {
		return false, nil
	}
	_, todos, err := l.repo.Add(ctx, title, priority, due)
	if err != nil {
		return false, err
	}
	l.todos = todos
	return true, nil
}

// Submit adds a todo from the draft and resets the draft on success.
func (l *List) Submit(ctx context.Context) (bool, error) {
	if !l.CanSubmit() {
		return false, nil
	}
	added, err := l.Add(ctx, l.Draft.Input, l.Draft.Priority, l.Draft.DueDate)
	if err != nil || !added {
		return added, err
	}
	l.Draft = newDraft()
	return true, nil
}

// CanSubmit reports whether the draft has a usable title.
func (l *List) CanSubmit() bool {
	return strings.TrimSpace(l.Draft.Input) != ""
}

// OpenForm shows the expanded add form.
func (l *List) OpenForm() {
	l.Draft.Expanded = true
}

// CloseForm hides the expanded form and resets the pending priority and
// due date. The typed title stays.
func (l *List) CloseForm() {
	l.Draft.Expanded = false
	l.Draft.Priority = model.PriorityMedium
	l.Draft.DueDate = nil
}

// Toggle flips completion of the todo with id. Unknown ids are ignored.
func (l *List) Toggle(ctx context.Context, id int64) error {
	_, todos, err := l.repo.Toggle(ctx, id)
	return l.apply(ctx, todos, err)
}

// Delete removes the todo with id. Unknown ids are ignored.
func (l *List) Delete(ctx context.Context, id int64) error {
	todos, err := l.repo.Remove(ctx, id)
	return l.apply(ctx, todos, err)
}

// ClearCompleted removes every completed todo.
func (l *List) ClearCompleted(ctx context.Context) (int, error) {
	n, todos, err := l.repo.ClearCompleted(ctx)
	if err != nil {
		return 0, err
	}
	l.todos = todos
	return n, nil
}

// apply takes the collection returned by a mutation. A miss means the
// in-memory copy was stale, so it reloads instead of failing.
func (l *List) apply(ctx context.Context, todos []model.Todo, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		fresh, loadErr := l.repo.List(ctx)
		if loadErr != nil {
			return loadErr
		}
		l.todos = fresh
		return nil
	}
	if err != nil {
		return err
	}
	l.todos = todos
	return nil
}

// Filter projects the in-memory collection without touching storage.
func (l *List) Filter(mode model.Filter) []model.Todo {
	out := make([]model.Todo, 0, len(l.todos))
	for _, t := range l.todos {
		if mode.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// ActiveCount returns how many todos are not completed.
func (l *List) ActiveCount() int {
	n := 0
	for _, t := range l.todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

// CompletedCount returns how many todos are completed.
func (l *List) CompletedCount() int {
	return len(l.todos) - l.ActiveCount()
}

// Theme returns the current theme.
func (l *List) Theme() model.Theme { return l.theme }

// ToggleTheme switches between dark and light and persists the choice.
func (l *List) ToggleTheme(ctx context.Context) (model.Theme, error) {
	next := l.theme.Toggle()
	if err := l.repo.SetTheme(ctx, next); err != nil {
		return l.theme, err
	}
	l.theme = next
	return next, nil
}
