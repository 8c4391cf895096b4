package todos

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/store"
)

// ErrEmptyTitle is returned when an edit would clear the title.
var ErrEmptyTitle = store.ErrEmptyTitle

// DetailState is what the detail view should render.
type DetailState int

const (
	// DetailEmpty means nothing has been loaded yet.
	DetailEmpty DetailState = iota
	DetailLoaded
	DetailNotFound
	// DetailRemoved means the todo was deleted here; callers navigate away.
	DetailRemoved
)

func (s DetailState) String() string {
	switch s {
	case DetailLoaded:
		return "loaded"
	case DetailNotFound:
		return "not found"
	case DetailRemoved:
		return "removed"
	default:
		return "empty"
	}
}

// EditForm is the editable copy of a todo's fields while in edit mode.
// DueDate uses the YYYY-MM-DD layout; "" means none.
type EditForm struct {
	Title       string
	Description string
	Priority    model.Priority
	DueDate     string
}

// Patch converts the form into a patch that sets every field.
func (f EditForm) Patch() (model.TodoPatch, error) {
	due, err := model.ParseDueDate(f.DueDate)
	if err != nil {
		return model.TodoPatch{}, err
	}
	title := f.Title
	desc := f.Description
	prio := f.Priority.OrDefault()
	return model.TodoPatch{
		Title:        &title,
		Description:  &desc,
		Priority:     &prio,
		DueDate:      due,
		ClearDueDate: due == nil,
	}, nil
}

// Detail is the controller behind the per-todo view. It is addressed by
// an externally supplied id and re-reads storage before every mutation.
type Detail struct {
	repo    *store.Repository
	id      int64
	todo    model.Todo
	state   DetailState
	editing bool
	form    EditForm
}

// NewDetail returns an empty detail controller.
func NewDetail(repo *store.Repository) *Detail {
	return &Detail{repo: repo}
}

// LoadByID parses the leading integer of rawID ("123-slug" is 123) and
// loads the matching todo. An unparseable or unknown id puts the
// controller in DetailNotFound; that is not an error.
func (d *Detail) LoadByID(ctx context.Context, rawID string) error {
	d.editing = false
	d.form = EditForm{}

	id, err := parseLeadingID(rawID)
	if err != nil {
		d.id = 0
		d.state = DetailNotFound
		return nil
	}
	d.id = id
	return d.reload(ctx)
}

// Load loads the todo with id.
func (d *Detail) Load(ctx context.Context, id int64) error {
	return d.LoadByID(ctx, strconv.FormatInt(id, 10))
}

// parseLeadingID reads an optionally signed run of digits after leading
// whitespace and ignores whatever follows it.
func parseLeadingID(raw string) (int64, error) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(s[:end], 10, 64)
}

func (d *Detail) reload(ctx context.Context) error {
	t, err := d.repo.Get(ctx, d.id)
	if errors.Is(err, store.ErrNotFound) {
		d.state = DetailNotFound
		return nil
	}
	if err != nil {
		return err
	}
	d.todo = t
	d.state = DetailLoaded
	return nil
}

// State returns what should be rendered.
func (d *Detail) State() DetailState { return d.state }

// ID returns the requested id.
func (d *Detail) ID() int64 { return d.id }

// Todo returns the loaded todo. ok is false unless state is DetailLoaded.
func (d *Detail) Todo() (model.Todo, bool) {
	if d.state != DetailLoaded {
		return model.Todo{}, false
	}
	return d.todo, true
}

// Update applies patch to the freshly stored todo, persists the full
// collection and refreshes the view from the result.
func (d *Detail) Update(ctx context.Context, patch model.TodoPatch) error {
	if d.state != DetailLoaded {
		return nil
	}
	t, _, err := d.repo.Update(ctx, d.id, patch)
	return d.settle(t, err)
}

// ToggleComplete flips completion with the same re-read/persist cycle.
func (d *Detail) ToggleComplete(ctx context.Context) error {
	if d.state != DetailLoaded {
		return nil
	}
	t, _, err := d.repo.Toggle(ctx, d.id)
	return d.settle(t, err)
}

// Remove deletes the todo. It reports true when the caller should leave
// the detail view.
func (d *Detail) Remove(ctx context.Context) (bool, error) {
	if d.state != DetailLoaded {
		return d.state == DetailNotFound, nil
	}
	_, err := d.repo.Remove(ctx, d.id)
	if errors.Is(err, store.ErrNotFound) {
		d.state = DetailNotFound
		return true, nil
	}
	if err != nil {
		return false, err
	}
	d.state = DetailRemoved
	d.editing = false
	return true, nil
}

// settle stores the result of a mutation. A todo deleted elsewhere turns
// the view into not-found.
func (d *Detail) settle(t model.Todo, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		d.state = DetailNotFound
		d.editing = false
		return nil
	}
	if err != nil {
		return err
	}
	d.todo = t
	return nil
}

// BeginEdit enters edit mode seeded from the current todo.
func (d *Detail) BeginEdit() bool {
	if d.state != DetailLoaded {
		return false
	}
	d.editing = true
	d.form = EditForm{
		Title:       d.todo.Title,
		Description: d.todo.DescriptionText(),
		Priority:    d.todo.Priority.OrDefault(),
		DueDate:     model.FormatDueDate(d.todo.DueDate),
	}
	return true
}

// Editing reports whether edit mode is on.
func (d *Detail) Editing() bool { return d.editing }

// Form returns the editable copy. It is only meaningful while editing.
func (d *Detail) Form() *EditForm { return &d.form }

// CancelEdit leaves edit mode without persisting.
func (d *Detail) CancelEdit() {
	d.editing = false
	d.form = EditForm{}
}

// SaveEdit persists the form and leaves edit mode. On a validation error
// edit mode stays on so the user can fix the input.
func (d *Detail) SaveEdit(ctx context.Context) error {
	if !d.editing {
		return nil
	}
	if strings.TrimSpace(d.form.Title) == "" {
		return ErrEmptyTitle
	}
	patch, err := d.form.Patch()
	if err != nil {
		return err
	}
	if err := d.Update(ctx, patch); err != nil {
		return err
	}
	d.editing = false
	return nil
}
