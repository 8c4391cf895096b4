package model

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency level of a todo.
type Priority string

// Priority levels. Medium is the default for new and legacy records.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// OrDefault returns p, or PriorityMedium when p is not a known level.
func (p Priority) OrDefault() Priority {
	if p.Valid() {
		return p
	}
	return PriorityMedium
}

// ParsePriority parses a priority name case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q (want low, medium or high)", s)
	}
	return p, nil
}

// Filter selects which todos a list projection shows.
type Filter string

// Filter modes.
const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter parses a filter mode name.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	case "":
		return FilterAll, nil
	}
	return "", fmt.Errorf("invalid filter %q (want all, active or completed)", s)
}

// Match reports whether t belongs to the projection selected by f.
func (f Filter) Match(t Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Todo is a single task tracked by the user.
type Todo struct {
	ID          int64
	Title       string
	Description *string
	Completed   bool
	Priority    Priority
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DueDate     *time.Time
}

// DescriptionText returns the description, or "" when there is none.
func (t Todo) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// IsOverdue reports whether an open todo's due date is before today.
func (t Todo) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return t.DueDate.Before(today)
}

// TodoPatch carries the editable fields of a todo. Nil fields are left
// unchanged.
type TodoPatch struct {
	Title *string

	// Description replaces the description; an empty string clears it.
	Description *string

	Priority *Priority
	DueDate  *time.Time

	// ClearDueDate removes the due date. It wins over DueDate.
	ClearDueDate bool
}

// Apply returns a copy of t with the patch applied. Title is trimmed.
func (p TodoPatch) Apply(t Todo) Todo {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = OptionalString(*p.Description)
	}
	if p.Priority != nil {
		t.Priority = p.Priority.OrDefault()
	}
	switch {
	case p.ClearDueDate:
		t.DueDate = nil
	case p.DueDate != nil:
		due := *p.DueDate
		t.DueDate = &due
	}
	return t
}

// OptionalString returns nil for an empty string and a pointer to s
// otherwise.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// DueDateLayout is the input and display layout for due dates.
const DueDateLayout = "2006-01-02"

// ParseDueDate parses a YYYY-MM-DD date into UTC midnight. An empty or
// blank input means "no due date" and yields nil.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DueDateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return &t, nil
}

// FormatDueDate renders a due date as YYYY-MM-DD, or "" when absent.
func FormatDueDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.UTC().Format(DueDateLayout)
}
