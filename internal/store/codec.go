package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/todo/internal/model"
)

// timestampLayout matches what browsers emit for Date.toISOString:
// UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// record is the persisted JSON shape of a todo. Optional and legacy
// fields are pointers so absence can be told apart from zero values.
type record struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	Priority    *string `json:"priority"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	DueDate     *string `json:"dueDate,omitempty"`
}

// encodeTodos serializes a collection to the stored JSON array.
func encodeTodos(todos []model.Todo) (string, error) {
	records := make([]record, len(todos))
	for i, t := range todos {
		desc := t.DescriptionText()
		prio := string(t.Priority.OrDefault())
		records[i] = record{
			ID:          t.ID,
			Title:       t.Title,
			Description: &desc,
			Completed:   t.Completed,
			Priority:    &prio,
			CreatedAt:   formatTimestamp(t.CreatedAt),
			UpdatedAt:   formatTimestamp(t.UpdatedAt),
		}
		if t.DueDate != nil {
			due := formatTimestamp(*t.DueDate)
			records[i].DueDate = &due
		}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshaling todos: %w", err)
	}
	return string(data), nil
}

// decodeTodos parses the stored JSON array. Legacy records missing a
// priority get medium; blank descriptions and due dates become nil. A
// null element or a blank title makes the whole array malformed.
func decodeTodos(raw string) ([]model.Todo, error) {
	var records []*record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("parsing todos: %w", err)
	}

	todos := make([]model.Todo, 0, len(records))
	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("todo at index %d is null", i)
		}
		if strings.TrimSpace(r.Title) == "" {
			return nil, fmt.Errorf("todo %d: %w", r.ID, ErrEmptyTitle)
		}
		createdAt, err := parseTimestamp(r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("todo %d createdAt: %w", r.ID, err)
		}
		updatedAt, err := parseTimestamp(r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("todo %d updatedAt: %w", r.ID, err)
		}

		t := model.Todo{
			ID:        r.ID,
			Title:     r.Title,
			Completed: r.Completed,
			Priority:  model.PriorityMedium,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		}
		if r.Description != nil {
			t.Description = model.OptionalString(*r.Description)
		}
		if r.Priority != nil {
			t.Priority = model.Priority(*r.Priority).OrDefault()
		}
		if r.DueDate != nil {
			t.DueDate = parseDueDate(*r.DueDate)
		}
		todos = append(todos, t)
	}
	return todos, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp accepts RFC 3339 with any fractional precision. An empty
// string is the zero time.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// parseDueDate accepts a full timestamp or a bare YYYY-MM-DD date.
// Anything unparseable is treated as no due date.
func parseDueDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := parseTimestamp(s); err == nil {
		return &t
	}
	if t, err := model.ParseDueDate(s); err == nil {
		return t
	}
	return nil
}
