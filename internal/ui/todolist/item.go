package todolist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/theme"
)

// TodoItem wraps a model.Todo so it can be used in a bubbles/list.
type TodoItem struct {
	Todo model.Todo
}

// FilterValue returns the string used for fuzzy filtering.
func (i TodoItem) FilterValue() string { return i.Todo.Title }

// Title returns the todo title for the list.
func (i TodoItem) Title() string { return i.Todo.Title }

// Description returns a short summary line for the list.
func (i TodoItem) Description() string {
	parts := []string{string(i.Todo.Priority)}
	if due := model.FormatDueDate(i.Todo.DueDate); due != "" {
		parts = append(parts, "due "+due)
	}
	parts = append(parts, relativeTime(i.Todo.CreatedAt, time.Now()))
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering todos.
type ItemDelegate struct {
	// now is injectable so overdue markers are deterministic in tests.
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list item line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TodoItem)
	if !ok {
		return
	}
	fmt.Fprint(w, d.renderLine(ti.Todo, index == m.Index()))
}

func (d ItemDelegate) renderLine(t model.Todo, isSelected bool) string {
	now := time.Now()
	if d.now != nil {
		now = d.now()
	}

	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	priBadge := theme.PriorityStyle(t.Priority).Render(priorityLabel(t.Priority))

	title := t.Title
	if t.Completed {
		title = theme.CompletedStyle.Render(title)
	}

	dueStr := ""
	if t.DueDate != nil {
		overdue := t.IsOverdue(now)
		label := " due " + t.DueDate.Format("Jan 02")
		if overdue {
			label += " OVERDUE"
		}
		dueStr = theme.DueStyle(overdue).Render(label)
	}

	descMark := ""
	if t.Description != nil {
		descMark = lipgloss.NewStyle().Foreground(theme.ColorGray).Render(" ≡")
	}

	timeStr := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(relativeTime(t.CreatedAt, now))

	line := fmt.Sprintf("%s %s %s%s%s  %s", check, priBadge, title, descMark, dueStr, timeStr)

	if isSelected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw ago", int(d.Hours()/24/7))
	}
}

// priorityLabel returns a short label for the given priority level.
func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "HIGH"
	case model.PriorityMedium:
		return "MED "
	case model.PriorityLow:
		return "LOW "
	default:
		return "??? "
	}
}
