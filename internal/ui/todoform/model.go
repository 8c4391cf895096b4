package todoform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/theme"
	"github.com/nhle/todo/internal/todos"
)

// OptionsSubmittedMsg carries the priority and due date chosen for the
// pending draft.
type OptionsSubmittedMsg struct {
	Priority model.Priority
	DueDate  *time.Time
}

// EditSubmittedMsg carries the edited fields of a todo.
type EditSubmittedMsg struct {
	Form todos.EditForm
}

// FormCancelMsg is dispatched when the user cancels the form.
type FormCancelMsg struct {
	Edit bool
}

// Mode selects which form is shown.
type Mode int

const (
	// ModeOptions edits the add draft's priority and due date.
	ModeOptions Mode = iota
	// ModeEdit edits every field of an existing todo.
	ModeEdit
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	priority    model.Priority
	dueDate     string
}

// Model is the Bubble Tea model for the options and edit forms.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	mode   Mode
	draft  string
	width  int
	height int
}

// New creates a new form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{priority: model.PriorityMedium},
		width:  width,
		height: height,
	}
}

// Mode returns the active form mode.
func (m Model) Mode() Mode { return m.mode }

// StartOptions initializes the form for the add draft.
func (m *Model) StartOptions(d todos.Draft) tea.Cmd {
	m.mode = ModeOptions
	m.draft = d.Input
	m.fb.title = ""
	m.fb.description = ""
	m.fb.priority = d.Priority.OrDefault()
	m.fb.dueDate = model.FormatDueDate(d.DueDate)
	m.form = huh.NewForm(
		huh.NewGroup(m.priorityField(), m.dueDateField()),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing todo.
func (m *Model) StartEdit(f todos.EditForm) tea.Cmd {
	m.mode = ModeEdit
	m.draft = ""
	m.fb.title = f.Title
	m.fb.description = f.Description
	m.fb.priority = f.Priority.OrDefault()
	m.fb.dueDate = f.DueDate
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs to be done?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details (markdown)...").
				Value(&m.fb.description),
			m.priorityField(),
			m.dueDateField(),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
	return m.form.Init()
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.form = nil
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		edit := m.mode == ModeEdit
		return m, func() tea.Msg { return FormCancelMsg{Edit: edit} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Edit Todo"
	if m.mode == ModeOptions {
		titleText = "New Todo"
		if m.draft != "" {
			titleText += ": " + m.draft
		}
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return theme.BorderStyle.
		Padding(1, 2).
		Width(max(m.width-4, 20)).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) priorityField() huh.Field {
	opts := make([]huh.Option[model.Priority], len(model.Priorities))
	for i, p := range model.Priorities {
		opts[i] = huh.NewOption(strings.ToUpper(string(p[:1]))+string(p[1:]), p)
	}
	return huh.NewSelect[model.Priority]().
		Title("Priority").
		Options(opts...).
		Value(&m.fb.priority)
}

func (m *Model) dueDateField() huh.Field {
	return huh.NewInput().
		Title("Due Date").
		Placeholder("YYYY-MM-DD (optional)").
		Value(&m.fb.dueDate).
		Validate(validateOptionalDate)
}

func (m Model) handleSubmit() tea.Cmd {
	if m.mode == ModeEdit {
		f := todos.EditForm{
			Title:       m.fb.title,
			Description: m.fb.description,
			Priority:    m.fb.priority,
			DueDate:     strings.TrimSpace(m.fb.dueDate),
		}
		return func() tea.Msg { return EditSubmittedMsg{Form: f} }
	}

	// The validator already rejected malformed dates.
	due, _ := model.ParseDueDate(m.fb.dueDate)
	prio := m.fb.priority
	return func() tea.Msg { return OptionsSubmittedMsg{Priority: prio, DueDate: due} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	_, err := model.ParseDueDate(s)
	return err
}
