package detail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/keys"
	"github.com/nhle/todo/internal/markdown"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/theme"
	"github.com/nhle/todo/internal/todos"
	"github.com/nhle/todo/internal/ui"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// EditRequestMsg asks the parent to open the edit form.
type EditRequestMsg struct {
	Form todos.EditForm
}

// Model is the todo detail view component.
type Model struct {
	ctrl     *todos.Detail
	viewport viewport.Model
	keys     *keys.KeyMap
	theme    model.Theme
	width    int
	height   int
}

// New creates a new detail view model over ctrl.
func New(ctrl *todos.Detail, keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		ctrl:     ctrl,
		viewport: vp,
		keys:     keys,
		theme:    model.ThemeLight,
		width:    width,
		height:   height,
	}
}

// Controller returns the underlying detail controller.
func (m Model) Controller() *todos.Detail { return m.ctrl }

// Open loads the todo addressed by rawID and renders it.
func (m *Model) Open(rawID string) tea.Cmd {
	if err := m.ctrl.LoadByID(context.Background(), rawID); err != nil {
		return ui.ErrCmd(err)
	}
	m.render()
	m.viewport.GotoTop()
	return nil
}

// SaveEdit stores f through the controller. On a validation error edit
// mode stays on and the form is requested again.
func (m *Model) SaveEdit(f todos.EditForm) tea.Cmd {
	if !m.ctrl.Editing() && !m.ctrl.BeginEdit() {
		return nil
	}
	*m.ctrl.Form() = f
	err := m.ctrl.SaveEdit(context.Background())
	if errors.Is(err, todos.ErrEmptyTitle) {
		return tea.Batch(
			ui.ErrCmd(err),
			func() tea.Msg { return EditRequestMsg{Form: f} },
		)
	}
	if err != nil {
		m.ctrl.CancelEdit()
		m.render()
		return ui.ErrCmd(err)
	}
	m.render()
	return ui.StatusCmd("saved")
}

// CancelEdit leaves edit mode.
func (m *Model) CancelEdit() {
	m.ctrl.CancelEdit()
}

// SetTheme switches the markdown palette.
func (m *Model) SetTheme(t model.Theme) {
	m.theme = t
	m.render()
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		ctx := context.Background()
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.Toggle):
			if err := m.ctrl.ToggleComplete(ctx); err != nil {
				return m, ui.ErrCmd(err)
			}
			m.render()
			return m, nil

		case key.Matches(msg, m.keys.Remove):
			leave, err := m.ctrl.Remove(ctx)
			if err != nil {
				return m, ui.ErrCmd(err)
			}
			if leave {
				return m, func() tea.Msg { return BackMsg{} }
			}
			return m, nil

		case key.Matches(msg, m.keys.Edit):
			if !m.ctrl.BeginEdit() {
				return m, nil
			}
			form := *m.ctrl.Form()
			return m, func() tea.Msg { return EditRequestMsg{Form: form} }
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	centered := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	switch m.ctrl.State() {
	case todos.DetailNotFound:
		return centered.Render(
			lipgloss.NewStyle().Bold(true).Foreground(theme.ColorRed).Render("Todo not found") +
				"\n\nPress esc to go back to the list.",
		)
	case todos.DetailEmpty, todos.DetailRemoved:
		return centered.Render("No todo selected")
	}

	return m.viewport.View()
}

// render rebuilds the viewport content from the controller.
func (m *Model) render() {
	m.viewport.SetContent(m.renderContent())
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	t, ok := m.ctrl.Todo()
	if !ok {
		return ""
	}

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	title := t.Title
	if t.Completed {
		title = theme.CompletedStyle.Render(title)
	} else {
		title = titleStyle.Render(title)
	}
	sections = append(sections, title)

	statusLabel := "open"
	if t.Completed {
		statusLabel = "done"
	}
	statusBadge := theme.StatusStyle(t.Completed).Render(statusLabel)
	priBadge := theme.PriorityStyle(t.Priority).Render(strings.ToUpper(string(t.Priority)))
	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top, statusBadge, "  ", priBadge),
		"",
	)

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	row := func(label, value string) string {
		return fmt.Sprintf("%s %s", metaStyle.Render(fmt.Sprintf("%-9s", label+":")), valStyle.Render(value))
	}

	if t.DueDate != nil {
		overdue := t.IsOverdue(time.Now())
		due := model.FormatDueDate(t.DueDate)
		if overdue {
			due += " (overdue)"
		}
		sections = append(sections, fmt.Sprintf("%s %s",
			metaStyle.Render(fmt.Sprintf("%-9s", "Due:")),
			theme.DueStyle(overdue).Render(due),
		))
	}
	sections = append(sections,
		row("Created", t.CreatedAt.Local().Format("2006-01-02 15:04")),
		row("Updated", t.UpdatedAt.Local().Format("2006-01-02 15:04")),
		row("ID", fmt.Sprint(t.ID)),
	)

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 1)))
	sections = append(sections, "", separator, "")

	descHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	sections = append(sections, descHeaderStyle.Render("Description"))

	body := markdown.Render(t.DescriptionText(), max(m.width-4, 20), markdown.StyleFor(m.theme))
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No description")
	}
	sections = append(sections, body)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.render()
}
