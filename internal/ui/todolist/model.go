package todolist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/keys"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/theme"
	"github.com/nhle/todo/internal/todos"
	"github.com/nhle/todo/internal/ui"
)

// SelectedTodoMsg is sent when a user opens a todo's detail view.
type SelectedTodoMsg struct {
	ID int64
}

// OpenOptionsMsg asks the parent to show the priority/due-date form for
// the pending draft.
type OpenOptionsMsg struct {
	Draft todos.Draft
}

// ThemeChangedMsg is sent after the theme was toggled and persisted.
type ThemeChangedMsg struct {
	Theme model.Theme
}

var filterTabs = []model.Filter{
	model.FilterAll,
	model.FilterActive,
	model.FilterCompleted,
}

// Model is the main todo list view component.
type Model struct {
	list      list.Model
	ctrl      *todos.List
	keys      *keys.KeyMap
	filter    model.Filter
	inputMode bool
	input     textinput.Model
	width     int
	height    int
}

// New creates a new todo list model over ctrl.
func New(ctrl *todos.List, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-3)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.Prompt = "+ "
	ti.CharLimit = 200
	ti.Width = width - 4

	return Model{
		list:   l,
		ctrl:   ctrl,
		keys:   k,
		filter: model.FilterAll,
		input:  ti,
		width:  width,
		height: height,
	}
}

// Refresh rebuilds the visible rows from the controller.
func (m *Model) Refresh() tea.Cmd {
	visible := m.ctrl.Filter(m.filter)
	items := make([]list.Item, len(visible))
	for i, t := range visible {
		items[i] = TodoItem{Todo: t}
	}
	return m.list.SetItems(items)
}

// Filter returns the active filter tab.
func (m Model) Filter() model.Filter { return m.filter }

// SetFilter switches the filter tab.
func (m *Model) SetFilter(f model.Filter) tea.Cmd {
	m.filter = f
	m.list.ResetSelected()
	return m.Refresh()
}

// Editing reports whether the add input has focus.
func (m Model) Editing() bool { return m.inputMode }

// FocusInput focuses the add input, restoring any unsaved draft title.
func (m *Model) FocusInput() tea.Cmd {
	m.inputMode = true
	m.input.SetValue(m.ctrl.Draft.Input)
	m.input.CursorEnd()
	return m.input.Focus()
}

// ClearCompleted removes completed todos.
func (m *Model) ClearCompleted() tea.Cmd {
	n, err := m.ctrl.ClearCompleted(context.Background())
	if err != nil {
		return ui.ErrCmd(err)
	}
	return tea.Batch(m.Refresh(), ui.StatusCmd(fmt.Sprintf("cleared %d completed", n)))
}

// ToggleTheme flips and persists the theme.
func (m *Model) ToggleTheme() tea.Cmd {
	t, err := m.ctrl.ToggleTheme(context.Background())
	if err != nil {
		return ui.ErrCmd(err)
	}
	return func() tea.Msg { return ThemeChangedMsg{Theme: t} }
}

// SubmitDraft adds the pending draft, used after the options form closes.
func (m *Model) SubmitDraft() tea.Cmd {
	added, err := m.ctrl.Submit(context.Background())
	if err != nil {
		return ui.ErrCmd(err)
	}
	if added {
		m.input.Reset()
	}
	return m.Refresh()
}

// Update handles messages for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.inputMode {
			return m.handleInputKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleInputKeys processes key input while the add input is focused.
func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.ctrl.Draft.Input = m.input.Value()
		if !m.ctrl.CanSubmit() {
			return m, nil
		}
		cmd := m.SubmitDraft()
		return m, cmd

	case "esc":
		m.ctrl.Draft.Input = m.input.Value()
		m.inputMode = false
		m.input.Blur()
		return m, nil

	case "tab":
		m.ctrl.Draft.Input = m.input.Value()
		m.ctrl.OpenForm()
		m.inputMode = false
		m.input.Blur()
		draft := m.ctrl.Draft
		return m, func() tea.Msg { return OpenOptionsMsg{Draft: draft} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.Draft.Input = m.input.Value()
	return m, cmd
}

// handleNormalKeys processes key input when the list has focus.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	ctx := context.Background()

	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(TodoItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedTodoMsg{ID: item.Todo.ID}
		}

	case key.Matches(msg, m.keys.New):
		return m, m.FocusInput()

	case key.Matches(msg, m.keys.Options):
		m.ctrl.OpenForm()
		draft := m.ctrl.Draft
		return m, func() tea.Msg { return OpenOptionsMsg{Draft: draft} }

	case key.Matches(msg, m.keys.FilterAll):
		return m, m.SetFilter(model.FilterAll)

	case key.Matches(msg, m.keys.FilterActive):
		return m, m.SetFilter(model.FilterActive)

	case key.Matches(msg, m.keys.FilterCompleted):
		return m, m.SetFilter(model.FilterCompleted)

	case key.Matches(msg, m.keys.Toggle):
		item, ok := m.list.SelectedItem().(TodoItem)
		if !ok {
			return m, nil
		}
		if err := m.ctrl.Toggle(ctx, item.Todo.ID); err != nil {
			return m, ui.ErrCmd(err)
		}
		return m, m.Refresh()

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.list.SelectedItem().(TodoItem)
		if !ok {
			return m, nil
		}
		if err := m.ctrl.Delete(ctx, item.Todo.ID); err != nil {
			return m, ui.ErrCmd(err)
		}
		return m, m.Refresh()

	case key.Matches(msg, m.keys.ClearCompleted):
		return m, m.ClearCompleted()

	case key.Matches(msg, m.keys.Theme):
		return m, m.ToggleTheme()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list view.
func (m Model) View() string {
	sections := []string{m.renderTabs(), m.renderInput()}
	if len(m.list.Items()) == 0 {
		sections = append(sections, m.renderEmptyState())
	} else {
		sections = append(sections, m.list.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(filterTabs))
	for i, f := range filterTabs {
		label := fmt.Sprintf("%d %s", i+1, strings.ToUpper(string(f[:1]))+string(f[1:]))
		if f == m.filter {
			tabs[i] = theme.ActiveTabStyle.Render(label)
		} else {
			tabs[i] = theme.TabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderInput() string {
	if m.inputMode {
		return lipgloss.NewStyle().Padding(0, 1).Render(m.input.View())
	}
	hint := "press n to add a todo"
	if d := m.ctrl.Draft.Input; d != "" {
		hint = "draft: " + d
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(theme.HelpStyle.Render(hint))
}

// renderEmptyState shows guidance text when no todos are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(max(m.height-3, 1)).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filter != model.FilterAll && len(m.ctrl.Todos()) > 0 {
		return style.Render(fmt.Sprintf("No %s todos.", m.filter))
	}
	return style.Render("No todos yet.\n\nPress n to add one.")
}

// Summary returns the footer counts, e.g. "2 items left · 1 completed".
func (m Model) Summary() string {
	active := m.ctrl.ActiveCount()
	noun := "items"
	if active == 1 {
		noun = "item"
	}
	return fmt.Sprintf("%d %s left · %d completed", active, noun, m.ctrl.CompletedCount())
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(height-3, 1))
	m.input.Width = width - 4
}
