package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todo/internal/keys"
	"github.com/nhle/todo/internal/ui"
	"github.com/nhle/todo/internal/ui/todoform"
)

// mount loads the collection and stored theme, then opens the initial
// detail view if one was requested.
func (m *Model) mount() tea.Cmd {
	if err := m.listCtrl.Mount(context.Background()); err != nil {
		return ui.ErrCmd(err)
	}
	m.applyTheme(m.listCtrl.Theme())
	m.logger.Debug("mounted list", "todos", len(m.listCtrl.Todos()), "theme", m.listCtrl.Theme())

	cmd := m.todoList.Refresh()
	if m.initialDetail != "" {
		raw := m.initialDetail
		m.initialDetail = ""
		return tea.Batch(cmd, m.openDetail(raw))
	}
	return cmd
}

// remountList reloads the list after another view changed storage.
func (m *Model) remountList() tea.Cmd {
	if err := m.listCtrl.Mount(context.Background()); err != nil {
		return ui.ErrCmd(err)
	}
	return m.todoList.Refresh()
}

// openDetail switches to the detail view for rawID.
func (m *Model) openDetail(rawID string) tea.Cmd {
	m.previousView = m.currentView
	m.currentView = ViewDetail
	m.helpView.SetKeyMap("Detail Shortcuts", keys.DetailHelp{KeyMap: m.keys})
	return m.detail.Open(rawID)
}

// applyDraftOptions stores the chosen priority and due date on the draft.
// With a title already typed the todo is added right away; otherwise the
// input is focused so the user can type one.
func (m *Model) applyDraftOptions(msg todoform.OptionsSubmittedMsg) tea.Cmd {
	d := &m.listCtrl.Draft
	d.Priority = msg.Priority
	d.DueDate = msg.DueDate
	d.Expanded = false

	if m.listCtrl.CanSubmit() {
		return m.todoList.SubmitDraft()
	}
	return m.todoList.FocusInput()
}
