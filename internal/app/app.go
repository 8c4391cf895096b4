package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/todo/internal/keys"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/store"
	"github.com/nhle/todo/internal/theme"
	"github.com/nhle/todo/internal/todos"
	"github.com/nhle/todo/internal/ui"
	"github.com/nhle/todo/internal/ui/command"
	"github.com/nhle/todo/internal/ui/detail"
	helpview "github.com/nhle/todo/internal/ui/help"
	"github.com/nhle/todo/internal/ui/todoform"
	"github.com/nhle/todo/internal/ui/todolist"
)

// mountMsg triggers the initial load of the collection and theme.
type mountMsg struct{}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewCommand
	ViewTodoOptions
	ViewTodoEdit
)

// Option configures the root model.
type Option func(*Model)

// WithLogger sets the logger used for failures surfaced in the UI.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithInitialDetail opens the detail view for rawID once mounted.
func WithInitialDetail(rawID string) Option {
	return func(m *Model) { m.initialDetail = rawID }
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the persistence layer.
type Model struct {
	currentView   ViewState
	previousView  ViewState
	layout        ui.Layout
	keys          *keys.KeyMap
	listCtrl      *todos.List
	todoList      todolist.Model
	detail        detail.Model
	helpView      helpview.Model
	commandView   command.Model
	formView      todoform.Model
	logger        *log.Logger
	initialDetail string
	ready         bool
	status        string
	errMsg        string
}

// New creates a new root application model over repo. defaultTheme
// applies until the user toggles one.
func New(repo *store.Repository, defaultTheme model.Theme, opts ...Option) Model {
	k := keys.DefaultKeyMap()
	listCtrl := todos.NewList(repo, defaultTheme)

	m := Model{
		currentView: ViewList,
		keys:        k,
		listCtrl:    listCtrl,
		todoList:    todolist.New(listCtrl, k, 80, 22),
		detail:      detail.New(todos.NewDetail(repo), k, 80, 22),
		helpView:    helpview.New(keys.ListHelp{KeyMap: k}, 80, 22),
		commandView: command.New(80, 22),
		formView:    todoform.New(80, 22),
		logger:      log.Default(),
		layout:      ui.NewLayout(80, 24),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init returns the command that mounts the list.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return mountMsg{} }
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.todoList.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case mountMsg:
		return m, m.mount()

	case ui.ErrMsg:
		m.errMsg = msg.Err.Error()
		m.logger.Error("action failed", "err", msg.Err)
		return m, nil

	case ui.StatusMsg:
		m.status = string(msg)
		m.errMsg = ""
		return m, nil

	case todolist.SelectedTodoMsg:
		return m, m.openDetail(fmt.Sprint(msg.ID))

	case todolist.OpenOptionsMsg:
		m.currentView = ViewTodoOptions
		return m, m.formView.StartOptions(msg.Draft)

	case todolist.ThemeChangedMsg:
		m.applyTheme(msg.Theme)
		m.status = fmt.Sprintf("%s theme", msg.Theme)
		return m, nil

	case todoform.OptionsSubmittedMsg:
		m.currentView = ViewList
		return m, m.applyDraftOptions(msg)

	case todoform.EditSubmittedMsg:
		m.currentView = ViewDetail
		return m, m.detail.SaveEdit(msg.Form)

	case todoform.FormCancelMsg:
		if msg.Edit {
			m.detail.CancelEdit()
			m.currentView = ViewDetail
			return m, nil
		}
		m.listCtrl.CloseForm()
		m.currentView = ViewList
		return m, nil

	case detail.EditRequestMsg:
		m.currentView = ViewTodoEdit
		return m, m.formView.StartEdit(msg.Form)

	case detail.BackMsg:
		m.currentView = ViewList
		m.helpView.SetKeyMap("List Shortcuts", keys.ListHelp{KeyMap: m.keys})
		return m, m.remountList()

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(msg.Name)

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		// Keep the last error visible until the next key.
		m.errMsg = ""

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.capturesText() {
			break
		}

		switch msg.String() {
		case "q":
			if m.currentView == ViewList {
				return m, tea.Quit
			}

		case "?":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.openHelp()
			return m, nil

		case "esc":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}

		case ":":
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return m, m.commandView.Focus()
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// capturesText reports whether key presses belong to a text field.
func (m Model) capturesText() bool {
	switch m.currentView {
	case ViewCommand, ViewTodoOptions, ViewTodoEdit:
		return true
	case ViewList:
		return m.todoList.Editing()
	}
	return false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.todoList, cmd = m.todoList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewTodoOptions, ViewTodoEdit:
		m.formView, cmd = m.formView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Todos", m.todoList.Summary())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints(), m.errMsg)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.todoList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewTodoOptions, ViewTodoEdit:
		return m.formView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	hints := m.baseHints()
	if m.status != "" {
		return m.status + " | " + hints
	}
	return hints
}

func (m Model) baseHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewDetail:
		if m.detail.Controller().State() == todos.DetailNotFound {
			return "esc back"
		}
		return "e edit | x toggle | D delete | esc back | j/k scroll"
	case ViewTodoOptions, ViewTodoEdit:
		return "enter submit | esc cancel"
	default:
		if m.todoList.Editing() {
			return "enter add | tab priority & due | esc done"
		}
		return "q quit | ? help | n new | x toggle | d delete | 1/2/3 filter | T theme"
	}
}

// applyTheme points adaptive colors and markdown at t.
func (m *Model) applyTheme(t model.Theme) {
	theme.Apply(t)
	m.detail.SetTheme(t)
}

func (m *Model) openHelp() {
	if m.currentView == ViewDetail {
		m.helpView.SetKeyMap("Detail Shortcuts", keys.DetailHelp{KeyMap: m.keys})
	} else {
		m.helpView.SetKeyMap("List Shortcuts", keys.ListHelp{KeyMap: m.keys})
	}
	m.previousView = m.currentView
	m.currentView = ViewHelp
}

// executeCommand handles a command from the command palette.
func (m *Model) executeCommand(name string) tea.Cmd {
	switch name {
	case command.CmdQuit:
		return tea.Quit
	case command.CmdHelp:
		m.openHelp()
		return nil
	}

	m.currentView = ViewList
	switch name {
	case command.CmdNew:
		return m.todoList.FocusInput()
	case command.CmdAll:
		return m.todoList.SetFilter(model.FilterAll)
	case command.CmdActive:
		return m.todoList.SetFilter(model.FilterActive)
	case command.CmdCompleted:
		return m.todoList.SetFilter(model.FilterCompleted)
	case command.CmdClear:
		return m.todoList.ClearCompleted()
	case command.CmdTheme:
		return m.todoList.ToggleTheme()
	default:
		return ui.ErrCmd(fmt.Errorf("unknown command %q", name))
	}
}
