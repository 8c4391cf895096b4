package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todo/internal/logging"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/store"
	"github.com/nhle/todo/internal/todos"
	"github.com/nhle/todo/internal/ui/command"
	"github.com/nhle/todo/internal/ui/detail"
	"github.com/nhle/todo/internal/ui/todolist"
	"github.com/nhle/todo/tests/testutil"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newMounted(t *testing.T, opts ...Option) (Model, *store.Repository) {
	t.Helper()
	repo, _ := testutil.NewTestRepository(t)
	opts = append([]Option{WithLogger(logging.Discard())}, opts...)
	m := New(repo, model.ThemeLight, opts...)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, mountMsg{})
	return m, repo
}

func addViaInput(t *testing.T, m Model, title string) Model {
	t.Helper()
	m, _ = update(t, m, runes("n"))
	require.True(t, m.todoList.Editing())
	m, _ = update(t, m, runes(title))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.todoList.Editing())
	return m
}

func TestApp_AddThroughInput(t *testing.T) {
	m, repo := newMounted(t)

	m = addViaInput(t, m, "Buy milk")

	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Buy milk", stored[0].Title)
	assert.Equal(t, model.PriorityMedium, stored[0].Priority)
	assert.Contains(t, m.View(), "Buy milk")
	assert.Contains(t, m.View(), "1 item left")
}

func TestApp_QuitKeyIsTextWhileTyping(t *testing.T) {
	m, repo := newMounted(t)

	m, _ = update(t, m, runes("n"))
	m, cmd := update(t, m, runes("q"))
	if cmd != nil {
		_, isQuit := cmd().(tea.QuitMsg)
		assert.False(t, isQuit)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "q", stored[0].Title)
}

func TestApp_ToggleAndFilter(t *testing.T) {
	m, _ := newMounted(t)
	m = addViaInput(t, m, "first")

	m, _ = update(t, m, runes("x"))
	assert.Equal(t, 1, m.listCtrl.CompletedCount())

	m, _ = update(t, m, runes("2"))
	assert.Equal(t, model.FilterActive, m.todoList.Filter())
	assert.Contains(t, m.View(), "No active todos.")

	m, _ = update(t, m, runes("3"))
	assert.Contains(t, m.View(), "first")
}

func TestApp_OpenDetailAndDelete(t *testing.T) {
	m, repo := newMounted(t)
	m = addViaInput(t, m, "to remove")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	sel, ok := cmd().(todolist.SelectedTodoMsg)
	require.True(t, ok)

	m, _ = update(t, m, sel)
	assert.Equal(t, ViewDetail, m.currentView)
	assert.Equal(t, todos.DetailLoaded, m.detail.Controller().State())
	assert.Contains(t, m.View(), "to remove")

	m, cmd = update(t, m, runes("D"))
	require.NotNil(t, cmd)
	back, ok := cmd().(detail.BackMsg)
	require.True(t, ok)

	m, _ = update(t, m, back)
	assert.Equal(t, ViewList, m.currentView)
	assert.Empty(t, m.listCtrl.Todos())

	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestApp_InitialDetailNotFound(t *testing.T) {
	m, _ := newMounted(t, WithInitialDetail("12345"))

	assert.Equal(t, ViewDetail, m.currentView)
	assert.Equal(t, todos.DetailNotFound, m.detail.Controller().State())
	assert.Contains(t, m.View(), "Todo not found")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, ViewList, m.currentView)
}

func TestApp_ThemeTogglePersists(t *testing.T) {
	m, repo := newMounted(t)

	_, cmd := update(t, m, runes("T"))
	require.NotNil(t, cmd)
	changed, ok := cmd().(todolist.ThemeChangedMsg)
	require.True(t, ok)
	assert.Equal(t, model.ThemeDark, changed.Theme)

	stored, err := repo.Theme(context.Background(), model.ThemeLight)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, stored)
}

func TestApp_CommandPalette(t *testing.T) {
	m, _ := newMounted(t)

	m, _ = update(t, m, runes(":"))
	assert.Equal(t, ViewCommand, m.currentView)

	m, _ = update(t, m, command.CommandMsg{Name: command.CmdCompleted})
	assert.Equal(t, ViewList, m.currentView)
	assert.Equal(t, model.FilterCompleted, m.todoList.Filter())

	m, _ = update(t, m, runes(":"))
	m, cmd := update(t, m, command.CommandMsg{Name: "bogus"})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Contains(t, m.View(), "unknown command")
}

func TestApp_HelpToggle(t *testing.T) {
	m, _ := newMounted(t)

	m, _ = update(t, m, runes("?"))
	assert.Equal(t, ViewHelp, m.currentView)
	assert.Contains(t, m.View(), "List Shortcuts")

	m, _ = update(t, m, runes("?"))
	assert.Equal(t, ViewList, m.currentView)
}
