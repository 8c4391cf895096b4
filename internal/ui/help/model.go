package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/theme"
)

// Model is the help overlay view. It shows the bindings of whichever view
// it was opened from.
type Model struct {
	keys   help.KeyMap
	title  string
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys help.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		title:  "Keyboard Shortcuts",
		help:   h,
		width:  width,
		height: height,
	}
}

// SetKeyMap switches the bindings shown and the overlay title.
func (m *Model) SetKeyMap(title string, keys help.KeyMap) {
	m.title = title
	m.keys = keys
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	helpText := m.help.View(m.keys)

	content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(m.title), helpText)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(max(m.height-4, 1)).
		Render(content)
}

// ShortView renders the one-line hint used in the status bar.
func (m Model) ShortView() string {
	m.help.ShowAll = false
	return m.help.View(m.keys)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
