package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/theme"
)

// Names of the commands the palette understands.
const (
	CmdNew       = "new"
	CmdAll       = "all"
	CmdActive    = "active"
	CmdCompleted = "completed"
	CmdClear     = "clear"
	CmdTheme     = "theme"
	CmdHelp      = "help"
	CmdQuit      = "quit"
)

// Commands lists every palette command, offered as suggestions.
var Commands = []string{
	CmdNew, CmdAll, CmdActive, CmdCompleted,
	CmdClear, CmdTheme, CmdHelp, CmdQuit,
}

var aliases = map[string]string{
	"add":             CmdNew,
	"todo":            CmdNew,
	"filter all":      CmdAll,
	"filter active":   CmdActive,
	"filter done":     CmdCompleted,
	"done":            CmdCompleted,
	"clear completed": CmdClear,
	"toggle theme":    CmdTheme,
	"q":               CmdQuit,
}

// CommandMsg is emitted when the user executes a command. Name is
// canonical; unknown input is passed through lower-cased.
type CommandMsg struct {
	Name string
}

// CancelMsg is emitted when the palette is dismissed.
type CancelMsg struct{}

// Parse resolves user input to a canonical command name.
func Parse(input string) string {
	s := strings.ToLower(strings.Join(strings.Fields(input), " "))
	if canonical, ok := aliases[s]; ok {
		return canonical
	}
	return s
}

// Known reports whether name is a palette command.
func Known(name string) bool {
	for _, c := range Commands {
		if c == name {
			return true
		}
	}
	return false
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "new, active, clear, theme..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Commands)
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			name := Parse(m.input.Value())
			m.input.Reset()
			if name == "" {
				return m, func() tea.Msg { return CancelMsg{} }
			}
			return m, func() tea.Msg { return CommandMsg{Name: name} }

		case "esc":
			m.input.Reset()
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Command Palette")
	hint := theme.HelpStyle.Render(strings.Join(Commands, " · "))

	content := lipgloss.JoinVertical(lipgloss.Left, title, m.input.View(), "", hint)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
