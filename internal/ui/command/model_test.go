package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]string{
		"new":             CmdNew,
		"  Add ":          CmdNew,
		"filter   active": CmdActive,
		"done":            CmdCompleted,
		"Clear Completed": CmdClear,
		"q":               CmdQuit,
		"frobnicate":      "frobnicate",
		"":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Parse(in), in)
	}
}

func TestKnown(t *testing.T) {
	for _, c := range Commands {
		assert.True(t, Known(c), c)
	}
	assert.False(t, Known("frobnicate"))
}

func TestEnterEmitsCommand(t *testing.T) {
	m := New(80, 24)
	for _, r := range "theme" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg{Name: CmdTheme}, cmd())
	assert.Equal(t, "", m.input.Value())
}

func TestEscCancels(t *testing.T) {
	m := New(80, 24)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}
