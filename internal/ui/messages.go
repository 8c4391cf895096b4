package ui

import tea "github.com/charmbracelet/bubbletea"

// ErrMsg reports a failed action to the root model, which shows it in the
// status bar.
type ErrMsg struct {
	Err error
}

// StatusMsg shows a short notice in the status bar.
type StatusMsg string

// ErrCmd wraps err in an ErrMsg. A nil err yields a nil command.
func ErrCmd(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg { return ErrMsg{Err: err} }
}

// StatusCmd emits a StatusMsg.
func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg(text) }
}
