package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/theme"
)

// Layout splits the terminal into a one-line header, the active view and
// a one-line status bar.
type Layout struct {
	Width  int
	Height int
}

// NewLayout returns the layout for a terminal of the given size.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentWidth is the width handed to views.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight is what remains between the two bars, at least one line.
func (l Layout) ContentHeight() int {
	return max(l.Height-2, 1)
}

// RenderHeader shows the app title on the left and the todo counts on the
// right.
func (l Layout) RenderHeader(title, summary string) string {
	return l.bar(theme.HeaderStyle, title, summary)
}

// RenderStatusBar shows key hints, or errMsg in the error color when one
// is pending.
func (l Layout) RenderStatusBar(hints, errMsg string) string {
	if errMsg != "" {
		return l.bar(theme.StatusBarStyle, theme.ErrorStyle.Render(errMsg), "")
	}
	return l.bar(theme.StatusBarStyle, hints, "")
}

// RenderWithFrame stacks header, content and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// bar renders left and right segments in style, padded with the style's
// background to the full width.
func (l Layout) bar(style lipgloss.Style, left, right string) string {
	leftRendered := style.Render(left)
	var rightRendered string
	if right != "" {
		rightRendered = style.Render(right)
	}

	gap := max(l.Width-lipgloss.Width(leftRendered)-lipgloss.Width(rightRendered), 0)
	filler := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, filler, rightRendered)
}
