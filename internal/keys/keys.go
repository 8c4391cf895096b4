package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Filters
	FilterAll       key.Binding
	FilterActive    key.Binding
	FilterCompleted key.Binding

	// List actions
	New            key.Binding
	Options        key.Binding
	Toggle         key.Binding
	Delete         key.Binding
	ClearCompleted key.Binding
	Theme          key.Binding

	// Detail actions
	Edit   key.Binding
	Remove key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "all"),
		),
		FilterActive: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "active"),
		),
		FilterCompleted: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "completed"),
		),
		New: key.NewBinding(
			key.WithKeys("n", "i"),
			key.WithHelp("n", "new todo"),
		),
		Options: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "priority & due date"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		ClearCompleted: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear completed"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "toggle theme"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Remove: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.New, k.Toggle, k.Delete, k.Select,
		k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.FilterAll, k.FilterActive, k.FilterCompleted, k.Command, k.Help},
		{k.New, k.Options, k.Toggle, k.Delete, k.ClearCompleted, k.Theme},
		{k.Edit, k.Remove},
	}
}

// ListHelp is the help.KeyMap shown from the list view.
type ListHelp struct{ *KeyMap }

// ShortHelp implements help.KeyMap.
func (h ListHelp) ShortHelp() []key.Binding { return h.KeyMap.ShortHelp() }

// FullHelp implements help.KeyMap.
func (h ListHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.Up, h.Down, h.Select, h.Quit},
		{h.FilterAll, h.FilterActive, h.FilterCompleted},
		{h.New, h.Options, h.Toggle, h.Delete, h.ClearCompleted},
		{h.Theme, h.Command, h.Help},
	}
}

// DetailHelp is the help.KeyMap shown from the detail view.
type DetailHelp struct{ *KeyMap }

// ShortHelp implements help.KeyMap.
func (h DetailHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.Edit, h.Toggle, h.Remove, h.Back}
}

// FullHelp implements help.KeyMap.
func (h DetailHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.Up, h.Down, h.Back},
		{h.Edit, h.Toggle, h.Remove},
		{h.Command, h.Help},
	}
}
