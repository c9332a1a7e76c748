package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	PrevFile key.Binding
	NextFile key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	// Horizontal pane scroll
	LeftPaneBack     key.Binding
	LeftPaneForward  key.Binding
	RightPaneBack    key.Binding
	RightPaneForward key.Binding

	// Search
	Search    key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Backspace key.Binding

	// Hunks
	NextHunk key.Binding
	PrevHunk key.Binding

	// Actions
	Review    key.Binding
	Yank      key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default keybindings
var DefaultKeyMap = KeyMap{
	PrevFile: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/l:", "file"),
	),
	NextFile: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("h/l:", "file"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("j/k:", "scroll"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/k:", "scroll"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl-u/d:", "page"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl-u/d:", "page"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g/G:", "top/bottom"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("g/G:", "top/bottom"),
	),
	LeftPaneBack: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H/L:", "left pane sideways"),
	),
	LeftPaneForward: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("H/L:", "left pane sideways"),
	),
	RightPaneBack: key.NewBinding(
		key.WithKeys("<"),
		key.WithHelp("</>:", "right pane sideways"),
	),
	RightPaneForward: key.NewBinding(
		key.WithKeys(">"),
		key.WithHelp("</>:", "right pane sideways"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/:", "search"),
	),
	NextMatch: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n/N:", "next/prev match"),
	),
	PrevMatch: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("n/N:", "next/prev match"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter:", "apply search"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc:", "cancel/close"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("backspace:", "delete char"),
	),
	NextHunk: key.NewBinding(
		key.WithKeys("}"),
		key.WithHelp("{/}:", "prev/next hunk"),
	),
	PrevHunk: key.NewBinding(
		key.WithKeys("{"),
		key.WithHelp("{/}:", "prev/next hunk"),
	),
	Review: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r:", "reviewed"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y:", "copy path"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?:", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "Q"),
		key.WithHelp("q:", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl-c:", "quit"),
	),
}

// ShortHelp returns the footer hint bindings
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.PrevFile,
		k.Up,
		k.PageUp,
		k.Top,
		k.Search,
		k.NextMatch,
		k.Review,
		k.Quit,
	}
}

// FullHelp returns the keybindings shown in the help modal, grouped
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevFile, k.Up, k.PageUp, k.Top, k.LeftPaneBack, k.RightPaneBack},
		{k.Search, k.NextMatch, k.Confirm, k.Cancel, k.NextHunk},
		{k.Review, k.Yank, k.Help, k.Quit},
	}
}
