package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds all the lipgloss styles for the application
type Styles struct {
	Dark bool

	// Header
	Title    lipgloss.Style
	Filename lipgloss.Style
	Meta     lipgloss.Style
	Details  lipgloss.Style
	Stale    lipgloss.Style

	// Body
	Divider    lipgloss.Style
	Separator  lipgloss.Style
	LineNumber lipgloss.Style
	Added      lipgloss.Style
	Deleted    lipgloss.Style
	Context    lipgloss.Style

	// Footer
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
	Status   lipgloss.Style

	// Modal
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style

	// General
	Muted lipgloss.Style
	Bold  lipgloss.Style
}

// NewStyles creates a new Styles instance with the given colors
func NewStyles(c Colors, dark bool) Styles {
	return Styles{
		Dark: dark,

		Title: lipgloss.NewStyle().
			Foreground(c.Header).
			Bold(true),
		Filename: lipgloss.NewStyle().
			Bold(true).
			Underline(true),
		Meta: lipgloss.NewStyle().
			Foreground(c.Text),
		Details: lipgloss.NewStyle().
			Foreground(c.Muted),
		Stale: lipgloss.NewStyle().
			Foreground(c.Stale).
			Bold(true),

		Divider: lipgloss.NewStyle().
			Foreground(c.Muted),
		Separator: lipgloss.NewStyle().
			Foreground(c.Muted),
		LineNumber: lipgloss.NewStyle().
			Foreground(c.Muted),
		Added: lipgloss.NewStyle().
			Background(c.AddedBg),
		Deleted: lipgloss.NewStyle().
			Background(c.DeletedBg),
		Context: lipgloss.NewStyle(),

		HelpKey: lipgloss.NewStyle().
			Foreground(c.Text),
		HelpDesc: lipgloss.NewStyle().
			Foreground(c.Muted),
		Status: lipgloss.NewStyle().
			Foreground(c.Text),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.Border).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Header).
			MarginBottom(1),

		Muted: lipgloss.NewStyle().
			Foreground(c.Muted),
		Bold: lipgloss.NewStyle().
			Bold(true),
	}
}

// ForTheme returns the styles for a dark or light background
func ForTheme(dark bool) Styles {
	if dark {
		return NewStyles(DarkColors, true)
	}
	return NewStyles(LightColors, false)
}

// DefaultStyles returns styles with the dark palette
var DefaultStyles = ForTheme(true)
