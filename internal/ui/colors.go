package ui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the application
type Colors struct {
	AddedBg   lipgloss.Color
	DeletedBg lipgloss.Color
	Header    lipgloss.Color
	Border    lipgloss.Color
	Reviewed  lipgloss.Color
	Stale     lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
}

// DarkColors is the palette for dark terminal backgrounds
var DarkColors = Colors{
	AddedBg:   lipgloss.Color("#162218"),
	DeletedBg: lipgloss.Color("#301818"),
	Header:    lipgloss.Color("#89b4fa"),
	Border:    lipgloss.Color("#89b4fa"),
	Reviewed:  lipgloss.Color("#a6e3a1"),
	Stale:     lipgloss.Color("#fab387"),
	Muted:     lipgloss.Color("#6c7086"),
	Text:      lipgloss.Color("#cdd6f4"),
}

// LightColors is the palette for light terminal backgrounds
var LightColors = Colors{
	AddedBg:   lipgloss.Color("#e6ffec"),
	DeletedBg: lipgloss.Color("#ffebe9"),
	Header:    lipgloss.Color("#1e66f5"),
	Border:    lipgloss.Color("#1e66f5"),
	Reviewed:  lipgloss.Color("#40a02b"),
	Stale:     lipgloss.Color("#fe640b"),
	Muted:     lipgloss.Color("#8c8fa1"),
	Text:      lipgloss.Color("#4c4f69"),
}
