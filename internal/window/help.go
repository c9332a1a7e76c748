package window

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/kmacinski/deff/internal/ui"
)

// Help displays keybinding help as a centered modal
type Help struct {
	styles ui.Styles
	groups [][]key.Binding
}

// NewHelp creates a help modal listing the given binding groups
func NewHelp(styles ui.Styles, groups [][]key.Binding) *Help {
	return &Help{styles: styles, groups: groups}
}

// View renders the help content boxed to at most width x height cells
func (h *Help) View(width, height int) string {
	contentWidth := width - 4   // padding and border
	contentHeight := height - 4 // padding and border

	if contentWidth < 1 || contentHeight < 1 {
		return ""
	}

	var lines []string
	lines = append(lines, h.styles.ModalTitle.Render("Keybindings"))
	lines = append(lines, "")

	keyStyle := h.styles.Bold.Width(12)
	for i, group := range h.groups {
		if i > 0 {
			lines = append(lines, "")
		}
		seen := make(map[string]bool)
		for _, b := range group {
			hk := strings.TrimSuffix(b.Help().Key, ":")
			if hk == "" || seen[hk] {
				continue
			}
			seen[hk] = true
			lines = append(lines, fmt.Sprintf("%s %s", keyStyle.Render(hk), h.styles.Meta.Render(b.Help().Desc)))
		}
	}

	lines = append(lines, "")
	lines = append(lines, h.styles.Muted.Render("Press ? or Esc to close"))

	return h.styles.Modal.
		Width(contentWidth).
		MaxHeight(contentHeight).
		Render(strings.Join(lines, "\n"))
}

// Overlay centers the modal on a screen of the given size
func (h *Help) Overlay(width, height int) string {
	modal := h.View(min(50, width-4), min(26, height-4))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
