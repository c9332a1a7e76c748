package window

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/kmacinski/deff/internal/diff"
	"github.com/kmacinski/deff/internal/git"
	"github.com/kmacinski/deff/internal/layout"
	"github.com/kmacinski/deff/internal/syntax"
	"github.com/kmacinski/deff/internal/ui"
)

const staleMarker = "[working tree changed since load]"

// Highlighter splits visible text into styled spans
type Highlighter interface {
	Spans(text, language string) []syntax.Span
}

// Frame is everything painted in one screen of the review
type Frame struct {
	Geometry   layout.Geometry
	Comparison git.Comparison
	File       *diff.FileView

	FileIndex     int
	FileCount     int
	Reviewed      bool
	ReviewedCount int

	Scroll      int
	LeftOffset  int
	RightOffset int

	SearchStatus string
	Hints        string
	Notice       string
	Stale        bool
}

// Render returns the frame as newline-joined lines, each exactly as wide as
// the terminal. hl may be nil.
func (f Frame) Render(styles ui.Styles, hl Highlighter) string {
	return strings.Join(f.Lines(styles, hl), "\n")
}

// Lines returns the frame rows: header, divider, body, divider, footer
func (f Frame) Lines(styles ui.Styles, hl Highlighter) []string {
	if f.File == nil {
		return nil
	}
	g := f.Geometry
	cols := g.Columns

	lines := make([]string, 0, layout.HeaderLines+layout.DividerLines+layout.FooterLines+g.BodyLines)
	lines = append(lines, f.header(styles)...)

	divider := styles.Divider.Render(fit(strings.Repeat("-", cols), cols))
	lines = append(lines, divider)

	sep := styles.Separator.Render(layout.Separator)
	for row := 0; row < g.BodyLines; row++ {
		idx := f.Scroll + row
		left := f.paneLine(styles, hl, layout.PaneLeft, idx)
		right := f.paneLine(styles, hl, layout.PaneRight, idx)
		lines = append(lines, fit(left+sep+right, cols))
	}

	lines = append(lines, divider)
	lines = append(lines, fit(f.Hints, cols))
	lines = append(lines, styles.Status.Render(fit(f.statusLine(), cols)))
	return lines
}

func (f Frame) header(styles ui.Styles) []string {
	cols := f.Geometry.Columns
	c := f.Comparison
	d := f.File.Descriptor

	title := fmt.Sprintf("deff review (%s)  %s", c.Strategy, c.Summary)
	titleLine := styles.Title.Render(fit(title, cols))
	if f.Stale {
		room := cols - ansi.StringWidth(title) - 2
		if room >= len(staleMarker) {
			titleLine = styles.Title.Render(title) + "  " + styles.Stale.Render(staleMarker)
			titleLine = fit(titleLine, cols)
		}
	}

	reviewed := "unreviewed"
	if f.Reviewed {
		reviewed = "reviewed"
	}
	meta := fmt.Sprintf("file %d/%d [%s] [%s] reviewed: %d/%d  %s",
		f.FileIndex+1, f.FileCount, d.RawStatus, reviewed, f.ReviewedCount, f.FileCount, sideSummary(c))

	return []string{
		titleLine,
		styles.Filename.Render(fit("filename: "+d.DisplayPath, cols)),
		styles.Meta.Render(fit(meta, cols)),
		styles.Details.Render(fit(strings.Join(c.Details, " | "), cols)),
	}
}

func sideSummary(c git.Comparison) string {
	if c.IncludesUncommitted {
		return fmt.Sprintf("left: %s (%s)  right: working tree (%s + local changes)",
			c.BaseRef, shortCommit(c.BaseCommit), c.HeadRef)
	}
	return fmt.Sprintf("left: %s (%s)  right: %s (%s)",
		c.BaseRef, shortCommit(c.BaseCommit), c.HeadRef, shortCommit(c.HeadCommit))
}

func shortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}

func (f Frame) statusLine() string {
	g := f.Geometry
	n := f.File.MaxLines()
	first, last := 0, 0
	if n > 0 {
		first = f.Scroll + 1
		last = min(n, f.Scroll+g.BodyLines)
	}
	maxLeft := layout.MaxPaneOffset(f.File.LeftMaxWidth, g.LeftContent)
	maxRight := layout.MaxPaneOffset(f.File.RightMaxWidth, g.RightContent)

	s := fmt.Sprintf("lines %d-%d/%d  v %d/%d  xL %d/%d  xR %d/%d  %s",
		first, last, n, f.Scroll, g.MaxScroll(n),
		f.LeftOffset, maxLeft, f.RightOffset, maxRight, f.SearchStatus)
	if f.Notice != "" {
		s += "  " + f.Notice
	}
	return s
}

// paneLine formats one row of a pane: right-aligned 1-based line number, a
// space, then the visible slice of content padded to the content width.
func (f Frame) paneLine(styles ui.Styles, hl Highlighter, p layout.Pane, idx int) string {
	g := f.Geometry

	var (
		lines    []string
		changed  diff.LineSet
		width    int
		offset   int
		language string
		tint     lipgloss.Style
	)
	switch p {
	case layout.PaneLeft:
		lines, changed, width, offset, language = f.File.LeftLines, f.File.LeftDeleted, g.LeftWidth, f.LeftOffset, f.File.LeftSyntax
		tint = styles.Deleted
	default:
		lines, changed, width, offset, language = f.File.RightLines, f.File.RightAdded, g.RightWidth, f.RightOffset, f.File.RightSyntax
		tint = styles.Added
	}

	base := styles.Context
	if changed.Has(idx) {
		base = tint
	}

	exists := idx >= 0 && idx < len(lines)
	numStr := strings.Repeat(" ", g.LineNumberWidth)
	if exists {
		numStr = fmt.Sprintf("%*d", g.LineNumberWidth, idx+1)
	}
	prefix := numStr + " "
	numStyle := styles.LineNumber.Inherit(base)

	if width <= len(prefix) {
		return numStyle.Render(fit(prefix, width))
	}

	contentWidth := width - len(prefix)
	text := ""
	if exists {
		text = diff.Normalize(lines[idx])
	}
	visible := diff.SliceColumns(text, offset, contentWidth)

	var b strings.Builder
	b.WriteString(numStyle.Render(prefix))
	if hl == nil || !exists {
		b.WriteString(base.Render(visible))
		return b.String()
	}
	for _, span := range hl.Spans(visible, language) {
		b.WriteString(spanStyle(base, span).Render(span.Text))
	}
	return b.String()
}

func spanStyle(base lipgloss.Style, s syntax.Span) lipgloss.Style {
	st := base
	if s.Foreground != "" {
		st = st.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	return st
}

// fit truncates s to width cells and pads it with spaces; escape sequences
// in s are preserved and not counted.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	t := ansi.Truncate(s, width, "")
	if pad := width - ansi.StringWidth(t); pad > 0 {
		t += strings.Repeat(" ", pad)
	}
	return t
}
