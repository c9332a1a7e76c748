// Package layout turns terminal dimensions into the frame geometry: how many
// body rows fit, how wide each pane is, and which cells belong to which pane.
package layout

import "strconv"

// Frame chrome
const (
	HeaderLines  = 4
	FooterLines  = 2
	DividerLines = 2
	MinBodyLines = 3

	Separator      = " | "
	SeparatorWidth = len(Separator)

	minLineNumberWidth = 3
)

// Pane identifies one of the two side-by-side columns
type Pane int

const (
	PaneNone Pane = iota
	PaneLeft
	PaneRight
)

func (p Pane) String() string {
	switch p {
	case PaneLeft:
		return "left"
	case PaneRight:
		return "right"
	default:
		return "none"
	}
}

// Span is a half-open range [Start, End)
type Span struct {
	Start int
	End   int
}

// Contains reports whether i falls in the span
func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

// Len returns the span length
func (s Span) Len() int {
	return max(0, s.End-s.Start)
}

// Geometry is the computed frame layout for one paint
type Geometry struct {
	Columns         int
	Rows            int
	BodyLines       int
	LeftWidth       int
	RightWidth      int
	LineNumberWidth int
	LeftContent     int
	RightContent    int

	HeaderRows Span
	BodyRows   Span
	LeftCols   Span
	RightCols  Span
}

// BodyLineCount returns the number of body rows for a terminal height
func BodyLineCount(rows int) int {
	return max(MinBodyLines, rows-(HeaderLines+FooterLines+DividerLines))
}

// Compute derives the frame geometry. Negative or tiny dimensions produce a
// minimal geometry rather than an error.
func Compute(columns, rows, maxLineCount int) Geometry {
	columns = max(0, columns)
	rows = max(0, rows)

	available := max(0, columns-SeparatorWidth)
	right := available / 2
	left := available - right

	lnw := max(minLineNumberWidth, len(strconv.Itoa(max(0, maxLineCount))))
	body := BodyLineCount(rows)
	bodyStart := HeaderLines + 1

	return Geometry{
		Columns:         columns,
		Rows:            rows,
		BodyLines:       body,
		LeftWidth:       left,
		RightWidth:      right,
		LineNumberWidth: lnw,
		LeftContent:     max(0, left-(lnw+1)),
		RightContent:    max(0, right-(lnw+1)),
		HeaderRows:      Span{Start: 0, End: HeaderLines},
		BodyRows:        Span{Start: bodyStart, End: bodyStart + body},
		LeftCols:        Span{Start: 0, End: left},
		RightCols:       Span{Start: left + SeparatorWidth, End: left + SeparatorWidth + right},
	}
}

// PaneAt returns the pane under a screen column
func (g Geometry) PaneAt(col int) Pane {
	switch {
	case g.LeftCols.Contains(col):
		return PaneLeft
	case g.RightCols.Contains(col):
		return PaneRight
	default:
		return PaneNone
	}
}

// InBody reports whether a screen row shows file content
func (g Geometry) InBody(row int) bool {
	return g.BodyRows.Contains(row)
}

// ContentWidth returns the text width of a pane
func (g Geometry) ContentWidth(p Pane) int {
	switch p {
	case PaneLeft:
		return g.LeftContent
	case PaneRight:
		return g.RightContent
	default:
		return 0
	}
}

// MaxScroll returns the largest vertical offset for a file of n lines
func (g Geometry) MaxScroll(n int) int {
	return max(0, n-g.BodyLines)
}

// MaxPaneOffset returns the largest horizontal offset for content of the
// given width shown in a pane of contentWidth cells.
func MaxPaneOffset(maxWidth, contentWidth int) int {
	if contentWidth <= 0 {
		return 0
	}
	return max(0, maxWidth-contentWidth)
}
