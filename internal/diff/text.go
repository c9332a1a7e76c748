package diff

import (
	"bytes"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	MissingLeft       = "<file does not exist in base revision>"
	MissingRight      = "<file does not exist in target revision>"
	BinaryPlaceholder = "<binary file preview not available>"

	binarySniffLen = 8192
)

// IsBinary reports whether content contains a NUL byte in its first 8KiB
func IsBinary(content []byte) bool {
	return bytes.IndexByte(content[:min(len(content), binarySniffLen)], 0) >= 0
}

// SplitLines splits file content into lines. CRLF endings are normalized and a
// single trailing newline does not produce an empty last line. Empty content
// yields one empty line.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if content == "" {
		return []string{""}
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Normalize expands tabs to two spaces and drops carriage returns
func Normalize(s string) string {
	if !strings.ContainsAny(s, "\t\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\t", "  ")
	return strings.ReplaceAll(s, "\r", "")
}

// Width returns the display width of a normalized line
func Width(s string) int {
	return runewidth.StringWidth(Normalize(s))
}

// MaxWidth returns the widest normalized line
func MaxWidth(lines []string) int {
	widest := 0
	for _, l := range lines {
		widest = max(widest, Width(l))
	}
	return widest
}

// SliceColumns returns the cells [start, start+width) of s, padded with spaces
// to exactly width cells. A wide rune cut by either edge becomes a space.
func SliceColumns(s string, start, width int) string {
	if width <= 0 {
		return ""
	}

	var b strings.Builder
	col, used := 0, 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if col+w <= start {
			col += w
			continue
		}
		if col < start {
			// rune straddles the left edge
			fill := min(col+w-start, width-used)
			b.WriteString(strings.Repeat(" ", fill))
			used += fill
			col += w
			continue
		}
		if used+w > width {
			break
		}
		b.WriteRune(r)
		used += w
		col += w
		if used == width {
			break
		}
	}
	if used < width {
		b.WriteString(strings.Repeat(" ", width-used))
	}
	return b.String()
}
