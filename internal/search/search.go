// Package search finds literal query matches across both panes of a file and
// keeps a cyclic cursor over them.
package search

import (
	"fmt"
	"strings"
)

// Matches returns the ascending line indexes where either pane's line contains
// query. Matching is literal and case-sensitive; an empty query matches nothing.
func Matches(left, right []string, query string) []int {
	if query == "" {
		return nil
	}

	var out []int
	for i := 0; i < max(len(left), len(right)); i++ {
		if (i < len(left) && strings.Contains(left[i], query)) ||
			(i < len(right) && strings.Contains(right[i], query)) {
			out = append(out, i)
		}
	}
	return out
}

// State is the committed query, its matches in the active file, and the cursor
type State struct {
	Query   string
	Matches []int
	Cursor  int // index into Matches, -1 when unset
}

// New returns an empty search state
func New() State {
	return State{Cursor: -1}
}

// Recompute replaces the matches for new file content. The cursor moves to the
// first match, or is unset when there are none.
func (s *State) Recompute(left, right []string) {
	s.Matches = Matches(left, right, s.Query)
	if len(s.Matches) == 0 {
		s.Cursor = -1
		return
	}
	s.Cursor = 0
}

// Commit sets a new query, recomputes matches and positions the cursor on the
// first match at or after fromLine, wrapping to the first match. It returns the
// matched line and whether there was one.
func (s *State) Commit(query string, left, right []string, fromLine int) (int, bool) {
	s.Query = query
	s.Recompute(left, right)
	if len(s.Matches) == 0 {
		return 0, false
	}

	s.Cursor = 0
	for i, line := range s.Matches {
		if line >= fromLine {
			s.Cursor = i
			break
		}
	}
	return s.Matches[s.Cursor], true
}

// Next advances the cursor cyclically and returns the matched line
func (s *State) Next() (int, bool) {
	return s.step(true)
}

// Prev retreats the cursor cyclically and returns the matched line
func (s *State) Prev() (int, bool) {
	return s.step(false)
}

func (s *State) step(forward bool) (int, bool) {
	n := len(s.Matches)
	if n == 0 {
		s.Cursor = -1
		return 0, false
	}

	switch {
	case s.Cursor < 0 || s.Cursor >= n:
		if forward {
			s.Cursor = 0
		} else {
			s.Cursor = n - 1
		}
	case forward:
		s.Cursor = (s.Cursor + 1) % n
	default:
		s.Cursor = (s.Cursor + n - 1) % n
	}
	return s.Matches[s.Cursor], true
}

// Status renders the footer search segment. inputBuffer is non-nil while the
// user is typing a query.
func (s *State) Status(inputBuffer *string) string {
	if inputBuffer != nil {
		return "search: /" + *inputBuffer
	}
	if s.Query == "" {
		return "search: /"
	}
	if len(s.Matches) == 0 {
		return fmt.Sprintf("search: /%s (no matches)", s.Query)
	}
	return fmt.Sprintf("search: /%s (%d/%d)", s.Query, max(0, s.Cursor)+1, len(s.Matches))
}
