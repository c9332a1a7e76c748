package diff

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kmacinski/deff/internal/git"
)

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// LineSet is a set of 0-based line indexes
type LineSet map[int]struct{}

// NewLineSet returns a set containing the given indexes
func NewLineSet(indexes ...int) LineSet {
	s := make(LineSet, len(indexes))
	for _, i := range indexes {
		s[i] = struct{}{}
	}
	return s
}

// rangeSet returns {0, 1, ..., n-1}
func rangeSet(n int) LineSet {
	s := make(LineSet, n)
	for i := 0; i < n; i++ {
		s[i] = struct{}{}
	}
	return s
}

// Has reports whether i is in the set
func (s LineSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Sorted returns the members in ascending order
func (s LineSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Highlights holds the changed line indexes of both panes
type Highlights struct {
	LeftDeleted LineSet
	RightAdded  LineSet
}

func emptyHighlights() Highlights {
	return Highlights{LeftDeleted: LineSet{}, RightAdded: LineSet{}}
}

// ParseHighlights extracts changed line indexes from the hunk headers of a
// zero-context patch. Lines that are not hunk headers are ignored.
func ParseHighlights(patch string) Highlights {
	return parseHighlights(patch, -1, -1)
}

// parseHighlights keeps only indexes below the given line counts. A negative
// count leaves that side unbounded.
func parseHighlights(patch string, leftCount, rightCount int) Highlights {
	h := emptyHighlights()

	for _, line := range strings.Split(patch, "\n") {
		m := hunkHeaderRe.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
		if m == nil {
			continue
		}
		addRange(h.LeftDeleted, m[1], m[2], leftCount)
		addRange(h.RightAdded, m[3], m[4], rightCount)
	}
	return h
}

func addRange(set LineSet, rawStart, rawCount string, limit int) {
	start, err := strconv.Atoi(rawStart)
	if err != nil {
		return
	}
	first := max(0, start-1)
	end := first + parseHunkCount(rawCount)
	if limit >= 0 {
		end = min(end, limit)
	}
	for i := first; i < end; i++ {
		set[i] = struct{}{}
	}
}

// parseHunkCount treats an omitted count as 1
func parseHunkCount(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// ComputeHighlights derives the highlight sets for one file. Files with a
// missing side are highlighted in full without consulting the patch; a patch
// that cannot be fetched yields no highlights. Hunk ranges are clipped to the
// line counts of each side.
func ComputeHighlights(d git.Descriptor, leftCount, rightCount int, patch func() (string, error)) (Highlights, error) {
	if d.BaseSource == git.SourceMissing {
		return Highlights{LeftDeleted: LineSet{}, RightAdded: rangeSet(rightCount)}, nil
	}
	if d.HeadSource == git.SourceMissing {
		return Highlights{LeftDeleted: rangeSet(leftCount), RightAdded: LineSet{}}, nil
	}
	if d.BasePath == "" || d.HeadPath == "" {
		return emptyHighlights(), nil
	}

	out, err := patch()
	if err != nil {
		return emptyHighlights(), err
	}
	return parseHighlights(out, leftCount, rightCount), nil
}
