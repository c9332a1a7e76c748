package search

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMatches(t *testing.T) {
	left := []string{"alpha", "left-hit", "gamma"}
	right := []string{"one", "two", "right-hit", "extra hit"}

	require.Equal(t, []int{1}, Matches(left, right, "left"))
	require.Equal(t, []int{2}, Matches(left, right, "right"))
	require.Equal(t, []int{1, 2, 3}, Matches(left, right, "hit"))
	require.Empty(t, Matches(left, right, "HIT"))
	require.Empty(t, Matches(left, right, ""))
	require.Empty(t, Matches(nil, nil, "x"))
}

func TestState_RightPaneOnlyMatch(t *testing.T) {
	s := New()
	s.Query = "needle"
	s.Recompute([]string{"a", "b", "c"}, []string{"a", "b", "needle"})
	require.Equal(t, []int{2}, s.Matches)

	s.Cursor = -1
	line, ok := s.Next()
	require.True(t, ok)
	require.Equal(t, 2, line)
	require.Equal(t, 0, s.Cursor)

	line, ok = s.Prev()
	require.True(t, ok)
	require.Equal(t, 2, line)
	require.Equal(t, 0, s.Cursor)
}

func TestState_CursorWraps(t *testing.T) {
	s := State{Query: "x", Matches: []int{1, 5, 9}, Cursor: 2}

	line, _ := s.Next()
	require.Equal(t, 1, line)
	require.Equal(t, 0, s.Cursor)

	line, _ = s.Prev()
	require.Equal(t, 9, line)
	require.Equal(t, 2, s.Cursor)

	s.Cursor = -1
	line, _ = s.Prev()
	require.Equal(t, 9, line)

	s.Cursor = -1
	line, _ = s.Next()
	require.Equal(t, 1, line)
}

func TestState_NoMatches(t *testing.T) {
	s := New()
	_, ok := s.Next()
	require.False(t, ok)
	_, ok = s.Prev()
	require.False(t, ok)
	require.Equal(t, -1, s.Cursor)
}

func TestState_Commit(t *testing.T) {
	lines := []string{"x", "", "x", "", "x"}

	s := New()
	line, ok := s.Commit("x", lines, nil, 1)
	require.True(t, ok)
	require.Equal(t, 2, line)
	require.Equal(t, 1, s.Cursor)

	line, ok = s.Commit("x", lines, nil, 4)
	require.True(t, ok)
	require.Equal(t, 4, line)

	// Nothing at or after the offset wraps to the first match
	line, ok = s.Commit("x", lines, nil, 10)
	require.True(t, ok)
	require.Equal(t, 0, line)
	require.Equal(t, 0, s.Cursor)

	_, ok = s.Commit("zzz", lines, nil, 0)
	require.False(t, ok)
	require.Equal(t, -1, s.Cursor)
	require.Equal(t, "zzz", s.Query)
}

func TestState_Status(t *testing.T) {
	s := New()
	require.Equal(t, "search: /", s.Status(nil))

	buf := "abc"
	require.Equal(t, "search: /abc", s.Status(&buf))

	s.Query = "q"
	require.Equal(t, "search: /q (no matches)", s.Status(nil))

	s.Matches = []int{3, 4}
	s.Cursor = 1
	require.Equal(t, "search: /q (2/2)", s.Status(nil))
}

func TestMatches_AscendingUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		alphabet := rapid.SampledFrom([]string{"a", "b", "ab", "ba", ""})
		left := rapid.SliceOf(alphabet).Draw(t, "left")
		right := rapid.SliceOf(alphabet).Draw(t, "right")
		query := rapid.SampledFrom([]string{"a", "b", "ab"}).Draw(t, "query")

		got := Matches(left, right, query)
		for i := 1; i < len(got); i++ {
			if got[i] <= got[i-1] {
				t.Fatalf("matches not strictly ascending: %v", got)
			}
		}
		for _, i := range got {
			if i >= max(len(left), len(right)) {
				t.Fatalf("match %d out of range", i)
			}
		}
	})
}
