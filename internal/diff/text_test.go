package diff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a\nb\n", []string{"a", "b"}},
		{"a\nb", []string{"a", "b"}},
		{"a\r\nb\r\n", []string{"a", "b"}},
		{"", []string{""}},
		{"\n", []string{""}},
		{"a\n\n", []string{"a", ""}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, SplitLines(tt.in), "input %q", tt.in)
	}
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "a  b", Normalize("a\tb\r"))
	require.Equal(t, "plain", Normalize("plain"))
}

func TestWidth(t *testing.T) {
	require.Equal(t, 4, Width("a\tb"))
	require.Equal(t, 4, Width("日本"))
	require.Equal(t, 5, MaxWidth([]string{"ab", "abcde", ""}))
	require.Equal(t, 0, MaxWidth(nil))
}

func TestIsBinary(t *testing.T) {
	require.False(t, IsBinary([]byte("hello")))
	require.True(t, IsBinary([]byte("he\x00llo")))

	late := make([]byte, binarySniffLen+10)
	for i := range late {
		late[i] = 'a'
	}
	late[binarySniffLen+5] = 0
	require.False(t, IsBinary(late))
}

func TestSliceColumns(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		start int
		width int
		want  string
	}{
		{"pads short", "abc", 0, 5, "abc  "},
		{"cuts long", "abcdefgh", 2, 3, "cde"},
		{"offset past end", "abc", 10, 3, "   "},
		{"zero width", "abc", 0, 0, ""},
		{"wide rune fits", "日本語", 0, 4, "日本"},
		{"wide rune cut on right", "日本語", 0, 3, "日 "},
		{"wide rune cut on left", "日本語", 1, 4, " 本 "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SliceColumns(tt.s, tt.start, tt.width))
		})
	}
}
