package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"M", StatusModified},
		{"T", StatusModified},
		{"A", StatusAdded},
		{"D", StatusDeleted},
		{"R100", StatusRenamed},
		{"C075", StatusCopied},
		{"??", StatusUntracked},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseStatus(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStatus("X")
	require.ErrorIs(t, err, ErrUnknownStatus)
	_, err = ParseStatus("")
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestParseNameStatus_Rename(t *testing.T) {
	files := parseNameStatus([]byte("R100\x00old.txt\x00new.txt\x00"), SourceRevision, SourceRevision)
	require.Len(t, files, 1)

	f := files[0]
	require.Equal(t, StatusRenamed, f.Status)
	require.Equal(t, "R100", f.RawStatus)
	require.Equal(t, "old.txt -> new.txt", f.DisplayPath)
	require.Equal(t, "old.txt", f.BasePath)
	require.Equal(t, "new.txt", f.HeadPath)
}

func TestParseNameStatus_AddedDeletedModified(t *testing.T) {
	raw := []byte("A\x00new.go\x00D\x00gone.go\x00M\x00main.go\x00")
	files := parseNameStatus(raw, SourceRevision, SourceWorkingTree)
	require.Len(t, files, 3)

	require.Equal(t, "", files[0].BasePath)
	require.Equal(t, SourceMissing, files[0].BaseSource)
	require.Equal(t, SourceWorkingTree, files[0].HeadSource)

	require.Equal(t, "", files[1].HeadPath)
	require.Equal(t, SourceMissing, files[1].HeadSource)
	require.Equal(t, SourceRevision, files[1].BaseSource)

	require.Equal(t, "main.go", files[2].BasePath)
	require.Equal(t, "main.go", files[2].HeadPath)
}

func TestParseNameStatus_Truncated(t *testing.T) {
	files := parseNameStatus([]byte("M\x00a.go\x00R100\x00only-old\x00"), SourceRevision, SourceRevision)
	require.Len(t, files, 1)

	files = parseNameStatus(nil, SourceRevision, SourceRevision)
	require.Empty(t, files)
}

func TestParseNameStatus_UnknownLetterIsModified(t *testing.T) {
	raw := []byte("X\x00odd.bin\x00B\x00broken.go\x00M\x00a.go\x00")
	files := parseNameStatus(raw, SourceRevision, SourceWorkingTree)
	require.Len(t, files, 3)

	require.Equal(t, StatusModified, files[0].Status)
	require.Equal(t, "X", files[0].RawStatus)
	require.Equal(t, "odd.bin", files[0].BasePath)
	require.Equal(t, "odd.bin", files[0].HeadPath)
	require.Equal(t, SourceRevision, files[0].BaseSource)
	require.Equal(t, SourceWorkingTree, files[0].HeadSource)

	require.Equal(t, StatusModified, files[1].Status)
	require.Equal(t, "broken.go", files[1].DisplayPath)
	require.Equal(t, "a.go", files[2].DisplayPath)
}

func TestSplitNUL_DecodesPathsLossily(t *testing.T) {
	paths := splitNUL([]byte("caf\xC3\xA9.txt\x00bad\xFF\xFEname\x00"))
	require.Equal(t, []string{"café.txt", "bad\uFFFD\uFFFDname"}, paths)
}

func TestAppendUntracked_SkipsSeenPaths(t *testing.T) {
	files := []Descriptor{{Status: StatusModified, BasePath: "a.go", HeadPath: "a.go"}}
	files = appendUntracked(files, []string{"a.go", "b.go", "b.go"})

	require.Len(t, files, 2)
	require.Equal(t, StatusUntracked, files[1].Status)
	require.Equal(t, "??", files[1].RawStatus)
	require.Equal(t, SourceMissing, files[1].BaseSource)
	require.Equal(t, SourceWorkingTree, files[1].HeadSource)
}

func TestComparison_NothingAhead(t *testing.T) {
	c := Comparison{Strategy: StrategyUpstreamAhead, AheadCount: 0}
	require.True(t, c.NothingAhead())

	c.IncludesUncommitted = true
	require.False(t, c.NothingAhead())

	require.False(t, Comparison{Strategy: StrategyRange, AheadCount: -1}.NothingAhead())
}
