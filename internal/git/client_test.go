package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// newTestRepo creates a repository with two commits: the first adds a.txt and
// b.txt, the second modifies a.txt, deletes b.txt and adds c.txt.
func newTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	gitCmd := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
	}
	write := func(name, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	gitCmd("init", "-q")
	write("a.txt", "one\ntwo\nthree\n")
	write("b.txt", "bye\n")
	gitCmd("add", ".")
	gitCmd("-c", "commit.gpgsign=false", "commit", "-q", "-m", "first")

	write("a.txt", "one\nTWO\nthree\nfour\n")
	require.NoError(t, os.Remove(filepath.Join(dir, "b.txt")))
	write("c.txt", "new\n")
	gitCmd("add", "-A")
	gitCmd("-c", "commit.gpgsign=false", "commit", "-q", "-m", "second")

	return dir
}

func TestNewClient_NotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	_, err := NewClient(t.TempDir(), zerolog.Nop())
	require.ErrorIs(t, err, ErrNotGitRepo)
}

func TestGitClient_RangeComparison(t *testing.T) {
	dir := newTestRepo(t)
	c, err := NewClient(dir, zerolog.Nop())
	require.NoError(t, err)

	gitDir, err := c.GitDir()
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(gitDir))

	cmp, err := c.ResolveComparison(Options{Strategy: StrategyRange, BaseRef: "HEAD~1", HeadRef: "HEAD"})
	require.NoError(t, err)
	require.Equal(t, "HEAD~1..HEAD", cmp.Summary)
	require.Equal(t, []string{"commits in range: 1"}, cmp.Details)
	require.Len(t, cmp.BaseCommit, 40)
	require.False(t, cmp.NothingAhead())

	files, err := c.Descriptors(cmp)
	require.NoError(t, err)
	byPath := map[string]Descriptor{}
	for _, f := range files {
		byPath[f.DisplayPath] = f
	}
	require.Equal(t, StatusModified, byPath["a.txt"].Status)
	require.Equal(t, StatusDeleted, byPath["b.txt"].Status)
	require.Equal(t, StatusAdded, byPath["c.txt"].Status)

	patch, err := c.Patch(cmp, byPath["a.txt"])
	require.NoError(t, err)
	require.Contains(t, patch, "@@ -2 +2 @@")

	content, err := c.Show(cmp.BaseCommit, "a.txt")
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\nthree\n", string(content))
}

func TestGitClient_IncludeUncommitted(t *testing.T) {
	dir := newTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "d.txt"), []byte("untracked\n"), 0o644))

	c, err := NewClient(dir, zerolog.Nop())
	require.NoError(t, err)

	cmp, err := c.ResolveComparison(Options{
		Strategy:           StrategyRange,
		BaseRef:            "HEAD~1",
		HeadRef:            "HEAD",
		IncludeUncommitted: true,
	})
	require.NoError(t, err)
	require.Equal(t, "HEAD~1..WORKTREE", cmp.Summary)
	require.Contains(t, cmp.Details, "uncommitted: included")

	files, err := c.Descriptors(cmp)
	require.NoError(t, err)

	var untracked *Descriptor
	for i := range files {
		if files[i].DisplayPath == "d.txt" {
			untracked = &files[i]
		}
	}
	require.NotNil(t, untracked)
	require.Equal(t, StatusUntracked, untracked.Status)
	require.Equal(t, SourceWorkingTree, untracked.HeadSource)

	content, err := c.ReadWorkingTree("d.txt")
	require.NoError(t, err)
	require.Equal(t, "untracked\n", string(content))
}

func TestGitClient_NoUpstream(t *testing.T) {
	dir := newTestRepo(t)
	c, err := NewClient(dir, zerolog.Nop())
	require.NoError(t, err)

	_, err = c.ResolveComparison(Options{Strategy: StrategyUpstreamAhead, HeadRef: "HEAD"})
	require.ErrorIs(t, err, ErrNoUpstream)
}
