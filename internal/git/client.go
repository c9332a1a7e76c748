package git

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// GitClient implements the Client interface using git CLI
type GitClient struct {
	root   string
	logger zerolog.Logger
}

// NewClient locates the repository containing dir and returns a client rooted there
func NewClient(dir string, logger zerolog.Logger) (*GitClient, error) {
	c := &GitClient{root: dir, logger: logger.With().Str("component", "git").Logger()}

	out, err := c.runText("rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotGitRepo, err)
	}
	c.root = out
	c.logger.Debug().Str("root", c.root).Msg("repository located")
	return c, nil
}

// RepoRoot returns the top-level directory of the repository
func (c *GitClient) RepoRoot() string {
	return c.root
}

// GitDir returns the absolute path of the repository's git directory
func (c *GitClient) GitDir() (string, error) {
	out, err := c.runText("rev-parse", "--git-dir")
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(out) {
		return out, nil
	}
	return filepath.Join(c.root, out), nil
}

// ResolveComparison turns options into concrete commits and display text
func (c *GitClient) ResolveComparison(opts Options) (Comparison, error) {
	var (
		cmp Comparison
		err error
	)
	switch opts.Strategy {
	case StrategyRange:
		cmp, err = c.resolveRange(opts.BaseRef, opts.HeadRef)
	case StrategyUpstreamAhead:
		cmp, err = c.resolveUpstreamAhead(opts.HeadRef)
	default:
		return Comparison{}, fmt.Errorf("unsupported strategy %s", opts.Strategy)
	}
	if err != nil {
		return Comparison{}, err
	}

	if opts.IncludeUncommitted {
		cmp.Summary = cmp.BaseRef + "..WORKTREE"
		cmp.Details = append(cmp.Details, "uncommitted: included")
		cmp.IncludesUncommitted = true
	}

	c.logger.Info().
		Str("strategy", cmp.Strategy.String()).
		Str("summary", cmp.Summary).
		Str("base", cmp.BaseCommit).
		Str("head", cmp.HeadCommit).
		Msg("comparison resolved")
	return cmp, nil
}

func (c *GitClient) resolveUpstreamAhead(headRef string) (Comparison, error) {
	upstream, err := c.runText("rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}")
	if err != nil {
		return Comparison{}, fmt.Errorf("%w. Use --strategy range --base <git-ref> instead", ErrNoUpstream)
	}

	branch, err := c.runText("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return Comparison{}, err
	}
	baseCommit, err := c.commitOf(upstream)
	if err != nil {
		return Comparison{}, err
	}
	headCommit, err := c.commitOf(headRef)
	if err != nil {
		return Comparison{}, err
	}
	ahead, err := c.count(upstream+".."+headRef, "ahead count")
	if err != nil {
		return Comparison{}, err
	}
	behind, err := c.count(headRef+".."+upstream, "behind count")
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{
		Strategy:   StrategyUpstreamAhead,
		BaseRef:    upstream,
		HeadRef:    headRef,
		BaseCommit: baseCommit,
		HeadCommit: headCommit,
		Summary:    upstream + ".." + headRef,
		Details: []string{
			"branch: " + branch,
			"upstream: " + upstream,
			fmt.Sprintf("ahead: %d", ahead),
			fmt.Sprintf("behind: %d", behind),
		},
		AheadCount: ahead,
	}, nil
}

func (c *GitClient) resolveRange(baseRef, headRef string) (Comparison, error) {
	if baseRef == "" {
		return Comparison{}, fmt.Errorf("missing base reference for range strategy")
	}
	baseCommit, err := c.commitOf(baseRef)
	if err != nil {
		return Comparison{}, err
	}
	headCommit, err := c.commitOf(headRef)
	if err != nil {
		return Comparison{}, err
	}
	commits, err := c.count(baseRef+".."+headRef, "commit count")
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{
		Strategy:   StrategyRange,
		BaseRef:    baseRef,
		HeadRef:    headRef,
		BaseCommit: baseCommit,
		HeadCommit: headCommit,
		Summary:    baseRef + ".." + headRef,
		Details:    []string{fmt.Sprintf("commits in range: %d", commits)},
		AheadCount: -1,
	}, nil
}

func (c *GitClient) commitOf(ref string) (string, error) {
	return c.runText("rev-parse", ref+"^{commit}")
}

func (c *GitClient) count(revRange, what string) (int, error) {
	out, err := c.runText("rev-list", "--count", revRange)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("unable to parse %s: %s", what, out)
	}
	return n, nil
}

// Descriptors lists the changed files for a comparison
func (c *GitClient) Descriptors(cmp Comparison) ([]Descriptor, error) {
	if !cmp.IncludesUncommitted {
		out, err := c.run("diff", "--name-status", "--find-renames", "-z", cmp.BaseCommit+".."+cmp.HeadCommit)
		if err != nil {
			return nil, err
		}
		descriptors := parseNameStatus(out, SourceRevision, SourceRevision)
		c.warnUnknownStatus(descriptors)
		return descriptors, nil
	}

	tracked, err := c.run("diff", "--name-status", "--find-renames", "-z", cmp.BaseCommit)
	if err != nil {
		return nil, err
	}
	descriptors := parseNameStatus(tracked, SourceRevision, SourceWorkingTree)
	c.warnUnknownStatus(descriptors)

	untracked, err := c.run("ls-files", "--others", "--exclude-standard", "-z")
	if err != nil {
		return nil, err
	}
	descriptors = appendUntracked(descriptors, splitNUL(untracked))

	c.logger.Debug().Int("files", len(descriptors)).Msg("descriptors listed")
	return descriptors, nil
}

func (c *GitClient) warnUnknownStatus(descriptors []Descriptor) {
	for _, d := range descriptors {
		if _, err := ParseStatus(d.RawStatus); err != nil {
			c.logger.Warn().Str("status", d.RawStatus).Str("path", d.DisplayPath).Msg("unknown status reviewed as modified")
		}
	}
}

// Show returns the content of path at a revision
func (c *GitClient) Show(rev, path string) ([]byte, error) {
	return c.run("show", rev+":"+path)
}

// ReadWorkingTree returns the content of path in the working tree
func (c *GitClient) ReadWorkingTree(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(c.root, path))
}

// Patch returns the zero-context patch for a single descriptor
func (c *GitClient) Patch(cmp Comparison, d Descriptor) (string, error) {
	args := []string{"diff", "--no-color", "--unified=0"}
	if cmp.IncludesUncommitted {
		args = append(args, cmp.BaseCommit)
	} else {
		args = append(args, "--find-renames", cmp.BaseCommit+".."+cmp.HeadCommit)
	}
	args = append(args, "--", d.BasePath)
	if d.HeadPath != d.BasePath {
		args = append(args, d.HeadPath)
	}

	out, err := c.run(args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (c *GitClient) run(args ...string) ([]byte, error) {
	//nolint:gosec // G204: args come from controlled sources
	cmd := exec.Command("git", args...)
	cmd.Dir = c.root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		details := strings.TrimSpace(stderr.String())
		if details == "" {
			details = err.Error()
		}
		return nil, fmt.Errorf("git %s failed: %s", strings.Join(args, " "), details)
	}
	return stdout.Bytes(), nil
}

func (c *GitClient) runText(args ...string) (string, error) {
	out, err := c.run(args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
