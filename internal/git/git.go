package git

import (
	"errors"
	"fmt"
)

var (
	// ErrNotGitRepo is returned when the working directory is outside a repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrNoUpstream is returned by the upstream-ahead strategy when the
	// current branch has no tracking branch.
	ErrNoUpstream = errors.New("no upstream branch configured for the current branch")

	// ErrUnknownStatus is returned for name-status letters outside the known set.
	ErrUnknownStatus = errors.New("unknown file status")
)

// Strategy selects how the base and head of a comparison are resolved
type Strategy int

const (
	StrategyUpstreamAhead Strategy = iota // Upstream of the current branch vs head
	StrategyRange                         // Explicit base..head
)

func (s Strategy) String() string {
	switch s {
	case StrategyUpstreamAhead:
		return "upstream-ahead"
	case StrategyRange:
		return "range"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a flag value into a Strategy
func ParseStrategy(value string) (Strategy, error) {
	switch value {
	case "upstream-ahead":
		return StrategyUpstreamAhead, nil
	case "range":
		return StrategyRange, nil
	default:
		return 0, fmt.Errorf("invalid strategy %q (expected upstream-ahead or range)", value)
	}
}

// ContentSource says where one side of a changed file is read from
type ContentSource int

const (
	SourceRevision    ContentSource = iota // git show <commit>:<path>
	SourceWorkingTree                      // file on disk
	SourceMissing                          // side does not exist
)

func (s ContentSource) String() string {
	switch s {
	case SourceRevision:
		return "revision"
	case SourceWorkingTree:
		return "working-tree"
	case SourceMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Status represents the kind of change recorded for a file
type Status int

const (
	StatusModified Status = iota
	StatusAdded
	StatusDeleted
	StatusRenamed
	StatusCopied
	StatusUntracked
)

func (s Status) String() string {
	switch s {
	case StatusModified:
		return "M"
	case StatusAdded:
		return "A"
	case StatusDeleted:
		return "D"
	case StatusRenamed:
		return "R"
	case StatusCopied:
		return "C"
	case StatusUntracked:
		return "??"
	default:
		return " "
	}
}

// ParseStatus maps a raw name-status token (e.g. "M", "R087", "??") to a Status.
// Type changes and unmerged entries are reviewed as modifications.
func ParseStatus(raw string) (Status, error) {
	if raw == "??" {
		return StatusUntracked, nil
	}
	if raw == "" {
		return 0, fmt.Errorf("%w: empty token", ErrUnknownStatus)
	}
	switch raw[0] {
	case 'M', 'T', 'U':
		return StatusModified, nil
	case 'A':
		return StatusAdded, nil
	case 'D':
		return StatusDeleted, nil
	case 'R':
		return StatusRenamed, nil
	case 'C':
		return StatusCopied, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
}

// Descriptor identifies one changed file in a comparison. An empty BasePath or
// HeadPath means that side is absent.
type Descriptor struct {
	Status      Status
	RawStatus   string
	DisplayPath string
	BasePath    string
	HeadPath    string
	BaseSource  ContentSource
	HeadSource  ContentSource
}

// Options are the user-supplied inputs for resolving a comparison
type Options struct {
	Strategy           Strategy
	BaseRef            string
	HeadRef            string
	IncludeUncommitted bool
}

// Comparison is a resolved base/head pair plus display metadata
type Comparison struct {
	Strategy            Strategy
	BaseRef             string
	HeadRef             string
	BaseCommit          string
	HeadCommit          string
	Summary             string
	Details             []string
	AheadCount          int // -1 when the strategy has no ahead count
	IncludesUncommitted bool
}

// NothingAhead reports whether an upstream-ahead comparison has no local
// commits to review.
func (c Comparison) NothingAhead() bool {
	return c.Strategy == StrategyUpstreamAhead && !c.IncludesUncommitted && c.AheadCount == 0
}

// Client defines the interface for git operations
type Client interface {
	// RepoRoot returns the top-level directory of the repository
	RepoRoot() string

	// GitDir returns the absolute path of the repository's git directory
	GitDir() (string, error)

	// ResolveComparison turns options into concrete commits and display text
	ResolveComparison(opts Options) (Comparison, error)

	// Descriptors lists the changed files for a comparison
	Descriptors(c Comparison) ([]Descriptor, error)

	// Show returns the content of path at a revision
	Show(rev, path string) ([]byte, error)

	// ReadWorkingTree returns the content of path in the working tree
	ReadWorkingTree(path string) ([]byte, error)

	// Patch returns the zero-context patch for a single descriptor
	Patch(c Comparison, d Descriptor) (string, error)
}
