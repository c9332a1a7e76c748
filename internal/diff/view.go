// Package diff builds the immutable per-file views shown side by side:
// content for both panes, changed-line highlights, widths and syntax ids.
package diff

import (
	"fmt"

	"github.com/kmacinski/deff/internal/git"
	"github.com/kmacinski/deff/internal/review"
	"github.com/rs/zerolog"
)

// FileView is everything needed to display and review one changed file
type FileView struct {
	Descriptor    git.Descriptor
	ReviewKey     string
	LeftLines     []string
	RightLines    []string
	LeftDeleted   LineSet
	RightAdded    LineSet
	LeftMaxWidth  int
	RightMaxWidth int
	LeftSyntax    string
	RightSyntax   string
}

// MaxLines returns the longer pane's line count
func (f *FileView) MaxLines() int {
	return max(len(f.LeftLines), len(f.RightLines))
}

// Highlights returns the file's changed-line sets
func (f *FileView) Highlights() Highlights {
	return Highlights{LeftDeleted: f.LeftDeleted, RightAdded: f.RightAdded}
}

// SyntaxDetector picks a syntax id for a file from its path and content
type SyntaxDetector interface {
	Detect(path string, lines []string) string
}

// Builder loads content for descriptors and assembles FileViews
type Builder struct {
	client   git.Client
	detector SyntaxDetector
	logger   zerolog.Logger
}

// NewBuilder creates a builder
func NewBuilder(client git.Client, detector SyntaxDetector, logger zerolog.Logger) *Builder {
	return &Builder{
		client:   client,
		detector: detector,
		logger:   logger.With().Str("component", "diff").Logger(),
	}
}

// Build returns one FileView per descriptor, in order. Per-file failures
// become placeholder content rather than errors.
func (b *Builder) Build(cmp git.Comparison, descriptors []git.Descriptor) []FileView {
	views := make([]FileView, 0, len(descriptors))
	for _, d := range descriptors {
		views = append(views, b.buildOne(cmp, d))
	}
	b.logger.Info().Int("files", len(views)).Msg("file views built")
	return views
}

func (b *Builder) buildOne(cmp git.Comparison, d git.Descriptor) FileView {
	left := b.loadSide(d.BaseSource, cmp.BaseCommit, d.BasePath, MissingLeft)
	right := b.loadSide(d.HeadSource, cmp.HeadCommit, d.HeadPath, MissingRight)

	h, err := ComputeHighlights(d, len(left), len(right), func() (string, error) {
		return b.client.Patch(cmp, d)
	})
	if err != nil {
		b.logger.Warn().Err(err).Str("path", d.DisplayPath).Msg("patch unavailable, no highlights")
	}

	return FileView{
		Descriptor:    d,
		ReviewKey:     review.Fingerprint(d, left, right),
		LeftLines:     left,
		RightLines:    right,
		LeftDeleted:   h.LeftDeleted,
		RightAdded:    h.RightAdded,
		LeftMaxWidth:  MaxWidth(left),
		RightMaxWidth: MaxWidth(right),
		LeftSyntax:    b.detect(d.BasePath, left),
		RightSyntax:   b.detect(d.HeadPath, right),
	}
}

func (b *Builder) detect(path string, lines []string) string {
	if b.detector == nil {
		return ""
	}
	return b.detector.Detect(path, lines)
}

func (b *Builder) loadSide(source git.ContentSource, rev, path, missing string) []string {
	if path == "" {
		return []string{missing}
	}

	var (
		content []byte
		err     error
	)
	switch source {
	case git.SourceMissing:
		return []string{missing}
	case git.SourceRevision:
		content, err = b.client.Show(rev, path)
	case git.SourceWorkingTree:
		content, err = b.client.ReadWorkingTree(path)
	}
	if err != nil {
		b.logger.Warn().Err(err).Str("path", path).Str("source", source.String()).Msg("content unavailable")
		return []string{fmt.Sprintf("<unable to load file: %v>", err)}
	}

	if IsBinary(content) {
		return []string{BinaryPlaceholder}
	}
	return SplitLines(git.DecodeLossy(content))
}
