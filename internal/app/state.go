package app

import (
	"github.com/kmacinski/deff/internal/diff"
	"github.com/kmacinski/deff/internal/layout"
	"github.com/kmacinski/deff/internal/review"
	"github.com/kmacinski/deff/internal/search"
)

// Mode is the input mode of the navigation state
type Mode interface {
	isMode()
}

type normalMode struct{}

type searchInputMode struct {
	buffer string
}

func (normalMode) isMode()      {}
func (searchInputMode) isMode() {}

// PaneOffsets are the horizontal scroll positions of one file's panes
type PaneOffsets struct {
	Left  int
	Right int
}

// State is the navigation state for a review session. Every mutation clamps
// against the most recent terminal size; Clamp re-applies the bounds once the
// frame geometry is known at paint time.
type State struct {
	files     []diff.FileView
	fileIndex int
	scroll    int
	offsets   []PaneOffsets
	mode      Mode
	search    search.State

	store         *review.Store
	reviewed      []bool
	reviewedCount int

	columns int
	rows    int
}

// NewState creates the state for a non-empty file list. store may be nil, in
// which case review marks are kept in memory only.
func NewState(files []diff.FileView, store *review.Store) *State {
	s := &State{
		files:    files,
		offsets:  make([]PaneOffsets, len(files)),
		mode:     normalMode{},
		search:   search.New(),
		store:    store,
		reviewed: make([]bool, len(files)),
	}
	if store != nil {
		for i := range files {
			if store.Contains(files[i].ReviewKey) {
				s.reviewed[i] = true
				s.reviewedCount++
			}
		}
	}
	return s
}

// Resize records the terminal size used for provisional clamping
func (s *State) Resize(columns, rows int) {
	s.columns = columns
	s.rows = rows
	s.clampAll()
}

// FileIndex returns the active file index
func (s *State) FileIndex() int { return s.fileIndex }

// FileCount returns the number of files under review
func (s *State) FileCount() int { return len(s.files) }

// Scroll returns the vertical offset of the active file
func (s *State) Scroll() int { return s.scroll }

// Offsets returns the pane offsets of file i
func (s *State) Offsets(i int) PaneOffsets {
	if i < 0 || i >= len(s.offsets) {
		return PaneOffsets{}
	}
	return s.offsets[i]
}

// Current returns the active file view
func (s *State) Current() *diff.FileView {
	if len(s.files) == 0 {
		return nil
	}
	return &s.files[s.fileIndex]
}

// Search returns the search sub-state
func (s *State) Search() *search.State { return &s.search }

// Mode returns the current input mode
func (s *State) Mode() Mode { return s.mode }

// InSearchInput reports whether a query is being typed
func (s *State) InSearchInput() bool {
	_, ok := s.mode.(searchInputMode)
	return ok
}

// SearchStatus renders the footer search segment for the current mode
func (s *State) SearchStatus() string {
	if m, ok := s.mode.(searchInputMode); ok {
		return s.search.Status(&m.buffer)
	}
	return s.search.Status(nil)
}

// Reviewed reports whether the active file is marked reviewed
func (s *State) Reviewed() bool {
	if len(s.reviewed) == 0 {
		return false
	}
	return s.reviewed[s.fileIndex]
}

// ReviewedCount returns how many files are marked reviewed
func (s *State) ReviewedCount() int { return s.reviewedCount }

// Geometry computes the layout for the active file at the recorded size
func (s *State) Geometry() layout.Geometry {
	return s.geometryFor(s.fileIndex)
}

func (s *State) geometryFor(i int) layout.Geometry {
	lines := 0
	if i >= 0 && i < len(s.files) {
		lines = s.files[i].MaxLines()
	}
	return layout.Compute(s.columns, s.rows, lines)
}

// MoveFile changes the active file by delta, clamped to the list. Switching
// files resets the vertical scroll and recomputes search matches; pane
// offsets are kept per file. It reports whether the file changed.
func (s *State) MoveFile(delta int) bool {
	if len(s.files) == 0 {
		return false
	}
	next := min(max(s.fileIndex+delta, 0), len(s.files)-1)
	if next == s.fileIndex {
		return false
	}
	s.fileIndex = next
	s.scroll = 0
	s.refreshSearch()
	s.clampOffsets(s.fileIndex, s.geometryFor(s.fileIndex))
	return true
}

// ScrollBy moves the vertical offset by delta lines
func (s *State) ScrollBy(delta int) {
	s.scroll += delta
	s.clampScroll(s.Geometry())
}

// Page moves the vertical offset by delta pages
func (s *State) Page(delta int) {
	s.ScrollBy(delta * s.Geometry().BodyLines)
}

// Top scrolls to the first line
func (s *State) Top() {
	s.scroll = 0
}

// Bottom scrolls to the last page
func (s *State) Bottom() {
	f := s.Current()
	if f == nil {
		return
	}
	s.scroll = s.Geometry().MaxScroll(f.MaxLines())
}

// ScrollPane moves one pane's horizontal offset by delta columns
func (s *State) ScrollPane(p layout.Pane, delta int) {
	if len(s.offsets) == 0 {
		return
	}
	o := &s.offsets[s.fileIndex]
	switch p {
	case layout.PaneLeft:
		o.Left += delta
	case layout.PaneRight:
		o.Right += delta
	default:
		return
	}
	s.clampOffsets(s.fileIndex, s.Geometry())
}

// ToggleReviewed flips the active file's review mark and returns the new
// value. The caller persists the store.
func (s *State) ToggleReviewed() bool {
	f := s.Current()
	if f == nil {
		return false
	}
	reviewed := !s.reviewed[s.fileIndex]
	if s.store != nil {
		reviewed = s.store.Toggle(f.ReviewKey)
	}
	if reviewed != s.reviewed[s.fileIndex] {
		if reviewed {
			s.reviewedCount++
		} else {
			s.reviewedCount--
		}
	}
	s.reviewed[s.fileIndex] = reviewed
	return reviewed
}

// EnterSearch switches to search input with an empty buffer
func (s *State) EnterSearch() {
	s.mode = searchInputMode{}
}

// AppendRune adds r to the search buffer
func (s *State) AppendRune(r rune) {
	if m, ok := s.mode.(searchInputMode); ok {
		s.mode = searchInputMode{buffer: m.buffer + string(r)}
	}
}

// Backspace removes the last rune of the search buffer
func (s *State) Backspace() {
	m, ok := s.mode.(searchInputMode)
	if !ok || m.buffer == "" {
		return
	}
	runes := []rune(m.buffer)
	s.mode = searchInputMode{buffer: string(runes[:len(runes)-1])}
}

// CommitSearch makes the buffer the active query and jumps to the first match
// at or after the current scroll offset.
func (s *State) CommitSearch() {
	m, ok := s.mode.(searchInputMode)
	if !ok {
		return
	}
	s.mode = normalMode{}

	f := s.Current()
	if f == nil {
		s.search.Query = m.buffer
		return
	}
	if line, found := s.search.Commit(m.buffer, f.LeftLines, f.RightLines, s.scroll); found {
		s.jumpTo(line)
	}
}

// CancelSearch discards the buffer and keeps the previous query
func (s *State) CancelSearch() {
	s.mode = normalMode{}
}

// NextMatch jumps to the next search match
func (s *State) NextMatch() {
	if line, ok := s.search.Next(); ok {
		s.jumpTo(line)
	}
}

// PrevMatch jumps to the previous search match
func (s *State) PrevMatch() {
	if line, ok := s.search.Prev(); ok {
		s.jumpTo(line)
	}
}

// NextHunk scrolls to the next block of changed lines
func (s *State) NextHunk() {
	f := s.Current()
	if f == nil {
		return
	}
	if line, ok := diff.NextHunk(diff.HunkStarts(f.Highlights()), s.scroll); ok {
		s.jumpTo(line)
	}
}

// PrevHunk scrolls to the previous block of changed lines
func (s *State) PrevHunk() {
	f := s.Current()
	if f == nil {
		return
	}
	if line, ok := diff.PrevHunk(diff.HunkStarts(f.Highlights()), s.scroll); ok {
		s.jumpTo(line)
	}
}

// Clamp applies the bounds of the painted geometry to the active file and
// writes the corrected offsets back.
func (s *State) Clamp(g layout.Geometry) {
	if len(s.files) == 0 {
		return
	}
	s.fileIndex = min(max(s.fileIndex, 0), len(s.files)-1)
	s.clampScroll(g)
	s.clampOffsets(s.fileIndex, g)
}

func (s *State) jumpTo(line int) {
	f := s.Current()
	if f == nil {
		return
	}
	s.scroll = min(line, s.Geometry().MaxScroll(f.MaxLines()))
	s.scroll = max(0, s.scroll)
}

func (s *State) refreshSearch() {
	f := s.Current()
	if f == nil {
		return
	}
	s.search.Recompute(f.LeftLines, f.RightLines)
}

func (s *State) clampScroll(g layout.Geometry) {
	f := s.Current()
	if f == nil {
		s.scroll = 0
		return
	}
	s.scroll = min(max(s.scroll, 0), g.MaxScroll(f.MaxLines()))
}

func (s *State) clampOffsets(i int, g layout.Geometry) {
	if i < 0 || i >= len(s.offsets) {
		return
	}
	f := &s.files[i]
	o := &s.offsets[i]
	o.Left = min(max(o.Left, 0), layout.MaxPaneOffset(f.LeftMaxWidth, g.ContentWidth(layout.PaneLeft)))
	o.Right = min(max(o.Right, 0), layout.MaxPaneOffset(f.RightMaxWidth, g.ContentWidth(layout.PaneRight)))
}

func (s *State) clampAll() {
	s.clampScroll(s.Geometry())
	for i := range s.offsets {
		s.clampOffsets(i, s.geometryFor(i))
	}
}
