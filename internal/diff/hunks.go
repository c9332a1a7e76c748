package diff

// HunkStarts returns the first index of every run of consecutive changed lines
// across both panes, ascending.
func HunkStarts(h Highlights) []int {
	changed := make(LineSet, len(h.LeftDeleted)+len(h.RightAdded))
	for i := range h.LeftDeleted {
		changed[i] = struct{}{}
	}
	for i := range h.RightAdded {
		changed[i] = struct{}{}
	}

	var starts []int
	for _, i := range changed.Sorted() {
		if i == 0 || !changed.Has(i-1) {
			starts = append(starts, i)
		}
	}
	return starts
}

// NextHunk returns the first start strictly after offset, wrapping to the
// first start. ok is false when there are no hunks.
func NextHunk(starts []int, offset int) (line int, ok bool) {
	if len(starts) == 0 {
		return 0, false
	}
	for _, s := range starts {
		if s > offset {
			return s, true
		}
	}
	return starts[0], true
}

// PrevHunk returns the last start strictly before offset, wrapping to the
// last start. ok is false when there are no hunks.
func PrevHunk(starts []int, offset int) (line int, ok bool) {
	if len(starts) == 0 {
		return 0, false
	}
	for i := len(starts) - 1; i >= 0; i-- {
		if starts[i] < offset {
			return starts[i], true
		}
	}
	return starts[len(starts)-1], true
}
