// Package review tracks which files of a comparison have been marked reviewed.
//
// Marks are keyed by a fingerprint of the file's identity and exact content,
// so editing a reviewed file makes it unreviewed again. Each comparison keeps
// its own set of marks under the repository's git directory.
package review

import (
	"fmt"
	"hash"
	"hash/fnv"

	"github.com/kmacinski/deff/internal/git"
)

// hasher writes NUL-terminated fields into a 64-bit FNV-1a digest
type hasher struct {
	h hash.Hash64
}

func newHasher() *hasher {
	return &hasher{h: fnv.New64a()}
}

func (h *hasher) field(s string) {
	_, _ = h.h.Write([]byte(s))
	_, _ = h.h.Write([]byte{0})
}

func (h *hasher) hex() string {
	return fmt.Sprintf("%016x", h.h.Sum64())
}

// Fingerprint returns the review key for a file. It covers the status token,
// every path, and each line of both sides in order.
func Fingerprint(d git.Descriptor, left, right []string) string {
	h := newHasher()
	h.field(d.RawStatus)
	h.field(d.DisplayPath)
	h.field(d.BasePath)
	h.field(d.HeadPath)
	for _, line := range left {
		h.field("L")
		h.field(line)
	}
	for _, line := range right {
		h.field("R")
		h.field(line)
	}
	return h.hex()
}

// ScopeKey identifies a comparison so review sets never mix between them
func ScopeKey(c git.Comparison) string {
	h := newHasher()
	h.field(c.Strategy.String())
	h.field(c.BaseRef)
	h.field(c.HeadRef)
	if c.IncludesUncommitted {
		h.field("uncommitted")
	} else {
		h.field("committed")
	}
	return h.hex()
}
