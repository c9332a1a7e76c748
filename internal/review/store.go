package review

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kmacinski/deff/internal/git"
)

// Dir is the directory under the git dir holding review files
const Dir = "deff/reviewed"

// Path returns the review file for a comparison
func Path(gitDir string, c git.Comparison) string {
	return filepath.Join(gitDir, Dir, ScopeKey(c)+".txt")
}

// Store is the set of reviewed fingerprints for one comparison
type Store struct {
	path     string
	reviewed map[string]struct{}
}

// Load reads the review file at path. A missing file is an empty set.
func Load(path string) (*Store, error) {
	s := &Store{path: path, reviewed: map[string]struct{}{}}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read review state %s: %w", path, err)
	}

	for _, line := range strings.Split(string(raw), "\n") {
		if key := strings.TrimSpace(line); key != "" {
			s.reviewed[key] = struct{}{}
		}
	}
	return s, nil
}

// Path returns the file the store persists to
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of reviewed fingerprints
func (s *Store) Len() int {
	return len(s.reviewed)
}

// Contains reports whether key is marked reviewed
func (s *Store) Contains(key string) bool {
	_, ok := s.reviewed[key]
	return ok
}

// Toggle flips membership of key and returns the new state
func (s *Store) Toggle(key string) bool {
	if s.Contains(key) {
		delete(s.reviewed, key)
		return false
	}
	s.reviewed[key] = struct{}{}
	return true
}

// Keys returns the reviewed fingerprints sorted
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.reviewed))
	for k := range s.reviewed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Persist writes the set back, one fingerprint per line
func (s *Store) Persist() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	out := strings.Join(s.Keys(), "\n")
	if out != "" {
		out += "\n"
	}
	if err := os.WriteFile(s.path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write review state %s: %w", s.path, err)
	}
	return nil
}
