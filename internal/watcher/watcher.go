// Package watcher reports, with debouncing, when working tree files under
// review change on disk.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher monitors the directories of reviewed files and sends notifications
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	files     map[string]struct{}
	dirs      []string
	debounce  time.Duration
	logger    zerolog.Logger
	onChange  chan struct{}
	done      chan struct{}
}

// Config holds watcher configuration options
type Config struct {
	Root        string
	Paths       []string // repository-relative
	DebounceDur time.Duration
}

// DefaultConfig returns the defaults for watching paths under root
func DefaultConfig(root string, paths []string) Config {
	return Config{
		Root:        root,
		Paths:       paths,
		DebounceDur: 300 * time.Millisecond,
	}
}

// New creates a watcher for the configured paths
func New(cfg Config, logger zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	files := make(map[string]struct{}, len(cfg.Paths))
	seen := make(map[string]struct{})
	var dirs []string
	for _, p := range cfg.Paths {
		abs := filepath.Clean(filepath.Join(cfg.Root, p))
		files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}

	return &Watcher{
		fsWatcher: fsw,
		files:     files,
		dirs:      dirs,
		debounce:  cfg.DebounceDur,
		logger:    logger.With().Str("component", "watcher").Logger(),
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. Directories that no longer exist are skipped; it
// fails only when nothing could be watched.
// Returns a channel that receives a signal when a watched file changes.
func (w *Watcher) Start() (<-chan struct{}, error) {
	added := 0
	for _, dir := range w.dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			w.logger.Debug().Err(err).Str("dir", dir).Msg("skipping directory")
			continue
		}
		added++
	}
	if added == 0 && len(w.dirs) > 0 {
		return nil, fmt.Errorf("watching %d directories: none available", len(w.dirs))
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop coalesces changes to reviewed files. Each relevant event pushes the
// settle deadline back; one signal is sent once the files have been quiet for
// the debounce interval.
func (w *Watcher) loop() {
	var settled <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.isRelevantEvent(event) {
				w.logger.Debug().Str("file", event.Name).Stringer("op", event.Op).Msg("reviewed file changed")
				settled = time.After(w.debounce)
			}

		case <-settled:
			settled = nil
			w.signal()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("watch error")
		}
	}
}

// signal notifies the consumer unless a notification is already queued
func (w *Watcher) signal() {
	select {
	case w.onChange <- struct{}{}:
	default:
	}
}

func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	_, ok := w.files[filepath.Clean(event.Name)]
	return ok
}
