// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs add-on scans when the AddOns folder changes.
//
// A Watcher registers every non-ignored directory under its base folder with
// fsnotify, keeps the events whose paths match the configured patterns, and
// calls OnChange once per debounce window with everything that changed.
// Removals, renames and new directories always count: a deleted add-on
// folder never matches a manifest pattern, yet the scan result changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// clearScreen moves the cursor home after clearing the terminal.
const clearScreen = "\033[2J\033[H"

type (
	// Watcher fires a debounced callback when matching files under its base
	// folder change. Run may be called only once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		root     string
		ignores  []string
		debounce time.Duration
		stdout   io.Writer
		stderr   io.Writer
		started  atomic.Bool
	}

	// batch collects changed paths until the debounce timer fires.
	batch struct {
		mu    sync.Mutex
		paths map[string]struct{}
		timer *time.Timer
		delay time.Duration
		fire  func()
	}
)

// New validates cfg, resolves the base folder and registers its directory
// tree with fsnotify.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	root := cfg.BaseDir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		root:     root,
		ignores:  slices.Concat(defaultIgnores, cfg.Ignore),
		debounce: cfg.Debounce,
		stdout:   cfg.Stdout,
		stderr:   cfg.Stderr,
	}
	if w.debounce <= 0 {
		w.debounce = defaultDebounce
	}
	if w.stdout == nil {
		w.stdout = os.Stdout
	}
	if w.stderr == nil {
		w.stderr = os.Stderr
	}

	if err := w.watchTree(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			fmt.Fprintf(w.stderr, "watch: close after init failure: %v\n", closeErr)
		}
		return nil, err
	}

	return w, nil
}

// Run processes events until ctx is cancelled, which returns nil. Running out
// of kernel watch resources or losing an fsnotify channel is returned as an
// error. OnChange calls never overlap: a window that closes while the
// previous call is still running is retried after another debounce period.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var busy atomic.Bool
	b := &batch{paths: make(map[string]struct{}), delay: w.debounce}
	b.fire = func() { w.dispatch(ctx, b, &busy) }

	defer func() {
		b.stop()
		if err := w.fsw.Close(); err != nil {
			fmt.Fprintf(w.stderr, "watch: close fsnotify: %v\n", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			if rel, relevant := w.classify(evt); relevant {
				b.add(rel)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			// Dropped events mean the tree may have changed in ways we never
			// saw, so the whole tree is reported.
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				fmt.Fprintln(w.stderr, "watch: event queue overflowed, rescanning")
				b.add(".")
				continue
			}
			if exhaustsWatcher(err) {
				return fmt.Errorf("watch: watcher out of resources: %w", err)
			}
			fmt.Fprintf(w.stderr, "watch: fsnotify error: %v\n", err)
		}
	}
}

// classify returns the event path relative to the base folder and whether the
// event counts as a change. New directories are registered on the way.
func (w *Watcher) classify(evt fsnotify.Event) (string, bool) {
	rel, err := filepath.Rel(w.root, evt.Name)
	if err != nil {
		rel = evt.Name
	}

	isDir := false
	if evt.Has(fsnotify.Create) {
		if info, statErr := os.Stat(evt.Name); statErr == nil && info.IsDir() {
			isDir = true
		}
	}
	if w.ignored(rel, isDir) {
		return "", false
	}
	if isDir {
		if err := w.fsw.Add(evt.Name); err != nil {
			fmt.Fprintf(w.stderr, "watch: add new directory %q: %v\n", evt.Name, err)
		}
	}

	structural := isDir || evt.Has(fsnotify.Remove) || evt.Has(fsnotify.Rename)
	return rel, structural || w.selected(rel)
}

// dispatch drains the batch into one OnChange call. It runs on the timer
// goroutine, possibly after ctx is done.
func (w *Watcher) dispatch(ctx context.Context, b *batch, busy *atomic.Bool) {
	if ctx.Err() != nil {
		return
	}
	if !busy.CompareAndSwap(false, true) {
		fmt.Fprintln(w.stderr, "watch: skipping rescan (previous rescan still running)")
		b.retry()
		return
	}
	defer busy.Store(false)

	changed := b.drain()
	if len(changed) == 0 {
		return
	}

	if w.cfg.ClearScreen {
		fmt.Fprint(w.stdout, clearScreen)
	}
	if w.cfg.OnChange == nil {
		return
	}
	if err := w.cfg.OnChange(ctx, changed); err != nil {
		fmt.Fprintf(w.stderr, "watch: callback error: %v\n", err)
	}
}

// watchTree registers every non-ignored directory under the base folder.
// Unreadable directories are reported and skipped.
func (w *Watcher) watchTree() error {
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			fmt.Fprintf(w.stderr, "watch: skipping inaccessible path %q: %v\n", path, walkErr)
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return nil
		}
		if w.ignored(rel, true) {
			return filepath.SkipDir
		}

		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk directory tree: %w", err)
	}
	return nil
}

// ignored reports whether rel is excluded: it lies inside a hidden
// directory, is one itself (isDir), or matches an ignore pattern. The base
// folder is never ignored.
func (w *Watcher) ignored(rel string, isDir bool) bool {
	if rel == "." {
		return false
	}
	slashed := filepath.ToSlash(rel)
	segments := strings.Split(slashed, "/")
	if !isDir {
		segments = segments[:len(segments)-1]
	}
	for _, seg := range segments {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	if anyMatch(w.ignores, slashed) {
		return true
	}
	return isDir && anyMatch(w.ignores, slashed+"/")
}

// selected reports whether rel matches Patterns. No patterns selects everything.
func (w *Watcher) selected(rel string) bool {
	return len(w.cfg.Patterns) == 0 || anyMatch(w.cfg.Patterns, filepath.ToSlash(rel))
}

func (b *batch) add(rel string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.paths[rel] = struct{}{}
	if b.timer == nil {
		b.timer = time.AfterFunc(b.delay, b.fire)
		return
	}
	b.timer.Reset(b.delay)
}

// drain returns the collected paths in sorted order and empties the batch.
func (b *batch) drain() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.paths) == 0 {
		return nil
	}
	changed := slices.Sorted(maps.Keys(b.paths))
	clear(b.paths)
	return changed
}

// retry re-arms the timer so paths collected during a busy callback are not
// lost when no further events arrive.
func (b *batch) retry() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Reset(b.delay)
	}
}

func (b *batch) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
	}
}
