// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a query when its input files change.
//
// A Watcher monitors the directories holding a fixed set of files and
// invokes a callback after a debounce period. Events within the debounce
// window are coalesced so the callback fires once with every changed file.
// Directories are watched instead of the files themselves so that editors
// which save by writing a temp file and renaming it are still noticed.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/inigrep/inigrep/pkg/types"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the delay before firing the callback after the last
// filesystem event.
const DefaultDebounce = 200 * time.Millisecond

// ErrNoFiles is returned by New when there is nothing to watch.
var ErrNoFiles = errors.New("watch: no files to watch")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Files are the paths whose changes trigger the callback. Standard
		// input (types.StdinPath) cannot be watched and is ignored.
		Files []string

		// Debounce is the quiet period after the last event before the callback
		// fires. Zero or negative values fall back to DefaultDebounce.
		Debounce time.Duration

		// OnChange is called after the debounce window closes with the
		// changed files, as they were given in Files. A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		// Stderr receives callback and watcher errors. nil defaults to os.Stderr.
		Stderr io.Writer
	}

	// Watcher fires a debounced callback when one of its files changes.
	// Run must be called exactly once; calling it a second time returns an error.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		files    map[string]string // absolute path -> path as given
		stderr   io.Writer
		debounce time.Duration
		started  atomic.Bool
	}
)

// New creates a Watcher for cfg.Files and registers their parent
// directories with fsnotify.
func New(cfg Config) (*Watcher, error) {
	files := make(map[string]string, len(cfg.Files))
	for _, f := range cfg.Files {
		if types.InputPath(f).IsStdin() {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve %s: %w", f, err)
		}
		files[abs] = f
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	dirs := make(map[string]struct{})
	for abs := range files {
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for _, dir := range slices.Sorted(maps.Keys(dirs)) {
		if err := fsw.Add(dir); err != nil {
			fsw.Close() //nolint:errcheck // best-effort cleanup
			return nil, fmt.Errorf("watch: add %s: %w", dir, err)
		}
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		files:    files,
		stderr:   stderr,
		debounce: debounce,
	}, nil
}

// Run blocks until ctx is cancelled, processing filesystem events and
// dispatching debounced callbacks. It returns nil on clean context
// cancellation and propagates fatal watcher errors.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire drains the pending set and invokes OnChange. A run that is still
	// in progress reschedules the timer instead of overlapping.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				fmt.Fprintf(w.stderr, "watch: callback error: %v\n", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if closeErr := w.fsw.Close(); closeErr != nil {
			fmt.Fprintf(w.stderr, "watch: close fsnotify: %v\n", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: fsnotify event channel closed unexpectedly")
			}
			if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
				continue
			}
			name, watched := w.files[filepath.Clean(evt.Name)]
			if !watched {
				continue
			}

			mu.Lock()
			pending[name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatal(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			fmt.Fprintf(w.stderr, "watch: fsnotify error: %v\n", err)
		}
	}
}

// isFatal reports whether err leaves the watcher unable to deliver events.
func isFatal(err error) bool {
	for _, errno := range fatalErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
