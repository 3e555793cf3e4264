// Package watch re-runs a callback when any of a set of files changes.
//
// Parent directories are watched rather than the files themselves, so
// editors that save by writing a temporary file and renaming it over the
// original are handled. Bursts of events are coalesced with a debounce
// timer.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/softdraw"
)

// DefaultDebounce is used when New is given a non-positive debounce.
const DefaultDebounce = 250 * time.Millisecond

// ErrNoFiles is returned by New when called without paths.
var ErrNoFiles = errors.New("watch: no files")

// Watcher reports changes to a fixed set of files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration

	closeOnce sync.Once
	closeErr  error
}

// New starts watching paths. Each path must name a file in an existing
// directory; the file itself need not exist yet.
func New(debounce time.Duration, paths ...string) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]struct{}, len(paths)),
		debounce: debounce,
	}
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch: %w", err)
		}
		w.files[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch: %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}
	return w, nil
}

// Files returns the watched files as absolute paths, sorted.
func (w *Watcher) Files() []string {
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}

// Run blocks until ctx is done or the watcher is closed. After each burst
// of writes, creates or renames settles for the debounce interval, onChange
// is called once with the changed files in sorted order. Errors from
// onChange and from the underlying watcher are logged and do not stop Run.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string) error) error {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]struct{})
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			abs, _ := filepath.Abs(event.Name)
			pending[abs] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			changed := make([]string, 0, len(pending))
			for f := range pending {
				changed = append(changed, f)
			}
			clear(pending)
			slices.Sort(changed)

			softdraw.Logger().Info("watch: change detected", "files", changed)
			if err := onChange(changed); err != nil {
				softdraw.Logger().Warn("watch: reload failed", "err", err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			softdraw.Logger().Warn("watch: watcher error", "err", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.fsw.Close()
	})
	return w.closeErr
}
