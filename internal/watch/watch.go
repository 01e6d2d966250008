// Package watch reports changes to a fixed set of input files.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config configures a Watcher.
type Config struct {
	// Files are the paths to watch. Their directories are watched so that
	// editors that save by rename are still seen.
	Files []string
	// Debounce is how long to wait for more changes before reporting.
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher batches file change events into debounced notifications.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
}

// New starts watching the directories of cfg.Files.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := cfg.Debounce
	if debounce == 0 {
		debounce = 150 * time.Millisecond
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		debounce: debounce,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
	}

	dirs := make(map[string]bool)
	for _, f := range cfg.Files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
		logger.Debug("Watching directory", "path", dir)
	}
	return w, nil
}

// Run delivers debounced change sets to onChange until ctx is done. The
// watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	defer w.fsw.Close()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			if changed := w.flush(); len(changed) > 0 {
				onChange(changed)
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path, err := filepath.Abs(event.Name)
	if err != nil || !w.files[path] {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("File change detected", "path", path, "op", event.Op.String())
}

// flush returns and clears the changed files, sorted.
func (w *Watcher) flush() []string {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	out := make([]string, 0, len(w.pending))
	for p := range w.pending {
		out = append(out, p)
	}
	w.pending = make(map[string]fsnotify.Op)
	sort.Strings(out)
	return out
}
