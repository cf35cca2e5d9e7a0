// Package watcher provides file system watching with debouncing for the
// document being decorated and the config file.
package watcher

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/bulletdash/internal/log"
)

// Target says which watched file changed.
type Target int

const (
	TargetDocument Target = iota
	TargetConfig
)

func (t Target) String() string {
	switch t {
	case TargetDocument:
		return "document"
	case TargetConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Change is one debounced notification.
type Change struct {
	Path   string
	Target Target
}

// Watcher monitors the document and config files and sends notifications.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	targets   map[string]Target // absolute path -> target
	debounce  time.Duration
	onChange  chan Change
	done      chan struct{}
}

// Config holds watcher configuration options. Empty paths are not watched.
type Config struct {
	DocumentPath string
	ConfigPath   string
	DebounceDur  time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(documentPath string) Config {
	return Config{
		DocumentPath: documentPath,
		DebounceDur:  100 * time.Millisecond,
	}
}

// New creates a new watcher.
func New(cfg Config) (*Watcher, error) {
	targets := make(map[string]Target, 2)
	for path, target := range map[string]Target{cfg.DocumentPath: TargetDocument, cfg.ConfigPath: TargetConfig} {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		targets[abs] = target
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("nothing to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		targets:   targets,
		debounce:  cfg.DebounceDur,
		onChange:  make(chan Change, len(targets)),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the directories containing the files. Watching the
// directory rather than the file survives editors that save by rename.
// Returns a channel that receives one Change per file per burst of writes.
func (w *Watcher) Start() (<-chan Change, error) {
	dirs := make(map[string]bool)
	for path := range w.targets {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
		log.Debug(log.CatWatcher, "Watching directory", "dir", dir)
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var timer *time.Timer
	pending := make(map[string]Target)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			target, path, relevant := w.match(event)
			if !relevant {
				continue
			}
			pending[path] = target

			// Reset or start debounce timer
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					// Drain the timer channel if it already fired
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			w.flush(pending)
			timer = nil

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watch error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// flush sends pending changes in path order and clears the set.
func (w *Watcher) flush(pending map[string]Target) {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		change := Change{Path: p, Target: pending[p]}
		delete(pending, p)
		// Non-blocking send - drop if a change for this burst is already queued
		select {
		case w.onChange <- change:
			log.Debug(log.CatWatcher, "File changed", "path", p, "target", change.Target)
		default:
		}
	}
}

// match checks if the event should trigger a notification.
func (w *Watcher) match(event fsnotify.Event) (Target, string, bool) {
	// Write covers in-place saves; Create covers rename-over saves.
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return 0, "", false
	}
	path := filepath.Clean(event.Name)
	target, ok := w.targets[path]
	return target, path, ok
}
