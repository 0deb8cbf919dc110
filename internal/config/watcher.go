package config

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Package-level logger
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "config",
})

// SetLogLevel sets the logging level for the config package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// SetLogOutput redirects the config package's logs, e.g. away from a
// terminal the UI owns.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Watcher reloads the config file whenever it is written and hands the
// result to onChange. Files that fail to parse are logged and skipped.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func(*UserConfig)
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, onChange func(*UserConfig)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  w,
		path:     path,
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory; editors replace the file on save.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	name := filepath.Base(w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := LoadFrom(w.path)
			if err != nil {
				logger.Warn("config reload failed", "path", w.path, "err", err)
				continue
			}
			logger.Debug("config reloaded", "path", w.path)
			if w.onChange != nil {
				w.onChange(cfg)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", "err", err)

		case <-w.done:
			return
		}
	}
}

// Stop stops watching. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	close(w.done)
	return w.watcher.Close()
}
