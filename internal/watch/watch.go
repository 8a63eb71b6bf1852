// Package watch re-runs an action whenever a file changes on disk.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/blockrender/internal/foundation/errors"
	"git.home.luguber.info/inful/blockrender/internal/logfields"
)

// DefaultDebounce collapses bursts of editor writes into one run.
const DefaultDebounce = 300 * time.Millisecond

// Action is invoked after the watched file settles. Errors are logged and
// do not stop the watcher.
type Action func(ctx context.Context) error

// FileWatcher monitors a single file. The parent directory is watched so
// that editors replacing the file through a rename are picked up.
type FileWatcher struct {
	path     string
	action   Action
	debounce time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	trigger  chan struct{}
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

func WithDebounce(d time.Duration) Option {
	return func(fw *FileWatcher) {
		if d > 0 {
			fw.debounce = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(fw *FileWatcher) {
		if l != nil {
			fw.logger = l
		}
	}
}

// New creates a watcher for path. Run starts it.
func New(path string, action Action, opts ...Option) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.FileSystemError("failed to resolve watch path").
			WithContext("path", path).
			WithCause(err).
			Build()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.RuntimeError("failed to create file watcher").WithCause(err).Build()
	}
	fw := &FileWatcher{
		path:     abs,
		action:   action,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		watcher:  w,
		trigger:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw, nil
}

// Run watches until ctx is cancelled. The action runs once up front and
// then after every settled change. Run closes the underlying watcher.
func (fw *FileWatcher) Run(ctx context.Context) error {
	defer func() {
		if err := fw.watcher.Close(); err != nil {
			fw.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		return errors.FileSystemError("failed to watch directory").
			WithContext("path", dir).
			WithCause(err).
			Build()
	}
	fw.logger.Info("Watching for changes", logfields.Path(fw.path))

	fw.run(ctx)

	go fw.eventLoop(ctx)
	fw.debounceLoop(ctx)
	return nil
}

func (fw *FileWatcher) eventLoop(ctx context.Context) {
	name := filepath.Base(fw.path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				fw.logger.Debug("File change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
				fw.notify()
			case event.Has(fsnotify.Remove):
				fw.logger.Warn("Watched file removed", logfields.Path(event.Name))
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (fw *FileWatcher) notify() {
	select {
	case fw.trigger <- struct{}{}:
	default:
	}
}

// debounceLoop runs the action once no event arrived for the debounce period.
func (fw *FileWatcher) debounceLoop(ctx context.Context) {
	timer := time.NewTimer(fw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-fw.trigger:
			timer.Reset(fw.debounce)
		case <-timer.C:
			fw.run(ctx)
		}
	}
}

func (fw *FileWatcher) run(ctx context.Context) {
	if err := fw.action(ctx); err != nil {
		fw.logger.Error("Action failed", logfields.Path(fw.path), logfields.Error(err))
	}
}
