package content

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reloads a content file into a Store whenever it changes on disk.
// A reload that fails to parse or validate is logged and the previous
// content stays live.
type Watcher struct {
	path     string
	store    *Store
	logger   *zap.Logger
	fsw      *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher watches the directory holding path so that editors which save
// through rename are picked up too.
func NewWatcher(path string, store *Store, logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		store:    store,
		logger:   logger,
		fsw:      fsw,
		debounce: defaultDebounce,
	}, nil
}

// Run blocks until ctx is cancelled, then closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	w.logger.Info("watching content", zap.String("path", w.path))
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("content watcher error", zap.Error(err))

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	p, err := Load(w.path)
	if err != nil {
		w.logger.Error("content reload rejected, keeping previous content", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.store.Replace(p)
	w.logger.Info("content reloaded",
		zap.String("path", w.path),
		zap.Int("projects", len(p.Projects)),
		zap.Int("experience", len(p.Experience)))
}
