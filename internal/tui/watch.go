package tui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/kamusis/deck-cli/internal/catalog"
)

// CatalogWatcher reports changes to the category files of a catalog
// directory.
type CatalogWatcher struct {
	fsw     *fsnotify.Watcher
	changes chan struct{}
	logger  *slog.Logger
}

// WatchCatalog starts watching dir. Watching stops when ctx is done or Close
// is called.
func WatchCatalog(ctx context.Context, dir string, logger *slog.Logger) (*CatalogWatcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cannot create catalog watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("cannot watch %s: %w", dir, err)
	}

	w := &CatalogWatcher{
		fsw:     fsw,
		changes: make(chan struct{}, 1),
		logger:  logger,
	}
	go w.run(ctx)
	return w, nil
}

// Changes receives a value after category files changed. Bursts of events
// coalesce into one pending value. The channel is closed when watching stops.
func (w *CatalogWatcher) Changes() <-chan struct{} { return w.changes }

// Close stops watching.
func (w *CatalogWatcher) Close() error {
	return w.fsw.Close()
}

func (w *CatalogWatcher) run(ctx context.Context) {
	defer close(w.changes)
	for {
		select {
		case <-ctx.Done():
			_ = w.fsw.Close()
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			w.logger.Debug("catalog file changed", "file", ev.Name, "op", ev.Op.String())
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", "err", err)
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !catalog.IsCategoryFile(filepath.Base(ev.Name)) {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
