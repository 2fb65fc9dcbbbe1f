// Package fsnotify rebuilds the corpus when files under the site root change.
package fsnotify

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/fwojciec/sitesearch"
)

// DefaultDebounce is the quiet period that ends a burst of events.
const DefaultDebounce = 250 * time.Millisecond

// Watcher calls a rebuild function after files under a root change.
type Watcher struct {
	// Debounce is the quiet period after the last event before a rebuild.
	// Defaults to DefaultDebounce.
	Debounce time.Duration

	// Logger receives rebuild failures. Defaults to discarding them.
	Logger *slog.Logger
}

// Watch watches every directory under root until ctx is cancelled.
// Events for ignored paths, and for their ".tmp" siblings, never trigger a
// rebuild. Rebuilds run one at a time on the calling goroutine; a failed
// rebuild is logged and watching continues. Returns nil when ctx is
// cancelled.
func (w *Watcher) Watch(ctx context.Context, root string, ignore []string, rebuild func(context.Context) error) error {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return sitesearch.Errorf(sitesearch.ENOTFOUND, "site root not found: %s", root)
	} else if err != nil {
		return err
	} else if !info.IsDir() {
		return sitesearch.Errorf(sitesearch.EINVALID, "site root is not a directory: %s", root)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	ignored := make(map[string]bool, 2*len(ignore))
	for _, p := range ignore {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		ignored[abs] = true
		ignored[abs+".tmp"] = true
	}

	if err := addTree(fw, root); err != nil {
		return err
	}

	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if abs, err := filepath.Abs(ev.Name); err == nil && ignored[abs] {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(fw, ev.Name); err != nil {
						logger.Warn("watch new directory", "path", ev.Name, "err", err)
					}
				}
			}
			logger.Debug("change", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			return fmt.Errorf("watch %s: %w", root, err)

		case <-timer.C:
			if err := rebuild(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Error("rebuild failed", "err", err)
			}
		}
	}
}

// addTree adds dir and every directory beneath it to fw.
func addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
