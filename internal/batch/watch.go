package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wgraj/famplot/internal/dataset"
)

// WatchDebounce is how long input changes settle before re-rendering.
const WatchDebounce = 250 * time.Millisecond

// Watch re-renders the charts reading an input CSV whenever that file is
// written or created in the data directory. Render errors are logged and
// watching continues. Watch returns when ctx is cancelled.
func (r *Renderer) Watch(ctx context.Context, onRender func([]Artifact)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(r.opts.DataDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", r.opts.DataDir, err)
	}
	r.logger.Info("watching for input changes", "dir", r.opts.DataDir)

	pending := make(map[string]bool)
	timer := time.NewTimer(WatchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			table, ok := dataset.TableForFile(filepath.Base(event.Name))
			if !ok {
				continue
			}
			r.logger.Debug("input changed", "file", event.Name, "table", table.Name)
			pending[table.Name] = true
			timer.Reset(WatchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("watcher error", "error", err)

		case <-timer.C:
			names := r.jobsForTables(pending)
			clear(pending)
			if len(names) == 0 {
				continue
			}
			artifacts, err := r.Run(ctx, names...)
			if err != nil {
				r.logger.Error("re-render failed", "error", err)
			}
			if len(artifacts) > 0 && onRender != nil {
				onRender(artifacts)
			}
		}
	}
}

// jobsForTables returns the IDs of the jobs reading any of the tables.
func (r *Renderer) jobsForTables(tables map[string]bool) []string {
	var ids []string
	for _, j := range r.jobs {
		if tables[j.Table.Name] {
			ids = append(ids, j.ID)
		}
	}
	return ids
}
