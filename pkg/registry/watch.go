package registry

import (
	"context"

	"github.com/fsnotify/fsnotify"
)

// Watch rescans the data directory whenever a file is created, removed or
// renamed in it, and calls onChange with the new dataset names. It runs until
// ctx is cancelled. A failed rescan is logged and the previous mapping stays
// active.
func (r *Registry) Watch(ctx context.Context, onChange func([]string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(r.dir); err != nil {
		return err
	}

	r.logger.Info("registry: watching for changes", "dir", r.dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			if err := r.Rescan(); err != nil {
				r.logger.Error("registry: rescan failed", "dir", r.dir, "err", err)
				continue
			}
			if onChange != nil {
				onChange(r.List())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("registry: watcher error", "err", err)
		}
	}
}
