package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchSettle coalesces bursts of filesystem events (editors typically emit
// several per save) into one rerun.
const watchSettle = 100 * time.Millisecond

// Watch reruns the front end whenever a source file under the root changes
// and hands each result to onRun. It blocks until ctx is cancelled or the
// watcher fails.
func (d *Driver) Watch(ctx context.Context, onRun func(*Result)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("driver: start watcher: %w", err)
	}
	defer w.Close()

	err = filepath.WalkDir(d.cfg.SourceRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("driver: watch %s: %w", d.cfg.SourceRoot, err)
	}

	settle := time.NewTimer(watchSettle)
	if !settle.Stop() {
		<-settle.C
	}
	dirty := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					// Newly created directories must be watched explicitly.
					_ = w.Add(ev.Name)
				}
			}
			if !d.matchesSource(filepath.Base(ev.Name)) {
				continue
			}
			dirty = true
			settle.Reset(watchSettle)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("driver: watcher: %w", err)

		case <-settle.C:
			if !dirty {
				continue
			}
			dirty = false
			res, err := d.Run(ctx)
			if err != nil {
				return err
			}
			onRun(res)
		}
	}
}

func (d *Driver) matchesSource(name string) bool {
	for _, pattern := range d.cfg.Patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
