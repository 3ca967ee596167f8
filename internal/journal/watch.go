package journal

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn each time the log file is replaced or written, until ctx is
// done. The directory is watched rather than the file because every save
// renames a new file over the old one.
func (s *Store) Watch(ctx context.Context, fn func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(s.opts.LogFile)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	s.log.Debug("watching mood log", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			fn()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("mood log watcher", "err", err)
		}
	}
}
