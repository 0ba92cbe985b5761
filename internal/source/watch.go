package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads a file source on change, invoking onChange after each write
// to the watched file until ctx is done. Editors replace files rather than
// writing in place, so the parent directory is watched and events are
// filtered by name.
func (s *FileSource) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch catalog file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	log := s.log
	if log == nil {
		log = zap.NewNop()
	}

	go func() {
		defer watcher.Close()
		target := filepath.Clean(s.path)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				log.Info("catalog file changed, reloading", zap.String("path", s.path))
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("catalog file watch error", zap.Error(err))
			}
		}
	}()

	return nil
}
