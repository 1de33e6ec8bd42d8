package safety

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/doeshing/aiagent-go/internal/ports"
)

// Watch reloads the rules whenever the rules file changes, until ctx is
// done. The parent directory is watched so editors that replace the file
// by rename are picked up.
func (c *Classifier) Watch(ctx context.Context, log ports.Logger) error {
	if c.path == "" {
		<-ctx.Done()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(c.path)); err != nil {
		return err
	}
	target := filepath.Clean(c.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if err := c.Reload(); err != nil {
				log.Warn("safety rules reload failed", map[string]interface{}{"path": c.path, "error": err.Error()})
				continue
			}
			log.Info("safety rules reloaded", map[string]interface{}{"path": c.path, "rules": len(c.Rules())})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("safety rules watcher error", map[string]interface{}{"error": err.Error()})
		}
	}
}
