package registry

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch starts hot reloading the catalog file backing this registry.
// Edits to the file replace the catalog atomically; a reload that fails
// validation is logged and the previous catalog stays in effect. Call
// Close to stop watching.
func (r *Registry) Watch() error {
	if r.path == "" {
		return fmt.Errorf("registry has no backing file to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create catalog watcher: %w", err)
	}

	// Watch the directory rather than the file so atomic rename-based
	// saves from editors are still observed.
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch catalog directory: %w", err)
	}

	r.mu.Lock()
	r.watcher = watcher
	r.done = make(chan struct{})
	r.mu.Unlock()

	go r.watchCatalog(watcher)
	return nil
}

func (r *Registry) watchCatalog(watcher *fsnotify.Watcher) {
	target := filepath.Clean(r.path)
	for {
		select {
		case <-r.done:
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
			if err := r.reload(); err != nil {
				log.Printf("agent catalog reload skipped: %v", err)
			}
		case <-watcher.Errors:
			// Keep watching
		}
	}
}

// Close stops the catalog watcher if one is running.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watcher != nil {
		close(r.done)
		r.watcher.Close()
		r.watcher = nil
	}
}
