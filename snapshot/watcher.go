/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"bennypowers.dev/assetpath/internal/logger"
)

// Watcher invalidates cached snapshots when anything under their roots
// changes. fsnotify watches are not recursive, so every directory of each
// root's snapshot is watched individually.
type Watcher struct {
	cache   *Cache
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	roots   []string
	watched map[string]bool
}

// NewWatcher creates a watcher feeding invalidations into cache.
func NewWatcher(cache *Cache) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		cache:   cache,
		watcher: fw,
		watched: make(map[string]bool),
	}, nil
}

// Watch starts watching root and every directory currently beneath it.
func (w *Watcher) Watch(root string) error {
	root = filepath.Clean(root)

	w.mu.Lock()
	known := false
	for _, r := range w.roots {
		if r == root {
			known = true
			break
		}
	}
	if !known {
		w.roots = append(w.roots, root)
	}
	w.mu.Unlock()

	if err := w.add(root); err != nil {
		return err
	}
	// Each directory is watched before it is listed, so anything created
	// while the tree is walked raises an event.
	_ = w.addTree(root)
	// A snapshot taken before the watches were in place may already be stale.
	w.cache.Invalidate(root)

	// The walk above does not follow symlinked directories; the snapshot does.
	for e := range w.cache.Get(root).All() {
		if e.Kind != KindDir {
			continue
		}
		if err := w.add(e.Path); err != nil {
			logger.Warn("cannot watch %s: %v", e.Path, err)
		}
	}
	return nil
}

// Run processes filesystem events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handle(event fsnotify.Event) {
	name := filepath.Clean(event.Name)

	// New directories must be watched before the invalidation becomes
	// visible, or files created in them right away would be missed.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if err := w.addTree(name); err != nil {
				logger.Warn("cannot watch %s: %v", name, err)
			}
		}
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.mu.Lock()
		delete(w.watched, name)
		w.mu.Unlock()
	}

	for _, root := range w.rootsFor(name) {
		logger.Debug("watcher: %s %s, invalidating %s", event.Op, name, root)
		w.cache.Invalidate(root)
	}
}

func (w *Watcher) rootsFor(name string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []string
	for _, root := range w.roots {
		if within(root, name) {
			out = append(out, root)
		}
	}
	return out
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.add(p); err != nil {
				logger.Warn("cannot watch %s: %v", p, err)
			}
		}
		return nil
	})
}

func (w *Watcher) add(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watched[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.watched[dir] = true
	return nil
}

func within(root, name string) bool {
	if name == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(name, prefix)
}
