/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver maps logical asset names onto files inside an ordered
// list of load paths.
package resolver

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	assetfs "bennypowers.dev/assetpath/fs"
	"bennypowers.dev/assetpath/mediatype"
	"bennypowers.dev/assetpath/snapshot"
	"bennypowers.dev/assetpath/specifier"
)

// ErrRelativeRoot is returned when a load path is not absolute.
var ErrRelativeRoot = errors.New("load path must be absolute")

// Event describes one call to Resolve.
type Event struct {
	Kind     specifier.Kind
	Found    bool
	Duration time.Duration
}

// Resolver resolves asset requests against its load paths.
//
// Resolve, EachLogicalPath and LogicalPaths may be called from many
// goroutines, concurrently with AppendPath. Each call works against the load
// paths as they were when it started.
type Resolver struct {
	fsys     assetfs.FileSystem
	registry *mediatype.Registry
	cache    *snapshot.Cache
	onEvent  func(Event)

	mu    sync.RWMutex
	paths []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSnapshotCache shares a snapshot cache, e.g. one fed by a
// snapshot.Watcher. Without it every call takes fresh snapshots.
func WithSnapshotCache(c *snapshot.Cache) Option {
	return func(r *Resolver) {
		r.cache = c
	}
}

// WithEventHook registers a function called after every Resolve.
func WithEventHook(fn func(Event)) Option {
	return func(r *Resolver) {
		r.onEvent = fn
	}
}

// New creates a resolver with no load paths. A nil registry means
// mediatype.Default().
//
// Without WithSnapshotCache every Resolve, and every pass of
// EachLogicalPath, takes a fresh snapshot of each load path it searches.
// Callers resolving in a loop should pass a cache with a TTL, or one kept
// current by a snapshot.Watcher.
func New(fsys assetfs.FileSystem, registry *mediatype.Registry, opts ...Option) *Resolver {
	if registry == nil {
		registry = mediatype.Default()
	}
	r := &Resolver{
		fsys:     fsys,
		registry: registry,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = snapshot.NewCache(fsys, 0)
	}
	return r
}

// Registry returns the media-type registry.
func (r *Resolver) Registry() *mediatype.Registry {
	return r.registry
}

// Cache returns the snapshot cache.
func (r *Resolver) Cache() *snapshot.Cache {
	return r.cache
}

// AppendPath adds root to the end of the load paths. Adding a path that is
// already present does nothing.
func (r *Resolver) AppendPath(root string) error {
	return r.insert(root, false)
}

// PrependPath adds root to the front of the load paths. Adding a path that
// is already present does nothing.
func (r *Resolver) PrependPath(root string) error {
	return r.insert(root, true)
}

// ClearPaths removes every load path.
func (r *Resolver) ClearPaths() {
	r.mu.Lock()
	r.paths = nil
	r.mu.Unlock()
}

// Paths returns a copy of the load paths in search order.
func (r *Resolver) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.paths)
}

func (r *Resolver) insert(root string, front bool) error {
	if !filepath.IsAbs(root) {
		return fmt.Errorf("%w: %s", ErrRelativeRoot, root)
	}
	root = filepath.Clean(root)

	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.Contains(r.paths, root) {
		return nil
	}
	// Readers hold on to the old slice, so never modify it in place.
	next := make([]string, 0, len(r.paths)+1)
	if front {
		next = append(next, root)
		next = append(next, r.paths...)
	} else {
		next = append(next, r.paths...)
		next = append(next, root)
	}
	r.paths = next
	return nil
}

// searchPaths returns the load paths a call searches: all of them, or those
// named in only, kept in load-path order.
func (r *Resolver) searchPaths(only []string) []string {
	paths := r.Paths()
	if only == nil {
		return paths
	}
	allowed := make(map[string]bool, len(only))
	for _, p := range only {
		allowed[filepath.Clean(p)] = true
	}
	out := paths[:0]
	for _, p := range paths {
		if allowed[p] {
			out = append(out, p)
		}
	}
	return out
}
