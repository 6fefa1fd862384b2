/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package snapshot

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	assetfs "bennypowers.dev/assetpath/fs"
	"bennypowers.dev/assetpath/internal/logger"
)

// NoExpiry keeps cached snapshots until they are invalidated explicitly.
const NoExpiry time.Duration = -1

// BuildStats describes one snapshot construction.
type BuildStats struct {
	Root     string
	Duration time.Duration
	Entries  int
}

// Cache holds one snapshot per root directory.
//
// A TTL of zero rebuilds on every Get, a positive TTL reuses a snapshot for
// that long, and NoExpiry reuses it until Invalidate. Builds for one root
// never wait on builds for another.
type Cache struct {
	fsys    assetfs.FileSystem
	ttl     time.Duration
	now     func() time.Time
	onBuild func(BuildStats)

	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	build sync.Mutex
	gen   atomic.Uint64

	// guarded by build
	snap     *Snapshot
	builtGen uint64
	builtAt  time.Time
}

// NewCache creates a snapshot cache over fsys.
func NewCache(fsys assetfs.FileSystem, ttl time.Duration) *Cache {
	return &Cache{
		fsys:  fsys,
		ttl:   ttl,
		now:   time.Now,
		slots: make(map[string]*slot),
	}
}

// OnBuild registers a function called after every snapshot construction.
// Call it before the cache is shared.
func (c *Cache) OnBuild(fn func(BuildStats)) {
	c.onBuild = fn
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns a snapshot of root, rebuilding it when stale.
func (c *Cache) Get(root string) *Snapshot {
	root = filepath.Clean(root)
	s := c.slot(root)

	s.build.Lock()
	defer s.build.Unlock()

	if s.snap != nil && !c.stale(s) {
		return s.snap
	}

	gen := s.gen.Load()
	start := c.now()
	snap := Take(c.fsys, root)
	elapsed := c.now().Sub(start)

	s.snap = snap
	s.builtGen = gen
	s.builtAt = start
	logger.Debug("snapshot: built %s (%d entries) in %s", root, snap.Len(), elapsed)
	if c.onBuild != nil {
		c.onBuild(BuildStats{Root: root, Duration: elapsed, Entries: snap.Len()})
	}
	return snap
}

// Invalidate marks the snapshot of root stale. It does not block on a
// build in progress; that build's result is discarded on the next Get.
func (c *Cache) Invalidate(root string) {
	c.mu.Lock()
	s, ok := c.slots[filepath.Clean(root)]
	c.mu.Unlock()
	if ok {
		s.gen.Add(1)
	}
}

// InvalidateAll marks every cached snapshot stale.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.slots {
		s.gen.Add(1)
	}
}

// Roots returns the roots that have been requested so far.
func (c *Cache) Roots() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	roots := make([]string, 0, len(c.slots))
	for root := range c.slots {
		roots = append(roots, root)
	}
	return roots
}

func (c *Cache) slot(root string) *slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.slots[root]
	if !ok {
		s = &slot{}
		c.slots[root] = s
	}
	return s
}

func (c *Cache) stale(s *slot) bool {
	if s.builtGen != s.gen.Load() {
		return true
	}
	switch {
	case c.ttl == 0:
		return true
	case c.ttl < 0:
		return false
	default:
		return c.now().Sub(s.builtAt) > c.ttl
	}
}
