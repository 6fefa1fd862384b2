/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package snapshot_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assetfs "bennypowers.dev/assetpath/fs"
	"bennypowers.dev/assetpath/snapshot"
)

func TestWatcher_InvalidatesOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "js"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "js", "app.js"), []byte("x"), 0644))

	cache := snapshot.NewCache(assetfs.NewOSFileSystem(), snapshot.NoExpiry)
	w, err := snapshot.NewWatcher(cache)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, w.Watch(root))
	require.Equal(t, 2, cache.Get(root).Len())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(root, "js", "extra.js"), []byte("y"), 0644))

	assert.Eventually(t, func() bool {
		_, ok := cache.Get(root).Lookup(filepath.Join(root, "js", "extra.js"))
		return ok
	}, 5*time.Second, 20*time.Millisecond)

	// New directories are picked up and watched too.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "css"), 0755))
	assert.Eventually(t, func() bool {
		_, ok := cache.Get(root).Lookup(filepath.Join(root, "css"))
		return ok
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "css", "site.css"), []byte("z"), 0644))
	assert.Eventually(t, func() bool {
		_, ok := cache.Get(root).Lookup(filepath.Join(root, "css", "site.css"))
		return ok
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_WatchesDirectoriesMissingFromCachedSnapshot(t *testing.T) {
	root := t.TempDir()
	cache := snapshot.NewCache(assetfs.NewOSFileSystem(), snapshot.NoExpiry)
	require.Equal(t, 0, cache.Get(root).Len())

	// Created after the snapshot was cached and before anything watches root.
	deep := filepath.Join(root, "vendor", "lib")
	require.NoError(t, os.MkdirAll(deep, 0755))

	w, err := snapshot.NewWatcher(cache)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	require.NoError(t, w.Watch(root))

	_, ok := cache.Get(root).Lookup(deep)
	require.True(t, ok, "Watch drops the snapshot taken before watching")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(deep, "lib.js"), []byte("x"), 0644))
	assert.Eventually(t, func() bool {
		_, ok := cache.Get(root).Lookup(filepath.Join(deep, "lib.js"))
		return ok
	}, 5*time.Second, 20*time.Millisecond)
}
