/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assetfs "bennypowers.dev/assetpath/fs"
	"bennypowers.dev/assetpath/internal/mapfs"
	"bennypowers.dev/assetpath/snapshot"
)

func newTree() *mapfs.MapFileSystem {
	mfs := mapfs.New()
	mfs.AddFile("/assets/b.js", "b", 0644)
	mfs.AddFile("/assets/a.css", "a", 0644)
	mfs.AddFile("/assets/lib/z.js", "z", 0644)
	mfs.AddFile("/assets/lib/deep/y.js", "y", 0644)
	mfs.AddFile("/assets/.hidden", "", 0644)
	mfs.AddDir("/assets/empty", 0755)
	return mfs
}

func paths(s *snapshot.Snapshot) []string {
	var out []string
	for e := range s.All() {
		out = append(out, e.Path)
	}
	return out
}

func TestTake_WalkOrder(t *testing.T) {
	snap := snapshot.Take(newTree(), "/assets")

	assert.Equal(t, []string{
		"/assets/.hidden",
		"/assets/a.css",
		"/assets/b.js",
		"/assets/empty",
		"/assets/lib",
		"/assets/lib/deep",
		"/assets/lib/deep/y.js",
		"/assets/lib/z.js",
	}, paths(snap))
	assert.Equal(t, 8, snap.Len())
	assert.Equal(t, "/assets", snap.Root())
}

func TestTake_Kinds(t *testing.T) {
	snap := snapshot.Take(newTree(), "/assets")

	e, ok := snap.Lookup("/assets/lib")
	require.True(t, ok)
	assert.Equal(t, snapshot.KindDir, e.Kind)
	assert.False(t, e.IsFile())

	e, ok = snap.Lookup("/assets/lib/../b.js")
	require.True(t, ok)
	assert.True(t, e.IsFile())
	assert.Equal(t, int64(1), e.Size)

	_, ok = snap.Lookup("/assets/missing.js")
	assert.False(t, ok)

	var files int
	for range snap.Files() {
		files++
	}
	assert.Equal(t, 5, files)
}

func TestSnapshot_Dir(t *testing.T) {
	snap := snapshot.Take(newTree(), "/assets")

	var names []string
	for _, e := range snap.Dir("/assets/lib") {
		names = append(names, filepath.Base(e.Path))
	}
	assert.Equal(t, []string{"deep", "z.js"}, names)

	assert.Len(t, snap.Dir("/assets/empty"), 0)
	assert.Len(t, snap.Dir("/nowhere"), 0)
}

func TestTake_UnreadableRoot(t *testing.T) {
	mfs := newTree()

	snap := snapshot.Take(mfs, "/missing")
	assert.Equal(t, 0, snap.Len())

	snap = snapshot.Take(mfs, "/assets/b.js")
	assert.Equal(t, 0, snap.Len(), "a file root has no entries")

	mfs.Deny("/assets")
	snap = snapshot.Take(mfs, "/assets")
	assert.Equal(t, 0, snap.Len())
}

func TestTake_UnreadableSubtree(t *testing.T) {
	mfs := newTree()
	mfs.Deny("/assets/lib")

	snap := snapshot.Take(mfs, "/assets")

	_, ok := snap.Lookup("/assets/lib")
	assert.True(t, ok, "directory itself is listed")
	_, ok = snap.Lookup("/assets/lib/z.js")
	assert.False(t, ok, "its contents are not")
	_, ok = snap.Lookup("/assets/b.js")
	assert.True(t, ok, "siblings are unaffected")
}

func TestTake_SymlinkCycle(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b", "app.js"), []byte("x"), 0644))
	if err := os.Symlink(filepath.Join(root, "a"), filepath.Join(root, "a", "b", "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "a", "b", "app.js"), filepath.Join(root, "linked.js")))

	snap := snapshot.Take(assetfs.NewOSFileSystem(), root)

	_, ok := snap.Lookup(filepath.Join(root, "a", "b", "loop"))
	assert.False(t, ok, "cycle back to an ancestor is not followed")

	e, ok := snap.Lookup(filepath.Join(root, "linked.js"))
	require.True(t, ok, "symlinked file is listed")
	assert.True(t, e.IsFile())

	assert.Equal(t, 4, snap.Len())
}
