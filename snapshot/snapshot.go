/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package snapshot captures an immutable view of a directory tree so that a
// resolution or enumeration pass does not repeat filesystem calls.
package snapshot

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"time"

	assetfs "bennypowers.dev/assetpath/fs"
	"bennypowers.dev/assetpath/internal/logger"
)

// Kind distinguishes files from directories.
type Kind int

const (
	// KindFile is a regular file.
	KindFile Kind = iota
	// KindDir is a directory.
	KindDir
)

// String returns "file" or "directory".
func (k Kind) String() string {
	if k == KindDir {
		return "directory"
	}
	return "file"
}

// Entry is one file or directory found under the snapshot root.
type Entry struct {
	// Path is absolute.
	Path    string
	Kind    Kind
	ModTime time.Time
	Size    int64
}

// IsFile reports whether the entry is a regular file.
func (e Entry) IsFile() bool {
	return e.Kind == KindFile
}

// Snapshot is the recursive listing of a root directory at one point in
// time. It is never modified after Take returns; rebuild it instead.
type Snapshot struct {
	root     string
	taken    time.Time
	entries  map[string]Entry
	order    []string
	children map[string][]string
}

// Take walks root through fsys. Symlinked directories are followed unless
// they lead back to one of their own ancestors. An unreadable root yields an
// empty snapshot, and an unreadable subdirectory yields an empty subtree.
func Take(fsys assetfs.FileSystem, root string) *Snapshot {
	root = filepath.Clean(root)
	s := &Snapshot{
		root:     root,
		taken:    time.Now(),
		entries:  make(map[string]Entry),
		children: make(map[string][]string),
	}

	info, err := fsys.Stat(root)
	if err != nil || !info.IsDir() {
		logger.Debug("snapshot: skipping unreadable root %s", root)
		return s
	}

	w := walker{fsys: fsys, snap: s}
	w.walk(root, []fs.FileInfo{info})
	return s
}

// Root returns the directory the snapshot was taken of.
func (s *Snapshot) Root() string {
	return s.root
}

// Taken returns when the snapshot was built.
func (s *Snapshot) Taken() time.Time {
	return s.taken
}

// Len returns the number of entries, files and directories.
func (s *Snapshot) Len() int {
	return len(s.order)
}

// Lookup returns the entry for an absolute path.
func (s *Snapshot) Lookup(path string) (Entry, bool) {
	e, ok := s.entries[filepath.Clean(path)]
	return e, ok
}

// Dir returns the immediate children of dir in name order. The root itself
// is a valid dir.
func (s *Snapshot) Dir(dir string) []Entry {
	paths := s.children[filepath.Clean(dir)]
	out := make([]Entry, len(paths))
	for i, p := range paths {
		out[i] = s.entries[p]
	}
	return out
}

// All yields every entry depth-first, children in name order.
func (s *Snapshot) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, p := range s.order {
			if !yield(s.entries[p]) {
				return
			}
		}
	}
}

// Files yields every regular file in the order of All.
func (s *Snapshot) Files() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for e := range s.All() {
			if e.IsFile() && !yield(e) {
				return
			}
		}
	}
}

type walker struct {
	fsys assetfs.FileSystem
	snap *Snapshot
}

func (w *walker) walk(dir string, ancestors []fs.FileInfo) {
	dirEntries, err := w.fsys.ReadDir(dir)
	if err != nil {
		logger.Debug("snapshot: cannot read %s: %v", dir, err)
		return
	}

	for _, de := range dirEntries {
		p := filepath.Join(dir, de.Name())

		var info fs.FileInfo
		if de.Type()&fs.ModeSymlink != 0 {
			info, err = w.fsys.Stat(p)
		} else {
			info, err = de.Info()
		}
		if err != nil {
			// Dangling symlink or entry removed mid-walk.
			continue
		}

		switch {
		case info.IsDir():
			if cyclic(info, ancestors) {
				logger.Debug("snapshot: not following %s, already visited", p)
				continue
			}
			w.add(dir, Entry{Path: p, Kind: KindDir, ModTime: info.ModTime()})
			next := make([]fs.FileInfo, len(ancestors), len(ancestors)+1)
			copy(next, ancestors)
			w.walk(p, append(next, info))
		case info.Mode().IsRegular():
			w.add(dir, Entry{Path: p, Kind: KindFile, ModTime: info.ModTime(), Size: info.Size()})
		}
	}
}

func (w *walker) add(parent string, e Entry) {
	w.snap.entries[e.Path] = e
	w.snap.order = append(w.snap.order, e.Path)
	w.snap.children[parent] = append(w.snap.children[parent], e.Path)
}

func cyclic(info fs.FileInfo, ancestors []fs.FileInfo) bool {
	for _, a := range ancestors {
		if os.SameFile(info, a) {
			return true
		}
	}
	return false
}
