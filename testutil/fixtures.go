/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil loads on-disk asset trees from testdata into in-memory
// filesystems, and reads and updates golden files.
package testutil

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/assetpath/internal/mapfs"
)

var updateGolden = flag.Bool("update", false, "update golden files with actual output")

// testdataDirs are tried in order, since tests run from their package directory.
var testdataDirs = []string{
	"testdata",
	filepath.Join("..", "testdata"),
	filepath.Join("..", "..", "testdata"),
}

// locate returns the first existing path for rel under a testdata directory.
func locate(rel string) (string, bool) {
	for _, dir := range testdataDirs {
		p := filepath.Join(dir, rel)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// NewFixtureFS copies testdata/fixtureDir into a MapFileSystem rooted at
// rootPath. Directories are added explicitly, so empty load paths survive.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	src, ok := locate(fixtureDir)
	if !ok {
		t.Fatalf("Could not find fixtures at %s", fixtureDir)
	}

	mfs := mapfs.New()
	err := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		virtual := filepath.Join(rootPath, rel)
		if d.IsDir() {
			mfs.AddDir(virtual, 0755)
			return nil
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		mfs.AddFile(virtual, string(content), 0644)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to load fixtures from %s: %v", fixtureDir, err)
	}
	return mfs
}

// LoadFixtureFile reads a file under testdata.
func LoadFixtureFile(t *testing.T, rel string) []byte {
	t.Helper()
	p, ok := locate(rel)
	if !ok {
		t.Fatalf("Failed to read fixture %s", rel)
	}
	content, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", rel, err)
	}
	return content
}

// UpdateGoldenFile writes actual to testdata/rel when -update is set.
func UpdateGoldenFile(t *testing.T, rel string, actual []byte) {
	t.Helper()
	if !*updateGolden {
		return
	}

	target := filepath.Join(testdataDirs[0], rel)
	for _, dir := range testdataDirs {
		if _, err := os.Stat(dir); err == nil {
			target = filepath.Join(dir, rel)
			break
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		t.Fatalf("Failed to create directory for golden file %s: %v", rel, err)
	}
	if err := os.WriteFile(target, actual, 0644); err != nil {
		t.Fatalf("Failed to write golden file %s: %v", rel, err)
	}
	t.Logf("Updated golden file: %s", target)
}
