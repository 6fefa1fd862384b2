/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolve

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"bennypowers.dev/assetpath/internal/project"
	"bennypowers.dev/assetpath/testutil"
)

func newProject(t *testing.T, paths ...string) *project.Project {
	t.Helper()
	mfs := testutil.NewFixtureFS(t, "fixtures", "/fixtures")
	p, err := project.Load(mfs, project.Options{Root: "/fixtures", Paths: paths})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestResolve_Text(t *testing.T) {
	p := newProject(t, "default")
	var buf bytes.Buffer

	err := Resolve(&buf, p, []string{"gallery.js", "coffee/foo.js"}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "file:///fixtures/default/gallery.js?type=application/javascript\n" +
		"file:///fixtures/default/coffee/foo.coffee?type=application/javascript\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestResolve_Compat(t *testing.T) {
	p := newProject(t, "resolve/javascripts", "resolve/stylesheets")
	var buf bytes.Buffer

	err := Resolve(&buf, p, []string{"foo"}, Options{Compat: true, Accept: "text/css"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "/fixtures/resolve/stylesheets/foo.css" {
		t.Errorf("expected foo.css, got %q", got)
	}
}

func TestResolve_LoadPathRelativeToRoot(t *testing.T) {
	p := newProject(t, "resolve/javascripts", "resolve/stylesheets")
	var buf bytes.Buffer

	err := Resolve(&buf, p, []string{"foo.js"}, Options{LoadPaths: []string{"resolve/stylesheets"}})
	if err == nil {
		t.Fatal("expected foo.js not to be found in stylesheets")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestResolve_JSONWithMissing(t *testing.T) {
	p := newProject(t, "default")
	var buf bytes.Buffer

	err := Resolve(&buf, p, []string{"manifest.js.yml", "nope", "README"}, Options{Format: "json"})
	if err == nil || !strings.Contains(err.Error(), "nope") {
		t.Errorf("expected an error naming the missing asset, got %v", err)
	}

	var results []resolution
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Type != "text/yaml" || !results[0].Found {
		t.Errorf("unexpected first result %+v", results[0])
	}
	if results[1].Found {
		t.Errorf("expected second result to be missing, got %+v", results[1])
	}
	if results[2].Type != "" || results[2].URI != "file:///fixtures/default/README" {
		t.Errorf("unexpected untyped result %+v", results[2])
	}
}

func TestResolve_UnknownFormat(t *testing.T) {
	p := newProject(t, "default")
	if err := Resolve(&bytes.Buffer{}, p, []string{"gallery.js"}, Options{Format: "xml"}); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
