/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/assetpath/internal/mapfs"
	"bennypowers.dev/assetpath/mediatype"
	"bennypowers.dev/assetpath/snapshot"
	"bennypowers.dev/assetpath/testutil"
)

func TestLoad_YAML(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/yaml", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if len(cfg.Paths) != 3 {
		t.Fatalf("expected 3 paths, got %d", len(cfg.Paths))
	}

	if cfg.Paths[0].Path != "app/assets/*" {
		t.Errorf("expected path 'app/assets/*', got %q", cfg.Paths[0].Path)
	}

	if !cfg.Paths[2].Optional || cfg.Paths[2].Path != "lib/assets" {
		t.Errorf("expected optional lib/assets, got %+v", cfg.Paths[2])
	}

	if cfg.Addr() != "127.0.0.1:8080" {
		t.Errorf("expected addr '127.0.0.1:8080', got %q", cfg.Addr())
	}

	ttl, err := cfg.TTL()
	if err != nil || ttl != 5*time.Second {
		t.Errorf("expected TTL 5s, got %v (%v)", ttl, err)
	}
}

func TestLoad_JSONWithComments(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/json", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Paths) != 2 || cfg.Paths[0].Path != "assets" {
		t.Fatalf("unexpected paths %+v", cfg.Paths)
	}

	ttl, err := cfg.TTL()
	if err != nil || ttl != snapshot.NoExpiry {
		t.Errorf("expected NoExpiry, got %v (%v)", ttl, err)
	}

	if cfg.Addr() != DefaultAddr {
		t.Errorf("expected default addr, got %q", cfg.Addr())
	}
}

func TestLoad_NotFound(t *testing.T) {
	mfs := mapfs.New()

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/.config/assetpath.yaml", "paths: [unclosed", 0644)

	if _, err := Load(mfs, "/project"); err == nil {
		t.Fatal("expected parse error")
	}

	cfg := LoadOrDefault(mfs, "/project")
	if cfg.Addr() != DefaultAddr || len(cfg.Paths) != 0 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestConfig_LoadPaths(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/yaml", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	paths, err := cfg.LoadPaths(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"/project/app/assets/javascripts",
		"/project/app/assets/stylesheets",
		"/project/vendor/assets",
	}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, paths)
	}
}

func TestConfig_LoadPaths_Missing(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/json", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = cfg.LoadPaths(mfs, "/project")
	if !errors.Is(err, ErrMissingLoadPath) {
		t.Errorf("expected ErrMissingLoadPath, got %v", err)
	}

	cfg.Paths[1].Optional = true
	paths, err := cfg.LoadPaths(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 || paths[0] != "/project/assets" {
		t.Errorf("expected [/project/assets], got %v", paths)
	}
}

func TestConfig_LoadPaths_None(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/empty", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := cfg.LoadPaths(mfs, "/project"); !errors.Is(err, ErrNoLoadPaths) {
		t.Errorf("expected ErrNoLoadPaths, got %v", err)
	}

	cfg.Paths = []PathSpec{{Path: "nothing/*"}}
	if _, err := cfg.LoadPaths(mfs, "/project"); !errors.Is(err, ErrNoLoadPaths) {
		t.Errorf("expected ErrNoLoadPaths for an empty glob, got %v", err)
	}

	cfg.Paths = []PathSpec{{Path: "src/[", Optional: true}}
	if _, err := cfg.LoadPaths(mfs, "/project"); err == nil {
		t.Error("expected an error for a malformed pattern")
	}
}

func TestConfig_Registry(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/yaml", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hbs := mediatype.MustParse("text/x-handlebars-template")
	if got, ok := reg.Lookup(".handlebars"); !ok || got != hbs {
		t.Errorf("expected .handlebars to be %v, got %v", hbs, got)
	}
	if ext, _ := reg.Extension(hbs); ext != ".hbs" {
		t.Errorf("expected preferred extension .hbs, got %q", ext)
	}
	if e, ok := reg.Engine(".haml"); !ok || e.Type != mediatype.HTML {
		t.Errorf("expected .haml engine producing text/html, got %+v", e)
	}
	if e, ok := reg.Engine(".liquid"); !ok || !e.Type.IsZero() {
		t.Errorf("expected pass-through .liquid engine, got %+v", e)
	}
	if _, ok := reg.Lookup(".js"); !ok {
		t.Error("expected defaults to remain registered")
	}
}

func TestConfig_Registry_Conflict(t *testing.T) {
	cfg := &Config{Engines: []EngineSpec{{Extension: ".js", Type: "text/plain"}}}
	if _, err := cfg.Registry(); !errors.Is(err, mediatype.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	cfg = &Config{Types: []TypeSpec{{Type: "nonsense", Extensions: []string{".x"}}}}
	if _, err := cfg.Registry(); err == nil {
		t.Error("expected an error for an invalid type")
	}
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		err  bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"250ms", 250 * time.Millisecond, false},
		{"never", snapshot.NoExpiry, false},
		{"NEVER", snapshot.NoExpiry, false},
		{"-5s", snapshot.NoExpiry, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTTL(tt.in)
			if (err != nil) != tt.err {
				t.Fatalf("ParseTTL(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTTL(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPathSpec_UnmarshalYAML_String(t *testing.T) {
	var spec PathSpec
	if err := yaml.Unmarshal([]byte(`"app/assets"`), &spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Path != "app/assets" || spec.Optional {
		t.Errorf("unexpected spec %+v", spec)
	}
}

func TestPathSpec_UnmarshalJSON_Object(t *testing.T) {
	var spec PathSpec
	if err := json.Unmarshal([]byte(`{"path": "lib", "optional": true}`), &spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Path != "lib" || !spec.Optional {
		t.Errorf("unexpected spec %+v", spec)
	}
}
