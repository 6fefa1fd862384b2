/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	assetfs "bennypowers.dev/assetpath/fs"
	"bennypowers.dev/assetpath/internal/logger"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "assetpath"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// Sentinel errors for load path expansion.
var (
	// ErrNoLoadPaths indicates that neither configuration nor flags name a load path.
	ErrNoLoadPaths = errors.New("no load paths configured")

	// ErrMissingLoadPath indicates a required load path that is not a directory.
	ErrMissingLoadPath = errors.New("load path is not a directory")
)

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// Load searches for .config/assetpath.{yaml,yml,json} from rootDir.
// Returns nil if no config found (not an error).
func Load(filesystem assetfs.FileSystem, rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if !filesystem.Exists(configPath) {
			continue
		}

		data, err := filesystem.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
		}

		cfg := Default()
		switch ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
			}
		case ".json":
			if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
			}
		}

		logger.Debug("config: loaded %s", configPath)
		return cfg, nil
	}

	return nil, nil
}

// LoadOrDefault returns config or defaults if not found.
func LoadOrDefault(filesystem assetfs.FileSystem, rootDir string) *Config {
	cfg, err := Load(filesystem, rootDir)
	if err != nil {
		logger.Warn("ignoring config: %v", err)
	}
	if err != nil || cfg == nil {
		return Default()
	}
	return cfg
}

// LoadPaths expands the configured paths into absolute directories, in
// configuration order. Each glob expands to its matching directories in
// lexical order. Duplicates keep their first position.
func (c *Config) LoadPaths(filesystem assetfs.FileSystem, rootDir string) ([]string, error) {
	var result []string
	seen := make(map[string]bool)

	for _, spec := range c.Paths {
		expanded, err := expandPath(filesystem, rootDir, spec)
		if err != nil {
			return nil, err
		}
		for _, p := range expanded {
			if !seen[p] {
				seen[p] = true
				result = append(result, p)
			}
		}
	}

	if len(result) == 0 {
		return nil, ErrNoLoadPaths
	}
	return result, nil
}

// expandPath expands a single path which may contain globs.
func expandPath(filesystem assetfs.FileSystem, rootDir string, spec PathSpec) ([]string, error) {
	pattern := spec.Path

	// Make pattern absolute if relative
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(rootDir, pattern)
	}
	pattern = filepath.Clean(pattern)

	if !containsGlob(pattern) {
		info, err := filesystem.Stat(pattern)
		if err == nil && info.IsDir() {
			return []string{pattern}, nil
		}
		if spec.Optional {
			logger.Debug("config: skipping optional load path %s", pattern)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrMissingLoadPath, pattern)
	}

	return expandGlob(filesystem, pattern)
}

// containsGlob returns true if the pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandGlob expands a glob pattern against the directories of the filesystem.
func expandGlob(filesystem assetfs.FileSystem, pattern string) ([]string, error) {
	// Find the base directory (non-glob prefix)
	baseDir := pattern
	for containsGlob(baseDir) {
		baseDir = filepath.Dir(baseDir)
	}

	relPattern := strings.TrimPrefix(pattern, baseDir)
	relPattern = strings.TrimPrefix(relPattern, string(filepath.Separator))
	if !doublestar.ValidatePattern(relPattern) {
		return nil, fmt.Errorf("invalid load path pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	var matches []string

	err := fs.WalkDir(filesystem, baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip directories we can't read
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if !d.IsDir() || path == baseDir {
			return nil
		}

		relPath := strings.TrimPrefix(path, baseDir)
		relPath = strings.TrimPrefix(relPath, string(filepath.Separator))

		if matched, _ := doublestar.Match(relPattern, filepath.ToSlash(relPath)); matched {
			matches = append(matches, filepath.Clean(path))
		}

		return nil
	})

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return matches, nil
}
