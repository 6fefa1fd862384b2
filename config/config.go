/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for the asset resolver.
package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/assetpath/mediatype"
	"bennypowers.dev/assetpath/snapshot"
)

// DefaultAddr is the address the asset server listens on by default.
const DefaultAddr = "127.0.0.1:9292"

// Config represents the asset resolver configuration.
type Config struct {
	// Paths are the load paths in search order (paths or globs, relative to
	// the project root).
	Paths []PathSpec `yaml:"paths" json:"paths"`

	// Types registers additional terminal extensions.
	Types []TypeSpec `yaml:"types" json:"types"`

	// Engines registers additional engine extensions.
	Engines []EngineSpec `yaml:"engines" json:"engines"`

	// SnapshotTTL is how long directory snapshots are reused, as a Go
	// duration. "0" or empty rebuilds on every call, "never" keeps them
	// until the tree changes.
	SnapshotTTL string `yaml:"snapshotTTL" json:"snapshotTTL"`

	// Server configures the HTTP asset server.
	Server ServerConfig `yaml:"server" json:"server"`
}

// PathSpec represents a load path entry.
// It can be specified as a simple string path or as an object.
type PathSpec struct {
	// Path is the directory (supports globs).
	Path string `yaml:"path" json:"path"`

	// Optional skips the path when it does not exist instead of failing.
	Optional bool `yaml:"optional" json:"optional"`
}

// TypeSpec maps extensions onto a media type.
type TypeSpec struct {
	Type       string   `yaml:"type" json:"type"`
	Extensions []string `yaml:"extensions" json:"extensions"`
}

// EngineSpec declares an engine extension. Type is the media type the
// engine produces; empty passes the inner extension's type through.
type EngineSpec struct {
	Extension string `yaml:"extension" json:"extension"`
	Type      string `yaml:"type" json:"type"`
}

// ServerConfig configures the HTTP asset server.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// UnmarshalYAML handles both string and object forms for PathSpec.
func (p *PathSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Path = node.Value
		return nil
	}

	type rawPathSpec PathSpec
	return node.Decode((*rawPathSpec)(p))
}

// UnmarshalJSON handles both string and object forms for PathSpec.
func (p *PathSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.Path = s
		return nil
	}

	type rawPathSpec PathSpec
	return json.Unmarshal(data, (*rawPathSpec)(p))
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Addr returns the server address, or DefaultAddr.
func (c *Config) Addr() string {
	if c.Server.Addr == "" {
		return DefaultAddr
	}
	return c.Server.Addr
}

// TTL parses SnapshotTTL.
func (c *Config) TTL() (time.Duration, error) {
	return ParseTTL(c.SnapshotTTL)
}

// ParseTTL parses a snapshot TTL. Empty means zero; "never" (or any
// negative duration) means snapshot.NoExpiry.
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "0":
		return 0, nil
	case "never", "-1":
		return snapshot.NoExpiry, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid snapshotTTL %q: %w", s, err)
	}
	if d < 0 {
		return snapshot.NoExpiry, nil
	}
	return d, nil
}

// Registry returns the default media-type registry extended with the
// configured types and engines.
func (c *Config) Registry() (*mediatype.Registry, error) {
	reg := mediatype.Default()

	for _, spec := range c.Types {
		t, err := mediatype.Parse(spec.Type)
		if err != nil {
			return nil, fmt.Errorf("config type %q: %w", spec.Type, err)
		}
		if err := reg.Register(t, spec.Extensions...); err != nil {
			return nil, fmt.Errorf("config type %q: %w", spec.Type, err)
		}
	}

	for _, spec := range c.Engines {
		var t mediatype.MediaType
		if spec.Type != "" {
			parsed, err := mediatype.Parse(spec.Type)
			if err != nil {
				return nil, fmt.Errorf("config engine %q: %w", spec.Extension, err)
			}
			t = parsed
		}
		if err := reg.RegisterEngine(spec.Extension, t); err != nil {
			return nil, fmt.Errorf("config engine %q: %w", spec.Extension, err)
		}
	}

	return reg, nil
}
