/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package project assembles a resolver from the config file and CLI settings.
package project

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"bennypowers.dev/assetpath/config"
	assetfs "bennypowers.dev/assetpath/fs"
	"bennypowers.dev/assetpath/internal/logger"
	"bennypowers.dev/assetpath/resolver"
	"bennypowers.dev/assetpath/snapshot"
)

// Viper keys shared by the commands.
const (
	KeyRoot        = "root"
	KeyPaths       = "paths"
	KeySnapshotTTL = "snapshotTTL"
	KeyAddr        = "addr"
	KeyVerbose     = "verbose"
)

// Options are settings that override the config file.
type Options struct {
	// Root is the project root. Relative load paths and the config file are
	// looked up from here.
	Root string

	// Paths replace the configured load paths when non-empty.
	Paths []string

	// SnapshotTTL replaces the configured TTL when non-empty.
	SnapshotTTL string

	// Addr replaces the configured server address when non-empty.
	Addr string

	// DefaultTTL applies when neither the flags nor the config set a TTL.
	DefaultTTL string

	// OnBuild observes snapshot builds.
	OnBuild func(snapshot.BuildStats)

	// ResolverOptions are passed to resolver.New.
	ResolverOptions []resolver.Option
}

// Project is a configured resolver and the settings it came from.
type Project struct {
	Root      string
	FS        assetfs.FileSystem
	Config    *config.Config
	Cache     *snapshot.Cache
	Resolver  *resolver.Resolver
	LoadPaths []string
}

// OptionsFromViper reads the global settings bound by the root command.
func OptionsFromViper() Options {
	return Options{
		Root:        viper.GetString(KeyRoot),
		Paths:       viper.GetStringSlice(KeyPaths),
		SnapshotTTL: viper.GetString(KeySnapshotTTL),
		Addr:        viper.GetString(KeyAddr),
	}
}

// Load reads the config under opts.Root, applies opts, and builds a resolver
// over the resulting load paths.
func Load(fsys assetfs.FileSystem, opts Options) (*Project, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
		}
		root = abs
	}

	cfg, err := config.Load(fsys, root)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if len(opts.Paths) > 0 {
		cfg.Paths = make([]config.PathSpec, 0, len(opts.Paths))
		for _, p := range opts.Paths {
			cfg.Paths = append(cfg.Paths, config.PathSpec{Path: p})
		}
	}
	if opts.SnapshotTTL != "" {
		cfg.SnapshotTTL = opts.SnapshotTTL
	}
	if cfg.SnapshotTTL == "" {
		cfg.SnapshotTTL = opts.DefaultTTL
	}
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}

	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.TTL()
	if err != nil {
		return nil, err
	}
	loadPaths, err := cfg.LoadPaths(fsys, root)
	if err != nil {
		return nil, err
	}

	cache := snapshot.NewCache(fsys, ttl)
	if opts.OnBuild != nil {
		cache.OnBuild(opts.OnBuild)
	}

	ropts := append([]resolver.Option{resolver.WithSnapshotCache(cache)}, opts.ResolverOptions...)
	r := resolver.New(fsys, reg, ropts...)
	for _, p := range loadPaths {
		if err := r.AppendPath(p); err != nil {
			return nil, err
		}
		logger.Debug("load path: %s", p)
	}

	return &Project{
		Root:      root,
		FS:        fsys,
		Config:    cfg,
		Cache:     cache,
		Resolver:  r,
		LoadPaths: loadPaths,
	}, nil
}

// Watch invalidates the project's snapshots whenever files under its load
// paths change, until ctx is done. The returned function stops the watcher.
func (p *Project) Watch(ctx context.Context) (func(), error) {
	w, err := snapshot.NewWatcher(p.Cache)
	if err != nil {
		return nil, err
	}
	for _, root := range p.LoadPaths {
		if err := w.Watch(root); err != nil {
			logger.Warn("cannot watch %s: %v", root, err)
		}
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Warn("watcher stopped: %v", err)
		}
	}()
	return func() { _ = w.Close() }, nil
}
