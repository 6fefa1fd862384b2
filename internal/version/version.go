/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides version information for the assetpath CLI.
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version information, set at build time via ldflags
	Version   = "dev"
	BuildTime = "unknown"
)

// Get returns the version string for the application.
func Get() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			return info.Main.Version
		}
	}

	if rev, dirty := vcs(); rev != "" {
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if dirty {
			rev += "-dirty"
		}
		return "dev-" + rev
	}

	return "dev"
}

// Full returns the version with its build time, when known.
func Full() string {
	if BuildTime != "unknown" {
		return fmt.Sprintf("%s (built %s)", Get(), BuildTime)
	}
	return Get()
}

// Info returns detailed build information.
func Info() map[string]string {
	rev, dirty := vcs()
	info := map[string]string{
		"version":   Get(),
		"buildTime": BuildTime,
		"revision":  rev,
	}
	if dirty {
		info["modified"] = "true"
	}
	return info
}

// vcs reads the revision recorded by the go toolchain.
func vcs() (revision string, dirty bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	return revision, dirty
}
