/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"path"
	"path/filepath"
	"strings"
	"time"

	"bennypowers.dev/assetpath/accept"
	"bennypowers.dev/assetpath/internal/logger"
	"bennypowers.dev/assetpath/mediatype"
	"bennypowers.dev/assetpath/pathmatch"
	"bennypowers.dev/assetpath/snapshot"
	"bennypowers.dev/assetpath/specifier"
)

// Options controls a single resolution.
type Options struct {
	// Accept is an Accept expression such as "text/css, */*;q=0.8".
	// Empty accepts everything. It is ignored when the request names a
	// registered extension.
	Accept string

	// LoadPaths restricts the search to these load paths. Entries that are
	// not registered load paths are ignored. Nil searches all of them.
	LoadPaths []string

	// Compat returns a LegacyPath instead of a TypedURI.
	Compat bool
}

// Resolve finds the file a request refers to. The request may be a logical
// path ("coffee/foo.js"), an absolute path inside a load path, or an asset
// URI previously returned by Resolve. Not finding anything is not an error.
func (r *Resolver) Resolve(request string, opts Options) (Result, bool) {
	start := time.Now()
	spec := specifier.Parse(request)

	var (
		filename string
		typ      mediatype.MediaType
		found    bool
	)
	roots := r.searchPaths(opts.LoadPaths)

	switch spec.Kind {
	case specifier.KindLogical:
		filename, typ, found = r.resolveLogical(spec.Path, opts.Accept, roots, r.cache.Get)
	case specifier.KindAbsolute:
		filename, typ, found = r.resolveAbsolute(spec.Path, opts.Accept, roots)
	case specifier.KindAssetURI:
		expr := opts.Accept
		if spec.Type != "" {
			expr = spec.Type
		}
		filename, typ, found = r.resolveAbsolute(spec.Path, expr, roots)
	default:
		logger.Debug("resolve: ignoring invalid request %q", request)
	}

	if r.onEvent != nil {
		r.onEvent(Event{Kind: spec.Kind, Found: found, Duration: time.Since(start)})
	}
	if !found {
		return nil, false
	}
	if opts.Compat {
		return LegacyPath(filename), true
	}
	return TypedURI{
		URI:      specifier.BuildURI(filename, typ),
		Filename: filename,
		Type:     typ,
	}, true
}

// ResolvePath resolves request and returns the filename.
func (r *Resolver) ResolvePath(request string, opts Options) (string, bool) {
	res, ok := r.Resolve(request, opts)
	if !ok {
		return "", false
	}
	return res.File(), true
}

// ResolveURI resolves request and returns the typed URI, whatever opts.Compat says.
func (r *Resolver) ResolveURI(request string, opts Options) (TypedURI, bool) {
	opts.Compat = false
	res, ok := r.Resolve(request, opts)
	if !ok {
		return TypedURI{}, false
	}
	return res.(TypedURI), true
}

// resolveLogical searches roots in order for the best candidate for logical.
// Snapshots come from snap so callers can pin them for a whole pass.
func (r *Resolver) resolveLogical(logical, expr string, roots []string, snap func(root string) *snapshot.Snapshot) (string, mediatype.MediaType, bool) {
	dir, base := path.Split(logical)
	name, want, explicit := pathmatch.Request(r.registry, base)

	var list accept.List
	if !explicit {
		list = accept.Parse(expr)
	}

	for _, root := range roots {
		candidates := pathmatch.Candidates(r.registry, snap(root), filepath.Join(root, filepath.FromSlash(dir)), name)
		if len(candidates) == 0 {
			continue
		}

		best := -1
		bestPos := 0
		for i, c := range candidates {
			if explicit {
				if c.Type == want {
					best = i
					break
				}
				continue
			}
			pos, ok := list.Position(c.Type)
			if ok && (best < 0 || pos < bestPos) {
				best, bestPos = i, pos
			}
		}
		if best < 0 {
			logger.Debug("resolve: %s has %d candidates for %s, none acceptable", root, len(candidates), logical)
			continue
		}

		c := candidates[best]
		logger.Debug("resolve: %s -> %s (%s)", logical, c.Filename, c.Type)
		return c.Filename, c.Type, true
	}
	return "", mediatype.MediaType{}, false
}

// resolveAbsolute resolves a filename to itself when it is a regular file
// inside one of roots and its type is acceptable.
func (r *Resolver) resolveAbsolute(filename, expr string, roots []string) (string, mediatype.MediaType, bool) {
	inside := false
	for _, root := range roots {
		if contains(root, filename) {
			inside = true
			break
		}
	}
	if !inside {
		logger.Debug("resolve: %s is outside the load paths", filename)
		return "", mediatype.MediaType{}, false
	}

	info, err := r.fsys.Stat(filename)
	if err != nil || !info.Mode().IsRegular() {
		return "", mediatype.MediaType{}, false
	}

	typ := pathmatch.Split(r.registry, filename).Type
	if expr != "" && !accept.Parse(expr).Accepts(typ) {
		logger.Debug("resolve: %s (%s) not acceptable for %q", filename, typ, expr)
		return "", mediatype.MediaType{}, false
	}
	return filename, typ, true
}

// contains reports whether name lies strictly beneath root.
func contains(root, name string) bool {
	rel, err := filepath.Rel(root, name)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
