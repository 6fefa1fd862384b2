/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"iter"
	"path"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	"bennypowers.dev/assetpath/internal/logger"
	"bennypowers.dev/assetpath/pathmatch"
	"bennypowers.dev/assetpath/snapshot"
)

// Matcher selects logical paths during enumeration.
type Matcher interface {
	Match(logicalPath, filename string) bool
}

// MatcherFunc adapts a function to a Matcher.
type MatcherFunc func(logicalPath, filename string) bool

// Match calls f.
func (f MatcherFunc) Match(logicalPath, filename string) bool {
	return f(logicalPath, filename)
}

// Exact matches one logical path.
func Exact(logicalPath string) Matcher {
	return MatcherFunc(func(lp, _ string) bool {
		return lp == logicalPath
	})
}

// Regexp matches logical paths containing a match of re.
func Regexp(re *regexp.Regexp) Matcher {
	return MatcherFunc(func(lp, _ string) bool {
		return re.MatchString(lp)
	})
}

// Glob matches logical paths against a doublestar pattern such as
// "**/*.css". An invalid pattern matches nothing.
func Glob(pattern string) Matcher {
	return MatcherFunc(func(lp, _ string) bool {
		ok, err := doublestar.Match(pattern, lp)
		return err == nil && ok
	})
}

// EachLogicalPath yields the logical path and filename of every file in the
// load paths, in load-path order and then walk order. A pair is only yielded
// when Resolve returns that file for that logical path: of several files
// sharing a logical path only the first is yielded, and a file shadowed by a
// differently named file of an earlier load path (LICENSE behind
// LICENSE.txt) is skipped. With matchers, only logical paths accepted by at
// least one matcher are yielded.
//
// The sequence is computed afresh each time it is ranged over, from one
// snapshot per load path.
func (r *Resolver) EachLogicalPath(matchers ...Matcher) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		roots := r.Paths()
		snaps := make(map[string]*snapshot.Snapshot, len(roots))
		snap := func(root string) *snapshot.Snapshot {
			s, ok := snaps[root]
			if !ok {
				s = r.cache.Get(root)
				snaps[root] = s
			}
			return s
		}

		seen := make(map[string]bool)
		for _, root := range roots {
			for e := range snap(root).Files() {
				lp, ok := r.logicalPath(root, e.Path)
				if !ok || seen[lp] {
					continue
				}
				seen[lp] = true
				if !matchAny(matchers, lp, e.Path) {
					continue
				}
				if winner, _, found := r.resolveLogical(lp, "", roots, snap); !found || winner != e.Path {
					logger.Debug("logical paths: %s is shadowed for %s", e.Path, lp)
					continue
				}
				if !yield(lp, e.Path) {
					return
				}
			}
		}
	}
}

// LogicalPaths returns every logical path and the file it resolves to.
func (r *Resolver) LogicalPaths() map[string]string {
	out := make(map[string]string)
	for lp, filename := range r.EachLogicalPath() {
		out[lp] = filename
	}
	return out
}

// LogicalPath returns the logical path of filename, which must lie inside
// one of the load paths. It reports false otherwise.
func (r *Resolver) LogicalPath(filename string) (string, bool) {
	filename = filepath.Clean(filename)
	for _, root := range r.Paths() {
		if contains(root, filename) {
			return r.logicalPath(root, filename)
		}
	}
	return "", false
}

// logicalPath is the path of filename relative to root with its extensions
// replaced by the preferred extension of its type. Files without a type,
// or whose type has no terminal extension, keep their relative path.
func (r *Resolver) logicalPath(root, filename string) (string, bool) {
	rel, err := filepath.Rel(root, filename)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)

	p := pathmatch.Split(r.registry, rel)
	if p.Type.IsZero() {
		return rel, true
	}
	ext, ok := r.registry.Extension(p.Type)
	if !ok {
		return rel, true
	}
	return path.Join(path.Dir(rel), p.Name+ext), true
}

func matchAny(matchers []Matcher, lp, filename string) bool {
	if len(matchers) == 0 {
		return true
	}
	for _, m := range matchers {
		if m.Match(lp, filename) {
			return true
		}
	}
	return false
}
