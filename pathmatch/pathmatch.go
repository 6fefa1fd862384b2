/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package pathmatch implements the extension grammar that maps file names on
// disk to logical asset names.
//
// A file name is read right to left: any number of engine extensions
// (.coffee, .erb, ...) followed by at most one terminal extension (.js,
// .css, ...). Whatever remains is the logical name.
//
//	foo.js.coffee -> name "foo", engines [.coffee], terminal .js
//	foo.coffee    -> name "foo", engines [.coffee], type from the engine
//	manifest.js.yml -> name "manifest.js", terminal .yml
package pathmatch

import (
	"path/filepath"
	"strings"

	"bennypowers.dev/assetpath/mediatype"
	"bennypowers.dev/assetpath/snapshot"
)

// Parsed is a file name split by the extension grammar.
type Parsed struct {
	// Name is the base name with all recognized extensions removed.
	Name string

	// Terminal is the terminal extension, or "".
	Terminal string

	// Engines are the engine extensions in the order they appear in the name.
	Engines []string

	// Type is the terminal's type, otherwise the type produced by the
	// innermost engine that declares one. Zero when neither applies.
	Type mediatype.MediaType
}

// Extnames returns every stripped extension in file-name order.
// Name + strings.Join(Extnames(), "") equals the original base name.
func (p Parsed) Extnames() []string {
	out := make([]string, 0, len(p.Engines)+1)
	if p.Terminal != "" {
		out = append(out, p.Terminal)
	}
	return append(out, p.Engines...)
}

// Split parses a base name (or path; only the base is considered).
func Split(reg *mediatype.Registry, filename string) Parsed {
	name := filepath.Base(filename)
	var reversed []string

	for {
		ext := extname(name)
		if ext == "" || !reg.IsEngine(ext) {
			break
		}
		reversed = append(reversed, ext)
		name = strings.TrimSuffix(name, ext)
	}

	p := Parsed{Engines: make([]string, 0, len(reversed))}
	for i := len(reversed) - 1; i >= 0; i-- {
		p.Engines = append(p.Engines, reversed[i])
	}

	if ext := extname(name); ext != "" {
		if t, ok := reg.Lookup(ext); ok {
			p.Terminal = ext
			p.Type = t
			name = strings.TrimSuffix(name, ext)
		}
	}
	p.Name = name

	if p.Type.IsZero() {
		for _, ext := range p.Engines {
			if e, ok := reg.Engine(ext); ok && !e.Type.IsZero() {
				p.Type = e.Type
				break
			}
		}
	}
	return p
}

// extname is filepath.Ext that never consumes a whole name, so ".keep"
// or ".js" has no extension.
func extname(name string) string {
	ext := filepath.Ext(name)
	if ext == name || ext == "." {
		return ""
	}
	return ext
}

// Candidate is a file that may satisfy a logical name.
type Candidate struct {
	// Filename is the absolute path of the file.
	Filename string

	// Name is the part of the base name that matched.
	Name string

	// Extnames is the consumed suffix; Name + Extnames is the base name.
	Extnames []string

	// Type is the resolved media type, zero if none.
	Type mediatype.MediaType
}

// Candidates returns the regular files directly inside dir that reduce to
// basename, in snapshot order. A file whose complete base name equals
// basename also matches, with an empty consumed suffix.
func Candidates(reg *mediatype.Registry, snap *snapshot.Snapshot, dir, basename string) []Candidate {
	var out []Candidate
	for _, e := range snap.Dir(dir) {
		if !e.IsFile() {
			continue
		}
		base := filepath.Base(e.Path)
		if !strings.HasPrefix(base, basename) {
			continue
		}
		p := Split(reg, base)
		switch {
		case p.Name == basename:
			out = append(out, Candidate{Filename: e.Path, Name: p.Name, Extnames: p.Extnames(), Type: p.Type})
		case base == basename:
			out = append(out, Candidate{Filename: e.Path, Name: base, Type: p.Type})
		}
	}
	return out
}

// Request splits a requested base name. When its last extension is a
// registered terminal extension, name is the base name without it and t is
// the type the request demands. Otherwise name is the whole base name and
// explicit is false.
func Request(reg *mediatype.Registry, basename string) (name string, t mediatype.MediaType, explicit bool) {
	ext := extname(basename)
	if ext == "" {
		return basename, t, false
	}
	t, ok := reg.Lookup(ext)
	if !ok {
		return basename, mediatype.MediaType{}, false
	}
	return strings.TrimSuffix(basename, ext), t, true
}
