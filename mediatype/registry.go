/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mediatype

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Sentinel errors for registry configuration.
var (
	// ErrInvalidExtension indicates an extension that is not a single ".name" segment.
	ErrInvalidExtension = errors.New("invalid extension")

	// ErrConflict indicates an extension registered as both terminal and engine.
	ErrConflict = errors.New("extension already registered")
)

// Engine is an extension whose files are compiled into another format, e.g.
// .coffee or .scss. Type is the format the engine produces; a zero Type
// means the engine passes the inner extension's type through (e.g. .erb).
type Engine struct {
	Extension string
	Type      MediaType
}

// Entry describes one terminal type and its extensions, in registration order.
type Entry struct {
	Type       MediaType `json:"type" yaml:"type"`
	Extensions []string  `json:"extensions" yaml:"extensions"`
}

// Registry is the extension table consulted during resolution.
//
// Register and RegisterEngine are not safe for concurrent use; populate the
// registry before handing it to a resolver. Lookups are plain map reads and
// safe to call from many goroutines once population is done.
type Registry struct {
	types     map[string]MediaType
	engines   map[string]Engine
	preferred map[MediaType]string
	entries   []*Entry
	engineExt []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		types:     make(map[string]MediaType),
		engines:   make(map[string]Engine),
		preferred: make(map[MediaType]string),
	}
}

// Default returns a registry populated with the standard web asset types.
func Default() *Registry {
	r := New()
	for _, d := range defaultTypes {
		if err := r.Register(MustParse(d.typ), d.exts...); err != nil {
			panic(err)
		}
	}
	for _, d := range defaultEngines {
		var t MediaType
		if d.typ != "" {
			t = MustParse(d.typ)
		}
		if err := r.RegisterEngine(d.ext, t); err != nil {
			panic(err)
		}
	}
	return r
}

// Register maps extensions onto a terminal type. The first extension ever
// registered for a type becomes its preferred extension.
func (r *Registry) Register(t MediaType, exts ...string) error {
	if t.IsZero() {
		return fmt.Errorf("%w: empty type", ErrInvalid)
	}
	for _, ext := range exts {
		key, err := normalize(ext)
		if err != nil {
			return err
		}
		if _, ok := r.engines[key]; ok {
			return fmt.Errorf("%w: %s is an engine", ErrConflict, key)
		}
		if prev, ok := r.types[key]; ok && prev != t {
			return fmt.Errorf("%w: %s is %s", ErrConflict, key, prev)
		}
		r.types[key] = t
		if _, ok := r.preferred[t]; !ok {
			r.preferred[t] = key
		}
		r.entryFor(t).add(key)
	}
	return nil
}

// RegisterEngine registers an engine extension producing t (zero for pass-through).
func (r *Registry) RegisterEngine(ext string, t MediaType) error {
	key, err := normalize(ext)
	if err != nil {
		return err
	}
	if prev, ok := r.types[key]; ok {
		return fmt.Errorf("%w: %s is %s", ErrConflict, key, prev)
	}
	if _, ok := r.engines[key]; !ok {
		r.engineExt = append(r.engineExt, key)
	}
	r.engines[key] = Engine{Extension: key, Type: t}
	return nil
}

// Lookup returns the terminal type registered for ext.
func (r *Registry) Lookup(ext string) (MediaType, bool) {
	t, ok := r.types[fold(ext)]
	return t, ok
}

// Engine returns the engine registered for ext.
func (r *Registry) Engine(ext string) (Engine, bool) {
	e, ok := r.engines[fold(ext)]
	return e, ok
}

// IsEngine reports whether ext is an engine extension.
func (r *Registry) IsEngine(ext string) bool {
	_, ok := r.engines[fold(ext)]
	return ok
}

// Extension returns the preferred extension for t.
func (r *Registry) Extension(t MediaType) (string, bool) {
	ext, ok := r.preferred[t]
	return ext, ok
}

// Entries returns the terminal types in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, Entry{Type: e.Type, Extensions: append([]string(nil), e.Extensions...)})
	}
	return out
}

// Engines returns the engines in registration order.
func (r *Registry) Engines() []Engine {
	out := make([]Engine, 0, len(r.engineExt))
	for _, ext := range r.engineExt {
		out = append(out, r.engines[ext])
	}
	return out
}

func (r *Registry) entryFor(t MediaType) *Entry {
	for _, e := range r.entries {
		if e.Type == t {
			return e
		}
	}
	e := &Entry{Type: t}
	r.entries = append(r.entries, e)
	return e
}

func (e *Entry) add(ext string) {
	for _, existing := range e.Extensions {
		if existing == ext {
			return
		}
	}
	e.Extensions = append(e.Extensions, ext)
}

func normalize(ext string) (string, error) {
	key := fold(strings.TrimSpace(ext))
	if len(key) < 2 || key[0] != '.' || strings.ContainsAny(key[1:], "./\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}
	return key, nil
}

// fold case-folds an extension. A Caser is stateful, so each call gets its own.
func fold(ext string) string {
	return cases.Fold().String(ext)
}
