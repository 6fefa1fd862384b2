/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"bennypowers.dev/assetpath/mediatype"
)

// Result is a successful resolution. It is either a LegacyPath or a TypedURI.
type Result interface {
	// File returns the absolute path of the resolved file.
	File() string

	// String returns the path for a LegacyPath and the URI for a TypedURI.
	String() string

	result()
}

// LegacyPath is the result of a compat resolution: the bare filename.
type LegacyPath string

// File returns the path.
func (p LegacyPath) File() string { return string(p) }

func (p LegacyPath) String() string { return string(p) }

func (LegacyPath) result() {}

// TypedURI is the result of a non-compat resolution.
type TypedURI struct {
	// URI is file://<Filename>?type=<Type>, without the query when Type is zero.
	URI      string              `json:"uri"`
	Filename string              `json:"filename"`
	Type     mediatype.MediaType `json:"type"`
}

// File returns Filename.
func (u TypedURI) File() string { return u.Filename }

func (u TypedURI) String() string { return u.URI }

func (TypedURI) result() {}
