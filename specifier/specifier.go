/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier classifies asset requests and builds asset URIs.
package specifier

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"bennypowers.dev/assetpath/mediatype"
)

// Kind indicates the type of specifier.
type Kind int

const (
	// KindInvalid is an empty request or one that escapes its load path.
	KindInvalid Kind = iota
	// KindLogical is a logical asset name such as "coffee/foo.js".
	KindLogical
	// KindAbsolute is an absolute filesystem path.
	KindAbsolute
	// KindAssetURI is a file:// asset URI.
	KindAssetURI
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLogical:
		return "logical"
	case KindAbsolute:
		return "absolute"
	case KindAssetURI:
		return "uri"
	default:
		return "invalid"
	}
}

// Specifier represents a parsed asset request.
type Specifier struct {
	// Kind is the type of specifier.
	Kind Kind

	// Path is the cleaned logical path (slash separated) for KindLogical, or
	// the cleaned absolute filesystem path for KindAbsolute and KindAssetURI.
	Path string

	// Type is the ?type= parameter of an asset URI, if any.
	Type string

	// Raw is the original specifier string.
	Raw string
}

// uriPattern matches file:///abs/path and file:///abs/path?query
var uriPattern = regexp.MustCompile(`^file://(/[^?]*)(?:\?(.*))?$`)

// URIPrefix starts every asset URI.
const URIPrefix = "file://"

// Parse parses a specifier string into a Specifier struct. No filesystem
// access happens here.
func Parse(spec string) *Specifier {
	if strings.HasPrefix(spec, URIPrefix) {
		matches := uriPattern.FindStringSubmatch(spec)
		if len(matches) != 3 {
			return &Specifier{Kind: KindInvalid, Raw: spec}
		}
		s := &Specifier{
			Kind: KindAssetURI,
			Path: filepath.Clean(filepath.FromSlash(matches[1])),
			Raw:  spec,
		}
		s.Type = queryType(matches[2])
		return s
	}

	if filepath.IsAbs(spec) {
		return &Specifier{
			Kind: KindAbsolute,
			Path: filepath.Clean(spec),
			Raw:  spec,
		}
	}

	logical := path.Clean(filepath.ToSlash(spec))
	if spec == "" || logical == "." || logical == ".." || strings.HasPrefix(logical, "../") || strings.HasPrefix(logical, "/") {
		return &Specifier{Kind: KindInvalid, Raw: spec}
	}
	return &Specifier{
		Kind: KindLogical,
		Path: logical,
		Raw:  spec,
	}
}

// queryType returns the raw type parameter of an asset URI query. BuildURI
// writes types unescaped, so "image/svg+xml" must keep its '+'.
func queryType(query string) string {
	for _, param := range strings.Split(query, "&") {
		if value, ok := strings.CutPrefix(param, "type="); ok {
			return value
		}
	}
	return ""
}

// IsLogical returns true if this is a logical asset name.
func (s *Specifier) IsLogical() bool {
	return s.Kind == KindLogical
}

// IsAbsolute returns true if this is an absolute path or asset URI.
func (s *Specifier) IsAbsolute() bool {
	return s.Kind == KindAbsolute || s.Kind == KindAssetURI
}

// BuildURI returns the asset URI of filename. The path is used verbatim;
// the type parameter is omitted when t is zero.
func BuildURI(filename string, t mediatype.MediaType) string {
	uri := URIPrefix + filepath.ToSlash(filename)
	if !t.IsZero() {
		uri += "?type=" + t.String()
	}
	return uri
}
