/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mediatype maps file extensions to content types and records which
// extensions are transform engines.
package mediatype

import (
	"errors"
	"fmt"
	"strings"
)

// MediaType is a registered type/subtype pair, e.g. application/javascript.
// The zero value means "no type".
type MediaType struct {
	Type    string
	Subtype string
}

// OctetStream is used when an untyped file has to be matched against an
// Accept expression.
var OctetStream = MediaType{Type: "application", Subtype: "octet-stream"}

// ErrInvalid indicates a string that is not of the form type/subtype.
var ErrInvalid = errors.New("invalid media type")

// Parse parses "type/subtype". Parameters after ';' are ignored and both
// parts are lowercased.
func Parse(s string) (MediaType, error) {
	s, _, _ = strings.Cut(s, ";")
	t, sub, ok := strings.Cut(strings.TrimSpace(s), "/")
	t = strings.ToLower(strings.TrimSpace(t))
	sub = strings.ToLower(strings.TrimSpace(sub))
	if !ok || t == "" || sub == "" || strings.Contains(sub, "/") {
		return MediaType{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return MediaType{Type: t, Subtype: sub}, nil
}

// MustParse is like Parse but panics on error. For static tables.
func MustParse(s string) MediaType {
	mt, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return mt
}

// String returns "type/subtype", or "" for the zero value.
func (m MediaType) String() string {
	if m.IsZero() {
		return ""
	}
	return m.Type + "/" + m.Subtype
}

// IsZero reports whether m is the "no type" value.
func (m MediaType) IsZero() bool {
	return m.Type == "" && m.Subtype == ""
}

// MarshalText implements encoding.TextMarshaler.
func (m MediaType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MediaType) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*m = MediaType{}
		return nil
	}
	mt, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = mt
	return nil
}
