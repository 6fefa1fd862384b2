/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package accept parses HTTP Accept-style media type preference lists.
package accept

import (
	"sort"
	"strconv"
	"strings"

	"bennypowers.dev/assetpath/mediatype"
)

// Wildcard matches any type or subtype.
const Wildcard = "*"

// Entry is one media range of an Accept expression.
type Entry struct {
	Type    string
	Subtype string

	// Quality is in [0, 1]. Zero means "not acceptable".
	Quality float64

	// Index is the entry's position in the original expression.
	Index int
}

// List is an Accept expression sorted by descending quality, stable on Index.
type List []Entry

// Any is the list an empty expression parses to.
var Any = List{{Type: Wildcard, Subtype: Wildcard, Quality: 1}}

// String formats the entry as it would appear in a header.
func (e Entry) String() string {
	s := e.Type + "/" + e.Subtype
	if e.Quality != 1 {
		s += ";q=" + strconv.FormatFloat(e.Quality, 'f', -1, 64)
	}
	return s
}

// Match reports whether the entry's media range covers mt. A zero mt is
// treated as application/octet-stream.
func (e Entry) Match(mt mediatype.MediaType) bool {
	if mt.IsZero() {
		mt = mediatype.OctetStream
	}
	return (e.Type == Wildcard || e.Type == mt.Type) &&
		(e.Subtype == Wildcard || e.Subtype == mt.Subtype)
}

// Rank returns the quality of the first entry that matches mt. ok is false
// when nothing matches or the first match has quality zero.
func (l List) Rank(mt mediatype.MediaType) (quality float64, ok bool) {
	i, ok := l.Position(mt)
	if !ok {
		return 0, false
	}
	return l[i].Quality, true
}

// Position returns the index in the sorted list of the first entry that
// matches mt. Lower positions are preferred; equal qualities keep the order
// they were written in.
func (l List) Position(mt mediatype.MediaType) (int, bool) {
	for i, e := range l {
		if e.Match(mt) {
			return i, e.Quality > 0
		}
	}
	return -1, false
}

// Accepts reports whether mt is acceptable.
func (l List) Accepts(mt mediatype.MediaType) bool {
	_, ok := l.Rank(mt)
	return ok
}

// String re-serializes the list in sorted order.
func (l List) String() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// Parse parses a comma separated list of type/subtype ranges with optional
// ";q=" parameters. Malformed ranges are skipped. An expression with no
// usable range is equivalent to "*/*".
func Parse(expr string) List {
	var list List
	for _, segment := range strings.Split(expr, ",") {
		e, ok := parseEntry(segment)
		if !ok {
			continue
		}
		e.Index = len(list)
		list = append(list, e)
	}
	if len(list) == 0 {
		return append(List(nil), Any...)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Quality > list[j].Quality
	})
	return list
}

func parseEntry(segment string) (Entry, bool) {
	params := strings.Split(segment, ";")
	typ, sub, ok := strings.Cut(strings.TrimSpace(params[0]), "/")
	typ = strings.ToLower(strings.TrimSpace(typ))
	sub = strings.ToLower(strings.TrimSpace(sub))
	if !ok || !validToken(typ) || !validToken(sub) {
		return Entry{}, false
	}
	if typ == Wildcard && sub != Wildcard {
		return Entry{}, false
	}

	e := Entry{Type: typ, Subtype: sub, Quality: 1}
	for _, p := range params[1:] {
		key, value, found := strings.Cut(strings.TrimSpace(p), "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || q < 0 || q > 1 {
			return Entry{}, false
		}
		e.Quality = q
	}
	return e, true
}

func validToken(s string) bool {
	return s != "" && !strings.ContainsAny(s, "/ \t")
}
