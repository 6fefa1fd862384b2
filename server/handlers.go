/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	assetfs "bennypowers.dev/assetpath/fs"
	"bennypowers.dev/assetpath/internal/logger"
	"bennypowers.dev/assetpath/mediatype"
	"bennypowers.dev/assetpath/resolver"
	"bennypowers.dev/assetpath/specifier"
)

// Handler serves resolver results over HTTP.
type Handler struct {
	resolver *resolver.Resolver
	fsys     assetfs.FileSystem
}

// NewHandler creates a handler reading files through fsys.
func NewHandler(r *resolver.Resolver, fsys assetfs.FileSystem) *Handler {
	return &Handler{resolver: r, fsys: fsys}
}

// Resolution is the JSON form of a resolution.
type Resolution struct {
	URI      string `json:"uri,omitempty"`
	Filename string `json:"filename"`
	Type     string `json:"type,omitempty"`
}

// LogicalPath is one entry of the /paths listing.
type LogicalPath struct {
	LogicalPath string `json:"logicalPath"`
	Filename    string `json:"filename"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Asset serves the file the logical path after /assets/ resolves to,
// negotiating on the request's Accept header.
func (h *Handler) Asset(w http.ResponseWriter, r *http.Request) {
	logical := chi.URLParam(r, "*")
	if !specifier.Parse(logical).IsLogical() {
		http.NotFound(w, r)
		return
	}
	uri, ok := h.resolver.ResolveURI(logical, resolver.Options{Accept: r.Header.Get("Accept")})
	if !ok {
		http.NotFound(w, r)
		return
	}

	content, modTime, err := h.open(uri.Filename)
	if err != nil {
		logger.Warn("cannot read %s: %v", uri.Filename, err)
		http.Error(w, "cannot read asset", http.StatusInternalServerError)
		return
	}
	if c, ok := content.(io.Closer); ok {
		defer c.Close()
	}

	typ := uri.Type
	if typ.IsZero() {
		typ = mediatype.OctetStream
	}
	w.Header().Set("Content-Type", typ.String())
	http.ServeContent(w, r, filepath.Base(uri.Filename), modTime, content)
}

// Resolve answers /resolve?path=&accept=&compat=.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	request := q.Get("path")
	if request == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing path parameter"})
		return
	}
	compat, _ := strconv.ParseBool(q.Get("compat"))

	res, ok := h.resolver.Resolve(request, resolver.Options{
		Accept:    q.Get("accept"),
		LoadPaths: q["loadPath"],
		Compat:    compat,
	})
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "asset not found: " + request})
		return
	}
	writeJSON(w, http.StatusOK, NewResolution(res))
}

// Paths answers /paths?match=<glob>. The match parameter may repeat.
func (h *Handler) Paths(w http.ResponseWriter, r *http.Request) {
	var matchers []resolver.Matcher
	for _, pattern := range r.URL.Query()["match"] {
		matchers = append(matchers, resolver.Glob(pattern))
	}

	out := []LogicalPath{}
	for lp, filename := range h.resolver.EachLogicalPath(matchers...) {
		out = append(out, LogicalPath{LogicalPath: lp, Filename: filename})
	}
	writeJSON(w, http.StatusOK, out)
}

// NewResolution converts a resolver result to its JSON form.
func NewResolution(res resolver.Result) Resolution {
	switch v := res.(type) {
	case resolver.TypedURI:
		return Resolution{URI: v.URI, Filename: v.Filename, Type: v.Type.String()}
	default:
		return Resolution{Filename: res.File()}
	}
}

func (h *Handler) open(filename string) (io.ReadSeeker, time.Time, error) {
	info, err := h.fsys.Stat(filename)
	if err != nil {
		return nil, time.Time{}, err
	}
	f, err := h.fsys.Open(filename)
	if err != nil {
		return nil, time.Time{}, err
	}
	if rs, ok := f.(io.ReadSeeker); ok {
		return rs, info.ModTime(), nil
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, time.Time{}, err
	}
	return bytes.NewReader(data), info.ModTime(), nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to encode response: %v", err)
	}
}
