/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mediatype

// Common types.
var (
	JavaScript = MustParse("application/javascript")
	CSS        = MustParse("text/css")
	HTML       = MustParse("text/html")
	JSON       = MustParse("application/json")
	YAML       = MustParse("text/yaml")
)

var defaultTypes = []struct {
	typ  string
	exts []string
}{
	{"application/javascript", []string{".js"}},
	{"text/css", []string{".css"}},
	{"text/html", []string{".html", ".htm"}},
	{"application/json", []string{".json"}},
	{"text/yaml", []string{".yml", ".yaml"}},
	{"application/xml", []string{".xml"}},
	{"text/plain", []string{".txt"}},
	{"image/svg+xml", []string{".svg"}},
	{"image/png", []string{".png"}},
	{"image/gif", []string{".gif"}},
	{"image/jpeg", []string{".jpg", ".jpeg"}},
	{"image/webp", []string{".webp"}},
	{"image/x-icon", []string{".ico"}},
	{"font/woff", []string{".woff"}},
	{"font/woff2", []string{".woff2"}},
	{"font/ttf", []string{".ttf"}},
	{"application/json+sourcemap", []string{".map"}},
}

var defaultEngines = []struct {
	ext string
	typ string
}{
	{".coffee", "application/javascript"},
	{".ejs", "application/javascript"},
	{".eco", "application/javascript"},
	{".jst", "application/javascript"},
	{".scss", "text/css"},
	{".sass", "text/css"},
	{".less", "text/css"},
	{".styl", "text/css"},
	{".str", ""},
	{".erb", ""},
}
