/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for assetpath.
package resolve

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"bennypowers.dev/assetpath/fs"
	"bennypowers.dev/assetpath/internal/project"
	"bennypowers.dev/assetpath/resolver"
)

// Cmd is the resolve cobra command.
var Cmd = &cobra.Command{
	Use:   "resolve <path>...",
	Short: "Resolve logical paths to files",
	Long: `Resolve logical paths, absolute paths or asset URIs against the load paths.

Examples:
  # Print the asset URI of a logical path
  assetpath resolve -p app/assets/javascripts coffee/foo.js

  # Pick between foo.js and foo.css by preference
  assetpath resolve --accept "text/css, */*;q=0.8" foo

  # Print bare filenames
  assetpath resolve --compat gallery.js`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("accept", "", "Accept expression used to choose between candidates")
	Cmd.Flags().StringArray("load-path", nil, "Only search this load path (repeatable)")
	Cmd.Flags().Bool("compat", false, "Print filenames instead of asset URIs")
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

// Options controls output of the resolve command.
type Options struct {
	Accept    string
	LoadPaths []string
	Compat    bool
	Format    string
}

func run(cmd *cobra.Command, args []string) error {
	accept, _ := cmd.Flags().GetString("accept")
	loadPaths, _ := cmd.Flags().GetStringArray("load-path")
	compat, _ := cmd.Flags().GetBool("compat")
	format, _ := cmd.Flags().GetString("format")

	p, err := project.Load(fs.NewOSFileSystem(), project.OptionsFromViper())
	if err != nil {
		return err
	}

	return Resolve(cmd.OutOrStdout(), p, args, Options{
		Accept:    accept,
		LoadPaths: loadPaths,
		Compat:    compat,
		Format:    format,
	})
}

type resolution struct {
	Request  string `json:"request"`
	Found    bool   `json:"found"`
	URI      string `json:"uri,omitempty"`
	Filename string `json:"filename,omitempty"`
	Type     string `json:"type,omitempty"`
}

// Resolve resolves each request and writes the results to w. It returns an
// error naming the requests that were not found, after writing the rest.
func Resolve(w io.Writer, p *project.Project, requests []string, opts Options) error {
	loadPaths := make([]string, 0, len(opts.LoadPaths))
	for _, lp := range opts.LoadPaths {
		if !filepath.IsAbs(lp) {
			lp = filepath.Join(p.Root, lp)
		}
		loadPaths = append(loadPaths, lp)
	}
	ropts := resolver.Options{Accept: opts.Accept, Compat: opts.Compat}
	if len(loadPaths) > 0 {
		ropts.LoadPaths = loadPaths
	}

	var results []resolution
	var missing []string
	for _, request := range requests {
		res, ok := p.Resolver.Resolve(request, ropts)
		if !ok {
			missing = append(missing, request)
			results = append(results, resolution{Request: request})
			continue
		}
		out := resolution{Request: request, Found: true, Filename: res.File()}
		if uri, isURI := res.(resolver.TypedURI); isURI {
			out.URI = uri.URI
			out.Type = uri.Type.String()
		}
		results = append(results, out)
	}

	switch opts.Format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	case "text", "":
		for _, r := range results {
			if !r.Found {
				continue
			}
			if r.URI != "" {
				fmt.Fprintln(w, r.URI)
			} else {
				fmt.Fprintln(w, r.Filename)
			}
		}
	default:
		return fmt.Errorf("unknown format %q: expected text or json", opts.Format)
	}

	switch len(missing) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("asset not found: %s", missing[0])
	default:
		return fmt.Errorf("%d assets not found: %v", len(missing), missing)
	}
}
