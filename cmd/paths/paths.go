/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package paths provides the paths command for assetpath.
package paths

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"github.com/spf13/cobra"

	"bennypowers.dev/assetpath/fs"
	"bennypowers.dev/assetpath/internal/project"
	"bennypowers.dev/assetpath/resolver"
)

// Cmd is the paths cobra command.
var Cmd = &cobra.Command{
	Use:   "paths [pattern...]",
	Short: "List logical paths",
	Long: `List the logical path of every asset in the load paths, with the file it
resolves to. Patterns are globs ("**/*.css") unless --regex is given.

Examples:
  assetpath paths
  assetpath paths application.js "**/*.css"
  assetpath paths --regex 'gallery\.(js|css)$'`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("regex", false, "Treat patterns as regular expressions")
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

func run(cmd *cobra.Command, args []string) error {
	regex, _ := cmd.Flags().GetBool("regex")
	format, _ := cmd.Flags().GetString("format")

	matchers, err := Matchers(args, regex)
	if err != nil {
		return err
	}

	p, err := project.Load(fs.NewOSFileSystem(), project.OptionsFromViper())
	if err != nil {
		return err
	}

	return List(cmd.OutOrStdout(), p.Resolver, matchers, format)
}

// Matchers builds resolver matchers from command-line patterns.
func Matchers(patterns []string, regex bool) ([]resolver.Matcher, error) {
	matchers := make([]resolver.Matcher, 0, len(patterns))
	for _, pattern := range patterns {
		if !regex {
			matchers = append(matchers, resolver.Glob(pattern))
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		matchers = append(matchers, resolver.Regexp(re))
	}
	return matchers, nil
}

type entry struct {
	LogicalPath string `json:"logicalPath"`
	Filename    string `json:"filename"`
}

// List writes the logical paths accepted by matchers to w.
func List(w io.Writer, r *resolver.Resolver, matchers []resolver.Matcher, format string) error {
	switch format {
	case "json":
		entries := []entry{}
		for lp, filename := range r.EachLogicalPath(matchers...) {
			entries = append(entries, entry{LogicalPath: lp, Filename: filename})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "text", "":
		for lp, filename := range r.EachLogicalPath(matchers...) {
			fmt.Fprintf(w, "%-40s %s\n", lp, filename)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q: expected text or json", format)
	}
}
