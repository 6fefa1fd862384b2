/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package types provides the types command for assetpath.
package types

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/assetpath/config"
	"bennypowers.dev/assetpath/fs"
	"bennypowers.dev/assetpath/internal/project"
	"bennypowers.dev/assetpath/mediatype"
)

// Cmd is the types cobra command.
var Cmd = &cobra.Command{
	Use:   "types",
	Short: "Show registered extensions and engines",
	Long:  `Show the media types, extensions and preprocessor engines the resolver recognizes, including those added in .config/assetpath.yaml.`,
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, yaml, json")
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	opts := project.OptionsFromViper()
	cfg := config.LoadOrDefault(fs.NewOSFileSystem(), opts.Root)
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	return Write(cmd.OutOrStdout(), reg, format)
}

// Dump is the serialized form of a registry.
type Dump struct {
	Types   []mediatype.Entry `yaml:"types" json:"types"`
	Engines []EngineEntry     `yaml:"engines" json:"engines"`
}

// EngineEntry is one engine of a Dump.
type EngineEntry struct {
	Extension string `yaml:"extension" json:"extension"`
	Type      string `yaml:"type,omitempty" json:"type,omitempty"`
}

// NewDump captures reg.
func NewDump(reg *mediatype.Registry) Dump {
	d := Dump{Types: reg.Entries()}
	for _, e := range reg.Engines() {
		d.Engines = append(d.Engines, EngineEntry{Extension: e.Extension, Type: e.Type.String()})
	}
	return d
}

// Write writes reg to w in format.
func Write(w io.Writer, reg *mediatype.Registry, format string) error {
	d := NewDump(reg)

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("error encoding YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "text", "":
		for _, t := range d.Types {
			fmt.Fprintf(w, "%-32s %s\n", t.Type, strings.Join(t.Extensions, " "))
		}
		fmt.Fprintln(w)
		for _, e := range d.Engines {
			out := e.Type
			if out == "" {
				out = "(pass-through)"
			}
			fmt.Fprintf(w, "%-32s %s\n", e.Extension, out)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q: expected text, yaml or json", format)
	}
}
