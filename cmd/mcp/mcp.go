/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcp provides the mcp command for assetpath.
package mcp

import (
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/assetpath/fs"
	"bennypowers.dev/assetpath/internal/logger"
	"bennypowers.dev/assetpath/internal/project"
	"bennypowers.dev/assetpath/mcpserver"
)

// Cmd is the mcp cobra command.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run a Model Context Protocol server over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout exposing the
resolve_asset and list_logical_paths tools.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol.
	logger.SetOutput(io.Discard)

	opts := project.OptionsFromViper()
	opts.DefaultTTL = "never"
	p, err := project.Load(fs.NewOSFileSystem(), opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	stopWatch, err := p.Watch(ctx)
	if err != nil {
		return err
	}
	defer stopWatch()

	return mcpserver.Run(ctx, p.Resolver)
}
