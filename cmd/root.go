/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for assetpath.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/assetpath/cmd/mcp"
	"bennypowers.dev/assetpath/cmd/paths"
	"bennypowers.dev/assetpath/cmd/resolve"
	"bennypowers.dev/assetpath/cmd/serve"
	"bennypowers.dev/assetpath/cmd/types"
	"bennypowers.dev/assetpath/cmd/version"
	"bennypowers.dev/assetpath/internal/logger"
	"bennypowers.dev/assetpath/internal/project"
)

var rootCmd = &cobra.Command{
	Use:   "assetpath",
	Short: "Resolve logical asset paths against load paths",
	Long: `assetpath finds asset files by logical name across an ordered list of load paths,
negotiating between candidates by extension, preprocessor engine and Accept type.

Load paths come from --path flags or from .config/assetpath.yaml in the project root.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(viper.GetBool(project.KeyVerbose))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringArrayP("path", "p", nil, "Load path, relative to --root (repeatable, supports globs)")
	rootCmd.PersistentFlags().String("root", ".", "Project root containing .config/assetpath.yaml")
	rootCmd.PersistentFlags().String("snapshot-ttl", "", "How long directory listings are reused (e.g. 2s, never)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log resolution details to stderr")

	_ = viper.BindPFlag(project.KeyPaths, rootCmd.PersistentFlags().Lookup("path"))
	_ = viper.BindPFlag(project.KeyRoot, rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag(project.KeySnapshotTTL, rootCmd.PersistentFlags().Lookup("snapshot-ttl"))
	_ = viper.BindPFlag(project.KeyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))

	viper.SetEnvPrefix("ASSETPATH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(paths.Cmd)
	rootCmd.AddCommand(types.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(mcp.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
