/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package serve provides the serve command for assetpath.
package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/assetpath/config"
	"bennypowers.dev/assetpath/fs"
	"bennypowers.dev/assetpath/internal/project"
	"bennypowers.dev/assetpath/metrics"
	"bennypowers.dev/assetpath/resolver"
	"bennypowers.dev/assetpath/server"
)

// Cmd is the serve cobra command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve assets over HTTP",
	Long: `Serve assets by logical path over HTTP, with resolver queries and metrics.

Routes:
  GET /assets/{logical path}   the resolved file, negotiated with Accept
  GET /resolve?path=...        the resolution as JSON
  GET /paths?match=...         logical paths as JSON
  GET /health                  liveness
  GET /metrics                 Prometheus metrics

Directory listings are cached until a file under a load path changes,
unless --snapshot-ttl or snapshotTTL in the config says otherwise.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("addr", "", "Listen address (default from config, or "+config.DefaultAddr+")")
	_ = viper.BindPFlag(project.KeyAddr, Cmd.Flags().Lookup("addr"))
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, project.OptionsFromViper())
}

// Serve builds a project from opts and serves it until ctx is done.
func Serve(ctx context.Context, opts project.Options) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	if opts.DefaultTTL == "" {
		opts.DefaultTTL = "never"
	}
	opts.OnBuild = m.RecordSnapshot
	opts.ResolverOptions = append(opts.ResolverOptions, resolver.WithEventHook(m.RecordResolution))

	osfs := fs.NewOSFileSystem()
	p, err := project.Load(osfs, opts)
	if err != nil {
		return err
	}

	stopWatch, err := p.Watch(ctx)
	if err != nil {
		return err
	}
	defer stopWatch()

	srv := server.New(server.Config{
		Addr:     p.Config.Addr(),
		Gatherer: reg,
	}, p.Resolver, osfs)
	return srv.Start(ctx)
}
