/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package server serves resolved assets and resolver queries over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	assetfs "bennypowers.dev/assetpath/fs"
	"bennypowers.dev/assetpath/internal/logger"
	"bennypowers.dev/assetpath/resolver"
)

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:9292".
	Addr string

	// Gatherer serves /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer
}

// Server is the HTTP asset server.
type Server struct {
	server       *http.Server
	shutdownOnce sync.Once
}

// New creates a server in a stopped state. Call Start to begin serving.
func New(cfg Config, r *resolver.Resolver, fsys assetfs.FileSystem) *Server {
	return &Server{
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewRouter(NewHandler(r, fsys), cfg.Gatherer),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
	}
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens on the configured address and blocks until ctx is
// cancelled or the server fails. Cancellation shuts the server down
// gracefully and returns nil.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("Serving assets on http://%s/assets/", ln.Addr())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		// The cancelled ctx would abort the shutdown immediately.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("asset server failed: %w", err)
	}
}

// Stop gracefully shuts the server down. It is safe to call more than once.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("asset server shutdown error: %w", err)
			return
		}
		logger.Debug("asset server stopped")
	})
	return shutdownErr
}
