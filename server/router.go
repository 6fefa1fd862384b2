/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bennypowers.dev/assetpath/internal/logger"
)

// NewRouter creates the chi router with all middleware and routes.
//
// Routes:
//   - GET /assets/* - the file a logical path resolves to
//   - GET /resolve - resolution as JSON
//   - GET /paths - logical paths as JSON
//   - GET /health - liveness probe
//   - GET /metrics - Prometheus metrics, when a gatherer is given
func NewRouter(h *Handler, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/assets/*", h.Asset)
	r.Get("/resolve", h.Resolve)
	r.Get("/paths", h.Paths)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// requestLogger logs each request at debug level with its status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.Debug("%s %s %d %dB %s [%s]",
			r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start),
			middleware.GetReqID(r.Context()))
	})
}
