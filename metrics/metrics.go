/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package metrics exposes Prometheus metrics for resolutions and
// directory snapshots.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"bennypowers.dev/assetpath/resolver"
	"bennypowers.dev/assetpath/snapshot"
)

// Metrics tracks resolver activity. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	// ResolutionsTotal counts Resolve calls by request kind and result.
	ResolutionsTotal *prometheus.CounterVec

	// ResolutionDuration tracks Resolve latency by request kind.
	ResolutionDuration *prometheus.HistogramVec

	// SnapshotBuilds counts snapshot constructions by load path.
	SnapshotBuilds *prometheus.CounterVec

	// SnapshotDuration tracks snapshot construction time.
	SnapshotDuration prometheus.Histogram

	// SnapshotEntries is the entry count of the latest snapshot per load path.
	SnapshotEntries *prometheus.GaugeVec
}

// New creates metrics with the assetpath_ prefix and registers them with
// reg. Collectors that are already registered are reused, so New may be
// called more than once against the same registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetpath_resolutions_total",
				Help: "Total asset resolutions by request kind and result",
			},
			[]string{"kind", "result"}, // result: "found", "not_found"
		),
		ResolutionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assetpath_resolution_duration_seconds",
				Help:    "Asset resolution duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"kind"},
		),
		SnapshotBuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetpath_snapshot_builds_total",
				Help: "Total directory snapshot builds by load path",
			},
			[]string{"root"},
		),
		SnapshotDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assetpath_snapshot_build_duration_seconds",
				Help:    "Directory snapshot build duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		SnapshotEntries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "assetpath_snapshot_entries",
				Help: "Files and directories in the latest snapshot of each load path",
			},
			[]string{"root"},
		),
	}

	m.ResolutionsTotal = registerOrReuse(reg, m.ResolutionsTotal).(*prometheus.CounterVec)
	m.ResolutionDuration = registerOrReuse(reg, m.ResolutionDuration).(*prometheus.HistogramVec)
	m.SnapshotBuilds = registerOrReuse(reg, m.SnapshotBuilds).(*prometheus.CounterVec)
	m.SnapshotDuration = registerOrReuse(reg, m.SnapshotDuration).(prometheus.Histogram)
	m.SnapshotEntries = registerOrReuse(reg, m.SnapshotEntries).(*prometheus.GaugeVec)

	return m
}

// RecordResolution records one Resolve call. It matches the signature of
// resolver.WithEventHook.
func (m *Metrics) RecordResolution(e resolver.Event) {
	if m == nil {
		return
	}
	result := "not_found"
	if e.Found {
		result = "found"
	}
	kind := e.Kind.String()
	m.ResolutionsTotal.WithLabelValues(kind, result).Inc()
	m.ResolutionDuration.WithLabelValues(kind).Observe(e.Duration.Seconds())
}

// RecordSnapshot records one snapshot build. It matches the signature of
// snapshot.Cache.OnBuild.
func (m *Metrics) RecordSnapshot(s snapshot.BuildStats) {
	if m == nil {
		return
	}
	m.SnapshotBuilds.WithLabelValues(s.Root).Inc()
	m.SnapshotDuration.Observe(s.Duration.Seconds())
	m.SnapshotEntries.WithLabelValues(s.Root).Set(float64(s.Entries))
}

// registerOrReuse registers a collector with the given registerer.
// If the collector is already registered, it returns the existing one.
// Panics on non-AlreadyRegisteredError failures.
func registerOrReuse(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}
