/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"bennypowers.dev/assetpath/metrics"
	"bennypowers.dev/assetpath/resolver"
	"bennypowers.dev/assetpath/snapshot"
	"bennypowers.dev/assetpath/specifier"
)

func TestRecordResolution(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.RecordResolution(resolver.Event{Kind: specifier.KindLogical, Found: true, Duration: time.Millisecond})
	m.RecordResolution(resolver.Event{Kind: specifier.KindLogical, Found: false})
	m.RecordResolution(resolver.Event{Kind: specifier.KindAssetURI, Found: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues("logical", "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues("logical", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues("uri", "found")))
}

func TestRecordSnapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.RecordSnapshot(snapshot.BuildStats{Root: "/assets", Duration: time.Millisecond, Entries: 12})
	m.RecordSnapshot(snapshot.BuildStats{Root: "/assets", Duration: time.Millisecond, Entries: 13})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SnapshotBuilds.WithLabelValues("/assets")))
	assert.Equal(t, 13.0, testutil.ToFloat64(m.SnapshotEntries.WithLabelValues("/assets")))
}

func TestNew_Reuse(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := metrics.New(reg)
	second := metrics.New(reg)

	first.RecordResolution(resolver.Event{Kind: specifier.KindLogical, Found: true})
	assert.Equal(t, 1.0, testutil.ToFloat64(second.ResolutionsTotal.WithLabelValues("logical", "found")))
}

func TestNil(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.RecordResolution(resolver.Event{})
		m.RecordSnapshot(snapshot.BuildStats{})
	})
}
