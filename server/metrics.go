// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "sculpt"

// Metrics are the hub's Prometheus collectors.
type Metrics struct {
	sessions           prometheus.Gauge
	inbound            *prometheus.CounterVec
	dropped            prometheus.Counter
	blobs              prometheus.Counter
	blocks             prometheus.Counter
	generations        prometheus.Counter
	generationFailures prometheus.Counter
	generationRejected prometheus.Counter
	generationSeconds  prometheus.Histogram
	frameSeconds       prometheus.Histogram
}

// NewMetrics creates metrics and registers them with registerer, if not nil.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "sessions",
			Help:      "Number of connected sessions.",
		}),
		inbound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "inbound_messages_total",
			Help:      "Inbound messages by type.",
		}, []string{"type"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "outbound_dropped_total",
			Help:      "Outbound messages dropped due to congestion.",
		}),
		blobs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "blobs_placed_total",
			Help:      "Terraforming blobs placed.",
		}),
		blocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "blocks_committed_total",
			Help:      "Level blocks committed.",
		}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generations_total",
			Help:      "Terrain generations started.",
		}),
		generationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generation_failures_total",
			Help:      "Terrain generations that failed.",
		}),
		generationRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generation_rejected_total",
			Help:      "Terrain generation requests rejected.",
		}),
		generationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "generation_seconds",
			Help:      "Time to synthesize terrain.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "frame_seconds",
			Help:      "Time to update all sessions for one frame.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
	}

	if registerer != nil {
		registerer.MustRegister(
			m.sessions,
			m.inbound,
			m.dropped,
			m.blobs,
			m.blocks,
			m.generations,
			m.generationFailures,
			m.generationRejected,
			m.generationSeconds,
			m.frameSeconds,
		)
	}
	return m
}
