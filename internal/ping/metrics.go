// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics defines the metric collectors of the pinger
type metrics struct {
	rtt      *prometheus.HistogramVec
	attempts *prometheus.CounterVec
}

// newMetrics initializes metric collectors of the pinger
func newMetrics() metrics {
	return metrics{
		rtt: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kestrel_ping_rtt_seconds",
				Help:    "Round-trip time of echo replies in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"host"},
		),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kestrel_ping_attempts_total",
				Help: "Total number of probe attempts per host and outcome.",
			},
			[]string{"host", "status"},
		),
	}
}

// GetCollectors returns all metric collectors
func (m *metrics) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.rtt,
		m.attempts,
	}
}

// Set records the outcome of one attempt
func (m *metrics) Set(host string, r Reply) {
	m.attempts.WithLabelValues(host, string(r.Status)).Inc()
	if r.Status == StatusReply {
		m.rtt.WithLabelValues(host).Observe(r.RTT.Seconds())
	}
}
