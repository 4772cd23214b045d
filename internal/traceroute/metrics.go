// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics defines the metric collectors of the traceroute client
type metrics struct {
	hops    *prometheus.GaugeVec
	reached *prometheus.GaugeVec
}

// newMetrics initializes metric collectors of the traceroute client
func newMetrics() metrics {
	return metrics{
		hops: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kestrel_traceroute_hops",
				Help: "Number of hops probed to the target in the last trace.",
			},
			[]string{"target"},
		),
		reached: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kestrel_traceroute_reached",
				Help: "Whether the last trace reached the target (1) or hit the hop ceiling (0).",
			},
			[]string{"target"},
		),
	}
}

// GetCollectors returns all metric collectors
func (m *metrics) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.hops,
		m.reached,
	}
}

// Set records the outcome of a trace
func (m *metrics) Set(target Target, hops []Hop) {
	m.hops.WithLabelValues(target.String()).Set(float64(len(hops)))
	reached := 0.0
	if len(hops) > 0 && hops[len(hops)-1].Reached {
		reached = 1
	}
	m.reached.WithLabelValues(target.String()).Set(reached)
}
