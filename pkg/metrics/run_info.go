// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	runInfoMetricName = "kestrel_run_info"
	runInfoHelp       = "Metadata of the kestrel run that produced the metrics. The value is the unix time the run finished."
)

// RegisterRunInfo registers a gauge describing the run, so textfiles of
// different runs can be told apart.
func RegisterRunInfo(registry *prometheus.Registry, command, version string, finished time.Time) error {
	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: runInfoMetricName,
			Help: runInfoHelp,
		},
		[]string{"command", "version"},
	)
	info.WithLabelValues(command, version).Set(float64(finished.Unix()))
	return registry.Register(info)
}
