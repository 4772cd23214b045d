// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/telekom/kestrel/internal/ping"
	"github.com/telekom/kestrel/internal/report"
	"github.com/telekom/kestrel/internal/traceroute"
	"github.com/telekom/kestrel/pkg/metrics"
)

type Config struct {
	// Ping is the configuration of the ping command
	Ping ping.Options `yaml:"ping" mapstructure:"ping"`
	// Traceroute is the configuration of the traceroute command
	Traceroute traceroute.Options `yaml:"traceroute" mapstructure:"traceroute"`
	// Output is the format results are printed in
	Output report.Format `yaml:"output" mapstructure:"output"`
	// TargetsFile is an optional YAML file listing additional targets
	TargetsFile string `yaml:"targetsFile" mapstructure:"targetsFile"`
	// Telemetry is the configuration for the telemetry
	Telemetry metrics.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Ping:       ping.DefaultOptions(),
		Traceroute: traceroute.DefaultOptions(),
		Output:     report.FormatText,
		Telemetry:  metrics.Config{Exporter: metrics.NOOP},
	}
}

// HasTelemetry returns true if traces are recorded
func (c *Config) HasTelemetry() bool {
	return c.Telemetry.Exporter.String() != metrics.NOOP.String()
}
