// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"fmt"

	"github.com/telekom/kestrel/internal/logger"
)

// Config holds the telemetry configuration of a run.
type Config struct {
	// Exporter is the otlp exporter used to export the traces
	Exporter Exporter `json:"exporter" yaml:"exporter" mapstructure:"exporter"`
	// Url is the Url of the collector to which the traces are exported
	Url string `json:"url,omitempty" yaml:"url,omitempty" mapstructure:"url"`
	// Token is the token used to authenticate with the collector
	Token string `json:"-" yaml:"-" mapstructure:"token"`
	// TLS holds the tls configuration
	TLS TLSConfig `json:"tls" yaml:"tls" mapstructure:"tls"`
	// Textfile is the path the prometheus metrics are written to after a run.
	// Nothing is written when empty.
	Textfile string `json:"textfile,omitempty" yaml:"textfile,omitempty" mapstructure:"textfile"`
}

type TLSConfig struct {
	// Enabled is a flag to enable or disable the tls
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	// CertPath is the path to the tls certificate file.
	// This is only required if the otel backend uses custom TLS certificates.
	CertPath string `json:"certPath,omitempty" yaml:"certPath,omitempty" mapstructure:"certPath"`
}

func (c *Config) Validate(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if err := c.Exporter.Validate(); err != nil {
		log.ErrorContext(ctx, "Invalid exporter", "error", err)
		return err
	}

	if c.Exporter.IsExporting() && c.Url == "" {
		log.ErrorContext(ctx, "Url is required for otlp exporter", "exporter", c.Exporter)
		return fmt.Errorf("url is required for otlp exporter %q", c.Exporter)
	}
	return nil
}
