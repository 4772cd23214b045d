// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/kestrel/internal/logger"
	"github.com/telekom/kestrel/pkg/config"
	"github.com/telekom/kestrel/pkg/metrics"
)

// shutdownTimeout bounds the flush of pending spans after a run.
const shutdownTimeout = 5 * time.Second

// telemetry holds the metrics and tracing of a single command run.
type telemetry struct {
	provider metrics.Provider
	config   *config.Config
	command  string
	version  string
}

// startTelemetry creates the metrics registry of the run and initializes
// tracing if an exporter is configured.
func startTelemetry(ctx context.Context, cfg *config.Config, command, version string) (*telemetry, error) {
	provider := metrics.New(cfg.Telemetry, version)
	if cfg.HasTelemetry() {
		if err := provider.InitTracing(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}
	return &telemetry{
		provider: provider,
		config:   cfg,
		command:  command,
		version:  version,
	}, nil
}

// register adds the collectors of the command to the registry.
func (t *telemetry) register(cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := t.provider.GetRegistry().Register(c); err != nil {
			return fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return nil
}

// finish writes the metrics textfile and flushes pending spans.
// It runs even if the run itself was canceled.
func (t *telemetry) finish(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if t.config.Telemetry.Textfile != "" {
		if rErr := metrics.RegisterRunInfo(t.provider.GetRegistry(), t.command, t.version, time.Now()); rErr != nil {
			log.ErrorContext(ctx, "Failed to register run info", "error", rErr)
			err = errors.Join(err, rErr)
		}
		err = errors.Join(err, t.provider.WriteTextfile(ctx))
	}

	return errors.Join(err, t.provider.Shutdown(ctx))
}
