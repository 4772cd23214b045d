// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/telekom/kestrel/internal/logger"
)

// Validate validates the configuration of a command.
// All problems are reported at once.
func (c *Config) Validate(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)

	if vErr := c.Ping.Validate(); vErr != nil {
		log.ErrorContext(ctx, "The ping configuration is invalid", "error", vErr)
		err = errors.Join(err, fmt.Errorf("%w: %w", ErrInvalidPing, vErr))
	}

	if vErr := c.Traceroute.Validate(); vErr != nil {
		log.ErrorContext(ctx, "The traceroute configuration is invalid", "error", vErr)
		err = errors.Join(err, fmt.Errorf("%w: %w", ErrInvalidTraceroute, vErr))
	}

	if !c.Output.IsValid() {
		log.ErrorContext(ctx, "The output format must be one of text, json or yaml", "output", c.Output)
		err = errors.Join(err, fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output))
	}

	if vErr := c.Telemetry.Validate(ctx); vErr != nil {
		log.ErrorContext(ctx, "The telemetry configuration is invalid")
		err = errors.Join(err, fmt.Errorf("%w: %w", ErrInvalidTelemetry, vErr))
	}

	if err != nil {
		return fmt.Errorf("validation of configuration failed: %w", err)
	}
	return nil
}
