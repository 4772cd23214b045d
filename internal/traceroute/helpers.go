// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/telekom/kestrel/internal/logger"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// basePort is the first port of the classic traceroute probe range
	basePort = 33434
	// portRange is the number of ports to generate a random port from
	portRange = 101
)

// randomPort returns a random port in the interval [33434, 33535)
func randomPort() int {
	return rand.N(portRange) + basePort // #nosec G404 // math.rand is fine here, we're not doing encryption
}

// logHops logs the hops in a structured format.
func logHops(ctx context.Context, target Target, hops []Hop) {
	log := logger.FromContext(ctx).With("target", target.String())
	for _, hop := range hops {
		log.DebugContext(ctx, hop.String(), "latency", hop.Latency, "reached", hop.Reached)
	}
}

// wrapError wraps an error with a message and logs it.
// It also records the error in the current OpenTelemetry span.
func wrapError(ctx context.Context, err error, msg string, args ...any) error {
	if err == nil {
		return nil
	}
	log := logger.FromContext(ctx)
	span := trace.SpanFromContext(ctx)
	caser := cases.Title(language.English)

	log.ErrorContext(ctx, caser.String(fmt.Sprintf(msg, args...)), "error", err)
	span.SetStatus(codes.Error, fmt.Sprintf(msg, args...))
	span.RecordError(err)
	return fmt.Errorf("%s: %w", fmt.Sprintf(msg, args...), err)
}
