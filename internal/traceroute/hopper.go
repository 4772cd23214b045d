// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"net"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is an interface that defines the methods required for probing a single hop.
//
//go:generate go tool moq -out tracer_moq.go . tracer
type tracer interface {
	// probeHop sends one probe with the given TTL towards dst:port and returns
	// the hop that answered. A hop without response is a wildcard, not an error.
	probeHop(ctx context.Context, dst net.IP, port, ttl int, opts Options) (Hop, error)
}

// hopper is responsible for managing the execution of traceroute hops for a target.
type hopper struct {
	client     tracer
	otelTracer trace.Tracer
	reporter   Reporter
	target     Target
	// dst is the resolved address of the target.
	dst net.IP
	// port is the probe port used for every hop of the trace.
	port int
	opts Options
}

// run probes the hops of the target one after another, starting at TTL 1.
// It stops once the destination answered or the hop ceiling is exceeded.
// The first hop error aborts the trace.
func (h *hopper) run(ctx context.Context) ([]Hop, error) {
	hops := make([]Hop, 0, h.opts.MaxTTL)
	for ttl := 1; ttl <= h.opts.MaxTTL; ttl++ {
		hop, err := h.hop(ctx, ttl)
		if err != nil {
			return hops, err
		}

		hops = append(hops, hop)
		h.reporter.Hop(ctx, h.target, hop)
		if hop.Reached {
			break
		}
	}
	return hops, nil
}

// hop probes a single TTL within its own span.
func (h *hopper) hop(ctx context.Context, ttl int) (Hop, error) {
	ctx, hopSpan := h.otelTracer.Start(ctx, h.target.String(), trace.WithAttributes(
		attribute.Stringer("traceroute.target.address", h.target),
		attribute.Stringer("traceroute.target.ip", h.dst),
		attribute.Int("traceroute.target.port", h.port),
		attribute.Int("traceroute.target.ttl", ttl),
	))
	defer hopSpan.End()

	hop, err := h.client.probeHop(ctx, h.dst, h.port, ttl, h.opts)
	if err != nil {
		hopSpan.RecordError(err)
		hopSpan.SetStatus(codes.Error, "Failed to execute hop trace")
		return Hop{}, err
	}
	hopSpan.SetAttributes(
		attribute.Bool("traceroute.target.reached", hop.Reached),
		attribute.Bool("traceroute.target.wildcard", hop.Wildcard()),
	)
	return hop, nil
}
