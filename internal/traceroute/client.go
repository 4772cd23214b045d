// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/kestrel/internal/logger"
	"github.com/telekom/kestrel/internal/netutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var _ Client = (*client)(nil)

// Client is able to run a traceroute to one or more targets.
//
//go:generate go tool moq -out client_moq.go . Client
type Client interface {
	// Run executes the traceroute for the given targets with the specified options.
	// Targets are traced one after another. Returns a Result containing the hops
	// for each target, or the first error that aborted a trace.
	Run(ctx context.Context, targets []Target, opts *Options) (Result, error)
	// Collectors returns the prometheus collectors of the client.
	Collectors() []prometheus.Collector
}

// ClientOption configures a [Client].
type ClientOption func(*client)

// WithReporter sets the reporter receiving hops while a trace is in progress.
func WithReporter(r Reporter) ClientOption {
	return func(c *client) {
		c.reporter = r
	}
}

type client struct {
	// udp is the [tracer] probing single hops over UDP.
	udp      tracer
	resolve  netutil.Resolver
	reporter Reporter
	metrics  metrics
	// randomPort picks the probe port of targets without a configured port.
	randomPort func() int
}

// NewClient creates a new traceroute [Client].
func NewClient(opts ...ClientOption) Client {
	c := &client{
		udp:        newUDPClient(),
		resolve:    netutil.ResolveIPv4,
		reporter:   nopReporter{},
		metrics:    newMetrics(),
		randomPort: randomPort,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *client) Collectors() []prometheus.Collector {
	return c.metrics.GetCollectors()
}

func (c *client) Run(ctx context.Context, targets []Target, opts *Options) (Result, error) {
	if opts == nil {
		def := DefaultOptions()
		opts = &def
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid traceroute options: %w", err)
	}
	for _, target := range targets {
		if err := target.Validate(); err != nil {
			return nil, fmt.Errorf("invalid target %s: %w", target, err)
		}
	}

	tracer := trace.SpanFromContext(ctx).TracerProvider().Tracer("traceroute.client")
	ctx, sp := tracer.Start(ctx, "Run", trace.WithAttributes(
		attribute.Int("traceroute.targets.count", len(targets)),
		attribute.Int("traceroute.options.max_hops", opts.MaxTTL),
		attribute.Stringer("traceroute.options.timeout", opts.Timeout),
	))
	defer sp.End()

	res := make(Result, len(targets))
	for _, target := range targets {
		hops, err := c.trace(ctx, tracer, target, *opts)
		if err != nil {
			return nil, err
		}
		res[target] = hops
	}
	return res, nil
}

// trace resolves the target once and probes its hops.
func (c *client) trace(ctx context.Context, tracer trace.Tracer, target Target, opts Options) ([]Hop, error) {
	log := logger.FromContext(ctx).With("target", target.String())

	ip, err := c.resolve(ctx, target.Address)
	if err != nil {
		return nil, wrapError(ctx, err, "failed to resolve target %s", target.Address)
	}

	port := target.Port
	if port == 0 {
		port = opts.Port
	}
	if port == 0 {
		port = c.randomPort()
	}
	log.DebugContext(ctx, "Starting traceroute", "ip", ip, "port", port, "maxHops", opts.MaxTTL)
	c.reporter.Start(ctx, target, ip, opts.MaxTTL)

	h := &hopper{
		client:     c.udp,
		otelTracer: tracer,
		reporter:   c.reporter,
		target:     target,
		dst:        ip,
		port:       port,
		opts:       opts,
	}
	hops, err := h.run(ctx)
	if err != nil {
		return nil, fmt.Errorf("traceroute to %s aborted at hop %d: %w", target, len(hops)+1, err)
	}

	c.metrics.Set(target, hops)
	logHops(ctx, target, hops)
	return hops, nil
}
