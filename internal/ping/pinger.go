// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/kestrel/internal/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Pinger pings hosts concurrently, one worker goroutine per host.
type Pinger struct {
	reporter Reporter
	metrics  metrics
	ids      *idAllocator
	// newProber creates the prober shared by the workers of one run.
	newProber func(opts Options) prober
}

// Option configures a [Pinger].
type Option func(*Pinger)

// WithReporter sets the reporter receiving results while the run is in progress.
func WithReporter(r Reporter) Option {
	return func(p *Pinger) {
		p.reporter = r
	}
}

// New creates a new [Pinger].
func New(opts ...Option) *Pinger {
	p := &Pinger{
		reporter: nopReporter{},
		metrics:  newMetrics(),
		ids:      newIDAllocator(),
		newProber: func(opts Options) prober {
			return newSession(opts)
		},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Collectors returns the prometheus collectors of the pinger.
func (p *Pinger) Collectors() []prometheus.Collector {
	return p.metrics.GetCollectors()
}

// Run pings every host Count times and blocks until all workers are done.
// Within a host the attempts are sequential; across hosts they are concurrent.
// The returned result lists the hosts in the order they were given.
func (p *Pinger) Run(ctx context.Context, hosts []string, opts Options) (Result, error) {
	if len(hosts) == 0 {
		return nil, fmt.Errorf("at least one host is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ping options: %w", err)
	}

	tracer := trace.SpanFromContext(ctx).TracerProvider().Tracer("ping.Pinger")
	ctx, sp := tracer.Start(ctx, "Run", trace.WithAttributes(
		attribute.Int("ping.hosts.count", len(hosts)),
		attribute.Int("ping.options.count", opts.Count),
		attribute.Stringer("ping.options.timeout", opts.Timeout),
	))
	defer sp.End()

	pr := p.newProber(opts)
	res := make(Result, len(hosts))
	var wg sync.WaitGroup
	for i, host := range hosts {
		w := Worker{
			Name: fmt.Sprintf("ping-%d", i+1),
			Host: host,
			ID:   p.ids.allocate(),
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			res[i] = p.work(ctx, tracer, pr, w, opts)
		}()
	}
	wg.Wait()

	return res, nil
}

// work runs the attempts of a single host.
func (p *Pinger) work(ctx context.Context, tracer trace.Tracer, pr prober, w Worker, opts Options) HostResult {
	ctx, span := tracer.Start(ctx, w.Host, trace.WithAttributes(
		attribute.String("ping.worker", w.Name),
		attribute.String("ping.host", w.Host),
		attribute.Int("ping.identifier", int(w.ID)),
	))
	defer span.End()
	log := logger.FromContext(ctx).With("worker", w.Name, "host", w.Host)

	hr := HostResult{
		Host:       w.Host,
		Worker:     w.Name,
		Identifier: w.ID,
		Replies:    make([]Reply, 0, opts.Count),
	}
	p.reporter.Start(ctx, w)

	for seq := 1; seq <= opts.Count; seq++ {
		r := pr.Probe(ctx, w.Host, w.ID, seq, opts.Timeout)
		hr.Replies = append(hr.Replies, r)
		p.metrics.Set(w.Host, r)
		p.reporter.Reply(ctx, w, r)
		span.AddEvent("Probe finished", trace.WithAttributes(
			attribute.Int("ping.seq", seq),
			attribute.String("ping.status", string(r.Status)),
			attribute.Stringer("ping.rtt", r.RTT),
		))

		if r.Fatal() {
			log.ErrorContext(ctx, "Stopping worker", "seq", seq, "status", r.Status, "error", r.Err)
			span.RecordError(r.Err)
			span.SetStatus(codes.Error, string(r.Status))
			break
		}
		if r.Err != nil {
			log.WarnContext(ctx, "Probe failed", "seq", seq, "error", r.Err)
		}
	}

	hr.Statistics = newStatistics(hr.Replies)
	p.reporter.Done(ctx, w, hr)
	return hr
}

// idAllocator hands out echo identifiers, one per worker.
// Identifiers start at the process id so concurrent kestrel
// processes are unlikely to collide.
type idAllocator struct {
	base uint16
	next atomic.Uint32
}

func newIDAllocator() *idAllocator {
	return &idAllocator{base: uint16(os.Getpid() & 0xffff)} // #nosec G115 // masked to 16 bits
}

func (a *idAllocator) allocate() uint16 {
	return a.base + uint16(a.next.Add(1)) // #nosec G115 // wrapping is intended
}
