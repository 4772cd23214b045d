// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"context"

	"github.com/telekom/kestrel/internal/report"
)

// Reporter receives results while a run is in progress.
// Calls for one worker are sequential; calls for different workers
// happen concurrently.
type Reporter interface {
	// Start is called once before the first attempt of a worker.
	Start(ctx context.Context, w Worker)
	// Reply is called after every attempt, before the next one starts.
	Reply(ctx context.Context, w Worker, r Reply)
	// Done is called once after the last attempt of a worker.
	Done(ctx context.Context, w Worker, res HostResult)
}

type nopReporter struct{}

func (nopReporter) Start(context.Context, Worker)            {}
func (nopReporter) Reply(context.Context, Worker, Reply)     {}
func (nopReporter) Done(context.Context, Worker, HostResult) {}

var _ Reporter = (*TextReporter)(nil)

// TextReporter prints ping lines prefixed with the worker name.
type TextReporter struct {
	p *report.Printer
}

// NewTextReporter returns a [TextReporter] printing to p.
func NewTextReporter(p *report.Printer) *TextReporter {
	return &TextReporter{p: p}
}

func (t *TextReporter) Start(_ context.Context, w Worker) {
	t.p.Printf("[%s] PING %s", w.Name, w.Host)
}

func (t *TextReporter) Reply(_ context.Context, w Worker, r Reply) {
	switch r.Status {
	case StatusReply:
		t.p.Printf("[%s] %d bytes from %s: icmp_seq=%d time=%.2f ms", w.Name, r.Bytes, r.From, r.Seq, milliseconds(r.RTT))
	case StatusTimeout:
		t.p.Printf("[%s] Request timeout for %s: icmp_seq=%d", w.Name, r.Host, r.Seq)
	case StatusCanceled:
		t.p.Printf("[%s] Interrupted", w.Name)
	default:
		t.p.Printf("[%s] FAILED. Socket Error: %v", w.Name, r.Err)
	}
}

func (t *TextReporter) Done(_ context.Context, w Worker, res HostResult) {
	s := res.Statistics
	t.p.Printf("[%s] --- %s ping statistics ---", w.Name, res.Host)
	t.p.Printf("[%s] %d packets transmitted, %d received, %.1f%% packet loss", w.Name, s.Transmitted, s.Received, s.Loss)
	if s.Received > 0 {
		t.p.Printf("[%s] rtt min/avg/max = %.3f/%.3f/%.3f ms",
			w.Name, milliseconds(s.MinRTT), milliseconds(s.AvgRTT), milliseconds(s.MaxRTT))
	}
}
