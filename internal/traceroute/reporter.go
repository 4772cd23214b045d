// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"net"

	"github.com/telekom/kestrel/internal/report"
)

// Reporter receives the progress of a trace.
type Reporter interface {
	// Start is called once the target is resolved, before the first hop.
	Start(ctx context.Context, target Target, ip net.IP, maxTTL int)
	// Hop is called after every probed hop, in TTL order.
	Hop(ctx context.Context, target Target, hop Hop)
}

type nopReporter struct{}

func (nopReporter) Start(context.Context, Target, net.IP, int) {}
func (nopReporter) Hop(context.Context, Target, Hop)           {}

var _ Reporter = (*TextReporter)(nil)

// TextReporter prints traceroute lines.
type TextReporter struct {
	p *report.Printer
}

// NewTextReporter returns a [TextReporter] printing to p.
func NewTextReporter(p *report.Printer) *TextReporter {
	return &TextReporter{p: p}
}

func (t *TextReporter) Start(_ context.Context, target Target, ip net.IP, maxTTL int) {
	t.p.Printf("traceroute to %s (%s), %d hops max", target.Address, ip, maxTTL)
}

func (t *TextReporter) Hop(_ context.Context, _ Target, hop Hop) {
	t.p.Println(hop.String())
}
