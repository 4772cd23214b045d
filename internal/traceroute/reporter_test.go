// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/telekom/kestrel/internal/report"
)

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(report.NewPrinter(&buf))
	target := Target{Address: "example.com"}

	r.Start(t.Context(), target, net.IPv4(93, 184, 216, 34), 30)
	r.Hop(t.Context(), target, Hop{TTL: 1, IP: net.IPv4(192, 168, 0, 1)})
	r.Hop(t.Context(), target, Hop{TTL: 2})
	r.Hop(t.Context(), target, Hop{TTL: 3, IP: net.IPv4(93, 184, 216, 34), Reached: true})

	want := "traceroute to example.com (93.184.216.34), 30 hops max\n" +
		"1    192.168.0.1\n" +
		"2    *\n" +
		"3    93.184.216.34\n"
	assert.Equal(t, want, buf.String())
}
