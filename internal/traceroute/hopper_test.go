// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/kestrel/internal/netutil"
	"go.opentelemetry.io/otel/trace/noop"
)

// recordingReporter records the reported traces.
type recordingReporter struct {
	mu     sync.Mutex
	starts []Target
	hops   []Hop
}

func (r *recordingReporter) Start(_ context.Context, target Target, _ net.IP, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts = append(r.starts, target)
}

func (r *recordingReporter) Hop(_ context.Context, _ Target, hop Hop) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hops = append(r.hops, hop)
}

// routerIP returns the address of the router at the given distance.
func routerIP(ttl int) net.IP {
	return net.IPv4(10, 0, 0, byte(ttl)).To4()
}

// pathTo simulates a network path where the destination is distance hops away.
func pathTo(dst net.IP, distance int) func(context.Context, net.IP, int, int, Options) (Hop, error) {
	return func(_ context.Context, _ net.IP, _, ttl int, _ Options) (Hop, error) {
		if ttl >= distance {
			return Hop{TTL: ttl, IP: dst, Reached: true}, nil
		}
		return Hop{TTL: ttl, IP: routerIP(ttl)}, nil
	}
}

func newTestHopper(tr tracer, rep Reporter, maxTTL int) *hopper {
	return &hopper{
		client:     tr,
		otelTracer: noop.NewTracerProvider().Tracer("test"),
		reporter:   rep,
		target:     Target{Address: "dst.example"},
		dst:        net.IPv4(192, 0, 2, 1).To4(),
		port:       33434,
		opts:       Options{MaxTTL: maxTTL, Timeout: time.Millisecond},
	}
}

func TestHopper_run_StopsAtDestination(t *testing.T) {
	dst := net.IPv4(192, 0, 2, 1).To4()
	mock := &tracerMock{probeHopFunc: pathTo(dst, 5)}
	rep := &recordingReporter{}
	h := newTestHopper(mock, rep, DefaultMaxTTL)

	hops, err := h.run(t.Context())
	require.NoError(t, err)

	require.Len(t, hops, 5)
	for i, hop := range hops[:4] {
		assert.Equal(t, i+1, hop.TTL)
		assert.Equal(t, routerIP(i+1), hop.IP)
		assert.False(t, hop.Reached)
	}
	assert.True(t, hops[4].Reached)
	assert.Equal(t, dst, hops[4].IP)
	assert.Len(t, mock.probeHopCalls(), 5, "no probe must be sent after the destination answered")
	assert.Equal(t, hops, rep.hops, "every hop must be reported in ttl order")
}

func TestHopper_run_HopCeiling(t *testing.T) {
	tests := []struct {
		name   string
		maxTTL int
	}{
		{"one hop", 1},
		{"three hops", 3},
		{"default ceiling", DefaultMaxTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &tracerMock{
				probeHopFunc: func(_ context.Context, _ net.IP, _, ttl int, _ Options) (Hop, error) {
					return Hop{TTL: ttl}, nil
				},
			}
			rep := &recordingReporter{}
			h := newTestHopper(mock, rep, tt.maxTTL)

			hops, err := h.run(t.Context())
			require.NoError(t, err)

			require.Len(t, hops, tt.maxTTL)
			var ttls []int
			for _, c := range mock.probeHopCalls() {
				ttls = append(ttls, c.Ttl)
			}
			for i, hop := range hops {
				assert.True(t, hop.Wildcard())
				assert.Equal(t, i+1, hop.TTL)
				assert.Equal(t, i+1, ttls[i], "hops must be probed sequentially")
			}
			assert.Len(t, rep.hops, tt.maxTTL)
		})
	}
}

func TestHopper_run_ErrorAborts(t *testing.T) {
	sockErr := fmt.Errorf("read: %w", netutil.ErrSocketIO)
	mock := &tracerMock{
		probeHopFunc: func(_ context.Context, _ net.IP, _, ttl int, _ Options) (Hop, error) {
			if ttl == 3 {
				return Hop{}, sockErr
			}
			return Hop{TTL: ttl, IP: routerIP(ttl)}, nil
		},
	}
	rep := &recordingReporter{}
	h := newTestHopper(mock, rep, DefaultMaxTTL)

	hops, err := h.run(t.Context())
	require.Error(t, err)
	assert.True(t, errors.Is(err, netutil.ErrSocketIO))
	assert.Len(t, hops, 2)
	assert.Len(t, mock.probeHopCalls(), 3, "no retry and no further hops after an error")
	assert.Len(t, rep.hops, 2, "the failed hop must not be reported")
}

func TestHopper_run_ProbeParameters(t *testing.T) {
	mock := &tracerMock{probeHopFunc: pathTo(nil, 2)}
	h := newTestHopper(mock, &recordingReporter{}, 5)

	_, err := h.run(t.Context())
	require.NoError(t, err)

	for _, c := range mock.probeHopCalls() {
		assert.Equal(t, h.dst, c.Dst)
		assert.Equal(t, 33434, c.Port, "the probe port must stay the same for the whole trace")
		assert.Equal(t, h.opts, c.Opts)
	}
}
