// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"context"
	"encoding/binary"
	"errors"
	"net"
	"os"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/kestrel/internal/netutil"
	"github.com/telekom/kestrel/internal/packet"
	"golang.org/x/sys/unix"
)

var _ packetConn = (*fakeConn)(nil)

// datagram is a packet the fake socket delivers after delay.
type datagram struct {
	b     []byte
	from  net.Addr
	delay time.Duration
}

// fakeConn is an in-memory ICMP socket honoring read deadlines.
// respond is called for every written packet and returns the datagrams
// the "network" answers with.
type fakeConn struct {
	mu       sync.Mutex
	deadline time.Time
	written  [][]byte
	closed   bool
	respond  func(req []byte) []datagram

	inbox chan datagram
	wake  chan struct{}
}

func newFakeConn(respond func(req []byte) []datagram) *fakeConn {
	return &fakeConn{
		respond: respond,
		inbox:   make(chan datagram, 16),
		wake:    make(chan struct{}, 1),
	}
}

func (c *fakeConn) WriteTo(b []byte, _ net.Addr) (int, error) {
	c.mu.Lock()
	c.written = append(c.written, slices.Clone(b))
	c.mu.Unlock()

	if c.respond != nil {
		for _, d := range c.respond(b) {
			time.AfterFunc(d.delay, func() { c.inbox <- d })
		}
	}
	return len(b), nil
}

func (c *fakeConn) ReadFrom(b []byte) (int, net.Addr, error) {
	for {
		c.mu.Lock()
		deadline := c.deadline
		c.mu.Unlock()

		var expired <-chan time.Time
		if !deadline.IsZero() {
			wait := time.Until(deadline)
			if wait <= 0 {
				return 0, nil, os.ErrDeadlineExceeded
			}
			timer := time.NewTimer(wait)
			expired = timer.C
			defer timer.Stop()
		}

		select {
		case d := <-c.inbox:
			return copy(b, d.b), d.from, nil
		case <-expired:
			return 0, nil, os.ErrDeadlineExceeded
		case <-c.wake:
		}
	}
}

func (c *fakeConn) SetReadDeadline(t time.Time) error {
	c.mu.Lock()
	c.deadline = t
	c.mu.Unlock()
	select {
	case c.wake <- struct{}{}:
	default:
	}
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// echoReply turns an echo request into the reply a host would send,
// optionally with another identifier.
func echoReply(req []byte, id uint16) []byte {
	b := slices.Clone(req)
	b[0] = packet.TypeEchoReply
	binary.BigEndian.PutUint16(b[4:6], id)
	binary.BigEndian.PutUint16(b[2:4], 0)
	binary.BigEndian.PutUint16(b[2:4], packet.Checksum(b))
	return b
}

func requestID(req []byte) uint16 {
	return binary.BigEndian.Uint16(req[4:6])
}

var peer = &net.IPAddr{IP: net.IPv4(10, 0, 0, 1)}

func staticResolver(_ context.Context, host string) (net.IP, error) {
	ip := net.ParseIP(host)
	if ip == nil {
		return nil, errors.Join(netutil.ErrResolution, errors.New(host))
	}
	return ip.To4(), nil
}

func newTestSession(conn packetConn) *session {
	return &session{
		listen:      func(string) (packetConn, error) { return conn, nil },
		resolve:     staticResolver,
		now:         time.Now,
		payloadSize: packet.DefaultPayloadSize,
		privileged:  true,
	}
}

func TestSession_Probe_Reply(t *testing.T) {
	const delay = 50 * time.Millisecond
	conn := newFakeConn(func(req []byte) []datagram {
		return []datagram{{b: echoReply(req, requestID(req)), from: peer, delay: delay}}
	})
	s := newTestSession(conn)

	r := s.Probe(t.Context(), "10.0.0.1", 0x1234, 1, time.Second)

	require.Equal(t, StatusReply, r.Status, "error: %v", r.Err)
	assert.NoError(t, r.Err)
	assert.GreaterOrEqual(t, r.RTT, delay-time.Millisecond)
	assert.Less(t, r.RTT, delay+250*time.Millisecond)
	assert.Equal(t, packet.HeaderLen+packet.DefaultPayloadSize, r.Bytes)
	assert.Equal(t, "10.0.0.1", r.From)
	assert.Equal(t, 1, r.Seq)
	assert.True(t, conn.isClosed(), "socket must be closed after the probe")

	require.Len(t, conn.written, 1)
	sent, err := packet.Decode(conn.written[0])
	require.NoError(t, err)
	assert.Equal(t, packet.TypeEchoRequest, sent.Type)
	assert.Equal(t, uint16(0x1234), sent.ID)
	assert.Equal(t, uint16(echoSeq), sent.Seq)
}

func TestSession_Probe_Timeout(t *testing.T) {
	const timeout = 100 * time.Millisecond
	conn := newFakeConn(nil)
	s := newTestSession(conn)

	start := time.Now()
	r := s.Probe(t.Context(), "10.0.0.1", 0x1234, 3, timeout)
	elapsed := time.Since(start)

	assert.Equal(t, StatusTimeout, r.Status)
	assert.NoError(t, r.Err)
	assert.Zero(t, r.RTT)
	assert.GreaterOrEqual(t, elapsed, timeout)
	assert.Less(t, elapsed, timeout+200*time.Millisecond)
	assert.True(t, conn.isClosed())
}

func TestSession_Probe_IgnoresUnrelatedMessages(t *testing.T) {
	const timeout = 200 * time.Millisecond

	tests := []struct {
		name       string
		respond    func(req []byte) []datagram
		wantStatus Status
		wantRTT    time.Duration
	}{
		{
			name: "mismatched identifier keeps waiting until the deadline",
			respond: func(req []byte) []datagram {
				return []datagram{{b: echoReply(req, requestID(req)+1), from: peer, delay: 10 * time.Millisecond}}
			},
			wantStatus: StatusTimeout,
		},
		{
			name: "own echo request is not a reply",
			respond: func(req []byte) []datagram {
				return []datagram{{b: slices.Clone(req), from: peer, delay: 10 * time.Millisecond}}
			},
			wantStatus: StatusTimeout,
		},
		{
			name: "malformed datagram is skipped",
			respond: func(req []byte) []datagram {
				return []datagram{
					{b: []byte{0x00, 0x00, 0x01}, from: peer, delay: 5 * time.Millisecond},
					{b: echoReply(req, requestID(req)), from: peer, delay: 40 * time.Millisecond},
				}
			},
			wantStatus: StatusReply,
			wantRTT:    40 * time.Millisecond,
		},
		{
			name: "match after a mismatch on the remaining deadline",
			respond: func(req []byte) []datagram {
				return []datagram{
					{b: echoReply(req, requestID(req)+7), from: peer, delay: 5 * time.Millisecond},
					{b: echoReply(req, requestID(req)), from: peer, delay: 60 * time.Millisecond},
				}
			},
			wantStatus: StatusReply,
			wantRTT:    60 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := newFakeConn(tt.respond)
			s := newTestSession(conn)

			start := time.Now()
			r := s.Probe(t.Context(), "10.0.0.1", 0x4321, 1, timeout)
			elapsed := time.Since(start)

			require.Equal(t, tt.wantStatus, r.Status, "error: %v", r.Err)
			if tt.wantStatus == StatusTimeout {
				assert.GreaterOrEqual(t, elapsed, timeout)
				return
			}
			assert.GreaterOrEqual(t, r.RTT, tt.wantRTT-time.Millisecond)
			assert.Less(t, r.RTT, timeout)
		})
	}
}

func TestSession_Probe_Unprivileged(t *testing.T) {
	// The kernel rewrites identifiers of datagram ICMP sockets.
	conn := newFakeConn(func(req []byte) []datagram {
		return []datagram{{b: echoReply(req, 0xffff), from: &net.UDPAddr{IP: net.IPv4(10, 0, 0, 1)}, delay: time.Millisecond}}
	})
	var network string
	s := newTestSession(conn)
	s.privileged = false
	s.listen = func(n string) (packetConn, error) {
		network = n
		return conn, nil
	}

	r := s.Probe(t.Context(), "10.0.0.1", 0x1234, 1, time.Second)

	assert.Equal(t, StatusReply, r.Status)
	assert.Equal(t, networkDatagram, network)
	assert.Equal(t, "10.0.0.1", r.From)
}

func TestSession_Probe_Errors(t *testing.T) {
	tests := []struct {
		name       string
		listenErr  error
		resolveErr bool
		writeErr   error
		deadErr    error
		readErr    error
		wantStatus Status
		wantErr    error
		wantClosed bool
	}{
		{
			name:       "no privileges",
			listenErr:  &net.OpError{Op: "listen", Net: networkRaw, Err: os.NewSyscallError("socket", unix.EPERM)},
			wantStatus: StatusSocketError,
			wantErr:    netutil.ErrPrivilege,
		},
		{
			name:       "listen failure",
			listenErr:  errors.New("no buffer space"),
			wantStatus: StatusSocketError,
			wantErr:    netutil.ErrSocketIO,
		},
		{
			name:       "unresolvable host",
			resolveErr: true,
			wantStatus: StatusUnresolved,
			wantErr:    netutil.ErrResolution,
			wantClosed: true,
		},
		{
			name:       "send failure",
			writeErr:   unix.ENETUNREACH,
			wantStatus: StatusSocketError,
			wantErr:    netutil.ErrSocketIO,
			wantClosed: true,
		},
		{
			name:       "deadline failure",
			deadErr:    errors.New("use of closed connection"),
			wantStatus: StatusSocketError,
			wantErr:    netutil.ErrSocketIO,
			wantClosed: true,
		},
		{
			name:       "read failure",
			readErr:    unix.ECONNRESET,
			wantStatus: StatusSocketError,
			wantErr:    netutil.ErrSocketIO,
			wantClosed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &packetConnMock{
				WriteToFunc: func(b []byte, _ net.Addr) (int, error) {
					return len(b), tt.writeErr
				},
				SetReadDeadlineFunc: func(time.Time) error { return tt.deadErr },
				ReadFromFunc: func([]byte) (int, net.Addr, error) {
					return 0, nil, tt.readErr
				},
				CloseFunc: func() error { return nil },
			}
			s := newTestSession(conn)
			if tt.listenErr != nil {
				s.listen = func(string) (packetConn, error) { return nil, tt.listenErr }
			}

			host := "10.0.0.1"
			if tt.resolveErr {
				host = "unknown.invalid"
			}
			r := s.Probe(t.Context(), host, 1, 1, time.Second)

			assert.Equal(t, tt.wantStatus, r.Status)
			require.ErrorIs(t, r.Err, tt.wantErr)
			assert.Equal(t, tt.wantClosed, len(conn.CloseCalls()) == 1, "close calls: %d", len(conn.CloseCalls()))
		})
	}
}

func TestSession_Probe_PrivilegeMessage(t *testing.T) {
	s := newTestSession(nil)
	s.listen = func(string) (packetConn, error) { return nil, unix.EPERM }

	r := s.Probe(t.Context(), "10.0.0.1", 1, 1, time.Second)

	require.ErrorIs(t, r.Err, netutil.ErrPrivilege)
	assert.Contains(t, r.Err.Error(), "elevated privileges")
	assert.True(t, r.Fatal())
}

func TestSession_Probe_Canceled(t *testing.T) {
	conn := newFakeConn(nil)
	s := newTestSession(conn)

	ctx, cancel := context.WithCancel(t.Context())
	time.AfterFunc(20*time.Millisecond, cancel)

	start := time.Now()
	r := s.Probe(ctx, "10.0.0.1", 1, 1, 5*time.Second)

	assert.Equal(t, StatusCanceled, r.Status)
	assert.ErrorIs(t, r.Err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second, "cancellation must unblock the read")
	assert.True(t, conn.isClosed())
}
