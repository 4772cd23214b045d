// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
	"net"
	"syscall"
	"time"

	"github.com/telekom/kestrel/internal/logger"
	"github.com/telekom/kestrel/internal/netutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sys/unix"
)

var _ tracer = (*udpClient)(nil)

// udpClient probes single hops with UDP datagrams and
// collects the ICMP errors they provoke.
type udpClient struct {
	// dialUDP creates a UDP socket connected to addr with the IP TTL set.
	dialUDP func(ctx context.Context, addr *net.UDPAddr, ttl int, recvErr bool) (net.Conn, error)
	// listenRaw opens the raw ICMP listener used in privileged mode.
	listenRaw func(port int) (icmpListener, error)
	// listenErrQueue wraps the sender socket in unprivileged mode.
	listenErrQueue func(conn net.Conn, port int) (icmpListener, error)
	// lookupName performs the reverse lookup of responders.
	lookupName func(ctx context.Context, ip net.IP) string
	now        func() time.Time
}

func newUDPClient() *udpClient {
	return &udpClient{
		dialUDP:        dialUDP,
		listenRaw:      newRawListener,
		listenErrQueue: newErrQueueListener,
		lookupName:     netutil.ReverseName,
		now:            time.Now,
	}
}

// probeHop sends one empty UDP datagram with the given TTL to dst:port and
// waits at most opts.Timeout for the ICMP error it provokes.
// No response results in a wildcard hop. Both sockets are closed when the hop ends.
func (c *udpClient) probeHop(ctx context.Context, dst net.IP, port, ttl int, opts Options) (Hop, error) {
	span := trace.SpanFromContext(ctx)
	log := logger.FromContext(ctx).With("ttl", ttl)
	log.DebugContext(ctx, "Starting UDP traceroute hop", "destination", dst, "port", port)

	var il icmpListener
	if !opts.Unprivileged {
		l, err := c.listenRaw(port)
		if err != nil {
			return Hop{}, wrapError(ctx, err, "failed to create ICMP listener")
		}
		defer func() { _ = l.Close() }()
		il = l
	}

	conn, err := c.dialUDP(ctx, &net.UDPAddr{IP: dst, Port: port}, ttl, opts.Unprivileged)
	if err != nil {
		return Hop{}, wrapError(ctx, socketError("failed to dial UDP", err), "failed to create UDP sender")
	}
	defer func() { _ = conn.Close() }()

	if opts.Unprivileged {
		l, lErr := c.listenErrQueue(conn, port)
		if lErr != nil {
			return Hop{}, wrapError(ctx, socketError("failed to read socket error queue", lErr), "failed to create ICMP listener")
		}
		defer func() { _ = l.Close() }()
		il = l
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	start := c.now()
	if _, err = conn.Write(nil); err != nil {
		return Hop{}, wrapError(ctx, socketError("failed to send", err), "failed sending UDP probe")
	}

	packet, err := il.Read(ctx)
	// Order matters: First check for expected errors,
	// then handle unexpected errors.
	switch {
	case err == nil:
		ip := netutil.IPFromAddr(packet.remoteAddr)
		hop := Hop{
			TTL:     ttl,
			IP:      ip,
			Latency: c.now().Sub(start),
			Reached: ip.Equal(dst),
		}
		if opts.ResolveNames {
			hop.Name = c.lookupName(ctx, ip)
		}
		log.DebugContext(ctx, "Received ICMP message", "routerAddr", packet.remoteAddr, "unreachable", packet.unreachable, "code", packet.code)
		span.AddEvent("ICMP message received", trace.WithAttributes(
			attribute.Bool("traceroute.target.reached", hop.Reached),
			attribute.Stringer("traceroute.target.hop", hop),
		))
		return hop, nil

	// Canceled: the whole run is aborted.
	case errors.Is(err, context.Canceled):
		return Hop{}, err

	// Timeout: the hop did not answer within the timeout,
	// which is expected when routers do not respond to probes.
	case isTimeout(err):
		hop := Hop{TTL: ttl, Latency: c.now().Sub(start)}
		log.DebugContext(ctx, "ICMP read timeout exceeded, no response received")
		span.AddEvent("ICMP read timeout exceeded", trace.WithAttributes(
			attribute.Stringer("traceroute.target.hop", hop),
			attribute.String("traceroute.target.hop.error", err.Error()),
		))
		return hop, nil

	default:
		return Hop{}, wrapError(ctx, err, "failed to read ICMP message")
	}
}

// dialUDP sets up a UDP socket connected to addr with the desired TTL.
// With recvErr the kernel queues ICMP errors for the socket (IP_RECVERR).
func dialUDP(ctx context.Context, addr *net.UDPAddr, ttl int, recvErr bool) (net.Conn, error) {
	dialer := net.Dialer{
		ControlContext: func(_ context.Context, _, _ string, c syscall.RawConn) error {
			var opErr error
			if err := c.Control(func(fd uintptr) {
				opErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_IP, unix.IP_TTL, ttl) // #nosec G115 // The net package is safe to use
				if opErr == nil && recvErr {
					opErr = unix.SetsockoptInt(int(fd), unix.SOL_IP, unix.IP_RECVERR, 1) // #nosec G115
				}
			}); err != nil {
				return err
			}
			return opErr
		},
	}

	return dialer.DialContext(ctx, "udp4", addr.String())
}
