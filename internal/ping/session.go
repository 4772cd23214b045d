// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/telekom/kestrel/internal/logger"
	"github.com/telekom/kestrel/internal/netutil"
	"github.com/telekom/kestrel/internal/packet"
	"golang.org/x/net/ipv4"
)

// echoSeq is the ICMP sequence number of every echo request.
// Attempts are told apart by their socket and identifier, not by sequence.
const echoSeq = 1

// prober sends a single echo request and waits for its reply.
//
//go:generate go tool moq -out prober_moq.go . prober
type prober interface {
	Probe(ctx context.Context, host string, id uint16, seq int, timeout time.Duration) Reply
}

var _ prober = (*session)(nil)

// session performs probe attempts. Every attempt owns its socket
// from open to close.
type session struct {
	// listen opens a new ICMP socket for the given network.
	listen func(network string) (packetConn, error)
	// resolve looks up the IPv4 address of a host.
	resolve netutil.Resolver
	// now is the clock used for both the embedded send time and the receive time.
	now         func() time.Time
	payloadSize int
	privileged  bool
}

func newSession(opts Options) *session {
	return &session{
		listen:      listenICMP,
		resolve:     netutil.ResolveIPv4,
		now:         time.Now,
		payloadSize: opts.PayloadSize,
		privileged:  !opts.Unprivileged,
	}
}

func (s *session) network() string {
	if s.privileged {
		return networkRaw
	}
	return networkDatagram
}

func (s *session) destination(ip net.IP) net.Addr {
	if s.privileged {
		return &net.IPAddr{IP: ip}
	}
	return &net.UDPAddr{IP: ip, Port: 0}
}

// Probe sends one echo request to host and waits up to timeout for the
// matching reply. The socket is closed on every return path.
func (s *session) Probe(ctx context.Context, host string, id uint16, seq int, timeout time.Duration) Reply {
	log := logger.FromContext(ctx).With("host", host, "id", id, "seq", seq)
	reply := Reply{Host: host, Seq: seq}

	conn, err := s.listen(s.network())
	if err != nil {
		if netutil.IsPermission(err) {
			return reply.failed(StatusSocketError, fmt.Errorf("%w: %w", netutil.ErrPrivilege, err))
		}
		return reply.failed(StatusSocketError, fmt.Errorf("%w: failed to open ICMP socket: %w", netutil.ErrSocketIO, err))
	}
	defer func() { _ = conn.Close() }()

	ip, err := s.resolve(ctx, host)
	if err != nil {
		return reply.failed(StatusUnresolved, err)
	}

	req := packet.NewEchoRequest(id, echoSeq, s.now(), s.payloadSize)
	if _, err = conn.WriteTo(req.Marshal(), s.destination(ip)); err != nil {
		return reply.failed(StatusSocketError, fmt.Errorf("%w: failed to send echo request: %w", netutil.ErrSocketIO, err))
	}
	log.DebugContext(ctx, "Sent echo request", "addr", ip, "bytes", req.Len())

	deadline := time.Now().Add(timeout)
	if err = conn.SetReadDeadline(deadline); err != nil {
		return reply.failed(StatusSocketError, fmt.Errorf("%w: failed to set read deadline: %w", netutil.ErrSocketIO, err))
	}
	// Cancellation moves the deadline to now, which unblocks a pending read.
	stop := context.AfterFunc(ctx, func() { _ = conn.SetReadDeadline(time.Now()) })
	defer stop()

	buf := make([]byte, max(mtuSize, ipv4.HeaderLen+req.Len()))
	for {
		if time.Until(deadline) <= 0 {
			reply.Status = StatusTimeout
			return reply
		}

		n, from, rErr := conn.ReadFrom(buf)
		received := s.now()
		switch {
		case ctx.Err() != nil:
			return reply.failed(StatusCanceled, ctx.Err())
		case netutil.IsTimeout(rErr):
			reply.Status = StatusTimeout
			return reply
		case rErr != nil:
			return reply.failed(StatusSocketError, fmt.Errorf("%w: failed to read echo reply: %w", netutil.ErrSocketIO, rErr))
		}

		echo, dErr := packet.Decode(buf[:n])
		if dErr != nil {
			log.DebugContext(ctx, "Ignoring malformed datagram", "from", from, "error", dErr)
			continue
		}
		if !s.matches(echo, id) {
			log.DebugContext(ctx, "Ignoring unrelated ICMP message", "from", from, "type", echo.Type, "receivedID", echo.ID)
			continue
		}

		sent := req.Timestamp
		if echo.HasTimestamp {
			sent = echo.Timestamp
		}
		reply.Status = StatusReply
		reply.RTT = received.Sub(packet.TimeOf(sent))
		reply.Bytes = echo.Len
		reply.From = ip.String()
		if fromIP := netutil.IPFromAddr(from); fromIP != nil {
			reply.From = fromIP.String()
		}
		return reply
	}
}

// matches reports whether echo answers a request sent with id.
// Datagram sockets get their identifier rewritten by the kernel, which
// also filters replies per socket, so only the type is checked there.
func (s *session) matches(echo packet.Echo, id uint16) bool {
	if echo.IsRequest() {
		return false
	}
	return !s.privileged || echo.ID == id
}

func (r Reply) failed(status Status, err error) Reply {
	r.Status = status
	r.Err = err
	return r
}
