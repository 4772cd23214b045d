// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/telekom/kestrel/internal/logger"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

const (
	// mtuSize is the read buffer size of the raw listener.
	mtuSize = 1500
	// protocolICMP is the IANA protocol number of ICMP for IPv4.
	protocolICMP = 1
	// protocolUDP is the IANA protocol number of UDP.
	protocolUDP = 17
)

// packetReader is the part of [icmp.PacketConn] the raw listener needs.
type packetReader interface {
	ReadFrom(b []byte) (int, net.Addr, error)
	SetReadDeadline(t time.Time) error
	Close() error
}

// rawListener is a listener for ICMP messages over a raw socket.
// It requires NET_RAW capabilities to be created successfully.
type rawListener struct {
	// conn is the ICMP packet connection used to listen for ICMP messages.
	conn packetReader
	// recvPort is the probe port we are interested in receiving ICMP messages for.
	recvPort int
}

// newRawListener opens a raw ICMP socket that only reports messages
// quoting a UDP datagram sent to wantPort.
// Lacking privileges results in an error wrapping [netutil.ErrPrivilege].
func newRawListener(wantPort int) (icmpListener, error) {
	conn, err := icmp.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		return nil, socketError("failed to open raw ICMP socket", err)
	}
	return &rawListener{conn: conn, recvPort: wantPort}, nil
}

// Read receives ICMP messages on the listener's connection until
// it either receives a message for the probe port or the deadline of ctx
// is exceeded. Unrelated messages are skipped without extending the deadline.
func (l *rawListener) Read(ctx context.Context) (icmpPacket, error) {
	log := logger.FromContext(ctx)
	deadline, ok := ctx.Deadline()
	if !ok {
		return icmpPacket{}, errors.New("reading ICMP messages requires a deadline")
	}
	if err := l.conn.SetReadDeadline(deadline); err != nil {
		return icmpPacket{}, socketError("failed to set read deadline", err)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = l.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	buf := make([]byte, mtuSize)
	for {
		n, src, err := l.conn.ReadFrom(buf)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return icmpPacket{}, ctx.Err()
			}
			if isTimeout(err) {
				return icmpPacket{}, errNoResponse
			}
			return icmpPacket{}, socketError("failed to read from ICMP socket", err)
		}

		pkt, err := newICMPPacket(src, buf[:n])
		if err != nil {
			log.DebugContext(ctx, "Ignoring ICMP message", "from", src, "reason", err)
			continue
		}
		if pkt.port != l.recvPort {
			log.DebugContext(ctx, "Received ICMP message on another port, ignoring",
				"expectedPort", l.recvPort,
				"receivedPort", pkt.port)
			continue
		}

		log.DebugContext(ctx, "Received ICMP packet",
			"routerAddr", pkt.remoteAddr,
			"port", pkt.port,
			"unreachable", pkt.unreachable,
			"code", pkt.code,
		)
		return pkt, nil
	}
}

// newICMPPacket parses a Time Exceeded or Destination Unreachable message
// and extracts the destination port of the UDP datagram it quotes.
func newICMPPacket(src net.Addr, b []byte) (icmpPacket, error) {
	msg, err := icmp.ParseMessage(protocolICMP, b)
	if err != nil {
		return icmpPacket{}, fmt.Errorf("failed to parse ICMP message: %w", err)
	}

	var quoted []byte
	switch msg.Type {
	case ipv4.ICMPTypeTimeExceeded:
		quoted = msg.Body.(*icmp.TimeExceeded).Data
	case ipv4.ICMPTypeDestinationUnreachable:
		quoted = msg.Body.(*icmp.DstUnreach).Data
	default:
		return icmpPacket{}, fmt.Errorf("unexpected ICMP message type: %v", msg.Type)
	}

	// The quoted datagram starts with the original IP header,
	// followed by at least the first 8 bytes of the UDP header.
	if len(quoted) < ipv4.HeaderLen {
		return icmpPacket{}, fmt.Errorf("quoted datagram too short: %d bytes", len(quoted))
	}
	ihl := int(quoted[0]&0x0f) * 4
	if quoted[9] != protocolUDP {
		return icmpPacket{}, fmt.Errorf("quoted datagram is not UDP: protocol %d", quoted[9])
	}
	if len(quoted) < ihl+4 {
		return icmpPacket{}, fmt.Errorf("udp header too short: %d bytes", len(quoted)-ihl)
	}

	return icmpPacket{
		remoteAddr:  src,
		port:        int(binary.BigEndian.Uint16(quoted[ihl+2 : ihl+4])),
		unreachable: msg.Type == ipv4.ICMPTypeDestinationUnreachable,
		code:        msg.Code,
	}, nil
}

// Close closes the ICMP listener connection.
func (l *rawListener) Close() error {
	return l.conn.Close()
}
