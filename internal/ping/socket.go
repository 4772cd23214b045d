// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"net"
	"time"

	"golang.org/x/net/icmp"
)

const (
	// networkRaw is a raw ICMP socket. It requires root or NET_RAW.
	networkRaw = "ip4:icmp"
	// networkDatagram is a datagram ICMP socket, available to unprivileged
	// users when net.ipv4.ping_group_range allows it.
	networkDatagram = "udp4"
	// mtuSize is the receive buffer size used for a single datagram.
	mtuSize = 1500
)

// packetConn is the part of an ICMP socket a probe needs.
//
//go:generate go tool moq -out socket_moq.go . packetConn
type packetConn interface {
	WriteTo(b []byte, dst net.Addr) (int, error)
	ReadFrom(b []byte) (int, net.Addr, error)
	SetReadDeadline(t time.Time) error
	Close() error
}

// listenICMP opens an ICMP socket on all local IPv4 addresses.
func listenICMP(network string) (packetConn, error) {
	conn, err := icmp.ListenPacket(network, "0.0.0.0")
	if err != nil {
		return nil, err
	}
	return conn, nil
}
