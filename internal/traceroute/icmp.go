// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"net"
)

// icmpListener is an interface for reading ICMP messages answering a probe.
//
//go:generate go tool moq -out icmp_moq.go . icmpListener
type icmpListener interface {
	// Read blocks until an ICMP message for the probe port arrives
	// or the deadline of ctx expires, in which case it returns [errNoResponse].
	Read(ctx context.Context) (icmpPacket, error)
	Close() error
}

// icmpPacket represents a received ICMP packet.
type icmpPacket struct {
	// remoteAddr is the address of the device (typically a router)
	// that sent the ICMP message in response to our traceroute probe.
	remoteAddr net.Addr
	// port is the destination port of the UDP datagram
	// quoted in the ICMP message.
	port int
	// unreachable is true for [ipv4.ICMPTypeDestinationUnreachable] messages.
	unreachable bool
	// code is the ICMP code of the message.
	code int
}

// ICMP codes for Destination Unreachable messages.
// For more information, see:
// https://www.iana.org/assignments/icmp-parameters/icmp-parameters.xhtml#icmp-parameters-codes-3
const (
	// icmpUnreachableHost is the ICMP code for Destination Unreachable - "Host Unreachable" messages.
	icmpUnreachableHost = 1
	// icmpUnreachablePort is the ICMP code for Destination Unreachable - "Port Unreachable" messages.
	icmpUnreachablePort = 3
)
