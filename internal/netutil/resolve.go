// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"context"
	"fmt"
	"net"
)

// Resolver looks up the IPv4 address of a host.
type Resolver func(ctx context.Context, host string) (net.IP, error)

// ResolveIPv4 resolves host to its first IPv4 address.
// Literal addresses are returned without a lookup.
// Every failure wraps [ErrResolution].
func ResolveIPv4(ctx context.Context, host string) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		if v4 := ip.To4(); v4 != nil {
			return v4, nil
		}
		return nil, fmt.Errorf("%w %s: not an IPv4 address", ErrResolution, host)
	}

	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrResolution, host, err)
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4, nil
		}
	}
	return nil, fmt.Errorf("%w %s: no IPv4 address found", ErrResolution, host)
}

// IPFromAddr extracts the IP address from a [net.Addr].
func IPFromAddr(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.UDPAddr:
		return a.IP
	case *net.TCPAddr:
		return a.IP
	case *net.IPAddr:
		return a.IP
	}
	return nil
}

// ReverseName performs a reverse DNS lookup for the given IP address.
// If the lookup fails or returns no names, it returns an empty string.
func ReverseName(ctx context.Context, ip net.IP) string {
	if ip == nil {
		return ""
	}

	names, err := net.DefaultResolver.LookupAddr(ctx, ip.String())
	if err != nil || len(names) == 0 {
		return ""
	}
	return names[0]
}
