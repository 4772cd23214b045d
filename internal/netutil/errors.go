// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"context"
	"errors"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

var (
	// ErrPrivilege is returned when a raw ICMP socket cannot be opened
	// because the process lacks root or the NET_RAW capability.
	ErrPrivilege = errors.New("ICMP raw sockets require elevated privileges (run as root or grant CAP_NET_RAW)")
	// ErrResolution is returned when a host name cannot be resolved to an IPv4 address.
	ErrResolution = errors.New("unable to resolve host")
	// ErrSocketIO is returned for send or receive failures other than a timeout.
	ErrSocketIO = errors.New("socket I/O failure")
)

// IsPermission reports whether err was caused by the kernel
// refusing to open a socket for lack of privileges.
func IsPermission(err error) bool {
	return errors.Is(err, unix.EPERM) ||
		errors.Is(err, unix.EACCES) ||
		errors.Is(err, os.ErrPermission)
}

// IsTimeout reports whether err represents an expired deadline.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nErr net.Error
	return errors.As(err, &nErr) && nErr.Timeout()
}
