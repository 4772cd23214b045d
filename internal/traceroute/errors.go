// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
	"fmt"

	"github.com/telekom/kestrel/internal/netutil"
)

// errNoResponse is returned by an [icmpListener] when the hop deadline
// expired before a matching ICMP message arrived.
var errNoResponse = errors.New("no ICMP response before deadline")

// isTimeout checks if the error means that the hop did not answer in time.
// This is an expected outcome of a traceroute and results in a wildcard hop.
func isTimeout(err error) bool {
	return errors.Is(err, errNoResponse) ||
		errors.Is(err, context.DeadlineExceeded) ||
		netutil.IsTimeout(err)
}

// socketError wraps a failed socket operation into the error taxonomy.
// Permission failures become [netutil.ErrPrivilege], everything else [netutil.ErrSocketIO].
func socketError(op string, err error) error {
	if netutil.IsPermission(err) {
		return fmt.Errorf("%s: %w: %w", op, netutil.ErrPrivilege, err)
	}
	return fmt.Errorf("%s: %w: %w", op, netutil.ErrSocketIO, err)
}
