// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"

	"github.com/telekom/kestrel/internal/netutil"
)

// Exit codes of the kestrel commands.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitResolution = 2
	ExitPrivilege  = 3
	ExitSocketIO   = 4
)

// ExitCode maps the error of a command to the exit code of the process.
// If err holds several failures, resolution wins over privilege and
// privilege over socket failures.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, netutil.ErrResolution):
		return ExitResolution
	case errors.Is(err, netutil.ErrPrivilege):
		return ExitPrivilege
	case errors.Is(err, netutil.ErrSocketIO):
		return ExitSocketIO
	default:
		return ExitFailure
	}
}
