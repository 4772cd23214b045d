// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Printer writes whole lines to an [io.Writer].
// It is safe for concurrent use; lines from different goroutines
// never interleave mid-line.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
	// quiet discards every line, e.g. when a structured document is printed instead.
	quiet bool
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewQuietPrinter returns a Printer that discards everything.
func NewQuietPrinter() *Printer {
	return &Printer{w: io.Discard, quiet: true}
}

// Printf formats a line and writes it, appending a newline if missing.
func (p *Printer) Printf(format string, args ...any) {
	p.Println(fmt.Sprintf(format, args...))
}

// Println writes line followed by a newline.
func (p *Printer) Println(line string) {
	if p.quiet {
		return
	}
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.w, line)
}
