// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	// DefaultMaxTTL is the hop ceiling of a trace.
	DefaultMaxTTL = 30
	// DefaultTimeout bounds the wait for the response of a single hop.
	DefaultTimeout = time.Second
	// maxTTL is the largest value the IP TTL field can carry.
	maxTTL = 255
)

// Result represents the result of a traceroute, mapping each target to its hops.
// The hops of a target are ordered by TTL, starting at 1.
type Result map[Target][]Hop

// Options contains the optional configuration for the traceroute.
type Options struct {
	// MaxTTL is the maximum TTL to use for the traceroute.
	MaxTTL int `json:"maxHops" yaml:"maxHops" mapstructure:"maxHops"`
	// Timeout is the timeout for each hop in the traceroute.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// Port is the UDP destination port of the probes.
	// Zero picks a random port per target.
	Port int `json:"port" yaml:"port" mapstructure:"port"`
	// Unprivileged reads ICMP errors from the socket error queue
	// instead of a raw socket.
	Unprivileged bool `json:"unprivileged" yaml:"unprivileged" mapstructure:"unprivileged"`
	// ResolveNames performs a reverse lookup for every responding hop.
	ResolveNames bool `json:"resolveNames" yaml:"resolveNames" mapstructure:"resolveNames"`
}

// DefaultOptions returns the options of the classic traceroute tool.
func DefaultOptions() Options {
	return Options{
		MaxTTL:  DefaultMaxTTL,
		Timeout: DefaultTimeout,
	}
}

// Validate checks that the options describe a runnable trace.
func (o Options) Validate() error {
	var err error
	if o.MaxTTL < 1 || o.MaxTTL > maxTTL {
		err = errors.Join(err, fmt.Errorf("max hops must be between 1 and %d, got %d", maxTTL, o.MaxTTL))
	}
	if o.Timeout <= 0 {
		err = errors.Join(err, fmt.Errorf("timeout must be greater than 0, got %s", o.Timeout))
	}
	if o.Port < 0 || o.Port > 65535 {
		err = errors.Join(err, fmt.Errorf("invalid port: %d, must be between 0 and 65535", o.Port))
	}
	return err
}

// Target represents a target for the traceroute.
type Target struct {
	// Address is the host name or IPv4 address to trace to.
	Address string `json:"address" yaml:"address" mapstructure:"address"`
	// Port overrides [Options.Port] for this target when set.
	Port int `json:"port,omitempty" yaml:"port,omitempty" mapstructure:"port"`
}

func (t Target) String() string {
	if t.Port != 0 {
		return net.JoinHostPort(t.Address, strconv.Itoa(t.Port))
	}
	return t.Address
}

func (t Target) Validate() error {
	if t.Address == "" {
		return errors.New("target address cannot be empty")
	}
	if t.Port < 0 || t.Port > 65535 {
		return fmt.Errorf("invalid target port: %d, must be between 0 and 65535", t.Port)
	}
	return nil
}

// Hop is the outcome of the probe sent with a single TTL.
type Hop struct {
	TTL int
	// IP is the responder of the hop. It is nil when nothing answered in time.
	IP net.IP
	// Name is the reverse lookup result of IP, if requested.
	Name    string
	Latency time.Duration
	// Reached is true when the responder is the destination itself.
	Reached bool
}

// Wildcard reports whether no response arrived for the hop.
func (h Hop) Wildcard() bool {
	return h.IP == nil
}

// Address returns the responder address, or "*" for a wildcard hop.
func (h Hop) Address() string {
	if h.Wildcard() {
		return "*"
	}
	if h.Name != "" {
		return fmt.Sprintf("%s (%s)", h.Name, h.IP)
	}
	return h.IP.String()
}

// hopDoc is the serialized form of a [Hop].
type hopDoc struct {
	TTL     int    `json:"ttl" yaml:"ttl"`
	IP      string `json:"ip,omitempty" yaml:"ip,omitempty"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Latency string `json:"latency" yaml:"latency"`
	Reached bool   `json:"reached" yaml:"reached"`
}

func (h Hop) doc() hopDoc {
	d := hopDoc{
		TTL:     h.TTL,
		Name:    h.Name,
		Latency: h.Latency.String(),
		Reached: h.Reached,
	}
	if !h.Wildcard() {
		d.IP = h.IP.String()
	}
	return d
}

func (h Hop) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.doc())
}

func (h Hop) MarshalYAML() (any, error) {
	return h.doc(), nil
}

// String formats the hop as a traceroute output line.
func (h Hop) String() string {
	return fmt.Sprintf("%-4d %s", h.TTL, h.Address())
}
