// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/telekom/kestrel/internal/netutil"
	"github.com/telekom/kestrel/internal/packet"
)

const (
	// DefaultCount is the number of attempts per host.
	DefaultCount = 4
	// DefaultTimeout is the time to wait for a reply per attempt.
	DefaultTimeout = time.Second
)

// Options configures a ping run.
type Options struct {
	// Count is the number of sequential attempts per host.
	Count int `json:"count" yaml:"count" mapstructure:"count"`
	// Timeout bounds the wait for a reply of a single attempt.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// PayloadSize is the ICMP payload length including the 8 byte timestamp.
	PayloadSize int `json:"size" yaml:"size" mapstructure:"size"`
	// Unprivileged uses datagram ICMP sockets instead of raw sockets.
	// The kernel then assigns echo identifiers itself.
	Unprivileged bool `json:"unprivileged" yaml:"unprivileged" mapstructure:"unprivileged"`
}

// DefaultOptions returns the options of the classic ping tool.
func DefaultOptions() Options {
	return Options{
		Count:       DefaultCount,
		Timeout:     DefaultTimeout,
		PayloadSize: packet.DefaultPayloadSize,
	}
}

// Validate checks that the options describe a runnable ping.
func (o Options) Validate() error {
	var err error
	if o.Count < 1 {
		err = errors.Join(err, fmt.Errorf("count must be at least 1, got %d", o.Count))
	}
	if o.Timeout <= 0 {
		err = errors.Join(err, fmt.Errorf("timeout must be greater than 0, got %s", o.Timeout))
	}
	if o.PayloadSize < packet.TimestampLen || o.PayloadSize > packet.MaxPayloadSize {
		err = errors.Join(err, fmt.Errorf("payload size must be between %d and %d, got %d",
			packet.TimestampLen, packet.MaxPayloadSize, o.PayloadSize))
	}
	return err
}

// Status is the outcome of a single probe attempt.
type Status string

const (
	// StatusReply means a matching echo reply arrived in time.
	StatusReply Status = "reply"
	// StatusTimeout means no matching reply arrived before the deadline.
	StatusTimeout Status = "timeout"
	// StatusSocketError means the socket could not be opened, written or read.
	StatusSocketError Status = "socket-error"
	// StatusUnresolved means the host name could not be resolved.
	StatusUnresolved Status = "unresolved"
	// StatusCanceled means the run was canceled while waiting.
	StatusCanceled Status = "canceled"
)

// Reply is the result of one probe attempt against a host.
type Reply struct {
	Host string `json:"host" yaml:"host"`
	// Seq is the 1-based attempt number.
	Seq    int    `json:"seq" yaml:"seq"`
	Status Status `json:"status" yaml:"status"`
	// RTT is only set for [StatusReply].
	RTT time.Duration `json:"-" yaml:"-"`
	// Bytes is the length of the received ICMP message.
	Bytes int `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	// From is the address the reply came from.
	From string `json:"from,omitempty" yaml:"from,omitempty"`
	Err  error  `json:"-" yaml:"-"`
}

// replyDoc is the serialized form of a [Reply].
type replyDoc struct {
	Host   string  `json:"host" yaml:"host"`
	Seq    int     `json:"seq" yaml:"seq"`
	Status Status  `json:"status" yaml:"status"`
	RTT    float64 `json:"rttMs,omitempty" yaml:"rttMs,omitempty"`
	Bytes  int     `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	From   string  `json:"from,omitempty" yaml:"from,omitempty"`
	Error  string  `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r Reply) doc() replyDoc {
	d := replyDoc{
		Host:   r.Host,
		Seq:    r.Seq,
		Status: r.Status,
		RTT:    milliseconds(r.RTT),
		Bytes:  r.Bytes,
		From:   r.From,
	}
	if r.Err != nil {
		d.Error = r.Err.Error()
	}
	return d
}

func (r Reply) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.doc())
}

func (r Reply) MarshalYAML() (any, error) {
	return r.doc(), nil
}

// Fatal reports whether the reply ends the attempts of its host.
func (r Reply) Fatal() bool {
	switch r.Status {
	case StatusUnresolved, StatusCanceled:
		return true
	case StatusSocketError:
		return errors.Is(r.Err, netutil.ErrPrivilege)
	default:
		return false
	}
}

// sent reports whether the echo request of the attempt went out.
func (r Reply) sent() bool {
	return r.Status == StatusReply || r.Status == StatusTimeout
}

// Worker identifies the goroutine probing one host.
type Worker struct {
	// Name prefixes every line printed for the host.
	Name string
	Host string
	// ID is the ICMP echo identifier used for every attempt of the worker.
	ID uint16
}

// HostResult holds all attempts of one host in the order they were made.
type HostResult struct {
	Host       string     `json:"host" yaml:"host"`
	Worker     string     `json:"worker" yaml:"worker"`
	Identifier uint16     `json:"identifier" yaml:"identifier"`
	Replies    []Reply    `json:"replies" yaml:"replies"`
	Statistics Statistics `json:"statistics" yaml:"statistics"`
}

// Err returns the error that ended the worker early, if any.
func (h HostResult) Err() error {
	for _, r := range h.Replies {
		if r.Fatal() {
			return r.Err
		}
	}
	return nil
}

// Result holds one [HostResult] per host, in the order the hosts were given.
type Result []HostResult

// Statistics summarizes the attempts of a host.
type Statistics struct {
	Transmitted int           `json:"transmitted" yaml:"transmitted"`
	Received    int           `json:"received" yaml:"received"`
	Loss        float64       `json:"lossPercent" yaml:"lossPercent"`
	MinRTT      time.Duration `json:"-" yaml:"-"`
	AvgRTT      time.Duration `json:"-" yaml:"-"`
	MaxRTT      time.Duration `json:"-" yaml:"-"`
}

func newStatistics(replies []Reply) Statistics {
	var s Statistics
	var total time.Duration
	for _, r := range replies {
		if !r.sent() {
			continue
		}
		s.Transmitted++
		if r.Status != StatusReply {
			continue
		}
		s.Received++
		total += r.RTT
		if s.Received == 1 || r.RTT < s.MinRTT {
			s.MinRTT = r.RTT
		}
		if r.RTT > s.MaxRTT {
			s.MaxRTT = r.RTT
		}
	}

	if s.Transmitted > 0 {
		s.Loss = float64(s.Transmitted-s.Received) / float64(s.Transmitted) * 100
	}
	if s.Received > 0 {
		s.AvgRTT = total / time.Duration(s.Received)
	}
	return s
}

func (s Statistics) MarshalJSON() ([]byte, error) {
	type alias Statistics
	return json.Marshal(&struct {
		alias
		MinRTT float64 `json:"minMs"`
		AvgRTT float64 `json:"avgMs"`
		MaxRTT float64 `json:"maxMs"`
	}{
		alias:  alias(s),
		MinRTT: milliseconds(s.MinRTT),
		AvgRTT: milliseconds(s.AvgRTT),
		MaxRTT: milliseconds(s.MaxRTT),
	})
}

func (s Statistics) MarshalYAML() (any, error) {
	return struct {
		Transmitted int     `yaml:"transmitted"`
		Received    int     `yaml:"received"`
		Loss        float64 `yaml:"lossPercent"`
		MinRTT      float64 `yaml:"minMs"`
		AvgRTT      float64 `yaml:"avgMs"`
		MaxRTT      float64 `yaml:"maxMs"`
	}{s.Transmitted, s.Received, s.Loss, milliseconds(s.MinRTT), milliseconds(s.AvgRTT), milliseconds(s.MaxRTT)}, nil
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
