// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package packet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/net/ipv4"
)

const (
	// HeaderLen is the length of the ICMP echo header.
	HeaderLen = 8
	// TimestampLen is the length of the send timestamp at the start of the payload.
	TimestampLen = 8
	// DefaultPayloadSize is the payload size sent by default, timestamp included.
	DefaultPayloadSize = 192
	// MaxPayloadSize is the largest payload that fits into a single IPv4 datagram.
	MaxPayloadSize = 65507 - HeaderLen

	// filler is the byte used to pad the payload after the timestamp.
	filler = 'Q'
	// ipVersion4 is the value of the version nibble of an IPv4 header.
	ipVersion4 = 4
)

// Type values as they appear in the first byte of an ICMPv4 message.
var (
	TypeEchoReply   = uint8(ipv4.ICMPTypeEchoReply)
	TypeEchoRequest = uint8(ipv4.ICMPTypeEcho)
)

// ErrMalformedPacket is returned by [Decode] for buffers too short to hold an ICMP header.
var ErrMalformedPacket = errors.New("malformed ICMP packet")

// EchoHeader is the fixed ICMP echo header.
type EchoHeader struct {
	Type     uint8
	Code     uint8
	Checksum uint16
	ID       uint16
	Seq      uint16
}

func (h EchoHeader) put(b []byte) {
	b[0] = h.Type
	b[1] = h.Code
	binary.BigEndian.PutUint16(b[2:4], h.Checksum)
	binary.BigEndian.PutUint16(b[4:6], h.ID)
	binary.BigEndian.PutUint16(b[6:8], h.Seq)
}

// EchoPacket is an ICMP echo message carrying a send timestamp.
type EchoPacket struct {
	Header EchoHeader
	// Timestamp is the send time in seconds since the Unix epoch.
	Timestamp float64
	// PayloadSize is the total payload length including the timestamp.
	// Values below [TimestampLen] are raised to it.
	PayloadSize int
}

// NewEchoRequest returns an echo request stamped with sent.
func NewEchoRequest(id, seq uint16, sent time.Time, payloadSize int) *EchoPacket {
	return &EchoPacket{
		Header: EchoHeader{
			Type: TypeEchoRequest,
			ID:   id,
			Seq:  seq,
		},
		Timestamp:   TimestampOf(sent),
		PayloadSize: payloadSize,
	}
}

// Len returns the length of the marshaled packet.
func (p *EchoPacket) Len() int {
	return HeaderLen + max(p.PayloadSize, TimestampLen)
}

// Marshal returns the wire form of the packet. The checksum is computed
// over the header with a zeroed checksum field and the payload, and is
// stored into both the returned bytes and p.Header.
func (p *EchoPacket) Marshal() []byte {
	b := make([]byte, p.Len())

	binary.NativeEndian.PutUint64(b[HeaderLen:HeaderLen+TimestampLen], math.Float64bits(p.Timestamp))
	for i := HeaderLen + TimestampLen; i < len(b); i++ {
		b[i] = filler
	}

	h := p.Header
	h.Checksum = 0
	h.put(b)
	h.Checksum = Checksum(b)
	h.put(b)

	p.Header = h
	return b
}

// Encode builds a marshaled echo request.
func Encode(id, seq uint16, timestamp float64, payloadSize int) []byte {
	p := &EchoPacket{
		Header:      EchoHeader{Type: TypeEchoRequest, ID: id, Seq: seq},
		Timestamp:   timestamp,
		PayloadSize: payloadSize,
	}
	return p.Marshal()
}

// Echo is a decoded ICMP message.
type Echo struct {
	EchoHeader
	// Timestamp is the embedded send time. It is only valid if HasTimestamp is set.
	Timestamp    float64
	HasTimestamp bool
	// Len is the length of the ICMP message without any IP header.
	Len int
}

// IsRequest reports whether the message is an echo request.
func (e Echo) IsRequest() bool {
	return e.Type == TypeEchoRequest
}

// Sent returns the embedded send time.
func (e Echo) Sent() time.Time {
	return TimeOf(e.Timestamp)
}

// Decode parses an ICMP message. If b starts with an IPv4 header, the
// header is skipped first.
func Decode(b []byte) (Echo, error) {
	msg, err := stripIPv4Header(b)
	if err != nil {
		return Echo{}, err
	}
	if len(msg) < HeaderLen {
		return Echo{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedPacket, len(msg), HeaderLen)
	}

	e := Echo{
		EchoHeader: EchoHeader{
			Type:     msg[0],
			Code:     msg[1],
			Checksum: binary.BigEndian.Uint16(msg[2:4]),
			ID:       binary.BigEndian.Uint16(msg[4:6]),
			Seq:      binary.BigEndian.Uint16(msg[6:8]),
		},
		Len: len(msg),
	}
	if len(msg) >= HeaderLen+TimestampLen {
		e.Timestamp = math.Float64frombits(binary.NativeEndian.Uint64(msg[HeaderLen : HeaderLen+TimestampLen]))
		e.HasTimestamp = true
	}
	return e, nil
}

// stripIPv4Header returns the IP payload if b starts with an IPv4 header.
// ICMP messages never start with a byte whose upper nibble is 4, since no
// ICMP types in 0x40-0x4f are assigned.
func stripIPv4Header(b []byte) ([]byte, error) {
	if len(b) == 0 || b[0]>>4 != ipVersion4 {
		return b, nil
	}

	hlen := int(b[0]&0x0f) << 2
	if hlen < ipv4.HeaderLen || len(b) < hlen {
		return nil, fmt.Errorf("%w: truncated IPv4 header", ErrMalformedPacket)
	}
	return b[hlen:], nil
}

// TimestampOf converts t to seconds since the Unix epoch.
func TimestampOf(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}

// TimeOf converts seconds since the Unix epoch to a [time.Time].
func TimeOf(ts float64) time.Time {
	sec, frac := math.Modf(ts)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
