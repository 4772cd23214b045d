// Package packet encodes and decodes ICMP Echo messages and computes the
// Internet checksum (RFC 1071) over them.
//
// An echo packet consists of the fixed 8-byte ICMP header followed by a
// payload whose first 8 bytes carry the send time as an IEEE-754 double in
// native byte order. The rest of the payload is filler up to a fixed size
// (192 bytes by default), so a default packet is 200 bytes on the wire:
//
//	pkt := packet.NewEchoRequest(id, 1, time.Now(), packet.DefaultPayloadSize)
//	b := pkt.Marshal()
//	echo, err := packet.Decode(b)
//
// [Decode] accepts both bare ICMP messages and full IPv4 datagrams, since raw
// sockets on some platforms deliver the IP header and on others strip it.
package packet
