// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package packet

// Checksum computes the Internet checksum of b.
//
// Words are accumulated low byte first and the folded complement is byte
// swapped at the end, which yields the RFC 1071 value. Callers write the
// result big-endian into the checksum field.
func Checksum(b []byte) uint16 {
	var sum uint32
	even := len(b) &^ 1
	for i := 0; i < even; i += 2 {
		sum += uint32(b[i+1])<<8 | uint32(b[i])
	}
	if even < len(b) {
		sum += uint32(b[len(b)-1])
	}

	for sum>>16 != 0 {
		sum = sum>>16 + sum&0xffff
	}
	answer := ^sum & 0xffff

	return uint16(answer>>8 | answer<<8&0xff00)
}
