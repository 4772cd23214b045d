// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"github.com/telekom/kestrel/internal/logger"
	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"
)

// errQueueListener is a listener for ICMP messages via the UDP socket error queue.
// It requires the UDP socket to have IP_RECVERR enabled and needs no privileges.
type errQueueListener struct {
	conn     net.Conn
	rawConn  syscall.RawConn
	recvPort int
	oobBuf   []byte
}

const (
	// oobBufSize is the size of the out-of-band buffer used for receiving extended error messages.
	oobBufSize = 512
	// dataBufSize is the size of the data buffer used for receiving messages.
	dataBufSize = 64
	// minExtendedErrSize is the size of struct sock_extended_err, see ip(7).
	minExtendedErrSize = 16
	// sockaddrInet4Size is the size of the struct sockaddr_in holding the offender.
	sockaddrInet4Size = 16
)

// newErrQueueListener wraps a UDP connection in an errQueueListener that
// reads ICMP errors from the kernel error queue for the given destination port.
func newErrQueueListener(conn net.Conn, wantPort int) (icmpListener, error) {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return nil, fmt.Errorf("the provided connection does not implement syscall.Conn: %T", conn)
	}

	rc, err := sc.SyscallConn()
	if err != nil {
		return nil, fmt.Errorf("failed to get RawConn: %w", err)
	}

	return &errQueueListener{
		conn:     conn,
		rawConn:  rc,
		recvPort: wantPort,
		oobBuf:   make([]byte, oobBufSize),
	}, nil
}

// Read waits until an ICMP error for the probe port is queued on the socket
// or the deadline of ctx is exceeded.
func (l *errQueueListener) Read(ctx context.Context) (icmpPacket, error) {
	log := logger.FromContext(ctx)
	deadline, ok := ctx.Deadline()
	if !ok {
		return icmpPacket{}, errors.New("reading ICMP messages requires a deadline")
	}
	if err := l.conn.SetReadDeadline(deadline); err != nil {
		return icmpPacket{}, socketError("failed to set read deadline", err)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = l.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	for {
		msg, err := l.recvPacket()
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return icmpPacket{}, ctx.Err()
			}
			if isTimeout(err) {
				return icmpPacket{}, errNoResponse
			}
			return icmpPacket{}, socketError("failed to read socket error queue", err)
		}

		pkt, err := parseExtendedErr(ctx, msg)
		if err != nil {
			log.DebugContext(ctx, "Ignoring queued socket error", "reason", err)
			continue
		}
		if pkt.port != l.recvPort {
			log.DebugContext(ctx, "Received ICMP error for another port, ignoring",
				"expectedPort", l.recvPort,
				"receivedPort", pkt.port)
			continue
		}
		return pkt, nil
	}
}

// recvPacket performs a single Recvmsg(..., MSG_ERRQUEUE). It blocks in the
// runtime poller until an error is queued or the read deadline expires.
func (l *errQueueListener) recvPacket() (*socketMsg, error) {
	var msg *socketMsg
	var opErr error
	err := l.rawConn.Read(func(fd uintptr) bool {
		msg, opErr = recvMsg(fd, l.oobBuf, unix.MSG_ERRQUEUE)
		return !errors.Is(opErr, unix.EAGAIN)
	})
	if err != nil {
		return nil, err
	}
	if opErr != nil {
		return nil, opErr
	}
	return msg, nil
}

// Close closes the underlying [net.Conn].
func (l *errQueueListener) Close() error {
	return l.conn.Close()
}

// socketMsg represents a message received from the socket error queue.
type socketMsg struct {
	// port is the destination port of the probe that caused the error.
	port int
	// oob is the out-of-band data received with the message.
	// This contains the extended error information from the kernel.
	oob []byte
}

// unixRecvMsg is a wrapper around the [unix.Recvmsg] function.
// It allows us to mock the function in tests.
var unixRecvMsg = unix.Recvmsg

// recvMsg receives a queued error from the socket. The returned address
// is the original destination of the probe.
var recvMsg = func(fd uintptr, oob []byte, flags int) (*socketMsg, error) {
	dataBuf := make([]byte, dataBufSize)
	_, oobn, _, from, err := unixRecvMsg(int(fd), dataBuf, oob, flags)
	if err != nil {
		return nil, err
	}

	sa, ok := from.(*unix.SockaddrInet4)
	if !ok {
		return nil, fmt.Errorf("unexpected probe address type %T", from)
	}
	return &socketMsg{
		port: sa.Port,
		oob:  oob[:oobn],
	}, nil
}

// parseExtendedErr decodes SOL_IP / IP_RECVERR control messages for both TimeExceeded and DestinationUnreachable.
var parseExtendedErr = func(ctx context.Context, msg *socketMsg) (icmpPacket, error) {
	log := logger.FromContext(ctx)
	cms, err := unix.ParseSocketControlMessage(msg.oob)
	if err != nil {
		return icmpPacket{}, fmt.Errorf("failed to parse control messages: %w", err)
	}

	for _, cm := range cms {
		if cm.Header.Level != unix.SOL_IP || cm.Header.Type != unix.IP_RECVERR {
			continue
		}

		ee, err := newSockExtendedErr(cm.Data)
		if err != nil {
			return icmpPacket{}, fmt.Errorf("failed to decode extended error: %w", err)
		}
		if ee.Origin != unix.SO_EE_ORIGIN_ICMP {
			return icmpPacket{}, fmt.Errorf("extended error not caused by ICMP: origin %d", ee.Origin)
		}

		timeExceeded := ee.Type == uint8(ipv4.ICMPTypeTimeExceeded)
		destUnreachable := ee.Type == uint8(ipv4.ICMPTypeDestinationUnreachable)
		if !timeExceeded && !destUnreachable {
			log.DebugContext(ctx, "Received unexpected ICMP type", "extendedErr", fmt.Sprintf("%+v", ee))
			return icmpPacket{}, fmt.Errorf("unexpected ICMP type %d with code %d", ee.Type, ee.Code)
		}

		offender, err := offenderAddr(cm.Data[minExtendedErrSize:])
		if err != nil {
			return icmpPacket{}, err
		}

		return icmpPacket{
			remoteAddr:  offender,
			port:        msg.port,
			unreachable: destUnreachable,
			code:        int(ee.Code),
		}, nil
	}

	return icmpPacket{}, errors.New("no SOL_IP/IP_RECVERR message found")
}

// newSockExtendedErr converts the first 16 bytes of an OOB buffer into a [unix.SockExtendedErr].
func newSockExtendedErr(data []byte) (unix.SockExtendedErr, error) {
	if len(data) < minExtendedErrSize {
		return unix.SockExtendedErr{}, fmt.Errorf("extended error too short: %d bytes", len(data))
	}

	return unix.SockExtendedErr{
		Errno:  binary.LittleEndian.Uint32(data[0:4]),
		Origin: data[4],
		Type:   data[5],
		Code:   data[6],
		Info:   binary.LittleEndian.Uint32(data[8:12]),
		Data:   binary.LittleEndian.Uint32(data[12:16]),
	}, nil
}

// offenderAddr decodes the struct sockaddr_in of the node that sent the ICMP error.
// It directly follows the extended error (SO_EE_OFFENDER).
func offenderAddr(data []byte) (net.Addr, error) {
	if len(data) < sockaddrInet4Size {
		return nil, fmt.Errorf("offender address too short: %d bytes", len(data))
	}
	if family := binary.NativeEndian.Uint16(data[0:2]); family != unix.AF_INET {
		return nil, fmt.Errorf("unexpected offender address family %d", family)
	}
	return &net.IPAddr{IP: net.IPv4(data[4], data[5], data[6], data[7])}, nil
}
