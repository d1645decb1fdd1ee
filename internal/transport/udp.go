package transport

import (
	"fmt"
	"net"

	"go.uber.org/zap"

	"github.com/masa-umich/limewire/internal/errs"
	"github.com/masa-umich/limewire/internal/wire"
)

// maxUDPDatagram bounds the buffer used to read one datagram. The wire
// protocol's one-byte length prefix caps any well-formed message at 256
// bytes; this leaves headroom for a malformed, oversized datagram so
// ReadFromUDP doesn't silently truncate it before the length check runs.
const maxUDPDatagram = 2048

// UDPFramer wraps a datagram socket. Datagrams whose length prefix
// disagrees with the body, or whose payload fails to decode, are dropped
// with a logged warning; they never terminate the receive loop.
type UDPFramer struct {
	conn *net.UDPConn
	log  *zap.Logger
}

// NewUDPFramer wraps an already-bound or already-connected UDP socket.
// log may be nil, in which case drops are logged to a no-op logger.
func NewUDPFramer(conn *net.UDPConn, log *zap.Logger) *UDPFramer {
	if log == nil {
		log = zap.NewNop()
	}
	return &UDPFramer{conn: conn, log: log}
}

// Close releases the underlying socket.
func (f *UDPFramer) Close() error {
	return f.conn.Close()
}

// Send writes m as a single length-prefixed datagram to addr. If addr is
// nil the framer's connected peer (set via net.DialUDP) is used.
func (f *UDPFramer) Send(m wire.Message, addr *net.UDPAddr) error {
	const op = "transport.UDPFramer.Send"
	payload := m.Encode()
	if len(payload) > 255 {
		return errs.New(errs.Framing, op, fmt.Errorf("message too large to frame: %d bytes", len(payload)))
	}

	buf := make([]byte, 1+len(payload))
	buf[0] = byte(len(payload))
	copy(buf[1:], payload)

	var err error
	if addr != nil {
		_, err = f.conn.WriteToUDP(buf, addr)
	} else {
		_, err = f.conn.Write(buf)
	}
	if err != nil {
		return errs.New(errs.Transport, op, err)
	}
	return nil
}

// Receive blocks until a datagram decodes into a message and returns it.
// Datagrams with framing or codec failures are logged and dropped, and
// Receive keeps reading; only a genuine socket error is returned as an
// error.
func (f *UDPFramer) Receive() (wire.Message, *net.UDPAddr, error) {
	buf := make([]byte, maxUDPDatagram)
	for {
		n, addr, err := f.conn.ReadFromUDP(buf)
		if err != nil {
			return nil, nil, errs.New(errs.Transport, "transport.UDPFramer.Receive", err)
		}
		if n == 0 {
			continue
		}

		declared := int(buf[0])
		body := buf[1:n]
		if declared != len(body) {
			f.log.Warn("dropping udp datagram: length prefix mismatch",
				zap.Int("declared", declared),
				zap.Int("actual", len(body)),
				zap.Stringer("peer", addr),
			)
			continue
		}

		msg, err := wire.Decode(body)
		if err != nil {
			f.log.Warn("dropping udp datagram: decode failed",
				zap.Error(err),
				zap.Stringer("peer", addr),
			)
			continue
		}

		return msg, addr, nil
	}
}
