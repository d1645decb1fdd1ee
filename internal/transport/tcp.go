package transport

import (
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/masa-umich/limewire/internal/errs"
	"github.com/masa-umich/limewire/internal/wire"
)

// ErrEndOfStream is returned by TCPFramer.Receive when the peer closed the
// connection cleanly at a record boundary. It is not a protocol error.
var ErrEndOfStream = errors.New("transport: end of stream")

// TCPFramer pairs a stream connection with the wire codec. A single
// connection may be used concurrently by one sender and one receiver;
// further concurrency is the caller's responsibility.
type TCPFramer struct {
	conn net.Conn
}

// NewTCPFramer wraps an already-connected stream socket.
func NewTCPFramer(conn net.Conn) *TCPFramer {
	return &TCPFramer{conn: conn}
}

// Close releases the underlying connection.
func (f *TCPFramer) Close() error {
	return f.conn.Close()
}

// Send serializes m and writes one length byte followed by the payload.
func (f *TCPFramer) Send(m wire.Message) error {
	const op = "transport.TCPFramer.Send"
	payload := m.Encode()
	if len(payload) > 255 {
		return errs.New(errs.Framing, op, fmt.Errorf("message too large to frame: %d bytes", len(payload)))
	}

	buf := make([]byte, 1+len(payload))
	buf[0] = byte(len(payload))
	copy(buf[1:], payload)

	if _, err := f.conn.Write(buf); err != nil {
		return errs.New(errs.Transport, op, err)
	}
	return nil
}

// Receive reads one framed message. It returns ErrEndOfStream, unwrapped,
// when the peer closes at a record boundary; any other read failure is a
// Transport or Framing error.
func (f *TCPFramer) Receive() (wire.Message, error) {
	const op = "transport.TCPFramer.Receive"

	lenBuf := make([]byte, 1)
	if _, err := io.ReadFull(f.conn, lenBuf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEndOfStream
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errs.New(errs.Framing, op, fmt.Errorf("connection closed mid-length-byte"))
		}
		return nil, errs.New(errs.Transport, op, err)
	}

	n := int(lenBuf[0])
	payload := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(f.conn, payload); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, errs.New(errs.Framing, op, fmt.Errorf("connection closed mid-record (%d byte record)", n))
			}
			return nil, errs.New(errs.Transport, op, err)
		}
	}

	msg, err := wire.Decode(payload)
	if err != nil {
		return nil, err
	}
	return msg, nil
}
