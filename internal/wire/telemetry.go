package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/masa-umich/limewire/internal/avionics"
	"github.com/masa-umich/limewire/internal/errs"
)

// Telemetry carries one board's sampled values at one instant.
type Telemetry struct {
	Board     avionics.Board
	Timestamp int64 // nanoseconds since epoch
	Values    []float32
}

func (m Telemetry) Type() MsgID { return MsgTelemetry }

func (m Telemetry) Encode() []byte {
	buf := make([]byte, 1+1+8+4*len(m.Values))
	buf[0] = byte(MsgTelemetry)
	buf[1] = m.Board.ID()
	binary.BigEndian.PutUint64(buf[2:10], uint64(m.Timestamp))
	off := 10
	for _, v := range m.Values {
		binary.BigEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
		off += 4
	}
	return buf
}

func (m Telemetry) String() string {
	return fmt.Sprintf("Telemetry{board=%s, ts=%d, n=%d}", m.Board, m.Timestamp, len(m.Values))
}

func decodeTelemetry(payload []byte) (Message, error) {
	const op = "wire.Decode(Telemetry)"
	if len(payload) < 9 {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("payload too short: %d bytes", len(payload)))
	}

	board, ok := avionics.BoardFromID(payload[0])
	if !ok {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("unknown board id %d", payload[0]))
	}

	ts := int64(binary.BigEndian.Uint64(payload[1:9]))

	rest := payload[9:]
	if len(rest)%4 != 0 {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("value section not a multiple of 4 bytes: %d", len(rest)))
	}
	n := len(rest) / 4
	if n != board.NumValues() {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("%s expects %d values, got %d", board, board.NumValues(), n))
	}

	values := make([]float32, n)
	for i := 0; i < n; i++ {
		bits := binary.BigEndian.Uint32(rest[i*4 : i*4+4])
		values[i] = math.Float32frombits(bits)
	}

	return Telemetry{Board: board, Timestamp: ts, Values: values}, nil
}
