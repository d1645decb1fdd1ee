package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/masa-umich/limewire/internal/avionics"
	"github.com/masa-umich/limewire/internal/errs"
)

// ValveCommand requests that a valve be set open (1) or closed (0).
type ValveCommand struct {
	Valve avionics.Valve
	State bool
}

func (m ValveCommand) Type() MsgID { return MsgValveCommand }

func (m ValveCommand) Encode() []byte {
	buf := make([]byte, 3)
	buf[0] = byte(MsgValveCommand)
	buf[1] = m.Valve.ID()
	buf[2] = boolByte(m.State)
	return buf
}

func (m ValveCommand) String() string {
	return fmt.Sprintf("ValveCommand{valve=%s, state=%v}", m.Valve, m.State)
}

func decodeValveCommand(payload []byte) (Message, error) {
	const op = "wire.Decode(ValveCommand)"
	if len(payload) != 2 {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("expected 2 bytes, got %d", len(payload)))
	}
	valve, ok := avionics.ValveFromID(payload[0])
	if !ok {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("invalid valve id %d", payload[0]))
	}
	return ValveCommand{Valve: valve, State: payload[1] != 0}, nil
}

// ValveState reports a valve's actual state at a point in time.
type ValveState struct {
	Valve     avionics.Valve
	State     bool
	Timestamp int64
}

func (m ValveState) Type() MsgID { return MsgValveState }

func (m ValveState) Encode() []byte {
	buf := make([]byte, 11)
	buf[0] = byte(MsgValveState)
	buf[1] = m.Valve.ID()
	buf[2] = boolByte(m.State)
	binary.BigEndian.PutUint64(buf[3:11], uint64(m.Timestamp))
	return buf
}

func (m ValveState) String() string {
	return fmt.Sprintf("ValveState{valve=%s, state=%v, ts=%d}", m.Valve, m.State, m.Timestamp)
}

func decodeValveState(payload []byte) (Message, error) {
	const op = "wire.Decode(ValveState)"
	if len(payload) != 10 {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("expected 10 bytes, got %d", len(payload)))
	}
	valve, ok := avionics.ValveFromID(payload[0])
	if !ok {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("invalid valve id %d", payload[0]))
	}
	ts := int64(binary.BigEndian.Uint64(payload[2:10]))
	return ValveState{Valve: valve, State: payload[1] != 0, Timestamp: ts}, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
