package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/masa-umich/limewire/internal/errs"
)

// Handoff requests an operator-initiated transition of command authority
// between transports. It is wired end-to-end; no endpoint-selection state
// machine consumes it yet (see the Handoff relay task in internal/bridge).
type Handoff struct {
	Signal HandoffSignal
}

// HandoffSignal is the one-byte control signal carried by a Handoff message.
type HandoffSignal uint8

const (
	HandoffAbort  HandoffSignal = 0
	HandoffSwitch HandoffSignal = 1
)

func (m Handoff) Type() MsgID { return MsgHandoff }

func (m Handoff) Encode() []byte {
	buf := make([]byte, 6)
	buf[0] = byte(MsgHandoff)
	buf[1] = byte(m.Signal)
	binary.BigEndian.PutUint32(buf[2:6], handoffMagic)
	return buf
}

func (m Handoff) String() string {
	return fmt.Sprintf("Handoff{signal=%d}", m.Signal)
}

func decodeHandoff(payload []byte) (Message, error) {
	const op = "wire.Decode(Handoff)"
	if len(payload) != 5 {
		return nil, errs.New(errs.Codec, op, errLenMismatch(5, len(payload)))
	}
	signal := HandoffSignal(payload[0])
	if signal != HandoffAbort && signal != HandoffSwitch {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("invalid control signal %d", payload[0]))
	}
	magic := binary.BigEndian.Uint32(payload[1:5])
	if magic != handoffMagic {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("bad confirmation magic 0x%08X", magic))
	}
	return Handoff{Signal: signal}, nil
}
