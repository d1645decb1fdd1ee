package wire

import "github.com/masa-umich/limewire/internal/errs"

// Heartbeat carries no payload; its mere arrival resets the idle timer.
type Heartbeat struct{}

func (m Heartbeat) Type() MsgID   { return MsgHeartbeat }
func (m Heartbeat) Encode() []byte { return []byte{byte(MsgHeartbeat)} }
func (m Heartbeat) String() string { return "Heartbeat{}" }

func decodeHeartbeat(payload []byte) (Message, error) {
	const op = "wire.Decode(Heartbeat)"
	if len(payload) != 0 {
		return nil, errs.New(errs.Codec, op, errLenMismatch(0, len(payload)))
	}
	return Heartbeat{}, nil
}
