package wire

import (
	"fmt"

	"github.com/masa-umich/limewire/internal/errs"
)

// Decode parses buf as a single wire message. buf's first byte is the
// MSG_ID; the rest is the variant's payload. Decode never panics: any
// malformed input comes back as an *errs.Error of Kind Codec.
func Decode(buf []byte) (Message, error) {
	const op = "wire.Decode"
	if len(buf) == 0 {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("empty buffer"))
	}

	id := MsgID(buf[0])
	payload := buf[1:]

	switch id {
	case MsgTelemetry:
		return decodeTelemetry(payload)
	case MsgValveCommand:
		return decodeValveCommand(payload)
	case MsgValveState:
		return decodeValveState(payload)
	case MsgHeartbeat:
		return decodeHeartbeat(payload)
	case MsgDeviceCommand:
		return decodeDeviceCommand(payload)
	case MsgDeviceCommandAck:
		return decodeDeviceCommandAck(payload)
	case MsgHandoff:
		return decodeHandoff(payload)
	default:
		return nil, errs.New(errs.Codec, op, fmt.Errorf("unknown MSG_ID 0x%02X", buf[0]))
	}
}

// Encode is a convenience wrapper equivalent to calling m.Encode().
func Encode(m Message) []byte {
	return m.Encode()
}

func errLenMismatch(want, got int) error {
	return fmt.Errorf("expected %d bytes, got %d", want, got)
}
