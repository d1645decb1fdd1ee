package proxy

import (
	"io"

	"github.com/masa-umich/limewire/internal/wire"
)

// readRawFrame reads one length-prefixed record verbatim (length byte
// included) and also attempts to decode it, so the caller can record
// timing for a Telemetry or ValveState message without altering the bytes
// it forwards. A decode failure does not prevent the raw bytes from being
// returned: the proxy forwards whatever the FC sent, decodable or not.
func readRawFrame(r io.Reader) (raw []byte, msg wire.Message, err error) {
	lenBuf := make([]byte, 1)
	if _, err := io.ReadFull(r, lenBuf); err != nil {
		return nil, nil, err
	}

	n := int(lenBuf[0])
	payload := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, nil, err
		}
	}

	raw = make([]byte, 1+n)
	raw[0] = lenBuf[0]
	copy(raw[1:], payload)

	msg, decodeErr := wire.Decode(payload)
	if decodeErr != nil {
		return raw, nil, nil
	}
	return raw, msg, nil
}
