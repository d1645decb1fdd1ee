package storeframe

import (
	"fmt"
	"time"

	"github.com/masa-umich/limewire/internal/channelmap"
	"github.com/masa-umich/limewire/internal/errs"
	"github.com/masa-umich/limewire/internal/wire"
)

// Frame is a single store write: channel name -> value. Values are one of
// int64 (TIMESTAMP, nanoseconds since epoch), uint8 (valve command/state),
// or float32 (telemetry samples).
type Frame map[string]any

// Clock supplies the wall-clock time used to stamp write-time channels.
// Production callers pass time.Now; tests pass a fixed or stepping clock.
type Clock func() time.Time

// BuildTelemetry maps a Telemetry message onto its board's channel map:
//  1. look up the board's data channels, failing with a SchemaMismatch
//     error if the board has no entry;
//  2. zip the (already write-time-free) channel list with the message
//     values in positional order;
//  3. insert the message timestamp under the index-channel name;
//  4. insert now() under the write-time channel name.
//
// The trimmed channel list length must equal the value count; a mismatch
// is a SchemaMismatch error.
func BuildTelemetry(msg wire.Telemetry, cm *channelmap.Map, now Clock) (Frame, error) {
	const op = "storeframe.BuildTelemetry"

	indexChannel := msg.Board.IndexChannel()
	entry, ok := cm.Lookup(indexChannel)
	if !ok {
		return nil, errs.New(errs.SchemaMismatch, op, fmt.Errorf("no channel map entry for %s", indexChannel))
	}

	if len(entry.DataChannels) != len(msg.Values) {
		return nil, errs.New(errs.SchemaMismatch, op, fmt.Errorf(
			"%s: channel map has %d data channels, telemetry carries %d values",
			indexChannel, len(entry.DataChannels), len(msg.Values),
		))
	}

	frame := make(Frame, len(msg.Values)+2)
	for i, ch := range entry.DataChannels {
		frame[ch.Name] = msg.Values[i]
	}
	frame[indexChannel] = msg.Timestamp
	frame[entry.WriteTimeChannel] = now().UnixNano()

	return frame, nil
}

// BuildValveState maps a ValveState message onto its three derived
// channels: the state-index timestamp, the state value itself, and the
// write-time stamp for that state-index.
func BuildValveState(msg wire.ValveState, now Clock) Frame {
	v := msg.Valve
	return Frame{
		v.StateTimeChannel(): msg.Timestamp,
		v.StateChannel():     boolToUint8(msg.State),
		channelmap.WriteTimeOf(v.StateTimeChannel()): now().UnixNano(),
	}
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
