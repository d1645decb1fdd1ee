package wire

import (
	"fmt"

	"github.com/masa-umich/limewire/internal/avionics"
	"github.com/masa-umich/limewire/internal/errs"
)

const maxAckResponseLen = 200

// DeviceCommand is an operator-issued board-level command.
type DeviceCommand struct {
	Board   avionics.Board
	Command avionics.DeviceCommand
}

func (m DeviceCommand) Type() MsgID { return MsgDeviceCommand }

func (m DeviceCommand) Encode() []byte {
	return []byte{byte(MsgDeviceCommand), m.Board.ID(), byte(m.Command)}
}

func (m DeviceCommand) String() string {
	return fmt.Sprintf("DeviceCommand{board=%s, command=%s}", m.Board, m.Command)
}

func decodeDeviceCommand(payload []byte) (Message, error) {
	const op = "wire.Decode(DeviceCommand)"
	if len(payload) != 2 {
		return nil, errs.New(errs.Codec, op, errLenMismatch(2, len(payload)))
	}
	board, ok := avionics.BoardFromID(payload[0])
	if !ok {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("unknown board id %d", payload[0]))
	}
	return DeviceCommand{Board: board, Command: avionics.DeviceCommand(payload[1])}, nil
}

// DeviceCommandAck is the board's reply to a DeviceCommand, carrying an
// optional ASCII response for commands it recognizes.
type DeviceCommandAck struct {
	Board    avionics.Board
	Command  avionics.DeviceCommand
	Response string
}

func (m DeviceCommandAck) Type() MsgID { return MsgDeviceCommandAck }

func (m DeviceCommandAck) Encode() []byte {
	buf := make([]byte, 3+len(m.Response))
	buf[0] = byte(MsgDeviceCommandAck)
	buf[1] = m.Board.ID()
	buf[2] = byte(m.Command)
	copy(buf[3:], m.Response)
	return buf
}

func (m DeviceCommandAck) String() string {
	return fmt.Sprintf("DeviceCommandAck{board=%s, command=%s, response=%q}", m.Board, m.Command, m.Response)
}

func decodeDeviceCommandAck(payload []byte) (Message, error) {
	const op = "wire.Decode(DeviceCommandAck)"
	if len(payload) < 2 {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("payload too short: %d bytes", len(payload)))
	}
	board, ok := avionics.BoardFromID(payload[0])
	if !ok {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("unknown board id %d", payload[0]))
	}
	response := payload[2:]
	if len(response) > maxAckResponseLen {
		return nil, errs.New(errs.Codec, op, fmt.Errorf("response too long: %d bytes", len(response)))
	}
	return DeviceCommandAck{
		Board:    board,
		Command:  avionics.DeviceCommand(payload[1]),
		Response: string(response),
	}, nil
}
