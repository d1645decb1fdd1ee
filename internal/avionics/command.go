package avionics

// DeviceCommand is an operator-issued, board-level command carried as a
// single byte in a DeviceCommand wire message. Unlike Board and Valve,
// unrecognized values are not an error at this layer: the codec preserves
// whatever byte it saw so a DeviceCommandAck can still be produced for it.
type DeviceCommand uint8

const (
	CommandReset            DeviceCommand = 0x00
	CommandClearFlash       DeviceCommand = 0x01
	CommandFlashSpace       DeviceCommand = 0x02
	CommandFirmwareBuildInfo DeviceCommand = 0x03
)

var deviceCommandNames = map[DeviceCommand]string{
	CommandReset:             "reset",
	CommandClearFlash:        "clear-flash",
	CommandFlashSpace:        "flash-space",
	CommandFirmwareBuildInfo: "firmware-build-info",
}

// Known reports whether cmd is one of the commands this system recognizes
// by name. Unknown commands are still valid on the wire; the simulator and
// bridge simply have no canned response for them.
func (c DeviceCommand) Known() bool {
	_, ok := deviceCommandNames[c]
	return ok
}

// String implements fmt.Stringer.
func (c DeviceCommand) String() string {
	if name, ok := deviceCommandNames[c]; ok {
		return name
	}
	return "unknown"
}
