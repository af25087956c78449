// Package maple implements a host-side driver for the Maple bus, the
// serial peripheral bus used by the Dreamcast to talk to controllers,
// VMUs, and similar accessories.
//
// The driver does not speak Maple electrically. It talks over a serial
// line (57600 baud, 8N1) to a microcontroller ("maple proxy") that
// translates between host-formatted frames and the bus's differential
// 2 MHz two-wire signalling. See serial.go, debittify.go, frame.go and
// transact.go for the three coupled subsystems that make that work;
// device.go is the typed facade consumers use.
package maple

// Address identifies a destination (or sender) on a Maple bus port.
type Address byte

const (
	// AddressHost is used as the sender address for every host-originated frame.
	AddressHost Address = 0x00
	// AddressController is the main peripheral on port A.
	AddressController Address = 0x20
	// AddressPeriph1 is the first sub-peripheral on port A (e.g. a VMU).
	AddressPeriph1 Address = 0x01
)

// Command is a Maple frame command byte.
type Command byte

const (
	CmdInfo          Command = 0x01
	CmdInfoExt       Command = 0x02
	CmdReset         Command = 0x03
	CmdShutdown      Command = 0x04
	CmdInfoResp      Command = 0x05
	CmdInfoExtResp   Command = 0x06
	CmdAckResp       Command = 0x07
	CmdXferResp      Command = 0x08
	CmdGetCond       Command = 0x09
	CmdGetMemInfo    Command = 0x0A
	CmdRead          Command = 0x0B
	CmdWrite         Command = 0x0C
	CmdWriteComplete Command = 0x0D
	CmdSetCond       Command = 0x0E
	CmdNoResp        Command = 0xFF
	CmdUnsupFnResp   Command = 0xFE
	CmdUnknownResp   Command = 0xFD
	CmdResendResp    Command = 0xFC
	CmdFileErrResp   Command = 0xFB
)

// FunctionCode is a bitmask identifying a peripheral capability.
type FunctionCode uint32

const (
	FnController  FunctionCode = 0x1
	FnMemoryCard  FunctionCode = 0x2
	FnLCD         FunctionCode = 0x4
	FnClock       FunctionCode = 0x8
	FnMicrophone  FunctionCode = 0x10
	FnARGun       FunctionCode = 0x20
	FnKeyboard    FunctionCode = 0x40
	FnLightGun    FunctionCode = 0x80
	FnPuruPuru    FunctionCode = 0x100
	FnMouse       FunctionCode = 0x200
)

var functionCodeNames = map[FunctionCode]string{
	FnController: "CONTROLLER",
	FnMemoryCard: "MEMORY_CARD",
	FnLCD:        "LCD",
	FnClock:      "CLOCK",
	FnMicrophone: "MICROPHONE",
	FnARGun:      "AR_GUN",
	FnKeyboard:   "KEYBOARD",
	FnLightGun:   "LIGHT_GUN",
	FnPuruPuru:   "PURU_PURU",
	FnMouse:      "MOUSE",
}

// DecodeFunctionCodes returns the human-readable names of every function
// bit set in code, in ascending bit order.
func DecodeFunctionCodes(code FunctionCode) []string {
	names := make([]string, 0, len(functionCodeNames))
	for _, bit := range []FunctionCode{
		FnController, FnMemoryCard, FnLCD, FnClock, FnMicrophone,
		FnARGun, FnKeyboard, FnLightGun, FnPuruPuru, FnMouse,
	} {
		if code&bit != 0 {
			names = append(names, functionCodeNames[bit])
		}
	}
	return names
}

// ButtonNames lists the controller button bit assignments, LSB first,
// as they appear in a decoded controller condition word.
var ButtonNames = [16]string{
	"C", "B", "A", "START", "UP", "DOWN", "LEFT", "RIGHT",
	"Z", "Y", "X", "D", "UP2", "DOWN2", "LEFT2", "RIGHT2",
}
