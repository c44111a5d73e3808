package protocol

import "fmt"

// Command is a decoded inbound opcode. Decoding is independent of the
// transport the byte arrived on.
type Command uint8

const (
	CmdNone Command = iota
	CmdIndicatorOff
	CmdIndicatorOn
)

func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdIndicatorOff:
		return "indicator-off"
	case CmdIndicatorOn:
		return "indicator-on"
	default:
		return fmt.Sprintf("command(%d)", uint8(c))
	}
}

// Decode maps every byte value to exactly one command. Unrecognized bytes
// decode to CmdNone.
func Decode(b byte) Command {
	switch b {
	case 0x00, '0':
		return CmdIndicatorOff
	case 0x01, '1':
		return CmdIndicatorOn
	default:
		return CmdNone
	}
}
