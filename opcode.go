package evmc

import (
	"strings"

	"github.com/pkg/errors"
)

// An Opcode selects the subsystem updated on a given tick. The 3-bit field
// exactly covers the eight operations; there is no reserved encoding.
//
type Opcode uint8

const (
	OpPower Opcode = iota
	OpHeadlight
	OpHorn
	OpIndicator
	OpSpeed
	OpPWM
	OpTemp
	OpStatus
)

var opNames = [8]string{
	"POWER", "HEADLIGHT", "HORN", "INDICATOR",
	"SPEED", "PWM", "TEMP", "STATUS",
}

func (op Opcode) String() string {
	if op > OpStatus {
		return "INVALID"
	}
	return opNames[op]
}

// ParseOpcode converts an opcode name (case insensitive) or a decimal digit
// 0-7 to an Opcode.
//
func ParseOpcode(s string) (Opcode, error) {
	if len(s) == 1 && '0' <= s[0] && s[0] <= '7' {
		return Opcode(s[0] - '0'), nil
	}
	for i, n := range opNames {
		if strings.EqualFold(s, n) {
			return Opcode(i), nil
		}
	}
	return 0, errors.Errorf("unknown opcode %q", s)
}
