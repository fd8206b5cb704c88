// Copyright 2024 Evan Hardt <evhw@posteo.net>
// Licensed under the MIT license. See license text in the LICENSE file.

package evmc

import "fmt"

// State is the architectural register file. All quantities are fixed-width
// unsigned values; the width of each register is noted on its field and
// enforced by the component that writes it. Each register has exactly one
// writer (see the component files), so a tick never has two updates racing
// for the same register.
//
type State struct {
	SystemEnabled bool // power state, opcode POWER

	Headlight bool // latched auxiliary outputs, opcodes 1-3
	Horn      bool
	Indicator bool

	Accel uint8 // 4 bits, input sampler
	Brake uint8 // 4 bits, input sampler

	SpeedCalc  uint8 // 4 bits, max(accel-brake, 0), opcode SPEED
	MotorSpeed uint8 // 8 bits, SpeedCalc<<4, halved under fault

	DutyCycle  uint8 // 8 bits, committed by opcode PWM
	PWMCounter uint8 // 8 bits, free-running ramp on the derived tick

	Temperature uint8 // 7 bits, clamped to [25, 100]
	Fault       bool  // hysteresis-gated thermal fault

	Phase   uint8  // 3 bits, sampler phase within the 8-tick bus cycle
	Divider uint16 // free-running divider, source of all derived sub-ticks
}

// powerOnState is the register file after a synchronous reset: power off,
// zero speed/duty/actives, temperature at the resting baseline, fault clear.
func powerOnState() State {
	return State{Temperature: tempBaseline}
}

func fbit(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (st State) String() string {
	return fmt.Sprintf("pwr=%d head=%d horn=%d ind=%d accel=%d brake=%d calc=%d motor=%d duty=%d ctr=%d temp=%d fault=%d phase=%d div=%d",
		fbit(st.SystemEnabled), fbit(st.Headlight), fbit(st.Horn), fbit(st.Indicator),
		st.Accel, st.Brake, st.SpeedCalc, st.MotorSpeed, st.DutyCycle, st.PWMCounter,
		st.Temperature, fbit(st.Fault), st.Phase, st.Divider)
}
