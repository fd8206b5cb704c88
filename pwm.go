// Copyright 2024 Evan Hardt <evhw@posteo.net>
// Licensed under the MIT license. See license text in the LICENSE file.

package evmc

// pwm advances the free-running 8-bit PWM ramp. The counter increments,
// wrapping at 256, once every PWMDivide main ticks; the derived tick is a
// strict subdivision of the main tick taken from the shared divider, so the
// two domains stay phase-locked. While the system is unpowered the counter
// holds at 0.
//
// The output line itself is combinational (see State.Outputs): high while
// counter < duty, so duty 0 is always low and duty 255 is high for 255 of
// every 256 derived ticks.
func (s *Sim) pwm() {
	cur, next := &s.s0, &s.s1
	if !cur.SystemEnabled {
		next.PWMCounter = 0
		return
	}
	if cur.Divider&s.pwmMask == 0 {
		next.PWMCounter = cur.PWMCounter + 1
	}
}
