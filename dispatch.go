// Copyright 2024 Evan Hardt <evhw@posteo.net>
// Licensed under the MIT license. See license text in the LICENSE file.

package evmc

// speedCalc computes the 4-bit speed demand. Braking always wins: if the
// brake magnitude meets or exceeds the accelerator the result is 0, never an
// unsigned underflow.
func speedCalc(accel, brake uint8) uint8 {
	if brake >= accel {
		return 0
	}
	return (accel - brake) & 0x0f
}

// dispatch is the core state machine. It is a stateless selector: each
// tick's action is fully determined by the present opcode and the present
// register values, read from the current frame and written to the next.
//
// The motor pipeline is deliberately two-stage: SPEED computes the demand
// and PWM commits it to the duty register on a later tick, matching a
// bus-multiplexed protocol where only one operation is issued per tick.
func (s *Sim) dispatch(in Inputs) {
	cur, next := &s.s0, &s.s1

	switch in.Op {
	case OpPower:
		next.SystemEnabled = arbPower(in.Power)

	case OpHeadlight:
		if cur.SystemEnabled {
			next.Headlight = arbToggle(in.Headlight)
		}

	case OpHorn:
		if cur.SystemEnabled {
			next.Horn = arbToggle(in.Horn)
		}

	case OpIndicator:
		if cur.SystemEnabled {
			next.Indicator = arbToggle(in.Indicator)
		}

	case OpSpeed:
		switch {
		case !cur.SystemEnabled:
			next.MotorSpeed = 0
		case cur.Fault:
			// Graceful degradation, not shutdown: halve the motor on
			// every SPEED tick while the fault persists. The speed
			// demand itself is left alone so a cleared fault resumes
			// from a fresh recomputation.
			next.MotorSpeed = cur.MotorSpeed >> 1
		default:
			sc := speedCalc(cur.Accel, cur.Brake)
			next.SpeedCalc = sc
			next.MotorSpeed = sc << 4
		}

	case OpPWM:
		switch {
		case !cur.SystemEnabled:
			next.DutyCycle = 0
		case cur.Fault:
			next.DutyCycle = cur.MotorSpeed >> 1
		default:
			next.DutyCycle = cur.MotorSpeed
		}

	case OpTemp:
		// Dwell opcode. The thermal model updates on its own every tick;
		// this exists so a controller can watch the temperature without
		// perturbing any other state.

	case OpStatus:
		// When powered this is a no-op. When unpowered the post-dispatch
		// sweep below already zeroes the motor and auxiliary state.
	}
}

// sweep enforces the cross-cutting safety invariant after dispatch: on any
// tick that ends with power off, all auxiliary, motor and PWM state is zero.
// Checking the next frame's power bit makes a POWER tick that drops power
// clear everything on that same tick.
func (s *Sim) sweep() {
	next := &s.s1
	if next.SystemEnabled {
		return
	}
	next.Headlight = false
	next.Horn = false
	next.Indicator = false
	next.SpeedCalc = 0
	next.MotorSpeed = 0
	next.DutyCycle = 0
	next.PWMCounter = 0
}
