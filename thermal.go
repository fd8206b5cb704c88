// Copyright 2024 Evan Hardt <evhw@posteo.net>
// Licensed under the MIT license. See license text in the LICENSE file.

package evmc

// Thermal model constants. The temperature is a simulated proxy, not a
// physical model: it drifts up while the motor runs hot and decays back to
// the resting baseline otherwise.
const (
	tempBaseline = 25
	tempMax      = 100

	// Hysteresis thresholds. The fault asserts at or above the high
	// threshold and clears only at or below the low one; between the two
	// the flag holds its previous value.
	tempFaultHigh = 85
	tempFaultLow  = 75

	// Motor speed (out of 255) above which the temperature drifts up.
	motorHot = 50
)

// thermal updates the temperature and the fault flag. It runs every enabled
// tick regardless of power or opcode, but the drift itself is sub-sampled:
// the temperature moves by at most 1 every ThermalDivide main ticks.
//
// A fault is not an error. It is a steady degraded-operation signal that the
// dispatcher consumes to ramp the motor down gracefully.
func (s *Sim) thermal() {
	cur, next := &s.s0, &s.s1

	t := cur.Temperature
	if cur.Divider&s.thermalMask == 0 {
		if cur.SystemEnabled && cur.MotorSpeed > motorHot {
			if t < tempMax {
				t++
			}
		} else if t > tempBaseline {
			t--
		}
	}
	next.Temperature = t

	switch {
	case t >= tempFaultHigh:
		next.Fault = true
	case t <= tempFaultLow:
		next.Fault = false
	default:
		next.Fault = cur.Fault
	}
}
