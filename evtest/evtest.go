// Copyright 2024 Evan Hardt <evhw@posteo.net>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package evtest provides utility functions for testing the controller
// simulation.
//
package evtest

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"

	"github.com/evhw/evmc"
)

// A Step drives the simulation with one set of input pins for a number of
// ticks and then checks the committed state.
type Step struct {
	In    evmc.Inputs
	Ticks int // ticks to hold In; 0 means 1
	Check func(st evmc.State, out evmc.Outputs) error
}

// Run executes a scenario step by step, failing the test on the first step
// whose check reports an error.
func Run(t *testing.T, sim *evmc.Sim, steps []Step) {
	t.Helper()
	for i, step := range steps {
		n := step.Ticks
		if n <= 0 {
			n = 1
		}
		sim.SetInputs(step.In)
		sim.Run(n)
		if step.Check == nil {
			continue
		}
		if err := step.Check(sim.State(), sim.Outputs()); err != nil {
			t.Fatalf("step %d (op %v, tick %d): %v", i, step.In.Op, sim.Ticks(), err)
		}
	}
}

// Enabled returns an input frame with only the enable line asserted, the
// usual starting point for a scenario.
func Enabled() evmc.Inputs {
	return evmc.Inputs{Enable: true}
}

// RandInputs returns a random but well-formed input frame for soak testing.
// The reset line is left deasserted so state accumulates.
func RandInputs(r *rand.Rand) evmc.Inputs {
	pair := func() evmc.Pair {
		return evmc.Pair{PLC: r.Intn(2) == 1, HMI: r.Intn(2) == 1}
	}
	return evmc.Inputs{
		Op:        evmc.Opcode(r.Intn(8)),
		Power:     pair(),
		Headlight: pair(),
		Horn:      pair(),
		Indicator: pair(),
		Bus:       uint8(r.Intn(16)),
		Mode:      r.Intn(2) == 1,
		Enable:    true,
	}
}

// CheckInvariants verifies the properties that must hold for every reachable
// state: register widths, the temperature clamp, the power-off sweep and the
// status packing.
func CheckInvariants(st evmc.State, out evmc.Outputs) error {
	if st.Accel > 15 || st.Brake > 15 || st.SpeedCalc > 15 {
		return errors.Errorf("4-bit register out of range: %s", st)
	}
	if st.Temperature < 25 || st.Temperature > 100 {
		return errors.Errorf("temperature %d outside [25, 100]", st.Temperature)
	}
	if st.Phase > 7 {
		return errors.Errorf("sampler phase %d out of range", st.Phase)
	}
	if !st.SystemEnabled {
		if st.Headlight || st.Horn || st.Indicator ||
			st.SpeedCalc != 0 || st.MotorSpeed != 0 ||
			st.DutyCycle != 0 || st.PWMCounter != 0 {
			return errors.Errorf("unpowered state not swept: %s", st)
		}
		if out.Headlight || out.Horn || out.Indicator || out.PWM {
			return errors.Errorf("unpowered outputs active: %+v", out)
		}
	}
	if st.DutyCycle == 0 && out.PWM {
		return errors.New("PWM line high with zero duty")
	}
	var want uint8
	if st.Fault {
		want |= 2
	}
	if st.SystemEnabled {
		want |= 1
	}
	if out.Status != want {
		return errors.Errorf("status %02b, want %02b", out.Status, want)
	}
	return nil
}
