package evmc_test

import (
	"testing"

	"github.com/evhw/evmc"
	"github.com/evhw/evmc/evtest"
)

// The accelerator and brake magnitudes share one 4-bit bus; the sampler must
// latch each only at its designated phase of the 8-tick cycle.
func Test_sampler_phases(t *testing.T) {
	sim := newSim(t, evmc.Config{})
	in := evtest.Enabled()
	in.Op = evmc.OpTemp

	// phase 0: accelerator
	in.Bus = 5
	sim.SetInputs(in)
	sim.Step()
	if got := sim.State().Accel; got != 5 {
		t.Fatalf("accelerator after phase 0: got %d, want 5", got)
	}

	// phases 1-3: bus value changes must not disturb either register
	in.Bus = 3
	sim.SetInputs(in)
	sim.Run(3)
	if st := sim.State(); st.Accel != 5 || st.Brake != 0 {
		t.Fatalf("mid-cycle bus change latched: accel=%d brake=%d", st.Accel, st.Brake)
	}

	// phase 4: brake
	in.Bus = 9
	sim.SetInputs(in)
	sim.Step()
	if got := sim.State().Brake; got != 9 {
		t.Fatalf("brake after phase 4: got %d, want 9", got)
	}
	if got := sim.State().Accel; got != 5 {
		t.Fatalf("brake phase overwrote accelerator: got %d", got)
	}

	// phases 5-7, then phase 0 again: accelerator resamples
	in.Bus = 3
	sim.SetInputs(in)
	sim.Run(4)
	if st := sim.State(); st.Accel != 3 || st.Brake != 9 {
		t.Fatalf("second cycle: accel=%d brake=%d, want 3/9", st.Accel, st.Brake)
	}
}

func Test_sampler_masks_bus(t *testing.T) {
	sim := newSim(t, evmc.Config{})
	in := evtest.Enabled()
	in.Bus = 0xff // only the low 4 bits are wired
	sim.SetInputs(in)
	sim.Step()
	if got := sim.State().Accel; got != 15 {
		t.Fatalf("accelerator: got %d, want 15", got)
	}
}

func Test_sampler_reset(t *testing.T) {
	sim := newSim(t, evmc.Config{})
	in := evtest.Enabled()
	in.Bus = 7
	sim.SetInputs(in)
	sim.Run(6) // both magnitudes captured, phase mid-cycle

	in.Reset = true
	sim.SetInputs(in)
	sim.Step()
	if st := sim.State(); st.Accel != 0 || st.Brake != 0 || st.Phase != 0 {
		t.Fatalf("after reset: accel=%d brake=%d phase=%d", st.Accel, st.Brake, st.Phase)
	}
}
