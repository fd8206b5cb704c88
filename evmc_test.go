package evmc_test

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"

	"github.com/evhw/evmc"
	"github.com/evhw/evmc/evtest"
)

func Test_config(t *testing.T) {
	td := []struct {
		name string
		cfg  evmc.Config
		ok   bool
	}{
		{"defaults", evmc.Config{}, true},
		{"explicit", evmc.Config{PWMDivide: 2, ThermalDivide: 32}, true},
		{"every tick", evmc.Config{PWMDivide: 1, ThermalDivide: 1}, true},
		{"max", evmc.Config{PWMDivide: 1 << 15, ThermalDivide: 1 << 15}, true},
		{"pwm not pow2", evmc.Config{PWMDivide: 3}, false},
		{"thermal not pow2", evmc.Config{ThermalDivide: 24}, false},
		{"pwm too wide", evmc.Config{PWMDivide: 1 << 16}, false},
	}
	for _, d := range td {
		_, err := evmc.New(d.cfg)
		if d.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", d.name, err)
		}
		if !d.ok && err == nil {
			t.Errorf("%s: error expected", d.name)
		}
	}
}

// Full power-up and motor pipeline, driven only through the input pins: the
// accelerator and brake arrive time-multiplexed on the bus, SPEED computes
// the demand and PWM commits it.
func Test_motor_pipeline(t *testing.T) {
	sim := newSim(t, evmc.Config{})

	withOp := func(op evmc.Opcode, bus uint8) evmc.Inputs {
		in := evtest.Enabled()
		in.Op = op
		in.Bus = bus
		return in
	}
	power := withOp(evmc.OpPower, 12)
	power.Power = evmc.Pair{PLC: true}

	evtest.Run(t, sim, []evtest.Step{
		{In: evmc.Inputs{Reset: true}, Check: func(st evmc.State, out evmc.Outputs) error {
			if st.SystemEnabled || st.Temperature != 25 || out.Status != 0 {
				return errors.Errorf("reset state: %s", st)
			}
			return nil
		}},
		// phase 0: power on while the accelerator value is on the bus
		{In: power, Check: func(st evmc.State, out evmc.Outputs) error {
			switch {
			case !st.SystemEnabled || !out.Power:
				return errors.New("power did not latch")
			case st.Accel != 12:
				return errors.Errorf("accelerator not sampled: %d", st.Accel)
			}
			return nil
		}},
		// phases 1-3: dwell
		{In: withOp(evmc.OpTemp, 12), Ticks: 3},
		// phase 4: brake value on the bus
		{In: withOp(evmc.OpTemp, 4), Check: func(st evmc.State, out evmc.Outputs) error {
			if st.Brake != 4 {
				return errors.Errorf("brake not sampled: %d", st.Brake)
			}
			return nil
		}},
		{In: withOp(evmc.OpSpeed, 0), Check: func(st evmc.State, out evmc.Outputs) error {
			if st.SpeedCalc != 8 || st.MotorSpeed != 128 {
				return errors.Errorf("speed stage: calc=%d motor=%d", st.SpeedCalc, st.MotorSpeed)
			}
			return nil
		}},
		{In: withOp(evmc.OpPWM, 0), Check: func(st evmc.State, out evmc.Outputs) error {
			switch {
			case st.DutyCycle != 128:
				return errors.Errorf("duty: %d", st.DutyCycle)
			case !out.PWM:
				return errors.New("PWM line low at the start of the ramp")
			case out.MotorSpeed != 128:
				return errors.Errorf("telemetry echo: %d", out.MotorSpeed)
			case out.Status != 1:
				return errors.Errorf("status: %02b", out.Status)
			}
			return nil
		}},
	})
}

func Test_enable_freezes_core(t *testing.T) {
	sim := newSim(t, evmc.Config{})
	in := evtest.Enabled()
	in.Op = evmc.OpPower
	in.Power = evmc.Pair{HMI: true}
	in.Bus = 9
	sim.SetInputs(in)
	sim.Run(7)

	before := sim.State()
	ticksBefore := sim.Ticks()

	// deassert enable with everything else still driven: every register,
	// divider and phase included, must hold
	in.Enable = false
	in.Bus = 3
	in.Op = evmc.OpSpeed
	sim.SetInputs(in)
	sim.Run(10)

	if got := sim.State(); got != before {
		t.Fatalf("state changed while disabled:\n got %s\nwant %s", got, before)
	}
	if sim.Ticks() != ticksBefore+10 {
		t.Fatalf("tick count: got %d, want %d", sim.Ticks(), ticksBefore+10)
	}
}

func Test_reset_overrides_enable(t *testing.T) {
	sim := newSim(t, evmc.Config{})
	in := evtest.Enabled()
	in.Op = evmc.OpPower
	in.Power = evmc.Pair{PLC: true}
	sim.SetInputs(in)
	sim.Run(3)

	in.Enable = false
	in.Reset = true
	sim.SetInputs(in)
	sim.Step()

	if st := sim.State(); st.SystemEnabled || st.Temperature != 25 || st.Divider != 0 {
		t.Fatalf("after reset: %s", st)
	}
}

func Test_feed_and_probes(t *testing.T) {
	sim := newSim(t, evmc.Config{})

	tick := 0
	sim.Feed(func() evmc.Inputs {
		in := evtest.Enabled()
		if tick == 0 {
			in.Op = evmc.OpPower
			in.Power = evmc.Pair{PLC: true}
		} else {
			in.Op = evmc.OpTemp
		}
		tick++
		return in
	})

	calls := 0
	sim.OnTick(func(st evmc.State, out evmc.Outputs) {
		calls++
		if st.SystemEnabled != out.Power {
			t.Errorf("tick %d: output latch out of sync with state", calls)
		}
	})

	sim.Run(5)
	if calls != 5 {
		t.Fatalf("probe calls: got %d, want 5", calls)
	}
	if !sim.State().SystemEnabled {
		t.Fatal("feed-driven power-up did not latch")
	}
}

func Test_random_soak(t *testing.T) {
	sim := newSim(t, evmc.Config{})
	r := rand.New(rand.NewSource(1))

	var firstErr error
	var errTick uint64
	sim.OnTick(func(st evmc.State, out evmc.Outputs) {
		if firstErr == nil {
			if err := evtest.CheckInvariants(st, out); err != nil {
				firstErr, errTick = err, sim.Ticks()
			}
		}
	})
	sim.Feed(func() evmc.Inputs { return evtest.RandInputs(r) })

	sim.Run(5000)
	if firstErr != nil {
		t.Fatalf("invariant violated at tick %d: %v", errTick, firstErr)
	}
}
