// Copyright 2024 Evan Hardt <evhw@posteo.net>
// Licensed under the MIT license. See license text in the LICENSE file.

package evmc

import "github.com/pkg/errors"

// Config sets the derived tick rates. Both divides must be powers of two no
// larger than 32768 so they can be taken from the 16-bit divider; a zero
// value selects the default.
//
type Config struct {
	// PWMDivide is the number of main ticks per PWM counter increment.
	PWMDivide uint
	// ThermalDivide is the number of main ticks per temperature drift step.
	ThermalDivide uint
}

const (
	defaultPWMDivide     = 4
	defaultThermalDivide = 16
	maxDivide            = 1 << 15
)

func checkDivide(name string, d uint) error {
	if d > maxDivide {
		return errors.Errorf("%s: %d exceeds the 16-bit divider", name, d)
	}
	if d&(d-1) != 0 {
		return errors.Errorf("%s: %d is not a power of two", name, d)
	}
	return nil
}

// Sim is a runnable controller simulation.
//
// The register file is double-buffered: during a tick every component reads
// the current frame s0 and writes its registers into the next frame s1, and
// the frames swap once when the tick commits. A write is therefore never
// visible to another register's update logic within the same tick.
//
type Sim struct {
	cfg         Config
	pwmMask     uint16
	thermalMask uint16

	s0, s1 State // register frames: current and next

	in     Inputs
	feed   func() Inputs
	probes []Probe
	tracer Tracer
	ticks  uint64
}

// New builds a controller simulation. The register file starts in its
// power-on state.
//
func New(cfg Config) (*Sim, error) {
	if cfg.PWMDivide == 0 {
		cfg.PWMDivide = defaultPWMDivide
	}
	if cfg.ThermalDivide == 0 {
		cfg.ThermalDivide = defaultThermalDivide
	}
	if err := checkDivide("PWMDivide", cfg.PWMDivide); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if err := checkDivide("ThermalDivide", cfg.ThermalDivide); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	s := &Sim{
		cfg:         cfg,
		pwmMask:     uint16(cfg.PWMDivide - 1),
		thermalMask: uint16(cfg.ThermalDivide - 1),
	}
	s.s0 = powerOnState()
	s.s1 = s.s0
	return s, nil
}

// SetInputs latches the input pins. The values persist until changed and are
// sampled once at the start of every tick. A feed function, when set,
// overrides them.
func (s *Sim) SetInputs(in Inputs) {
	s.in = in
}

// Step advances the simulation by one tick.
func (s *Sim) Step() {
	if s.feed != nil {
		s.in = s.feed()
	}
	in := s.in

	// next frame starts as a hold of the current one
	s.s1 = s.s0

	switch {
	case in.Reset:
		s.s1 = powerOnState()
	case !in.Enable:
		// core clock gated: everything, the divider included, holds
	default:
		s.sample(in)
		s.thermal()
		s.dispatch(in)
		s.pwm()
		s.sweep()
		s.s1.Divider = s.s0.Divider + 1
	}

	// commit
	s.s0, s.s1 = s.s1, s.s0
	s.ticks++

	if len(s.probes) > 0 || s.tracer != nil {
		out := s.s0.Outputs()
		for _, p := range s.probes {
			p(s.s0, out)
		}
		if s.tracer != nil {
			s.tracer.Sample(s.ticks, &s.s0, out)
		}
	}
}

// Run advances the simulation by n ticks.
func (s *Sim) Run(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

// Ticks returns the number of ticks simulated so far.
func (s *Sim) Ticks() uint64 {
	return s.ticks
}

// State returns the committed register file.
func (s *Sim) State() State {
	return s.s0
}

// Outputs projects the external signals from the committed register file.
func (s *Sim) Outputs() Outputs {
	return s.s0.Outputs()
}

// SetState replaces the committed register file. This is a debug poke for
// tests and the interactive monitor; it bypasses the tick discipline.
func (s *Sim) SetState(st State) {
	s.s0 = st
}
