// Copyright 2024 Evan Hardt <evhw@posteo.net>
// Licensed under the MIT license. See license text in the LICENSE file.

package evmc

// A Probe observes the committed register file and the projected outputs at
// the end of every tick.
//
type Probe func(State, Outputs)

// Feed installs an input provider polled once at the start of every tick.
// It replaces any pin values latched with SetInputs.
//
func (s *Sim) Feed(f func() Inputs) {
	s.feed = f
}

// OnTick registers a probe. Probes run in registration order after each
// tick commits.
//
func (s *Sim) OnTick(p Probe) {
	s.probes = append(s.probes, p)
}

// SetTracer attaches a signal tracer, replacing any previous one. A nil
// tracer detaches.
//
func (s *Sim) SetTracer(tr Tracer) {
	s.tracer = tr
}
