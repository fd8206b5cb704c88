// Copyright 2024 Evan Hardt <evhw@posteo.net>
// Licensed under the MIT license. See license text in the LICENSE file.

package evmc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// A Tracer records the architectural signals once per tick.
//
type Tracer interface {
	Sample(tick uint64, st *State, out Outputs)
}

type vcdSignal struct {
	name string
	bits int
	get  func(*State, Outputs) uint64

	id   byte
	last uint64
	seen bool
}

func vcdSignals() []vcdSignal {
	b := func(v bool) uint64 {
		if v {
			return 1
		}
		return 0
	}
	return []vcdSignal{
		{name: "system_enabled", bits: 1, get: func(st *State, _ Outputs) uint64 { return b(st.SystemEnabled) }},
		{name: "headlight_active", bits: 1, get: func(st *State, _ Outputs) uint64 { return b(st.Headlight) }},
		{name: "horn_active", bits: 1, get: func(st *State, _ Outputs) uint64 { return b(st.Horn) }},
		{name: "indicator_active", bits: 1, get: func(st *State, _ Outputs) uint64 { return b(st.Indicator) }},
		{name: "accelerator_value", bits: 4, get: func(st *State, _ Outputs) uint64 { return uint64(st.Accel) }},
		{name: "brake_value", bits: 4, get: func(st *State, _ Outputs) uint64 { return uint64(st.Brake) }},
		{name: "speed_calculation", bits: 4, get: func(st *State, _ Outputs) uint64 { return uint64(st.SpeedCalc) }},
		{name: "motor_speed", bits: 8, get: func(st *State, _ Outputs) uint64 { return uint64(st.MotorSpeed) }},
		{name: "pwm_duty_cycle", bits: 8, get: func(st *State, _ Outputs) uint64 { return uint64(st.DutyCycle) }},
		{name: "pwm_counter", bits: 8, get: func(st *State, _ Outputs) uint64 { return uint64(st.PWMCounter) }},
		{name: "pwm_out", bits: 1, get: func(_ *State, out Outputs) uint64 { return b(out.PWM) }},
		{name: "internal_temperature", bits: 7, get: func(st *State, _ Outputs) uint64 { return uint64(st.Temperature) }},
		{name: "temperature_fault", bits: 1, get: func(st *State, _ Outputs) uint64 { return b(st.Fault) }},
		{name: "status", bits: 2, get: func(_ *State, out Outputs) uint64 { return uint64(out.Status) }},
	}
}

// VCD is a Tracer writing a value-change-dump waveform, one timestep per
// tick. Only signals that changed since the previous tick are dumped.
//
type VCD struct {
	w    *bufio.Writer
	sigs []vcdSignal
}

// NewVCD returns a VCD tracer writing to w. The header, covering every
// architectural signal, is written immediately.
//
func NewVCD(w io.Writer) *VCD {
	v := &VCD{w: bufio.NewWriter(w), sigs: vcdSignals()}
	fmt.Fprintln(v.w, "$timescale 1us $end")
	fmt.Fprintln(v.w, "$scope module evmc $end")
	for i := range v.sigs {
		s := &v.sigs[i]
		s.id = byte('!' + i)
		fmt.Fprintf(v.w, "$var wire %d %c %s $end\n", s.bits, s.id, s.name)
	}
	fmt.Fprintln(v.w, "$upscope $end")
	fmt.Fprintln(v.w, "$enddefinitions $end")
	return v
}

// Sample implements Tracer.
func (v *VCD) Sample(tick uint64, st *State, out Outputs) {
	stamped := false
	for i := range v.sigs {
		s := &v.sigs[i]
		val := s.get(st, out)
		if s.seen && val == s.last {
			continue
		}
		s.last, s.seen = val, true
		if !stamped {
			fmt.Fprintf(v.w, "#%d\n", tick)
			stamped = true
		}
		if s.bits == 1 {
			fmt.Fprintf(v.w, "%d%c\n", val, s.id)
		} else {
			fmt.Fprintf(v.w, "b%s %c\n", strconv.FormatUint(val, 2), s.id)
		}
	}
}

// Flush writes out any buffered changes. Write errors are sticky in the
// underlying buffered writer, so a single check here covers the whole dump.
func (v *VCD) Flush() error {
	return v.w.Flush()
}
