package evmc

// Outputs is the external view of the controller: a pure projection of the
// committed register file, recomputed every tick, holding no state of its
// own.
//
type Outputs struct {
	Power     bool
	Headlight bool
	Horn      bool
	Indicator bool
	PWM       bool
	Fault     bool

	// Status packs {fault, power} into 2 bits.
	Status uint8

	// MotorSpeed echoes the raw 8-bit motor speed on the secondary bus
	// for telemetry.
	MotorSpeed uint8
}

// Outputs projects the external signals from the register file. Auxiliary
// lines are gated by power even though the sweep already zeroes their
// registers, so a stale active flag can never reach a pin.
func (st State) Outputs() Outputs {
	o := Outputs{
		Power:      st.SystemEnabled,
		Headlight:  st.Headlight && st.SystemEnabled,
		Horn:       st.Horn && st.SystemEnabled,
		Indicator:  st.Indicator && st.SystemEnabled,
		PWM:        st.SystemEnabled && st.PWMCounter < st.DutyCycle,
		Fault:      st.Fault,
		MotorSpeed: st.MotorSpeed,
	}
	if st.Fault {
		o.Status |= 2
	}
	if st.SystemEnabled {
		o.Status |= 1
	}
	return o
}
