package evmc

// Phases of the 8-tick bus cycle at which the time-multiplexed magnitudes
// are valid on the shared bus.
const (
	phaseAccel = 0
	phaseBrake = 4
	phaseMask  = 7
)

// sample captures the accelerator and brake magnitudes from the shared 4-bit
// bus. The two values are time-multiplexed on the same pins, so each is
// latched only at its designated phase of the 8-tick cycle and left untouched
// otherwise; they are never both sampled from the same tick's bus value.
func (s *Sim) sample(in Inputs) {
	cur, next := &s.s0, &s.s1
	switch cur.Phase {
	case phaseAccel:
		next.Accel = in.Bus & 0x0f
	case phaseBrake:
		next.Brake = in.Bus & 0x0f
	}
	next.Phase = (cur.Phase + 1) & phaseMask
}
