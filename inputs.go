package evmc

// A Pair carries one boolean command from both redundant sources: the PLC
// controller and the HMI panel.
//
type Pair struct {
	PLC bool
	HMI bool
}

// Inputs is the full input pin state sampled once at the start of a tick.
//
type Inputs struct {
	// Op selects the subsystem updated this tick.
	Op Opcode

	// Dual-source command pairs, resolved by the arbiter when the matching
	// opcode is selected.
	Power     Pair
	Headlight Pair
	Horn      Pair
	Indicator Pair

	// Bus is the shared 4-bit accelerator/brake magnitude bus. The input
	// sampler disambiguates the two values by its phase counter.
	Bus uint8

	// Mode selects the PLC or HMI source priority. Both settings currently
	// arbitrate identically; the pin is reserved.
	Mode bool

	// Enable gates the whole core. While deasserted every register,
	// including the tick divider and the PWM counter, holds its value.
	Enable bool

	// Reset forces every register to its power-on default on this tick.
	// Reset takes precedence over Enable.
	Reset bool
}
