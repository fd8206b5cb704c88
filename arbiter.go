package evmc

// Dual-source arbitration. Pure combinational functions of the raw command
// pairs, recomputed every tick; the results are consumed by the dispatcher
// when the matching opcode is selected, never stored.

// arbPower resolves the power command. Either source can enable the system.
func arbPower(p Pair) bool {
	return p.PLC || p.HMI
}

// arbToggle resolves an auxiliary toggle. The toggle is asserted only on
// disagreement between the sources: both-off and both-on resolve to
// inactive, so an ambiguous simultaneous command from both controllers
// never latches an output.
func arbToggle(p Pair) bool {
	return p.PLC != p.HMI
}
