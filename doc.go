/*
Package evmc simulates the digital control core of a small electric-vehicle
motor controller.

The controller is a synchronous design: every call to Sim.Step evaluates one
clock tick. A 3-bit opcode selects which subsystem updates that tick (power,
an auxiliary output, the motor-speed calculation, the PWM duty commit, a
temperature dwell, or a status sweep), while the input sampler, thermal model
and PWM generator tick along on their own cadence. All register updates are
computed from the previous tick's values and committed at once, so no update
ever observes another update from the same tick.

*/
package evmc
