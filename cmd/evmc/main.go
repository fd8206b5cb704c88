// Command evmc runs the EV motor-controller simulation.
//
// With a script file argument (or - for stdin) it executes the stimulus
// script and prints any dumps. With -t it runs the given number of idle
// ticks and dumps the final state. With -i it steps interactively, one tick
// per keypress. -vcd writes a waveform dump of the run.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"golang.org/x/term"

	"github.com/evhw/evmc"
	"github.com/evhw/evmc/internal/script"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [script file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	ticks := flag.Int("t", 0, "run `n` idle ticks and dump the final state")
	interactive := flag.Bool("i", false, "step interactively, one tick per keypress")
	vcdFile := flag.String("vcd", "", "write a VCD waveform trace to `file`")
	prof := flag.Bool("profile", false, "write a CPU profile of the run")
	pwmDiv := flag.Uint("pwmdiv", 0, "main ticks per PWM counter increment (power of two)")
	thermDiv := flag.Uint("thermdiv", 0, "main ticks per thermal drift step (power of two)")
	flag.Parse()

	if *prof {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	if err := run(*ticks, *interactive, *vcdFile, *pwmDiv, *thermDiv); err != nil {
		log.Fatal(err)
	}
}

func run(ticks int, interactive bool, vcdFile string, pwmDiv, thermDiv uint) error {
	sim, err := evmc.New(evmc.Config{PWMDivide: pwmDiv, ThermalDivide: thermDiv})
	if err != nil {
		return err
	}

	if vcdFile != "" {
		f, err := os.Create(vcdFile)
		if err != nil {
			return errors.Wrap(err, "creating trace file")
		}
		defer f.Close()
		vcd := evmc.NewVCD(f)
		defer vcd.Flush()
		sim.SetTracer(vcd)
	}

	switch {
	case interactive:
		return monitor(sim)
	case flag.NArg() >= 1:
		return runScript(sim, flag.Arg(0))
	default:
		sim.SetInputs(evmc.Inputs{Enable: true})
		sim.Run(ticks)
		fmt.Printf("%6d %s\n", sim.Ticks(), sim.State())
		return nil
	}
}

func runScript(sim *evmc.Sim, name string) error {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrap(err, "opening script")
		}
		defer f.Close()
		r = f
	}
	cmds, err := script.Parse(r)
	if err != nil {
		return errors.Wrap(err, name)
	}
	script.Exec(sim, cmds, os.Stdout)
	return nil
}

// monitor steps the machine one tick per keypress in raw terminal mode.
// Keys: space/enter step, d dumps the register file, q quits.
func monitor(sim *evmc.Sim) error {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return errors.Wrap(err, "entering raw mode")
	}
	defer term.Restore(fd, old)

	sim.SetInputs(evmc.Inputs{Enable: true})
	fmt.Print("space steps, d dumps, q quits\r\n")
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return errors.Wrap(err, "reading key")
		}
		switch buf[0] {
		case ' ', '\r', '\n':
			sim.Step()
			o := sim.Outputs()
			fmt.Printf("%6d pwr=%d head=%d horn=%d ind=%d pwm=%d fault=%d speed=%d\r\n",
				sim.Ticks(), bit(o.Power), bit(o.Headlight), bit(o.Horn),
				bit(o.Indicator), bit(o.PWM), bit(o.Fault), o.MotorSpeed)
		case 'd':
			fmt.Printf("%6d %s\r\n", sim.Ticks(), sim.State())
		case 'q', 3: // q or ^C
			return nil
		}
	}
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}
