// Package script parses and executes stimulus scripts for the controller
// simulation. A script is line oriented; '#' starts a comment. Commands:
//
//	op <name|0-7>          select the opcode
//	power <a> <b>          PLC/HMI power command pair
//	headlight <a> <b>      PLC/HMI headlight pair
//	horn <a> <b>           PLC/HMI horn pair
//	indicator <a> <b>      PLC/HMI indicator pair
//	bus <0-15>             shared accelerator/brake bus value
//	mode <plc|hmi>         source priority select (reserved pin)
//	ena <on|off>           top-level enable line
//	reset <on|off>         synchronous reset line
//	run <n>                advance n ticks with the pins as set
//	dump                   print tick count and register file
//
// Pin levels accept 0/1 and off/on.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/evhw/evmc"
)

// Kind discriminates parsed commands.
type Kind int

const (
	// Set latches input pin changes.
	Set Kind = iota
	// Run advances the simulation.
	Run
	// Dump prints the register file.
	Dump
)

// A Cmd is one parsed stimulus command.
type Cmd struct {
	Kind  Kind
	Ticks int // Run only

	apply func(*evmc.Inputs) // Set only
}

func level(s string) (bool, error) {
	switch s {
	case "0", "off":
		return false, nil
	case "1", "on":
		return true, nil
	}
	return false, errors.Errorf("bad pin level %q", s)
}

func pair(args []string) (evmc.Pair, error) {
	if len(args) != 2 {
		return evmc.Pair{}, errors.New("expected PLC and HMI levels")
	}
	plc, err := level(args[0])
	if err != nil {
		return evmc.Pair{}, err
	}
	hmi, err := level(args[1])
	if err != nil {
		return evmc.Pair{}, err
	}
	return evmc.Pair{PLC: plc, HMI: hmi}, nil
}

func one(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("expected one argument")
	}
	return args[0], nil
}

func parseLine(fields []string) (Cmd, error) {
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "op":
		a, err := one(args)
		if err != nil {
			return Cmd{}, err
		}
		op, err := evmc.ParseOpcode(a)
		if err != nil {
			return Cmd{}, err
		}
		return Cmd{Kind: Set, apply: func(in *evmc.Inputs) { in.Op = op }}, nil
	case "power":
		p, err := pair(args)
		if err != nil {
			return Cmd{}, err
		}
		return Cmd{Kind: Set, apply: func(in *evmc.Inputs) { in.Power = p }}, nil
	case "headlight":
		p, err := pair(args)
		if err != nil {
			return Cmd{}, err
		}
		return Cmd{Kind: Set, apply: func(in *evmc.Inputs) { in.Headlight = p }}, nil
	case "horn":
		p, err := pair(args)
		if err != nil {
			return Cmd{}, err
		}
		return Cmd{Kind: Set, apply: func(in *evmc.Inputs) { in.Horn = p }}, nil
	case "indicator":
		p, err := pair(args)
		if err != nil {
			return Cmd{}, err
		}
		return Cmd{Kind: Set, apply: func(in *evmc.Inputs) { in.Indicator = p }}, nil
	case "bus":
		a, err := one(args)
		if err != nil {
			return Cmd{}, err
		}
		v, err := strconv.ParseUint(a, 10, 8)
		if err != nil || v > 15 {
			return Cmd{}, errors.Errorf("bus value %q out of range 0-15", a)
		}
		return Cmd{Kind: Set, apply: func(in *evmc.Inputs) { in.Bus = uint8(v) }}, nil
	case "mode":
		a, err := one(args)
		if err != nil {
			return Cmd{}, err
		}
		var m bool
		switch a {
		case "plc":
			m = false
		case "hmi":
			m = true
		default:
			return Cmd{}, errors.Errorf("bad mode %q, expected plc or hmi", a)
		}
		return Cmd{Kind: Set, apply: func(in *evmc.Inputs) { in.Mode = m }}, nil
	case "ena":
		a, err := one(args)
		if err != nil {
			return Cmd{}, err
		}
		v, err := level(a)
		if err != nil {
			return Cmd{}, err
		}
		return Cmd{Kind: Set, apply: func(in *evmc.Inputs) { in.Enable = v }}, nil
	case "reset":
		a, err := one(args)
		if err != nil {
			return Cmd{}, err
		}
		v, err := level(a)
		if err != nil {
			return Cmd{}, err
		}
		return Cmd{Kind: Set, apply: func(in *evmc.Inputs) { in.Reset = v }}, nil
	case "run":
		a, err := one(args)
		if err != nil {
			return Cmd{}, err
		}
		n, err := strconv.Atoi(a)
		if err != nil || n < 1 {
			return Cmd{}, errors.Errorf("bad tick count %q", a)
		}
		return Cmd{Kind: Run, Ticks: n}, nil
	case "dump":
		if len(args) != 0 {
			return Cmd{}, errors.New("dump takes no arguments")
		}
		return Cmd{Kind: Dump}, nil
	}
	return Cmd{}, errors.Errorf("unknown command %q", cmd)
}

// Parse reads a stimulus script.
func Parse(r io.Reader) ([]Cmd, error) {
	var cmds []Cmd
	sc := bufio.NewScanner(r)
	for ln := 1; sc.Scan(); ln++ {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		c, err := parseLine(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", ln)
		}
		cmds = append(cmds, c)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading script")
	}
	return cmds, nil
}

// Exec runs a parsed script against sim. Pin settings accumulate; the enable
// line starts asserted so a script that never mentions it just runs. Dumps
// are written to w.
func Exec(sim *evmc.Sim, cmds []Cmd, w io.Writer) {
	in := evmc.Inputs{Enable: true}
	for _, c := range cmds {
		switch c.Kind {
		case Set:
			c.apply(&in)
		case Run:
			sim.SetInputs(in)
			sim.Run(c.Ticks)
		case Dump:
			fmt.Fprintf(w, "%6d %s\n", sim.Ticks(), sim.State())
		}
	}
}
