package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/lmorg/readline/v4"

	"github.com/sketchsolve/core/examples"
	"github.com/sketchsolve/core/groupgen"
	"github.com/sketchsolve/core/sketch"
	"github.com/sketchsolve/core/solve"
)

// group is the only group this console ever builds into; a real host
// application drives multiple groups through repeated Solve calls, but one
// is enough to exercise the whole pipeline interactively.
const group = sketch.GroupHandle(1)

// REPL is a line-oriented console over one in-memory sketch.Store: each
// command allocates an entity or constraint, echoes the handle it got back,
// and "solve" runs the numeric kernel against everything built so far.
type REPL struct {
	store   *sketch.Store
	dragged []sketch.ParamHandle
	input   io.Reader
	output  io.Writer
	prompt  string
}

// NewREPL constructs a console reading from stdin and writing to stdout,
// starting from an empty sketch.
func NewREPL() *REPL {
	return &REPL{
		store:  sketch.NewStore(),
		input:  os.Stdin,
		output: os.Stdout,
		prompt: "sketch> ",
	}
}

func (r *REPL) isInteractive() bool {
	if r.input == os.Stdin {
		return term.IsTerminal(int(os.Stdin.Fd()))
	}
	return false
}

// Run dispatches to the readline-backed interactive loop on a terminal, or a
// plain line scanner otherwise (piped input, a test harness).
func (r *REPL) Run() error {
	if r.isInteractive() {
		return r.runInteractive()
	}
	scanner := bufio.NewScanner(r.input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if r.dispatch(line) {
			return nil
		}
	}
	return scanner.Err()
}

func (r *REPL) runInteractive() error {
	rl := readline.NewInstance()
	for {
		rl.SetPrompt(r.prompt)
		line, err := rl.Readline()
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if r.dispatch(line) {
			return nil
		}
	}
}

// dispatch runs one command line and reports whether the REPL should exit.
func (r *REPL) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	var err error
	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		r.printHelp()
	case "point":
		err = r.cmdPoint(args)
	case "distance":
		err = r.cmdDistance(args)
	case "coincident":
		err = r.cmdCoincident(args)
	case "drag":
		err = r.cmdDrag(args)
	case "solve":
		err = r.cmdSolve()
	case "list":
		r.cmdList()
	case "demo":
		err = r.cmdDemo(args)
	case "reset":
		r.store = sketch.NewStore()
		r.dragged = nil
	default:
		err = fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}
	if err != nil {
		fmt.Fprintf(r.output, "error: %v\n", err)
	}
	return false
}

func (r *REPL) cmdPoint(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: point <x> <y> <z>")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return err
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return err
	}
	z, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return err
	}
	e := groupgen.PointIn3D(r.store, group, x, y, z)
	fmt.Fprintf(r.output, "point %d\n", e.H)
	return nil
}

func (r *REPL) cmdDistance(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: distance <pointA> <pointB> <value>")
	}
	a, b, err := parseTwoHandles(args[0], args[1])
	if err != nil {
		return err
	}
	val, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return err
	}
	c, err := groupgen.Constraint(r.store, &sketch.ConstraintBase{
		Group: group, Kind: sketch.PtPtDistance, Wrkpl: sketch.FreeIn3D,
		PtA: a, PtB: b, ValA: val,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.output, "constraint %d\n", c.H)
	return nil
}

func (r *REPL) cmdCoincident(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: coincident <pointA> <pointB>")
	}
	a, b, err := parseTwoHandles(args[0], args[1])
	if err != nil {
		return err
	}
	c, err := groupgen.Constraint(r.store, &sketch.ConstraintBase{
		Group: group, Kind: sketch.PointsCoincident, Wrkpl: sketch.FreeIn3D,
		PtA: a, PtB: b,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.output, "constraint %d\n", c.H)
	return nil
}

func (r *REPL) cmdDrag(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: drag <point>")
	}
	h, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return err
	}
	e, err := r.store.EntityFor(sketch.EntityHandle(h))
	if err != nil {
		return err
	}
	for _, p := range e.Param {
		if p.Valid() {
			r.dragged = append(r.dragged, p)
		}
	}
	fmt.Fprintf(r.output, "dragging entity %d\n", h)
	return nil
}

func (r *REPL) cmdSolve() error {
	var opts []solve.Option
	opts = append(opts, solve.WithFindFree())
	if len(r.dragged) > 0 {
		opts = append(opts, solve.WithDragged(r.dragged...))
	}
	result, err := solve.Solve(r.store, group, opts...)
	if err != nil {
		fmt.Fprintf(r.output, "%s (dof=%d)\n", err, result.DOF)
		return nil
	}
	fmt.Fprintf(r.output, "okay (rank=%s, dof=%d)\n", result.Rank, result.DOF)
	r.store.Params.Each(func(p *sketch.Param) {
		fmt.Fprintf(r.output, "  param %d = %g\n", p.H, p.Val)
	})
	return nil
}

// cmdDemo loads one of the seed scenarios from the examples package,
// replacing whatever sketch this console currently holds, and reports the
// outcome exactly as cmdSolve would.
func (r *REPL) cmdDemo(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: demo <s1|s2|s3|s4|s5|s6>")
	}
	var (
		result *solve.Result
		store  *sketch.Store
		err    error
		bad    []sketch.ConstraintHandle
	)
	switch strings.ToLower(args[0]) {
	case "s1":
		result, store, err = examples.RunS1()
	case "s2":
		result, store, err = examples.RunS2()
	case "s3":
		result, bad, store, err = examples.RunS3()
	case "s4":
		result, store, err = examples.RunS4()
	case "s5":
		result, bad, store, err = examples.RunS5()
	case "s6":
		result, store, err = examples.RunS6()
	default:
		return fmt.Errorf("unknown demo %q (try s1..s6)", args[0])
	}
	r.store = store
	r.dragged = nil
	if err != nil {
		fmt.Fprintf(r.output, "%s (rank=%s)\n", err, result.Rank)
	} else {
		fmt.Fprintf(r.output, "okay (rank=%s, dof=%d)\n", result.Rank, result.DOF)
	}
	if len(bad) > 0 {
		fmt.Fprintf(r.output, "bad constraints: %v\n", bad)
	}
	return nil
}

func (r *REPL) cmdList() {
	r.store.Entities.Each(func(e *sketch.EntityBase) {
		fmt.Fprintf(r.output, "entity %d: kind=%d\n", e.H, e.Kind)
	})
	r.store.Constraints.Each(func(c *sketch.ConstraintBase) {
		fmt.Fprintf(r.output, "constraint %d: kind=%d\n", c.H, c.Kind)
	})
}

func parseTwoHandles(sa, sb string) (sketch.EntityHandle, sketch.EntityHandle, error) {
	a, err := strconv.ParseUint(sa, 10, 32)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseUint(sb, 10, 32)
	if err != nil {
		return 0, 0, err
	}
	return sketch.EntityHandle(a), sketch.EntityHandle(b), nil
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.output, `
Commands:
  point <x> <y> <z>           create a free 3D point, print its handle
  distance <a> <b> <value>    constrain two points to a distance apart
  coincident <a> <b>          constrain two points to coincide
  drag <point>                mark a point as dragged for the next solve
  solve                       run the solver against everything built so far
  list                        list every entity and constraint
  demo <s1|s2|s3|s4|s5|s6>     load one of the seed scenarios and solve it
  reset                       discard the current sketch and start over
  help                        show this message
  quit, exit                  leave the console
`)
}
