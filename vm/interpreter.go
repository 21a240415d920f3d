package vm

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
)

// cancelCheckInterval is how many steps Execute runs between polls of ctx.
const cancelCheckInterval = 256

// ---------------------------------------------------------------------------
// Interpreter: Grid execution engine
// ---------------------------------------------------------------------------

// Interpreter executes a Program.
//
// An Interpreter owns its Stack and Program exclusively and is not safe
// for concurrent use.
type Interpreter struct {
	stack   *Stack
	program *Program

	// Instruction pointer and mode
	pos  Position
	dir  Direction
	mode Mode

	out       io.Writer
	source    DirectionSource
	pcg       *rand.PCG
	banner    string
	stepLimit uint64
	trace     bool

	runID  uuid.UUID
	steps  uint64
	halted bool
	log    commonlog.Logger
}

// NewInterpreter creates an interpreter positioned at (0,0), heading
// right, in normal mode, with an empty stack.
func NewInterpreter(p *Program, opts ...Option) *Interpreter {
	cfg := newConfig(opts)
	return &Interpreter{
		stack:     NewStack(),
		program:   p,
		dir:       Right,
		mode:      Normal,
		out:       cfg.out,
		source:    cfg.source,
		pcg:       cfg.pcg,
		banner:    cfg.banner,
		stepLimit: cfg.stepLimit,
		trace:     cfg.trace,
		runID:     cfg.runID,
		log:       commonlog.GetLogger("funge.vm"),
	}
}

// Stack returns the operand stack.
func (i *Interpreter) Stack() *Stack { return i.stack }

// Program returns the program being executed.
func (i *Interpreter) Program() *Program { return i.program }

// Position returns the current pointer position.
func (i *Interpreter) Position() Position { return i.pos }

// Direction returns the current pointer direction.
func (i *Interpreter) Direction() Direction { return i.dir }

// Mode returns the current interpreter mode.
func (i *Interpreter) Mode() Mode { return i.mode }

// Steps returns the number of instructions executed so far.
func (i *Interpreter) Steps() uint64 { return i.steps }

// RunID identifies this run in logs, snapshots and the journal.
func (i *Interpreter) RunID() uuid.UUID { return i.runID }

// Halted reports whether the program has reached @.
func (i *Interpreter) Halted() bool { return i.halted }

// ---------------------------------------------------------------------------
// Main loop
// ---------------------------------------------------------------------------

// Execute runs the program until it halts, faults, exceeds the step
// limit or ctx is done. Faults are returned as *Error.
func (i *Interpreter) Execute(ctx context.Context) error {
	i.log.Infof("run %s: start at %s heading %s", i.runID, i.pos, i.dir)
	for {
		if i.steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				e := i.newError(fault{errno: Cancelled, err: err}, i.current())
				i.log.Infof("run %s: %s", i.runID, e)
				return e
			}
		}
		halted, err := i.Step()
		if err != nil {
			i.log.Infof("run %s: %s", i.runID, err)
			return err
		}
		if halted {
			i.log.Infof("run %s: halted after %d steps", i.runID, i.steps)
			return nil
		}
	}
}

// Step executes the instruction under the pointer and moves the pointer.
// It reports true once the program has halted; further calls do nothing.
func (i *Interpreter) Step() (halted bool, err error) {
	if i.halted {
		return true, nil
	}

	var instr rune
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(fault)
			if !ok {
				panic(r)
			}
			halted, err = false, i.newError(f, instr)
		}
	}()

	instr = i.current()
	if i.stepLimit > 0 && i.steps >= i.stepLimit {
		raise(StepLimitExceeded)
	}

	instr = i.fetch()
	action := i.dispatch(instr)
	if i.trace {
		i.log.Debugf("run %s: step %d %s %q %s stack=%v",
			i.runID, i.steps, i.pos, instr, i.mode, i.stack.values)
	}
	i.steps++

	if action.Kind == ActHalt {
		i.halted = true
		i.emit(i.banner)
		return true, nil
	}
	i.apply(action)
	return false, nil
}

func (i *Interpreter) fetch() rune {
	c, err := i.program.Instruction(i.pos)
	if err != nil {
		raiseAddr(IndexOutOfRange, i.pos)
	}
	return c
}

// current returns the character under the pointer, or 0 if the pointer
// is off the grid.
func (i *Interpreter) current() rune {
	c, _ := i.program.Instruction(i.pos)
	return c
}

func (i *Interpreter) apply(a Action) {
	switch a.Kind {
	case ActChangeDirection:
		i.dir = a.Direction
	case ActChangeMode:
		i.mode = a.Mode
	case ActTrampoline:
		i.advance()
	}
	i.advance()
}

// advance moves the pointer one cell, wrapping at the edges. Horizontal
// moves wrap at the length of the current row.
func (i *Interpreter) advance() {
	switch i.dir {
	case Right:
		if i.pos.Col == i.program.CharsInLine(i.pos.Row)-1 {
			i.pos.Col = 0
		} else {
			i.pos.Col++
		}
	case Left:
		if i.pos.Col == 0 {
			i.pos.Col = i.program.CharsInLine(i.pos.Row) - 1
		} else {
			i.pos.Col--
		}
	case Up:
		if i.pos.Row == 0 {
			i.pos.Row = i.program.LineCount() - 1
		} else {
			i.pos.Row--
		}
	case Down:
		if i.pos.Row == i.program.LineCount()-1 {
			i.pos.Row = 0
		} else {
			i.pos.Row++
		}
	default:
		panic(fault{errno: InternalFault, err: fmt.Errorf("direction %d", i.dir)})
	}
}

func (i *Interpreter) emit(s string) {
	if _, err := io.WriteString(i.out, s); err != nil {
		panic(fault{errno: IOError, err: err})
	}
}
