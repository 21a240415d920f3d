package vm

import "fmt"

// List of faults that end a run, for Errno
const (
	EmptyInput = Errno(iota)
	IndexOutOfRange
	ZeroDivision
	InvalidCodepoint
	InternalFault
	StepLimitExceeded
	Cancelled
	IOError
)

var strError = []string{
	"empty input",
	"index out of range",
	"zero division",
	"invalid codepoint",
	"internal fault",
	"step limit exceeded",
	"cancelled",
	"I/O error",
}

// Errno describes the reason a run stopped before halting.
type Errno int

func (e Errno) Error() string {
	if e < 0 || int(e) >= len(strError) {
		return fmt.Sprintf("errno %d", int(e))
	}
	return strError[e]
}

// Error describes the cause and the interpreter state of a failed run.
type Error struct {
	Errno     Errno     // nature of the fault
	Err       error     // context or write error for Cancelled and IOError
	Pos       Position  // pointer position when the fault was raised
	Instr     rune      // character under the pointer
	Direction Direction // pointer direction
	Mode      Mode      // interpreter mode
	Addr      Position  // grid address for IndexOutOfRange raised by p or g
	Step      uint64    // number of completed steps
	Stack     []uint32  // copy of the stack, bottom first
}

func (e *Error) Error() string {
	msg := "funge: "
	if e.Err != nil {
		msg += e.Errno.Error() + ": " + e.Err.Error()
	} else {
		msg += e.Errno.Error()
	}
	if e.Errno == IndexOutOfRange {
		msg += " " + e.Addr.String()
	}
	return fmt.Sprintf("%s at %s %q (step %d)", msg, e.Pos, e.Instr, e.Step)
}

// Unwrap exposes both the Errno and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Errno, e.Err}
	}
	return []error{e.Errno}
}

// fault is carried by panic from deep inside an instruction back to Step.
type fault struct {
	errno Errno
	err   error
	addr  Position
}

func raise(errno Errno) {
	panic(fault{errno: errno})
}

func raiseAddr(errno Errno, addr Position) {
	panic(fault{errno: errno, addr: addr})
}

func (i *Interpreter) newError(f fault, instr rune) *Error {
	return &Error{
		Errno:     f.errno,
		Err:       f.err,
		Pos:       i.pos,
		Instr:     instr,
		Direction: i.dir,
		Mode:      i.mode,
		Addr:      f.addr,
		Step:      i.steps,
		Stack:     i.stack.Values(),
	}
}
