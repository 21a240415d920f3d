package vm

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// dispatch interprets c according to the current mode, performing its
// stack, grid and output effects, and returns the resulting pointer action.
func (i *Interpreter) dispatch(c rune) Action {
	if i.mode == StringCapture {
		if c == '"' {
			return ChangeMode(Normal)
		}
		i.stack.Push(uint32(c))
		return NoOp
	}

	s := i.stack
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		s.Push(uint32(c - '0'))

	// Arithmetic: a is popped first, the result is b OP a
	case '+':
		a, b := s.Pop(), s.Pop()
		s.Push(b + a)
	case '-':
		a, b := s.Pop(), s.Pop()
		s.Push(b - a)
	case '*':
		a, b := s.Pop(), s.Pop()
		s.Push(b * a)
	case '/':
		a, b := s.Pop(), s.Pop()
		if a == 0 {
			raise(ZeroDivision)
		}
		s.Push(b / a)
	case '%':
		a, b := s.Pop(), s.Pop()
		if a == 0 {
			raise(ZeroDivision)
		}
		s.Push(b % a)
	case '!':
		s.Push(boolValue(s.Pop() == 0))
	case '`':
		a, b := s.Pop(), s.Pop()
		s.Push(boolValue(b > a))

	// Pointer control
	case '>':
		return ChangeDirection(Right)
	case '<':
		return ChangeDirection(Left)
	case '^':
		return ChangeDirection(Up)
	case 'v':
		return ChangeDirection(Down)
	case '?':
		return i.randomDirection()
	case '_':
		if s.Pop() == 0 {
			return ChangeDirection(Right)
		}
		return ChangeDirection(Left)
	case '|':
		if s.Pop() == 0 {
			return ChangeDirection(Down)
		}
		return ChangeDirection(Up)
	case '"':
		return ChangeMode(StringCapture)
	case '#':
		return Trampoline
	case '@':
		return Halt

	// Stack manipulation
	case ':':
		s.DuplicateTop()
	case '\\':
		s.SwapTopTwo()
	case '$':
		s.Pop()

	// Output
	case '.':
		i.emit(strconv.FormatInt(int64(int32(s.Pop())), 10) + " ")
	case ',':
		i.emit(string(toRune(s.Pop())) + " ")

	// Grid access
	case 'p':
		x, y, v := s.Pop(), s.Pop(), s.Pop()
		addr := Position{Row: int(y), Col: int(x)}
		if err := i.program.SetInstruction(addr, toRune(v)); err != nil {
			raiseAddr(IndexOutOfRange, addr)
		}
	case 'g':
		x, y := s.Pop(), s.Pop()
		addr := Position{Row: int(y), Col: int(x)}
		c, err := i.program.Instruction(addr)
		if err != nil {
			raiseAddr(IndexOutOfRange, addr)
		}
		s.Push(uint32(c))

	// Input. & and ~ both take the next supplied value.
	case '&', '~':
		v, err := i.program.NextValue()
		if err != nil {
			raise(EmptyInput)
		}
		s.Push(v)
	}
	return NoOp
}

func (i *Interpreter) randomDirection() Action {
	switch n := i.source.IntN(4); n {
	case 0:
		return ChangeDirection(Right)
	case 1:
		return ChangeDirection(Left)
	case 2:
		return ChangeDirection(Up)
	case 3:
		return ChangeDirection(Down)
	default:
		panic(fault{errno: InternalFault, err: fmt.Errorf("direction source returned %d", n)})
	}
}

func toRune(v uint32) rune {
	r := rune(v)
	if !utf8.ValidRune(r) {
		raise(InvalidCodepoint)
	}
	return r
}

func boolValue(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
