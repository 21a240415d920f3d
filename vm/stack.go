package vm

// Stack is the operand stack of a running program.
//
// Popping an empty Stack yields 0; underflow is never an error.
type Stack struct {
	values []uint32
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Pop removes and returns the top value, or 0 if the stack is empty.
func (s *Stack) Pop() uint32 {
	n := len(s.values)
	if n == 0 {
		return 0
	}
	v := s.values[n-1]
	s.values = s.values[:n-1]
	return v
}

// Push appends v as the new top.
func (s *Stack) Push(v uint32) {
	s.values = append(s.values, v)
}

// DuplicateTop pushes a second copy of the top value.
// On an empty stack it pushes two zeros.
func (s *Stack) DuplicateTop() {
	if len(s.values) == 0 {
		s.values = append(s.values, 0, 0)
		return
	}
	s.values = append(s.values, s.values[len(s.values)-1])
}

// SwapTopTwo exchanges the two topmost values.
//
// With a single value a, the stack becomes [a, 0] (a below the zero).
// With no values it becomes [0, 0].
func (s *Stack) SwapTopTwo() {
	switch len(s.values) {
	case 0:
		s.values = append(s.values, 0, 0)
	case 1:
		s.values = append(s.values, 0)
	default:
		n := len(s.values)
		s.values[n-1], s.values[n-2] = s.values[n-2], s.values[n-1]
	}
}

// Len returns the stack depth.
func (s *Stack) Len() int {
	return len(s.values)
}

// Values returns a copy of the stack contents, bottom first.
func (s *Stack) Values() []uint32 {
	return append([]uint32(nil), s.values...)
}
