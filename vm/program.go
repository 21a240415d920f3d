package vm

import "fmt"

// Position addresses a single cell of the grid.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Program is the grid being executed together with the queue of values
// supplied to the & and ~ instructions.
//
// Rows may differ in length. The grid is mutated in place by the p
// instruction, and the value queue is drained front to back.
type Program struct {
	rows   [][]rune
	values []uint32
}

// NewProgram creates a program from grid rows given as strings.
func NewProgram(values []uint32, rows []string) *Program {
	grid := make([][]rune, len(rows))
	for i, row := range rows {
		grid[i] = []rune(row)
	}
	return NewProgramRunes(values, grid)
}

// NewProgramRunes creates a program that takes ownership of grid.
func NewProgramRunes(values []uint32, grid [][]rune) *Program {
	return &Program{
		rows:   grid,
		values: append([]uint32(nil), values...),
	}
}

// LineCount returns the number of rows.
func (p *Program) LineCount() int {
	return len(p.rows)
}

// CharsInLine returns the length of row, or 0 for a row that does not exist.
func (p *Program) CharsInLine(row int) int {
	if row < 0 || row >= len(p.rows) {
		return 0
	}
	return len(p.rows[row])
}

func (p *Program) inBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < len(p.rows) &&
		pos.Col >= 0 && pos.Col < len(p.rows[pos.Row])
}

// Instruction returns the character at pos. Positions outside the grid
// are reported as IndexOutOfRange; they are never clamped.
func (p *Program) Instruction(pos Position) (rune, error) {
	if !p.inBounds(pos) {
		return 0, IndexOutOfRange
	}
	return p.rows[pos.Row][pos.Col], nil
}

// SetInstruction overwrites the character at pos. The next read of that
// cell observes c.
func (p *Program) SetInstruction(pos Position, c rune) error {
	if !p.inBounds(pos) {
		return IndexOutOfRange
	}
	p.rows[pos.Row][pos.Col] = c
	return nil
}

// NextValue removes and returns the first supplied value.
// It returns EmptyInput once the queue is exhausted.
func (p *Program) NextValue() (uint32, error) {
	if len(p.values) == 0 {
		return 0, EmptyInput
	}
	v := p.values[0]
	p.values = p.values[1:]
	return v, nil
}

// Rows returns a copy of the grid as strings.
func (p *Program) Rows() []string {
	out := make([]string, len(p.rows))
	for i, row := range p.rows {
		out[i] = string(row)
	}
	return out
}

// Values returns a copy of the supplied values not yet consumed.
func (p *Program) Values() []uint32 {
	return append([]uint32(nil), p.values...)
}
