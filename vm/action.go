package vm

// Direction is the heading of the instruction pointer.
type Direction uint8

const (
	Right Direction = iota
	Left
	Up
	Down
)

var directionNames = [...]string{"right", "left", "up", "down"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "direction?"
}

// Mode selects how characters under the pointer are interpreted.
type Mode uint8

const (
	// Normal dispatches characters through the instruction table.
	Normal Mode = iota
	// StringCapture pushes each character's codepoint until the next '"'.
	StringCapture
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case StringCapture:
		return "string"
	}
	return "mode?"
}

// ActionKind identifies the variant held by an Action.
type ActionKind uint8

const (
	ActNoOp ActionKind = iota
	ActChangeDirection
	ActChangeMode
	ActTrampoline
	ActHalt
)

// Action describes the effect of one instruction on the pointer state.
// Dispatch produces it; the interpreter loop applies it.
type Action struct {
	Kind      ActionKind
	Direction Direction // for ActChangeDirection
	Mode      Mode      // for ActChangeMode
}

var (
	NoOp       = Action{Kind: ActNoOp}
	Trampoline = Action{Kind: ActTrampoline}
	Halt       = Action{Kind: ActHalt}
)

// ChangeDirection returns an action that points the pointer at d.
func ChangeDirection(d Direction) Action {
	return Action{Kind: ActChangeDirection, Direction: d}
}

// ChangeMode returns an action that switches the interpreter to m.
func ChangeMode(m Mode) Action {
	return Action{Kind: ActChangeMode, Mode: m}
}
