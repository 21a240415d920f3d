package vm

import (
	"fmt"
	"math/rand/v2"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Snapshot is a serializable image of an interpreter between steps.
type Snapshot struct {
	RunID     string    `cbor:"1,keyasint"`
	Steps     uint64    `cbor:"2,keyasint"`
	Row       int       `cbor:"3,keyasint"`
	Col       int       `cbor:"4,keyasint"`
	Direction Direction `cbor:"5,keyasint"`
	Mode      Mode      `cbor:"6,keyasint"`
	Halted    bool      `cbor:"7,keyasint"`
	Stack     []uint32  `cbor:"8,keyasint"`
	Grid      []string  `cbor:"9,keyasint"`
	Values    []uint32  `cbor:"10,keyasint"`
	RNG       []byte    `cbor:"11,keyasint,omitempty"` // PCG state; empty for injected sources
}

// snapshotEncMode uses canonical CBOR so equal states encode to equal bytes.
var snapshotEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	snapshotEncMode = em
}

// Snapshot captures the current interpreter state.
func (i *Interpreter) Snapshot() *Snapshot {
	var rng []byte
	if i.pcg != nil {
		// PCG.MarshalBinary never fails.
		rng, _ = i.pcg.MarshalBinary()
	}
	return &Snapshot{
		RunID:     i.runID.String(),
		Steps:     i.steps,
		Row:       i.pos.Row,
		Col:       i.pos.Col,
		Direction: i.dir,
		Mode:      i.mode,
		Halted:    i.halted,
		Stack:     i.stack.Values(),
		Grid:      i.program.Rows(),
		Values:    i.program.Values(),
		RNG:       rng,
	}
}

// Restore rebuilds an interpreter that continues from s. The run ID, step
// count and direction source state carry over unless overridden by opts.
func Restore(s *Snapshot, opts ...Option) (*Interpreter, error) {
	if s.Direction > Down {
		return nil, fmt.Errorf("vm: restore: bad direction %d", s.Direction)
	}
	if s.Mode > StringCapture {
		return nil, fmt.Errorf("vm: restore: bad mode %d", s.Mode)
	}
	id, err := uuid.Parse(s.RunID)
	if err != nil {
		return nil, fmt.Errorf("vm: restore: run id: %w", err)
	}

	base := []Option{WithRunID(id)}
	if len(s.RNG) > 0 {
		pcg := new(rand.PCG)
		if err := pcg.UnmarshalBinary(s.RNG); err != nil {
			return nil, fmt.Errorf("vm: restore: rng state: %w", err)
		}
		base = append(base, withPCG(pcg))
	}

	interp := NewInterpreter(NewProgram(s.Values, s.Grid), append(base, opts...)...)
	for _, v := range s.Stack {
		interp.stack.Push(v)
	}
	interp.pos = Position{Row: s.Row, Col: s.Col}
	interp.dir = s.Direction
	interp.mode = s.Mode
	interp.steps = s.Steps
	interp.halted = s.Halted
	return interp, nil
}

// MarshalSnapshot serializes a Snapshot to CBOR bytes.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	return snapshotEncMode.Marshal(s)
}

// UnmarshalSnapshot deserializes a Snapshot from CBOR bytes.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("vm: unmarshal snapshot: %w", err)
	}
	return &s, nil
}
