package vm

import "math/rand/v2"

// DirectionSource supplies the choice made by the ? instruction.
// IntN must return a value in [0, n); anything else is an InternalFault.
type DirectionSource interface {
	IntN(n int) int
}

// NewDirectionSource returns a PCG-backed source; equal seeds give equal
// sequences.
func NewDirectionSource(seed uint64) DirectionSource {
	return rand.New(newPCG(seed))
}

func newPCG(seed uint64) *rand.PCG {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}
