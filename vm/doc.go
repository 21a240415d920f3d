// Package vm implements the funge execution engine.
//
// This package contains:
//   - Stack: uint32 LIFO whose pop never underflows
//   - Program: jagged, self-modifiable character grid plus supplied input values
//   - Interpreter: the fetch/decode/execute loop over position, direction and mode
//   - Snapshot: CBOR images of interpreter state that can be resumed
//
// Programs are written in a restricted Befunge-93 dialect. The grid wraps
// toroidally, but each row wraps at its own length.
//
// Values are uint32 and arithmetic wraps. The ` comparison is unsigned,
// while . prints values as int32, so after 39- the stack shows -6 yet
// 0` reports it greater than zero.
package vm
