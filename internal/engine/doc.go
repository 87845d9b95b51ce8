// Package engine implements the tree-walking evaluator.
//
// A Machine owns a fixed tape of TapeSize byte cells and a single cursor.
// Run zeroes both, then executes a Program instruction by instruction,
// performing byte I/O against the configured input and output.
//
// EXECUTION MODEL:
//
// The walk is iterative. The machine keeps an explicit stack of frames, one
// per active loop plus the root, so nesting depth never grows the goroutine
// stack. A Loop is entered only when the current cell is non-zero; when a
// frame reaches the end of its body the condition is re-checked and the body
// either restarts or the frame is popped.
//
// CURSOR AND BOUNDS:
//
// Moves wrap at the width of uint, not at the tape length, so "<" from cell 0
// yields the largest uint. Moving never fails. Any access to the tape with the
// cursor outside [0, TapeSize) fails with a TAPE_BOUNDS RuntimeError; the
// loop condition counts as an access.
//
// INPUT AND OUTPUT:
//
// Input reads exactly one byte. At end of input the cell is set to 0.
// Output is buffered and flushed before every input read and when Run returns,
// so prompts appear before the program blocks on input.
//
// A Machine is single-threaded and must not be shared between goroutines.
package engine
