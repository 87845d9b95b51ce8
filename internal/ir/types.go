package ir

import "fmt"

// Op identifies an instruction kind.
type Op uint8

// Instruction kinds. MoveNext increases the cursor and MovePrev decreases it;
// that mapping is used by the parser and the engine alike.
const (
	MoveNext Op = iota + 1
	MovePrev
	Increment
	Decrement
	Output
	Input
	Loop
)

// Command characters for each instruction kind.
const (
	CharMoveNext  = '>'
	CharMovePrev  = '<'
	CharIncrement = '+'
	CharDecrement = '-'
	CharOutput    = '.'
	CharInput     = ','
	CharLoopOpen  = '['
	CharLoopClose = ']'
)

var opNames = map[Op]string{
	MoveNext:  "move_next",
	MovePrev:  "move_prev",
	Increment: "increment",
	Decrement: "decrement",
	Output:    "output",
	Input:     "input",
	Loop:      "loop",
}

// String returns the snake_case name of the op.
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Valid reports whether o is one of the seven defined kinds.
func (o Op) Valid() bool {
	_, ok := opNames[o]
	return ok
}

// ParseOp maps a snake_case name back to its Op.
func ParseOp(name string) (Op, bool) {
	for op, n := range opNames {
		if n == name {
			return op, true
		}
	}
	return 0, false
}

// LeafOp maps a leaf command character to its Op.
// Brackets and every other character report false.
func LeafOp(ch rune) (Op, bool) {
	switch ch {
	case CharMoveNext:
		return MoveNext, true
	case CharMovePrev:
		return MovePrev, true
	case CharIncrement:
		return Increment, true
	case CharDecrement:
		return Decrement, true
	case CharOutput:
		return Output, true
	case CharInput:
		return Input, true
	default:
		return 0, false
	}
}

// Instruction is one node of the tree. Body is set only when Op is Loop.
type Instruction struct {
	Op   Op
	Body []Instruction
}

// Program is the root instruction sequence.
type Program []Instruction

// Leaf builds a non-loop instruction.
func Leaf(op Op) Instruction {
	return Instruction{Op: op}
}

// NewLoop builds a Loop owning body.
func NewLoop(body ...Instruction) Instruction {
	if body == nil {
		body = []Instruction{}
	}
	return Instruction{Op: Loop, Body: body}
}
