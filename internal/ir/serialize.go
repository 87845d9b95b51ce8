package ir

import (
	"encoding/json"
	"fmt"
	"strings"
)

// String serializes the program back to command characters only.
// Parsing the result yields a structurally equal program.
func (p Program) String() string {
	var b strings.Builder
	writeCommands(&b, p)
	return b.String()
}

// String serializes a single instruction (and its body) to command characters.
func (in Instruction) String() string {
	var b strings.Builder
	writeCommands(&b, []Instruction{in})
	return b.String()
}

func writeCommands(b *strings.Builder, seq []Instruction) {
	for _, in := range seq {
		switch in.Op {
		case MoveNext:
			b.WriteByte(CharMoveNext)
		case MovePrev:
			b.WriteByte(CharMovePrev)
		case Increment:
			b.WriteByte(CharIncrement)
		case Decrement:
			b.WriteByte(CharDecrement)
		case Output:
			b.WriteByte(CharOutput)
		case Input:
			b.WriteByte(CharInput)
		case Loop:
			b.WriteByte(CharLoopOpen)
			writeCommands(b, in.Body)
			b.WriteByte(CharLoopClose)
		}
	}
}

// instructionJSON is the wire shape of an Instruction.
type instructionJSON struct {
	Op   string        `json:"op"`
	Body []Instruction `json:"body,omitempty"`
}

// MarshalJSON encodes the instruction as {"op": name, "body": [...]}.
// An empty loop body is written as [] so the loop stays distinguishable.
func (in Instruction) MarshalJSON() ([]byte, error) {
	if !in.Op.Valid() {
		return nil, fmt.Errorf("marshal instruction: invalid op %d", uint8(in.Op))
	}
	if in.Op == Loop {
		body := in.Body
		if body == nil {
			body = []Instruction{}
		}
		return json.Marshal(struct {
			Op   string        `json:"op"`
			Body []Instruction `json:"body"`
		}{Op: in.Op.String(), Body: body})
	}
	return json.Marshal(instructionJSON{Op: in.Op.String()})
}

// UnmarshalJSON decodes the shape written by MarshalJSON.
func (in *Instruction) UnmarshalJSON(data []byte) error {
	var raw instructionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	op, ok := ParseOp(raw.Op)
	if !ok {
		return fmt.Errorf("unmarshal instruction: unknown op %q", raw.Op)
	}
	if op != Loop && len(raw.Body) > 0 {
		return fmt.Errorf("unmarshal instruction: %s cannot have a body", op)
	}
	in.Op = op
	in.Body = nil
	if op == Loop {
		in.Body = raw.Body
		if in.Body == nil {
			in.Body = []Instruction{}
		}
	}
	return nil
}
