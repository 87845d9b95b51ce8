package ir

// Equal reports structural equality of two programs.
// A nil and an empty body are equal.
func (p Program) Equal(other Program) bool {
	return equalSeq(p, other)
}

func equalSeq(a, b []Instruction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Op != b[i].Op {
			return false
		}
		if a[i].Op == Loop && !equalSeq(a[i].Body, b[i].Body) {
			return false
		}
	}
	return true
}

// Stats summarises a program's shape.
type Stats struct {
	Instructions int            `json:"instructions"`
	Loops        int            `json:"loops"`
	MaxDepth     int            `json:"max_depth"`
	ByOp         map[string]int `json:"by_op"`
}

// Stats counts instructions (a loop counts as one, plus its body) and the
// deepest loop nesting. The walk keeps its own stack, so arbitrarily deep
// nesting does not grow the goroutine stack.
func (p Program) Stats() Stats {
	s := Stats{ByOp: make(map[string]int)}

	type level struct {
		seq   []Instruction
		depth int
	}
	stack := []level{{seq: p}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.depth > s.MaxDepth {
			s.MaxDepth = top.depth
		}
		for _, in := range top.seq {
			s.Instructions++
			s.ByOp[in.Op.String()]++
			if in.Op == Loop {
				s.Loops++
				stack = append(stack, level{seq: in.Body, depth: top.depth + 1})
			}
		}
	}
	return s
}
