package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeafOpMapping(t *testing.T) {
	tests := []struct {
		ch   rune
		op   Op
		leaf bool
	}{
		{'>', MoveNext, true},
		{'<', MovePrev, true},
		{'+', Increment, true},
		{'-', Decrement, true},
		{'.', Output, true},
		{',', Input, true},
		{'[', 0, false},
		{']', 0, false},
		{'a', 0, false},
		{' ', 0, false},
		{'→', 0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.ch), func(t *testing.T) {
			op, ok := LeafOp(tt.ch)
			assert.Equal(t, tt.leaf, ok)
			assert.Equal(t, tt.op, op)
		})
	}
}

func TestOpNamesRoundTrip(t *testing.T) {
	for _, op := range []Op{MoveNext, MovePrev, Increment, Decrement, Output, Input, Loop} {
		assert.True(t, op.Valid())
		parsed, ok := ParseOp(op.String())
		assert.True(t, ok, "op %s should parse", op)
		assert.Equal(t, op, parsed)
	}

	assert.False(t, Op(0).Valid())
	assert.Equal(t, "op(99)", Op(99).String())
	_, ok := ParseOp("jump")
	assert.False(t, ok)
}

func TestNewLoopNeverNilBody(t *testing.T) {
	loop := NewLoop()
	assert.Equal(t, Loop, loop.Op)
	assert.NotNil(t, loop.Body)
	assert.Empty(t, loop.Body)
}
