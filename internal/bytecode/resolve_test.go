package bytecode

import (
	"testing"

	"github.com/sorth-lang/sorthc/internal/source"
	"github.com/sorth-lang/sorthc/internal/value"
	"github.com/stretchr/testify/require"
)

func TestResolveJumpsComputesRelativeOffsets(t *testing.T) {
	c := NewConstruction(source.Location{})
	c.Code = []Instruction{
		{ID: PushConstantValue, Operand: value.NewInt(1)},
		{ID: JumpIfZero, Operand: value.NewString("end")},
		{ID: PushConstantValue, Operand: value.NewInt(2)},
		{ID: JumpTarget, Operand: value.NewString("end")},
	}

	ResolveJumps(c)

	offset, err := c.Code[1].Operand.AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(2), offset) // from index 1 to index 3

	target, err := c.Code[3].Operand.AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(0), target)
}

func TestResolveJumpsIdempotent(t *testing.T) {
	c := NewConstruction(source.Location{})
	c.Code = []Instruction{
		{ID: Jump, Operand: value.NewString("here")},
		{ID: JumpTarget, Operand: value.NewString("here")},
	}

	ResolveJumps(c)
	first := append([]Instruction(nil), c.Code...)
	ResolveJumps(c)
	require.Equal(t, first, c.Code)
}

func TestResolveJumpsLeavesUnknownLabelUntouched(t *testing.T) {
	c := NewConstruction(source.Location{})
	c.Code = []Instruction{
		{ID: Jump, Operand: value.NewString("nowhere")},
	}
	ResolveJumps(c)
	require.Equal(t, value.KindString, c.Code[0].Operand.Kind)
}

func TestConstructionInsertAndMerge(t *testing.T) {
	parent := NewConstruction(source.Location{})
	parent.Code = []Instruction{{ID: PushConstantValue, Operand: value.NewInt(1)}}

	child := NewConstruction(source.Location{})
	child.Code = []Instruction{{ID: PushConstantValue, Operand: value.NewInt(2)}}

	parent.Merge(child)
	require.Len(t, parent.Code, 2)
	require.Equal(t, int64(2), parent.Code[1].Operand.IntVal)
}

func TestInsertAtBeginning(t *testing.T) {
	c := NewConstruction(source.Location{})
	c.Insert(Instruction{ID: PushConstantValue, Operand: value.NewInt(1)})
	c.SetInsertionPoint(AtBeginning)
	c.Insert(Instruction{ID: PushConstantValue, Operand: value.NewInt(2)})

	require.Equal(t, int64(2), c.Code[0].Operand.IntVal)
	require.Equal(t, int64(1), c.Code[1].Operand.IntVal)
}
