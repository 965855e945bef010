package bytecode

import (
	"strings"
	"testing"

	"github.com/sorth-lang/sorthc/internal/source"
	"github.com/sorth-lang/sorthc/internal/value"
	"github.com/stretchr/testify/require"
)

func TestDisassembleShowsJumpTargets(t *testing.T) {
	c := NewConstruction(source.Location{})
	c.Name = "loop"
	c.Code = []Instruction{
		{ID: JumpTarget, Operand: value.NewString("start")},
		{ID: Jump, Operand: value.NewString("start")},
	}
	ResolveJumps(c)

	out := Disassemble(c)
	require.Contains(t, out, "loop")
	require.Contains(t, out, "-> 0")
}

func TestDisassembleAnonymousConstruction(t *testing.T) {
	c := NewConstruction(source.Location{})
	out := Disassemble(c)
	require.True(t, strings.Contains(out, "<anonymous>"))
}

func TestIDStringCoversEveryID(t *testing.T) {
	for id := ID(0); id < maxID; id++ {
		require.NotContains(t, id.String(), "illegal")
	}
	require.Contains(t, ID(maxID).String(), "illegal")
}
