package jit

import (
	"testing"

	"github.com/sorth-lang/sorthc/internal/bytecode"
	"github.com/sorth-lang/sorthc/internal/compilererror"
	"github.com/sorth-lang/sorthc/internal/dictionary"
	"github.com/sorth-lang/sorthc/internal/runtime"
	"github.com/sorth-lang/sorthc/internal/source"
	"github.com/sorth-lang/sorthc/internal/value"
	"github.com/stretchr/testify/require"
)

func registerBoom(rt *runtime.Runtime) {
	idx := rt.Handlers.Register(runtime.HandlerRecord{
		Name: "boom",
		Fn: func(rt *runtime.Runtime, _ *runtime.Context) error {
			return compilererror.New(rt.CurrentLocation(), "boom")
		},
	})
	rt.Dict.Define(dictionary.WordRecord{Type: dictionary.Internal, Name: "boom", HandlerIndex: idx})
}

func TestRunCatchRedirectsOnThrow(t *testing.T) {
	rt := runtime.New()
	registerBoom(rt)

	c := bytecode.NewConstruction(source.Location{})
	c.Code = []bytecode.Instruction{
		{ID: bytecode.MarkCatch, Operand: value.NewInt(3)},
		{ID: bytecode.Execute, Operand: value.NewString("boom")},
		{ID: bytecode.Jump, Operand: value.NewInt(1)},
		{ID: bytecode.JumpTarget},
	}

	handler := Compile(c)
	ctx := runtime.NewContext(rt, "<test>", nil)
	err := handler(rt, ctx)
	require.Nil(t, err)

	msg, perr := rt.Data.PopString(source.Location{})
	require.Nil(t, perr)
	require.Contains(t, msg, "boom")
}

func TestRunWithoutCatchPropagatesError(t *testing.T) {
	rt := runtime.New()
	registerBoom(rt)

	c := bytecode.NewConstruction(source.Location{})
	c.Code = []bytecode.Instruction{
		{ID: bytecode.Execute, Operand: value.NewString("boom")},
	}

	handler := Compile(c)
	ctx := runtime.NewContext(rt, "<test>", nil)
	err := handler(rt, ctx)
	require.NotNil(t, err)
}

func TestRunLoopExitSkipsToTarget(t *testing.T) {
	rt := runtime.New()

	c := bytecode.NewConstruction(source.Location{})
	c.Code = []bytecode.Instruction{
		{ID: bytecode.MarkLoopExit, Operand: value.NewInt(4)},
		{ID: bytecode.PushConstantValue, Operand: value.NewInt(1)},
		{ID: bytecode.JumpLoopExit},
		{ID: bytecode.PushConstantValue, Operand: value.NewInt(2)},
		{ID: bytecode.JumpTarget},
		{ID: bytecode.PushConstantValue, Operand: value.NewInt(3)},
	}

	handler := Compile(c)
	ctx := runtime.NewContext(rt, "<test>", nil)
	err := handler(rt, ctx)
	require.Nil(t, err)

	top, perr := rt.Data.Pop(source.Location{})
	require.Nil(t, perr)
	require.Equal(t, int64(3), top.IntVal)

	bottom, perr := rt.Data.Pop(source.Location{})
	require.Nil(t, perr)
	require.Equal(t, int64(1), bottom.IntVal)
}

func TestDefineVariableRoundTrips(t *testing.T) {
	rt := runtime.New()
	defineVariable(rt, "counter", source.Location{})

	writeRec, ok := rt.Dict.Lookup("counter!")
	require.True(t, ok)
	rt.Data.Push(value.NewInt(7))
	require.Nil(t, rt.Invoke(writeRec.HandlerIndex, nil, "counter!", source.Location{}))

	readRec, ok := rt.Dict.Lookup("counter@")
	require.True(t, ok)
	require.Nil(t, rt.Invoke(readRec.HandlerIndex, nil, "counter@", source.Location{}))

	v, err := rt.Data.Pop(source.Location{})
	require.Nil(t, err)
	require.Equal(t, int64(7), v.IntVal)
}

func TestDefineConstantAlwaysPushesSameValue(t *testing.T) {
	rt := runtime.New()
	defineConstant(rt, "answer", value.NewInt(42), source.Location{})

	rec, ok := rt.Dict.Lookup("answer")
	require.True(t, ok)
	require.Nil(t, rt.Invoke(rec.HandlerIndex, nil, "answer", source.Location{}))

	v, err := rt.Data.Pop(source.Location{})
	require.Nil(t, err)
	require.Equal(t, int64(42), v.IntVal)
}
