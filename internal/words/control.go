package words

import (
	"github.com/sorth-lang/sorthc/internal/bytecode"
	"github.com/sorth-lang/sorthc/internal/compilererror"
	"github.com/sorth-lang/sorthc/internal/runtime"
	"github.com/sorth-lang/sorthc/internal/value"
)

// registerControl installs the control-structure words whose branches are
// taken at run time: if/else/then and begin/until. Unlike the bracket meta-conditional
// ([if]/[else]/[then], which branches on a value already known at compile
// time), these are compile_time words that EMIT jump_if_zero/jump/
// jump_target instructions into the construction currently being built, so
// the branch is taken later, when the compiled word itself runs. Each pairs
// a fresh label from Runtime.UniqueLabel with Context's control-label stack
// to stay correctly nested without needing a parser.
func registerControl(rt *runtime.Runtime) {
	define(rt, "if", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		loc := rt.CurrentLocation()
		label := rt.UniqueLabel("if_else")
		ctx.InsertInstruction(bytecode.Instruction{ID: bytecode.JumpIfZero, Operand: value.NewString(label), Location: &loc})
		ctx.PushControlLabel(label)
		return nil
	})

	define(rt, "else", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		loc := rt.CurrentLocation()
		elseLabel, ok := ctx.PopControlLabel()
		if !ok {
			return compilererror.New(loc, "else without a matching if")
		}
		endLabel := rt.UniqueLabel("if_end")
		ctx.InsertInstruction(bytecode.Instruction{ID: bytecode.Jump, Operand: value.NewString(endLabel), Location: &loc})
		ctx.InsertInstruction(bytecode.Instruction{ID: bytecode.JumpTarget, Operand: value.NewString(elseLabel), Location: &loc})
		ctx.PushControlLabel(endLabel)
		return nil
	})

	define(rt, "then", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		loc := rt.CurrentLocation()
		label, ok := ctx.PopControlLabel()
		if !ok {
			return compilererror.New(loc, "then without a matching if")
		}
		ctx.InsertInstruction(bytecode.Instruction{ID: bytecode.JumpTarget, Operand: value.NewString(label), Location: &loc})
		return nil
	})

	define(rt, "begin", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		loc := rt.CurrentLocation()
		label := rt.UniqueLabel("loop_start")
		ctx.InsertInstruction(bytecode.Instruction{ID: bytecode.JumpTarget, Operand: value.NewString(label), Location: &loc})
		ctx.PushControlLabel(label)
		return nil
	})

	define(rt, "until", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		loc := rt.CurrentLocation()
		label, ok := ctx.PopControlLabel()
		if !ok {
			return compilererror.New(loc, "until without a matching begin")
		}
		ctx.InsertInstruction(bytecode.Instruction{ID: bytecode.JumpIfZero, Operand: value.NewString(label), Location: &loc})
		return nil
	})
}
