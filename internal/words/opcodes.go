package words

import (
	"github.com/sorth-lang/sorthc/internal/bytecode"
	"github.com/sorth-lang/sorthc/internal/compilererror"
	"github.com/sorth-lang/sorthc/internal/runtime"
	"github.com/sorth-lang/sorthc/internal/value"
)

// registerOpcodes installs the op.* emission words (one per spec.md §4.4
// instruction ID, each popping whatever operand that ID needs off the data
// stack and appending the instruction to the current construction) and the
// code.* construction-management words that manipulate the construction
// stack directly. Together these are the primitives from which control-flow
// words can be written in the language itself; the kernel's own if/else/then
// and begin/until (control.go) insert their instructions directly instead.
func registerOpcodes(rt *runtime.Runtime) {
	registerStringOperandOp(rt, "op.def_variable", bytecode.DefVariable)
	registerStringOperandOp(rt, "op.def_constant", bytecode.DefConstant)
	registerStringOperandOp(rt, "op.execute", bytecode.Execute)
	registerStringOperandOp(rt, "op.word_index", bytecode.WordIndex)
	registerStringOperandOp(rt, "op.word_exists", bytecode.WordExists)
	registerStringOperandOp(rt, "op.mark_loop_exit", bytecode.MarkLoopExit)
	registerStringOperandOp(rt, "op.mark_catch", bytecode.MarkCatch)
	registerStringOperandOp(rt, "op.jump", bytecode.Jump)
	registerStringOperandOp(rt, "op.jump_if_zero", bytecode.JumpIfZero)
	registerStringOperandOp(rt, "op.jump_if_not_zero", bytecode.JumpIfNotZero)
	registerStringOperandOp(rt, "op.jump_loop_start", bytecode.JumpLoopStart)
	registerStringOperandOp(rt, "op.jump_target", bytecode.JumpTarget)

	registerIntOperandOp(rt, "op.read_variable", bytecode.ReadVariable)
	registerIntOperandOp(rt, "op.write_variable", bytecode.WriteVariable)

	registerNoOperandOp(rt, "op.unmark_loop_exit", bytecode.UnmarkLoopExit)
	registerNoOperandOp(rt, "op.unmark_catch", bytecode.UnmarkCatch)
	registerNoOperandOp(rt, "op.mark_context", bytecode.MarkContext)
	registerNoOperandOp(rt, "op.release_context", bytecode.ReleaseContext)
	registerNoOperandOp(rt, "op.jump_loop_exit", bytecode.JumpLoopExit)

	define(rt, "op.push_constant_value", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		loc := rt.CurrentLocation()
		v, err := rt.Data.PopValue(loc)
		if err != nil {
			return err
		}
		ctx.InsertInstruction(bytecode.Instruction{ID: bytecode.PushConstantValue, Operand: v, Location: &loc})
		return nil
	})

	define(rt, "code.new_block", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		ctx.NewConstruction(rt.CurrentLocation(), "")
		return nil
	})
	define(rt, "code.drop_stack_block", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		if _, ok := ctx.DropConstruction(); !ok {
			return compilererror.New(rt.CurrentLocation(), "code.drop_stack_block: nothing to drop")
		}
		return nil
	})
	define(rt, "code.merge_stack_block", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		if !ctx.MergeConstructions() {
			return compilererror.New(rt.CurrentLocation(), "code.merge_stack_block: nothing to merge")
		}
		return nil
	})
	define(rt, "code.resolve_jumps", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		bytecode.ResolveJumps(ctx.GetConstruction())
		return nil
	})
	define(rt, "code.stack-block-size@", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		rt.Data.Push(value.NewInt(int64(ctx.GetConstruction().Size())))
		return nil
	})
	define(rt, "code.insert_at_front", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		ctx.GetConstruction().SetInsertionPoint(bytecode.AtBeginning)
		return nil
	})
	define(rt, "code.insert_at_end", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		ctx.GetConstruction().SetInsertionPoint(bytecode.AtEnd)
		return nil
	})
	define(rt, "code.pop_stack_block", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		c, ok := ctx.DropConstruction()
		if !ok {
			return compilererror.New(rt.CurrentLocation(), "code.pop_stack_block: nothing to pop")
		}
		rt.Data.Push(value.NewByteCode(c))
		return nil
	})
	define(rt, "code.push_stack_block", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		loc := rt.CurrentLocation()
		v, err := rt.Data.PopValue(loc)
		if err != nil {
			return err
		}
		if v.Kind != value.KindByteCode {
			return compilererror.New(loc, "code.push_stack_block: expected byte-code, got %s", v.Kind)
		}
		c, ok := v.CodeVal.(*bytecode.Construction)
		if !ok {
			return compilererror.New(loc, "code.push_stack_block: malformed byte-code value")
		}
		ctx.PushConstruction(c)
		return nil
	})
}

func registerStringOperandOp(rt *runtime.Runtime, name string, id bytecode.ID) {
	define(rt, name, func(rt *runtime.Runtime, ctx *runtime.Context) error {
		loc := rt.CurrentLocation()
		s, err := rt.Data.PopString(loc)
		if err != nil {
			return err
		}
		ctx.InsertInstruction(bytecode.Instruction{ID: id, Operand: value.NewString(s), Location: &loc})
		return nil
	})
}

func registerIntOperandOp(rt *runtime.Runtime, name string, id bytecode.ID) {
	define(rt, name, func(rt *runtime.Runtime, ctx *runtime.Context) error {
		loc := rt.CurrentLocation()
		i, err := rt.Data.PopInt(loc)
		if err != nil {
			return err
		}
		ctx.InsertInstruction(bytecode.Instruction{ID: id, Operand: value.NewInt(i), Location: &loc})
		return nil
	})
}

func registerNoOperandOp(rt *runtime.Runtime, name string, id bytecode.ID) {
	define(rt, name, func(rt *runtime.Runtime, ctx *runtime.Context) error {
		loc := rt.CurrentLocation()
		ctx.InsertInstruction(bytecode.Instruction{ID: id, Location: &loc})
		return nil
	})
}
