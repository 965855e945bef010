// Package jit stands in for the AOT backend's machine-code lowering step
// for exactly the slice of byte-code that must run DURING compilation: the
// body of a compile_time (immediate) word. The teacher's reference example
// pack carries no Go LLVM binding anywhere, so rather than fabricate one,
// this package interprets a Construction's instruction stream directly,
// grounded on the teacher's own bytecode-VM dispatch loop
// (lang/machine/machine.go's fetch-decode-execute loop over Opcode) instead
// of on real LLVM IR construction. The external contract spec.md §5.5
// describes for the JIT — turn a Construction into something callable,
// exactly once, as soon as `;` closes it — is preserved; only the internal
// mechanism (a dispatch loop over the instruction stream instead of native
// codegen) differs.
package jit

import (
	"github.com/sorth-lang/sorthc/internal/bytecode"
	"github.com/sorth-lang/sorthc/internal/compilererror"
	"github.com/sorth-lang/sorthc/internal/dictionary"
	"github.com/sorth-lang/sorthc/internal/runtime"
	"github.com/sorth-lang/sorthc/internal/source"
	"github.com/sorth-lang/sorthc/internal/value"
)

// Compile turns a compile_time Construction into a runtime.Handler. Compile
// resolves jumps once, before returning (resolve_jumps is idempotent, but
// calling it here means callers never have to remember to); the returned
// closure then walks the instruction stream each time it is invoked. If c.ContextManagement is
// Managed, each call is wrapped in its own mark_context/release_context
// dictionary scope.
func Compile(c *bytecode.Construction) runtime.Handler {
	bytecode.ResolveJumps(c)
	managed := c.ContextManagement == bytecode.Managed

	return func(rt *runtime.Runtime, ctx *runtime.Context) error {
		if managed {
			rt.Dict.MarkContext()
			defer rt.Dict.ReleaseContext()
		}
		return run(rt, ctx, c.Code)
	}
}

// run executes one instruction stream to completion, implementing every
// fixed instruction ID (spec.md §4.4) against the runtime's data stack,
// variable slab, dictionary and call stack. loop-exit and catch marks are
// tracked as two small stacks of absolute instruction indices rather than
// being resolved through the Go call stack, so a `throw` inside a deeply
// nested compile-time call can unwind straight to the nearest catch mark
// within THIS instruction stream without involving the caller.
func run(rt *runtime.Runtime, ctx *runtime.Context, code []bytecode.Instruction) error {
	var loopExits []int
	var catches []int

	ip := 0
	for ip < len(code) {
		insn := code[ip]
		if insn.Location != nil {
			rt.SetCurrentLocation(*insn.Location)
		}
		loc := rt.CurrentLocation()

		switch insn.ID {
		case bytecode.PushConstantValue:
			rt.Data.Push(insn.Operand)

		case bytecode.Execute:
			name, _ := insn.Operand.AsString()
			rec, ok := rt.Dict.Lookup(name)
			if !ok {
				return compilererror.New(loc, "word not found: %s", name)
			}
			if err := rt.Invoke(rec.HandlerIndex, ctx, name, loc); err != nil {
				if len(catches) > 0 {
					rt.Data.Push(value.NewString(err.Error()))
					ip = catches[len(catches)-1]
					continue
				}
				return err
			}

		case bytecode.WordIndex:
			name, _ := insn.Operand.AsString()
			if rec, ok := rt.Dict.Lookup(name); ok {
				rt.Data.Push(value.NewInt(int64(rec.HandlerIndex)))
			} else {
				rt.Data.Push(value.NewInt(-1))
			}

		case bytecode.WordExists:
			name, _ := insn.Operand.AsString()
			rt.Data.Push(value.NewBool(rt.Dict.Exists(name)))

		case bytecode.DefVariable:
			name, _ := insn.Operand.AsString()
			defineVariable(rt, name, loc)

		case bytecode.DefConstant:
			name, _ := insn.Operand.AsString()
			v, err := rt.Data.Pop(loc)
			if err != nil {
				return err
			}
			defineConstant(rt, name, v, loc)

		case bytecode.ReadVariable:
			idx, _ := insn.Operand.AsInt()
			v, ok := rt.Variables.Read(idx)
			if !ok {
				return compilererror.New(loc, "invalid variable index %d", idx)
			}
			rt.Data.Push(v)

		case bytecode.WriteVariable:
			idx, _ := insn.Operand.AsInt()
			v, err := rt.Data.Pop(loc)
			if err != nil {
				return err
			}
			if !rt.Variables.Write(idx, v) {
				return compilererror.New(loc, "invalid variable index %d", idx)
			}

		case bytecode.MarkContext:
			rt.Dict.MarkContext()

		case bytecode.ReleaseContext:
			rt.Dict.ReleaseContext()

		case bytecode.MarkLoopExit:
			offset, _ := insn.Operand.AsInt()
			loopExits = append(loopExits, ip+int(offset))

		case bytecode.UnmarkLoopExit:
			if len(loopExits) > 0 {
				loopExits = loopExits[:len(loopExits)-1]
			}

		case bytecode.MarkCatch:
			offset, _ := insn.Operand.AsInt()
			catches = append(catches, ip+int(offset))

		case bytecode.UnmarkCatch:
			if len(catches) > 0 {
				catches = catches[:len(catches)-1]
			}

		case bytecode.Jump, bytecode.JumpLoopStart:
			offset, _ := insn.Operand.AsInt()
			ip += int(offset)
			continue

		case bytecode.JumpIfZero:
			b, err := rt.Data.PopBool(loc)
			if err != nil {
				return err
			}
			if !b {
				offset, _ := insn.Operand.AsInt()
				ip += int(offset)
				continue
			}

		case bytecode.JumpIfNotZero:
			b, err := rt.Data.PopBool(loc)
			if err != nil {
				return err
			}
			if b {
				offset, _ := insn.Operand.AsInt()
				ip += int(offset)
				continue
			}

		case bytecode.JumpLoopExit:
			if len(loopExits) == 0 {
				return compilererror.New(loc, "jump_loop_exit outside of a marked loop")
			}
			ip = loopExits[len(loopExits)-1]
			continue

		case bytecode.JumpTarget:
			// A resolved label; resolve_jumps has already zeroed its operand.

		default:
			return compilererror.New(loc, "unimplemented instruction %s", insn.ID)
		}

		ip++
	}
	return nil
}

// defineVariable allocates a variable slot and registers its `name@`/`name!`
// accessor pair in the dictionary, following the kernel vocabulary's getter
// naming convention (description@, signature@, stack-block-size@, ...).
// Each accessor is itself a tiny Construction run through Compile, so
// variable access reuses the exact same read_variable/write_variable
// instructions a backend would use for a run-time variable.
func defineVariable(rt *runtime.Runtime, name string, loc source.Location) {
	idx := rt.Variables.Allocate()

	readBody := bytecode.NewConstruction(loc)
	readBody.Code = []bytecode.Instruction{{ID: bytecode.ReadVariable, Operand: value.NewInt(int64(idx))}}
	readIdx := rt.Handlers.Register(runtime.HandlerRecord{Location: loc, Name: name + "@", Fn: Compile(readBody)})
	rt.Dict.Define(dictionary.WordRecord{
		Type:         dictionary.Internal,
		Name:         name + "@",
		Location:     loc,
		HandlerIndex: readIdx,
	})

	writeBody := bytecode.NewConstruction(loc)
	writeBody.Code = []bytecode.Instruction{{ID: bytecode.WriteVariable, Operand: value.NewInt(int64(idx))}}
	writeIdx := rt.Handlers.Register(runtime.HandlerRecord{Location: loc, Name: name + "!", Fn: Compile(writeBody)})
	rt.Dict.Define(dictionary.WordRecord{
		Type:         dictionary.Internal,
		Name:         name + "!",
		Location:     loc,
		HandlerIndex: writeIdx,
	})
}

// defineConstant registers name as a word that always pushes v, by compiling
// a one-instruction push_constant_value body the same way a literal token
// would be compiled.
func defineConstant(rt *runtime.Runtime, name string, v value.Value, loc source.Location) {
	body := bytecode.NewConstruction(loc)
	body.Code = []bytecode.Instruction{{ID: bytecode.PushConstantValue, Operand: v}}
	idx := rt.Handlers.Register(runtime.HandlerRecord{Location: loc, Name: name, Fn: Compile(body)})
	rt.Dict.Define(dictionary.WordRecord{
		Type:         dictionary.Internal,
		Name:         name,
		Location:     loc,
		HandlerIndex: idx,
	})
}
