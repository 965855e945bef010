// Package bytecode implements the compiler's fixed instruction set and the
// Construction builder that accumulates instructions for a word body or a
// script's top level, grounded on the teacher's compiler.Opcode table
// (lang/compiler/opcode.go) for the shape of a fixed, named, stringable
// instruction set, and on lang/compiler/asm.go for the textual dump format.
package bytecode

import "fmt"

// ID names one of the fixed instructions the compiler can emit. Unlike the
// teacher's Opcode (which is consumed by a machine-code/JIT lowering step
// keyed on a dense byte), ID is matched directly by the interpretive JIT in
// internal/jit, so it stays a plain Go enum rather than a byte-encoded form.
type ID uint8

const ( //nolint:revive
	DefVariable ID = iota
	DefConstant
	ReadVariable
	WriteVariable
	Execute
	WordIndex
	WordExists
	PushConstantValue
	MarkLoopExit
	UnmarkLoopExit
	MarkCatch
	UnmarkCatch
	MarkContext
	ReleaseContext
	Jump
	JumpIfZero
	JumpIfNotZero
	JumpLoopStart
	JumpLoopExit
	JumpTarget

	maxID
)

var idNames = [...]string{
	DefVariable:       "def_variable",
	DefConstant:       "def_constant",
	ReadVariable:      "read_variable",
	WriteVariable:     "write_variable",
	Execute:           "execute",
	WordIndex:         "word_index",
	WordExists:        "word_exists",
	PushConstantValue: "push_constant_value",
	MarkLoopExit:      "mark_loop_exit",
	UnmarkLoopExit:    "unmark_loop_exit",
	MarkCatch:         "mark_catch",
	UnmarkCatch:       "unmark_catch",
	MarkContext:       "mark_context",
	ReleaseContext:    "release_context",
	Jump:              "jump",
	JumpIfZero:        "jump_if_zero",
	JumpIfNotZero:     "jump_if_not_zero",
	JumpLoopStart:     "jump_loop_start",
	JumpLoopExit:      "jump_loop_exit",
	JumpTarget:        "jump_target",
}

func (id ID) String() string {
	if id < maxID {
		return idNames[id]
	}
	return fmt.Sprintf("illegal instruction id (%d)", id)
}

// IsJumpClass reports whether id is one of the instructions whose operand is
// a jump target: a relative offset once resolved, a string label before.
// mark_loop_exit and mark_catch carry a label (the exit/catch target) even
// though they are not jumps themselves, per code.resolve_jumps (spec §4.4).
func (id ID) IsJumpClass() bool {
	switch id {
	case Jump, JumpIfZero, JumpIfNotZero, MarkLoopExit, MarkCatch:
		return true
	default:
		return false
	}
}
