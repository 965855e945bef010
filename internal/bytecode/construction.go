package bytecode

import (
	"github.com/sorth-lang/sorthc/internal/source"
	"github.com/sorth-lang/sorthc/internal/value"
)

// Instruction is one entry in a Construction's code: an ID, a Value operand
// (whose meaning depends on ID — a jump-class instruction's operand is
// either a string label before code.resolve_jumps runs or a relative offset
// afterward), and an optional source location used for error reporting and
// by the JIT's set_location calls.
type Instruction struct {
	ID       ID
	Operand  value.Value
	Location *source.Location
}

// ExecutionContext tags whether a Construction's body runs at compile time
// (as an immediate word, JIT-compiled as soon as `;` closes it) or at run
// time (appended to the script's run-time word list for the AOT backend).
type ExecutionContext uint8

const (
	RunTime ExecutionContext = iota
	CompileTime
)

func (e ExecutionContext) String() string {
	if e == CompileTime {
		return "compile_time"
	}
	return "run_time"
}

// Visibility tags whether a word is reachable by name from outside its
// defining script (visible, the default) or only by direct dictionary
// handle (hidden).
type Visibility uint8

const (
	Visible Visibility = iota
	Hidden
)

// ContextManagement tags whether a word's body is wrapped by the compiler in
// mark_context/release_context, giving it a private dictionary scope.
type ContextManagement uint8

const (
	Unmanaged ContextManagement = iota
	Managed
)

// InsertionPoint controls whether Construction.Insert prepends or appends to
// the code vector; code.insert_at_front toggles it.
type InsertionPoint uint8

const (
	AtEnd InsertionPoint = iota
	AtBeginning
)

// Construction is a builder for either a word's body or the script's
// top-level code. The construction stack of a compiler context holds nested
// Constructions; the bottom is always the script's top level.
type Construction struct {
	ExecutionContext  ExecutionContext
	Visibility        Visibility
	ContextManagement ContextManagement
	Location          source.Location
	Name              string
	Description       string
	Signature         string

	Code []Instruction

	insertionPoint InsertionPoint
}

// NewConstruction creates a fresh, unnamed construction (used for the
// script's top-level block and for code.new_block). Defaults match spec
// §3: run_time execution context, visible, unmanaged.
func NewConstruction(loc source.Location) *Construction {
	return &Construction{Location: loc}
}

// SetInsertionPoint controls where subsequent Insert calls place
// instructions, implementing code.insert_at_front's toggle.
func (c *Construction) SetInsertionPoint(p InsertionPoint) {
	c.insertionPoint = p
}

// Insert appends (or, if the insertion point is AtBeginning, prepends) one
// instruction to the construction's code. This is the sole append point for
// every built-in emission word (op.*).
func (c *Construction) Insert(insn Instruction) {
	if c.insertionPoint == AtBeginning {
		c.Code = append([]Instruction{insn}, c.Code...)
		return
	}
	c.Code = append(c.Code, insn)
}

// Size returns the number of instructions currently in the construction's
// code vector — code.stack-block-size@ (spec.md §4.4).
func (c *Construction) Size() int {
	return len(c.Code)
}

// Merge appends the child's code onto c and discards the child, implementing
// code.merge_stack_block / Context.merge_constructions.
func (c *Construction) Merge(child *Construction) {
	c.Code = append(c.Code, child.Code...)
}
