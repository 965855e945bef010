// Package script implements the compiled-but-not-yet-codegen'd
// representation of a source file: the Script record handed to the
// out-of-scope AOT backend once a file's compilation completes.
package script

import "github.com/sorth-lang/sorthc/internal/bytecode"

// StructureField describes one field of a `struct:`-declared type: name and
// an optional default-value byte-code block (a field without an initializer
// defaults to none).
type StructureField struct {
	Name    string
	Default []bytecode.Instruction
}

// StructureType is one `struct:` declaration collected while compiling a
// script, handed to the backend so it can lay out instances and emit
// accessor words.
type StructureType struct {
	Name   string
	Fields []StructureField
}

// FFIFunction is one `ffi.function:`-declared external function signature,
// collected for the backend to bind at link time.
type FFIFunction struct {
	Name       string
	Symbol     string
	ParamTypes []string
	ReturnType string
}

// Script is the compiled representation of one source file: its run-time
// word definitions, its top-level byte-code, the sub-scripts produced by
// nested compile-time constructions that emit further scripts, and the
// structure/FFI declarations collected along the way.
//
// Invariants (spec.md §3): every `execute` instruction in TopLevelCode or in any
// word's Code names either a dictionary-resident word or an unresolved name
// left for the backend to look up; every jump operand, once resolved by
// bytecode.ResolveJumps, lands on a jump_target instruction.
type Script struct {
	CanonicalPath string

	// Words holds only run-time words: this script's compile_time
	// constructions are JIT-compiled and registered into the dictionary as
	// soon as their defining `;` runs, so they never become part of the script
	// record (the back-end never sees them; only their effects on the
	// dictionary and on constant folding of subsequent top-level code do).
	Words map[string]*bytecode.Construction

	TopLevelCode []bytecode.Instruction

	SubScripts []*Script

	StructureTypes []StructureType
	FFIFunctions   []FFIFunction
}

// New creates an empty Script for the given canonical path.
func New(canonicalPath string) *Script {
	return &Script{
		CanonicalPath: canonicalPath,
		Words:         make(map[string]*bytecode.Construction),
	}
}
