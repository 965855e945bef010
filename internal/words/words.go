// Package words implements the kernel vocabulary: the fixed set of native
// built-in words every script's compilation bootstraps against (spec.md §5,
// §7). Each built-in is a runtime.Handler registered directly into the
// handler table, exactly like a Scripted word produced by the JIT, so
// `execute` never has to distinguish a native built-in from a user-defined
// immediate word.
//
// This package, not internal/runtime, is where the `;` word lives (and so
// where internal/jit gets imported): Runtime and Context are JIT-agnostic by
// design (see internal/runtime's package doc), and it's this package's job
// to wire the JIT in at the one point the language actually needs it —
// closing a compile_time definition.
package words

import (
	"github.com/sorth-lang/sorthc/internal/bytecode"
	"github.com/sorth-lang/sorthc/internal/dictionary"
	"github.com/sorth-lang/sorthc/internal/runtime"
)

// define registers a native handler under name as a compile_time, Internal
// word: a word that is invoked the instant its name is encountered in the
// token stream, wherever that stream currently is (top level or inside a
// `:` body under construction). This is the shape of every built-in whose
// whole purpose IS to manipulate the construction stack, the dictionary or
// the token cursor — `:`, the op.*/code.* emitters, the bracket words, and
// so on.
func define(rt *runtime.Runtime, name string, fn runtime.Handler) {
	idx := rt.Handlers.Register(runtime.HandlerRecord{Name: name, Fn: fn})
	rt.Dict.Define(dictionary.WordRecord{
		ExecutionContext: bytecode.CompileTime,
		Type:             dictionary.Internal,
		Name:             name,
		HandlerIndex:     idx,
	})
}

// defineRunTime registers a native handler under name as a run_time,
// Internal word: referencing name anywhere in the token stream compiles a
// deferred `execute name` instruction rather than invoking it immediately,
// exactly like a user word defined without `immediate`. Its Handler is
// still very much alive — it runs whenever the JIT interprets that execute
// instruction as part of SOME compile_time construction's own body (an
// immediate word that itself uses dup/+/< while computing something), which
// is why it must be in the dictionary at all; being registered also lets
// defined?/word_exists see it as part of the kernel vocabulary.
func defineRunTime(rt *runtime.Runtime, name string, fn runtime.Handler) {
	idx := rt.Handlers.Register(runtime.HandlerRecord{Name: name, Fn: fn})
	rt.Dict.Define(dictionary.WordRecord{
		ExecutionContext: bytecode.RunTime,
		Type:             dictionary.Internal,
		Name:             name,
		HandlerIndex:     idx,
	})
}

// RegisterAll installs the full kernel vocabulary into rt's dictionary. It
// is the first half of internal/stdlib.Bootstrap's two-phase startup, run
// before std.f is compiled so the standard library's own `:` definitions
// have the defining words, token words and op.* emitters available.
func RegisterAll(rt *runtime.Runtime) {
	registerStack(rt)
	registerDefining(rt)
	registerTokens(rt)
	registerOpcodes(rt)
	registerControl(rt)
	registerMisc(rt)
}
