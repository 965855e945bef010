// Package stdlib performs the two-phase composition root described in the
// doc comment of runtime.New: building a Runtime
// doesn't, by itself, give it any vocabulary, because Runtime can't import
// the words or stdlib packages without creating an import cycle (both need
// Runtime's own types). Bootstrap is where those independent pieces are
// wired together, the same way the teacher's main.go composes otherwise
// unrelated packages rather than having one constructor reach out to all of
// them.
package stdlib

import (
	_ "embed"

	"github.com/sorth-lang/sorthc/internal/compilererror"
	"github.com/sorth-lang/sorthc/internal/runtime"
	"github.com/sorth-lang/sorthc/internal/script"
	"github.com/sorth-lang/sorthc/internal/source"
	"github.com/sorth-lang/sorthc/internal/words"
)

//go:embed std.f
var stdSource []byte

const stdCanonicalPath = "<std.f>"

// Bootstrap builds a Runtime over searchPaths, registers the kernel
// vocabulary, and compiles the embedded standard library into it, returning
// a Runtime ready to compile a user's source file.
func Bootstrap(searchPaths ...string) (*runtime.Runtime, *script.Script, *compilererror.Error) {
	rt := runtime.New(searchPaths...)
	words.RegisterAll(rt)

	toks, terr := source.Tokenize(source.NewBuffer(stdCanonicalPath, stdSource))
	if terr != nil {
		return nil, nil, compilererror.New(source.Location{}, "compiling standard library: %s", terr)
	}

	ctx := runtime.NewContext(rt, stdCanonicalPath, toks)
	if cerr := ctx.CompileTokenList(); cerr != nil {
		return nil, nil, cerr
	}

	sc := script.New(stdCanonicalPath)
	sc.Words = ctx.TakeWords()
	sc.TopLevelCode = ctx.TakeTopLevelCode()
	sc.SubScripts = ctx.TakeSubScripts()
	sc.StructureTypes = ctx.TakeStructureTypes()
	sc.FFIFunctions = ctx.TakeFFIFunctions()

	return rt, sc, nil
}
