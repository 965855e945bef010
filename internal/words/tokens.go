package words

import (
	"github.com/sorth-lang/sorthc/internal/compilererror"
	"github.com/sorth-lang/sorthc/internal/runtime"
	"github.com/sorth-lang/sorthc/internal/source"
	"github.com/sorth-lang/sorthc/internal/value"
)

// registerTokens installs the words that read raw, uncompiled tokens off the
// token stream (`word`, the backtick quoting word), drive file inclusion
// (include, [include]), and implement the [if]/[else]/[then] bracket-word
// meta-conditional — the standard Forth idiom for conditionally compiling a
// span of source, adapted here onto Context's token cursor instead of a
// recursive-descent parser.
func registerTokens(rt *runtime.Runtime) {
	define(rt, "word", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		tok, terr := ctx.GetNextToken()
		if terr != nil {
			return terr
		}
		text, ok := tok.GetAsWord()
		if !ok {
			return compilererror.New(tok.Location, "expected a word, got a string literal")
		}
		rt.Data.Push(value.NewString(text))
		return nil
	})

	define(rt, "`", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		tok, terr := ctx.GetNextToken()
		if terr != nil {
			return terr
		}
		name, ok := tok.GetAsWord()
		if !ok {
			return compilererror.New(tok.Location, "expected a word name after `")
		}
		rec, found := rt.Dict.Lookup(name)
		if !found {
			return compilererror.New(tok.Location, "word not found: %s", name)
		}
		rt.Data.Push(value.NewInt(int64(rec.HandlerIndex)))
		return nil
	})

	define(rt, "include", includeWord)
	// [include] takes its path from the next token (a word or a string
	// literal) instead of from the data stack.
	define(rt, "[include]", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		tok, terr := ctx.GetNextToken()
		if terr != nil {
			return terr
		}
		if tok.Kind != source.Word && tok.Kind != source.String {
			return compilererror.New(tok.Location, "expected a path after [include]")
		}
		rt.Data.Push(value.NewString(tok.Text))
		return includeWord(rt, ctx)
	})

	define(rt, "[if]", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		loc := rt.CurrentLocation()
		cond, err := rt.Data.PopBool(loc)
		if err != nil {
			return err
		}
		if cond {
			return nil
		}
		return skipBracketed(ctx, true)
	})
	define(rt, "[else]", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		return skipBracketed(ctx, false)
	})
	define(rt, "[then]", func(rt *runtime.Runtime, _ *runtime.Context) error {
		return nil
	})
}

func includeWord(rt *runtime.Runtime, ctx *runtime.Context) error {
	loc := rt.CurrentLocation()
	path, err := rt.Data.PopString(loc)
	if err != nil {
		return err
	}
	sc, cerr := rt.CompileScript(path)
	if cerr != nil {
		return cerr
	}
	// A script still being compiled further up an include cycle comes back
	// as nil and is not recorded as a sub-script.
	if sc != nil {
		ctx.AddSubScript(sc)
	}
	return nil
}

// skipBracketed consumes raw tokens, without compiling any of them, up to
// (and including) the next unnested [else] or [then]. stopAtElse controls
// whether an unnested [else] also ends the skip (used by [if]'s false
// branch, which may still have an [else] clause to fall into); [else]
// itself always skips through to [then] only.
func skipBracketed(ctx *runtime.Context, stopAtElse bool) error {
	depth := 0
	for {
		tok, err := ctx.GetNextToken()
		if err != nil {
			return err
		}
		if !tok.IsWord("[if]") && !tok.IsWord("[then]") && !tok.IsWord("[else]") {
			continue
		}
		switch {
		case tok.IsWord("[if]"):
			depth++
		case tok.IsWord("[then]"):
			if depth == 0 {
				return nil
			}
			depth--
		case tok.IsWord("[else]"):
			if depth == 0 && stopAtElse {
				return nil
			}
		}
	}
}
