package words

import (
	"github.com/sorth-lang/sorthc/internal/bytecode"
	"github.com/sorth-lang/sorthc/internal/compilererror"
	"github.com/sorth-lang/sorthc/internal/dictionary"
	"github.com/sorth-lang/sorthc/internal/jit"
	"github.com/sorth-lang/sorthc/internal/runtime"
	"github.com/sorth-lang/sorthc/internal/source"
	"github.com/sorth-lang/sorthc/internal/value"
)

// registerDefining installs the word-definition vocabulary: `:`/`;` bracket
// a new Construction, immediate/hidden/contextless tag it while it's being
// built, description:/signature: attach documentation, and defined?/
// [defined?]/[undefined?] query the dictionary both at the data-stack level
// and as token-reading sugar.
func registerDefining(rt *runtime.Runtime) {
	define(rt, ":", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		tok, terr := ctx.GetNextToken()
		if terr != nil {
			return terr
		}
		name, ok := tok.GetAsWord()
		if !ok {
			return compilererror.New(tok.Location, "expected a word name after :")
		}
		c := ctx.NewConstruction(tok.Location, name)
		c.ContextManagement = bytecode.Managed
		return nil
	})

	define(rt, ";", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		c, ok := ctx.DropConstruction()
		if !ok {
			return compilererror.New(rt.CurrentLocation(), "; without a matching :")
		}
		bytecode.ResolveJumps(c)

		if c.ExecutionContext == bytecode.CompileTime {
			handler := jit.Compile(c)
			idx := rt.Handlers.Register(runtime.HandlerRecord{Location: c.Location, Name: c.Name, Fn: handler})
			rt.Dict.Define(dictionary.WordRecord{
				ExecutionContext: bytecode.CompileTime,
				Type:             dictionary.Scripted,
				Visibility:       c.Visibility,
				Management:       c.ContextManagement,
				Name:             c.Name,
				Description:      c.Description,
				Signature:        c.Signature,
				Location:         c.Location,
				HandlerIndex:     idx,
			})
			return nil
		}

		ctx.AddRunTimeWord(c.Name, c)
		rt.Dict.Define(dictionary.WordRecord{
			ExecutionContext: bytecode.RunTime,
			Type:             dictionary.Scripted,
			Visibility:       c.Visibility,
			Management:       c.ContextManagement,
			Name:             c.Name,
			Description:      c.Description,
			Signature:        c.Signature,
			Location:         c.Location,
			HandlerIndex:     -1,
		})
		return nil
	})

	define(rt, "immediate", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		ctx.GetConstruction().ExecutionContext = bytecode.CompileTime
		return nil
	})
	define(rt, "hidden", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		ctx.GetConstruction().Visibility = bytecode.Hidden
		return nil
	})
	define(rt, "contextless", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		ctx.GetConstruction().ContextManagement = bytecode.Unmanaged
		return nil
	})

	define(rt, "description:", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		tok, terr := ctx.GetNextToken()
		if terr != nil {
			return terr
		}
		if tok.Kind != source.String {
			return compilererror.New(tok.Location, "expected a string after description:")
		}
		ctx.GetConstruction().Description = tok.Text
		return nil
	})
	define(rt, "signature:", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		tok, terr := ctx.GetNextToken()
		if terr != nil {
			return terr
		}
		if tok.Kind != source.String {
			return compilererror.New(tok.Location, "expected a string after signature:")
		}
		ctx.GetConstruction().Signature = tok.Text
		return nil
	})

	define(rt, "defined?", func(rt *runtime.Runtime, _ *runtime.Context) error {
		loc := rt.CurrentLocation()
		name, err := rt.Data.PopString(loc)
		if err != nil {
			return err
		}
		rt.Data.Push(value.NewBool(rt.Dict.Exists(name)))
		return nil
	})
	define(rt, "[defined?]", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		return pushWordQuery(rt, ctx, false)
	})
	define(rt, "[undefined?]", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		return pushWordQuery(rt, ctx, true)
	})

	define(rt, "word.description@", func(rt *runtime.Runtime, _ *runtime.Context) error {
		return pushWordField(rt, func(rec dictionary.WordRecord) string { return rec.Description })
	})
	define(rt, "word.signature@", func(rt *runtime.Runtime, _ *runtime.Context) error {
		return pushWordField(rt, func(rec dictionary.WordRecord) string { return rec.Signature })
	})
}

func pushWordQuery(rt *runtime.Runtime, ctx *runtime.Context, negate bool) error {
	tok, terr := ctx.GetNextToken()
	if terr != nil {
		return terr
	}
	name, ok := tok.GetAsWord()
	if !ok {
		return compilererror.New(tok.Location, "expected a word name")
	}
	exists := rt.Dict.Exists(name)
	if negate {
		exists = !exists
	}
	rt.Data.Push(value.NewBool(exists))
	return nil
}

func pushWordField(rt *runtime.Runtime, field func(dictionary.WordRecord) string) error {
	loc := rt.CurrentLocation()
	name, err := rt.Data.PopString(loc)
	if err != nil {
		return err
	}
	rec, ok := rt.Dict.Lookup(name)
	if !ok {
		return compilererror.New(loc, "word not found: %s", name)
	}
	rt.Data.Push(value.NewString(field(rec)))
	return nil
}
