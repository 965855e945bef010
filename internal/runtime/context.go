package runtime

import (
	"github.com/sorth-lang/sorthc/internal/bytecode"
	"github.com/sorth-lang/sorthc/internal/compilererror"
	"github.com/sorth-lang/sorthc/internal/script"
	"github.com/sorth-lang/sorthc/internal/source"
	"github.com/sorth-lang/sorthc/internal/value"
)

// Context is the per-script compilation state described in spec.md §4.3: the
// token vector and cursor, the construction stack (bottom = the script's top
// level), the sub-script list, and the structure/FFI declarations collected
// while compiling. One Context exists per script under compilation; nested
// `:` definitions push further Constructions onto the same stack rather than
// creating a nested Context, so the teacher's token-cursor shape
// (lang/parser's p.advance()/p.tok pattern) is what's adapted here, not its
// recursive-descent grammar.
type Context struct {
	rt         *Runtime
	scriptPath string

	tokens []source.Token
	cursor int

	constructions []*bytecode.Construction

	runTimeWords   map[string]*bytecode.Construction
	subScripts     []*script.Script
	structureTypes []script.StructureType
	ffiFunctions   []script.FFIFunction

	controlLabels []string
}

// NewContext creates a Context bound to rt for compiling the given token
// stream, with its top-level construction already pushed.
func NewContext(rt *Runtime, scriptPath string, tokens []source.Token) *Context {
	topLoc := source.Location{File: scriptPath, Line: 1, Column: 1}
	if len(tokens) > 0 {
		topLoc = tokens[0].Location
	}
	return &Context{
		rt:            rt,
		scriptPath:    scriptPath,
		tokens:        tokens,
		constructions: []*bytecode.Construction{bytecode.NewConstruction(topLoc)},
		runTimeWords:  make(map[string]*bytecode.Construction),
	}
}

// Runtime returns the runtime this context compiles against.
func (ctx *Context) Runtime() *Runtime { return ctx.rt }

// ScriptPath returns the canonical path of the script this context compiles.
func (ctx *Context) ScriptPath() string { return ctx.scriptPath }

// AtEnd reports whether the cursor has consumed every token.
func (ctx *Context) AtEnd() bool {
	return ctx.cursor >= len(ctx.tokens)
}

// GetNextToken advances the cursor and returns the token it lands on, or an
// error if the cursor is already past the end of the token stream.
func (ctx *Context) GetNextToken() (source.Token, *compilererror.Error) {
	if ctx.AtEnd() {
		loc := ctx.rt.CurrentLocation()
		if len(ctx.tokens) > 0 {
			loc = ctx.tokens[len(ctx.tokens)-1].Location
		}
		return source.Token{}, compilererror.New(loc, "unexpected end of input")
	}
	tok := ctx.tokens[ctx.cursor]
	ctx.cursor++
	return tok, nil
}

// PeekToken returns the next token without consuming it.
func (ctx *Context) PeekToken() (source.Token, bool) {
	if ctx.AtEnd() {
		return source.Token{}, false
	}
	return ctx.tokens[ctx.cursor], true
}

// CompileToken routes a single token through the front end: literals become
// push_constant_value; word tokens are looked up in the dictionary — a
// compile_time word is invoked immediately (its handler may itself consume
// more tokens and manipulate this context), anything else (including a name
// the dictionary doesn't know at all, e.g. a runtime vocabulary word bound
// only at backend link time) becomes an `execute name` instruction. A None
// token can never be produced by the tokenizer and is a caller error.
func (ctx *Context) CompileToken(tok source.Token) *compilererror.Error {
	switch tok.Kind {
	case source.Word:
		return ctx.compileWordToken(tok)
	case source.String:
		ctx.InsertInstruction(bytecode.Instruction{
			ID:       bytecode.PushConstantValue,
			Operand:  value.NewString(tok.Text),
			Location: &tok.Location,
		})
		return nil
	case source.Int:
		ctx.InsertInstruction(bytecode.Instruction{
			ID:       bytecode.PushConstantValue,
			Operand:  value.NewInt(tok.IntValue),
			Location: &tok.Location,
		})
		return nil
	case source.Float:
		ctx.InsertInstruction(bytecode.Instruction{
			ID:       bytecode.PushConstantValue,
			Operand:  value.NewFloat(tok.FloatValue),
			Location: &tok.Location,
		})
		return nil
	default:
		return compilererror.New(tok.Location, "invalid token")
	}
}

func (ctx *Context) compileWordToken(tok source.Token) *compilererror.Error {
	rec, ok := ctx.rt.Dict.Lookup(tok.Text)
	if ok && rec.ExecutionContext == bytecode.CompileTime {
		return ctx.rt.Invoke(rec.HandlerIndex, ctx, tok.Text, tok.Location)
	}
	ctx.InsertInstruction(bytecode.Instruction{
		ID:       bytecode.Execute,
		Operand:  value.NewString(tok.Text),
		Location: &tok.Location,
	})
	return nil
}

// CompileUntilWords drives CompileToken on successive tokens until it finds
// a Word token whose text is in words, returning the matched name. Reaching
// the end of input first is an error located at the position where this
// search began.
func (ctx *Context) CompileUntilWords(words map[string]bool) (string, *compilererror.Error) {
	startLoc := ctx.rt.CurrentLocation()
	if tok, ok := ctx.PeekToken(); ok {
		startLoc = tok.Location
	}

	for {
		tok, err := ctx.GetNextToken()
		if err != nil {
			return "", compilererror.New(startLoc, "missing matching word")
		}
		if tok.Kind == source.Word && words[tok.Text] {
			return tok.Text, nil
		}
		if cerr := ctx.CompileToken(tok); cerr != nil {
			return "", cerr
		}
	}
}

// CompileTokenList drives CompileToken over every remaining token, the
// top-level driver used by Runtime.CompileScript.
func (ctx *Context) CompileTokenList() *compilererror.Error {
	for !ctx.AtEnd() {
		tok, err := ctx.GetNextToken()
		if err != nil {
			return err
		}
		if cerr := ctx.CompileToken(tok); cerr != nil {
			return cerr
		}
	}
	return nil
}

// NewConstruction pushes a new, named construction onto the construction
// stack (`:`'s effect, and code.new_block).
func (ctx *Context) NewConstruction(loc source.Location, name string) *bytecode.Construction {
	c := bytecode.NewConstruction(loc)
	c.Name = name
	ctx.constructions = append(ctx.constructions, c)
	return c
}

// DropConstruction pops and discards the top construction (code.drop_stack_block).
// It refuses to pop the last remaining (top-level) construction, since the
// construction stack must stay non-empty throughout compilation.
func (ctx *Context) DropConstruction() (*bytecode.Construction, bool) {
	if len(ctx.constructions) <= 1 {
		return nil, false
	}
	top := ctx.constructions[len(ctx.constructions)-1]
	ctx.constructions = ctx.constructions[:len(ctx.constructions)-1]
	return top, true
}

// MergeConstructions pops the top construction and appends its code onto the
// new top, discarding the child (code.merge_stack_block).
func (ctx *Context) MergeConstructions() bool {
	child, ok := ctx.DropConstruction()
	if !ok {
		return false
	}
	ctx.GetConstruction().Merge(child)
	return true
}

// GetConstruction returns the top-of-stack construction.
func (ctx *Context) GetConstruction() *bytecode.Construction {
	return ctx.constructions[len(ctx.constructions)-1]
}

// PushConstruction pushes an already-built construction onto the stack
// (code.push_stack_block, the inverse of pop semantics exposed to the
// words package as DropConstruction).
func (ctx *Context) PushConstruction(c *bytecode.Construction) {
	ctx.constructions = append(ctx.constructions, c)
}

// ConstructionDepth returns the number of constructions currently on the
// stack; it is always >= 1.
func (ctx *Context) ConstructionDepth() int {
	return len(ctx.constructions)
}

// InsertInstruction appends (or prepends, depending on the top
// construction's insertion point) one instruction to the top construction.
// This is the sole append point used by every op.* built-in and by literal
// token compilation.
func (ctx *Context) InsertInstruction(insn bytecode.Instruction) {
	ctx.GetConstruction().Insert(insn)
}

// AddRunTimeWord records a completed run-time word definition, to be handed
// to the AOT backend via the assembled Script.
func (ctx *Context) AddRunTimeWord(name string, c *bytecode.Construction) {
	ctx.runTimeWords[name] = c
}

// AddSubScript records a script produced by a nested compile-time
// construction (e.g. one that itself calls compile_script on another file
// and wants the result threaded through to the backend).
func (ctx *Context) AddSubScript(sc *script.Script) {
	ctx.subScripts = append(ctx.subScripts, sc)
}

// AddStructureType records a `struct:` declaration collected while
// compiling this script.
func (ctx *Context) AddStructureType(t script.StructureType) {
	ctx.structureTypes = append(ctx.structureTypes, t)
}

// AddFFIFunction records an `ffi.function:` declaration collected while
// compiling this script.
func (ctx *Context) AddFFIFunction(f script.FFIFunction) {
	ctx.ffiFunctions = append(ctx.ffiFunctions, f)
}

// PushControlLabel and PopControlLabel implement the small stack of pending
// jump labels that compile_time control-structure words (if/else/then,
// begin/until) thread through a single run_time word's compilation, the
// same nesting discipline Forth systems call the "control-flow stack".
func (ctx *Context) PushControlLabel(label string) {
	ctx.controlLabels = append(ctx.controlLabels, label)
}

func (ctx *Context) PopControlLabel() (string, bool) {
	if len(ctx.controlLabels) == 0 {
		return "", false
	}
	label := ctx.controlLabels[len(ctx.controlLabels)-1]
	ctx.controlLabels = ctx.controlLabels[:len(ctx.controlLabels)-1]
	return label, true
}

// TakeWords, TakeTopLevelCode, TakeSubScripts, TakeStructureTypes and
// TakeFFIFunctions are the final-assembly accessors Runtime.CompileScript
// uses to build the Script record once compilation of this context
// completes; at that point exactly one construction (the top level) must
// remain on the stack.
func (ctx *Context) TakeWords() map[string]*bytecode.Construction {
	return ctx.runTimeWords
}

func (ctx *Context) TakeTopLevelCode() []bytecode.Instruction {
	return ctx.constructions[0].Code
}

func (ctx *Context) TakeSubScripts() []*script.Script {
	return ctx.subScripts
}

func (ctx *Context) TakeStructureTypes() []script.StructureType {
	return ctx.structureTypes
}

func (ctx *Context) TakeFFIFunctions() []script.FFIFunction {
	return ctx.ffiFunctions
}
