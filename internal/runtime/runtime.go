// Package runtime implements the compile-time runtime (the interpreter that
// drives immediate-word execution, spec.md §4.2) and the byte-code compiler
// context (the per-script compilation state, spec.md §4.3). The two are
// defined in the same package because they are each other's closest
// collaborator — compiling a script creates a Context bound to a Runtime,
// and nearly every built-in word needs both at once — which also breaks
// what would otherwise be an import cycle between a "runtime" package and a
// "context" package.
package runtime

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sorth-lang/sorthc/internal/compilererror"
	"github.com/sorth-lang/sorthc/internal/dictionary"
	"github.com/sorth-lang/sorthc/internal/script"
	"github.com/sorth-lang/sorthc/internal/source"
)

type cacheState uint8

const (
	cacheDone cacheState = iota
	cachePending
)

type cacheEntry struct {
	state  cacheState
	script *script.Script
}

// Runtime is the process-wide (but compiler-instance-scoped) state container
// described in spec.md §4.2: a data stack, a variable slab, a dictionary, a
// handler table, a call stack, search paths, a script cache keyed by
// canonical path, and the last-asserted location used for error reporting.
type Runtime struct {
	Data      *DataStack
	Variables *VariableSlab
	Dict      *dictionary.Dictionary
	Handlers  *HandlerTable
	CallStack *CallStack
	Paths     *SearchPaths

	cache map[string]*cacheEntry

	currentLocation source.Location
	labelCounter    uint64
}

// New creates a bare Runtime: an empty dictionary (with its root scope),
// empty data stack and variable slab, an empty handler table and script
// cache, and the given search paths. Unlike the original implementation's
// constructor, registration of the ~60 native built-in words and compiling
// the standard library are NOT done here — in Go, that would require this
// package to import the words/stdlib packages that in turn need Runtime's
// type, an import cycle. Bootstrapping is instead a top-level composition
// step (see internal/stdlib.Bootstrap), mirroring how the teacher's own
// main.go/maincmd wires together otherwise-independent packages rather than
// having one object's constructor reach out to every collaborator.
func New(searchPaths ...string) *Runtime {
	return &Runtime{
		Data:      NewDataStack(),
		Variables: NewVariableSlab(),
		Dict:      dictionary.NewDictionary(),
		Handlers:  NewHandlerTable(),
		CallStack: NewCallStack(),
		Paths:     NewSearchPaths(searchPaths...),
		cache:     make(map[string]*cacheEntry),
	}
}

// CurrentLocation returns the last location asserted by the executing
// compile-time body, used to stamp errors raised without a more specific
// location at hand.
func (rt *Runtime) CurrentLocation() source.Location {
	return rt.currentLocation
}

// SetCurrentLocation updates the last-asserted location; the JIT's
// set_location step calls this before every instruction that carries a
// location.
func (rt *Runtime) SetCurrentLocation(loc source.Location) {
	rt.currentLocation = loc
}

// UniqueLabel returns a monotonic hex-suffixed label, used to name jump
// anchors emitted by built-in control-flow words (unique_str, spec §4.4).
func (rt *Runtime) UniqueLabel(prefix string) string {
	rt.labelCounter++
	return prefix + "_" + strconv.FormatUint(rt.labelCounter, 16)
}

// FindFile resolves p against the search paths (see SearchPaths.Find) and
// additionally canonicalizes the result (absolute, cleaned path), since the
// script cache is keyed by canonical path.
func (rt *Runtime) FindFile(p string) (string, *compilererror.Error) {
	found, ok := rt.Paths.Find(p)
	if !ok {
		return "", compilererror.New(rt.currentLocation, "source file not found along search paths: %s", p)
	}
	abs, err := filepath.Abs(found)
	if err != nil {
		return "", compilererror.New(rt.currentLocation, "cannot resolve path %s: %s", found, err)
	}
	return filepath.Clean(abs), nil
}

// Invoke calls the handler at idx, pushing/popping a call-stack frame
// around the call and translating any returned error into a compilererror.Error
// with the current call-stack snapshot attached. An error that already
// carries a snapshot (taken by a nested Invoke, deeper in the call stack)
// keeps it, so the reported frames run from the innermost word outward.
// name is used for the call-stack frame when the handler doesn't carry one
// of its own.
func (rt *Runtime) Invoke(idx int, ctx *Context, name string, loc source.Location) *compilererror.Error {
	rec, ok := rt.Handlers.Get(idx)
	if !ok {
		return compilererror.New(loc, "invalid handler index %d", idx)
	}
	rt.CallStack.Push(compilererror.Frame{Name: name, Location: loc})
	defer rt.CallStack.Pop()

	if err := rec.Fn(rt, ctx); err != nil {
		if cerr, ok := err.(*compilererror.Error); ok {
			if cerr.CallStack == nil {
				cerr.CallStack = rt.CallStack.Snapshot()
			}
			return cerr
		}
		cerr := compilererror.New(loc, "%s", err)
		cerr.CallStack = rt.CallStack.Snapshot()
		return cerr
	}
	return nil
}

// CompileScript implements compile_script(path) (spec.md §4.6): a no-op on
// cache hit, otherwise tokenize, create a Context, drive compilation, and
// store the result. A currently-compiling script is marked "pending" in the
// cache before its tokens are walked, so an `include` cycle is detected as a
// harmless no-op (the cycle's second visit sees the pending marker and
// returns immediately, with a nil Script and no error) rather than infinite
// recursion.
func (rt *Runtime) CompileScript(path string) (*script.Script, *compilererror.Error) {
	full, ferr := rt.FindFile(path)
	if ferr != nil {
		return nil, ferr
	}

	if entry, ok := rt.cache[full]; ok {
		return entry.script, nil
	}

	rt.cache[full] = &cacheEntry{state: cachePending}

	src, err := os.ReadFile(full)
	if err != nil {
		return nil, compilererror.New(rt.currentLocation, "cannot read %s: %s", full, err)
	}

	toks, terr := source.Tokenize(source.NewBuffer(full, src))
	if terr != nil {
		delete(rt.cache, full)
		return nil, compilererror.New(rt.currentLocation, "%s", terr)
	}

	ctx := NewContext(rt, full, toks)
	if cerr := ctx.CompileTokenList(); cerr != nil {
		delete(rt.cache, full)
		return nil, cerr
	}

	sc := script.New(full)
	sc.Words = ctx.TakeWords()
	sc.TopLevelCode = ctx.TakeTopLevelCode()
	sc.SubScripts = ctx.TakeSubScripts()
	sc.StructureTypes = ctx.TakeStructureTypes()
	sc.FFIFunctions = ctx.TakeFFIFunctions()

	rt.cache[full] = &cacheEntry{state: cacheDone, script: sc}
	return sc, nil
}

// CachedScript returns the Script for a previously compiled canonical path,
// mainly for tests asserting the "compiled at most once" invariant.
func (rt *Runtime) CachedScript(canonicalPath string) (*script.Script, bool) {
	entry, ok := rt.cache[canonicalPath]
	if !ok || entry.state != cacheDone {
		return nil, false
	}
	return entry.script, true
}

func (rt *Runtime) String() string {
	return fmt.Sprintf("runtime(dict_depth=%d, stack_depth=%d)", rt.Dict.Depth(), rt.Data.Depth())
}
