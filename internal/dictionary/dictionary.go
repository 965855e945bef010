// Package dictionary implements the compiler's scoped name->word-record
// table: a stack of maps supporting mark/release scoping, with lookup
// walking from the innermost scope outward.
//
// The scope push/pop and innermost-first lookup shape is adapted directly
// from the teacher's lang/resolver package, whose *resolver.block type links
// scopes through a parent pointer and resolves names by walking that chain
// (lang/resolver/resolver.go, resolver.push/pop and the lookup walk in
// resolver.use). The resolver builds its scope chain once, statically, over
// an AST; our Dictionary instead grows and shrinks it dynamically, at
// compile time, driven by mark_context/release_context instructions, and
// each binding is a WordRecord rather than a resolver.Binding.
package dictionary

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/sorth-lang/sorthc/internal/bytecode"
	"github.com/sorth-lang/sorthc/internal/source"
)

// WordType distinguishes a scripted word (compiled from source, run through
// the JIT or handed to the run-time word list) from an internal word (a
// native Go closure registered directly in the handler table).
type WordType uint8

const (
	Scripted WordType = iota
	Internal
)

// WordRecord is a dictionary entry. The handler itself lives in the separate
// append-only handler table; the dictionary stores only its index, breaking
// the dictionary->handler->runtime->dictionary reference cycle the same way
// spec §9 requires: by integer key, not pointer.
type WordRecord struct {
	ExecutionContext bytecode.ExecutionContext
	Type             WordType
	Visibility       bytecode.Visibility
	Management       bytecode.ContextManagement
	Name             string
	Description      string
	Signature        string
	Location         source.Location
	HandlerIndex     int
}

// scope is one level of the dictionary's scope stack: a map from word name
// to record, plus a parent link to the enclosing scope (nil for the
// outermost/root scope).
type scope struct {
	names  *swiss.Map[string, WordRecord]
	parent *scope
}

// Dictionary is a stack of name->WordRecord scopes. The bottom scope is
// created by NewDictionary and can never be released; mark_context pushes a
// new scope, release_context pops the innermost one. Lookup walks from the
// innermost scope outward, so an inner definition shadows an outer one of
// the same name.
type Dictionary struct {
	top   *scope
	depth int
}

// NewDictionary creates a dictionary with its single root scope already
// pushed, matching the invariant that dictionary depth is always >= 1.
func NewDictionary() *Dictionary {
	d := &Dictionary{}
	d.top = &scope{names: swiss.NewMap[string, WordRecord](64)}
	d.depth = 1
	return d
}

// MarkContext pushes a new, empty scope onto the dictionary.
func (d *Dictionary) MarkContext() {
	d.top = &scope{names: swiss.NewMap[string, WordRecord](8), parent: d.top}
	d.depth++
}

// ReleaseContext pops the innermost scope. Releasing the root scope is a
// programmer error (it would break the depth >= 1 invariant) and panics,
// since it can only be caused by a mark_context/release_context imbalance
// inside the compiler itself, never by user input.
func (d *Dictionary) ReleaseContext() {
	if d.top.parent == nil {
		panic("dictionary: release_context called on root scope")
	}
	d.top = d.top.parent
	d.depth--
}

// Depth returns the current scope-stack depth (root scope counts as 1).
func (d *Dictionary) Depth() int {
	return d.depth
}

// Define adds or overwrites (within the innermost scope) a word record.
func (d *Dictionary) Define(rec WordRecord) {
	d.top.names.Put(rec.Name, rec)
}

// Lookup walks from the innermost scope outward and returns the first
// matching record.
func (d *Dictionary) Lookup(name string) (WordRecord, bool) {
	for s := d.top; s != nil; s = s.parent {
		if rec, ok := s.names.Get(name); ok {
			return rec, true
		}
	}
	return WordRecord{}, false
}

// Exists reports whether name resolves to any word record in scope.
func (d *Dictionary) Exists(name string) bool {
	_, ok := d.Lookup(name)
	return ok
}

func (d *Dictionary) String() string {
	return fmt.Sprintf("dictionary(depth=%d)", d.depth)
}
