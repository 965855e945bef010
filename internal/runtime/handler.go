package runtime

import "github.com/sorth-lang/sorthc/internal/source"

// Handler is the native-callable a dictionary entry's HandlerIndex points
// to: a Go closure taking the runtime and the compiler context currently
// driving compilation (the context a compile_time word's body manipulates).
// Both native built-ins and JIT-produced closures for user-defined immediate
// words share this signature, so `execute` never needs to know which kind
// of handler it is invoking.
type Handler func(rt *Runtime, ctx *Context) error

// HandlerRecord pairs a Handler with its origin metadata for diagnostics.
type HandlerRecord struct {
	Location source.Location
	Name     string
	Fn       Handler
}

// HandlerTable is the append-only vector mapping a handler index to its
// native callable. Indices already handed out remain valid for the life of
// the table, even as more handlers are appended (spec §5, "shared resource
// policy").
type HandlerTable struct {
	records []HandlerRecord
}

// NewHandlerTable creates an empty handler table.
func NewHandlerTable() *HandlerTable {
	return &HandlerTable{}
}

// Register appends a handler and returns its now-immutable index.
func (h *HandlerTable) Register(rec HandlerRecord) int {
	h.records = append(h.records, rec)
	return len(h.records) - 1
}

// Get returns the handler record at idx.
func (h *HandlerTable) Get(idx int) (HandlerRecord, bool) {
	if idx < 0 || idx >= len(h.records) {
		return HandlerRecord{}, false
	}
	return h.records[idx], true
}

// Len returns the number of registered handlers.
func (h *HandlerTable) Len() int {
	return len(h.records)
}
