// Package compilererror implements the compiler's single error model:
// a location-tagged message with an attached call-stack snapshot, plus a
// list type for phases (like tokenizing) that may want to report more than
// one failure, modeled after go/scanner's ErrorList.
package compilererror

import (
	"fmt"
	"strings"

	"github.com/sorth-lang/sorthc/internal/source"
)

// Frame is one entry of a call-stack snapshot: the word being executed and
// the location where it was invoked.
type Frame struct {
	Name     string
	Location source.Location
}

func (f Frame) String() string {
	return fmt.Sprintf("%s (%s)", f.Name, f.Location)
}

// Error is the compiler's single error type. Every failure surfaced by a
// built-in word, the tokenizer, the JIT, or user `throw` is wrapped in one of
// these before it crosses a handler boundary.
type Error struct {
	Message   string
	Location  source.Location
	CallStack []Frame
}

// New creates an Error with no call-stack attached yet; the runtime attaches
// a call-stack snapshot when the error first leaves a word invocation (see
// runtime.Runtime.Invoke).
func New(loc source.Location, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Location: loc}
}

// Push appends a frame to the end of the call-stack snapshot, which is kept
// innermost first, so each pushed frame is further out than those before it.
func (e *Error) Push(frame Frame) *Error {
	e.CallStack = append(e.CallStack, frame)
	return e
}

func (e *Error) Error() string {
	if e.Location.Unknown() {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// Report renders the error message followed by its call-stack frames,
// innermost first, one per line — the shape the CLI driver prints to
// stderr on failure.
func (e *Error) Report() string {
	var b strings.Builder
	b.WriteString(e.Error())
	for _, fr := range e.CallStack {
		b.WriteString("\n\tat ")
		b.WriteString(fr.String())
	}
	return b.String()
}

// List collects positioned errors from a phase that keeps going after a
// failure (the tokenizer, currently) instead of aborting at the first one.
// It mirrors go/scanner.ErrorList: Add appends, Err returns nil, the lone
// error, or the list itself depending on how many were collected.
type List []*Error

func (l *List) Add(err *Error) {
	*l = append(*l, err)
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (and %d more errors)", l[0].Error(), len(l)-1)
	return b.String()
}

// Unwrap exposes the individual errors so errors.Is/As work across the list.
func (l List) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns nil if the list is empty, the single error if there is
// exactly one, or the list itself (as an error) otherwise.
func (l List) Err() error {
	switch len(l) {
	case 0:
		return nil
	case 1:
		return l[0]
	default:
		return l
	}
}
