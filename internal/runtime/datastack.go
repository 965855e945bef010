package runtime

import (
	"github.com/sorth-lang/sorthc/internal/compilererror"
	"github.com/sorth-lang/sorthc/internal/source"
	"github.com/sorth-lang/sorthc/internal/value"
)

// DataStack is the compile-time interpreter's operand stack: a plain LIFO of
// Values, with typed pop helpers that coerce numeric variants and fail with
// a location-tagged error on type mismatch or underflow.
type DataStack struct {
	items []value.Value
}

// NewDataStack creates an empty data stack.
func NewDataStack() *DataStack {
	return &DataStack{}
}

// Push pushes v onto the stack.
func (d *DataStack) Push(v value.Value) {
	d.items = append(d.items, v)
}

// Depth returns the number of items currently on the stack.
func (d *DataStack) Depth() int {
	return len(d.items)
}

func (d *DataStack) pop(loc source.Location) (value.Value, *compilererror.Error) {
	if len(d.items) == 0 {
		return value.Value{}, compilererror.New(loc, "data stack underflow")
	}
	v := d.items[len(d.items)-1]
	d.items = d.items[:len(d.items)-1]
	return v, nil
}

// Pop pops and returns the top value, or a stack-underflow error.
func (d *DataStack) Pop(loc source.Location) (value.Value, *compilererror.Error) {
	return d.pop(loc)
}

// Peek returns the top value without popping it.
func (d *DataStack) Peek(loc source.Location) (value.Value, *compilererror.Error) {
	if len(d.items) == 0 {
		return value.Value{}, compilererror.New(loc, "data stack underflow")
	}
	return d.items[len(d.items)-1], nil
}

// PopInt pops the top value and coerces it to int64.
func (d *DataStack) PopInt(loc source.Location) (int64, *compilererror.Error) {
	v, err := d.pop(loc)
	if err != nil {
		return 0, err
	}
	i, cerr := v.AsInt()
	if cerr != nil {
		return 0, compilererror.New(loc, "%s", cerr)
	}
	return i, nil
}

// PopFloat pops the top value and coerces it to float64.
func (d *DataStack) PopFloat(loc source.Location) (float64, *compilererror.Error) {
	v, err := d.pop(loc)
	if err != nil {
		return 0, err
	}
	f, cerr := v.AsFloat()
	if cerr != nil {
		return 0, compilererror.New(loc, "%s", cerr)
	}
	return f, nil
}

// PopBool pops the top value and coerces it to bool.
func (d *DataStack) PopBool(loc source.Location) (bool, *compilererror.Error) {
	v, err := d.pop(loc)
	if err != nil {
		return false, err
	}
	b, cerr := v.AsBool()
	if cerr != nil {
		return false, compilererror.New(loc, "%s", cerr)
	}
	return b, nil
}

// PopString pops the top value and requires it to be a string.
func (d *DataStack) PopString(loc source.Location) (string, *compilererror.Error) {
	v, err := d.pop(loc)
	if err != nil {
		return "", err
	}
	s, cerr := v.AsString()
	if cerr != nil {
		return "", compilererror.New(loc, "%s", cerr)
	}
	return s, nil
}

// PopValue pops and returns the top value with no coercion.
func (d *DataStack) PopValue(loc source.Location) (value.Value, *compilererror.Error) {
	return d.pop(loc)
}

// Dup, Drop, Swap, Over and Rot implement the kernel's stack-shuffling words
// directly against the stack's internal slice, avoiding redundant
// pop/push round-trips for fixed-arity shuffles.
func (d *DataStack) Dup(loc source.Location) *compilererror.Error {
	if len(d.items) == 0 {
		return compilererror.New(loc, "data stack underflow")
	}
	d.items = append(d.items, d.items[len(d.items)-1])
	return nil
}

func (d *DataStack) Drop(loc source.Location) *compilererror.Error {
	_, err := d.pop(loc)
	return err
}

func (d *DataStack) Swap(loc source.Location) *compilererror.Error {
	n := len(d.items)
	if n < 2 {
		return compilererror.New(loc, "data stack underflow")
	}
	d.items[n-1], d.items[n-2] = d.items[n-2], d.items[n-1]
	return nil
}

func (d *DataStack) Over(loc source.Location) *compilererror.Error {
	n := len(d.items)
	if n < 2 {
		return compilererror.New(loc, "data stack underflow")
	}
	d.items = append(d.items, d.items[n-2])
	return nil
}

func (d *DataStack) Rot(loc source.Location) *compilererror.Error {
	n := len(d.items)
	if n < 3 {
		return compilererror.New(loc, "data stack underflow")
	}
	d.items[n-3], d.items[n-2], d.items[n-1] = d.items[n-2], d.items[n-1], d.items[n-3]
	return nil
}
