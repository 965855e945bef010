// Package source implements the character stream and tokenizer that front
// the compiler: a Buffer tracks (file, line, column) as it is consumed, and
// Tokenize turns it into the ordered token sequence the rest of the
// compiler walks.
package source

import "fmt"

// Location identifies a point in a source file by its canonical path and its
// 1-based line and column. A Location with Line or Column equal to 0 is
// unknown.
type Location struct {
	File   string
	Line   int
	Column int
}

// String formats the location as "file:line:column", matching the format
// used throughout error messages and call-stack frames.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Unknown reports whether the location carries no line/column information.
func (l Location) Unknown() bool {
	return l.Line == 0 || l.Column == 0
}

// Before reports whether l strictly precedes other in (file, line, column)
// order. Locations in different files are ordered by file name only, which
// is sufficient for the monotonicity checks the tokenizer relies on.
func (l Location) Before(other Location) bool {
	if l.File != other.File {
		return l.File < other.File
	}
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}

// Compare implements the total order over locations: negative if l < other,
// positive if l > other, zero if equal.
func (l Location) Compare(other Location) int {
	switch {
	case l.File != other.File:
		if l.File < other.File {
			return -1
		}
		return 1
	case l.Line != other.Line:
		return l.Line - other.Line
	default:
		return l.Column - other.Column
	}
}
