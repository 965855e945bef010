package source

import "unicode/utf8"

// Buffer streams runes from a UTF-8 source text, tracking the current
// (line, column) cursor so every rune consumed can be stamped with a
// Location. Lines and columns are both 1-based.
type Buffer struct {
	file string
	src  []byte
	pos  int // byte offset of the next rune to read
	line int
	col  int
}

// NewBuffer creates a Buffer over src, attributing all locations to file.
func NewBuffer(file string, src []byte) *Buffer {
	return &Buffer{file: file, src: src, line: 1, col: 1}
}

// File returns the canonical path this buffer was created with.
func (b *Buffer) File() string { return b.file }

// AtEnd reports whether the buffer has no more runes to read.
func (b *Buffer) AtEnd() bool { return b.pos >= len(b.src) }

// Location returns the location of the next rune to be read.
func (b *Buffer) Location() Location {
	return Location{File: b.file, Line: b.line, Column: b.col}
}

// Peek returns the next rune without consuming it. It returns
// utf8.RuneError, 0 at end of input.
func (b *Buffer) Peek() (rune, int) {
	if b.AtEnd() {
		return utf8.RuneError, 0
	}
	r, size := utf8.DecodeRune(b.src[b.pos:])
	return r, size
}

// PeekAt returns the rune `offset` runes ahead of the cursor (0 == next
// rune), or utf8.RuneError, 0 if that is past the end of input. It is used
// by the tokenizer to look ahead for multi-character forms (e.g. `*"`).
func (b *Buffer) PeekAt(offset int) (rune, int) {
	pos := b.pos
	var r rune
	var size int
	for i := 0; i <= offset; i++ {
		if pos >= len(b.src) {
			return utf8.RuneError, 0
		}
		r, size = utf8.DecodeRune(b.src[pos:])
		pos += size
	}
	return r, size
}

// Next consumes and returns the next rune, advancing line/column. A newline
// resets the column to 1 and increments the line; any other rune advances
// the column by 1 (byte-width runes are treated as a single column, matching
// the reference tokenizer's column accounting).
func (b *Buffer) Next() (rune, bool) {
	if b.AtEnd() {
		return 0, false
	}
	r, size := utf8.DecodeRune(b.src[b.pos:])
	b.pos += size
	if r == '\n' {
		b.line++
		b.col = 1
	} else {
		b.col++
	}
	return r, true
}
