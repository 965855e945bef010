package source

import (
	"strconv"
	"strings"
)

// Kind identifies the syntactic category of a Token.
type Kind uint8

const (
	// None is only a sentinel; it never appears in a tokenizer's output.
	None Kind = iota
	Word
	String
	Int
	Float
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Word:
		return "word"
	case String:
		return "string"
	case Int:
		return "integer"
	case Float:
		return "float"
	default:
		return "unknown token kind"
	}
}

// Token is a single lexical unit produced by the tokenizer. Word and String
// tokens carry their text in Text; Int and Float tokens carry their parsed
// numeric value in IntValue/FloatValue and the original source text in Text.
type Token struct {
	Location   Location
	Kind       Kind
	Text       string
	IntValue   int64
	FloatValue float64
}

// IsWord reports whether the token is a Word token with the given text.
func (t Token) IsWord(text string) bool {
	return t.Kind == Word && t.Text == text
}

// GetAsWord converts the token back to the word-like text it would have
// appeared as in source. Numeric tokens are rendered from their parsed value
// in canonical form (so "0x10" comes back as "16"), not from Text. String
// tokens are never valid word names: for them (and None) it returns false,
// and the caller reports the error.
func (t Token) GetAsWord() (string, bool) {
	switch t.Kind {
	case Word:
		return t.Text, true
	case Int:
		return strconv.FormatInt(t.IntValue, 10), true
	case Float:
		return strconv.FormatFloat(t.FloatValue, 'g', -1, 64), true
	default:
		return "", false
	}
}

// String renders the token for diagnostics and the disassembler.
func (t Token) String() string {
	switch t.Kind {
	case Word:
		return t.Text
	case String:
		var b strings.Builder
		b.WriteByte('"')
		for _, r := range t.Text {
			switch r {
			case '"':
				b.WriteString(`\"`)
			case '\\':
				b.WriteString(`\\`)
			case '\n':
				b.WriteString(`\n`)
			default:
				b.WriteRune(r)
			}
		}
		b.WriteByte('"')
		return b.String()
	case Int:
		return strconv.FormatInt(t.IntValue, 10)
	case Float:
		return strconv.FormatFloat(t.FloatValue, 'g', -1, 64)
	default:
		return "<none>"
	}
}
