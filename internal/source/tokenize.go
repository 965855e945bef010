package source

import (
	"strconv"
	"strings"

	"github.com/sorth-lang/sorthc/internal/compilererror"
)

// Tokenize consumes the whole buffer and returns its tokens in source order.
// Lexical failures (bad escapes, unterminated strings, unexpected newlines)
// are collected into the returned compilererror.List rather than aborting at
// the first one, so a single call reports every lexical problem in a file.
func Tokenize(b *Buffer) ([]Token, error) {
	var (
		toks []Token
		errs compilererror.List
	)
	for {
		skipWhitespace(b)
		if b.AtEnd() {
			break
		}
		loc := b.Location()

		r, _ := b.Peek()
		if r == '"' {
			tok, err := tokenizeString(b, loc)
			if err != nil {
				errs.Add(err)
				continue
			}
			toks = append(toks, tok)
			continue
		}

		text := gatherRun(b)
		toks = append(toks, classify(loc, text))
	}
	return toks, errs.Err()
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

func skipWhitespace(b *Buffer) {
	for {
		r, _ := b.Peek()
		if !isSpace(r) {
			return
		}
		b.Next()
	}
}

// gatherRun consumes and returns the maximal run of non-whitespace runes.
func gatherRun(b *Buffer) string {
	var sb strings.Builder
	for {
		if b.AtEnd() {
			break
		}
		r, _ := b.Peek()
		if isSpace(r) {
			break
		}
		b.Next()
		sb.WriteRune(r)
	}
	return sb.String()
}

// classify turns the gathered non-whitespace run into a numeric token when
// it parses cleanly as one, else a Word token carrying the original text.
func classify(loc Location, text string) Token {
	if looksNumeric(text) {
		if tok, ok := parseNumeric(loc, text); ok {
			return tok
		}
	}
	return Token{Location: loc, Kind: Word, Text: text}
}

func looksNumeric(text string) bool {
	if text == "" {
		return false
	}
	i := 0
	if text[0] == '+' || text[0] == '-' {
		i++
	}
	return i < len(text) && text[i] >= '0' && text[i] <= '9'
}

func parseNumeric(loc Location, text string) (Token, bool) {
	sign := ""
	body := text
	if body[0] == '+' || body[0] == '-' {
		if body[0] == '-' {
			sign = "-"
		}
		body = body[1:]
	}
	stripped := strings.ReplaceAll(body, "_", "")

	if strings.Contains(stripped, ".") {
		f, err := strconv.ParseFloat(sign+stripped, 64)
		if err != nil {
			return Token{}, false
		}
		return Token{Location: loc, Kind: Float, Text: text, FloatValue: f}, true
	}

	if strings.HasPrefix(stripped, "0x") || strings.HasPrefix(stripped, "0X") {
		i, err := strconv.ParseInt(stripped[2:], 16, 64)
		if err != nil {
			return Token{}, false
		}
		if sign == "-" {
			i = -i
		}
		return Token{Location: loc, Kind: Int, Text: text, IntValue: i}, true
	}

	if strings.HasPrefix(stripped, "0b") || strings.HasPrefix(stripped, "0B") {
		i, err := strconv.ParseInt(stripped[2:], 2, 64)
		if err != nil {
			return Token{}, false
		}
		if sign == "-" {
			i = -i
		}
		return Token{Location: loc, Kind: Int, Text: text, IntValue: i}, true
	}

	i, err := strconv.ParseInt(sign+stripped, 10, 64)
	if err != nil {
		return Token{}, false
	}
	return Token{Location: loc, Kind: Int, Text: text, IntValue: i}, true
}

// tokenizeString consumes a full string literal (single-line or multi-line)
// starting at the opening '"', honoring escapes, and returns a String token.
func tokenizeString(b *Buffer, loc Location) (Token, *compilererror.Error) {
	b.Next() // consume opening '"'

	if r, _ := b.Peek(); r == '*' {
		b.Next() // consume '*'
		return tokenizeMultiLineString(b, loc)
	}
	return tokenizeSingleLineString(b, loc)
}

func tokenizeSingleLineString(b *Buffer, loc Location) (Token, *compilererror.Error) {
	var sb strings.Builder
	for {
		if b.AtEnd() {
			return Token{}, compilererror.New(loc, "unterminated string literal")
		}
		r, _ := b.Next()
		switch r {
		case '"':
			return Token{Location: loc, Kind: String, Text: sb.String()}, nil
		case '\n':
			return Token{}, compilererror.New(b.Location(), "unexpected newline in single-line string literal")
		case '\\':
			esc, err := readEscape(b)
			if err != nil {
				return Token{}, err
			}
			sb.WriteRune(esc)
		default:
			sb.WriteRune(r)
		}
	}
}

// tokenizeMultiLineString implements the column-aligned multi-line string
// form: "* ... *". The column of the first non-whitespace character after
// the opening "* becomes the alignment column C; every subsequent line has
// up to C-1 leading whitespace columns stripped, preserving interior blank
// lines.
func tokenizeMultiLineString(b *Buffer, loc Location) (Token, *compilererror.Error) {
	skipWhitespace(b)
	if b.AtEnd() {
		return Token{}, compilererror.New(loc, "unterminated string literal")
	}
	alignCol := b.Location().Column

	var sb strings.Builder
	for {
		if b.AtEnd() {
			return Token{}, compilererror.New(loc, "unterminated string literal")
		}
		r, _ := b.Peek()
		if r == '*' {
			if nr, _ := b.PeekAt(1); nr == '"' {
				b.Next()
				b.Next()
				return Token{Location: loc, Kind: String, Text: sb.String()}, nil
			}
		}

		r, _ = b.Next()
		switch r {
		case '\\':
			esc, err := readEscape(b)
			if err != nil {
				return Token{}, err
			}
			sb.WriteRune(esc)
		case '\n':
			sb.WriteRune('\n')
			// Strictly skip whitespace columns until the alignment column is
			// reached, preserving any further blank lines encountered.
			for {
				r, _ := b.Peek()
				if !isSpace(r) {
					break
				}
				if r == '\n' {
					b.Next()
					sb.WriteRune('\n')
					continue
				}
				if b.Location().Column >= alignCol {
					break
				}
				b.Next()
			}
		default:
			sb.WriteRune(r)
		}
	}
}

func readEscape(b *Buffer) (rune, *compilererror.Error) {
	loc := b.Location()
	if b.AtEnd() {
		return 0, compilererror.New(loc, "unterminated escape sequence")
	}
	r, _ := b.Next()
	switch r {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	case '0':
		var digits strings.Builder
		for i := 0; i < 3; i++ {
			dr, _ := b.Peek()
			if dr < '0' || dr > '9' {
				return 0, compilererror.New(loc, "malformed numeric escape sequence")
			}
			b.Next()
			digits.WriteRune(dr)
		}
		v, err := strconv.Atoi(digits.String())
		if err != nil || v >= 256 {
			return 0, compilererror.New(loc, "numeric escape value %s out of range", digits.String())
		}
		return rune(v), nil
	default:
		return 0, compilererror.New(loc, "unknown escape sequence '\\%c'", r)
	}
}
