package source

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeBasic(t *testing.T) {
	toks, err := Tokenize(NewBuffer("t.f", []byte(`42 3.5 "hi" foo`)))
	require.NoError(t, err)
	require.Len(t, toks, 4)

	require.Equal(t, Int, toks[0].Kind)
	require.Equal(t, int64(42), toks[0].IntValue)

	require.Equal(t, Float, toks[1].Kind)
	require.InDelta(t, 3.5, toks[1].FloatValue, 0.0001)

	require.Equal(t, String, toks[2].Kind)
	require.Equal(t, "hi", toks[2].Text)

	require.Equal(t, Word, toks[3].Kind)
	require.Equal(t, "foo", toks[3].Text)
}

func TestTokenizeLocationMonotonic(t *testing.T) {
	toks, err := Tokenize(NewBuffer("t.f", []byte("one two\nthree")))
	require.NoError(t, err)
	require.Len(t, toks, 3)
	for i := 1; i < len(toks); i++ {
		require.True(t, toks[i-1].Location.Before(toks[i].Location))
	}
	require.Equal(t, 1, toks[0].Location.Line)
	require.Equal(t, 2, toks[2].Location.Line)
}

func TestTokenizeNumericFallsBackToWord(t *testing.T) {
	toks, err := Tokenize(NewBuffer("t.f", []byte("1.2.3")))
	require.NoError(t, err)
	require.Len(t, toks, 1)
	require.Equal(t, Word, toks[0].Kind)
	require.Equal(t, "1.2.3", toks[0].Text)
}

func TestTokenizeHexAndBinary(t *testing.T) {
	toks, err := Tokenize(NewBuffer("t.f", []byte("0xFF 0b101 -3")))
	require.NoError(t, err)
	require.Equal(t, int64(255), toks[0].IntValue)
	require.Equal(t, int64(5), toks[1].IntValue)
	require.Equal(t, int64(-3), toks[2].IntValue)
}

func TestTokenizeEscapes(t *testing.T) {
	toks, err := Tokenize(NewBuffer("t.f", []byte(`"a\nb\t\0065"`)))
	require.NoError(t, err)
	require.Len(t, toks, 1)
	require.Equal(t, "a\nb\tA", toks[0].Text)
}

func TestTokenizeEscapeOutOfRange(t *testing.T) {
	_, err := Tokenize(NewBuffer("t.f", []byte(`"\0999"`)))
	require.Error(t, err)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize(NewBuffer("t.f", []byte(`"no end`)))
	require.Error(t, err)
}

func TestTokenizeMultiLineStringStripsColumn(t *testing.T) {
	src := "\"*\n    first\n    second\n    *\""
	toks, err := Tokenize(NewBuffer("t.f", []byte(src)))
	require.NoError(t, err)
	require.Len(t, toks, 1)
	require.Equal(t, "first\nsecond\n", toks[0].Text)
}

func TestGetAsWordRoundTrips(t *testing.T) {
	toks, err := Tokenize(NewBuffer("t.f", []byte("7")))
	require.NoError(t, err)
	text, ok := toks[0].GetAsWord()
	require.True(t, ok)
	require.Equal(t, "7", text)

	_, ok = Token{Kind: String, Text: "x"}.GetAsWord()
	require.False(t, ok)
}
