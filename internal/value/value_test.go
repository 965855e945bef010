package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAsIntCoercion(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want int64
	}{
		{"int", NewInt(42), 42},
		{"float truncates", NewFloat(3.9), 3},
		{"true", NewBool(true), 1},
		{"false", NewBool(false), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.v.AsInt()
			require.NoError(t, err)
			require.Equal(t, c.want, got)
		})
	}
}

func TestAsIntRejectsNonNumeric(t *testing.T) {
	_, err := NewString("nope").AsInt()
	require.Error(t, err)

	_, err = NewByteCode(nil).AsInt()
	require.Error(t, err)
}

func TestCompareNumericCrossKind(t *testing.T) {
	require.Equal(t, 0, Compare(NewInt(1), NewFloat(1.0)))
	require.Equal(t, 0, Compare(NewInt(1), NewBool(true)))
	require.True(t, Less(NewInt(1), NewFloat(2.0)))
	require.True(t, Less(NewBool(false), NewInt(1)))
}

func TestCompareKindFallback(t *testing.T) {
	require.True(t, Less(NewInt(100), NewString("a")))
	require.True(t, Less(NewString("a"), NewString("b")))
	require.Equal(t, 0, Compare(NewString("same"), NewString("same")))
}

func TestStringifyQuotesStrings(t *testing.T) {
	require.Equal(t, `"hi\nthere"`, NewString("hi\nthere").Stringify())
	require.Equal(t, "42", NewInt(42).Stringify())
	require.Equal(t, "true", NewBool(true).Stringify())
	require.Equal(t, "none", None.Stringify())
}
