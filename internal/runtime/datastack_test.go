package runtime

import (
	"testing"

	"github.com/sorth-lang/sorthc/internal/source"
	"github.com/sorth-lang/sorthc/internal/value"
	"github.com/stretchr/testify/require"
)

func TestDataStackPushPop(t *testing.T) {
	d := NewDataStack()
	loc := source.Location{}

	d.Push(value.NewInt(1))
	d.Push(value.NewInt(2))
	require.Equal(t, 2, d.Depth())

	v, err := d.Pop(loc)
	require.Nil(t, err)
	require.Equal(t, int64(2), v.IntVal)
	require.Equal(t, 1, d.Depth())
}

func TestDataStackUnderflow(t *testing.T) {
	d := NewDataStack()
	_, err := d.Pop(source.Location{})
	require.NotNil(t, err)
}

func TestDataStackShuffleWords(t *testing.T) {
	loc := source.Location{}
	d := NewDataStack()
	d.Push(value.NewInt(1))
	d.Push(value.NewInt(2))

	require.Nil(t, d.Swap(loc))
	v, _ := d.Pop(loc)
	require.Equal(t, int64(1), v.IntVal)

	d.Push(value.NewInt(1))
	require.Nil(t, d.Over(loc))
	v, _ = d.Pop(loc)
	require.Equal(t, int64(2), v.IntVal)

	require.Nil(t, d.Dup(loc))
	a, _ := d.Pop(loc)
	b, _ := d.Pop(loc)
	require.Equal(t, a, b)
}

func TestDataStackRot(t *testing.T) {
	loc := source.Location{}
	d := NewDataStack()
	d.Push(value.NewInt(1))
	d.Push(value.NewInt(2))
	d.Push(value.NewInt(3))

	require.Nil(t, d.Rot(loc))

	top, _ := d.Pop(loc)
	mid, _ := d.Pop(loc)
	bot, _ := d.Pop(loc)
	require.Equal(t, int64(1), top.IntVal)
	require.Equal(t, int64(3), mid.IntVal)
	require.Equal(t, int64(2), bot.IntVal)
}

func TestDataStackTypedPops(t *testing.T) {
	loc := source.Location{}
	d := NewDataStack()
	d.Push(value.NewString("hi"))
	s, err := d.PopString(loc)
	require.Nil(t, err)
	require.Equal(t, "hi", s)

	d.Push(value.NewInt(5))
	_, err = d.PopString(loc)
	require.NotNil(t, err)
}
