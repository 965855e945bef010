package dictionary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootScopeDepthInvariant(t *testing.T) {
	d := NewDictionary()
	require.Equal(t, 1, d.Depth())
	require.Panics(t, func() { d.ReleaseContext() })
}

func TestMarkReleaseContext(t *testing.T) {
	d := NewDictionary()
	d.MarkContext()
	require.Equal(t, 2, d.Depth())
	d.ReleaseContext()
	require.Equal(t, 1, d.Depth())
}

func TestInnermostShadowsOuter(t *testing.T) {
	d := NewDictionary()
	d.Define(WordRecord{Name: "x", HandlerIndex: 1})

	d.MarkContext()
	d.Define(WordRecord{Name: "x", HandlerIndex: 2})

	rec, ok := d.Lookup("x")
	require.True(t, ok)
	require.Equal(t, 2, rec.HandlerIndex)

	d.ReleaseContext()
	rec, ok = d.Lookup("x")
	require.True(t, ok)
	require.Equal(t, 1, rec.HandlerIndex)
}

func TestLookupMissing(t *testing.T) {
	d := NewDictionary()
	_, ok := d.Lookup("nope")
	require.False(t, ok)
	require.False(t, d.Exists("nope"))
}

func TestReleasedScopeForgetsItsDefinitions(t *testing.T) {
	d := NewDictionary()
	d.MarkContext()
	d.Define(WordRecord{Name: "temp", HandlerIndex: 9})
	d.ReleaseContext()

	_, ok := d.Lookup("temp")
	require.False(t, ok)
}
