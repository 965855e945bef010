package runtime_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sorth-lang/sorthc/internal/runtime"
	"github.com/sorth-lang/sorthc/internal/words"
	"github.com/stretchr/testify/require"
)

func newRuntime(t *testing.T, dir string) *runtime.Runtime {
	t.Helper()
	rt := runtime.New(dir)
	words.RegisterAll(rt)
	return rt
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestCompileScriptCompilesOnlyOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.f", `: greet "hi" ;`)

	rt := newRuntime(t, dir)

	first, err := rt.CompileScript("a.f")
	require.Nil(t, err)
	require.NotNil(t, first)

	second, err := rt.CompileScript("a.f")
	require.Nil(t, err)
	require.Same(t, first, second)
}

func TestIncludeCycleIsSafeNoOp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.f", `[include] b.f`)
	writeFile(t, dir, "b.f", `[include] a.f`)

	rt := newRuntime(t, dir)

	sc, err := rt.CompileScript("a.f")
	require.Nil(t, err)
	require.NotNil(t, sc)

	full := filepath.Clean(filepath.Join(dir, "a.f"))
	cached, ok := rt.CachedScript(full)
	require.True(t, ok, "a.f's cache entry settles to done once its own compilation completes")
	require.Same(t, sc, cached)
}

func TestCompileScriptMissingFile(t *testing.T) {
	dir := t.TempDir()
	rt := newRuntime(t, dir)
	_, err := rt.CompileScript("missing.f")
	require.NotNil(t, err)
}

func TestCompileScriptDefinesRunTimeWord(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.f", `: square dup * ;`)

	rt := newRuntime(t, dir)
	sc, err := rt.CompileScript("a.f")
	require.Nil(t, err)
	require.Contains(t, sc.Words, "square")
}
