package words_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sorth-lang/sorthc/internal/bytecode"
	"github.com/sorth-lang/sorthc/internal/stdlib"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) (*bytecode.Construction, map[string]*bytecode.Construction) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.f")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	rt, _, berr := stdlib.Bootstrap(dir)
	require.Nil(t, berr)

	sc, cerr := rt.CompileScript("main.f")
	require.Nil(t, cerr)

	c := &bytecode.Construction{Code: sc.TopLevelCode}
	return c, sc.Words
}

func TestCompileLiteralAndExecute(t *testing.T) {
	top, _ := compile(t, `42 print`)
	require.Len(t, top.Code, 2)
	require.Equal(t, bytecode.PushConstantValue, top.Code[0].ID)
	require.Equal(t, int64(42), top.Code[0].Operand.IntVal)
	require.Equal(t, bytecode.Execute, top.Code[1].ID)
	require.Equal(t, "print", top.Code[1].Operand.StringVal)
}

func TestImmediateWordRunsAtCompileTime(t *testing.T) {
	// answer's own body pushes 42 onto the data stack when invoked; calling
	// op.push_constant_value from the surrounding top-level code is what
	// actually emits that value into the caller's compiled instructions.
	top, words := compile(t, `: answer immediate 42 ; answer op.push_constant_value print`)
	require.NotContains(t, words, "answer")
	require.Len(t, top.Code, 2)
	require.Equal(t, bytecode.PushConstantValue, top.Code[0].ID)
	require.Equal(t, int64(42), top.Code[0].Operand.IntVal)
	require.Equal(t, bytecode.Execute, top.Code[1].ID)
	require.Equal(t, "print", top.Code[1].Operand.StringVal)
}

func TestRunTimeWordIsDeferred(t *testing.T) {
	_, words := compile(t, `: square dup * ;`)
	require.Contains(t, words, "square")
	sq := words["square"]
	require.Equal(t, bytecode.Execute, sq.Code[0].ID)
}

func TestBracketIfElseThen(t *testing.T) {
	top, _ := compile(t, `true [if] 1 [else] 2 [then] print`)
	require.Equal(t, int64(1), top.Code[0].Operand.IntVal)

	top2, _ := compile(t, `false [if] 1 [else] 2 [then] print`)
	require.Equal(t, int64(2), top2.Code[0].Operand.IntVal)
}

func TestDefinedQuery(t *testing.T) {
	top, _ := compile(t, `[defined?] dup [if] 1 [else] 0 [then] print`)
	require.Equal(t, int64(1), top.Code[0].Operand.IntVal)
}

func TestIncludeAddsSubScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.f"), []byte(`: helper 1 ;`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.f"), []byte(`[include] lib.f`), 0o644))

	rt, _, berr := stdlib.Bootstrap(dir)
	require.Nil(t, berr)

	sc, cerr := rt.CompileScript("main.f")
	require.Nil(t, cerr)
	require.Len(t, sc.SubScripts, 1)
	require.Contains(t, sc.SubScripts[0].Words, "helper")
}

func TestDefinedWordCarriesDescription(t *testing.T) {
	rt, stdScript, berr := stdlib.Bootstrap(t.TempDir())
	require.Nil(t, berr)
	require.NotNil(t, stdScript)

	rec, ok := rt.Dict.Lookup("1+")
	require.True(t, ok)
	require.NotEmpty(t, rec.Description)
}
