package maincmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mna/mainer"
	"github.com/sorth-lang/sorthc/internal/bytecode"
	"github.com/sorth-lang/sorthc/internal/script"
	"github.com/sorth-lang/sorthc/internal/source"
	"github.com/sorth-lang/sorthc/internal/stdlib"
	"golang.org/x/exp/slices"
)

// Compile drives the whole pipeline for one invocation: bootstrap a runtime
// (kernel vocabulary + standard library), compile source, and render the
// resulting Script to output. Rendering to disassembly text, rather than to
// a native object file, is this module's honest stand-in for the backend
// spec.md explicitly places out of scope (see SPEC_FULL.md's Domain Stack
// section): there is no Go LLVM binding anywhere in the reference pack to
// lower a Script to machine code with, so the compiler's real, checkable
// output is the fully resolved byte-code it produced.
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, source, output string) error {
	rt, stdScript, berr := stdlib.Bootstrap(searchPaths(source)...)
	if berr != nil {
		fmt.Fprintln(stdio.Stderr, berr.Report())
		return berr
	}

	sc, cerr := rt.CompileScript(source)
	if cerr != nil {
		fmt.Fprintln(stdio.Stderr, cerr.Report())
		return cerr
	}

	var b strings.Builder
	renderScript(&b, stdScript)
	renderScript(&b, sc)

	if err := os.WriteFile(output, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(stdio.Stderr, "writing %s: %s\n", output, err)
		return err
	}
	return nil
}

func renderScript(b *strings.Builder, sc *script.Script) {
	fmt.Fprintf(b, "; script %s\n", sc.CanonicalPath)

	top := bytecode.NewConstruction(source.Location{})
	top.Name = "<top level>"
	top.Code = sc.TopLevelCode
	b.WriteString(bytecode.Disassemble(top))

	names := make([]string, 0, len(sc.Words))
	for name := range sc.Words {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		b.WriteString(bytecode.Disassemble(sc.Words[name]))
	}

	for _, sub := range sc.SubScripts {
		renderScript(b, sub)
	}
}
