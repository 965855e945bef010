// Package maincmd implements the sorthc command line: flag parsing via
// github.com/mna/mainer (kept from the teacher's own CLI, mna/nenuphar's
// internal/maincmd, whose Cmd/Validate/Main shape this package reuses
// directly) and the single compile action spec.md §7 describes — exactly
// two positional arguments, source then output, with everything else
// controlled by flags and the SORTH_LIB environment variable.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "sorthc"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <source-file> <output-file>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <source-file> <output-file>
       %[1]s -h|--help
       %[1]s -v|--version

Ahead-of-time compiler for the sorth metacircular Forth-family language.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

The standard library search path is read from the SORTH_LIB environment
variable (colon-separated), in addition to the source file's own directory.
`, binName)
)

// Cmd is the mainer.Cmd implementation for sorthc: two positional
// arguments (source, output), -h/--help and -v/--version flags, with
// SORTH_LIB read directly from the environment by searchPaths (see
// resolve.go).
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args []string
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) != 2 {
		return errors.New("expected exactly two arguments: <source-file> <output-file>")
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.Compile(ctx, stdio, c.args[0], c.args[1]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}
