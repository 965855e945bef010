package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders a construction's code as one instruction per line,
// grounded on the teacher's Dasm (lang/compiler/asm.go): a compact,
// greppable text form used by tests and developer tooling to assert
// compiled shape without hand-decoding operands. Jump-class instructions
// whose operand has already been resolved to a numeric offset print as
// "<id> <offset> -> <index>" so the destination is legible without doing the
// arithmetic by hand.
func Disassemble(c *Construction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "construction: %s (%s, %s)\n", nameOrAnonymous(c.Name), c.ExecutionContext, visibilityName(c.Visibility))
	for i, insn := range c.Code {
		fmt.Fprintf(&b, "\t%03d %s", i, insn.ID)
		switch insn.Operand.Kind {
		case 0:
			// none, no operand to print
		default:
			fmt.Fprintf(&b, " %s", insn.Operand.Stringify())
			if insn.ID.IsJumpClass() {
				if target, err := insn.Operand.AsInt(); err == nil {
					fmt.Fprintf(&b, " -> %d", i+int(target))
				}
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func nameOrAnonymous(name string) string {
	if name == "" {
		return "<anonymous>"
	}
	return name
}

func visibilityName(v Visibility) string {
	if v == Hidden {
		return "hidden"
	}
	return "visible"
}
