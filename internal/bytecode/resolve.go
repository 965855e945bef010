package bytecode

import "github.com/sorth-lang/sorthc/internal/value"

// ResolveJumps implements code.resolve_jumps (spec.md §4.4) in two passes
// over a construction's code: the first records the index of each
// jump_target instruction whose operand is a string label and zeroes that
// operand; the second rewrites every jump-class instruction's string-label
// operand into the signed relative offset (target index - jump index), so
// forward and backward jumps both resolve. Labels that don't
// resolve to any jump_target are left untouched, for a later phase to
// diagnose; this matches the teacher's asm.go jump-address translation
// pass, done here over labels instead of numeric indices.
//
// ResolveJumps is idempotent: once every jump-class operand is numeric and
// every jump_target operand is zero, a second call is a no-op.
func ResolveJumps(c *Construction) {
	labelIndex := make(map[string]int)

	for i, insn := range c.Code {
		if insn.ID == JumpTarget && insn.Operand.Kind == value.KindString {
			labelIndex[insn.Operand.StringVal] = i
			c.Code[i].Operand = value.NewInt(0)
		}
	}

	for i, insn := range c.Code {
		if !insn.ID.IsJumpClass() || insn.Operand.Kind != value.KindString {
			continue
		}
		target, ok := labelIndex[insn.Operand.StringVal]
		if !ok {
			continue
		}
		c.Code[i].Operand = value.NewInt(int64(target - i))
	}
}
