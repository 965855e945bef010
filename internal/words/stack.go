package words

import (
	"github.com/sorth-lang/sorthc/internal/compilererror"
	"github.com/sorth-lang/sorthc/internal/runtime"
	"github.com/sorth-lang/sorthc/internal/value"
)

// registerStack installs the data-stack shuffle words, the three constant
// literals, comparisons and basic arithmetic, and throw, all as run_time
// words: referencing any of them compiles a deferred execute instruction
// (spec.md §4.2), exactly like a user word defined without immediate. Their
// handlers still run, though — whenever the JIT interprets that execute
// instruction as part of some compile_time construction's own body, which is
// how a compile_time word computes with values the same way a run_time word
// would, via the one shared data stack.
func registerStack(rt *runtime.Runtime) {
	defineRunTime(rt, "dup", func(rt *runtime.Runtime, _ *runtime.Context) error {
		return asErr(rt.Data.Dup(rt.CurrentLocation()))
	})
	defineRunTime(rt, "drop", func(rt *runtime.Runtime, _ *runtime.Context) error {
		return asErr(rt.Data.Drop(rt.CurrentLocation()))
	})
	defineRunTime(rt, "swap", func(rt *runtime.Runtime, _ *runtime.Context) error {
		return asErr(rt.Data.Swap(rt.CurrentLocation()))
	})
	defineRunTime(rt, "over", func(rt *runtime.Runtime, _ *runtime.Context) error {
		return asErr(rt.Data.Over(rt.CurrentLocation()))
	})
	defineRunTime(rt, "rot", func(rt *runtime.Runtime, _ *runtime.Context) error {
		return asErr(rt.Data.Rot(rt.CurrentLocation()))
	})

	defineRunTime(rt, "none", func(rt *runtime.Runtime, _ *runtime.Context) error {
		rt.Data.Push(value.None)
		return nil
	})
	defineRunTime(rt, "true", func(rt *runtime.Runtime, _ *runtime.Context) error {
		rt.Data.Push(value.NewBool(true))
		return nil
	})
	defineRunTime(rt, "false", func(rt *runtime.Runtime, _ *runtime.Context) error {
		rt.Data.Push(value.NewBool(false))
		return nil
	})

	registerComparison(rt, "=", func(c int) bool { return c == 0 })
	registerComparison(rt, "!=", func(c int) bool { return c != 0 })
	registerComparison(rt, "<", func(c int) bool { return c < 0 })
	registerComparison(rt, ">", func(c int) bool { return c > 0 })
	registerComparison(rt, "<=", func(c int) bool { return c <= 0 })
	registerComparison(rt, ">=", func(c int) bool { return c >= 0 })

	registerArithmetic(rt, "+", func(a, b float64) float64 { return a + b })
	registerArithmetic(rt, "-", func(a, b float64) float64 { return a - b })
	registerArithmetic(rt, "*", func(a, b float64) float64 { return a * b })
	registerArithmetic(rt, "/", func(a, b float64) float64 { return a / b })

	defineRunTime(rt, "throw", func(rt *runtime.Runtime, _ *runtime.Context) error {
		loc := rt.CurrentLocation()
		msg, err := rt.Data.PopString(loc)
		if err != nil {
			return err
		}
		return compilererror.New(loc, "%s", msg)
	})
}

func registerComparison(rt *runtime.Runtime, name string, accept func(int) bool) {
	defineRunTime(rt, name, func(rt *runtime.Runtime, _ *runtime.Context) error {
		loc := rt.CurrentLocation()
		b, err := rt.Data.PopValue(loc)
		if err != nil {
			return err
		}
		a, err := rt.Data.PopValue(loc)
		if err != nil {
			return err
		}
		rt.Data.Push(value.NewBool(accept(value.Compare(a, b))))
		return nil
	})
}

func registerArithmetic(rt *runtime.Runtime, name string, apply func(a, b float64) float64) {
	defineRunTime(rt, name, func(rt *runtime.Runtime, _ *runtime.Context) error {
		loc := rt.CurrentLocation()
		b, err := rt.Data.PopValue(loc)
		if err != nil {
			return err
		}
		a, err := rt.Data.PopValue(loc)
		if err != nil {
			return err
		}
		af, aerr := a.AsFloat()
		if aerr != nil {
			return compilererror.New(loc, "%s", aerr)
		}
		bf, berr := b.AsFloat()
		if berr != nil {
			return compilererror.New(loc, "%s", berr)
		}
		result := apply(af, bf)
		if a.Kind == value.KindInt && b.Kind == value.KindInt {
			rt.Data.Push(value.NewInt(int64(result)))
		} else {
			rt.Data.Push(value.NewFloat(result))
		}
		return nil
	})
}

func asErr(err *compilererror.Error) error {
	if err == nil {
		return nil
	}
	return err
}
