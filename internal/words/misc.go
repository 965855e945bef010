package words

import (
	"github.com/sorth-lang/sorthc/internal/runtime"
	"github.com/sorth-lang/sorthc/internal/value"
)

// registerMisc installs the handful of built-ins that don't fit the
// stack/defining/token/opcode groupings: indirect invocation by handler
// index, unique label generation, and the call-stack depth getter.
func registerMisc(rt *runtime.Runtime) {
	define(rt, "execute", func(rt *runtime.Runtime, ctx *runtime.Context) error {
		loc := rt.CurrentLocation()
		idx, err := rt.Data.PopInt(loc)
		if err != nil {
			return err
		}
		return asErr(rt.Invoke(int(idx), ctx, "<indirect>", loc))
	})

	define(rt, "unique_str", func(rt *runtime.Runtime, _ *runtime.Context) error {
		rt.Data.Push(value.NewString(rt.UniqueLabel("L")))
		return nil
	})

	define(rt, "call_stack.depth@", func(rt *runtime.Runtime, _ *runtime.Context) error {
		rt.Data.Push(value.NewInt(int64(rt.CallStack.Depth())))
		return nil
	})
}
