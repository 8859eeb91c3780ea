package mirpasses

import "github.com/roclang/rocc/internal/mir"

// Validate checks the structural invariants the passes above are expected
// to preserve: every call argument is
// reached from its parameter type through at most two conversions, and
// every function ends with exactly one return. A violation is an internal
// bug — it panics rather than producing a diagnostic.
func Validate(mod *mir.Module) {
	for _, fn := range mod.Functions {
		validateTermination(fn)
		for i := range fn.Values {
			v := fn.Value(mir.ValueID(i))
			switch v.Op {
			case mir.OpCallStatic, mir.OpCallInstance, mir.OpCallFFI:
				for _, argID := range v.Args {
					validateConversionChain(fn, argID, 0)
				}
			}
		}
	}
}

func validateTermination(fn *mir.Function) {
	if len(fn.Body) == 0 {
		panic("internal: function " + fn.Name + " lowered to an empty body")
	}
	last := fn.Value(fn.Body[len(fn.Body)-1])
	if last.Op != mir.OpReturnValue && last.Op != mir.OpReturnVoid {
		panic("internal: function " + fn.Name + " does not end with a return")
	}
}
