package mirpasses

import "github.com/roclang/rocc/internal/mir"

// PromoteHeap scans every array-construction value in mod. An array whose
// value is returned directly (its parent is a return-value) escapes the
// current frame and is promoted from stack to heap allocation; every other
// array stays stack-allocated.
func PromoteHeap(mod *mir.Module) {
	for _, fn := range mod.Functions {
		for i := range fn.Values {
			v := fn.Value(mir.ValueID(i))
			if v.Op != mir.OpReturnValue {
				continue
			}
			if arr := fn.Value(v.A); arr.Op == mir.OpArrayConstruct {
				arr.AllocSpace = mir.AllocHeap
			}
		}
	}
}
