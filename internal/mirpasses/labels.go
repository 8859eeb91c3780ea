package mirpasses

import "github.com/roclang/rocc/internal/mir"

// AssignLabels numbers every branch point of the if/else chains and while
// loops in mod: a then label, an else label (-1 when there is no else
// arm), plus a join label for the point after the construct. The counter
// restarts at 0 for each function, so labels are unique and dense within
// one function body.
func AssignLabels(mod *mir.Module) {
	for _, fn := range mod.Functions {
		assignFunctionLabels(fn)
	}
}

func assignFunctionLabels(fn *mir.Function) {
	next := 0
	for i := range fn.Values {
		v := fn.Value(mir.ValueID(i))
		if v.Op != mir.OpIf && v.Op != mir.OpWhile {
			continue
		}
		v.ThenLabel = next
		next++
		if v.Else != mir.InvalidValue {
			v.ElseLabel = next
			next++
		} else {
			v.ElseLabel = -1
		}
		v.JoinLabel = next
		next++
	}
}
