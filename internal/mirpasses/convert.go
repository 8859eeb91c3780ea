// Package mirpasses implements the MIR transformation passes: implicit
// conversion insertion at call sites, branch-label assignment, and
// stack/heap allocation-space selection for array construction.
package mirpasses

import (
	"fmt"

	"github.com/roclang/rocc/internal/mir"
	"github.com/roclang/rocc/internal/semantic"
	"github.com/roclang/rocc/internal/types"
)

// InsertConversions visits every call site in mod and inserts a ToWrapper or
// CastTo node for each argument whose type does not exactly match the
// resolved target's declared parameter type. An instance call's receiver
// (Args[0]) is checked the same way. No conversion is inserted past a
// variadic signature's fixed arity (ccall's frozen behavior).
func InsertConversions(mod *mir.Module, sigs *semantic.SignatureTable) {
	for _, fn := range mod.Functions {
		for i := range fn.Values {
			id := mir.ValueID(i)
			v := fn.Value(id)
			switch v.Op {
			case mir.OpCallStatic:
				convertCallArgs(fn, v, sigs, mir.FreeFunctionOwner, 0, len(v.Args))
			case mir.OpCallInstance:
				convertCallArgs(fn, v, sigs, v.CalleeOwner, 1, len(v.Args)-1)
				wrapIfPrimitive(fn, v, 0)
			}
		}
	}
}

func convertCallArgs(fn *mir.Function, v *mir.Value, sigs *semantic.SignatureTable, owner, argOffset, arity int) {
	sig, ok := sigs.Lookup(owner, v.CalleeName, arity)
	if !ok {
		return
	}
	for i, param := range sig.Params {
		argIdx := argOffset + i
		if argIdx >= len(v.Args) {
			break
		}
		convertArg(fn, v, argIdx, param)
	}
	// Variadic tail (ccall-style): no wrapping past the fixed prefix.
}

func wrapIfPrimitive(fn *mir.Function, v *mir.Value, argIdx int) {
	recv := fn.Value(v.Args[argIdx])
	if recv.Type.IsPrimitive() {
		wrapped := fn.New(mir.Value{Op: mir.OpToWrapper, Type: recv.Type, A: v.Args[argIdx]})
		v.Args[argIdx] = wrapped
	}
}

func convertArg(fn *mir.Function, call *mir.Value, argIdx int, param *types.Descriptor) {
	argID := call.Args[argIdx]
	argType := fn.Value(argID).Type
	if argType.TypeID == param.TypeID {
		return
	}
	if types.RequiresWrapper(param, argType) {
		call.Args[argIdx] = fn.New(mir.Value{Op: mir.OpToWrapper, Type: param, A: argID})
		return
	}
	call.Args[argIdx] = fn.New(mir.Value{Op: mir.OpCastTo, Type: param, A: argID})
}

// validateConversionChain checks that an argument value is wrapped in at
// most two conversion nodes (ToWrapper or CastTo) in total; it does not
// check which kinds they are. Violations are internal bugs, not user
// errors — they panic rather than report a diagnostic.
func validateConversionChain(fn *mir.Function, argID mir.ValueID, depth int) {
	if depth > 2 {
		panic(fmt.Sprintf("internal: argument value %d required more than two conversions", argID))
	}
	v := fn.Value(argID)
	if v.Op == mir.OpToWrapper || v.Op == mir.OpCastTo {
		validateConversionChain(fn, v.A, depth+1)
	}
}
