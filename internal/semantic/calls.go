package semantic

import (
	"github.com/roclang/rocc/internal/ast"
	"github.com/roclang/rocc/internal/types"
)

// typeCall resolves and types a Call node. owner is
// FreeFunctionOwner for a bare NAME(args) call, or the receiver's type-ID
// for a RECV.NAME(args) method call; recv is non-nil only in the latter
// case (used for the receiver-wrapping check the conversion pass performs
// later — typeCall itself only needs owner for the signature-table key).
func (c *Checker) typeCall(id ast.NodeID, owner int, recv *types.Descriptor) *types.Descriptor {
	n := c.mod.Node(id)

	// Type every argument first regardless of resolution outcome, so
	// invariant 1 (every expression has a type) still holds if resolution
	// fails.
	argTypes := make([]*types.Descriptor, len(n.Children))
	for i, arg := range n.Children {
		argTypes[i] = c.typeOf(arg)
	}

	if n.Name == "ccall" {
		return c.typeCCall(id, argTypes)
	}

	sig, ok := c.sigs.Lookup(owner, n.Name, len(n.Children))
	if !ok || !paramsMatch(sig, argTypes) {
		c.result.CallStates[id] = &CallState{Status: CallFailed, Reason: "could not find target"}
		c.errf(n.Span.Start, "could not find target for call to %q", n.Name)
		return c.reg.Any()
	}

	c.result.CallStates[id] = &CallState{Status: CallResolved, Target: sig}
	return sig.Return
}

// paramsMatch checks arity (already enforced by the table key) and per-
// argument type compatibility via the matching rules.
func paramsMatch(sig *Signature, argTypes []*types.Descriptor) bool {
	for i, want := range sig.Params {
		if i >= len(argTypes) {
			return false
		}
		if !types.Matches(want, argTypes[i]) {
			return false
		}
	}
	if sig.Variadic {
		return len(argTypes) >= len(sig.Params)
	}
	return len(argTypes) == len(sig.Params)
}

// typeCCall resolves special ccall(NAME_LIT, args...) form:
// the first argument must be a string literal (the external function
// name), and the call's return type is the first type-argument from
// `<T>` brackets. Variadic slots past the fixed arity receive arguments
// as-is, with no implicit wrapping.
func (c *Checker) typeCCall(id ast.NodeID, argTypes []*types.Descriptor) *types.Descriptor {
	n := c.mod.Node(id)
	if len(n.Children) == 0 || c.mod.Node(n.Children[0]).Kind != ast.KindStringLit {
		c.errf(n.Span.Start, "ccall's first argument must be a string literal naming the external function")
		c.result.CallStates[id] = &CallState{Status: CallFailed, Reason: "ccall target must be a string literal"}
		return c.reg.Any()
	}

	retType := c.reg.Any()
	if c.mod.Valid(n.Type) {
		typeArgs := c.mod.Node(n.Type).Children
		if len(typeArgs) > 0 {
			if rt, err := evalType(c.mod, c.reg, typeArgs[0]); err == nil {
				retType = rt
			}
		}
	}

	sig := &Signature{
		OwnerTypeID: FreeFunctionOwner,
		Name:        "ccall",
		Params:      []*types.Descriptor{c.reg.RawString(-1)},
		Return:      retType,
		Variadic:    true,
	}
	c.result.CallStates[id] = &CallState{Status: CallResolved, Target: sig}
	return retType
}
