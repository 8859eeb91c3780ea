// Package semantic implements signature resolution and the type checker:
// computing and attaching a type descriptor to every expression, and
// resolving every call site to a concrete target.
package semantic

import (
	"fmt"

	"github.com/roclang/rocc/internal/ast"
	"github.com/roclang/rocc/internal/token"
	"github.com/roclang/rocc/internal/types"
)

// Error is a semantic diagnostic: unknown symbol (module-level — Pass A
// covers locals), unresolved call target, type mismatch, or invalid
// operator for operand types. Semantic errors are collected per module and
// reported in batch.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// FreeFunctionOwner is the owner-type-ID sentinel for free (non-method)
// functions.
const FreeFunctionOwner = -1

// Signature is a function's computed parameter/return types.
type Signature struct {
	OwnerTypeID int // FreeFunctionOwner for a free function
	Name        string
	Params      []*types.Descriptor
	Return      *types.Descriptor
	Variadic    bool // true only for the built-in ccall
	FuncDecl    ast.NodeID
}

// sigKey keys the (owner-type-ID, name, arity) signature table.
type sigKey struct {
	Owner int
	Name  string
	Arity int
}

// SignatureTable holds every built-in and user-declared function signature.
type SignatureTable struct {
	byKey map[sigKey]*Signature
}

// newBuiltinTable seeds the resolver's one built-in function table:
// println(Any) -> Unit, ccall(RawString, Any...) -> Any, and a
// toString method on Int32.
func newBuiltinTable(reg *types.Registry) *SignatureTable {
	t := &SignatureTable{byKey: map[sigKey]*Signature{}}
	t.add(&Signature{
		OwnerTypeID: FreeFunctionOwner, Name: "println",
		Params: []*types.Descriptor{reg.Any()}, Return: reg.Unit(),
	}, 1)
	t.add(&Signature{
		OwnerTypeID: FreeFunctionOwner, Name: "ccall", Variadic: true,
		Params: []*types.Descriptor{reg.RawString(-1)}, Return: reg.Any(),
	}, 1) // arity recorded as the fixed (non-variadic) prefix length
	t.add(&Signature{
		OwnerTypeID: int(reg.Int32().TypeID), Name: "toString",
		Params: nil, Return: reg.RawString(-1),
	}, 0)
	return t
}

func (t *SignatureTable) add(sig *Signature, arity int) {
	key := sigKey{Owner: sig.OwnerTypeID, Name: sig.Name, Arity: arity}
	t.byKey[key] = sig
}

// Lookup finds a signature matching (owner, name, arity) exactly, or
// returns a variadic signature (only the built-in ccall is variadic) whose
// declared arity is <= the call's arity.
func (t *SignatureTable) Lookup(owner int, name string, arity int) (*Signature, bool) {
	if sig, ok := t.byKey[sigKey{Owner: owner, Name: name, Arity: arity}]; ok {
		return sig, true
	}
	for _, sig := range t.byKey {
		if sig.Variadic && sig.OwnerTypeID == owner && sig.Name == name && arity >= len(sig.Params) {
			return sig, true
		}
	}
	return nil, false
}

// ResolveSignatures computes a Signature for every declared function and
// records it in the table, alongside the seeded built-ins. evalType
// materializes a *types.Descriptor from a type-expression node.
func ResolveSignatures(mod *ast.Module, reg *types.Registry) (*SignatureTable, []*Error) {
	table := newBuiltinTable(reg)
	var errs []*Error

	for _, fn := range mod.ModuleFuncs() {
		fnNode := mod.Node(fn)
		var params []*types.Descriptor
		for _, p := range fnNode.Children {
			pt, err := evalType(mod, reg, mod.Node(p).Type)
			if err != nil {
				errs = append(errs, err)
				pt = reg.Any()
			}
			params = append(params, pt)
		}
		ret := reg.Unit()
		if mod.Valid(fnNode.Type) {
			rt, err := evalType(mod, reg, fnNode.Type)
			if err != nil {
				errs = append(errs, err)
			} else {
				ret = rt
			}
		}
		table.add(&Signature{
			OwnerTypeID: FreeFunctionOwner,
			Name:        fnNode.Name,
			Params:      params,
			Return:      ret,
			FuncDecl:    fn,
		}, len(params))
	}

	return table, errs
}

// evalType evaluates a type-expression node into a *types.Descriptor.
func evalType(mod *ast.Module, reg *types.Registry, id ast.NodeID) (*types.Descriptor, *Error) {
	n := mod.Node(id)
	switch n.Kind {
	case ast.KindTypeName:
		if d, ok := reg.ByName(n.Name); ok {
			return d, nil
		}
		return nil, &Error{Message: fmt.Sprintf("unknown type %q", n.Name), Pos: n.Span.Start}
	case ast.KindTypeArray:
		elem, err := evalType(mod, reg, n.Elem)
		if err != nil {
			return nil, err
		}
		return reg.Array(elem), nil
	}
	return nil, &Error{Message: "expected a type expression", Pos: n.Span.Start}
}
