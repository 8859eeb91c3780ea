package semantic

import (
	"fmt"

	"github.com/roclang/rocc/internal/ast"
	"github.com/roclang/rocc/internal/token"
	"github.com/roclang/rocc/internal/types"
)

// CallStatus is the call-resolution state machine:
// Unresolved → Resolved(target) | Failed(reason). Transitions are final; no
// retry.
type CallStatus int

const (
	CallUnresolved CallStatus = iota
	CallResolved
	CallFailed
)

// CallState is the final resolution outcome recorded for one Call node.
type CallState struct {
	Status CallStatus
	Target *Signature
	Reason string
}

// Result is the output of the type checker: a type descriptor for every
// expression node and a resolution outcome for every call site.
type Result struct {
	Types      map[ast.NodeID]*types.Descriptor
	CallStates map[ast.NodeID]*CallState
	Errors     []*Error
}

// Checker threads the module, registry, and signature table through
// expression typing and call resolution.
type Checker struct {
	mod    *ast.Module
	reg    *types.Registry
	sigs   *SignatureTable
	result *Result
}

// Check type-checks every function body and every static top-level
// expression in mod, returning the typed Result.
func Check(mod *ast.Module, reg *types.Registry, sigs *SignatureTable) *Result {
	c := &Checker{
		mod: mod, reg: reg, sigs: sigs,
		result: &Result{
			Types:      map[ast.NodeID]*types.Descriptor{},
			CallStates: map[ast.NodeID]*CallState{},
		},
	}
	for _, fn := range mod.ModuleFuncs() {
		c.checkFunc(fn)
	}
	for _, stmt := range mod.ModuleStaticExprs() {
		c.checkStmt(stmt)
	}
	return c.result
}

func (c *Checker) errf(pos token.Position, format string, args ...any) {
	c.result.Errors = append(c.result.Errors, &Error{Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (c *Checker) checkFunc(fn ast.NodeID) {
	fnNode := c.mod.Node(fn)
	c.checkBlock(fnNode.Then)

	// Validate that every `ret` in the body matches the declared return
	// type, consulting the already-computed signature.
	sig, ok := c.sigs.Lookup(FreeFunctionOwner, fnNode.Name, len(fnNode.Children))
	if !ok {
		return
	}
	c.checkReturns(fnNode.Then, sig.Return)
}

func (c *Checker) checkReturns(block ast.NodeID, want *types.Descriptor) {
	if !c.mod.Valid(block) {
		return
	}
	for _, stmt := range c.mod.Node(block).Children {
		n := c.mod.Node(stmt)
		switch n.Kind {
		case ast.KindReturn:
			if !c.mod.Valid(n.Target) {
				if want.Kind != types.KindUnit {
					c.errf(n.Span.Start, "missing return value for function returning %s", want)
				}
				continue
			}
			got := c.typeOf(n.Target)
			if !types.Matches(want, got) {
				c.errf(n.Span.Start, "return type mismatch: expected %s, got %s", want, got)
			}
		case ast.KindIf:
			c.checkReturns(n.Then, want)
			if c.mod.Valid(n.Else) {
				if c.mod.Node(n.Else).Kind == ast.KindIf {
					c.checkReturns(ast.NodeID(n.Else), want)
				} else {
					c.checkReturns(n.Else, want)
				}
			}
		case ast.KindWhile:
			c.checkReturns(n.Then, want)
		case ast.KindFor:
			c.checkReturns(n.Then, want)
		}
	}
}

func (c *Checker) checkBlock(block ast.NodeID) {
	if !c.mod.Valid(block) {
		return
	}
	for _, stmt := range c.mod.Node(block).Children {
		c.checkStmt(stmt)
	}
}

func (c *Checker) checkStmt(id ast.NodeID) {
	n := c.mod.Node(id)
	switch n.Kind {
	case ast.KindExprStmt:
		c.typeOf(n.Target)
	case ast.KindReturn:
		if c.mod.Valid(n.Target) {
			c.typeOf(n.Target)
		}
	case ast.KindIf:
		cond := c.typeOf(n.Cond)
		if cond.Kind != types.KindBool {
			c.errf(n.Span.Start, "if condition must be Bool, got %s", cond)
		}
		c.checkBlock(n.Then)
		if c.mod.Valid(n.Else) {
			if c.mod.Node(n.Else).Kind == ast.KindIf {
				c.checkStmt(n.Else)
			} else {
				c.checkBlock(n.Else)
			}
		}
	case ast.KindWhile:
		cond := c.typeOf(n.Cond)
		if cond.Kind != types.KindBool {
			c.errf(n.Span.Start, "while condition must be Bool, got %s", cond)
		}
		c.checkBlock(n.Then)
	case ast.KindFor:
		c.checkStmt(n.Init)
		cond := c.typeOf(n.Cond)
		if cond.Kind != types.KindBool {
			c.errf(n.Span.Start, "for condition must be Bool, got %s", cond)
		}
		c.checkStmt(n.Step)
		c.checkBlock(n.Then)
	}
}

// typeOf computes (and memoizes) the type descriptor for expression id. On
// error it still attaches a recovery type (Any) so every expression has a
// type, even for a module that will ultimately fail to compile.
func (c *Checker) typeOf(id ast.NodeID) *types.Descriptor {
	if t, ok := c.result.Types[id]; ok {
		return t
	}
	t := c.computeType(id)
	c.result.Types[id] = t
	return t
}

func (c *Checker) computeType(id ast.NodeID) *types.Descriptor {
	n := c.mod.Node(id)
	switch n.Kind {
	case ast.KindIntLit:
		return c.reg.Int32()
	case ast.KindFloatLit:
		return c.reg.Float64()
	case ast.KindStringLit:
		return c.reg.RawString(len(n.StrVal))
	case ast.KindBoolLit:
		return c.reg.Bool()
	case ast.KindIdent:
		if n.IsLocal {
			// LocalAccess: type comes from the owning function's
			// parameter declaration. Pass A (symbols.Resolve) bound
			// the slot; we recover the declared type by walking up
			// through the enclosing function — see localType.
			return c.localType(id)
		}
		c.errf(n.Span.Start, "unknown symbol %q", n.Name)
		return c.reg.Any()
	case ast.KindBinary:
		return c.typeBinary(id)
	case ast.KindUnary:
		return c.typeUnary(id)
	case ast.KindCall:
		return c.typeCall(id, FreeFunctionOwner, nil)
	case ast.KindReference:
		recv := c.typeOf(n.Left)
		t := c.typeCall(n.Target, int(recv.TypeID), recv)
		c.result.Types[n.Target] = t // the call node is an expression too
		return t
	case ast.KindArrayLit:
		return c.typeArrayLit(id)
	}
	c.errf(n.Span.Start, "internal: untyped node kind %v reached the type checker", n.Kind)
	return c.reg.Any()
}

// localType resolves a LocalAccess identifier's declared parameter type.
// Because Pass A only records the slot index (not the owning function), the
// checker re-derives it by locating the enclosing function's parameter
// list; the AST→MIR walk (internal/mir) instead carries the owning
// function explicitly as it descends, per the parent-less arena design —
// this lookup exists only to serve typeOf in isolation from that walk.
func (c *Checker) localType(id ast.NodeID) *types.Descriptor {
	n := c.mod.Node(id)
	for _, fn := range c.mod.ModuleFuncs() {
		fnNode := c.mod.Node(fn)
		if n.Span.Start.Offset < fnNode.Span.Start.Offset || n.Span.End > fnNode.Span.End {
			continue // not the enclosing function
		}
		if n.LocalSlot < len(fnNode.Children) && c.mod.Node(fnNode.Children[n.LocalSlot]).Name == n.Name {
			paramType, err := evalType(c.mod, c.reg, c.mod.Node(fnNode.Children[n.LocalSlot]).Type)
			if err == nil {
				return paramType
			}
		}
	}
	return c.reg.Any()
}

func (c *Checker) typeBinary(id ast.NodeID) *types.Descriptor {
	n := c.mod.Node(id)
	left := c.typeOf(n.Left)
	right := c.typeOf(n.Right)

	switch n.Op {
	case token.KwAnd, token.KwOr:
		if left.Kind != types.KindBool || right.Kind != types.KindBool {
			c.errf(n.Span.Start, "logical operator requires Bool operands, got %s and %s", left, right)
		}
		return c.reg.Bool()
	case token.Eq, token.NotEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return c.reg.Bool()
	case token.Slash:
		if !left.IsNumeric() || !right.IsNumeric() {
			c.errf(n.Span.Start, "'/' requires numeric operands, got %s and %s", left, right)
		}
		return c.reg.Float64()
	case token.Plus:
		if left.Kind == types.KindRawString || left.Kind == types.KindString {
			if right.Kind != types.KindRawString && right.Kind != types.KindString {
				c.errf(n.Span.Start, "Invalid operation: cannot add %s and %s", left, right)
				return c.reg.Any()
			}
			return left
		}
		if right.Kind == types.KindRawString || right.Kind == types.KindString {
			c.errf(n.Span.Start, "Invalid operation: cannot add %s and %s", left, right)
			return c.reg.Any()
		}
		if !left.IsNumeric() || !right.IsNumeric() {
			c.errf(n.Span.Start, "Invalid operation: '+' requires numeric or string operands, got %s and %s", left, right)
			return c.reg.Any()
		}
		return types.Wider(left, right)
	case token.Minus, token.Star, token.Percent:
		if !left.IsNumeric() || !right.IsNumeric() {
			c.errf(n.Span.Start, "Invalid operation: requires numeric operands, got %s and %s", left, right)
			return c.reg.Any()
		}
		return types.Wider(left, right)
	}
	c.errf(n.Span.Start, "internal: unhandled binary operator %v", n.Op)
	return c.reg.Any()
}

func (c *Checker) typeUnary(id ast.NodeID) *types.Descriptor {
	n := c.mod.Node(id)
	operand := c.typeOf(n.Left)
	if n.Op == token.Bang {
		if operand.Kind != types.KindBool {
			c.errf(n.Span.Start, "'!' requires a Bool operand, got %s", operand)
		}
		return c.reg.Bool()
	}
	// Minus (unary negate).
	if !operand.IsNumeric() {
		c.errf(n.Span.Start, "unary '-' requires a numeric operand, got %s", operand)
	}
	return operand
}

// typeArrayLit types an array literal as Array(T) where T is the first
// element's type; mismatched later elements are rejected (Open Question
// resolved in DESIGN.md: reject, don't silently widen to Any).
func (c *Checker) typeArrayLit(id ast.NodeID) *types.Descriptor {
	n := c.mod.Node(id)
	if len(n.Children) == 0 {
		return c.reg.Array(c.reg.Any())
	}
	first := c.typeOf(n.Children[0])
	for _, elemID := range n.Children[1:] {
		elemType := c.typeOf(elemID)
		if !types.Matches(first, elemType) {
			c.errf(c.mod.Node(elemID).Span.Start, "array element type mismatch: expected %s, got %s", first, elemType)
		}
	}
	return c.reg.Array(first)
}
