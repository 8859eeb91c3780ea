package mir

import (
	"fmt"

	"github.com/roclang/rocc/internal/ast"
	"github.com/roclang/rocc/internal/semantic"
	"github.com/roclang/rocc/internal/token"
	"github.com/roclang/rocc/internal/types"
)

// Lowerer performs recursive tree transformation: typed AST
// → flat per-function MIR value list.
type Lowerer struct {
	mod  *ast.Module
	reg  *types.Registry
	sigs *semantic.SignatureTable
	res  *semantic.Result

	fn *Function
}

// Lower translates mod's every declared function, plus its static top-level
// expressions (synthesized into a main function returning Int32), into a
// mir.Module.
func Lower(mod *ast.Module, reg *types.Registry, sigs *semantic.SignatureTable, res *semantic.Result) *Module {
	l := &Lowerer{mod: mod, reg: reg, sigs: sigs, res: res}

	out := &Module{}
	for _, fnID := range mod.ModuleFuncs() {
		out.Functions = append(out.Functions, l.lowerFunc(fnID))
	}
	out.Main = l.lowerMain()
	out.Functions = append(out.Functions, out.Main)
	return out
}

func (l *Lowerer) lowerFunc(fnID ast.NodeID) *Function {
	fnNode := l.mod.Node(fnID)
	sig, ok := l.sigs.Lookup(semantic.FreeFunctionOwner, fnNode.Name, len(fnNode.Children))
	if !ok {
		panic(fmt.Sprintf("internal: no signature recorded for declared function %q", fnNode.Name))
	}

	l.fn = &Function{Name: fnNode.Name, Params: sig.Params, Return: sig.Return}
	l.fn.Body = l.lowerBlockInto(fnNode.Then)
	l.ensureTerminated(sig.Return)
	return l.fn
}

// lowerMain synthesizes the module's static top-level expressions into a
// `main` function of return type Int32 returning 0.
func (l *Lowerer) lowerMain() *Function {
	l.fn = &Function{Name: "main", Params: nil, Return: l.reg.Int32()}

	var body []ValueID
	for _, stmt := range l.mod.ModuleStaticExprs() {
		if id, ok := l.lowerStmtValue(stmt); ok {
			body = append(body, id)
		}
	}
	zero := l.fn.New(Value{Op: OpConstInt, Type: l.reg.Int32(), IntVal: 0})
	ret := l.fn.New(Value{Op: OpReturnValue, Type: l.reg.Int32(), A: zero})
	l.fn.Body = append(body, ret)
	return l.fn
}

// ensureTerminated appends a synthesized return-void if the function body
// fell off the end without an explicit `ret`.
func (l *Lowerer) ensureTerminated(ret *types.Descriptor) {
	if len(l.fn.Body) > 0 {
		last := l.fn.Value(l.fn.Body[len(l.fn.Body)-1])
		if last.Op == OpReturnValue || last.Op == OpReturnVoid {
			return
		}
	}
	id := l.fn.New(Value{Op: OpReturnVoid, Type: l.reg.Unit()})
	l.fn.Body = append(l.fn.Body, id)
}

// lowerBlockInto lowers every statement of an ast Block, returning their
// ValueIDs in execution order (used for the outer function body, which
// isn't itself nested inside another OpBlock reference).
func (l *Lowerer) lowerBlockInto(block ast.NodeID) []ValueID {
	if !l.mod.Valid(block) {
		return nil
	}
	var out []ValueID
	for _, stmt := range l.mod.Node(block).Children {
		if id, ok := l.lowerStmtValue(stmt); ok {
			out = append(out, id)
		}
	}
	return out
}

// lowerBlockValue lowers a nested ast Block (an if/while/for arm) into its
// own OpBlock Value, whose Args hold the nested statement ValueIDs — see
// mir.Value's Then/Else doc comment.
func (l *Lowerer) lowerBlockValue(block ast.NodeID) ValueID {
	var stmts []ValueID
	if l.mod.Valid(block) {
		for _, stmt := range l.mod.Node(block).Children {
			if id, ok := l.lowerStmtValue(stmt); ok {
				stmts = append(stmts, id)
			}
		}
	}
	return l.fn.New(Value{Op: OpBlock, Type: l.reg.Unit(), Args: stmts})
}

// lowerStmtValue lowers one statement and returns the ValueID of its
// generated MIR value (used when the caller needs to record it in a
// parent OpBlock's Args, e.g. for nested if/while bodies).
func (l *Lowerer) lowerStmtValue(id ast.NodeID) (ValueID, bool) {
	n := l.mod.Node(id)
	switch n.Kind {
	case ast.KindExprStmt:
		return l.lowerExprStmt(id), true
	case ast.KindReturn:
		return l.lowerReturn(id), true
	case ast.KindIf:
		return l.lowerIf(id), true
	case ast.KindWhile:
		return l.lowerWhile(id), true
	case ast.KindFor:
		return l.lowerFor(id), true
	}
	panic(fmt.Sprintf("internal: unhandled statement kind %v reached lowering", n.Kind))
}

func (l *Lowerer) lowerExprStmt(id ast.NodeID) ValueID {
	n := l.mod.Node(id)
	return l.lowerExpr(n.Target)
}

func (l *Lowerer) lowerReturn(id ast.NodeID) ValueID {
	n := l.mod.Node(id)
	if !l.mod.Valid(n.Target) {
		return l.fn.New(Value{Op: OpReturnVoid, Type: l.reg.Unit()})
	}
	v := l.lowerExpr(n.Target)
	return l.fn.New(Value{Op: OpReturnValue, Type: l.fn.Value(v).Type, A: v})
}

// lowerIf lowers `if/else` to a MIR-If holding a MIRCondition, a then-block,
// and an optional else-block. jumpOver is set when both arms are present, so a backend knows the join
// point is reached only via an explicit branch out of each arm rather than
// by falling through the else arm.
func (l *Lowerer) lowerIf(id ast.NodeID) ValueID {
	n := l.mod.Node(id)
	cond := l.lowerExpr(n.Cond)
	condVal := l.fn.New(Value{Op: OpCondition, Type: l.reg.Bool(), A: cond})

	thenBlk := l.lowerBlockValue(n.Then)
	elseBlk := InvalidValue
	hasElse := l.mod.Valid(n.Else)
	if hasElse {
		if l.mod.Node(n.Else).Kind == ast.KindIf {
			elseBlk = l.lowerIf(n.Else)
		} else {
			elseBlk = l.lowerBlockValue(n.Else)
		}
	}

	return l.fn.New(Value{
		Op: OpIf, Type: l.reg.Unit(),
		A: condVal, Then: thenBlk, Else: elseBlk,
		JumpOver: hasElse,
	})
}

func (l *Lowerer) lowerWhile(id ast.NodeID) ValueID {
	n := l.mod.Node(id)
	cond := l.lowerExpr(n.Cond)
	condVal := l.fn.New(Value{Op: OpCondition, Type: l.reg.Bool(), A: cond})
	body := l.lowerBlockValue(n.Then)
	return l.fn.New(Value{Op: OpWhile, Type: l.reg.Unit(), A: condVal, Then: body, Else: InvalidValue})
}

// lowerFor lowers `for INIT; COND; STEP { ... }` into an init statement
// followed by a while-shaped loop whose body block ends with the step
// statement. Since a single statement slot can only hold one ValueID, the
// init statement and the loop are wrapped together in an OpBlock — a
// walker executing any OpBlock it meets runs its Args in sequence, whether
// that block is an if/while arm or this synthesized wrapper.
func (l *Lowerer) lowerFor(id ast.NodeID) ValueID {
	n := l.mod.Node(id)
	initID, hasInit := l.lowerStmtValue(n.Init)

	cond := l.lowerExpr(n.Cond)
	condVal := l.fn.New(Value{Op: OpCondition, Type: l.reg.Bool(), A: cond})

	var bodyStmts []ValueID
	for _, stmt := range l.mod.Node(n.Then).Children {
		if v, ok := l.lowerStmtValue(stmt); ok {
			bodyStmts = append(bodyStmts, v)
		}
	}
	if v, ok := l.lowerStmtValue(n.Step); ok {
		bodyStmts = append(bodyStmts, v)
	}
	body := l.fn.New(Value{Op: OpBlock, Type: l.reg.Unit(), Args: bodyStmts})
	loop := l.fn.New(Value{Op: OpWhile, Type: l.reg.Unit(), A: condVal, Then: body, Else: InvalidValue})

	if !hasInit {
		return loop
	}
	return l.fn.New(Value{Op: OpBlock, Type: l.reg.Unit(), Args: []ValueID{initID, loop}})
}

// lowerExpr lowers a typed expression node into one (or a short chain of)
// MIR value(s), returning the ValueID holding the result.
func (l *Lowerer) lowerExpr(id ast.NodeID) ValueID {
	n := l.mod.Node(id)
	typ := l.res.Types[id]

	switch n.Kind {
	case ast.KindIntLit:
		return l.fn.New(Value{Op: OpConstInt, Type: typ, IntVal: n.IntVal})
	case ast.KindFloatLit:
		return l.fn.New(Value{Op: OpConstFloat, Type: typ, FloatVal: n.FloatVal})
	case ast.KindStringLit:
		return l.fn.New(Value{Op: OpConstRawString, Type: typ, StrVal: n.StrVal})
	case ast.KindBoolLit:
		return l.fn.New(Value{Op: OpConstBool, Type: typ, BoolVal: n.BoolVal})
	case ast.KindIdent:
		return l.fn.New(Value{Op: OpLocalRead, Type: typ, LocalSlot: n.LocalSlot})
	case ast.KindBinary:
		return l.lowerBinary(id)
	case ast.KindUnary:
		return l.lowerUnary(id)
	case ast.KindCall:
		return l.lowerCall(id, false)
	case ast.KindReference:
		// recv.call(...): lower the call, marking it an instance call and
		// threading the receiver in as an implicit first operand.
		recvVal := l.lowerExpr(n.Left)
		return l.lowerInstanceCall(n.Target, recvVal)
	case ast.KindArrayLit:
		return l.lowerArrayLit(id)
	}
	panic(fmt.Sprintf("internal: unhandled expression kind %v reached lowering", n.Kind))
}

func (l *Lowerer) lowerBinary(id ast.NodeID) ValueID {
	n := l.mod.Node(id)
	left := l.lowerExpr(n.Left)
	right := l.lowerExpr(n.Right)
	leftType := l.fn.Value(left).Type
	rightType := l.fn.Value(right).Type
	resultType := l.res.Types[id]

	op, needsIntDivLowering := selectBinaryOp(n.Op, leftType, rightType)

	// Mixed Int/Float64 operands promote the integer side to Float64 before
	// the typed op executes.
	wantsFloat := leftType.Kind == types.KindFloat64 || rightType.Kind == types.KindFloat64
	if wantsFloat && leftType.Kind != types.KindFloat64 && leftType.IsNumeric() {
		left = l.fn.New(Value{Op: OpCastTo, Type: l.reg.Float64(), A: left})
	}
	if wantsFloat && rightType.Kind != types.KindFloat64 && rightType.IsNumeric() {
		right = l.fn.New(Value{Op: OpCastTo, Type: l.reg.Float64(), A: right})
	}

	valType := resultType
	if needsIntDivLowering {
		// The division itself stays in the integer domain — only the
		// wrapping cast below carries the Float64 result type.
		valType = leftType
		if leftType.Kind == types.KindInt64 || rightType.Kind == types.KindInt64 {
			valType = l.reg.Int64()
		}
	}
	v := l.fn.New(Value{Op: op, Type: valType, A: left, B: right})

	if needsIntDivLowering {
		// "/" on any pair of numerics lowers as signed-div followed by an
		// int→float cast, unless either operand is Float64 (then the
		// integer side was cast above and f64.div is used instead).
		v = l.fn.New(Value{Op: OpCastTo, Type: l.reg.Float64(), A: v})
	}
	return v
}

// selectBinaryOp selects the typed MIR variant from the operand type:
// an Int32+Int32 becomes MIRInt32Add, equality on Int32
// becomes MIRInt32Eq, etc. Float variants exist symmetrically. The second
// return reports whether the lowered "/" still needs the int→float cast
// (false when either operand is Float64, which selects f64.div).
func selectBinaryOp(op token.Kind, left, right *types.Descriptor) (Op, bool) {
	isFloat := left.Kind == types.KindFloat64 || right.Kind == types.KindFloat64
	isInt64 := left.Kind == types.KindInt64 || right.Kind == types.KindInt64
	isString := left.Kind == types.KindRawString || left.Kind == types.KindString

	switch op {
	case token.Plus:
		if isString {
			return OpStringConcat, false
		}
		if isFloat {
			return OpFloat64Add, false
		}
		if isInt64 {
			return OpInt64Add, false
		}
		return OpInt32Add, false
	case token.Minus:
		if isFloat {
			return OpFloat64Sub, false
		}
		if isInt64 {
			return OpInt64Sub, false
		}
		return OpInt32Sub, false
	case token.Star:
		if isFloat {
			return OpFloat64Mul, false
		}
		if isInt64 {
			return OpInt64Mul, false
		}
		return OpInt32Mul, false
	case token.Percent:
		if isFloat {
			return OpFloat64Mod, false
		}
		if isInt64 {
			return OpInt64Mod, false
		}
		return OpInt32Mod, false
	case token.Slash:
		if isFloat {
			return OpFloat64Div, false
		}
		return OpIntDiv, true
	case token.Eq:
		if isFloat {
			return OpFloat64Eq, false
		}
		if isInt64 {
			return OpInt64Eq, false
		}
		return OpInt32Eq, false
	case token.NotEq:
		if isFloat {
			return OpFloat64NotEq, false
		}
		if isInt64 {
			return OpInt64NotEq, false
		}
		return OpInt32NotEq, false
	case token.Lt:
		if isFloat {
			return OpFloat64Lt, false
		}
		return OpInt32Lt, false
	case token.LtEq:
		if isFloat {
			return OpFloat64LtEq, false
		}
		return OpInt32LtEq, false
	case token.Gt:
		if isFloat {
			return OpFloat64Gt, false
		}
		return OpInt32Gt, false
	case token.GtEq:
		if isFloat {
			return OpFloat64GtEq, false
		}
		return OpInt32GtEq, false
	case token.KwAnd:
		return OpBoolAnd, false
	case token.KwOr:
		return OpBoolOr, false
	}
	panic(fmt.Sprintf("internal: unhandled binary operator %v reached lowering", op))
}

func (l *Lowerer) lowerUnary(id ast.NodeID) ValueID {
	n := l.mod.Node(id)
	operand := l.lowerExpr(n.Left)
	operandType := l.fn.Value(operand).Type
	resultType := l.res.Types[id]

	if n.Op == token.Bang {
		return l.fn.New(Value{Op: OpBoolNot, Type: resultType, A: operand})
	}
	switch operandType.Kind {
	case types.KindInt64:
		return l.fn.New(Value{Op: OpNegInt64, Type: resultType, A: operand})
	case types.KindFloat64:
		return l.fn.New(Value{Op: OpNegFloat64, Type: resultType, A: operand})
	default:
		return l.fn.New(Value{Op: OpNegInt32, Type: resultType, A: operand})
	}
}

// lowerCall lowers a bare NAME(args) call. `ccall` becomes an FFI call with
// its target name taken literally from the first argument.
func (l *Lowerer) lowerCall(id ast.NodeID, _instance bool) ValueID {
	n := l.mod.Node(id)
	resultType := l.res.Types[id]

	if n.Name == "ccall" {
		return l.lowerFFICall(id)
	}

	var args []ValueID
	for _, a := range n.Children {
		args = append(args, l.lowerExpr(a))
	}
	return l.fn.New(Value{
		Op: OpCallStatic, Type: resultType,
		CalleeName: n.Name, CalleeOwner: FreeFunctionOwner,
		Args: args,
	})
}

// lowerInstanceCall lowers recv.call(args) into an instance call, with the
// receiver as an implicit leading argument.
func (l *Lowerer) lowerInstanceCall(callID ast.NodeID, recv ValueID) ValueID {
	n := l.mod.Node(callID)
	resultType := l.res.Types[callID]

	args := []ValueID{recv}
	for _, a := range n.Children {
		args = append(args, l.lowerExpr(a))
	}
	recvType := l.fn.Value(recv).Type
	return l.fn.New(Value{
		Op: OpCallInstance, Type: resultType,
		CalleeName: n.Name, CalleeOwner: int(recvType.TypeID),
		Args: args,
	})
}

// lowerFFICall lowers ccall(NAME_LIT, args...) to an FFI call whose target
// name is taken literally from the first (string-literal) argument.
// Variadic slots past the fixed arity receive arguments as-is: no implicit
// conversion is applied here, and mirpasses.InsertConversions does not
// visit FFI calls at all.
func (l *Lowerer) lowerFFICall(id ast.NodeID) ValueID {
	n := l.mod.Node(id)
	resultType := l.res.Types[id]
	name := l.mod.Node(n.Children[0]).StrVal

	var args []ValueID
	for _, a := range n.Children[1:] {
		args = append(args, l.lowerExpr(a))
	}
	return l.fn.New(Value{Op: OpCallFFI, Type: resultType, CalleeName: name, Args: args})
}

// lowerArrayLit lowers an array literal to an array-construction MIR value.
// String literals passed in positions requiring Any are not double-wrapped
// here — the wrap pass inserts boxing only for primitives.
func (l *Lowerer) lowerArrayLit(id ast.NodeID) ValueID {
	n := l.mod.Node(id)
	resultType := l.res.Types[id]
	var elems []ValueID
	for _, e := range n.Children {
		elems = append(elems, l.lowerExpr(e))
	}
	return l.fn.New(Value{Op: OpArrayConstruct, Type: resultType, Args: elems, AllocSpace: AllocStack})
}
