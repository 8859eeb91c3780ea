// Package mir defines rocc's mid-level intermediate representation: a flat,
// typed sequence of MIR values per function, produced by lowering the typed
// AST.
package mir

import (
	"fmt"

	"github.com/roclang/rocc/internal/types"
)

// ValueID addresses a value within a Function's flat arena.
type ValueID int

const InvalidValue ValueID = -1

// Op tags the concrete shape of a Value. Binary operations are typed: one
// variant per (operator × operand-type) pair (e.g.
// Int32Add, Int64Mul, Float64Div).
type Op int

const (
	OpInvalid Op = iota
	OpConstInt
	OpConstFloat
	OpConstBool
	OpConstRawString
	OpLocalRead
	OpCallStatic
	OpCallInstance
	OpCallFFI
	OpReturnValue
	OpReturnVoid
	OpIf
	OpWhile // while/for-shaped loop: re-evaluates A each iteration, repeats Then until false
	OpCondition
	OpBlock
	OpArrayConstruct

	// Conversions.
	OpToWrapper
	OpToPtr
	OpCastTo
	OpStringToRaw

	// Typed binary operators: one (op × type) pair per variant.
	OpInt32Add
	OpInt32Sub
	OpInt32Mul
	OpInt32Mod
	OpInt32Eq
	OpInt32NotEq
	OpInt64NotEq
	OpFloat64NotEq
	OpInt32Lt
	OpInt32LtEq
	OpInt32Gt
	OpInt32GtEq
	OpInt64Add
	OpInt64Sub
	OpInt64Mul
	OpInt64Mod
	OpInt64Eq
	OpFloat64Add
	OpFloat64Sub
	OpFloat64Mul
	OpFloat64Div
	OpFloat64Mod
	OpFloat64Eq
	OpFloat64Lt
	OpFloat64LtEq
	OpFloat64Gt
	OpFloat64GtEq
	OpIntDiv // signed integer operands: lowered as div followed by CastTo(Float64) by the lowering pass
	OpStringConcat
	OpBoolAnd
	OpBoolOr
	OpBoolNot
	OpNegInt32
	OpNegInt64
	OpNegFloat64
)

var opNames = map[Op]string{
	OpConstInt: "const.int", OpConstFloat: "const.float", OpConstBool: "const.bool", OpConstRawString: "const.str",
	OpLocalRead: "local.read", OpCallStatic: "call.static", OpCallInstance: "call.instance",
	OpCallFFI: "call.ffi", OpReturnValue: "ret.value", OpReturnVoid: "ret.void",
	OpIf: "if", OpWhile: "while", OpCondition: "cond", OpBlock: "block", OpArrayConstruct: "array.new",
	OpToWrapper: "conv.wrapper", OpToPtr: "conv.ptr", OpCastTo: "conv.cast", OpStringToRaw: "conv.str2raw",
	OpInt32Add: "i32.add", OpInt32Sub: "i32.sub", OpInt32Mul: "i32.mul", OpInt32Mod: "i32.mod",
	OpInt32Eq: "i32.eq", OpInt32NotEq: "i32.ne", OpInt64NotEq: "i64.ne", OpFloat64NotEq: "f64.ne",
	OpInt32Lt: "i32.lt", OpInt32LtEq: "i32.le",
	OpInt32Gt: "i32.gt", OpInt32GtEq: "i32.ge",
	OpInt64Add: "i64.add", OpInt64Sub: "i64.sub", OpInt64Mul: "i64.mul", OpInt64Mod: "i64.mod", OpInt64Eq: "i64.eq",
	OpFloat64Add: "f64.add", OpFloat64Sub: "f64.sub", OpFloat64Mul: "f64.mul", OpFloat64Div: "f64.div",
	OpFloat64Mod: "f64.mod", OpFloat64Eq: "f64.eq", OpFloat64Lt: "f64.lt", OpFloat64LtEq: "f64.le",
	OpFloat64Gt: "f64.gt", OpFloat64GtEq: "f64.ge",
	OpIntDiv: "int.div", OpStringConcat: "str.concat",
	OpBoolAnd: "bool.and", OpBoolOr: "bool.or", OpBoolNot: "bool.not",
	OpNegInt32: "neg.i32", OpNegInt64: "neg.i64", OpNegFloat64: "neg.f64",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Value is one entry in a function's flat MIR list.
type Value struct {
	Op   Op
	Type *types.Descriptor

	IntVal   int64
	FloatVal float64
	BoolVal  bool
	StrVal   string

	// Operands, named per the Op kinds that use them.
	A, B ValueID // binary operands, or A = conversion source operand
	Args []ValueID // call arguments, array elements

	// Call-specific payload.
	CalleeName string
	CalleeOwner int // FreeFunctionOwner sentinel from internal/semantic, duplicated here to avoid an import cycle
	LocalSlot  int

	// Control-flow payload. Then/Else address a single OpBlock Value whose
	// Args list holds the nested statement-level ValueIDs in order — MIR
	// blocks nest by reference, not by literal flattening, even though
	// each Function still exposes one flat Values arena.
	Then, Else                      ValueID
	ThenLabel, ElseLabel, JoinLabel int
	JumpOver                        bool // join block must be targeted by an unconditional branch

	// mirpasses payload.
	AllocSpace AllocSpace
}

// AllocSpace records where an array-construction value is allocated,
// assigned by the heap-promotion pass.
type AllocSpace int

const (
	AllocUnknown AllocSpace = iota
	AllocStack
	AllocHeap
)

// FreeFunctionOwner mirrors semantic.FreeFunctionOwner; duplicated as a
// plain constant here because internal/mir must not import internal/semantic
// (data flows forward: semantic → mir, never back).
const FreeFunctionOwner = -1

// Function is one function's flat MIR value pool (Values, addressed by
// ValueID) plus its top-level execution order (Body): the statement
// ValueIDs a walker runs in sequence, terminated by exactly one return
// (value or void). Body mirrors OpBlock's Args
// field at the function-body level, since the function itself isn't wrapped
// in its own OpBlock value.
type Function struct {
	Name   string
	Params []*types.Descriptor
	Return *types.Descriptor

	Values []Value
	Body   []ValueID
}

// New appends v to f's value list and returns its ValueID.
func (f *Function) New(v Value) ValueID {
	f.Values = append(f.Values, v)
	return ValueID(len(f.Values) - 1)
}

// Value dereferences id.
func (f *Function) Value(id ValueID) *Value {
	return &f.Values[id]
}

// Module is the MIR for one compiled source module: the synthesized main
// plus every user-declared function.
type Module struct {
	Functions []*Function
	Main      *Function
}
