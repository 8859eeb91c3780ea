// Package mirexec implements rocc's in-process execution engine: a
// tree-walking interpreter over MIR that loads a module for immediate
// invocation of main, without requiring a linked native backend. Its
// call-frame and locals-slice shape follows a conventional bytecode VM's,
// retargeted from a bytecode dispatch loop to a direct recursive walk over
// MIR's nested block references.
package mirexec

import (
	"fmt"

	"github.com/roclang/rocc/internal/types"
)

// Value is a runtime value, modeled as a tagged union over the closed
// primitive/reference set; Kind selects which field is live.
type Value struct {
	Kind  types.Kind
	Int   int64
	Float float64
	Bool  bool
	Str   string
	Elems []Value
}

func IntValue(k types.Kind, v int64) Value { return Value{Kind: k, Int: v} }
func FloatValue(v float64) Value           { return Value{Kind: types.KindFloat64, Float: v} }
func BoolValue(v bool) Value               { return Value{Kind: types.KindBool, Bool: v} }
func StringValue(v string) Value           { return Value{Kind: types.KindRawString, Str: v} }
func ArrayValue(elems []Value) Value       { return Value{Kind: types.KindArray, Elems: elems} }
func UnitValue() Value                     { return Value{Kind: types.KindUnit} }

// String renders v the way the runtime's println/toString helpers would.
func (v Value) String() string {
	switch v.Kind {
	case types.KindInt32, types.KindInt64:
		return fmt.Sprintf("%d", v.Int)
	case types.KindFloat64:
		return fmt.Sprintf("%g", v.Float)
	case types.KindBool:
		return fmt.Sprintf("%v", v.Bool)
	case types.KindRawString, types.KindString:
		return v.Str
	case types.KindUnit:
		return ""
	}
	return fmt.Sprintf("<%v>", v.Kind)
}

// AsFloat64 widens an Int32/Int64/Float64 value to a float64, for use by
// CastTo and mixed-numeric arithmetic.
func (v Value) AsFloat64() float64 {
	if v.Kind == types.KindFloat64 {
		return v.Float
	}
	return float64(v.Int)
}
