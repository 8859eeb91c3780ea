package mirexec

import (
	"fmt"
	"io"

	"github.com/roclang/rocc/internal/mir"
	"github.com/roclang/rocc/internal/runtime"
	"github.com/roclang/rocc/internal/types"
)

// CCallHandler resolves ccall's FFI escape hatch for the in-process engine:
// no real native library is linked in, so a host embeds one of these to
// stand in for the backend's symbol resolution. The default
// handler returns a zero Value.
type CCallHandler func(name string, args []Value) Value

// Interpreter walks a lowered, pass-processed MIR module directly rather
// than stepping a flat bytecode instruction pointer — MIR blocks already
// nest by reference (mir.Value's Then/Else/Args), so a recursive walk
// mirrors that structure instead of flattening it into linear jumps.
type Interpreter struct {
	mod     *mir.Module
	vtables *runtime.Registry
	out     io.Writer
	ccall   CCallHandler
	byName  map[string]*mir.Function
}

// New constructs an Interpreter over mod, writing println output to out.
func New(mod *mir.Module, vtables *runtime.Registry, out io.Writer) *Interpreter {
	ip := &Interpreter{
		mod: mod, vtables: vtables, out: out,
		byName: map[string]*mir.Function{},
		ccall:  func(string, []Value) Value { return UnitValue() },
	}
	for _, fn := range mod.Functions {
		ip.byName[fn.Name] = fn
	}
	return ip
}

// SetCCallHandler overrides the default no-op ccall handler.
func (ip *Interpreter) SetCCallHandler(h CCallHandler) {
	ip.ccall = h
}

// RunMain executes the synthesized main function and returns its Int32
// result.
func (ip *Interpreter) RunMain() (Value, error) {
	return ip.Call(ip.mod.Main, nil)
}

// Call invokes fn with args bound to its parameter slots in order.
func (ip *Interpreter) Call(fn *mir.Function, args []Value) (val Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mirexec: %v", r)
		}
	}()
	locals := make([]Value, len(fn.Params))
	copy(locals, args)
	v, returned := ip.execSeq(fn, fn.Body, locals)
	if !returned {
		return UnitValue(), nil
	}
	return v, nil
}

// CallByName looks up a declared function by name and invokes it — used by
// static call sites.
func (ip *Interpreter) CallByName(name string, args []Value) (Value, error) {
	fn, ok := ip.byName[name]
	if !ok {
		return Value{}, fmt.Errorf("mirexec: no such function %q", name)
	}
	return ip.Call(fn, args)
}

// execSeq runs a statement sequence, stopping at the first return and
// propagating it (val, true) to the caller; falling off the end yields
// (zero, false).
func (ip *Interpreter) execSeq(fn *mir.Function, ids []mir.ValueID, locals []Value) (Value, bool) {
	for _, id := range ids {
		if val, returned := ip.exec(fn, id, locals); returned {
			return val, true
		}
	}
	return Value{}, false
}

// exec executes one statement-position MIR value: a return, a nested
// block/if/while, or a bare expression run for its side effect.
func (ip *Interpreter) exec(fn *mir.Function, id mir.ValueID, locals []Value) (Value, bool) {
	v := fn.Value(id)
	switch v.Op {
	case mir.OpReturnValue:
		return ip.eval(fn, v.A, locals), true
	case mir.OpReturnVoid:
		return UnitValue(), true
	case mir.OpBlock:
		return ip.execSeq(fn, v.Args, locals)
	case mir.OpIf:
		if ip.eval(fn, v.A, locals).Bool {
			return ip.exec(fn, v.Then, locals)
		}
		if v.Else != mir.InvalidValue {
			return ip.exec(fn, v.Else, locals)
		}
		return Value{}, false
	case mir.OpWhile:
		for ip.eval(fn, v.A, locals).Bool {
			if val, returned := ip.exec(fn, v.Then, locals); returned {
				return val, true
			}
		}
		return Value{}, false
	default:
		ip.eval(fn, id, locals)
		return Value{}, false
	}
}

// eval evaluates an expression-position MIR value to a runtime Value.
func (ip *Interpreter) eval(fn *mir.Function, id mir.ValueID, locals []Value) Value {
	v := fn.Value(id)
	switch v.Op {
	case mir.OpConstInt:
		return IntValue(v.Type.Kind, v.IntVal)
	case mir.OpConstFloat:
		return FloatValue(v.FloatVal)
	case mir.OpConstBool:
		return BoolValue(v.BoolVal)
	case mir.OpConstRawString:
		return StringValue(v.StrVal)
	case mir.OpLocalRead:
		return locals[v.LocalSlot]
	case mir.OpCondition:
		return ip.eval(fn, v.A, locals)
	case mir.OpToWrapper, mir.OpToPtr, mir.OpStringToRaw:
		return ip.eval(fn, v.A, locals)
	case mir.OpCastTo:
		return ip.evalCast(fn, v, locals)
	case mir.OpArrayConstruct:
		elems := make([]Value, len(v.Args))
		for i, a := range v.Args {
			elems[i] = ip.eval(fn, a, locals)
		}
		return ArrayValue(elems)
	case mir.OpCallStatic:
		return ip.evalCallStatic(fn, v, locals)
	case mir.OpCallInstance:
		return ip.evalCallInstance(fn, v, locals)
	case mir.OpCallFFI:
		return ip.evalCallFFI(fn, v, locals)
	case mir.OpBoolNot:
		return BoolValue(!ip.eval(fn, v.A, locals).Bool)
	case mir.OpNegInt32, mir.OpNegInt64:
		return IntValue(v.Type.Kind, -ip.eval(fn, v.A, locals).Int)
	case mir.OpNegFloat64:
		return FloatValue(-ip.eval(fn, v.A, locals).Float)
	}
	return ip.evalBinary(fn, v, locals)
}

func (ip *Interpreter) evalCast(fn *mir.Function, v *mir.Value, locals []Value) Value {
	src := ip.eval(fn, v.A, locals)
	if v.Type.Kind == types.KindFloat64 {
		return FloatValue(src.AsFloat64())
	}
	return src
}

func (ip *Interpreter) evalCallStatic(fn *mir.Function, v *mir.Value, locals []Value) Value {
	if v.CalleeName == "println" {
		arg := ip.eval(fn, v.Args[0], locals)
		fmt.Fprintln(ip.out, arg.String())
		return UnitValue()
	}
	args := make([]Value, len(v.Args))
	for i, a := range v.Args {
		args[i] = ip.eval(fn, a, locals)
	}
	result, err := ip.CallByName(v.CalleeName, args)
	if err != nil {
		panic(err)
	}
	return result
}

// evalCallInstance implements the built-in method table:
// only toString is a real runtime helper (myInt32ToString-style); other
// method-IDs have no in-process implementation and are out of scope.
func (ip *Interpreter) evalCallInstance(fn *mir.Function, v *mir.Value, locals []Value) Value {
	recv := ip.eval(fn, v.Args[0], locals)
	if v.CalleeName == "toString" {
		return StringValue(recv.String())
	}
	panic(fmt.Sprintf("mirexec: no in-process implementation for method %q", v.CalleeName))
}

func (ip *Interpreter) evalCallFFI(fn *mir.Function, v *mir.Value, locals []Value) Value {
	args := make([]Value, len(v.Args))
	for i, a := range v.Args {
		args[i] = ip.eval(fn, a, locals)
	}
	return ip.ccall(v.CalleeName, args)
}

func (ip *Interpreter) evalBinary(fn *mir.Function, v *mir.Value, locals []Value) Value {
	a := ip.eval(fn, v.A, locals)
	b := ip.eval(fn, v.B, locals)
	switch v.Op {
	case mir.OpInt32Add, mir.OpInt64Add:
		return IntValue(v.Type.Kind, a.Int+b.Int)
	case mir.OpInt32Sub, mir.OpInt64Sub:
		return IntValue(v.Type.Kind, a.Int-b.Int)
	case mir.OpInt32Mul, mir.OpInt64Mul:
		return IntValue(v.Type.Kind, a.Int*b.Int)
	case mir.OpInt32Mod, mir.OpInt64Mod:
		return IntValue(v.Type.Kind, a.Int%b.Int)
	case mir.OpIntDiv:
		return IntValue(v.Type.Kind, a.Int/b.Int)
	case mir.OpFloat64Add:
		return FloatValue(a.Float + b.Float)
	case mir.OpFloat64Sub:
		return FloatValue(a.Float - b.Float)
	case mir.OpFloat64Mul:
		return FloatValue(a.Float * b.Float)
	case mir.OpFloat64Div:
		return FloatValue(a.Float / b.Float)
	case mir.OpFloat64Mod:
		return FloatValue(float64(int64(a.Float) % int64(b.Float)))
	case mir.OpStringConcat:
		return StringValue(a.Str + b.Str)
	case mir.OpInt32Eq, mir.OpInt64Eq:
		return BoolValue(a.Int == b.Int)
	case mir.OpInt32NotEq, mir.OpInt64NotEq:
		return BoolValue(a.Int != b.Int)
	case mir.OpFloat64Eq:
		return BoolValue(a.Float == b.Float)
	case mir.OpFloat64NotEq:
		return BoolValue(a.Float != b.Float)
	case mir.OpInt32Lt:
		return BoolValue(a.Int < b.Int)
	case mir.OpInt32LtEq:
		return BoolValue(a.Int <= b.Int)
	case mir.OpInt32Gt:
		return BoolValue(a.Int > b.Int)
	case mir.OpInt32GtEq:
		return BoolValue(a.Int >= b.Int)
	case mir.OpFloat64Lt:
		return BoolValue(a.Float < b.Float)
	case mir.OpFloat64LtEq:
		return BoolValue(a.Float <= b.Float)
	case mir.OpFloat64Gt:
		return BoolValue(a.Float > b.Float)
	case mir.OpFloat64GtEq:
		return BoolValue(a.Float >= b.Float)
	case mir.OpBoolAnd:
		return BoolValue(a.Bool && b.Bool)
	case mir.OpBoolOr:
		return BoolValue(a.Bool || b.Bool)
	}
	panic(fmt.Sprintf("mirexec: unhandled op %v reached evaluation", v.Op))
}
