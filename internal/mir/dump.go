package mir

import (
	"fmt"
	"io"
	"strings"

	"github.com/roclang/rocc/internal/types"
)

// Dumper renders a Module's MIR in a disassembler-style listing, modeled on
// bytecode.Disassembler: one function header followed by its
// flat value list with labels inline (the supplemented "--dump-mir"
// introspection feature).
type Dumper struct {
	w io.Writer
}

// NewDumper constructs a Dumper writing to w.
func NewDumper(w io.Writer) *Dumper {
	return &Dumper{w: w}
}

// Dump renders every function in mod.
func (d *Dumper) Dump(mod *Module) {
	for _, fn := range mod.Functions {
		d.DumpFunction(fn)
	}
}

// DumpFunction renders one function's header and flat value list.
func (d *Dumper) DumpFunction(fn *Function) {
	fmt.Fprintf(d.w, "== %s ==\n", fn.Name)
	fmt.Fprintf(d.w, "params: %s, returns: %s\n", paramList(fn.Params), fn.Return)
	fmt.Fprintf(d.w, "body: %s\n", valueIDList(fn.Body))
	for i, v := range fn.Values {
		d.dumpValue(ValueID(i), v)
	}
	fmt.Fprintln(d.w)
}

func paramList(params []*types.Descriptor) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

func (d *Dumper) dumpValue(id ValueID, v Value) {
	fmt.Fprintf(d.w, "  [%04d] %-14s %s", id, v.Op, v.Type)
	switch v.Op {
	case OpConstInt:
		fmt.Fprintf(d.w, " #%d", v.IntVal)
	case OpConstFloat:
		fmt.Fprintf(d.w, " #%g", v.FloatVal)
	case OpConstBool:
		fmt.Fprintf(d.w, " #%v", v.BoolVal)
	case OpConstRawString:
		fmt.Fprintf(d.w, " %q", v.StrVal)
	case OpLocalRead:
		fmt.Fprintf(d.w, " slot=%d", v.LocalSlot)
	case OpCallStatic, OpCallInstance, OpCallFFI:
		fmt.Fprintf(d.w, " %s(%s)", v.CalleeName, valueIDList(v.Args))
	case OpIf, OpWhile:
		fmt.Fprintf(d.w, " cond=%d then=%d[L%d] else=%d[L%d] join=L%d jumpOver=%v",
			v.A, v.Then, v.ThenLabel, v.Else, v.ElseLabel, v.JoinLabel, v.JumpOver)
	case OpBlock:
		fmt.Fprintf(d.w, " {%s}", valueIDList(v.Args))
	case OpArrayConstruct:
		fmt.Fprintf(d.w, " [%s] alloc=%s", valueIDList(v.Args), allocSpaceName(v.AllocSpace))
	case OpReturnValue:
		fmt.Fprintf(d.w, " %d", v.A)
	case OpToWrapper, OpToPtr, OpCastTo, OpStringToRaw:
		fmt.Fprintf(d.w, " %d", v.A)
	default:
		if v.B != InvalidValue {
			fmt.Fprintf(d.w, " %d, %d", v.A, v.B)
		} else if v.A != InvalidValue {
			fmt.Fprintf(d.w, " %d", v.A)
		}
	}
	fmt.Fprintln(d.w)
}

func valueIDList(ids []ValueID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}

func allocSpaceName(a AllocSpace) string {
	switch a {
	case AllocStack:
		return "stack"
	case AllocHeap:
		return "heap"
	}
	return "unknown"
}
