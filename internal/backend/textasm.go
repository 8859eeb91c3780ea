package backend

import (
	"fmt"
	"io"

	"github.com/roclang/rocc/internal/mir"
	"github.com/roclang/rocc/internal/runtime"
)

// TextASM is a placeholder Backend that renders MIR as commented pseudo-
// assembly rather than real machine code. It stands in for the
// out-of-scope native code generator so `compiler <input.roc>`
// can still produce an `output.s` artifact end-to-end; a real backend
// targeting an actual ISA is meant to replace it.
type TextASM struct{}

// Emit writes a comment header listing the runtime initializer symbols
// (runtime.InitOrder), then one pseudo-assembly section per function. The
// vtables registry is not rendered.
func (TextASM) Emit(w io.Writer, mod *mir.Module, vtables *runtime.Registry) error {
	fmt.Fprintln(w, "; rocc textasm placeholder backend — not a real code generator")
	fmt.Fprintln(w, "; linking surface:")
	for _, sym := range runtime.InitOrder {
		fmt.Fprintf(w, ";   %s\n", sym)
	}
	fmt.Fprintln(w)

	for _, fn := range mod.Functions {
		if err := emitFunction(w, fn); err != nil {
			return err
		}
	}
	return nil
}

func emitFunction(w io.Writer, fn *mir.Function) error {
	if _, err := fmt.Fprintf(w, "%s:\n", fn.Name); err != nil {
		return err
	}
	for i, v := range fn.Values {
		if _, err := fmt.Fprintf(w, "\t; [%04d] %s\n", i, v.Op); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
