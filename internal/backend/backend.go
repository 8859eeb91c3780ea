// Package backend defines the contract a code generator implements to turn
// MIR plus the runtime ABI layout into a native artifact: a compliant
// backend consumes the MIR and the runtime ABI. rocc itself ships no real
// machine-code emitter — that is explicitly an out-of-scope external
// collaborator — but the interface and a minimal textasm stand-in let the
// rest of the pipeline be exercised end-to-end.
package backend

import (
	"io"

	"github.com/roclang/rocc/internal/mir"
	"github.com/roclang/rocc/internal/runtime"
)

// Backend consumes a fully-lowered and pass-processed MIR module plus the
// runtime's vtable registry, and emits a native artifact to w.
type Backend interface {
	Emit(w io.Writer, mod *mir.Module, vtables *runtime.Registry) error
}
