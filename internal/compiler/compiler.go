// Package compiler threads a .roc source file through every pipeline stage
// in order — lexer/parser, symbol resolution, signature resolution, type
// checking, MIR lowering, MIR passes — returning a Result value instead of
// driving a CLI directly. The vtable registry and compilation context are
// plain constructed values threaded as arguments, never package globals.
package compiler

import (
	roccerrors "github.com/roclang/rocc/internal/errors"
	"github.com/roclang/rocc/internal/mir"
	"github.com/roclang/rocc/internal/mirpasses"
	"github.com/roclang/rocc/internal/parser"
	"github.com/roclang/rocc/internal/runtime"
	"github.com/roclang/rocc/internal/semantic"
	"github.com/roclang/rocc/internal/symbols"
	"github.com/roclang/rocc/internal/types"
)

// Context carries the state threaded through every pipeline stage: the
// type registry, resolved signatures, and the runtime vtable registry
// (built once from runtime.BuiltinVtables).
type Context struct {
	Types   *types.Registry
	Sigs    *semantic.SignatureTable
	Vtables *runtime.Registry
}

// Result is one file's compilation outcome: either a lowered, pass-
// processed MIR module, or the diagnostics that stopped it.
type Result struct {
	Module *mir.Module
	Ctx    *Context
	Errors []*roccerrors.CompilerError
}

// Ok reports whether compilation succeeded.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

// Compile runs source (named file, for diagnostics) through the full
// pipeline and returns either a ready-to-execute MIR module or the
// accumulated diagnostics from whichever stage failed first.
func Compile(source, file string) *Result {
	reg := types.NewRegistry()
	vtables := runtime.NewRegistry()
	for _, vt := range runtime.BuiltinVtables() {
		vtables.Register(vt)
	}
	ctx := &Context{Types: reg, Vtables: vtables}

	mod, err := parser.Parse(file, source)
	if err != nil {
		if se, ok := err.(*parser.SyntaxError); ok {
			return &Result{Ctx: ctx, Errors: []*roccerrors.CompilerError{roccerrors.FromSyntaxError(se, source)}}
		}
		return &Result{Ctx: ctx, Errors: []*roccerrors.CompilerError{{
			Kind: roccerrors.KindSyntax, Message: err.Error(), File: file, Source: source,
		}}}
	}

	if symErrs := symbols.Resolve(mod); len(symErrs) != 0 {
		return &Result{Ctx: ctx, Errors: convertSymbolErrors(symErrs, source, file)}
	}

	sigs, sigErrs := semantic.ResolveSignatures(mod, reg)
	if len(sigErrs) != 0 {
		return &Result{Ctx: ctx, Errors: convertSemanticErrors(sigErrs, source, file)}
	}
	ctx.Sigs = sigs

	res := semantic.Check(mod, reg, sigs)
	if len(res.Errors) != 0 {
		return &Result{Ctx: ctx, Errors: convertSemanticErrors(res.Errors, source, file)}
	}

	m := mir.Lower(mod, reg, sigs, res)
	mirpasses.InsertConversions(m, sigs)
	mirpasses.AssignLabels(m)
	mirpasses.PromoteHeap(m)
	mirpasses.Validate(m)

	return &Result{Module: m, Ctx: ctx}
}

func convertSymbolErrors(errs []*symbols.Error, source, file string) []*roccerrors.CompilerError {
	out := make([]*roccerrors.CompilerError, len(errs))
	for i, e := range errs {
		out[i] = roccerrors.FromSymbolError(e, source, file)
	}
	return out
}

func convertSemanticErrors(errs []*semantic.Error, source, file string) []*roccerrors.CompilerError {
	out := make([]*roccerrors.CompilerError, len(errs))
	for i, e := range errs {
		out[i] = roccerrors.FromSemanticError(e, source, file)
	}
	return out
}
