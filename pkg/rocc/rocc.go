// Package rocc is the host-facing public API: compile a .roc source string
// to MIR and optionally run it in-process, without exposing any internal/
// package to callers. It follows the standard Go facade shape: an Engine
// value configured with functional options, New(...opts).
package rocc

import (
	"io"
	"os"

	"github.com/roclang/rocc/internal/compiler"
	"github.com/roclang/rocc/internal/mirexec"
)

// Option configures an Engine.
type Option func(*Engine)

// WithStdout overrides the writer println output is sent to during Run.
func WithStdout(w io.Writer) Option {
	return func(e *Engine) { e.stdout = w }
}

// WithCCallHandler installs a stand-in for ccall's FFI escape hatch, since
// no native backend is linked in-process.
func WithCCallHandler(h mirexec.CCallHandler) Option {
	return func(e *Engine) { e.ccall = h }
}

// Engine compiles and runs rocc source. The zero value is not usable; build
// one with New.
type Engine struct {
	stdout io.Writer
	ccall  mirexec.CCallHandler
}

// New constructs an Engine with stdout as its default println target.
func New(opts ...Option) *Engine {
	e := &Engine{stdout: os.Stdout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is one file's compilation outcome as seen by a host: either a
// ready-to-run Program, or the diagnostics that stopped compilation.
type Result struct {
	Program *Program
	Errors  []*Error
}

// Ok reports whether compilation succeeded.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

// Program is a compiled module ready for in-process execution.
type Program struct {
	res *compiler.Result
}

// Compile parses and lowers source (named file, for diagnostics) through
// rocc's full pipeline.
func (e *Engine) Compile(source, file string) *Result {
	res := compiler.Compile(source, file)
	if !res.Ok() {
		return &Result{Errors: convertErrors(res.Errors)}
	}
	return &Result{Program: &Program{res: res}}
}

// Run executes the program's synthesized main and returns its Int32 exit
// code.
func (e *Engine) Run(p *Program) (int, error) {
	ip := mirexec.New(p.res.Module, p.res.Ctx.Vtables, e.stdout)
	if e.ccall != nil {
		ip.SetCCallHandler(e.ccall)
	}
	v, err := ip.RunMain()
	if err != nil {
		return 0, err
	}
	return int(v.Int), nil
}

// Call invokes one declared function by name with the given Int32/Bool/
// Float64/RawString arguments, returning its result. Used by hosts and
// tests that want a single function's result rather than main's exit code.
func (e *Engine) Call(p *Program, name string, args ...mirexec.Value) (mirexec.Value, error) {
	ip := mirexec.New(p.res.Module, p.res.Ctx.Vtables, e.stdout)
	if e.ccall != nil {
		ip.SetCCallHandler(e.ccall)
	}
	return ip.CallByName(name, args)
}
