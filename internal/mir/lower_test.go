package mir_test

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/roclang/rocc/internal/mir"
	"github.com/roclang/rocc/internal/parser"
	"github.com/roclang/rocc/internal/semantic"
	"github.com/roclang/rocc/internal/symbols"
	"github.com/roclang/rocc/internal/types"
)

func lower(t *testing.T, src string) *mir.Module {
	t.Helper()
	mod, err := parser.Parse("t.roc", src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if errs := symbols.Resolve(mod); len(errs) != 0 {
		t.Fatalf("symbol resolution errors: %v", errs)
	}
	reg := types.NewRegistry()
	sigs, sigErrs := semantic.ResolveSignatures(mod, reg)
	if len(sigErrs) != 0 {
		t.Fatalf("signature errors: %v", sigErrs)
	}
	res := semantic.Check(mod, reg, sigs)
	if len(res.Errors) != 0 {
		t.Fatalf("type errors: %v", res.Errors)
	}
	return mir.Lower(mod, reg, sigs, res)
}

func TestLowerIntegerAddition(t *testing.T) {
	m := lower(t, "package main  fun test(a Int32, b Int32) -> Int32 { ret a + b }")

	var fn *mir.Function
	for _, f := range m.Functions {
		if f.Name == "test" {
			fn = f
		}
	}
	if fn == nil {
		t.Fatalf("expected a lowered test function")
	}
	last := fn.Value(fn.Body[len(fn.Body)-1])
	if last.Op != mir.OpReturnValue {
		t.Fatalf("expected the function to end with a return-value, got %v", last.Op)
	}
	ret := fn.Value(last.A)
	if ret.Op != mir.OpInt32Add {
		t.Fatalf("expected the returned value to be an Int32Add, got %v", ret.Op)
	}
}

func TestLowerIntDivisionCastsToFloat(t *testing.T) {
	m := lower(t, "package main  fun test() -> Float64 { ret 8 / 2 }")

	var fn *mir.Function
	for _, f := range m.Functions {
		if f.Name == "test" {
			fn = f
		}
	}
	last := fn.Value(fn.Body[len(fn.Body)-1])
	cast := fn.Value(last.A)
	if cast.Op != mir.OpCastTo {
		t.Fatalf("expected integer division to be cast to Float64, got %v", cast.Op)
	}
	div := fn.Value(cast.A)
	if div.Op != mir.OpIntDiv {
		t.Fatalf("expected the cast's operand to be an int.div, got %v", div.Op)
	}
}

func TestLowerMainSynthesizesInt32ZeroReturn(t *testing.T) {
	m := lower(t, `package main  fun test() -> Int32 { ret 3 } test()`)
	last := m.Main.Value(m.Main.Body[len(m.Main.Body)-1])
	if last.Op != mir.OpReturnValue {
		t.Fatalf("expected main to end with a return-value")
	}
	retVal := m.Main.Value(last.A)
	if retVal.Op != mir.OpConstInt || retVal.IntVal != 0 {
		t.Fatalf("expected main to return the constant 0, got %+v", retVal)
	}
}

func TestDumpSnapshot(t *testing.T) {
	m := lower(t, "package main  fun test(a Int32, b Int32) -> Bool { if a == b { ret true } ret false }")
	var buf bytes.Buffer
	mir.NewDumper(&buf).Dump(m)
	snaps.MatchSnapshot(t, buf.String())
}
