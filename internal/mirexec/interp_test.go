package mirexec_test

import (
	"bytes"
	"testing"

	"github.com/roclang/rocc/internal/mir"
	"github.com/roclang/rocc/internal/mirexec"
	"github.com/roclang/rocc/internal/mirpasses"
	"github.com/roclang/rocc/internal/parser"
	"github.com/roclang/rocc/internal/runtime"
	"github.com/roclang/rocc/internal/semantic"
	"github.com/roclang/rocc/internal/symbols"
	"github.com/roclang/rocc/internal/types"
)

// compile runs the full pipeline through the mirpasses sweep, in the same
// order internal/compiler.Compile runs it, and hands back the lowered
// module ready for execution.
func compile(t *testing.T, src string) (*mir.Module, *semantic.SignatureTable) {
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
	m := mir.Lower(mod, reg, sigs, res)
	mirpasses.InsertConversions(m, sigs)
	mirpasses.AssignLabels(m)
	mirpasses.PromoteHeap(m)
	mirpasses.Validate(m)
	return m, sigs
}

func TestReturnsLiteral(t *testing.T) {
	m, _ := compile(t, "package main  fun test() -> Int32 { ret 3 } test()")
	ip := mirexec.New(m, runtime.NewRegistry(), &bytes.Buffer{})

	v, err := ip.CallByName("test", nil)
	if err != nil {
		t.Fatalf("call error: %v", err)
	}
	if v.Int != 3 {
		t.Fatalf("expected test() to return 3, got %v", v.Int)
	}
}

func TestIntDivisionLiftsToFloat(t *testing.T) {
	m, _ := compile(t, "package main  fun test() -> Float64 { ret 8 / 2 }")
	ip := mirexec.New(m, runtime.NewRegistry(), &bytes.Buffer{})

	v, err := ip.CallByName("test", nil)
	if err != nil {
		t.Fatalf("call error: %v", err)
	}
	if v.Float != 4.0 {
		t.Fatalf("expected test() to return 4.0, got %v", v.Float)
	}
}

func TestIntegerAddition(t *testing.T) {
	m, _ := compile(t, "package main  fun test(a Int32, b Int32) -> Int32 { ret a + b }")
	ip := mirexec.New(m, runtime.NewRegistry(), &bytes.Buffer{})

	v, err := ip.CallByName("test", []mirexec.Value{
		mirexec.IntValue(types.KindInt32, 12),
		mirexec.IntValue(types.KindInt32, 56),
	})
	if err != nil {
		t.Fatalf("call error: %v", err)
	}
	if v.Int != 68 {
		t.Fatalf("expected test(12, 56) to return 68, got %v", v.Int)
	}
}

func TestBranchingEquality(t *testing.T) {
	m, _ := compile(t, "package main  fun test(a Int32, b Int32) -> Bool { if a == b { ret true } ret false }")
	ip := mirexec.New(m, runtime.NewRegistry(), &bytes.Buffer{})

	eq, err := ip.CallByName("test", []mirexec.Value{
		mirexec.IntValue(types.KindInt32, 78),
		mirexec.IntValue(types.KindInt32, 78),
	})
	if err != nil {
		t.Fatalf("call error: %v", err)
	}
	if !eq.Bool {
		t.Fatalf("expected test(78, 78) to return true")
	}

	neq, err := ip.CallByName("test", []mirexec.Value{
		mirexec.IntValue(types.KindInt32, 79),
		mirexec.IntValue(types.KindInt32, 78),
	})
	if err != nil {
		t.Fatalf("call error: %v", err)
	}
	if neq.Bool {
		t.Fatalf("expected test(79, 78) to return false")
	}
}

func TestPrintlnSideEffectAndMainExitCode(t *testing.T) {
	m, _ := compile(t, `package main  fun test(a Int32) -> Int32 { println(a.toString()); ret 1 } test(123)`)
	var out bytes.Buffer
	ip := mirexec.New(m, runtime.NewRegistry(), &out)

	v, err := ip.CallByName("test", []mirexec.Value{mirexec.IntValue(types.KindInt32, 123)})
	if err != nil {
		t.Fatalf("call error: %v", err)
	}
	if v.Int != 1 {
		t.Fatalf("expected test(123) to return 1, got %v", v.Int)
	}
	if out.String() != "123\n" {
		t.Fatalf("expected println side effect %q, got %q", "123\n", out.String())
	}

	mainResult, err := ip.RunMain()
	if err != nil {
		t.Fatalf("main error: %v", err)
	}
	if mainResult.Int != 0 {
		t.Fatalf("expected main() to return 0, got %v", mainResult.Int)
	}
}
