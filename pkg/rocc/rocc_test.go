package rocc_test

import (
	"bytes"
	"testing"

	"github.com/roclang/rocc/internal/types"
	"github.com/roclang/rocc/internal/mirexec"
	"github.com/roclang/rocc/pkg/rocc"
)

func TestEngineCompileAndRun(t *testing.T) {
	var out bytes.Buffer
	engine := rocc.New(rocc.WithStdout(&out))

	res := engine.Compile(`package main  fun test(a Int32) -> Int32 { println(a.toString()); ret 1 } test(123)`, "t.roc")
	if !res.Ok() {
		t.Fatalf("expected compile to succeed, got errors: %v", res.Errors)
	}

	code, err := engine.Run(res.Program)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if out.String() != "123\n" {
		t.Fatalf("expected println side effect %q, got %q", "123\n", out.String())
	}
}

func TestEngineCallByName(t *testing.T) {
	engine := rocc.New()
	res := engine.Compile("package main  fun test(a Int32, b Int32) -> Int32 { ret a + b }", "t.roc")
	if !res.Ok() {
		t.Fatalf("expected compile to succeed, got errors: %v", res.Errors)
	}

	v, err := engine.Call(res.Program, "test", mirexec.IntValue(types.KindInt32, 12), mirexec.IntValue(types.KindInt32, 56))
	if err != nil {
		t.Fatalf("call error: %v", err)
	}
	if v.Int != 68 {
		t.Fatalf("expected 68, got %d", v.Int)
	}
}

func TestEngineCompileReportsDiagnostics(t *testing.T) {
	engine := rocc.New()
	res := engine.Compile(`package main  fun test(a Int32, b Int32) -> Int32 { ret "a" + b }`, "t.roc")
	if res.Ok() {
		t.Fatalf("expected compile to fail")
	}
	if len(res.Errors) == 0 || res.Errors[0].Message == "" {
		t.Fatalf("expected a populated diagnostic, got %+v", res.Errors)
	}
}
