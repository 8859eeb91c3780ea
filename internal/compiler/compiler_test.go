package compiler_test

import (
	"testing"

	"github.com/roclang/rocc/internal/compiler"
)

func TestCompileSucceedsOnValidSource(t *testing.T) {
	res := compiler.Compile("package main  fun test() -> Int32 { ret 3 } test()", "t.roc")
	if !res.Ok() {
		t.Fatalf("expected compile to succeed, got errors: %v", res.Errors)
	}
	if res.Module == nil || res.Module.Main == nil {
		t.Fatalf("expected a lowered module with a synthesized main")
	}
}

func TestCompileReportsSemanticError(t *testing.T) {
	res := compiler.Compile(`package main  fun test(a Int32, b Int32) -> Int32 { ret "a" + b }`, "t.roc")
	if res.Ok() {
		t.Fatalf("expected compile to fail")
	}
	if len(res.Errors) == 0 {
		t.Fatalf("expected at least one diagnostic")
	}
}

func TestCompileReportsSyntaxError(t *testing.T) {
	res := compiler.Compile("package main  fun test( -> Int32 { ret 1 }", "t.roc")
	if res.Ok() {
		t.Fatalf("expected compile to fail on malformed source")
	}
}
