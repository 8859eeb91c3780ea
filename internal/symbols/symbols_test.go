package symbols

import (
	"testing"

	"github.com/roclang/rocc/internal/parser"
)

func TestResolveBindsParameters(t *testing.T) {
	mod, err := parser.Parse("t.roc", "package main  fun test(a Int32, b Int32) -> Int32 { ret a + b }")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	errs := Resolve(mod)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn := mod.Node(mod.ModuleFuncs()[0])
	body := mod.Node(fn.Then)
	ret := mod.Node(body.Children[0])
	add := mod.Node(ret.Target)
	left := mod.Node(add.Left)
	right := mod.Node(add.Right)
	if !left.IsLocal || left.LocalSlot != 0 {
		t.Errorf("left operand not bound to slot 0: %+v", left)
	}
	if !right.IsLocal || right.LocalSlot != 1 {
		t.Errorf("right operand not bound to slot 1: %+v", right)
	}
}

func TestResolveUnknownSymbol(t *testing.T) {
	mod, err := parser.Parse("t.roc", "package main  fun test() -> Int32 { ret missing }")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	errs := Resolve(mod)
	if len(errs) != 1 {
		t.Fatalf("expected 1 unknown-symbol error, got %d: %v", len(errs), errs)
	}
	if errs[0].Name != "missing" {
		t.Errorf("error name = %q, want missing", errs[0].Name)
	}
}

func TestResolveShadowingIsAnError(t *testing.T) {
	mod, err := parser.Parse("t.roc", "package main  fun test(a Int32, a Int32) -> Int32 { ret a }")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	errs := Resolve(mod)
	if len(errs) == 0 {
		t.Fatalf("expected a shadowing error for duplicate parameter %q", "a")
	}
}
