package parser

import (
	"testing"

	"github.com/roclang/rocc/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := Parse("test.roc", src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return mod
}

func TestParseRequiresPackage(t *testing.T) {
	_, err := Parse("test.roc", "fun main() { ret 1 }")
	if err == nil {
		t.Fatalf("expected syntax error for missing package declaration")
	}
}

func TestParseSimpleFunction(t *testing.T) {
	mod := mustParse(t, "package main  fun test() -> Int32 { ret 3 } test()")
	funcs := mod.ModuleFuncs()
	if len(funcs) != 1 {
		t.Fatalf("got %d funcs, want 1", len(funcs))
	}
	fn := mod.Node(funcs[0])
	if fn.Name != "test" {
		t.Fatalf("func name = %q, want test", fn.Name)
	}
	if !mod.Valid(fn.Type) || mod.Node(fn.Type).Name != "Int32" {
		t.Fatalf("return type not Int32")
	}
	statics := mod.ModuleStaticExprs()
	if len(statics) != 1 {
		t.Fatalf("got %d static exprs, want 1", len(statics))
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	mod := mustParse(t, "package main  fun test(a Int32, b Int32) -> Int32 { ret a + b * 2 }")
	fn := mod.Node(mod.ModuleFuncs()[0])
	body := mod.Node(fn.Then)
	ret := mod.Node(body.Children[0])
	add := mod.Node(ret.Target)
	if add.Kind != ast.KindBinary {
		t.Fatalf("expected top-level Binary(+), got %v", add.Kind)
	}
	mul := mod.Node(add.Right)
	if mul.Kind != ast.KindBinary {
		t.Fatalf("expected nested Binary(*) on the right, got %v", mul.Kind)
	}
}

func TestParseIfElse(t *testing.T) {
	mod := mustParse(t, `package main
fun test(a Int32, b Int32) -> Bool { if a == b { ret true } ret false }`)
	fn := mod.Node(mod.ModuleFuncs()[0])
	body := mod.Node(fn.Then)
	ifNode := mod.Node(body.Children[0])
	if ifNode.Kind != ast.KindIf {
		t.Fatalf("expected If, got %v", ifNode.Kind)
	}
	if mod.Valid(ifNode.Else) {
		t.Fatalf("expected no else block")
	}
}

func TestParseGenericCallVsRelational(t *testing.T) {
	mod := mustParse(t, `package main
fun test() -> Any { ret ccall<Int32>("foo") }`)
	fn := mod.Node(mod.ModuleFuncs()[0])
	body := mod.Node(fn.Then)
	ret := mod.Node(body.Children[0])
	call := mod.Node(ret.Target)
	if call.Kind != ast.KindCall {
		t.Fatalf("expected Call, got %v", call.Kind)
	}
	if !mod.Valid(call.Type) {
		t.Fatalf("expected a resolved type-argument list on the call")
	}
}

func TestParseRelationalNotConfusedWithGeneric(t *testing.T) {
	mod := mustParse(t, `package main
fun test(a Int32, b Int32) -> Bool { ret a < b }`)
	fn := mod.Node(mod.ModuleFuncs()[0])
	body := mod.Node(fn.Then)
	ret := mod.Node(body.Children[0])
	bin := mod.Node(ret.Target)
	if bin.Kind != ast.KindBinary {
		t.Fatalf("expected Binary(<), got %v", bin.Kind)
	}
}

func TestParseMethodCallReference(t *testing.T) {
	mod := mustParse(t, `package main
fun test(a Int32) -> Int32 { println(a.toString()); ret 1 }`)
	fn := mod.Node(mod.ModuleFuncs()[0])
	body := mod.Node(fn.Then)
	exprStmt := mod.Node(body.Children[0])
	printlnCall := mod.Node(exprStmt.Target)
	if printlnCall.Kind != ast.KindCall || printlnCall.Name != "println" {
		t.Fatalf("expected println call, got %v %q", printlnCall.Kind, printlnCall.Name)
	}
	arg := mod.Node(printlnCall.Children[0])
	if arg.Kind != ast.KindReference {
		t.Fatalf("expected Reference for a.toString(), got %v", arg.Kind)
	}
}

func TestParseArrayLiteral(t *testing.T) {
	mod := mustParse(t, `package main
fun test() -> []Int32 { ret [1, 2, 3] }`)
	fn := mod.Node(mod.ModuleFuncs()[0])
	body := mod.Node(fn.Then)
	ret := mod.Node(body.Children[0])
	lit := mod.Node(ret.Target)
	if lit.Kind != ast.KindArrayLit || len(lit.Children) != 3 {
		t.Fatalf("expected ArrayLit with 3 elements, got %v (%d)", lit.Kind, len(lit.Children))
	}
}

func TestParseRetRequiresPrecedingNewline(t *testing.T) {
	_, err := Parse("test.roc", `package main
fun test() -> Int32 { println("a") ret 3 }`)
	if err == nil {
		t.Fatalf("expected a syntax error for ret not separated from the prior statement")
	}
}

func TestParseReturnTypeWithoutArrowIsRejected(t *testing.T) {
	_, err := Parse("test.roc", `package main
fun test() Int32 { ret 1 }`)
	if err == nil {
		t.Fatalf("expected a syntax error for a return type not preceded by ->")
	}
}

func TestGetTextRoundTrip(t *testing.T) {
	src := "package main  fun test() -> Int32 { ret 3 }"
	mod := mustParse(t, src)
	fn := mod.ModuleFuncs()[0]
	text := mod.GetText(fn)
	if text != "fun test() -> Int32 { ret 3 }" {
		t.Fatalf("GetText() = %q", text)
	}
}
