package roundtrip_test

import (
	"testing"

	"github.com/roclang/rocc/internal/ast"
	"github.com/roclang/rocc/internal/ast/roundtrip"
	"github.com/roclang/rocc/internal/parser"
)

// astSkeleton mirrors roundtrip.Skeleton's shape using the hand-written
// parser's own AST, so the two can be compared directly — this is the
// round-trip property: getText() reparses (here: re-tokenizes,
// independently) to an equivalent structural skeleton. The hand-written AST
// does not record the package name; mod.Name is the module name derived
// from the file name, so the sources below are parsed as "main.roc" to
// match their `package main` declaration.
func astSkeleton(mod *ast.Module) *roundtrip.Skeleton {
	s := &roundtrip.Skeleton{Package: mod.Name}
	for _, c := range mod.Node(mod.Root).Children {
		n := mod.Node(c)
		if n.Kind == ast.KindFuncDecl {
			s.Items = append(s.Items, roundtrip.Item{
				Name:       n.Name,
				ParamCount: len(mod.FuncParams(c)),
				HasReturn:  mod.Valid(n.Type),
			})
		} else if n.Kind != ast.KindImport {
			s.Items = append(s.Items, roundtrip.Item{IsStatic: true})
		}
	}
	return s
}

func assertSkeletonsMatch(t *testing.T, got, want *roundtrip.Skeleton) {
	t.Helper()
	if got.Package != want.Package {
		t.Fatalf("package mismatch: got %q, want %q", got.Package, want.Package)
	}
	if len(got.Items) != len(want.Items) {
		t.Fatalf("item count mismatch: got %d, want %d", len(got.Items), len(want.Items))
	}
	for i := range got.Items {
		if got.Items[i] != want.Items[i] {
			t.Fatalf("item %d mismatch: got %+v, want %+v", i, got.Items[i], want.Items[i])
		}
	}
}

func TestRoundTripMatchesHandWrittenAST(t *testing.T) {
	sources := []string{
		"package main  fun test() -> Int32 { ret 3 } test()",
		"package main  fun test(a Int32, b Int32) -> Int32 { ret a + b }",
		"package main  fun test(a Int32, b Int32) -> Bool { if a == b { ret true } ret false }",
		`package main  fun test(a Int32) -> Int32 { println(a.toString()); ret 1 } test(123)`,
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			mod, err := parser.Parse("main.roc", src)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			reconstructed := mod.GetText(mod.Root)
			skel, err := roundtrip.Parse(reconstructed)
			if err != nil {
				t.Fatalf("roundtrip parse error: %v", err)
			}

			assertSkeletonsMatch(t, skel, astSkeleton(mod))
		})
	}
}

func TestRoundTripRejectsMissingPackageDecl(t *testing.T) {
	_, err := roundtrip.Parse("fun test() -> Int32 { ret 1 }")
	if err == nil {
		t.Fatalf("expected an error for source missing a package declaration")
	}
}
