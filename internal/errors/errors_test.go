package errors

import (
	"strings"
	"testing"

	"github.com/roclang/rocc/internal/token"
)

func TestCompilerErrorFormat(t *testing.T) {
	tests := []struct {
		name        string
		kind        Kind
		pos         token.Position
		message     string
		source      string
		file        string
		wantContain []string
	}{
		{
			name:    "syntax error with file",
			kind:    KindSyntax,
			pos:     token.Position{Line: 1, Column: 10},
			message: "unexpected token",
			source:  "fun test() -> Int32 { ret }",
			file:    "t.roc",
			wantContain: []string{
				"syntax error in t.roc:1:10",
				"   1 | fun test() -> Int32 { ret }",
				"^",
				"unexpected token",
			},
		},
		{
			name:    "semantic error without file",
			kind:    KindSemantic,
			pos:     token.Position{Line: 2, Column: 5},
			message: "Invalid operation",
			source:  "line1\nline2 bad",
			file:    "",
			wantContain: []string{
				"semantic error at line 2:5",
				"   2 | line2 bad",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &CompilerError{Kind: tt.kind, Message: tt.message, Pos: tt.pos, Source: tt.source, File: tt.file}
			got := e.Format(false)
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("Format() = %q, want substring %q", got, want)
				}
			}
		})
	}
}

func TestBagFormatsMultipleErrors(t *testing.T) {
	var bag Bag
	bag.Add(&CompilerError{Kind: KindSyntax, Message: "first", Pos: token.Position{Line: 1, Column: 1}})
	bag.Add(&CompilerError{Kind: KindSemantic, Message: "second", Pos: token.Position{Line: 2, Column: 1}})

	if !bag.HasErrors() {
		t.Fatalf("expected HasErrors to be true")
	}
	if len(bag.Errors()) != 2 {
		t.Fatalf("expected 2 accumulated errors, got %d", len(bag.Errors()))
	}
	out := bag.Format(false)
	if !strings.Contains(out, "2 error(s)") {
		t.Errorf("expected the bag header to report 2 errors, got %q", out)
	}
}
