package lexer

import (
	"testing"

	"github.com/roclang/rocc/internal/token"
)

func TestPeekAdvance(t *testing.T) {
	l := New("fun test")
	if got := l.Peek().Kind; got != token.KwFun {
		t.Fatalf("Peek() kind = %v, want KwFun", got)
	}
	if got := l.Peek().Kind; got != token.KwFun {
		t.Fatalf("second Peek() kind = %v, want KwFun (cached)", got)
	}
	tok := l.Advance()
	if tok.Kind != token.KwFun {
		t.Fatalf("Advance() kind = %v, want KwFun", tok.Kind)
	}
	if got := l.Peek().Kind; got != token.Whitespace {
		t.Fatalf("Peek() after advance kind = %v, want Whitespace", got)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"fun", token.KwFun},
		{"ret", token.KwRet},
		{"if", token.KwIf},
		{"else", token.KwElse},
		{"while", token.KwWhile},
		{"for", token.KwFor},
		{"true", token.KwTrue},
		{"false", token.KwFalse},
		{"and", token.KwAnd},
		{"or", token.KwOr},
		{"import", token.KwImport},
		{"package", token.KwPackage},
		{"struct", token.KwStruct},
		{"trait", token.KwTrait},
		{"funky", token.Ident},
		{"Int32", token.Ident},
		{"_foo", token.Ident},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Advance()
		if tok.Kind != tt.kind || tok.Text != tt.input {
			t.Errorf("New(%q): got %s, want kind=%v text=%q", tt.input, tok, tt.kind, tt.input)
		}
	}
}

func TestTwoCharOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"==", token.Eq},
		{"!=", token.NotEq},
		{"<=", token.LtEq},
		{">=", token.GtEq},
		{"->", token.Arrow},
		{"<", token.Lt},
		{">", token.Gt},
		{"=", token.Assign},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Advance()
		if tok.Kind != tt.kind {
			t.Errorf("New(%q): kind = %v, want %v", tt.input, tok.Kind, tt.kind)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"123", token.IntLit},
		{"0", token.IntLit},
		{"1.5", token.FloatLit},
		{"1d", token.FloatLit},
		{"1.5e10", token.FloatLit},
		{"1.5E-5", token.FloatLit},
		{"2e+3", token.FloatLit},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Advance()
		if tok.Kind != tt.kind || tok.Text != tt.input {
			t.Errorf("New(%q): got kind=%v text=%q, want kind=%v text=%q", tt.input, tok.Kind, tok.Text, tt.kind, tt.input)
		}
		if l.Err() != nil {
			t.Errorf("New(%q): unexpected error %v", tt.input, l.Err())
		}
	}
}

func TestMalformedExponentFails(t *testing.T) {
	l := New("1e")
	l.Advance()
	if l.Err() == nil {
		t.Fatalf("expected lexer error for dangling exponent")
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.Advance()
	if tok.Kind != token.StringFrag || tok.Text != "hello world" {
		t.Fatalf("got %s, want StringFrag(\"hello world\")", tok)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"hello`)
	l.Advance()
	if l.Err() == nil {
		t.Fatalf("expected lexer error for unterminated string")
	}
}

func TestNewlineSignificant(t *testing.T) {
	l := New("ret 1\nret 2")
	kinds := []token.Kind{}
	for {
		tok := l.Advance()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	foundNewline := false
	for _, k := range kinds {
		if k == token.Newline {
			foundNewline = true
		}
	}
	if !foundNewline {
		t.Fatalf("expected a Newline token in stream, got %v", kinds)
	}
}

func TestOffsetsMonotonic(t *testing.T) {
	l := New("fun test ( a ) { ret a }")
	last := -1
	for {
		tok := l.Advance()
		if tok.Pos.Offset < last {
			t.Fatalf("offsets not monotonic: %d after %d", tok.Pos.Offset, last)
		}
		last = tok.Pos.Offset
		if tok.Kind == token.EOF {
			break
		}
	}
}
