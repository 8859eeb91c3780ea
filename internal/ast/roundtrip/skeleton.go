// Package roundtrip implements the round-trip property: a module's
// getText() re-parses to an equivalent AST up to whitespace-token
// identity. Rather than re-running the hand-written recursive-descent
// parser against its own output (which would never catch a bug the parser
// and its own getText() slicing share), this package re-tokenizes the
// reconstructed text with an independent lexer,
// github.com/alecthomas/participle/v2/lexer, built as a standalone
// lexer.Definition ahead of parsing. Walking that independent token stream
// re-derives a structural skeleton — package name, and each top-level item's kind,
// name, and parameter count — that the hand-written AST is compared
// against. Full expression grammar (precedence climbing, the `<`
// generic-vs-relational disambiguation) stays exclusively the hand-written
// parser's job; this package never re-implements it.
package roundtrip

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var roccLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Keyword", Pattern: `\b(package|fun)\b`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "Punct", Pattern: `[()\[\],;:.+\-*/%=<>!&|]`},
})

// Item is one top-level construct the skeleton walk recognized: either a
// function declaration (Name + ParamCount set, HasReturn recorded) or an
// opaque static top-level statement (IsStatic true).
type Item struct {
	IsStatic   bool
	Name       string
	ParamCount int
	HasReturn  bool
}

// Skeleton is the package-level structural shape independently re-derived
// from source text.
type Skeleton struct {
	Package string
	Items   []Item
}

// Parse tokenizes source with participle's lexer and walks the resulting
// stream to build a Skeleton, tracking brace depth to skip over function
// bodies (including nested if/while blocks) without re-parsing them.
func Parse(source string) (*Skeleton, error) {
	lx, err := roccLexer.Lex("", strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("roundtrip: lexer init: %w", err)
	}

	var toks []lexer.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, fmt.Errorf("roundtrip: lex error: %w", err)
		}
		if tok.EOF() {
			break
		}
		if tok.Type == roccLexer.Symbols()["Comment"] || tok.Type == roccLexer.Symbols()["Whitespace"] {
			continue
		}
		toks = append(toks, tok)
	}

	w := &walker{toks: toks}
	return w.parseSkeleton()
}

type walker struct {
	toks []lexer.Token
	pos  int
}

func (w *walker) peek() (lexer.Token, bool) {
	if w.pos >= len(w.toks) {
		return lexer.Token{}, false
	}
	return w.toks[w.pos], true
}

func (w *walker) next() (lexer.Token, bool) {
	tok, ok := w.peek()
	if ok {
		w.pos++
	}
	return tok, ok
}

func (w *walker) is(value string) bool {
	tok, ok := w.peek()
	return ok && tok.Value == value
}

func (w *walker) parseSkeleton() (*Skeleton, error) {
	if !w.is("package") {
		return nil, fmt.Errorf("roundtrip: expected leading 'package' declaration")
	}
	w.next()
	nameTok, ok := w.next()
	if !ok {
		return nil, fmt.Errorf("roundtrip: expected a package name")
	}
	s := &Skeleton{Package: nameTok.Value}

	for {
		if _, ok := w.peek(); !ok {
			break
		}
		item, err := w.parseItem()
		if err != nil {
			return nil, err
		}
		s.Items = append(s.Items, item)
	}
	return s, nil
}

func (w *walker) parseItem() (Item, error) {
	if w.is("fun") {
		return w.parseFunc()
	}
	return w.skipStatic(), nil
}

func (w *walker) parseFunc() (Item, error) {
	w.next() // "fun"
	nameTok, ok := w.next()
	if !ok {
		return Item{}, fmt.Errorf("roundtrip: expected a function name after 'fun'")
	}
	item := Item{Name: nameTok.Value}

	if !w.is("(") {
		return Item{}, fmt.Errorf("roundtrip: expected '(' in function %q's parameter list", item.Name)
	}
	w.next()
	for !w.is(")") {
		tok, ok := w.next()
		if !ok {
			return Item{}, fmt.Errorf("roundtrip: unterminated parameter list in function %q", item.Name)
		}
		if tok.Value == "," {
			continue
		}
		// One parameter is a NAME TYPE pair: tok is the NAME, and the type
		// identifier right after it is consumed here in the same iteration,
		// so the count increments once per pair.
		if nextTok, ok := w.peek(); ok && nextTok.Value != "," && nextTok.Value != ")" {
			w.next() // consume the type identifier
		}
		item.ParamCount++
	}
	w.next() // ")"

	if w.is("->") {
		w.next()
		w.next() // return-type identifier
		item.HasReturn = true
	}

	if !w.is("{") {
		return Item{}, fmt.Errorf("roundtrip: expected '{' to open function %q's body", item.Name)
	}
	w.skipBalancedBraces()
	return item, nil
}

// skipBalancedBraces consumes a "{ ... }" span, tracking nested braces from
// if/while/for bodies so the walker resumes exactly after the function's
// closing brace.
func (w *walker) skipBalancedBraces() {
	depth := 0
	for {
		tok, ok := w.next()
		if !ok {
			return
		}
		switch tok.Value {
		case "{":
			depth++
		case "}":
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// skipStatic consumes tokens up to (but not including) the next "fun"
// keyword or end of input, representing one opaque static top-level
// statement.
func (w *walker) skipStatic() Item {
	for {
		tok, ok := w.peek()
		if !ok || tok.Value == "fun" {
			break
		}
		w.next()
	}
	return Item{IsStatic: true}
}
