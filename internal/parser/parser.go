// Package parser implements rocc's hand-written recursive-descent parser
// with operator-precedence climbing.
package parser

import (
	"fmt"

	"github.com/roclang/rocc/internal/ast"
	"github.com/roclang/rocc/internal/lexer"
	"github.com/roclang/rocc/internal/token"
)

// SyntaxError is the parser's single non-recoverable diagnostic kind.
// The first SyntaxError aborts the current module.
type SyntaxError struct {
	File       string
	Start, End token.Position
	Message    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%s: %s", e.File, e.Start, e.Message)
}

// Parser consumes a token stream and builds a Module arena.
type Parser struct {
	lex  *lexer.Lexer
	mod  *ast.Module
	file string

	cur, nxt token.Token
	haveNxt  bool
	lastEnd  int // End offset of the most recently consumed token

	// Accumulated syntax errors discovered before the first abort (the
	// driver may inspect this list even though only the first one stops
	// parsing).
	Errors []*SyntaxError
}

// Parse parses src (from file) into a Module. It returns the first
// SyntaxError encountered, if any; the returned Module is valid only when
// err is nil.
func Parse(file, src string) (mod *ast.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()

	p := &Parser{
		lex:  lexer.New(src),
		file: file,
	}
	p.mod = ast.NewModule(moduleNameFromFile(file), file, src)
	p.advance()
	mod = p.parseModule()
	return mod, nil
}

func moduleNameFromFile(file string) string {
	base := file
	for i := len(file) - 1; i >= 0; i-- {
		if file[i] == '/' || file[i] == '\\' {
			base = file[i+1:]
			break
		}
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i]
		}
	}
	return base
}

// advance skips whitespace/comment tokens (never semantically meaningful)
// but keeps Newline tokens, which matter at statement boundaries.
func (p *Parser) advance() {
	p.lastEnd = p.cur.End
	if p.haveNxt {
		p.cur = p.nxt
		p.haveNxt = false
	} else {
		p.cur = p.nextSignificant()
	}
}

func (p *Parser) peek() token.Token {
	if !p.haveNxt {
		p.nxt = p.nextSignificant()
		p.haveNxt = true
	}
	return p.nxt
}

func (p *Parser) nextSignificant() token.Token {
	for {
		tok := p.lex.Advance()
		if tok.Kind == token.Whitespace {
			continue
		}
		if err := p.lex.Err(); err != nil {
			p.fail(err.Pos, err.Pos, err.Message)
		}
		return tok
	}
}

func (p *Parser) fail(start, end token.Position, msg string) {
	se := &SyntaxError{File: p.file, Start: start, End: end, Message: msg}
	p.Errors = append(p.Errors, se)
	panic(se)
}

func (p *Parser) failAt(tok token.Token, msg string) {
	end := token.Position{Line: tok.Pos.Line, Column: tok.Pos.Column + len([]rune(tok.Text)), Offset: tok.End}
	p.fail(tok.Pos, end, msg)
}

func (p *Parser) expect(kind token.Kind) token.Token {
	if p.cur.Kind != kind {
		p.failAt(p.cur, fmt.Sprintf("expected %s, got %s %q", kind, p.cur.Kind, p.cur.Text))
	}
	tok := p.cur
	p.advance()
	return tok
}

// skipNewlines consumes zero or more Newline/Semicolon separators, reporting
// whether it consumed at least one.
func (p *Parser) skipNewlines() bool {
	consumed := false
	for p.cur.Kind == token.Newline || p.cur.Kind == token.Semicolon {
		p.advance()
		consumed = true
	}
	return consumed
}

func (p *Parser) node(n ast.Node) ast.NodeID {
	return p.mod.New(n)
}

// parseModule parses a compilation unit: a leading `package` declaration is
// required, then zero or more of import declaration, function declaration,
// or static expression.
func (p *Parser) parseModule() *ast.Module {
	start := p.cur.Pos
	p.skipNewlines()
	if p.cur.Kind != token.KwPackage {
		p.failAt(p.cur, "expected leading 'package' declaration")
	}
	p.advance()
	p.expect(token.Ident) // package name, not otherwise tracked

	var children []ast.NodeID
	p.skipNewlines()
	for p.cur.Kind != token.EOF {
		switch p.cur.Kind {
		case token.KwImport:
			children = append(children, p.parseImport())
		case token.KwFun:
			children = append(children, p.parseFuncDecl())
		default:
			children = append(children, p.parseExprStmt())
		}
		p.skipNewlines()
	}
	if p.cur.Text != "" {
		p.failAt(p.cur, fmt.Sprintf("unexpected character %q", p.cur.Text))
	}

	root := p.node(ast.Node{
		Kind:     ast.KindModule,
		Span:     ast.Span{Start: start, End: p.cur.Pos.Offset},
		Children: children,
	})
	p.mod.Root = root
	return p.mod
}

func (p *Parser) parseImport() ast.NodeID {
	start := p.cur.Pos
	p.advance() // 'import'
	name := p.expect(token.Ident)
	return p.node(ast.Node{
		Kind: ast.KindImport,
		Name: name.Text,
		Span: ast.Span{Start: start, End: name.End},
	})
}

// parseFuncDecl parses `fun NAME ( param, ... ) [-> TYPE] { body }`.
// Return-type omission implies Unit.
func (p *Parser) parseFuncDecl() ast.NodeID {
	start := p.cur.Pos
	p.advance() // 'fun'
	name := p.expect(token.Ident)

	p.expect(token.LParen)
	var params []ast.NodeID
	for p.cur.Kind != token.RParen {
		params = append(params, p.parseParam())
		if p.cur.Kind == token.Comma {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RParen)

	retType := ast.InvalidID
	if p.cur.Kind == token.Arrow {
		p.advance()
		retType = p.parseTypeExpr()
	}

	body := p.parseBlock()

	return p.node(ast.Node{
		Kind:     ast.KindFuncDecl,
		Name:     name.Text,
		Children: params,
		Type:     retType,
		Then:     body,
		Span:     ast.Span{Start: start, End: p.mod.Node(body).Span.End},
	})
}

// parseParam parses a `NAME TYPE` pair.
func (p *Parser) parseParam() ast.NodeID {
	start := p.cur.Pos
	name := p.expect(token.Ident)
	typ := p.parseTypeExpr()
	return p.node(ast.Node{
		Kind: ast.KindParam,
		Name: name.Text,
		Type: typ,
		Span: ast.Span{Start: start, End: p.mod.Node(typ).Span.End},
	})
}

// parseTypeExpr parses a bare identifier type (Int32, i32, ...) or
// `[]TYPE` for arrays. Generic brackets on a call-site identifier are
// handled separately in parseIdentOrCall/tryParseTypeArgs, not here.
func (p *Parser) parseTypeExpr() ast.NodeID {
	start := p.cur.Pos
	if p.cur.Kind == token.LBracket {
		p.advance()
		p.expect(token.RBracket)
		elem := p.parseTypeExpr()
		return p.node(ast.Node{
			Kind: ast.KindTypeArray,
			Elem: elem,
			Span: ast.Span{Start: start, End: p.mod.Node(elem).Span.End},
		})
	}
	name := p.expect(token.Ident)
	return p.node(ast.Node{
		Kind: ast.KindTypeName,
		Name: name.Text,
		Span: ast.Span{Start: start, End: name.End},
	})
}

// parseBlock parses `{ stmt* }`, statements separated by newlines
// (semicolons optionally accepted).
func (p *Parser) parseBlock() ast.NodeID {
	start := p.cur.Pos
	p.expect(token.LBrace)
	p.skipNewlines()
	var stmts []ast.NodeID
	for p.cur.Kind != token.RBrace && p.cur.Kind != token.EOF {
		stmt := p.parseStatement()
		stmts = append(stmts, stmt)
		sep := p.skipNewlines()
		// A statement that ends with its own closing brace (if/while/for)
		// counts as separated from a following ret.
		k := p.mod.Node(stmt).Kind
		endsInBlock := k == ast.KindIf || k == ast.KindWhile || k == ast.KindFor
		if !sep && !endsInBlock && p.cur.Kind == token.KwRet {
			p.failAt(p.cur, "expected new line before ret")
		}
	}
	end := p.cur
	p.expect(token.RBrace)
	return p.node(ast.Node{
		Kind:     ast.KindBlock,
		Children: stmts,
		Span:     ast.Span{Start: start, End: end.End},
	})
}
