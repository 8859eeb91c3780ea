package parser

import (
	"github.com/roclang/rocc/internal/ast"
	"github.com/roclang/rocc/internal/lexer"
	"github.com/roclang/rocc/internal/token"
)

// parseStatement dispatches on the current token's kind.
func (p *Parser) parseStatement() ast.NodeID {
	switch p.cur.Kind {
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwRet:
		return p.parseReturn()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseExprStmt() ast.NodeID {
	start := p.cur.Pos
	expr := p.parseExpr()
	return p.node(ast.Node{
		Kind:   ast.KindExprStmt,
		Target: expr,
		Span:   ast.Span{Start: start, End: p.mod.Node(expr).Span.End},
	})
}

// parseReturn parses `ret [EXPR]`. A return/ret at statement scope requires
// a preceding newline or semicolon separator — it may not follow another
// statement on the same line, unless that statement ends with its own
// closing brace (if/while/for). parseBlock enforces this: it checks whether
// skipNewlines() actually consumed a separator before calling back into
// parseStatement for a `ret`, and rejects cases like `x ret y` where it
// didn't.
func (p *Parser) parseReturn() ast.NodeID {
	start := p.cur.Pos
	retTok := p.cur
	p.advance()

	value := ast.InvalidID
	end := retTok.End
	if p.cur.Kind != token.Newline && p.cur.Kind != token.Semicolon &&
		p.cur.Kind != token.RBrace && p.cur.Kind != token.EOF {
		value = p.parseExpr()
		end = p.mod.Node(value).Span.End
	}

	return p.node(ast.Node{
		Kind:   ast.KindReturn,
		Target: value,
		Span:   ast.Span{Start: start, End: end},
	})
}

func (p *Parser) parseIf() ast.NodeID {
	start := p.cur.Pos
	p.advance() // 'if'
	cond := p.parseExpr()
	thenBlk := p.parseBlock()
	elseBlk := ast.InvalidID
	end := p.mod.Node(thenBlk).Span.End

	// else may appear after the closing brace, possibly preceded by
	// newlines accepted between blocks.
	save := p.snapshot()
	p.skipNewlines()
	if p.cur.Kind == token.KwElse {
		p.advance()
		if p.cur.Kind == token.KwIf {
			elseBlk = p.parseIf()
		} else {
			elseBlk = p.parseBlock()
		}
		end = p.mod.Node(elseBlk).Span.End
	} else {
		p.restore(save)
	}

	return p.node(ast.Node{
		Kind: ast.KindIf,
		Cond: cond,
		Then: thenBlk,
		Else: elseBlk,
		Span: ast.Span{Start: start, End: end},
	})
}

func (p *Parser) parseWhile() ast.NodeID {
	start := p.cur.Pos
	p.advance() // 'while'
	cond := p.parseExpr()
	body := p.parseBlock()
	return p.node(ast.Node{
		Kind: ast.KindWhile,
		Cond: cond,
		Then: body,
		Span: ast.Span{Start: start, End: p.mod.Node(body).Span.End},
	})
}

// parseFor parses `for INIT; COND; STEP { ... }`.
func (p *Parser) parseFor() ast.NodeID {
	start := p.cur.Pos
	p.advance() // 'for'
	initStmt := p.parseExprStmt()
	p.expect(token.Semicolon)
	cond := p.parseExpr()
	p.expect(token.Semicolon)
	stepStmt := p.parseExprStmt()
	body := p.parseBlock()
	return p.node(ast.Node{
		Kind: ast.KindFor,
		Init: initStmt,
		Cond: cond,
		Step: stepStmt,
		Then: body,
		Span: ast.Span{Start: start, End: p.mod.Node(body).Span.End},
	})
}

// snapshot/restore support the bounded backtracking parseIf needs to
// tentatively look past a block for a trailing `else`.
type parserState struct {
	cur, nxt token.Token
	haveNxt  bool
	lexState lexer.State
}

func (p *Parser) snapshot() parserState {
	return parserState{cur: p.cur, nxt: p.nxt, haveNxt: p.haveNxt, lexState: p.lex.Save()}
}

func (p *Parser) restore(s parserState) {
	p.cur, p.nxt, p.haveNxt = s.cur, s.nxt, s.haveNxt
	p.lex.Restore(s.lexState)
}
