package parser

import (
	"strconv"

	"github.com/roclang/rocc/internal/ast"
	"github.com/roclang/rocc/internal/token"
)

// precedence levels, lowest to highest. Assignment is
// listed for completeness but rocc's surface grammar has no `=` expression
// form wired in yet beyond parameter declarations, so assignment sits at
// the bottom of the table unused: binaryPrec has no entry for `=`.
const (
	precLowest = iota
	precAssign
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precUnaryNot
	precExponent
)

var binaryPrec = map[token.Kind]int{
	token.KwOr:    precOr,
	token.KwAnd:   precAnd,
	token.Eq:      precEquality,
	token.NotEq:   precEquality,
	token.Lt:      precRelational,
	token.LtEq:    precRelational,
	token.Gt:      precRelational,
	token.GtEq:    precRelational,
	token.Plus:    precAdditive,
	token.Minus:   precAdditive,
	token.Star:    precMultiplicative,
	token.Slash:   precMultiplicative,
	token.Percent: precMultiplicative,
}

// rightAssoc holds the operators that associate right-to-left. Exponent
// would be the only one, but rocc has no `**` token in its lexer, so
// this set is currently empty but left named for where a future exponent
// operator would register.
var rightAssoc = map[token.Kind]bool{}

// parseExpr parses a binary expression via operator-precedence climbing.
func (p *Parser) parseExpr() ast.NodeID {
	return p.parseBinary(precLowest)
}

func (p *Parser) parseBinary(minPrec int) ast.NodeID {
	left := p.parseUnary()

	for {
		prec, ok := binaryPrec[p.cur.Kind]
		if !ok || prec <= minPrec {
			break
		}
		opTok := p.cur
		p.advance()
		nextMin := prec
		if rightAssoc[opTok.Kind] {
			nextMin = prec - 1
		}
		right := p.parseBinary(nextMin)
		left = p.node(ast.Node{
			Kind:  ast.KindBinary,
			Op:    opTok.Kind,
			Left:  left,
			Right: right,
			Span:  ast.Span{Start: p.mod.Node(left).Span.Start, End: p.mod.Node(right).Span.End},
		})
	}
	return left
}

// parseUnary handles the unary-not precedence level.
func (p *Parser) parseUnary() ast.NodeID {
	if p.cur.Kind == token.Bang || p.cur.Kind == token.Minus {
		start := p.cur.Pos
		opTok := p.cur
		p.advance()
		operand := p.parseUnary()
		return p.node(ast.Node{
			Kind: ast.KindUnary,
			Op:   opTok.Kind,
			Left: operand,
			Span: ast.Span{Start: start, End: p.mod.Node(operand).Span.End},
		})
	}
	return p.parsePostfix()
}

// parsePostfix handles `.NAME(args)` chains on a primary expression,
// producing KindReference nodes wrapping a KindCall.
func (p *Parser) parsePostfix() ast.NodeID {
	expr := p.parsePrimary()
	for p.cur.Kind == token.Dot {
		start := p.mod.Node(expr).Span.Start
		p.advance() // '.'
		name := p.expect(token.Ident)
		args := p.parseCallArgs()
		call := p.node(ast.Node{
			Kind:     ast.KindCall,
			Name:     name.Text,
			Children: args,
			Span:     ast.Span{Start: name.Pos, End: p.lastEnd},
		})
		expr = p.node(ast.Node{
			Kind: ast.KindReference,
			Left: expr,
			Target: call,
			Span: ast.Span{Start: start, End: p.lastEnd},
		})
	}
	return expr
}

// parsePrimary parses literals, identifiers, bare calls, parenthesized
// expressions, and array literals.
func (p *Parser) parsePrimary() ast.NodeID {
	tok := p.cur
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.failAt(tok, "malformed integer literal")
		}
		return p.node(ast.Node{Kind: ast.KindIntLit, IntVal: v, Span: ast.Span{Start: tok.Pos, End: tok.End}})

	case token.FloatLit:
		p.advance()
		v, err := strconv.ParseFloat(stripFloatSuffix(tok.Text), 64)
		if err != nil {
			p.failAt(tok, "malformed floating literal")
		}
		return p.node(ast.Node{Kind: ast.KindFloatLit, FloatVal: v, Span: ast.Span{Start: tok.Pos, End: tok.End}})

	case token.StringFrag:
		p.advance()
		return p.node(ast.Node{Kind: ast.KindStringLit, StrVal: tok.Text, Span: ast.Span{Start: tok.Pos, End: tok.End}})

	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.node(ast.Node{Kind: ast.KindBoolLit, BoolVal: tok.Kind == token.KwTrue, Span: ast.Span{Start: tok.Pos, End: tok.End}})

	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen)
		return inner

	case token.LBracket:
		return p.parseArrayLit()

	case token.Ident:
		return p.parseIdentOrCall()

	default:
		p.failAt(tok, "expected an expression")
		panic("unreachable")
	}
}

func (p *Parser) parseArrayLit() ast.NodeID {
	start := p.cur.Pos
	p.expect(token.LBracket)
	var elems []ast.NodeID
	for p.cur.Kind != token.RBracket {
		elems = append(elems, p.parseExpr())
		if p.cur.Kind == token.Comma {
			p.advance()
		} else {
			break
		}
	}
	end := p.cur.End
	p.expect(token.RBracket)
	return p.node(ast.Node{Kind: ast.KindArrayLit, Children: elems, Span: ast.Span{Start: start, End: end}})
}

// parseIdentOrCall resolves the `<` ambiguity: a `<` following an
// identifier in call position is treated as a type-argument list unless the
// token after the matched `>` is not `(`, in which case the parser rewinds
// and treats `<` as the relational operator. The implementation speculates
// by snapshotting, attempting the type-arg parse, and checking the
// follow-token; on failure (or wrong follow-token) it restores and falls
// back to a bare identifier/relational parse.
func (p *Parser) parseIdentOrCall() ast.NodeID {
	name := p.cur
	p.advance()

	var typeArgs []ast.NodeID
	if p.cur.Kind == token.Lt {
		if args, ok := p.tryParseTypeArgs(); ok {
			typeArgs = args
		}
	}

	if p.cur.Kind == token.LParen {
		args := p.parseCallArgs()
		end := p.lastEnd
		call := p.node(ast.Node{
			Kind:     ast.KindCall,
			Name:     name.Text,
			Children: args,
			Type:     typeArgsNode(p, typeArgs, name),
			Span:     ast.Span{Start: name.Pos, End: end},
		})
		return call
	}

	// Not a call: plain identifier reference (LocalAccess candidate for the
	// symbol resolver). Any speculative type-arg parse was already
	// rewound by tryParseTypeArgs in this branch.
	return p.node(ast.Node{Kind: ast.KindIdent, Name: name.Text, Span: ast.Span{Start: name.Pos, End: name.End}})
}

// typeArgsNode wraps a parsed `<T, ...>` list into a KindTypeParams node, or
// returns InvalidID if none were parsed.
func typeArgsNode(p *Parser, typeArgs []ast.NodeID, name token.Token) ast.NodeID {
	if len(typeArgs) == 0 {
		return ast.InvalidID
	}
	return p.node(ast.Node{Kind: ast.KindTypeParams, Children: typeArgs, Span: ast.Span{Start: name.Pos, End: p.lastEnd}})
}

// tryParseTypeArgs speculatively parses `<TYPE, ...>` and commits only if
// the token immediately following the matched `>` is `(`.
func (p *Parser) tryParseTypeArgs() ([]ast.NodeID, bool) {
	save := p.snapshot()
	errMark := len(p.Errors)

	ok := false
	var args []ast.NodeID
	func() {
		defer func() {
			if r := recover(); r != nil {
				ok = false
			}
		}()
		p.advance() // '<'
		for {
			args = append(args, p.parseTypeExpr())
			if p.cur.Kind == token.Comma {
				p.advance()
				continue
			}
			break
		}
		if p.cur.Kind != token.Gt {
			ok = false
			return
		}
		p.advance() // '>'
		ok = p.cur.Kind == token.LParen
	}()

	if !ok {
		p.Errors = p.Errors[:errMark]
		p.restore(save)
		return nil, false
	}
	return args, true
}

// parseCallArgs parses a parenthesized, comma-separated argument list.
// Inside the list, expressions terminate at `,` or `)`.
func (p *Parser) parseCallArgs() []ast.NodeID {
	p.expect(token.LParen)
	var args []ast.NodeID
	for p.cur.Kind != token.RParen {
		args = append(args, p.parseExpr())
		if p.cur.Kind == token.Comma {
			p.advance()
		} else {
			break
		}
	}
	p.lastEnd = p.cur.End
	p.expect(token.RParen)
	return args
}

func stripFloatSuffix(s string) string {
	if len(s) > 0 && (s[len(s)-1] == 'd' || s[len(s)-1] == 'D') {
		return s[:len(s)-1]
	}
	return s
}
