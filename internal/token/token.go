// Package token defines the lexical token vocabulary shared by the lexer
// and parser.
package token

import "fmt"

// Kind classifies a single token.
type Kind int

const (
	EOF Kind = iota
	Newline
	Whitespace

	Ident
	IntLit
	FloatLit
	StringFrag

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Dot
	Colon
	Semicolon

	// Operators
	Assign
	Plus
	Minus
	Star
	Slash
	Percent
	Bang
	Lt
	Gt
	Eq
	NotEq
	LtEq
	GtEq
	Arrow // ->

	// Keywords
	KwFun
	KwRet
	KwIf
	KwElse
	KwWhile
	KwFor
	KwTrue
	KwFalse
	KwAnd
	KwOr
	KwImport
	KwPackage
	KwStruct
	KwTrait
	// Reserved but currently unused keywords.
	KwMatch
	KwEnum
	KwConst
	KwBreak
	KwContinue
)

var names = map[Kind]string{
	EOF:        "EOF",
	Newline:    "NEWLINE",
	Whitespace: "WHITESPACE",
	Ident:      "IDENT",
	IntLit:     "INT",
	FloatLit:   "FLOAT",
	StringFrag: "STRING",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Comma:      ",",
	Dot:        ".",
	Colon:      ":",
	Semicolon:  ";",
	Assign:     "=",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Bang:       "!",
	Lt:         "<",
	Gt:         ">",
	Eq:         "==",
	NotEq:      "!=",
	LtEq:       "<=",
	GtEq:       ">=",
	Arrow:      "->",
	KwFun:      "fun",
	KwRet:      "ret",
	KwIf:       "if",
	KwElse:     "else",
	KwWhile:    "while",
	KwFor:      "for",
	KwTrue:     "true",
	KwFalse:    "false",
	KwAnd:      "and",
	KwOr:       "or",
	KwImport:   "import",
	KwPackage:  "package",
	KwStruct:   "struct",
	KwTrait:    "trait",
	KwMatch:    "match",
	KwEnum:     "enum",
	KwConst:    "const",
	KwBreak:    "break",
	KwContinue: "continue",
}

// Keywords maps exact source text to its keyword Kind. Keyword-vs-identifier
// disambiguation is exact-match only.
var Keywords = map[string]Kind{
	"fun":      KwFun,
	"ret":      KwRet,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"true":     KwTrue,
	"false":    KwFalse,
	"and":      KwAnd,
	"or":       KwOr,
	"import":   KwImport,
	"package":  KwPackage,
	"struct":   KwStruct,
	"trait":    KwTrait,
	"match":    KwMatch,
	"enum":     KwEnum,
	"const":    KwConst,
	"break":    KwBreak,
	"continue": KwContinue,
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Position locates a token in the original source buffer. Offsets are
// monotonically non-decreasing across a token stream.
type Position struct {
	Line   int
	Column int // rune count from the start of the line, 1-based
	Offset int // byte offset into the source buffer
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single classified lexeme plus its originating span.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
	// End is the offset one past the last byte of Text, used to render
	// getText() spans and caret-underline diagnostics.
	End int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Pos)
}

// IsKeyword reports whether text names a reserved keyword.
func IsKeyword(text string) (Kind, bool) {
	k, ok := Keywords[text]
	return k, ok
}
