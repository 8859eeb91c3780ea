package errors

import (
	"github.com/roclang/rocc/internal/lexer"
	"github.com/roclang/rocc/internal/parser"
	"github.com/roclang/rocc/internal/semantic"
	"github.com/roclang/rocc/internal/symbols"
)

// FromLexerError converts a lexer.Error into the shared diagnostic shape.
func FromLexerError(e *lexer.Error, source, file string) *CompilerError {
	return &CompilerError{Kind: KindSyntax, Message: e.Message, Pos: e.Pos, Source: source, File: file}
}

// FromSyntaxError converts a parser.SyntaxError into the shared diagnostic
// shape, using its Start position for the caret.
func FromSyntaxError(e *parser.SyntaxError, source string) *CompilerError {
	return &CompilerError{Kind: KindSyntax, Message: e.Message, Pos: e.Start, Source: source, File: e.File}
}

// FromSymbolError converts a symbols.Error into the shared diagnostic shape.
func FromSymbolError(e *symbols.Error, source, file string) *CompilerError {
	return &CompilerError{Kind: KindSemantic, Message: "unknown symbol " + quote(e.Name), Pos: e.Pos, Source: source, File: file}
}

// FromSemanticError converts a semantic.Error into the shared diagnostic
// shape.
func FromSemanticError(e *semantic.Error, source, file string) *CompilerError {
	return &CompilerError{Kind: KindSemantic, Message: e.Message, Pos: e.Pos, Source: source, File: file}
}

func quote(s string) string {
	return "\"" + s + "\""
}
