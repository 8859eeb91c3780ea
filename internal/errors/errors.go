// Package errors renders rocc's diagnostics with source context: a file
// header, the offending line, and a caret pointing at the column.
package errors

import (
	"fmt"
	"strings"

	"github.com/roclang/rocc/internal/token"
)

// Kind classifies a diagnostic by which pipeline stage raised it: syntax errors come from the lexer/parser, semantic errors from
// symbol resolution or type checking, and internal errors are compiler
// bugs — invariant violations that should never reach a user.
type Kind int

const (
	KindSyntax Kind = iota
	KindSemantic
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindSemantic:
		return "semantic error"
	case KindInternal:
		return "internal error"
	}
	return "error"
}

// CompilerError is the shared diagnostic shape every pipeline stage
// converts into before it reaches a CLI or host API.
type CompilerError struct {
	Kind    Kind
	Message string
	Pos     token.Position
	Source  string
	File    string
}

func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders e with a `KIND in FILE:LINE:COL` header (for example
// `syntax error in t.roc:1:10`, or `KIND at line LINE:COL` when File is
// empty), then the source line behind a line-number gutter with a single
// caret under the start column. If color is true, ANSI codes highlight
// the caret and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", e.Kind, e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column)
	}

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(gutter)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// Bag accumulates diagnostics across a compilation so the pipeline can
// report every error found rather than stopping at the first.
type Bag struct {
	errs []*CompilerError
}

// Add appends err to the bag.
func (b *Bag) Add(err *CompilerError) {
	b.errs = append(b.errs, err)
}

// HasErrors reports whether the bag holds any diagnostics.
func (b *Bag) HasErrors() bool {
	return len(b.errs) > 0
}

// Errors returns the accumulated diagnostics.
func (b *Bag) Errors() []*CompilerError {
	return b.errs
}

// Format renders every error in the bag, numbered when there's more than
// one.
func (b *Bag) Format(color bool) string {
	if len(b.errs) == 0 {
		return ""
	}
	if len(b.errs) == 1 {
		return b.errs[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "compilation failed with %d error(s):\n\n", len(b.errs))
	for i, e := range b.errs {
		fmt.Fprintf(&sb, "[%d of %d]\n", i+1, len(b.errs))
		sb.WriteString(e.Format(color))
		if i < len(b.errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
