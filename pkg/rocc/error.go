package rocc

import (
	"fmt"

	roccerrors "github.com/roclang/rocc/internal/errors"
)

// Error is a host-facing diagnostic: a flattened, dependency-free view of
// internal/errors.CompilerError, for callers who never import internal/.
type Error struct {
	Kind    string
	Message string
	Line    int
	Column  int
	File    string
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s in %s:%d:%d: %s", e.Kind, e.File, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
}

func convertErrors(errs []*roccerrors.CompilerError) []*Error {
	out := make([]*Error, len(errs))
	for i, e := range errs {
		out[i] = &Error{
			Kind:    e.Kind.String(),
			Message: e.Message,
			Line:    e.Pos.Line,
			Column:  e.Pos.Column,
			File:    e.File,
		}
	}
	return out
}
