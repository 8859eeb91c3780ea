// Package symbols implements binding every identifier use inside a
// function body to its enclosing function's parameter/local table,
// rewriting resolved uses into LocalAccess nodes.
package symbols

import (
	"fmt"

	"github.com/roclang/rocc/internal/ast"
	"github.com/roclang/rocc/internal/token"
)

// Error is an "unknown symbol" resolution error.
type Error struct {
	Name string
	Pos  token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("unknown symbol %q at %s", e.Name, e.Pos)
}

// Table is a function's ordered parameter/local slot list plus a
// name→slot map. Resolution never overwrites an existing binding;
// shadowing is a compile error.
type Table struct {
	Names []string
	byName map[string]int
}

// NewTable builds a Table from a function's declared parameters, in order.
func NewTable(paramNames []string) (*Table, error) {
	t := &Table{byName: map[string]int{}}
	for _, name := range paramNames {
		if _, dup := t.byName[name]; dup {
			return nil, fmt.Errorf("duplicate parameter %q (shadowing is a compile error)", name)
		}
		t.byName[name] = len(t.Names)
		t.Names = append(t.Names, name)
	}
	return t, nil
}

// Slot returns the slot index for name, if bound.
func (t *Table) Slot(name string) (int, bool) {
	slot, ok := t.byName[name]
	return slot, ok
}

// Resolve walks every function body in mod, rewriting each KindIdent use
// that names a parameter into a LocalAccess (IsLocal=true, LocalSlot set).
// A miss is an "unknown symbol" error; module-level identifier references
// are not supported at this pass.
func Resolve(mod *ast.Module) []*Error {
	var errs []*Error
	for _, fn := range mod.ModuleFuncs() {
		fnNode := mod.Node(fn)
		var names []string
		for _, p := range fnNode.Children {
			names = append(names, mod.Node(p).Name)
		}
		table, err := NewTable(names)
		if err != nil {
			errs = append(errs, &Error{Name: fnNode.Name, Pos: fnNode.Span.Start})
			continue
		}
		errs = append(errs, resolveBlock(mod, table, fnNode.Then)...)
	}
	// The synthesized main() body (static top-level expressions) has no
	// parameters, so an empty table suffices.
	table, _ := NewTable(nil)
	for _, expr := range mod.ModuleStaticExprs() {
		errs = append(errs, resolveExpr(mod, table, expr)...)
	}
	return errs
}

func resolveBlock(mod *ast.Module, table *Table, block ast.NodeID) []*Error {
	if !mod.Valid(block) {
		return nil
	}
	var errs []*Error
	for _, stmt := range mod.Node(block).Children {
		errs = append(errs, resolveStmt(mod, table, stmt)...)
	}
	return errs
}

func resolveStmt(mod *ast.Module, table *Table, id ast.NodeID) []*Error {
	if !mod.Valid(id) {
		return nil
	}
	n := mod.Node(id)
	switch n.Kind {
	case ast.KindExprStmt:
		return resolveExpr(mod, table, n.Target)
	case ast.KindReturn:
		if mod.Valid(n.Target) {
			return resolveExpr(mod, table, n.Target)
		}
	case ast.KindIf:
		var errs []*Error
		errs = append(errs, resolveExpr(mod, table, n.Cond)...)
		errs = append(errs, resolveBlock(mod, table, n.Then)...)
		if mod.Valid(n.Else) {
			if mod.Node(n.Else).Kind == ast.KindIf {
				errs = append(errs, resolveStmt(mod, table, n.Else)...)
			} else {
				errs = append(errs, resolveBlock(mod, table, n.Else)...)
			}
		}
		return errs
	case ast.KindWhile:
		var errs []*Error
		errs = append(errs, resolveExpr(mod, table, n.Cond)...)
		errs = append(errs, resolveBlock(mod, table, n.Then)...)
		return errs
	case ast.KindFor:
		var errs []*Error
		errs = append(errs, resolveStmt(mod, table, n.Init)...)
		errs = append(errs, resolveExpr(mod, table, n.Cond)...)
		errs = append(errs, resolveStmt(mod, table, n.Step)...)
		errs = append(errs, resolveBlock(mod, table, n.Then)...)
		return errs
	}
	return nil
}

func resolveExpr(mod *ast.Module, table *Table, id ast.NodeID) []*Error {
	if !mod.Valid(id) {
		return nil
	}
	n := mod.Node(id)
	switch n.Kind {
	case ast.KindIdent:
		if slot, ok := table.Slot(n.Name); ok {
			n.IsLocal = true
			n.LocalSlot = slot
			return nil
		}
		return []*Error{{Name: n.Name, Pos: n.Span.Start}}
	case ast.KindBinary:
		var errs []*Error
		errs = append(errs, resolveExpr(mod, table, n.Left)...)
		errs = append(errs, resolveExpr(mod, table, n.Right)...)
		return errs
	case ast.KindUnary:
		return resolveExpr(mod, table, n.Left)
	case ast.KindCall:
		var errs []*Error
		for _, arg := range n.Children {
			errs = append(errs, resolveExpr(mod, table, arg)...)
		}
		return errs
	case ast.KindReference:
		var errs []*Error
		errs = append(errs, resolveExpr(mod, table, n.Left)...)
		errs = append(errs, resolveExpr(mod, table, n.Target)...)
		return errs
	case ast.KindArrayLit:
		var errs []*Error
		for _, e := range n.Children {
			errs = append(errs, resolveExpr(mod, table, e)...)
		}
		return errs
	}
	return nil
}
