package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/roclang/rocc/internal/ast"
	"github.com/roclang/rocc/internal/parser"
)

// parseForDump re-parses source just for --dump-ast, independent of the
// full compiler.Compile pipeline (which doesn't hand back the raw AST).
func parseForDump(file, source string) (*ast.Module, error) {
	return parser.Parse(file, source)
}

// dumpAST renders mod's syntax tree as an indented listing. ast.Module has
// no String method of its own, since nodes live in a flat index-addressed
// arena rather than a pointer tree.
func dumpAST(w io.Writer, mod *ast.Module) {
	fmt.Fprintf(w, "AST (%s):\n", mod.Name)
	dumpNode(w, mod, mod.Root, 0)
}

func dumpNode(w io.Writer, mod *ast.Module, id ast.NodeID, depth int) {
	if !mod.Valid(id) {
		return
	}
	n := mod.Node(id)
	fmt.Fprintf(w, "%s%s", strings.Repeat("  ", depth), n.Kind)
	if n.Name != "" {
		fmt.Fprintf(w, " %q", n.Name)
	}
	fmt.Fprintln(w)

	for _, child := range []ast.NodeID{n.Type, n.Elem, n.Left, n.Right, n.Target, n.Cond, n.Init, n.Step, n.Then, n.Else} {
		dumpNode(w, mod, child, depth+1)
	}
	for _, child := range n.Children {
		dumpNode(w, mod, child, depth+1)
	}
}
