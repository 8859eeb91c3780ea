// Package ast defines the rocc abstract syntax tree.
//
// Nodes do not carry back-edges to their parent. Instead every module owns a flat arena of
// nodes addressed by NodeID; a node's children are stored as NodeIDs, and a
// visitor that needs "is my parent a reference expression" is handed the
// parent explicitly as it descends rather than following a pointer back up
// the tree.
package ast

import "github.com/roclang/rocc/internal/token"

// NodeID addresses a node within a Module's arena. The zero value is
// reserved to mean "absent" (e.g. a function with no explicit return type).
type NodeID int

const InvalidID NodeID = 0

// Kind tags the concrete shape of a Node.
type Kind int

const (
	KindInvalid Kind = iota
	KindModule
	KindImport
	KindFuncDecl
	KindParam
	KindTypeName   // bare identifier type expression, e.g. Int32
	KindTypeArray  // []T
	KindTypeParams // <T, U> generic argument list attached to a call
	KindStaticBlock
	KindBlock
	KindExprStmt
	KindReturn
	KindIf
	KindWhile
	KindFor
	KindIntLit
	KindFloatLit
	KindStringLit
	KindBoolLit
	KindIdent
	KindBinary
	KindUnary
	KindCall
	KindReference // RECV.NAME(args) — wraps a Call as its Target
	KindArrayLit
)

// Span is a node's originating source range, used both for diagnostics and
// for getText() round-trip reconstruction (SPEC_FULL.md supplemented
// feature 1).
type Span struct {
	Start token.Position
	End   int // one past the last byte, matching token.Token.End
}

// Node is the tagged union of every AST node shape. Only the fields
// relevant to Kind are populated; this mirrors one-struct-
// per-node-kind split (ast/declarations.go, ast/control_flow.go, ...) but
// keeps every kind addressable from a single arena slice.
type Node struct {
	Kind Kind
	Span Span

	// Identifier / literal payloads.
	Name    string
	IntVal  int64
	FloatVal float64
	StrVal  string
	BoolVal bool

	// Operator payload (Binary, Unary).
	Op token.Kind

	// Structural children, named per the kinds that use them.
	Children []NodeID // Module: imports+funcs+static exprs; Block: statements; ArrayLit: elements; Call: args
	Type     NodeID   // declared/annotated type expression, if any
	Elem     NodeID   // TypeArray element type
	Left     NodeID   // Binary/Unary operand, Reference receiver
	Right    NodeID   // Binary operand
	Target   NodeID   // Return value expr, If condition host, Call callee (Ident) or Reference's inner Call
	Then     NodeID   // If/While/For body block
	Else     NodeID   // If else block (InvalidID if none)
	Init     NodeID   // For init statement
	Cond     NodeID   // If/While/For condition expression
	Step     NodeID   // For step statement

	// Resolved by later passes; zero value means "not yet resolved".
	LocalSlot int // symbols pass: parameter slot index for an Ident rewritten to LocalAccess, -1 if not a local
	IsLocal   bool
}

// Module is the arena-owning root of one compiled file.
type Module struct {
	Name   string
	Source string
	File   string

	arena []Node
	Root  NodeID // KindModule node
}

// NewModule allocates an empty arena for a module named name, compiled from
// source text src read from file.
func NewModule(name, file, src string) *Module {
	m := &Module{Name: name, Source: src, File: file}
	m.arena = append(m.arena, Node{Kind: KindInvalid}) // index 0 == InvalidID
	return m
}

// New allocates a node in the arena and returns its ID.
func (m *Module) New(n Node) NodeID {
	m.arena = append(m.arena, n)
	return NodeID(len(m.arena) - 1)
}

// Node dereferences id. Calling with InvalidID returns the KindInvalid
// placeholder stored at index 0 rather than panicking; callers must check
// against InvalidID first when a field is optional.
func (m *Module) Node(id NodeID) *Node {
	return &m.arena[id]
}

// Valid reports whether id addresses a real node.
func (m *Module) Valid(id NodeID) bool {
	return id != InvalidID && int(id) < len(m.arena)
}

// GetText slices the original source buffer using a node's span, giving a
// verbatim-whitespace reconstruction usable by the round-trip property test.
func (m *Module) GetText(id NodeID) string {
	n := m.Node(id)
	if n.Span.End <= n.Span.Start.Offset || n.Span.End > len(m.Source) {
		return ""
	}
	return m.Source[n.Span.Start.Offset:n.Span.End]
}

func (k Kind) String() string {
	names := [...]string{
		"Invalid", "Module", "Import", "FuncDecl", "Param",
		"TypeName", "TypeArray", "TypeParams", "StaticBlock", "Block",
		"ExprStmt", "Return", "If", "While", "For",
		"IntLit", "FloatLit", "StringLit", "BoolLit", "Ident",
		"Binary", "Unary", "Call", "Reference", "ArrayLit",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Kind(?)"
}
