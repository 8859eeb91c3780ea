package ast

// FuncDecl-specific children layout: Children holds parameter NodeIDs in
// declaration order; Type holds the return type expression (InvalidID means
// Unit); Then holds the body Block.
func (m *Module) FuncParams(fn NodeID) []NodeID {
	return m.Node(fn).Children
}

// ModuleFuncs returns every KindFuncDecl child of the module root, in
// declaration order.
func (m *Module) ModuleFuncs() []NodeID {
	var out []NodeID
	for _, c := range m.Node(m.Root).Children {
		if m.Node(c).Kind == KindFuncDecl {
			out = append(out, c)
		}
	}
	return out
}

// ModuleImports returns every KindImport child of the module root.
func (m *Module) ModuleImports() []NodeID {
	var out []NodeID
	for _, c := range m.Node(m.Root).Children {
		if m.Node(c).Kind == KindImport {
			out = append(out, c)
		}
	}
	return out
}

// ModuleStaticExprs returns every top-level statement expression, in source
// order — these are lowered into the synthesized main function body.
func (m *Module) ModuleStaticExprs() []NodeID {
	var out []NodeID
	for _, c := range m.Node(m.Root).Children {
		if m.Node(c).Kind != KindFuncDecl && m.Node(c).Kind != KindImport {
			out = append(out, c)
		}
	}
	return out
}
