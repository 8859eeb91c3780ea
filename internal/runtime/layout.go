// Package runtime describes the binary layout of boxed values, vtable
// entries, and method IDs that a backend targets. Reference counting here
// is modeled on an evaluator's object lifecycle tracking
// (ObjectInstance.RefCount/RefCountManager), adapted from a class-instance
// field into the shared boxed-value header every built-in type carries.
package runtime

import "github.com/roclang/rocc/internal/types"

// HeaderSize is the size in bytes of the header every boxed value shares:
// a vtable pointer, a type-id, and a refcount, each a machine word.
const HeaderSize = 24

// Header describes the three fixed fields at the front of every boxed
// value's memory layout.
type Header struct {
	VTablePtrOffset int // 0
	TypeIDOffset    int // 8
	RefCountOffset  int // 16
}

// BuiltinHeader is the shared header layout every boxed value carries.
var BuiltinHeader = Header{VTablePtrOffset: 0, TypeIDOffset: 8, RefCountOffset: 16}

// FieldLayout is one additional field appended after the shared header for
// a specific built-in type.
type FieldLayout struct {
	Name   string
	Offset int
	Size   int
}

// Layout is the full binary layout of one built-in boxed type: the shared
// header plus its type-specific trailing fields.
type Layout struct {
	TypeID types.ID
	Fields []FieldLayout
	Size   int
}

// RawStringLayout: header (24) + data-ptr (8) + length (4).
var RawStringLayout = Layout{
	TypeID: types.IDRawString,
	Fields: []FieldLayout{
		{Name: "dataPtr", Offset: HeaderSize, Size: 8},
		{Name: "length", Offset: HeaderSize + 8, Size: 4},
	},
	Size: HeaderSize + 12,
}

// Int32Layout: header (24) + value (4).
var Int32Layout = Layout{
	TypeID: types.IDInt32,
	Fields: []FieldLayout{{Name: "value", Offset: HeaderSize, Size: 4}},
	Size:   HeaderSize + 4,
}

// ArrayLayout builds the layout for Array(elem): header (24) + length (4) +
// elements (a flexible tail, sized by the caller per element count).
func ArrayLayout(elemSize int, count int) Layout {
	return Layout{
		Fields: []FieldLayout{
			{Name: "length", Offset: HeaderSize, Size: 4},
			{Name: "elements", Offset: HeaderSize + 4, Size: elemSize * count},
		},
		Size: HeaderSize + 4 + elemSize*count,
	}
}

// LayoutFor returns the fixed layout for d's built-in kind, or a zero Layout
// (caller must size arrays per element count via ArrayLayout) if d has no
// fixed-size layout.
func LayoutFor(d *types.Descriptor) (Layout, bool) {
	switch d.Kind {
	case types.KindRawString:
		return RawStringLayout, true
	case types.KindInt32:
		return Int32Layout, true
	}
	return Layout{}, false
}
