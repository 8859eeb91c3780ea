package types

// Registry owns the built-in descriptors plus per-module dynamic
// descriptors (array/pointer/wrapper instantiations). A Registry is a value
// held by compiler.Context, not a package-level global.
type Registry struct {
	builtins map[ID]*Descriptor
	dynamic  []*Descriptor
	nextID   ID

	arrayCache   map[ID]*Descriptor
	ptrCache     map[ID]*Descriptor
	wrapperCache map[ID]*Descriptor
}

// NewRegistry constructs a Registry seeded with the closed built-in set.
func NewRegistry() *Registry {
	r := &Registry{
		builtins:     map[ID]*Descriptor{},
		nextID:       firstDynamicID,
		arrayCache:   map[ID]*Descriptor{},
		ptrCache:     map[ID]*Descriptor{},
		wrapperCache: map[ID]*Descriptor{},
	}
	seed := []*Descriptor{
		{TypeID: IDUnit, Kind: KindUnit, Size: 0},
		{TypeID: IDAny, Kind: KindAny, Size: 24, Traits: map[string]bool{"Any": true}},
		{TypeID: IDBool, Kind: KindBool, Size: 1},
		{TypeID: IDInt32, Kind: KindInt32, Size: 4, Methods: map[string]*Method{
			"toString": {Name: "toString", ID: MethodToString},
		}},
		{TypeID: IDInt64, Kind: KindInt64, Size: 8, Methods: map[string]*Method{
			"toString": {Name: "toString", ID: MethodToString},
		}},
		{TypeID: IDFloat64, Kind: KindFloat64, Size: 8, Methods: map[string]*Method{
			"toString": {Name: "toString", ID: MethodToString},
		}},
		{TypeID: IDRawString, Kind: KindRawString, Size: 12, Length: -1},
		{TypeID: IDString, Kind: KindString, Size: 24},
	}
	for _, d := range seed {
		r.builtins[d.TypeID] = d
	}
	return r
}

// Unit, Any, Bool, Int32, Int64, Float64, String return the shared built-in
// descriptor instances.
func (r *Registry) Unit() *Descriptor    { return r.builtins[IDUnit] }
func (r *Registry) Any() *Descriptor     { return r.builtins[IDAny] }
func (r *Registry) Bool() *Descriptor    { return r.builtins[IDBool] }
func (r *Registry) Int32() *Descriptor   { return r.builtins[IDInt32] }
func (r *Registry) Int64() *Descriptor   { return r.builtins[IDInt64] }
func (r *Registry) Float64() *Descriptor { return r.builtins[IDFloat64] }
func (r *Registry) String() *Descriptor  { return r.builtins[IDString] }

// RawString returns a RawString descriptor of the given compile-time
// length, or -1 for a wildcard-length RawString.
func (r *Registry) RawString(length int) *Descriptor {
	if length < 0 {
		return r.builtins[IDRawString]
	}
	return &Descriptor{TypeID: IDRawString, Kind: KindRawString, Size: 12, Length: length}
}

// ByName looks up a built-in type by its surface-language spelling (used by
// the type-expression evaluator in the signature resolver).
func (r *Registry) ByName(name string) (*Descriptor, bool) {
	switch name {
	case "Unit":
		return r.Unit(), true
	case "Any":
		return r.Any(), true
	case "Bool":
		return r.Bool(), true
	case "Int32":
		return r.Int32(), true
	case "Int64":
		return r.Int64(), true
	case "Float64":
		return r.Float64(), true
	case "String":
		return r.String(), true
	case "RawString":
		return r.RawString(-1), true
	}
	return nil, false
}

// Array returns the (cached) Array(elem) descriptor.
func (r *Registry) Array(elem *Descriptor) *Descriptor {
	if d, ok := r.arrayCache[elem.TypeID]; ok {
		return d
	}
	d := &Descriptor{TypeID: r.alloc(), Kind: KindArray, Size: 12, Elem: elem}
	r.arrayCache[elem.TypeID] = d
	return d
}

// Ptr returns the (cached) Ptr(elem) descriptor.
func (r *Registry) Ptr(elem *Descriptor) *Descriptor {
	if d, ok := r.ptrCache[elem.TypeID]; ok {
		return d
	}
	d := &Descriptor{TypeID: r.alloc(), Kind: KindPtr, Size: 8, Elem: elem}
	r.ptrCache[elem.TypeID] = d
	return d
}

// Wrapper returns the (cached) Wrapper(elem) descriptor — a boxed primitive
// satisfying an Any slot.
func (r *Registry) Wrapper(elem *Descriptor) *Descriptor {
	if d, ok := r.wrapperCache[elem.TypeID]; ok {
		return d
	}
	d := &Descriptor{TypeID: IDWrapper, Kind: KindWrapper, Size: 24, Elem: elem}
	r.wrapperCache[elem.TypeID] = d
	return d
}

func (r *Registry) alloc() ID {
	id := r.nextID
	r.nextID++
	return id
}
