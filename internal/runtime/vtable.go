package runtime

import "github.com/roclang/rocc/internal/types"

// FunctionEntry is one vtable slot: a method-ID mapped to the owning type
// and the backend symbol it dispatches to.
type FunctionEntry struct {
	OwnerTypeID types.ID
	MethodID    types.MethodID
	Symbol      string // backend-resolved function symbol, e.g. "myInt32ToString"
}

// Vtable is an immutable, compile-time-known table of method entries for
// one type: a small slice scanned linearly rather than a mutable
// process-global map —
// the built-in method-ID set is fixed and tiny (toString, typeId, hashCode,
// equals), so linear scan is cheap and the table needs no synchronization.
type Vtable struct {
	OwnerTypeID types.ID
	Entries     []FunctionEntry
}

// Lookup finds the entry for id, if the type defines it.
func (vt *Vtable) Lookup(id types.MethodID) (FunctionEntry, bool) {
	for _, e := range vt.Entries {
		if e.MethodID == id {
			return e, true
		}
	}
	return FunctionEntry{}, false
}

// Registry maps a type-ID to its Vtable. A Registry is a field on
// compiler.Context, not a package-level variable — each compilation owns
// its own registry, the way a reference-counting manager is constructed
// fresh per evaluator rather than shared process-wide.
type Registry struct {
	byType map[types.ID]*Vtable
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byType: map[types.ID]*Vtable{}}
}

// Register records vt for its owner type-ID. A second registration for the
// same type-ID overwrites silently, matching the single-threaded ABI's
// documented behavior.
func (r *Registry) Register(vt *Vtable) {
	r.byType[vt.OwnerTypeID] = vt
}

// Lookup returns the vtable registered for id, if any.
func (r *Registry) Lookup(id types.ID) (*Vtable, bool) {
	vt, ok := r.byType[id]
	return vt, ok
}

// BuiltinVtables constructs the fixed vtable set for Int32, Int64, and
// RawString, each carrying a toString entry: Int32 and Int64 resolve to
// SymInt32ToString, RawString to "myRawStringIdentity", which is not one of
// the linking-surface names. Float64 has no vtable here.
func BuiltinVtables() []*Vtable {
	return []*Vtable{
		{OwnerTypeID: types.IDInt32, Entries: []FunctionEntry{
			{OwnerTypeID: types.IDInt32, MethodID: types.MethodToString, Symbol: SymInt32ToString},
		}},
		{OwnerTypeID: types.IDInt64, Entries: []FunctionEntry{
			{OwnerTypeID: types.IDInt64, MethodID: types.MethodToString, Symbol: SymInt32ToString},
		}},
		{OwnerTypeID: types.IDRawString, Entries: []FunctionEntry{
			{OwnerTypeID: types.IDRawString, MethodID: types.MethodToString, Symbol: "myRawStringIdentity"},
		}},
	}
}
