package runtime

import (
	"testing"

	"github.com/roclang/rocc/internal/types"
)

func TestRegistryRegisterOverwritesSilently(t *testing.T) {
	reg := NewRegistry()
	first := &Vtable{OwnerTypeID: types.IDInt32, Entries: []FunctionEntry{{MethodID: types.MethodToString, Symbol: "old"}}}
	second := &Vtable{OwnerTypeID: types.IDInt32, Entries: []FunctionEntry{{MethodID: types.MethodToString, Symbol: "new"}}}

	reg.Register(first)
	reg.Register(second)

	vt, ok := reg.Lookup(types.IDInt32)
	if !ok {
		t.Fatalf("expected a registered vtable for Int32")
	}
	entry, _ := vt.Lookup(types.MethodToString)
	if entry.Symbol != "new" {
		t.Fatalf("expected the second registration to win, got %q", entry.Symbol)
	}
}

func TestBuiltinVtablesCoverInt32ToString(t *testing.T) {
	reg := NewRegistry()
	for _, vt := range BuiltinVtables() {
		reg.Register(vt)
	}
	vt, ok := reg.Lookup(types.IDInt32)
	if !ok {
		t.Fatalf("expected Int32's vtable to be registered")
	}
	if _, ok := vt.Lookup(types.MethodToString); !ok {
		t.Fatalf("expected Int32's vtable to carry a toString entry")
	}
}

func TestRawStringLayoutSize(t *testing.T) {
	if RawStringLayout.Size != HeaderSize+12 {
		t.Fatalf("expected RawString layout size %d, got %d", HeaderSize+12, RawStringLayout.Size)
	}
}
