package types

import "testing"

func TestAnyMatchesEverything(t *testing.T) {
	r := NewRegistry()
	if !Matches(r.Any(), r.Int32()) {
		t.Fatalf("Any should match Int32")
	}
	if !Matches(r.Any(), r.String()) {
		t.Fatalf("Any should match String")
	}
}

func TestMatchingRequiresSameTypeID(t *testing.T) {
	r := NewRegistry()
	if Matches(r.Int32(), r.Int64()) {
		t.Fatalf("Int32 should not match Int64")
	}
	if !Matches(r.Int32(), r.Int32()) {
		t.Fatalf("Int32 should match Int32")
	}
}

func TestRequiresWrapperForPrimitiveIntoAny(t *testing.T) {
	r := NewRegistry()
	if !RequiresWrapper(r.Any(), r.Int32()) {
		t.Fatalf("passing Int32 into Any should require a Wrapper")
	}
	if RequiresWrapper(r.Int32(), r.Int32()) {
		t.Fatalf("passing Int32 into Int32 should not require a Wrapper")
	}
	if RequiresWrapper(r.Any(), r.String()) {
		t.Fatalf("String is not primitive; no Wrapper required")
	}
}

func TestWiderPromotesToFloat(t *testing.T) {
	r := NewRegistry()
	if got := Wider(r.Int32(), r.Float64()); got.Kind != KindFloat64 {
		t.Fatalf("Wider(Int32, Float64) = %v, want Float64", got)
	}
	if got := Wider(r.Int32(), r.Int64()); got.Kind != KindInt64 {
		t.Fatalf("Wider(Int32, Int64) = %v, want Int64", got)
	}
}

func TestArrayCacheIsStable(t *testing.T) {
	r := NewRegistry()
	a1 := r.Array(r.Int32())
	a2 := r.Array(r.Int32())
	if a1 != a2 {
		t.Fatalf("Array(Int32) should be cached to the same descriptor")
	}
	if !Matches(a1, a2) {
		t.Fatalf("Array(Int32) should match itself")
	}
}

func TestReservedBuiltinIDs(t *testing.T) {
	r := NewRegistry()
	reserved := map[ID]*Descriptor{
		0: r.Unit(), 1: r.Any(), 2: r.Bool(), 3: r.Int32(),
		4: r.Int64(), 5: r.Float64(), 11: r.RawString(-1), 21: r.String(),
	}
	for id, d := range reserved {
		if d.TypeID != id {
			t.Errorf("descriptor %v has TypeID %d, want reserved %d", d, d.TypeID, id)
		}
	}
}
