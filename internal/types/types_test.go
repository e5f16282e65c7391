package types

import "testing"

func TestAtomicTypesAreCanonical(t *testing.T) {
	if Integer(64) != Int64 {
		t.Fatalf("Integer(64) did not return the canonical Int64 instance")
	}
	if Integer(64) != Integer(64) {
		t.Fatalf("Integer(64) is not stable across calls")
	}
}

func TestBoolAndIntegerAreDisjoint(t *testing.T) {
	if Is[boolTag](Int8) {
		t.Fatalf("Int8 should not satisfy Is[Bool]")
	}
	if Is[integerTag](Bool) {
		t.Fatalf("Bool should not satisfy Is[Integer]")
	}
	if !Is[boolTag](Bool) {
		t.Fatalf("Bool should satisfy Is[Bool]")
	}
}

func TestStructuralEquality(t *testing.T) {
	p1 := Pointer(Int64)
	p2 := Pointer(Int64)
	if p1 != p2 {
		t.Fatalf("Pointer(Int64) should be canonical")
	}
	if !p1.Equal(p2) {
		t.Fatalf("identical pointers should compare equal")
	}

	f1 := Function([]*Type{Int64, Float64}, Bool)
	f2 := Function([]*Type{Int64, Float64}, Bool)
	if !f1.Equal(f2) {
		t.Fatalf("structurally identical function types should compare equal")
	}

	tup1 := Tuple([]*Type{Int32, Str(8)})
	tup2 := Tuple([]*Type{Int32, Str(8)})
	if !tup1.Equal(tup2) {
		t.Fatalf("structurally identical tuple types should compare equal")
	}
}

func TestPrinter(t *testing.T) {
	cases := map[*Type]string{
		None:                        "none",
		Bool:                        "bool",
		Int64:                       "int(64)",
		Float64:                     "float(64)",
		Str(8):                      "str(8)",
		Pointer(Int32):              "ptr(int(32))",
		Function([]*Type{Int32}, Bool): "func((int(32)) -> bool)",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
