package runtime

import "testing"

func TestEqualStringsAreByteWise(t *testing.T) {
	interp := newTestInterp()
	// "é" (precomposed) versus "é" (decomposed): the same
	// grapheme, visually and under NFC, but distinct byte sequences.
	precomposed := interp.NewString("é")
	decomposed := interp.NewString("é")
	if Equal(interp.Heap, precomposed, decomposed) {
		t.Fatal("byte-distinct strings compared equal")
	}

	a := interp.NewString("hello")
	b := interp.NewString("hello")
	if !Equal(interp.Heap, a, b) {
		t.Fatal("identical byte sequences compared unequal")
	}
}

func TestEqualArraysAreStructural(t *testing.T) {
	interp := newTestInterp()
	a := interp.NewArray([]Value{MakeInt(1, WidthDefault), interp.NewString("x")})
	b := interp.NewArray([]Value{MakeInt(1, WidthDefault), interp.NewString("x")})
	if !Equal(interp.Heap, a, b) {
		t.Fatal("structurally identical arrays compared unequal")
	}
	c := interp.NewArray([]Value{MakeInt(2, WidthDefault)})
	if Equal(interp.Heap, a, c) {
		t.Fatal("differing arrays compared equal")
	}
}

func TestEqualIntFloatCrossKind(t *testing.T) {
	interp := newTestInterp()
	if !Equal(interp.Heap, MakeInt(2, WidthDefault), MakeFloat(2.0, WidthF64)) {
		t.Fatal("2 (int) should equal 2.0 (float)")
	}
}

func TestEqualFunctionsByIdentity(t *testing.T) {
	interp := newTestInterp()
	f1 := interp.NewBuiltin("f", func(*Interp, []Value) (Value, error) { return Null, nil })
	f2 := interp.NewBuiltin("f", func(*Interp, []Value) (Value, error) { return Null, nil })
	if Equal(interp.Heap, f1, f2) {
		t.Fatal("distinct function values should not compare equal")
	}
	if !Equal(interp.Heap, f1, f1) {
		t.Fatal("a function value should equal itself")
	}
}
