package runtime

import "testing"

func TestTruthyFalsyValues(t *testing.T) {
	interp := newTestInterp()
	falsy := []Value{
		Null,
		MakeBool(false),
		MakeInt(0, WidthDefault),
		MakeFloat(0, WidthF64),
		interp.NewString(""),
		interp.NewArray(nil),
		interp.NewObject("", nil, map[string]Value{}),
	}
	for i, v := range falsy {
		if interp.Truthy(v) {
			t.Fatalf("falsy[%d] (%s) reported truthy", i, v.Kind)
		}
	}
}

func TestMakeRuneRejectsOutOfRangeCodePoint(t *testing.T) {
	if _, err := MakeRune(0x110000); err == nil {
		t.Fatal("expected a code point past 0x10FFFF to error")
	}
	if _, err := MakeRune(-1); err == nil {
		t.Fatal("expected a negative code point to error")
	}
	v, err := MakeRune('a')
	if err != nil {
		t.Fatalf("MakeRune('a'): %v", err)
	}
	if v.Kind != KindRune || v.I != int64('a') {
		t.Fatalf("v = %+v, want KindRune 'a'", v)
	}
	if v.Kind.String() != "rune" {
		t.Fatalf("typeof = %q, want %q", v.Kind.String(), "rune")
	}
	if v.String() != "a" {
		t.Fatalf("String() = %q, want %q", v.String(), "a")
	}
}

func TestTruthyTruthyValues(t *testing.T) {
	interp := newTestInterp()
	truthy := []Value{
		MakeBool(true),
		MakeInt(1, WidthDefault),
		MakeFloat(0.1, WidthF64),
		interp.NewString("x"),
		interp.NewArray([]Value{MakeInt(1, WidthDefault)}),
		interp.NewObject("", []string{"a"}, map[string]Value{"a": MakeInt(1, WidthDefault)}),
	}
	for i, v := range truthy {
		if !interp.Truthy(v) {
			t.Fatalf("truthy[%d] (%s) reported falsy", i, v.Kind)
		}
	}
}
