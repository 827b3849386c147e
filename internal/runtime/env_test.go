package runtime

import "testing"

func TestEnvironmentGetWalksParentChain(t *testing.T) {
	h := NewHeap(nil)
	root := NewEnvironment(h)
	root.Define("x", MakeInt(1, WidthDefault), false)
	child := root.Child()
	v, ok := child.Get("x")
	if !ok || v.I != 1 {
		t.Fatalf("Get(x) = %v, %v, want 1, true", v, ok)
	}
}

func TestEnvironmentSetRejectsConst(t *testing.T) {
	h := NewHeap(nil)
	root := NewEnvironment(h)
	root.Define("x", MakeInt(1, WidthDefault), true)
	err := root.Set("x", MakeInt(2, WidthDefault))
	if err == nil {
		t.Fatal("expected assigning to a const binding to error")
	}
	rerr, ok := err.(*Error)
	if !ok || rerr.Kind != ConstError {
		t.Fatalf("err = %v, want ConstError", err)
	}
}

func TestEnvironmentSetOnUndefinedNameImplicitlyDefines(t *testing.T) {
	h := NewHeap(nil)
	root := NewEnvironment(h)
	if err := root.Set("nope", MakeInt(9, WidthDefault)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok := root.Get("nope")
	if !ok || v.I != 9 {
		t.Fatalf("Get(nope) = %v, %v, want 9, true", v, ok)
	}
	// The implicitly-created binding is mutable.
	if err := root.Set("nope", MakeInt(10, WidthDefault)); err != nil {
		t.Fatalf("second Set: %v", err)
	}
}

func TestEnvironmentDefineRejectsDuplicateInSameScope(t *testing.T) {
	h := NewHeap(nil)
	root := NewEnvironment(h)
	if _, err := root.Define("x", MakeInt(1, WidthDefault), false); err != nil {
		t.Fatalf("first Define: %v", err)
	}
	_, err := root.Define("x", MakeInt(2, WidthDefault), false)
	if err == nil {
		t.Fatal("expected redefining x in the same scope to error")
	}
	rerr, ok := err.(*Error)
	if !ok || rerr.Kind != UndefinedError {
		t.Fatalf("err = %v, want UndefinedError", err)
	}
}

func TestEnvironmentDefineAllowsShadowingInChildScope(t *testing.T) {
	h := NewHeap(nil)
	root := NewEnvironment(h)
	root.Define("x", MakeInt(1, WidthDefault), false)
	child := root.Child()
	if _, err := child.Define("x", MakeInt(2, WidthDefault), false); err != nil {
		t.Fatalf("shadowing Define: %v", err)
	}
	v, _ := child.Get("x")
	if v.I != 2 {
		t.Fatalf("child Get(x) = %d, want 2", v.I)
	}
}

func TestEnvironmentReleaseFreesOwnedLocals(t *testing.T) {
	h := NewHeap(nil)
	root := NewEnvironment(h)
	handle := h.Alloc(&Object{Kind: ObjString, Str: "local"})
	child := root.Child()
	child.Define("s", makeHeapValue(KindString, handle), false)
	if h.Get(handle).RefCount != 2 {
		t.Fatalf("RefCount after Define = %d, want 2", h.Get(handle).RefCount)
	}
	child.Release()
	if h.Get(handle).RefCount != 1 {
		t.Fatalf("RefCount after Release = %d, want 1", h.Get(handle).RefCount)
	}
}

func TestEnvironmentSetSwapsRefcounts(t *testing.T) {
	h := NewHeap(nil)
	root := NewEnvironment(h)
	oldHandle := h.Alloc(&Object{Kind: ObjString, Str: "old"})
	newHandle := h.Alloc(&Object{Kind: ObjString, Str: "new"})
	root.Define("s", makeHeapValue(KindString, oldHandle), false)
	if err := root.Set("s", makeHeapValue(KindString, newHandle)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if h.Get(oldHandle) != nil {
		t.Fatal("old value should have been released after reassignment")
	}
	if h.Get(newHandle).RefCount != 2 {
		t.Fatalf("new value RefCount = %d, want 2", h.Get(newHandle).RefCount)
	}
}
