package runtime

import "testing"

func TestToJSONFromJSONRoundTrip(t *testing.T) {
	interp := newTestInterp()
	obj := interp.NewObject("", []string{"name", "count"}, map[string]Value{
		"name":  interp.NewString("widget"),
		"count": MakeInt(3, WidthDefault),
	})

	text, err := builtinToJSON(interp, []Value{obj})
	if err != nil {
		t.Fatalf("toJSON: %v", err)
	}

	back, err := builtinFromJSON(interp, []Value{text})
	if err != nil {
		t.Fatalf("fromJSON: %v", err)
	}
	backObj := interp.Heap.Get(back.Heap)
	if interp.GetString(backObj.Fields["name"]) != "widget" {
		t.Fatalf("name = %v, want widget", backObj.Fields["name"])
	}
	// JSON has no int/float distinction; round-tripped numbers always decode
	// as KindFloat.
	if backObj.Fields["count"].Kind != KindFloat || backObj.Fields["count"].F != 3 {
		t.Fatalf("count = %+v, want float 3", backObj.Fields["count"])
	}
}

func TestToJSONRejectsFunctions(t *testing.T) {
	interp := newTestInterp()
	fn := interp.NewBuiltin("f", func(*Interp, []Value) (Value, error) { return Null, nil })
	if _, err := builtinToJSON(interp, []Value{fn}); err == nil {
		t.Fatal("expected toJSON on a function to error")
	}
}

func TestToJSONRejectsCyclicArray(t *testing.T) {
	interp := newTestInterp()
	arr := interp.NewArray([]Value{MakeInt(1, WidthDefault)})
	obj, err := arrObj(interp, arr)
	if err != nil {
		t.Fatalf("arrObj: %v", err)
	}
	obj.Arr = append(obj.Arr, arr)

	if _, jerr := builtinToJSON(interp, []Value{arr}); jerr == nil {
		t.Fatal("expected toJSON on a self-referential array to error")
	}
}

func TestToJSONRejectsCyclicObject(t *testing.T) {
	interp := newTestInterp()
	obj := interp.NewObject("", []string{"self"}, map[string]Value{"self": Null})
	if err := interp.setProperty(obj, "self", obj); err != nil {
		t.Fatalf("setProperty: %v", err)
	}

	if _, jerr := builtinToJSON(interp, []Value{obj}); jerr == nil {
		t.Fatal("expected toJSON on a self-referential object to error")
	}
}

func TestDumpHeapReflectsLiveObjects(t *testing.T) {
	interp := newTestInterp()
	interp.NewString("tracked")
	data, err := interp.DumpHeap()
	if err != nil {
		t.Fatalf("DumpHeap: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected a non-empty heap dump with at least one live object")
	}
}
