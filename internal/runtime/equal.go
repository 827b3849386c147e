package runtime

// Equal implements Hemlock's `==` semantics: scalars compare by value,
// strings compare byte-wise, and heap containers (array, object, buffer)
// compare structurally; functions, tasks, channels and files compare by
// identity (same handle).
func Equal(h *Heap, a, b Value) bool {
	if a.Kind != b.Kind {
		// int/float cross-kind comparison is allowed and compares by
		// numeric value, matching arithmetic promotion rules.
		if a.Kind == KindInt && b.Kind == KindFloat {
			return float64(a.I) == b.F
		}
		if a.Kind == KindFloat && b.Kind == KindInt {
			return a.F == float64(b.I)
		}
		return false
	}

	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.B == b.B
	case KindInt:
		return a.I == b.I
	case KindFloat:
		return a.F == b.F
	case KindRune:
		return a.I == b.I
	case KindString:
		return equalStrings(h, a.Heap, b.Heap)
	case KindArray:
		return equalArrays(h, a.Heap, b.Heap)
	case KindObject:
		return equalObjects(h, a.Heap, b.Heap)
	case KindBuffer:
		return equalBuffers(h, a.Heap, b.Heap)
	default:
		// function, task, channel, file: identity comparison.
		return a.Heap == b.Heap
	}
}

func equalStrings(h *Heap, ha, hb Handle) bool {
	if ha == hb {
		return true
	}
	oa, ob := h.Get(ha), h.Get(hb)
	if oa == nil || ob == nil {
		return oa == ob
	}
	return oa.Str == ob.Str
}

func equalArrays(h *Heap, ha, hb Handle) bool {
	if ha == hb {
		return true
	}
	oa, ob := h.Get(ha), h.Get(hb)
	if oa == nil || ob == nil {
		return oa == ob
	}
	if len(oa.Arr) != len(ob.Arr) {
		return false
	}
	for i := range oa.Arr {
		if !Equal(h, oa.Arr[i], ob.Arr[i]) {
			return false
		}
	}
	return true
}

func equalObjects(h *Heap, ha, hb Handle) bool {
	if ha == hb {
		return true
	}
	oa, ob := h.Get(ha), h.Get(hb)
	if oa == nil || ob == nil {
		return oa == ob
	}
	if len(oa.Fields) != len(ob.Fields) || oa.TypeName != ob.TypeName {
		return false
	}
	for k, v := range oa.Fields {
		other, ok := ob.Fields[k]
		if !ok || !Equal(h, v, other) {
			return false
		}
	}
	return true
}

func equalBuffers(h *Heap, ha, hb Handle) bool {
	if ha == hb {
		return true
	}
	oa, ob := h.Get(ha), h.Get(hb)
	if oa == nil || ob == nil {
		return oa == ob
	}
	if len(oa.Buf) != len(ob.Buf) {
		return false
	}
	for i := range oa.Buf {
		if oa.Buf[i] != ob.Buf[i] {
			return false
		}
	}
	return true
}
