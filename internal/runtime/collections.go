package runtime

// iterate returns the sequence of values a for-in loop walks over v:
// array elements, one single-character string per rune of a string, or
// the field names of an object, as strings, in insertion order.
func (interp *Interp) iterate(v Value) ([]Value, *Error) {
	switch v.Kind {
	case KindArray:
		obj := interp.Heap.Get(v.Heap)
		if obj == nil {
			return nil, NewError(MemoryError, "iterate over freed array")
		}
		out := make([]Value, len(obj.Arr))
		copy(out, obj.Arr)
		return out, nil

	case KindString:
		obj := interp.Heap.Get(v.Heap)
		if obj == nil {
			return nil, NewError(MemoryError, "iterate over freed string")
		}
		var out []Value
		for _, r := range obj.Str {
			out = append(out, interp.NewString(string(r)))
		}
		return out, nil

	case KindObject:
		obj := interp.Heap.Get(v.Heap)
		if obj == nil {
			return nil, NewError(MemoryError, "iterate over freed object")
		}
		out := make([]Value, 0, len(obj.FieldOrder))
		for _, name := range obj.FieldOrder {
			out = append(out, interp.NewString(name))
		}
		return out, nil

	default:
		return nil, NewError(TypeError, "value of type %s is not iterable", v.Kind)
	}
}
