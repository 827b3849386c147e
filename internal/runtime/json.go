package runtime

import "github.com/goccy/go-json"

// builtinToJSON serializes a value to its JSON text form. Functions, tasks,
// channels and files have no JSON representation and raise a TypeError.
func builtinToJSON(interp *Interp, args []Value) (Value, error) {
	native, err := interp.toNative(argAt(args, 0))
	if err != nil {
		return Value{}, err
	}
	data, jerr := json.Marshal(native)
	if jerr != nil {
		return Value{}, NewError(TypeError, "toJSON: %v", jerr)
	}
	return interp.NewString(string(data)), nil
}

// builtinFromJSON parses a JSON text into an equivalent Hemlock value:
// objects become KindObject, arrays KindArray, numbers KindFloat (JSON has
// no integer/float distinction), and so on.
func builtinFromJSON(interp *Interp, args []Value) (Value, error) {
	text := interp.GetString(argAt(args, 0))
	var native any
	if err := json.Unmarshal([]byte(text), &native); err != nil {
		return Value{}, NewError(TypeError, "fromJSON: %v", err)
	}
	return interp.fromNative(native), nil
}

func (interp *Interp) toNative(v Value) (any, *Error) {
	return interp.toNativeVisiting(v, map[Handle]bool{})
}

func (interp *Interp) toNativeVisiting(v Value, visiting map[Handle]bool) (any, *Error) {
	switch v.Kind {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.B, nil
	case KindInt:
		return v.I, nil
	case KindFloat:
		return v.F, nil
	case KindString:
		return interp.GetString(v), nil
	case KindArray:
		if visiting[v.Heap] {
			return nil, NewError(TypeError, "toJSON: circular reference")
		}
		visiting[v.Heap] = true
		defer delete(visiting, v.Heap)
		obj := interp.Heap.Get(v.Heap)
		if obj == nil {
			return nil, NewError(MemoryError, "toJSON on freed array")
		}
		out := make([]any, len(obj.Arr))
		for i, e := range obj.Arr {
			n, err := interp.toNativeVisiting(e, visiting)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case KindObject:
		if visiting[v.Heap] {
			return nil, NewError(TypeError, "toJSON: circular reference")
		}
		visiting[v.Heap] = true
		defer delete(visiting, v.Heap)
		obj := interp.Heap.Get(v.Heap)
		if obj == nil {
			return nil, NewError(MemoryError, "toJSON on freed object")
		}
		out := make(map[string]any, len(obj.Fields))
		for _, name := range obj.FieldOrder {
			n, err := interp.toNativeVisiting(obj.Fields[name], visiting)
			if err != nil {
				return nil, err
			}
			out[name] = n
		}
		return out, nil
	default:
		return nil, NewError(TypeError, "value of type %s cannot be serialized to JSON", v.Kind)
	}
}

func (interp *Interp) fromNative(native any) Value {
	switch n := native.(type) {
	case nil:
		return Null
	case bool:
		return MakeBool(n)
	case float64:
		return MakeFloat(n, WidthF64)
	case string:
		return interp.NewString(n)
	case []any:
		elems := make([]Value, len(n))
		for i, e := range n {
			elems[i] = interp.fromNative(e)
		}
		return interp.NewArray(elems)
	case map[string]any:
		fields := make(map[string]Value, len(n))
		order := make([]string, 0, len(n))
		for k, v := range n {
			fields[k] = interp.fromNative(v)
			order = append(order, k)
		}
		return interp.NewObject("", order, fields)
	default:
		return Null
	}
}
