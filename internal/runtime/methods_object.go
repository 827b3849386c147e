package runtime

func init() {
	objectMethods = map[string]MethodFunc{
		"keys":       objKeys,
		"values":     objValues,
		"has":        objHas,
		"delete":     objDelete,
		"typeName":   objTypeName,
	}
}

func objRec(interp *Interp, recv Value) (*Object, error) {
	obj := interp.Heap.Get(recv.Heap)
	if obj == nil {
		return nil, NewError(MemoryError, "method call on freed object")
	}
	return obj, nil
}

func objKeys(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := objRec(interp, recv)
	if err != nil {
		return Value{}, err
	}
	out := make([]Value, len(obj.FieldOrder))
	for i, k := range obj.FieldOrder {
		out[i] = interp.NewString(k)
	}
	return interp.NewArray(out), nil
}

func objValues(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := objRec(interp, recv)
	if err != nil {
		return Value{}, err
	}
	out := make([]Value, len(obj.FieldOrder))
	for i, k := range obj.FieldOrder {
		out[i] = obj.Fields[k]
	}
	return interp.NewArray(out), nil
}

func objHas(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := objRec(interp, recv)
	if err != nil {
		return Value{}, err
	}
	_, ok := obj.Fields[interp.GetString(argAt(args, 0))]
	return MakeBool(ok), nil
}

func objDelete(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := objRec(interp, recv)
	if err != nil {
		return Value{}, err
	}
	name := interp.GetString(argAt(args, 0))
	old, ok := obj.Fields[name]
	if !ok {
		return MakeBool(false), nil
	}
	delete(obj.Fields, name)
	for i, k := range obj.FieldOrder {
		if k == name {
			obj.FieldOrder = append(obj.FieldOrder[:i], obj.FieldOrder[i+1:]...)
			break
		}
	}
	if old.IsHeap() {
		interp.Heap.Release(old.Heap)
	}
	return MakeBool(true), nil
}

func objTypeName(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := objRec(interp, recv)
	if err != nil {
		return Value{}, err
	}
	return interp.NewString(obj.TypeName), nil
}
