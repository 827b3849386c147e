package runtime

func init() {
	bufferMethods = map[string]MethodFunc{
		"toString": bufToString,
		"slice":    bufSlice,
		"fill":     bufFill,
	}
}

func bufRec(interp *Interp, recv Value) (*Object, error) {
	obj := interp.Heap.Get(recv.Heap)
	if obj == nil {
		return nil, NewError(MemoryError, "method call on freed buffer")
	}
	return obj, nil
}

func bufToString(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := bufRec(interp, recv)
	if err != nil {
		return Value{}, err
	}
	return interp.NewString(string(obj.Buf)), nil
}

func bufSlice(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := bufRec(interp, recv)
	if err != nil {
		return Value{}, err
	}
	start, end := int64(0), int64(len(obj.Buf))
	if a := argAt(args, 0); a.Kind == KindInt {
		start = a.I
	}
	if a := argAt(args, 1); a.Kind == KindInt {
		end = a.I
	}
	if start < 0 {
		start = 0
	}
	if end > int64(len(obj.Buf)) {
		end = int64(len(obj.Buf))
	}
	if start > end {
		start = end
	}
	out := make([]byte, end-start)
	copy(out, obj.Buf[start:end])
	return interp.NewBuffer(out), nil
}

func bufFill(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := bufRec(interp, recv)
	if err != nil {
		return Value{}, err
	}
	b := byte(argAt(args, 0).I)
	for i := range obj.Buf {
		obj.Buf[i] = b
	}
	return recv, nil
}
