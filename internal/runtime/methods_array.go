package runtime

func init() {
	arrayMethods = map[string]MethodFunc{
		"push":    arrPush,
		"pop":     arrPop,
		"shift":   arrShift,
		"unshift": arrUnshift,
		"insert":  arrInsert,
		"remove":  arrRemove,
		"get":     arrGet,
		"set":     arrSet,
		"first":   arrFirst,
		"last":    arrLast,
		"clear":   arrClear,
		"find":    arrFind,
		"contains": arrContains,
		"concat":  arrConcat,
		"slice":   arrSlice,
		"map":     arrMap,
		"filter":  arrFilter,
		"reduce":  arrReduce,
		"join":    arrJoin,
		"reverse": arrReverse,
		"indexOf": arrIndexOf,
	}
}

func arrObj(interp *Interp, recv Value) (*Object, error) {
	obj := interp.Heap.Get(recv.Heap)
	if obj == nil {
		return nil, NewError(MemoryError, "method call on freed array")
	}
	return obj, nil
}

func arrPush(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	for _, v := range args {
		if cerr := obj.checkElementType(v); cerr != nil {
			return Value{}, cerr
		}
	}
	for _, v := range args {
		if v.IsHeap() {
			interp.Heap.Retain(v.Heap)
		}
		obj.Arr = append(obj.Arr, v)
	}
	return MakeInt(int64(len(obj.Arr)), WidthDefault), nil
}

func arrPop(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	if len(obj.Arr) == 0 {
		return Null, nil
	}
	last := obj.Arr[len(obj.Arr)-1]
	obj.Arr = obj.Arr[:len(obj.Arr)-1]
	// Ownership transfers to the caller, who now holds the only reference
	// this array used to hold on last's behalf; no release here.
	return last, nil
}

func arrShift(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	if len(obj.Arr) == 0 {
		return Null, nil
	}
	first := obj.Arr[0]
	obj.Arr = obj.Arr[1:]
	return first, nil
}

func arrUnshift(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	for _, v := range args {
		if cerr := obj.checkElementType(v); cerr != nil {
			return Value{}, cerr
		}
	}
	for _, v := range args {
		if v.IsHeap() {
			interp.Heap.Retain(v.Heap)
		}
	}
	obj.Arr = append(append([]Value{}, args...), obj.Arr...)
	return MakeInt(int64(len(obj.Arr)), WidthDefault), nil
}

func arrInsert(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	idx := argAt(args, 0)
	v := argAt(args, 1)
	if idx.Kind != KindInt {
		return Value{}, NewError(TypeError, "insert index must be an integer")
	}
	i := idx.I
	if i < 0 || i > int64(len(obj.Arr)) {
		return Value{}, NewError(RangeError, "insert index %d out of range [0, %d]", i, len(obj.Arr))
	}
	if cerr := obj.checkElementType(v); cerr != nil {
		return Value{}, cerr
	}
	if v.IsHeap() {
		interp.Heap.Retain(v.Heap)
	}
	obj.Arr = append(obj.Arr, Value{})
	copy(obj.Arr[i+1:], obj.Arr[i:])
	obj.Arr[i] = v
	return Null, nil
}

func arrRemove(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	idx := argAt(args, 0)
	if idx.Kind != KindInt {
		return Value{}, NewError(TypeError, "remove index must be an integer")
	}
	i := idx.I
	if i < 0 || i >= int64(len(obj.Arr)) {
		return Value{}, NewError(RangeError, "remove index %d out of range [0, %d)", i, len(obj.Arr))
	}
	removed := obj.Arr[i]
	obj.Arr = append(obj.Arr[:i], obj.Arr[i+1:]...)
	return removed, nil
}

func arrGet(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	idx := argAt(args, 0)
	if idx.Kind != KindInt {
		return Value{}, NewError(TypeError, "get index must be an integer")
	}
	i := idx.I
	if i < 0 || i >= int64(len(obj.Arr)) {
		return Value{}, NewError(RangeError, "array index %d out of range [0, %d)", i, len(obj.Arr))
	}
	return obj.Arr[i], nil
}

func arrSet(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	idx := argAt(args, 0)
	v := argAt(args, 1)
	if idx.Kind != KindInt {
		return Value{}, NewError(TypeError, "set index must be an integer")
	}
	i := idx.I
	if i < 0 || i >= int64(len(obj.Arr)) {
		return Value{}, NewError(RangeError, "array index %d out of range [0, %d)", i, len(obj.Arr))
	}
	if cerr := obj.checkElementType(v); cerr != nil {
		return Value{}, cerr
	}
	old := obj.Arr[i]
	if v.IsHeap() {
		interp.Heap.Retain(v.Heap)
	}
	obj.Arr[i] = v
	if old.IsHeap() {
		interp.Heap.Release(old.Heap)
	}
	return Null, nil
}

func arrFirst(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	if len(obj.Arr) == 0 {
		return Null, nil
	}
	return obj.Arr[0], nil
}

func arrLast(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	if len(obj.Arr) == 0 {
		return Null, nil
	}
	return obj.Arr[len(obj.Arr)-1], nil
}

func arrClear(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	for _, v := range obj.Arr {
		if v.IsHeap() {
			interp.Heap.Release(v.Heap)
		}
	}
	obj.Arr = nil
	return Null, nil
}

// arrFind returns the first element equal to the argument, or null.
func arrFind(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	target := argAt(args, 0)
	for _, v := range obj.Arr {
		if Equal(interp.Heap, v, target) {
			return v, nil
		}
	}
	return Null, nil
}

func arrContains(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	target := argAt(args, 0)
	for _, v := range obj.Arr {
		if Equal(interp.Heap, v, target) {
			return MakeBool(true), nil
		}
	}
	return MakeBool(false), nil
}

func arrConcat(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	other := argAt(args, 0)
	if other.Kind != KindArray {
		return Value{}, NewError(TypeError, "concat expects an array argument")
	}
	otherObj, err := arrObj(interp, other)
	if err != nil {
		return Value{}, err
	}
	out := make([]Value, 0, len(obj.Arr)+len(otherObj.Arr))
	out = append(out, obj.Arr...)
	out = append(out, otherObj.Arr...)
	return interp.NewArray(out), nil
}

func arrSlice(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	start, end := int64(0), int64(len(obj.Arr))
	if a := argAt(args, 0); a.Kind == KindInt {
		start = a.I
	}
	if a := argAt(args, 1); a.Kind == KindInt {
		end = a.I
	}
	if start < 0 {
		start = 0
	}
	if end > int64(len(obj.Arr)) {
		end = int64(len(obj.Arr))
	}
	if start > end {
		start = end
	}
	out := make([]Value, end-start)
	copy(out, obj.Arr[start:end])
	return interp.NewArray(out), nil
}

func callCallback(interp *Interp, fnValue Value, args ...Value) (Value, error) {
	if fnValue.Kind != KindFunction {
		return Value{}, NewError(TypeError, "expected a function callback, got %s", fnValue.Kind)
	}
	obj := interp.Heap.Get(fnValue.Heap)
	if obj == nil {
		return Value{}, NewError(MemoryError, "call through freed function value")
	}
	v, sig := interp.callFunction(obj.Fn, args)
	if sig != nil {
		return Value{}, sig.err
	}
	return v, nil
}

func arrMap(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	fn := argAt(args, 0)
	out := make([]Value, len(obj.Arr))
	for i, v := range obj.Arr {
		r, err := callCallback(interp, fn, v, MakeInt(int64(i), WidthDefault))
		if err != nil {
			return Value{}, err
		}
		out[i] = r
	}
	return interp.NewArray(out), nil
}

func arrFilter(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	fn := argAt(args, 0)
	var out []Value
	for i, v := range obj.Arr {
		keep, err := callCallback(interp, fn, v, MakeInt(int64(i), WidthDefault))
		if err != nil {
			return Value{}, err
		}
		if interp.Truthy(keep) {
			out = append(out, v)
		}
	}
	return interp.NewArray(out), nil
}

func arrReduce(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	fn := argAt(args, 0)
	start := 0
	var acc Value
	if len(args) >= 2 {
		acc = args[1]
	} else {
		if len(obj.Arr) == 0 {
			return Value{}, NewError(RangeError, "reduce of empty array with no initial value")
		}
		acc = obj.Arr[0]
		start = 1
	}
	for i := start; i < len(obj.Arr); i++ {
		acc, err = callCallback(interp, fn, acc, obj.Arr[i], MakeInt(int64(i), WidthDefault))
		if err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

func arrJoin(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	sep := ","
	if a := argAt(args, 0); a.Kind == KindString {
		sep = interp.GetString(a)
	}
	parts := make([]string, len(obj.Arr))
	for i, v := range obj.Arr {
		s, serr := interp.stringify(v)
		if serr != nil {
			return Value{}, serr
		}
		parts[i] = s
	}
	joined := ""
	for i, p := range parts {
		if i > 0 {
			joined += sep
		}
		joined += p
	}
	return interp.NewString(joined), nil
}

// arrReverse reverses the array in place and returns the same receiver.
func arrReverse(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	for i, j := 0, len(obj.Arr)-1; i < j; i, j = i+1, j-1 {
		obj.Arr[i], obj.Arr[j] = obj.Arr[j], obj.Arr[i]
	}
	return recv, nil
}

func arrIndexOf(interp *Interp, recv Value, args []Value) (Value, error) {
	obj, err := arrObj(interp, recv)
	if err != nil {
		return Value{}, err
	}
	target := argAt(args, 0)
	for i, v := range obj.Arr {
		if Equal(interp.Heap, v, target) {
			return MakeInt(int64(i), WidthDefault), nil
		}
	}
	return MakeInt(-1, WidthDefault), nil
}
