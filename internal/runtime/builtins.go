package runtime

import "fmt"

// BuiltinTable is the set of global functions bound into an Interp's
// top-level scope at construction time.
type BuiltinTable map[string]Value

func registerBuiltins(interp *Interp) BuiltinTable {
	table := make(BuiltinTable)
	define := func(name string, fn BuiltinFunc) {
		v := interp.NewBuiltin(name, fn)
		table[name] = v
		interp.Globals.Define(name, v, true)
	}

	define("print", builtinPrint)
	define("len", builtinLen)
	define("typeof", builtinTypeof)
	define("free", builtinFree)
	define("spawn", builtinSpawn)
	define("join", builtinJoin)
	define("detach", builtinDetach)
	define("channel", builtinChannel)
	define("send", builtinSend)
	define("recv", builtinRecv)
	define("close", builtinClose)
	define("open", builtinOpen)
	define("buffer", builtinBuffer)
	define("typedArray", builtinTypedArray)
	define("toJSON", builtinToJSON)
	define("fromJSON", builtinFromJSON)
	define("heapDump", builtinHeapDump)

	return table
}

func builtinPrint(interp *Interp, args []Value) (Value, error) {
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(interp.Stdout, " ")
		}
		s, err := interp.stringify(a)
		if err != nil {
			return Value{}, err
		}
		fmt.Fprint(interp.Stdout, s)
	}
	fmt.Fprintln(interp.Stdout)
	return Null, nil
}

func builtinLen(interp *Interp, args []Value) (Value, error) {
	v := argAt(args, 0)
	switch v.Kind {
	case KindString:
		return MakeInt(int64(len(interp.GetString(v))), WidthDefault), nil
	case KindArray:
		obj := interp.Heap.Get(v.Heap)
		if obj == nil {
			return Value{}, NewError(MemoryError, "len of freed array")
		}
		return MakeInt(int64(len(obj.Arr)), WidthDefault), nil
	case KindBuffer:
		obj := interp.Heap.Get(v.Heap)
		if obj == nil {
			return Value{}, NewError(MemoryError, "len of freed buffer")
		}
		return MakeInt(int64(len(obj.Buf)), WidthDefault), nil
	case KindObject:
		obj := interp.Heap.Get(v.Heap)
		if obj == nil {
			return Value{}, NewError(MemoryError, "len of freed object")
		}
		return MakeInt(int64(len(obj.FieldOrder)), WidthDefault), nil
	default:
		return Value{}, NewError(TypeError, "len() is not defined for %s", v.Kind)
	}
}

func builtinTypeof(interp *Interp, args []Value) (Value, error) {
	return interp.NewString(argAt(args, 0).Kind.String()), nil
}

func builtinFree(interp *Interp, args []Value) (Value, error) {
	v := argAt(args, 0)
	if !v.IsHeap() {
		return Null, nil
	}
	if err := interp.Heap.ExplicitFree(v.Heap); err != nil {
		return Value{}, err
	}
	return Null, nil
}

func builtinSpawn(interp *Interp, args []Value) (Value, error) {
	if len(args) == 0 {
		return Value{}, NewError(ArityError, "spawn expects at least a function argument")
	}
	return interp.Spawn(args[0], args[1:])
}

func builtinJoin(interp *Interp, args []Value) (Value, error) {
	return interp.Join(argAt(args, 0))
}

func builtinDetach(interp *Interp, args []Value) (Value, error) {
	if err := interp.Detach(argAt(args, 0)); err != nil {
		return Value{}, err
	}
	return Null, nil
}

func builtinChannel(interp *Interp, args []Value) (Value, error) {
	capacity := int64(0)
	if a := argAt(args, 0); a.Kind == KindInt {
		capacity = a.I
	}
	return interp.NewChannel(int(capacity)), nil
}

func builtinSend(interp *Interp, args []Value) (Value, error) {
	if err := interp.Send(argAt(args, 0), argAt(args, 1)); err != nil {
		return Value{}, err
	}
	return Null, nil
}

func builtinRecv(interp *Interp, args []Value) (Value, error) {
	v, ok, err := interp.Recv(argAt(args, 0))
	if err != nil {
		return Value{}, err
	}
	if !ok {
		return Null, nil
	}
	return v, nil
}

func builtinClose(interp *Interp, args []Value) (Value, error) {
	v := argAt(args, 0)
	if v.Kind == KindChannel {
		if err := interp.CloseChannel(v); err != nil {
			return Value{}, err
		}
		return Null, nil
	}
	if v.Kind == KindFile {
		return fileClose(interp, v, nil)
	}
	return Value{}, NewError(TypeError, "close() is not defined for %s", v.Kind)
}

func builtinOpen(interp *Interp, args []Value) (Value, error) {
	path := interp.GetString(argAt(args, 0))
	mode := "r"
	if a := argAt(args, 1); a.Kind == KindString {
		mode = interp.GetString(a)
	}
	return interp.NewFile(path, mode)
}

func valueKindByName(name string) (ValueKind, bool) {
	for _, k := range []ValueKind{KindNull, KindBool, KindInt, KindFloat, KindRune, KindString, KindArray,
		KindObject, KindBuffer, KindFunction, KindTask, KindChannel, KindFile} {
		if k.String() == name {
			return k, true
		}
	}
	return KindNull, false
}

// builtinTypedArray constructs an array constrained to a single element
// kind, e.g. typedArray("int", [1, 2, 3]).
func builtinTypedArray(interp *Interp, args []Value) (Value, error) {
	kindArg := argAt(args, 0)
	if kindArg.Kind != KindString {
		return Value{}, NewError(TypeError, "typedArray expects a kind name string as its first argument")
	}
	kindName := interp.GetString(kindArg)
	elemKind, ok := valueKindByName(kindName)
	if !ok {
		return Value{}, NewError(TypeError, "unknown element kind %q", kindName)
	}
	elems := argAt(args, 1)
	var initial []Value
	if elems.Kind == KindArray {
		obj, err := arrObj(interp, elems)
		if err != nil {
			return Value{}, err
		}
		initial = make([]Value, len(obj.Arr))
		copy(initial, obj.Arr)
	}
	for _, v := range initial {
		if v.Kind != elemKind {
			return Value{}, NewError(TypeError, "typed array expects %s, got %s", elemKind, v.Kind)
		}
	}
	return interp.NewTypedArray(initial, elemKind), nil
}

func builtinBuffer(interp *Interp, args []Value) (Value, error) {
	n := int64(0)
	if a := argAt(args, 0); a.Kind == KindInt {
		n = a.I
	}
	if n < 0 {
		return Value{}, NewError(RangeError, "buffer size must be non-negative, got %d", n)
	}
	return interp.NewBuffer(make([]byte, n)), nil
}
