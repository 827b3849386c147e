package runtime

import "hemlock/internal/ast"

func (interp *Interp) evalAssign(scope *Environment, e *ast.Assign) (Value, *signal) {
	v, sig := interp.evalExpr(scope, e.Value)
	if sig != nil {
		return Null, sig
	}

	switch target := e.Target.(type) {
	case *ast.Ident:
		if target.Resolved {
			if err := scope.SetSlot(target.Depth, target.Slot, v); err != nil {
				return Null, &signal{kind: sigThrow, err: err.(*Error)}
			}
			return v, nil
		}
		if err := scope.Set(target.Name, v); err != nil {
			return Null, &signal{kind: sigThrow, err: err.(*Error)}
		}
		return v, nil

	case *ast.Index:
		recv, sig := interp.evalExpr(scope, target.Receiver)
		if sig != nil {
			return Null, sig
		}
		idx, sig := interp.evalExpr(scope, target.Index)
		if sig != nil {
			return Null, sig
		}
		if err := interp.setIndex(recv, idx, v); err != nil {
			return Null, &signal{kind: sigThrow, err: err}
		}
		return v, nil

	case *ast.Property:
		recv, sig := interp.evalExpr(scope, target.Receiver)
		if sig != nil {
			return Null, sig
		}
		if err := interp.setProperty(recv, target.Name, v); err != nil {
			return Null, &signal{kind: sigThrow, err: err}
		}
		return v, nil

	default:
		return Null, &signal{kind: sigThrow, err: NewError(TypeError, "invalid assignment target %T", e.Target)}
	}
}

func (interp *Interp) evalIncDec(scope *Environment, e *ast.IncDec) (Value, *signal) {
	old, sig := interp.evalExpr(scope, e.Target)
	if sig != nil {
		return Null, sig
	}
	if old.Kind != KindInt {
		return Null, &signal{kind: sigThrow, err: NewError(TypeError, "++/-- requires an integer, got %s", old.Kind)}
	}
	next, err := NewInt(old.I+e.Delta, old.IW)
	if err != nil {
		return Null, &signal{kind: sigThrow, err: err}
	}

	switch target := e.Target.(type) {
	case *ast.Ident:
		if target.Resolved {
			if err := scope.SetSlot(target.Depth, target.Slot, next); err != nil {
				return Null, &signal{kind: sigThrow, err: err.(*Error)}
			}
		} else if err := scope.Set(target.Name, next); err != nil {
			return Null, &signal{kind: sigThrow, err: err.(*Error)}
		}
	case *ast.Index:
		recv, sig := interp.evalExpr(scope, target.Receiver)
		if sig != nil {
			return Null, sig
		}
		idx, sig := interp.evalExpr(scope, target.Index)
		if sig != nil {
			return Null, sig
		}
		if err := interp.setIndex(recv, idx, next); err != nil {
			return Null, &signal{kind: sigThrow, err: err}
		}
	case *ast.Property:
		recv, sig := interp.evalExpr(scope, target.Receiver)
		if sig != nil {
			return Null, sig
		}
		if err := interp.setProperty(recv, target.Name, next); err != nil {
			return Null, &signal{kind: sigThrow, err: err}
		}
	default:
		return Null, &signal{kind: sigThrow, err: NewError(TypeError, "invalid ++/-- target %T", e.Target)}
	}

	if e.Postfix {
		return old, nil
	}
	return next, nil
}

func (interp *Interp) evalIndex(scope *Environment, e *ast.Index) (Value, *signal) {
	recv, sig := interp.evalExpr(scope, e.Receiver)
	if sig != nil {
		return Null, sig
	}
	idx, sig := interp.evalExpr(scope, e.Index)
	if sig != nil {
		return Null, sig
	}
	v, err := interp.getIndex(recv, idx)
	if err != nil {
		return Null, &signal{kind: sigThrow, err: err}
	}
	return v, nil
}

func (interp *Interp) getIndex(recv, idx Value) (Value, *Error) {
	switch recv.Kind {
	case KindArray:
		obj := interp.Heap.Get(recv.Heap)
		if obj == nil {
			return Value{}, NewError(MemoryError, "index into freed array")
		}
		if idx.Kind != KindInt {
			return Value{}, NewError(TypeError, "array index must be an integer")
		}
		i := idx.I
		if i < 0 || i >= int64(len(obj.Arr)) {
			return Value{}, NewError(RangeError, "array index %d out of range [0, %d)", i, len(obj.Arr))
		}
		return obj.Arr[i], nil

	case KindObject:
		obj := interp.Heap.Get(recv.Heap)
		if obj == nil {
			return Value{}, NewError(MemoryError, "index into freed object")
		}
		if idx.Kind != KindString {
			return Value{}, NewError(TypeError, "object index must be a string")
		}
		v, ok := obj.Fields[interp.GetString(idx)]
		if !ok {
			return Null, nil
		}
		return v, nil

	case KindBuffer:
		obj := interp.Heap.Get(recv.Heap)
		if obj == nil {
			return Value{}, NewError(MemoryError, "index into freed buffer")
		}
		if idx.Kind != KindInt {
			return Value{}, NewError(TypeError, "buffer index must be an integer")
		}
		i := idx.I
		if i < 0 || i >= int64(len(obj.Buf)) {
			return Value{}, NewError(RangeError, "buffer index %d out of range [0, %d)", i, len(obj.Buf))
		}
		return MakeInt(int64(obj.Buf[i]), WidthU8), nil

	case KindString:
		obj := interp.Heap.Get(recv.Heap)
		if obj == nil {
			return Value{}, NewError(MemoryError, "index into freed string")
		}
		if idx.Kind != KindInt {
			return Value{}, NewError(TypeError, "string index must be an integer")
		}
		i := idx.I
		if i < 0 || i >= int64(len(obj.Str)) {
			return Value{}, NewError(RangeError, "string index %d out of range [0, %d)", i, len(obj.Str))
		}
		return MakeInt(int64(obj.Str[i]), WidthU8), nil

	default:
		return Value{}, NewError(TypeError, "value of type %s is not indexable", recv.Kind)
	}
}

func (interp *Interp) setIndex(recv, idx, v Value) *Error {
	switch recv.Kind {
	case KindArray:
		obj := interp.Heap.Get(recv.Heap)
		if obj == nil {
			return NewError(MemoryError, "index into freed array")
		}
		if idx.Kind != KindInt {
			return NewError(TypeError, "array index must be an integer")
		}
		i := idx.I
		if i < 0 || i >= int64(len(obj.Arr)) {
			return NewError(RangeError, "array index %d out of range [0, %d)", i, len(obj.Arr))
		}
		if err := obj.checkElementType(v); err != nil {
			return err
		}
		old := obj.Arr[i]
		if v.IsHeap() {
			interp.Heap.Retain(v.Heap)
		}
		obj.Arr[i] = v
		if old.IsHeap() {
			interp.Heap.Release(old.Heap)
		}
		return nil

	case KindObject:
		obj := interp.Heap.Get(recv.Heap)
		if obj == nil {
			return NewError(MemoryError, "index into freed object")
		}
		if idx.Kind != KindString {
			return NewError(TypeError, "object index must be a string")
		}
		return interp.setObjectField(obj, interp.GetString(idx), v)

	case KindBuffer:
		obj := interp.Heap.Get(recv.Heap)
		if obj == nil {
			return NewError(MemoryError, "index into freed buffer")
		}
		if idx.Kind != KindInt || v.Kind != KindInt {
			return NewError(TypeError, "buffer index and value must be integers")
		}
		i := idx.I
		if i < 0 || i >= int64(len(obj.Buf)) {
			return NewError(RangeError, "buffer index %d out of range [0, %d)", i, len(obj.Buf))
		}
		obj.Buf[i] = byte(v.I)
		return nil

	case KindString:
		obj := interp.Heap.Get(recv.Heap)
		if obj == nil {
			return NewError(MemoryError, "index into freed string")
		}
		if idx.Kind != KindInt || v.Kind != KindInt {
			return NewError(TypeError, "string index and value must be integers")
		}
		i := idx.I
		if i < 0 || i >= int64(len(obj.Str)) {
			return NewError(RangeError, "string index %d out of range [0, %d)", i, len(obj.Str))
		}
		b := []byte(obj.Str)
		b[i] = byte(v.I)
		obj.Str = string(b)
		return nil

	default:
		return NewError(TypeError, "value of type %s does not support index assignment", recv.Kind)
	}
}

func (interp *Interp) evalProperty(scope *Environment, e *ast.Property) (Value, *signal) {
	recv, sig := interp.evalExpr(scope, e.Receiver)
	if sig != nil {
		return Null, sig
	}
	v, err := interp.getProperty(recv, e.Name)
	if err != nil {
		return Null, &signal{kind: sigThrow, err: err}
	}
	return v, nil
}

func (interp *Interp) getProperty(recv Value, name string) (Value, *Error) {
	switch recv.Kind {
	case KindObject:
		obj := interp.Heap.Get(recv.Heap)
		if obj == nil {
			return Value{}, NewError(MemoryError, "property access on freed object")
		}
		v, ok := obj.Fields[name]
		if !ok {
			return Null, nil
		}
		return v, nil
	case KindArray:
		if name == "length" {
			obj := interp.Heap.Get(recv.Heap)
			if obj == nil {
				return Value{}, NewError(MemoryError, "property access on freed array")
			}
			return MakeInt(int64(len(obj.Arr)), WidthDefault), nil
		}
		return Value{}, NewError(UndefinedError, "array has no property %q", name)
	case KindString:
		if name == "length" {
			obj := interp.Heap.Get(recv.Heap)
			if obj == nil {
				return Value{}, NewError(MemoryError, "property access on freed string")
			}
			return MakeInt(int64(len(obj.Str)), WidthDefault), nil
		}
		return Value{}, NewError(UndefinedError, "string has no property %q", name)
	case KindBuffer:
		if name == "length" {
			obj := interp.Heap.Get(recv.Heap)
			if obj == nil {
				return Value{}, NewError(MemoryError, "property access on freed buffer")
			}
			return MakeInt(int64(len(obj.Buf)), WidthDefault), nil
		}
		return Value{}, NewError(UndefinedError, "buffer has no property %q", name)
	default:
		return Value{}, NewError(TypeError, "value of type %s has no properties", recv.Kind)
	}
}

func (interp *Interp) setProperty(recv Value, name string, v Value) *Error {
	if recv.Kind != KindObject {
		return NewError(TypeError, "cannot set property %q on value of type %s", name, recv.Kind)
	}
	obj := interp.Heap.Get(recv.Heap)
	if obj == nil {
		return NewError(MemoryError, "property assignment on freed object")
	}
	return interp.setObjectField(obj, name, v)
}

func (interp *Interp) setObjectField(obj *Object, name string, v Value) *Error {
	old, existed := obj.Fields[name]
	if v.IsHeap() {
		interp.Heap.Retain(v.Heap)
	}
	obj.Fields[name] = v
	if !existed {
		obj.FieldOrder = append(obj.FieldOrder, name)
	}
	if existed && old.IsHeap() {
		interp.Heap.Release(old.Heap)
	}
	return nil
}
