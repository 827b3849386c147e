package runtime

import "hemlock/internal/ast"

// evalArgs evaluates positional, named and spread call arguments in source
// order into a flat positional list. A named argument takes its place in
// that list by position; it is not matched against parameter names.
func (interp *Interp) evalArgs(scope *Environment, args []ast.Arg) ([]Value, *signal) {
	var out []Value
	for _, a := range args {
		v, sig := interp.evalExpr(scope, a.Value)
		if sig != nil {
			return nil, sig
		}
		if a.Spread {
			obj := interp.Heap.Get(v.Heap)
			if v.Kind != KindArray || obj == nil {
				return nil, &signal{kind: sigThrow, err: NewError(TypeError, "spread argument must be an array")}
			}
			out = append(out, obj.Arr...)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (interp *Interp) evalCall(scope *Environment, e *ast.Call) (Value, *signal) {
	callee, sig := interp.evalExpr(scope, e.Callee)
	if sig != nil {
		return Null, sig
	}
	if callee.Kind != KindFunction {
		return Null, &signal{kind: sigThrow, err: NewError(TypeError, "value of type %s is not callable", callee.Kind)}
	}
	obj := interp.Heap.Get(callee.Heap)
	if obj == nil {
		return Null, &signal{kind: sigThrow, err: NewError(MemoryError, "call through freed function value")}
	}

	args, sig := interp.evalArgs(scope, e.Args)
	if sig != nil {
		return Null, sig
	}

	result, callSig := interp.callFunction(obj.Fn, args)
	if callSig != nil {
		return Null, callSig
	}
	return result, nil
}

// evalFieldCall invokes a function found by evalMethodCall's field-fallback
// step: an object field holding a function value, called plainly (the
// object itself is not passed as an implicit receiver).
func (interp *Interp) evalFieldCall(callee Value, args []Value) (Value, *signal) {
	obj := interp.Heap.Get(callee.Heap)
	if obj == nil {
		return Null, &signal{kind: sigThrow, err: NewError(MemoryError, "call through freed function value")}
	}
	result, callSig := interp.callFunction(obj.Fn, args)
	if callSig != nil {
		return Null, callSig
	}
	return result, nil
}

func (interp *Interp) evalMethodCall(scope *Environment, e *ast.MethodCall) (Value, *signal) {
	recv, sig := interp.evalExpr(scope, e.Receiver)
	if sig != nil {
		return Null, sig
	}
	args, sig := interp.evalArgs(scope, e.Args)
	if sig != nil {
		return Null, sig
	}

	method := lookupMethod(recv.Kind, e.Name)
	if method == nil {
		if recv.Kind == KindObject {
			if fv, ferr := interp.getProperty(recv, e.Name); ferr == nil && fv.Kind == KindFunction {
				return interp.evalFieldCall(fv, args)
			}
		}
		return Null, &signal{kind: sigThrow, err: NewError(UndefinedError, "%s has no method %q", recv.Kind, e.Name)}
	}
	v, err := method(interp, recv, args)
	if err != nil {
		if rerr, ok := err.(*Error); ok {
			return Null, &signal{kind: sigThrow, err: rerr}
		}
		return Null, &signal{kind: sigThrow, err: NewError(TypeError, "%v", err)}
	}
	return v, nil
}
