package runtime

import "hemlock/internal/ast"

// BuiltinFunc is the Go implementation behind a native function value.
type BuiltinFunc func(interp *Interp, args []Value) (Value, error)

// FunctionObj is the heap payload of a KindFunction value. Exactly one of
// Body (user-defined) or Native (builtin) is set.
type FunctionObj struct {
	Name      string
	Params    []ast.Param
	RestParam string
	Body      *ast.Block
	Closure   *Environment
	IsAsync   bool
	Native    BuiltinFunc
}

// NewFunction allocates a user-defined function value.
func (interp *Interp) NewFunction(lit *ast.FuncLit, closure *Environment) Value {
	fn := &FunctionObj{
		Name:      lit.Name,
		Params:    lit.Params,
		RestParam: lit.RestParam,
		Body:      lit.Body,
		Closure:   closure,
		IsAsync:   lit.IsAsync,
	}
	handle := interp.Heap.Alloc(&Object{Kind: ObjFunction, Fn: fn})
	return makeHeapValue(KindFunction, handle)
}

// NewBuiltin wraps a Go function as a Hemlock callable.
func (interp *Interp) NewBuiltin(name string, fn BuiltinFunc) Value {
	handle := interp.Heap.Alloc(&Object{Kind: ObjFunction, Fn: &FunctionObj{Name: name, Native: fn}})
	return makeHeapValue(KindFunction, handle)
}
