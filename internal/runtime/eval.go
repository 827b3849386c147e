package runtime

import (
	"io"
	"os"

	"hemlock/internal/ast"
	"hemlock/internal/asyncrt"
	"hemlock/internal/trace"
)

// Interp is the evaluator: the Heap it allocates against, the global scope,
// the builtin registry, and the ambient stack (tracer, task pool, output
// sink) every operation is threaded through.
type Interp struct {
	Heap     *Heap
	Globals  *Environment
	Builtins BuiltinTable
	Tracer   trace.Tracer
	Pool     *asyncrt.Pool
	Stdout   io.Writer
	Argv     []string
}

// New constructs an Interp ready to evaluate a program.
func New(cfg Config, tracer trace.Tracer) *Interp {
	if tracer == nil {
		tracer = trace.Nop
	}
	heap := NewHeap(tracer)
	interp := &Interp{
		Heap:   heap,
		Globals: NewEnvironment(heap),
		Tracer: tracer,
		Pool:   asyncrt.NewPool(cfg.MaxConcurrentTasks),
		Stdout: os.Stdout,
	}
	interp.Builtins = registerBuiltins(interp)
	return interp
}

// Run evaluates prog's top-level statements in the global scope. It
// returns the value the last top-level statement produced (mostly useful for tests
// and a REPL-style CLI) and a possibly-nil *Error if evaluation raised an
// uncaught exception.
func (interp *Interp) Run(prog *ast.Program) (Value, *Error) {
	span := trace.Begin(interp.Tracer, trace.ScopeEval, "run", 0)
	defer span.End("")

	last := Null
	for _, stmt := range prog.Statements {
		val, sig := interp.execStmt(interp.Globals, stmt)
		if sig != nil {
			switch sig.kind {
			case sigThrow:
				return Null, sig.err
			case sigReturn:
				return sig.value, nil
			default:
				// break/continue at top level are evaluator bugs in the
				// resolver's scope tracking, not user-reachable.
				continue
			}
		}
		last = val
	}
	return last, nil
}

// callFunction invokes fn with args already evaluated, pushing a fresh
// scope chained off its closure. Returns the call's value and, if it threw
// or a defer re-threw, the propagating signal.
func (interp *Interp) callFunction(fn *FunctionObj, args []Value) (Value, *signal) {
	if fn.Native != nil {
		v, err := fn.Native(interp, args)
		if err != nil {
			if rerr, ok := err.(*Error); ok {
				return Null, &signal{kind: sigThrow, err: rerr}
			}
			return Null, &signal{kind: sigThrow, err: NewError(TypeError, "%v", err)}
		}
		return v, nil
	}

	span := trace.Begin(interp.Tracer, trace.ScopeEval, "call:"+fn.Name, 0)
	defer span.End("")

	scope := fn.Closure.Child()
	defer scope.Release()

	if err := bindParams(interp, scope, fn, args); err != nil {
		return Null, &signal{kind: sigThrow, err: err}
	}

	fr := &frame{}
	result, sig := interp.execBlock(scope, fn.Body, fr)
	interp.runDefers(scope, fr, &sig)

	if sig != nil {
		if sig.kind == sigReturn {
			return sig.value, nil
		}
		if sig.kind == sigThrow {
			return Null, sig
		}
	}
	return result, nil
}

func bindParams(interp *Interp, scope *Environment, fn *FunctionObj, args []Value) *Error {
	n := len(fn.Params)
	if fn.RestParam == "" && len(args) != n {
		return NewError(ArityError, "%s expects %d argument(s), got %d", fn.Name, n, len(args))
	}
	if fn.RestParam != "" && len(args) < n {
		return NewError(ArityError, "%s expects at least %d argument(s), got %d", fn.Name, n, len(args))
	}
	for i, p := range fn.Params {
		var v Value
		if i < len(args) {
			v = args[i]
		} else if p.Default != nil {
			var sig *signal
			v, sig = interp.evalExpr(scope, p.Default)
			if sig != nil {
				return sig.err
			}
		} else {
			return NewError(ArityError, "missing argument %q", p.Name)
		}
		if _, err := scope.Define(p.Name, v, false); err != nil {
			return err.(*Error)
		}
	}
	if fn.RestParam != "" {
		rest := args[n:]
		arr := make([]Value, len(rest))
		copy(arr, rest)
		for _, v := range arr {
			if v.IsHeap() {
				interp.Heap.Retain(v.Heap)
			}
		}
		handle := interp.Heap.Alloc(&Object{Kind: ObjArray, Arr: arr})
		if _, err := scope.Define(fn.RestParam, makeHeapValue(KindArray, handle), false); err != nil {
			return err.(*Error)
		}
	}
	return nil
}
