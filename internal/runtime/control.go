package runtime

import "hemlock/internal/ast"

// frame tracks the deferred calls registered by a single function
// invocation, run LIFO when the call returns, throws or falls off the end
// of its body.
type frame struct {
	defers []deferredCall
}

type deferredCall struct {
	scope *Environment
	call  ast.Expr
}

func (fr *frame) push(scope *Environment, call ast.Expr) {
	fr.defers = append(fr.defers, deferredCall{scope: scope, call: call})
}

// runDefers runs fr's deferred calls LIFO. A defer that throws replaces
// whatever signal is currently propagating.
func (interp *Interp) runDefers(scope *Environment, fr *frame, sig **signal) {
	for i := len(fr.defers) - 1; i >= 0; i-- {
		d := fr.defers[i]
		_, callSig := interp.evalExpr(d.scope, d.call)
		if callSig != nil && callSig.kind == sigThrow {
			*sig = callSig
		}
	}
}

// execBlock runs block's statements in a fresh child scope, releasing every
// local the scope owns on the way out regardless of how the block exits. fr
// threads the enclosing function frame through for defer registration; it
// is nil when block is not inside a function body (a bare top-level or
// REPL block, say).
func (interp *Interp) execBlock(parent *Environment, block *ast.Block, fr *frame) (Value, *signal) {
	scope := parent.Child()
	defer scope.Release()

	last := Null
	for _, stmt := range block.Statements {
		val, sig := interp.execStmtFrame(scope, stmt, fr)
		if sig != nil {
			return Null, sig
		}
		last = val
	}
	return last, nil
}
