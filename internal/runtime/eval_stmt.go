package runtime

import "hemlock/internal/ast"

// execStmt runs a single top-level statement with no enclosing function
// frame; Defer is rejected outside a function body.
func (interp *Interp) execStmt(scope *Environment, stmt ast.Stmt) (Value, *signal) {
	return interp.execStmtFrame(scope, stmt, nil)
}

// execStmtFrame dispatches on stmt's concrete type. fr is the enclosing
// function's defer frame, nil at top level.
func (interp *Interp) execStmtFrame(scope *Environment, stmt ast.Stmt, fr *frame) (Value, *signal) {
	switch s := stmt.(type) {
	case *ast.Block:
		return interp.execBlock(scope, s, fr)

	case *ast.LetStmt:
		v := Null
		if s.Value != nil {
			var sig *signal
			v, sig = interp.evalExpr(scope, s.Value)
			if sig != nil {
				return Null, sig
			}
		}
		if _, err := scope.Define(s.Name, v, s.Const); err != nil {
			return Null, &signal{kind: sigThrow, err: err.(*Error)}
		}
		return Null, nil

	case *ast.ExprStmt:
		return interp.evalExpr(scope, s.X)

	case *ast.If:
		cond, sig := interp.evalExpr(scope, s.Cond)
		if sig != nil {
			return Null, sig
		}
		if interp.Truthy(cond) {
			return interp.execBlock(scope, s.Then, fr)
		}
		if s.Else != nil {
			return interp.execStmtFrame(scope, s.Else, fr)
		}
		return Null, nil

	case *ast.While:
		for {
			cond, sig := interp.evalExpr(scope, s.Cond)
			if sig != nil {
				return Null, sig
			}
			if !interp.Truthy(cond) {
				return Null, nil
			}
			_, sig = interp.execBlock(scope, s.Body, fr)
			if sig != nil {
				if sig.kind == sigBreak {
					return Null, nil
				}
				if sig.kind == sigContinue {
					continue
				}
				return Null, sig
			}
		}

	case *ast.For:
		loopScope := scope.Child()
		defer loopScope.Release()
		if s.Init != nil {
			if _, sig := interp.execStmtFrame(loopScope, s.Init, fr); sig != nil {
				return Null, sig
			}
		}
		for {
			if s.Cond != nil {
				cond, sig := interp.evalExpr(loopScope, s.Cond)
				if sig != nil {
					return Null, sig
				}
				if !interp.Truthy(cond) {
					return Null, nil
				}
			}
			_, sig := interp.execBlock(loopScope, s.Body, fr)
			if sig != nil {
				if sig.kind == sigBreak {
					return Null, nil
				}
				if sig.kind != sigContinue {
					return Null, sig
				}
			}
			if s.Post != nil {
				if _, sig := interp.execStmtFrame(loopScope, s.Post, fr); sig != nil {
					return Null, sig
				}
			}
		}

	case *ast.ForIn:
		iterable, sig := interp.evalExpr(scope, s.Iterable)
		if sig != nil {
			return Null, sig
		}
		items, err := interp.iterate(iterable)
		if err != nil {
			return Null, &signal{kind: sigThrow, err: err}
		}
		for _, item := range items {
			loopScope := scope.Child()
			loopScope.Define(s.Name, item, false)
			_, sig := interp.execBlock(loopScope, s.Body, fr)
			loopScope.Release()
			if sig != nil {
				if sig.kind == sigBreak {
					return Null, nil
				}
				if sig.kind == sigContinue {
					continue
				}
				return Null, sig
			}
		}
		return Null, nil

	case *ast.Return:
		v := Null
		if s.Value != nil {
			var sig *signal
			v, sig = interp.evalExpr(scope, s.Value)
			if sig != nil {
				return Null, sig
			}
		}
		return Null, &signal{kind: sigReturn, value: v}

	case *ast.Break:
		return Null, &signal{kind: sigBreak}

	case *ast.Continue:
		return Null, &signal{kind: sigContinue}

	case *ast.Throw:
		v, sig := interp.evalExpr(scope, s.Value)
		if sig != nil {
			return Null, sig
		}
		return Null, &signal{kind: sigThrow, err: &Error{Kind: UserThrow, Message: interp.textOf(v), Payload: v}}

	case *ast.Defer:
		if fr == nil {
			return Null, &signal{kind: sigThrow, err: NewError(TypeError, "defer used outside a function body")}
		}
		fr.push(scope, s.Call)
		return Null, nil

	case *ast.Try:
		return interp.execTry(scope, s, fr)

	case *ast.Switch:
		return interp.execSwitch(scope, s, fr)

	default:
		return Null, &signal{kind: sigThrow, err: NewError(TypeError, "unhandled statement type %T", stmt)}
	}
}

func (interp *Interp) execTry(scope *Environment, s *ast.Try, fr *frame) (Value, *signal) {
	val, sig := interp.execBlock(scope, s.Body, fr)

	if sig != nil && sig.kind == sigThrow && s.Catch != nil {
		catchScope := scope.Child()
		catchScope.Define(s.Catch.Name, interp.catchValue(sig.err), false)
		val, sig = interp.execBlock(catchScope, s.Catch.Body, fr)
		catchScope.Release()
	}

	if s.Finally != nil {
		_, finallySig := interp.execBlock(scope, s.Finally, fr)
		if finallySig != nil {
			// A finally block's own non-local exit overrides whatever was
			// propagating from the try/catch.
			return Null, finallySig
		}
	}

	return val, sig
}

func (interp *Interp) execSwitch(scope *Environment, s *ast.Switch, fr *frame) (Value, *signal) {
	subject, sig := interp.evalExpr(scope, s.Subject)
	if sig != nil {
		return Null, sig
	}

	body := s.Default
	matched := false
	for _, c := range s.Cases {
		pattern, sig := interp.evalExpr(scope, c.Pattern)
		if sig != nil {
			return Null, sig
		}
		if Equal(interp.Heap, subject, pattern) {
			body = c.Body
			matched = true
			break
		}
	}
	if !matched && s.Default == nil {
		return Null, nil
	}

	caseScope := scope.Child()
	defer caseScope.Release()
	last := Null
	for _, stmt := range body {
		val, sig := interp.execStmtFrame(caseScope, stmt, fr)
		if sig != nil {
			if sig.kind == sigBreak {
				return Null, nil
			}
			return Null, sig
		}
		last = val
	}
	return last, nil
}
