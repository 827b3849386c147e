package runtime

import (
	"strings"

	"hemlock/internal/ast"
)

// evalExpr dispatches on expr's concrete type.
func (interp *Interp) evalExpr(scope *Environment, expr ast.Expr) (Value, *signal) {
	switch e := expr.(type) {
	case *ast.IntLit:
		v, err := NewInt(e.Value, widthFromTag(e.Width))
		if err != nil {
			return Null, &signal{kind: sigThrow, err: err}
		}
		return v, nil

	case *ast.FloatLit:
		fw := WidthF64
		if e.Width == "f32" {
			fw = WidthF32
		}
		v, err := NewFloat(e.Value, fw)
		if err != nil {
			return Null, &signal{kind: sigThrow, err: err}
		}
		return v, nil

	case *ast.BoolLit:
		return MakeBool(e.Value), nil

	case *ast.StringLit:
		return interp.NewString(e.Value), nil

	case *ast.RuneLit:
		v, err := MakeRune(e.Value)
		if err != nil {
			return Null, &signal{kind: sigThrow, err: err}
		}
		return v, nil

	case *ast.NullLit:
		return Null, nil

	case *ast.Interpolation:
		var sb strings.Builder
		for i, seg := range e.Segments {
			sb.WriteString(seg)
			if i < len(e.Exprs) {
				v, sig := interp.evalExpr(scope, e.Exprs[i])
				if sig != nil {
					return Null, sig
				}
				s, err := interp.stringify(v)
				if err != nil {
					return Null, &signal{kind: sigThrow, err: err}
				}
				sb.WriteString(s)
			}
		}
		return interp.NewString(sb.String()), nil

	case *ast.Ident:
		if e.Resolved {
			return scope.GetSlot(e.Depth, e.Slot), nil
		}
		v, ok := scope.Get(e.Name)
		if !ok {
			return Null, &signal{kind: sigThrow, err: NewError(UndefinedError, "undefined variable %q", e.Name)}
		}
		return v, nil

	case *ast.Binary:
		return interp.evalBinary(scope, e)

	case *ast.Unary:
		return interp.evalUnary(scope, e)

	case *ast.Assign:
		return interp.evalAssign(scope, e)

	case *ast.IncDec:
		return interp.evalIncDec(scope, e)

	case *ast.Ternary:
		cond, sig := interp.evalExpr(scope, e.Cond)
		if sig != nil {
			return Null, sig
		}
		if interp.Truthy(cond) {
			return interp.evalExpr(scope, e.Then)
		}
		return interp.evalExpr(scope, e.Else)

	case *ast.NullCoalesce:
		left, sig := interp.evalExpr(scope, e.Left)
		if sig != nil {
			return Null, sig
		}
		if left.Kind != KindNull {
			return left, nil
		}
		return interp.evalExpr(scope, e.Right)

	case *ast.ArrayLit:
		elems := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			v, sig := interp.evalExpr(scope, el)
			if sig != nil {
				return Null, sig
			}
			elems[i] = v
		}
		return interp.NewArray(elems), nil

	case *ast.ObjectLit:
		fields := make(map[string]Value, len(e.Fields))
		order := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			v, sig := interp.evalExpr(scope, f.Value)
			if sig != nil {
				return Null, sig
			}
			if _, exists := fields[f.Name]; !exists {
				order = append(order, f.Name)
			}
			fields[f.Name] = v
		}
		return interp.NewObject(e.TypeName, order, fields), nil

	case *ast.FuncLit:
		return interp.NewFunction(e, scope), nil

	case *ast.Call:
		return interp.evalCall(scope, e)

	case *ast.MethodCall:
		return interp.evalMethodCall(scope, e)

	case *ast.Property:
		return interp.evalProperty(scope, e)

	case *ast.Index:
		return interp.evalIndex(scope, e)

	case *ast.Await:
		v, sig := interp.evalExpr(scope, e.Operand)
		if sig != nil {
			return Null, sig
		}
		if v.Kind != KindTask {
			return v, nil
		}
		result, err := interp.Join(v)
		if err != nil {
			if rerr, ok := err.(*Error); ok {
				return Null, &signal{kind: sigThrow, err: rerr}
			}
			return Null, &signal{kind: sigThrow, err: NewError(ConcurrencyError, "%v", err)}
		}
		return result, nil

	default:
		return Null, &signal{kind: sigThrow, err: NewError(TypeError, "unhandled expression type %T", expr)}
	}
}

func widthFromTag(tag string) IntWidth {
	switch tag {
	case "i8":
		return WidthI8
	case "i16":
		return WidthI16
	case "i32":
		return WidthI32
	case "i64":
		return WidthI64
	case "u8":
		return WidthU8
	case "u16":
		return WidthU16
	case "u32":
		return WidthU32
	case "u64":
		return WidthU64
	default:
		return WidthDefault
	}
}

func (interp *Interp) evalBinary(scope *Environment, e *ast.Binary) (Value, *signal) {
	if e.Op == ast.OpAnd {
		l, sig := interp.evalExpr(scope, e.Left)
		if sig != nil {
			return Null, sig
		}
		if !interp.Truthy(l) {
			return l, nil
		}
		return interp.evalExpr(scope, e.Right)
	}
	if e.Op == ast.OpOr {
		l, sig := interp.evalExpr(scope, e.Left)
		if sig != nil {
			return Null, sig
		}
		if interp.Truthy(l) {
			return l, nil
		}
		return interp.evalExpr(scope, e.Right)
	}

	l, sig := interp.evalExpr(scope, e.Left)
	if sig != nil {
		return Null, sig
	}
	r, sig := interp.evalExpr(scope, e.Right)
	if sig != nil {
		return Null, sig
	}

	switch e.Op {
	case ast.OpEq:
		return MakeBool(Equal(interp.Heap, l, r)), nil
	case ast.OpNeq:
		return MakeBool(!Equal(interp.Heap, l, r)), nil
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		v, err := interp.arith(e.Op, l, r)
		if err != nil {
			return Null, &signal{kind: sigThrow, err: err}
		}
		return v, nil
	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		v, err := interp.compare(e.Op, l, r)
		if err != nil {
			return Null, &signal{kind: sigThrow, err: err}
		}
		return v, nil
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr:
		v, err := interp.bitwise(e.Op, l, r)
		if err != nil {
			return Null, &signal{kind: sigThrow, err: err}
		}
		return v, nil
	default:
		return Null, &signal{kind: sigThrow, err: NewError(TypeError, "unsupported operator %q", e.Op)}
	}
}

func (interp *Interp) evalUnary(scope *Environment, e *ast.Unary) (Value, *signal) {
	v, sig := interp.evalExpr(scope, e.Operand)
	if sig != nil {
		return Null, sig
	}
	switch e.Op {
	case ast.OpNeg:
		switch v.Kind {
		case KindInt:
			n, err := NewInt(-v.I, v.IW)
			if err != nil {
				return Null, &signal{kind: sigThrow, err: err}
			}
			return n, nil
		case KindFloat:
			n, err := NewFloat(-v.F, v.FW)
			if err != nil {
				return Null, &signal{kind: sigThrow, err: err}
			}
			return n, nil
		default:
			return Null, &signal{kind: sigThrow, err: NewError(TypeError, "cannot negate %s", v.Kind)}
		}
	case ast.OpNot:
		return MakeBool(!interp.Truthy(v)), nil
	case ast.OpBitNot:
		n, err := interp.bitNot(v)
		if err != nil {
			return Null, &signal{kind: sigThrow, err: err}
		}
		return n, nil
	default:
		return Null, &signal{kind: sigThrow, err: NewError(TypeError, "unsupported unary operator %q", e.Op)}
	}
}
