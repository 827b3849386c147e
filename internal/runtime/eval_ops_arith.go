package runtime

import "hemlock/internal/ast"

// arith implements +, -, *, /, % over int/int, float/float and mixed
// int/float pairs (promoted to float64), plus string concatenation for +.
func (interp *Interp) arith(op ast.BinaryOp, l, r Value) (Value, *Error) {
	if op == ast.OpAdd && l.Kind == KindString {
		rs, err := interp.stringify(r)
		if err != nil {
			return Value{}, err
		}
		return interp.NewString(interp.GetString(l) + rs), nil
	}

	if l.Kind == KindInt && r.Kind == KindInt {
		w := widerWidth(l.IW, r.IW)
		var result int64
		switch op {
		case ast.OpAdd:
			result = l.I + r.I
		case ast.OpSub:
			result = l.I - r.I
		case ast.OpMul:
			result = l.I * r.I
		case ast.OpDiv:
			if r.I == 0 {
				return Value{}, NewError(RangeError, "integer division by zero")
			}
			result = l.I / r.I
		case ast.OpMod:
			if r.I == 0 {
				return Value{}, NewError(RangeError, "integer modulo by zero")
			}
			result = l.I % r.I
		default:
			return Value{}, NewError(TypeError, "unsupported arithmetic operator %q", op)
		}
		v, err := NewInt(result, w)
		if err != nil {
			return Value{}, err
		}
		return v, nil
	}

	lf, ok1 := asFloat(l)
	rf, ok2 := asFloat(r)
	if !ok1 || !ok2 {
		return Value{}, NewError(TypeError, "cannot apply %q to %s and %s", op, l.Kind, r.Kind)
	}
	w := WidthF64
	if l.Kind == KindFloat && l.FW == WidthF32 && (r.Kind != KindFloat || r.FW == WidthF32) {
		w = WidthF32
	}
	var result float64
	switch op {
	case ast.OpAdd:
		result = lf + rf
	case ast.OpSub:
		result = lf - rf
	case ast.OpMul:
		result = lf * rf
	case ast.OpDiv:
		if rf == 0 {
			return Value{}, NewError(RangeError, "float division by zero")
		}
		result = lf / rf
	case ast.OpMod:
		return Value{}, NewError(TypeError, "%% is not defined for floats")
	default:
		return Value{}, NewError(TypeError, "unsupported arithmetic operator %q", op)
	}
	v, err := NewFloat(result, w)
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

func asFloat(v Value) (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.I), true
	case KindFloat:
		return v.F, true
	default:
		return 0, false
	}
}
