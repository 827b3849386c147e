package runtime

import "hemlock/internal/ast"

// compare implements <, <=, >, >= over numeric pairs and lexicographic
// string pairs; == and != are handled separately via Equal since they
// apply to every kind.
func (interp *Interp) compare(op ast.BinaryOp, l, r Value) (Value, *Error) {
	if l.Kind == KindString && r.Kind == KindString {
		a, b := interp.GetString(l), interp.GetString(r)
		var result bool
		switch op {
		case ast.OpLt:
			result = a < b
		case ast.OpLte:
			result = a <= b
		case ast.OpGt:
			result = a > b
		case ast.OpGte:
			result = a >= b
		}
		return MakeBool(result), nil
	}

	lf, ok1 := asFloat(l)
	rf, ok2 := asFloat(r)
	if !ok1 || !ok2 {
		return Value{}, NewError(TypeError, "cannot compare %s and %s", l.Kind, r.Kind)
	}
	var result bool
	switch op {
	case ast.OpLt:
		result = lf < rf
	case ast.OpLte:
		result = lf <= rf
	case ast.OpGt:
		result = lf > rf
	case ast.OpGte:
		result = lf >= rf
	default:
		return Value{}, NewError(TypeError, "unsupported comparison operator %q", op)
	}
	return MakeBool(result), nil
}
