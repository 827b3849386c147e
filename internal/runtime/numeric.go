package runtime

import (
	"fortio.org/safecast"
)

// narrowInt enforces w's storage width on i, returning a RangeError when i
// does not fit.
func narrowInt(i int64, w IntWidth) (int64, *Error) {
	var err error
	orig := i
	switch w {
	case WidthI8:
		var v int8
		v, err = safecast.Conv[int8](i)
		i = int64(v)
	case WidthI16:
		var v int16
		v, err = safecast.Conv[int16](i)
		i = int64(v)
	case WidthI32:
		var v int32
		v, err = safecast.Conv[int32](i)
		i = int64(v)
	case WidthI64, WidthDefault:
		// int64 already at native width; nothing to narrow.
	case WidthU8:
		var v uint8
		v, err = safecast.Conv[uint8](i)
		i = int64(v)
	case WidthU16:
		var v uint16
		v, err = safecast.Conv[uint16](i)
		i = int64(v)
	case WidthU32:
		var v uint32
		v, err = safecast.Conv[uint32](i)
		i = int64(v)
	case WidthU64:
		var v uint64
		v, err = safecast.Conv[uint64](i)
		i = int64(v)
	}
	if err != nil {
		return 0, NewError(RangeError, "integer value %d does not fit in %s", orig, widthName(w))
	}
	return i, nil
}

// narrowFloat enforces w's storage width on f.
func narrowFloat(f float64, w FloatWidth) (float64, *Error) {
	if w == WidthF32 {
		v, err := safecast.Convert[float32](f)
		if err != nil {
			return 0, NewError(RangeError, "float value %g does not fit in f32", f)
		}
		return float64(v), nil
	}
	return f, nil
}

// NewInt constructs a width-checked integer Value.
func NewInt(i int64, w IntWidth) (Value, *Error) {
	n, err := narrowInt(i, w)
	if err != nil {
		return Value{}, err
	}
	return MakeInt(n, w), nil
}

// NewFloat constructs a width-checked float Value.
func NewFloat(f float64, w FloatWidth) (Value, *Error) {
	n, err := narrowFloat(f, w)
	if err != nil {
		return Value{}, err
	}
	return MakeFloat(n, w), nil
}

func widthName(w IntWidth) string {
	switch w {
	case WidthI8:
		return "i8"
	case WidthI16:
		return "i16"
	case WidthI32:
		return "i32"
	case WidthI64:
		return "i64"
	case WidthU8:
		return "u8"
	case WidthU16:
		return "u16"
	case WidthU32:
		return "u32"
	case WidthU64:
		return "u64"
	default:
		return "int"
	}
}

// widerWidth returns the wider of two integer widths for binary-op result
// promotion, defaulting to WidthDefault when either operand is unwidthed.
func widerWidth(a, b IntWidth) IntWidth {
	if a == WidthDefault || b == WidthDefault {
		return WidthDefault
	}
	rank := func(w IntWidth) int {
		switch w {
		case WidthI8, WidthU8:
			return 1
		case WidthI16, WidthU16:
			return 2
		case WidthI32, WidthU32:
			return 3
		default:
			return 4
		}
	}
	if rank(a) >= rank(b) {
		return a
	}
	return b
}
