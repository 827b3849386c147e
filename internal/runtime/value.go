// Package runtime implements the Hemlock execution core: value
// representation, the reference-counted heap, the environment, the
// tree-walking evaluator and the concurrency primitives built on top of
// internal/asyncrt.
package runtime

import "fmt"

// ValueKind tags the payload carried by a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindRune
	KindString
	KindArray
	KindObject
	KindBuffer
	KindFunction
	KindTask
	KindChannel
	KindFile
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindRune:
		return "rune"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindBuffer:
		return "buffer"
	case KindFunction:
		return "function"
	case KindTask:
		return "task"
	case KindChannel:
		return "channel"
	case KindFile:
		return "file"
	default:
		return "invalid"
	}
}

// IntWidth tags the storage width of an integer value, enforced through
// numeric.go's safecast wrappers on every construction and assignment.
type IntWidth uint8

const (
	WidthDefault IntWidth = iota // platform int64, no explicit narrowing
	WidthI8
	WidthI16
	WidthI32
	WidthI64
	WidthU8
	WidthU16
	WidthU32
	WidthU64
)

// FloatWidth tags a float value's storage width.
type FloatWidth uint8

const (
	WidthF64 FloatWidth = iota
	WidthF32
)

// Value is the tagged union every Hemlock runtime value is stored as. Heap
// kinds (String, Array, Object, Buffer, Function, Task, Channel, File) carry
// a Handle indexing into a Heap; scalar kinds carry their payload inline.
type Value struct {
	Kind  ValueKind
	I     int64
	F     float64
	B     bool
	IW    IntWidth
	FW    FloatWidth
	Heap  Handle
}

// Null is the singleton null value.
var Null = Value{Kind: KindNull}

func MakeBool(b bool) Value { return Value{Kind: KindBool, B: b} }

func MakeInt(i int64, w IntWidth) Value { return Value{Kind: KindInt, I: i, IW: w} }

func MakeFloat(f float64, w FloatWidth) Value { return Value{Kind: KindFloat, F: f, FW: w} }

// maxRune is the highest valid Unicode code point.
const maxRune = 0x10FFFF

// MakeRune constructs a rune value, rejecting any code point outside
// [0, 0x10FFFF].
func MakeRune(r rune) (Value, *Error) {
	if r < 0 || r > maxRune {
		return Value{}, NewError(RangeError, "rune %d out of range [0, 0x10FFFF]", r)
	}
	return Value{Kind: KindRune, I: int64(r)}, nil
}

func makeHeapValue(k ValueKind, h Handle) Value { return Value{Kind: k, Heap: h} }

// IsHeap reports whether this value's payload lives on the heap and
// therefore participates in reference counting.
func (v Value) IsHeap() bool {
	switch v.Kind {
	case KindString, KindArray, KindObject, KindBuffer, KindFunction, KindTask, KindChannel, KindFile:
		return true
	default:
		return false
	}
}

// Truthy implements Hemlock's boolean-context coercion: Null, Bool(false),
// numeric zero, empty string, empty array and empty object are falsy;
// every other value is truthy. Container emptiness needs the heap, so this
// lives on Interp rather than Value.
func (interp *Interp) Truthy(v Value) bool {
	switch v.Kind {
	case KindNull:
		return false
	case KindBool:
		return v.B
	case KindInt:
		return v.I != 0
	case KindFloat:
		return v.F != 0
	case KindRune:
		return v.I != 0
	case KindString:
		return interp.GetString(v) != ""
	case KindArray:
		obj := interp.Heap.Get(v.Heap)
		return obj != nil && len(obj.Arr) != 0
	case KindObject:
		obj := interp.Heap.Get(v.Heap)
		return obj != nil && len(obj.FieldOrder) != 0
	default:
		return true
	}
}

// String renders v's scalar kinds directly. It cannot render KindString (or
// any other heap-backed kind) since a bare Value carries no heap reference;
// callers that may hold a string use Interp.textOf instead.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.B)
	case KindInt:
		return fmt.Sprintf("%d", v.I)
	case KindFloat:
		return fmt.Sprintf("%g", v.F)
	case KindRune:
		return string(rune(v.I))
	default:
		return fmt.Sprintf("<%s>", v.Kind)
	}
}

// textOf renders v's exact string content for KindString, falling back to
// Value.String for every other kind. Used wherever a Value's textual form
// must be exact rather than a placeholder, e.g. building a thrown string's
// error message.
func (interp *Interp) textOf(v Value) string {
	if v.Kind == KindString {
		return interp.GetString(v)
	}
	return v.String()
}
