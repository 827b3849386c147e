package runtime

import (
	"fmt"
	"strings"
)

// stringify renders v the way string interpolation and print() do: scalars
// via Value.String, heap kinds by walking their contents.
func (interp *Interp) stringify(v Value) (string, *Error) {
	switch v.Kind {
	case KindNull, KindBool, KindInt, KindFloat, KindRune:
		return v.String(), nil

	case KindString:
		return interp.GetString(v), nil

	case KindArray:
		obj := interp.Heap.Get(v.Heap)
		if obj == nil {
			return "", NewError(MemoryError, "stringify freed array")
		}
		parts := make([]string, len(obj.Arr))
		for i, e := range obj.Arr {
			s, err := interp.stringify(e)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]", nil

	case KindObject:
		obj := interp.Heap.Get(v.Heap)
		if obj == nil {
			return "", NewError(MemoryError, "stringify freed object")
		}
		if obj.TypeName != "" {
			return fmt.Sprintf("<object:%s>", obj.TypeName), nil
		}
		return "<object>", nil

	case KindBuffer:
		obj := interp.Heap.Get(v.Heap)
		if obj == nil {
			return "", NewError(MemoryError, "stringify freed buffer")
		}
		return fmt.Sprintf("<buffer %p length=%d capacity=%d>", obj.Buf, len(obj.Buf), cap(obj.Buf)), nil

	case KindFunction:
		return "<function>", nil

	case KindTask:
		return "<task>", nil
	case KindChannel:
		return "<channel>", nil
	case KindFile:
		obj := interp.Heap.Get(v.Heap)
		if obj == nil {
			return "<file>", nil
		}
		if obj.File.Closed {
			return "<file (closed)>", nil
		}
		return fmt.Sprintf("<file '%s' mode='%s'>", obj.File.Path, obj.File.Mode), nil

	default:
		return "", NewError(TypeError, "cannot stringify value of kind %s", v.Kind)
	}
}
