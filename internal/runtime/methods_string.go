package runtime

import (
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

func init() {
	stringMethods = map[string]MethodFunc{
		"to_upper":    strUpper,
		"to_lower":    strLower,
		"trim":        strTrim,
		"split":       strSplit,
		"replace":     strReplace,
		"contains":    strContains,
		"find":        strFind,
		"slice":       strSlice,
		"substr":      strSubstr,
		"char_at":     strCharAt,
		"char_length": strCharLength,
		"byte_at":     strByteAt,
		"to_bytes":    strToBytes,
		"repeat":      strRepeat,
		"starts_with": strStartsWith,
		"ends_with":   strEndsWith,
		"normalize":   strNormalize,
		"width":       strWidth,
		"serialize":   strSerialize,
		"deserialize": strDeserialize,
	}
}

func strUpper(interp *Interp, recv Value, args []Value) (Value, error) {
	s := cases.Upper(language.Und).String(interp.GetString(recv))
	return interp.NewString(s), nil
}

func strLower(interp *Interp, recv Value, args []Value) (Value, error) {
	s := cases.Lower(language.Und).String(interp.GetString(recv))
	return interp.NewString(s), nil
}

func strTrim(interp *Interp, recv Value, args []Value) (Value, error) {
	return interp.NewString(strings.TrimSpace(interp.GetString(recv))), nil
}

func strSplit(interp *Interp, recv Value, args []Value) (Value, error) {
	sep := interp.GetString(argAt(args, 0))
	parts := strings.Split(interp.GetString(recv), sep)
	out := make([]Value, len(parts))
	for i, p := range parts {
		out[i] = interp.NewString(p)
	}
	return interp.NewArray(out), nil
}

func strReplace(interp *Interp, recv Value, args []Value) (Value, error) {
	old := interp.GetString(argAt(args, 0))
	newS := interp.GetString(argAt(args, 1))
	return interp.NewString(strings.ReplaceAll(interp.GetString(recv), old, newS)), nil
}

func strContains(interp *Interp, recv Value, args []Value) (Value, error) {
	return MakeBool(strings.Contains(interp.GetString(recv), interp.GetString(argAt(args, 0)))), nil
}

// strFind returns the byte offset of the first occurrence of the argument,
// or -1 if it does not occur.
func strFind(interp *Interp, recv Value, args []Value) (Value, error) {
	idx := strings.Index(interp.GetString(recv), interp.GetString(argAt(args, 0)))
	return MakeInt(int64(idx), WidthDefault), nil
}

func strSlice(interp *Interp, recv Value, args []Value) (Value, error) {
	s := interp.GetString(recv)
	start, end := int64(0), int64(len(s))
	if a := argAt(args, 0); a.Kind == KindInt {
		start = a.I
	}
	if a := argAt(args, 1); a.Kind == KindInt {
		end = a.I
	}
	if start < 0 {
		start = 0
	}
	if end > int64(len(s)) {
		end = int64(len(s))
	}
	if start > end {
		start = end
	}
	return interp.NewString(s[start:end]), nil
}

// strSubstr takes a start offset and an optional byte count, distinct from
// slice's start/end pair.
func strSubstr(interp *Interp, recv Value, args []Value) (Value, error) {
	s := interp.GetString(recv)
	start := argAt(args, 0).I
	if start < 0 {
		start = 0
	}
	if start > int64(len(s)) {
		start = int64(len(s))
	}
	end := int64(len(s))
	if a := argAt(args, 1); a.Kind == KindInt {
		end = start + a.I
		if end > int64(len(s)) {
			end = int64(len(s))
		}
		if end < start {
			end = start
		}
	}
	return interp.NewString(s[start:end]), nil
}

func strCharAt(interp *Interp, recv Value, args []Value) (Value, error) {
	runes := []rune(interp.GetString(recv))
	i := argAt(args, 0).I
	if i < 0 || i >= int64(len(runes)) {
		return Value{}, NewError(RangeError, "char_at index %d out of range [0, %d)", i, len(runes))
	}
	return interp.NewString(string(runes[i])), nil
}

// strCharLength counts code points, distinct from the byte-based length
// property.
func strCharLength(interp *Interp, recv Value, args []Value) (Value, error) {
	return MakeInt(int64(len([]rune(interp.GetString(recv)))), WidthDefault), nil
}

func strByteAt(interp *Interp, recv Value, args []Value) (Value, error) {
	s := interp.GetString(recv)
	i := argAt(args, 0).I
	if i < 0 || i >= int64(len(s)) {
		return Value{}, NewError(RangeError, "byte_at index %d out of range [0, %d)", i, len(s))
	}
	return MakeInt(int64(s[i]), WidthU8), nil
}

func strToBytes(interp *Interp, recv Value, args []Value) (Value, error) {
	s := interp.GetString(recv)
	return interp.NewBuffer([]byte(s)), nil
}

func strRepeat(interp *Interp, recv Value, args []Value) (Value, error) {
	n := argAt(args, 0).I
	if n < 0 {
		return Value{}, NewError(RangeError, "repeat count must be non-negative, got %d", n)
	}
	return interp.NewString(strings.Repeat(interp.GetString(recv), int(n))), nil
}

func strStartsWith(interp *Interp, recv Value, args []Value) (Value, error) {
	return MakeBool(strings.HasPrefix(interp.GetString(recv), interp.GetString(argAt(args, 0)))), nil
}

func strEndsWith(interp *Interp, recv Value, args []Value) (Value, error) {
	return MakeBool(strings.HasSuffix(interp.GetString(recv), interp.GetString(argAt(args, 0)))), nil
}

func strNormalize(interp *Interp, recv Value, args []Value) (Value, error) {
	return interp.NewString(norm.NFC.String(interp.GetString(recv))), nil
}

func strWidth(interp *Interp, recv Value, args []Value) (Value, error) {
	return MakeInt(int64(displayWidth(interp.GetString(recv))), WidthDefault), nil
}

// strSerialize encodes the string itself as JSON text (quoted, escaped).
func strSerialize(interp *Interp, recv Value, args []Value) (Value, error) {
	data, err := json.Marshal(interp.GetString(recv))
	if err != nil {
		return Value{}, NewError(TypeError, "serialize: %v", err)
	}
	return interp.NewString(string(data)), nil
}

// strDeserialize parses the string's content as JSON text, the inverse of
// serialize on the resulting value.
func strDeserialize(interp *Interp, recv Value, args []Value) (Value, error) {
	var native any
	if err := json.Unmarshal([]byte(interp.GetString(recv)), &native); err != nil {
		return Value{}, NewError(TypeError, "deserialize: %v", err)
	}
	return interp.fromNative(native), nil
}
