package diag

import "fmt"

// Code identifies the taxonomy of a runtime error. Every kind is catchable;
// there is no separate fatal tier.
type Code uint16

const (
	UnknownCode Code = iota
	TypeError
	RangeError
	ArityError
	UndefinedError
	ConstError
	MemoryError
	IOError
	ConcurrencyError
	UserThrow
	ParseError
)

var codeNames = map[Code]string{
	UnknownCode:      "UnknownError",
	TypeError:        "TypeError",
	RangeError:       "RangeError",
	ArityError:       "ArityError",
	UndefinedError:   "UndefinedError",
	ConstError:       "ConstError",
	MemoryError:      "MemoryError",
	IOError:          "IOError",
	ConcurrencyError: "ConcurrencyError",
	UserThrow:        "UserThrow",
	ParseError:       "ParseError",
}

// String renders the code's taxonomy name, e.g. "TypeError".
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}
