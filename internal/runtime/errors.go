package runtime

import (
	"fmt"

	"hemlock/internal/diag"
	"hemlock/internal/source"
)

// ErrorKind mirrors diag.Code's taxonomy for values raised inside the
// evaluator. Every kind is catchable by a Hemlock try/catch.
type ErrorKind = diag.Code

const (
	TypeError        = diag.TypeError
	RangeError       = diag.RangeError
	ArityError       = diag.ArityError
	UndefinedError   = diag.UndefinedError
	ConstError       = diag.ConstError
	MemoryError      = diag.MemoryError
	IOError          = diag.IOError
	ConcurrencyError = diag.ConcurrencyError
	UserThrow        = diag.UserThrow
	ParseError       = diag.ParseError
)

// Error is a catchable Hemlock runtime error. Payload carries the Value
// visible to a catch clause (for UserThrow, exactly the thrown value; for
// built-in kinds, a freshly constructed error object exposing Kind/Message).
type Error struct {
	Kind    ErrorKind
	Message string
	At      source.Position
	Token   string
	Payload Value
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError constructs a runtime Error with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// catchValue returns the Value a catch clause sees for e: for UserThrow,
// the exact thrown value; for every built-in error kind, a freshly
// constructed object exposing kind/message fields, since NewError has no
// heap access at construction time to build one eagerly.
func (interp *Interp) catchValue(e *Error) Value {
	if e.Kind == UserThrow {
		return e.Payload
	}
	return interp.NewObject("Error", []string{"kind", "message"}, map[string]Value{
		"kind":    interp.NewString(e.Kind.String()),
		"message": interp.NewString(e.Message),
	})
}

// WithPosition attaches source position and surface token for diagnostic
// rendering, and returns the receiver for chaining.
func (e *Error) WithPosition(at source.Position, token string) *Error {
	e.At = at
	e.Token = token
	return e
}

// Diagnostic renders e into the shared diag.Diagnostic shape for printing.
func (e *Error) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Kind, e.At, e.Message)
	if e.Token != "" {
		d = d.WithToken(e.Token)
	}
	return d
}

// signal is the internal control-flow carrier used by the evaluator for
// return/break/continue/throw propagation up the statement tree, distinct
// from Go's error interface so ordinary evaluation errors (Error above) and
// non-local control transfer can be told apart without extra allocations
// on the hot path.
type signal struct {
	kind    signalKind
	value   Value
	err     *Error
}

type signalKind uint8

const (
	sigNone signalKind = iota
	sigReturn
	sigBreak
	sigContinue
	sigThrow
)
