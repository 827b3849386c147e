package diag

import "hemlock/internal/source"

// Note attaches secondary context to a Diagnostic, e.g. "value declared here".
type Note struct {
	At  source.Position
	Msg string
}

// Diagnostic is a single reported error. Token is the surface text the
// evaluator was looking at when it failed, used by the "Error at '<token>'"
// message shape; it is empty for diagnostics with no natural token (most
// runtime errors, which report only a message).
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	At       source.Position
	Token    string
	Notes    []Note
}

// New builds a Diagnostic with no notes.
func New(sev Severity, code Code, at source.Position, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, At: at, Message: msg}
}

// NewError is a shortcut for a SevError diagnostic.
func NewError(code Code, at source.Position, msg string) Diagnostic {
	return New(SevError, code, at, msg)
}

// WithToken sets the surface token for the "Error at '<token>'" format.
func (d Diagnostic) WithToken(tok string) Diagnostic {
	d.Token = tok
	return d
}

// WithNote appends a secondary note.
func (d Diagnostic) WithNote(at source.Position, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{At: at, Msg: msg})
	return d
}
