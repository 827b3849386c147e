package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Formatter renders diagnostics for a particular output stream, colorizing
// when that stream is a terminal.
type Formatter struct {
	color bool
}

// NewFormatter inspects w and enables color only when it is backed by a
// terminal file descriptor.
func NewFormatter(w io.Writer) *Formatter {
	f := &Formatter{}
	if fder, ok := w.(interface{ Fd() uintptr }); ok {
		f.color = term.IsTerminal(int(fder.Fd()))
	}
	return f
}

// Format renders a Diagnostic using the shape appropriate to whether it has
// a surface token:
//
//	Token set:   "[line N] Error at 'tok': message"
//	Token unset: "Runtime error: message"
func (f *Formatter) Format(d Diagnostic) string {
	label := d.Severity.String()
	if d.Token != "" {
		label = capitalize(label)
	}
	if f.color {
		label = f.colorize(d.Severity, label)
	}
	if d.Token != "" {
		return fmt.Sprintf("[line %d] %s at '%s': %s", d.At.Line, label, d.Token, d.Message)
	}
	return fmt.Sprintf("Runtime %s: %s", label, d.Message)
}

func (f *Formatter) colorize(sev Severity, s string) string {
	switch sev {
	case SevError:
		return color.RedString(s)
	case SevWarning:
		return color.YellowString(s)
	default:
		return color.CyanString(s)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
