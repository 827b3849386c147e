// Package source carries the minimal line/column bookkeeping the evaluator
// needs to report errors; the lexer and parser that produce it are external
// collaborators.
package source

import "fmt"

// Position identifies a single point in the original source text.
type Position struct {
	Line   int // 1-based
	Column int // 1-based
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsZero reports whether the position was never set.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}
