// Package ast defines the tree the evaluator walks. It is intentionally a
// plain, pointer-based tree rather than an arena of IDs: the core receives
// one whole program from an external parser and walks it once, so there is
// no compiler-pass pipeline to amortize an arena over.
package ast

import "hemlock/internal/source"

// Node is implemented by every statement and expression.
type Node interface {
	Pos() source.Position
}

// base carries the position every node needs; embed it to satisfy Node.
type base struct {
	Position source.Position
}

func (b base) Pos() source.Position { return b.Position }

// Program is the root of a parsed Hemlock unit: an ordered list of
// top-level statements.
type Program struct {
	Statements []Stmt
}

// Param describes one function parameter.
type Param struct {
	Name    string
	Type    string // advisory type name, empty if unannotated
	Default Expr   // nil if no default
}
