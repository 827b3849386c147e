package main

import (
	"hemlock/internal/ast"
)

// Hemlock has no textual front end in this tree (the parser is out of
// scope); these hand-assembled programs exercise the evaluator the way a
// parsed source file would, and are what `hemlock run <name>` executes.

func exampleProgram(name string) *ast.Program {
	switch name {
	case "fib":
		return fibProgram()
	case "concurrency":
		return concurrencyProgram()
	default:
		return nil
	}
}

// fibProgram computes fib(10) recursively and prints it.
func fibProgram() *ast.Program {
	fibParam := ast.Param{Name: "n"}
	nIdent := func() *ast.Ident { return &ast.Ident{Name: "n"} }

	body := &ast.Block{Statements: []ast.Stmt{
		&ast.If{
			Cond: &ast.Binary{Op: ast.OpLte, Left: nIdent(), Right: &ast.IntLit{Value: 1}},
			Then: &ast.Block{Statements: []ast.Stmt{&ast.Return{Value: nIdent()}}},
		},
		&ast.Return{Value: &ast.Binary{
			Op: ast.OpAdd,
			Left: &ast.Call{
				Callee: &ast.Ident{Name: "fib"},
				Args:   []ast.Arg{{Value: &ast.Binary{Op: ast.OpSub, Left: nIdent(), Right: &ast.IntLit{Value: 1}}}},
			},
			Right: &ast.Call{
				Callee: &ast.Ident{Name: "fib"},
				Args:   []ast.Arg{{Value: &ast.Binary{Op: ast.OpSub, Left: nIdent(), Right: &ast.IntLit{Value: 2}}}},
			},
		}},
	}}

	fibLit := &ast.FuncLit{Name: "fib", Params: []ast.Param{fibParam}, Body: body}

	return &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "fib", Value: fibLit, Const: true},
		&ast.ExprStmt{X: &ast.Call{
			Callee: &ast.Ident{Name: "print"},
			Args:   []ast.Arg{{Value: &ast.Call{Callee: &ast.Ident{Name: "fib"}, Args: []ast.Arg{{Value: &ast.IntLit{Value: 10}}}}}},
		}},
	}}
}

// concurrencyProgram spawns a worker task that sends ten values over a
// channel, receives them on the main program, and prints their sum. The
// worker task is never joined.
func concurrencyProgram() *ast.Program {
	workerBody := &ast.Block{Statements: []ast.Stmt{
		&ast.For{
			Init: &ast.LetStmt{Name: "i", Value: &ast.IntLit{Value: 0}},
			Cond: &ast.Binary{Op: ast.OpLt, Left: &ast.Ident{Name: "i"}, Right: &ast.IntLit{Value: 10}},
			Post: &ast.ExprStmt{X: &ast.IncDec{Target: &ast.Ident{Name: "i"}, Delta: 1, Postfix: true}},
			Body: &ast.Block{Statements: []ast.Stmt{
				&ast.ExprStmt{X: &ast.Call{
					Callee: &ast.Ident{Name: "send"},
					Args:   []ast.Arg{{Value: &ast.Ident{Name: "ch"}}, {Value: &ast.Ident{Name: "i"}}},
				}},
			}},
		},
		&ast.ExprStmt{X: &ast.Call{Callee: &ast.Ident{Name: "close"}, Args: []ast.Arg{{Value: &ast.Ident{Name: "ch"}}}}},
	}}

	sumBody := &ast.Block{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "total", Value: &ast.IntLit{Value: 0}},
		&ast.LetStmt{Name: "i", Value: &ast.IntLit{Value: 0}},
		&ast.While{
			Cond: &ast.Binary{Op: ast.OpLt, Left: &ast.Ident{Name: "i"}, Right: &ast.IntLit{Value: 10}},
			Body: &ast.Block{Statements: []ast.Stmt{
				&ast.LetStmt{Name: "v", Value: &ast.Call{Callee: &ast.Ident{Name: "recv"}, Args: []ast.Arg{{Value: &ast.Ident{Name: "ch"}}}}},
				&ast.ExprStmt{X: &ast.Assign{
					Target: &ast.Ident{Name: "total"},
					Value:  &ast.Binary{Op: ast.OpAdd, Left: &ast.Ident{Name: "total"}, Right: &ast.Ident{Name: "v"}},
				}},
				&ast.ExprStmt{X: &ast.IncDec{Target: &ast.Ident{Name: "i"}, Delta: 1, Postfix: true}},
			}},
		},
		&ast.Return{Value: &ast.Ident{Name: "total"}},
	}}

	return &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "ch", Value: &ast.Call{Callee: &ast.Ident{Name: "channel"}, Args: []ast.Arg{{Value: &ast.IntLit{Value: 4}}}}},
		&ast.LetStmt{Name: "worker", Value: &ast.FuncLit{IsAsync: true, Body: workerBody}},
		&ast.LetStmt{Name: "sum", Value: &ast.FuncLit{Body: sumBody}},
		&ast.ExprStmt{X: &ast.Call{Callee: &ast.Ident{Name: "spawn"}, Args: []ast.Arg{{Value: &ast.Ident{Name: "worker"}}}}},
		&ast.ExprStmt{X: &ast.Call{
			Callee: &ast.Ident{Name: "print"},
			Args:   []ast.Arg{{Value: &ast.Call{Callee: &ast.Ident{Name: "sum"}}}},
		}},
	}}
}
