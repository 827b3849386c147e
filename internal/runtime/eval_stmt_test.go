package runtime

import (
	"testing"

	"hemlock/internal/ast"
)

func newTestInterp() *Interp {
	return New(DefaultConfig(), nil)
}

func ident(name string) *ast.Ident { return &ast.Ident{Name: name} }

func TestDeferRunsLIFO(t *testing.T) {
	interp := newTestInterp()

	pushLog := func(n int64) *ast.Defer {
		return &ast.Defer{Call: &ast.MethodCall{
			Receiver: ident("log"),
			Name:     "push",
			Args:     []ast.Arg{{Value: &ast.IntLit{Value: n}}},
		}}
	}

	fnBody := &ast.Block{Statements: []ast.Stmt{
		pushLog(1),
		pushLog(2),
		pushLog(3),
		&ast.Return{Value: &ast.IntLit{Value: 0}},
	}}

	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "log", Value: &ast.ArrayLit{}},
		&ast.LetStmt{Name: "f", Value: &ast.FuncLit{Body: fnBody}},
		&ast.ExprStmt{X: &ast.Call{Callee: ident("f")}},
	}}

	if _, err := interp.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}

	logVal, ok := interp.Globals.Get("log")
	if !ok {
		t.Fatal("log not found in globals")
	}
	obj := interp.Heap.Get(logVal.Heap)
	want := []int64{3, 2, 1}
	if len(obj.Arr) != len(want) {
		t.Fatalf("log length = %d, want %d", len(obj.Arr), len(want))
	}
	for i, w := range want {
		if obj.Arr[i].I != w {
			t.Fatalf("log[%d] = %d, want %d", i, obj.Arr[i].I, w)
		}
	}
}

func TestDeferThrowOverridesReturn(t *testing.T) {
	interp := newTestInterp()

	fnBody := &ast.Block{Statements: []ast.Stmt{
		&ast.Defer{Call: &ast.Call{Callee: ident("boom")}},
		&ast.Return{Value: &ast.IntLit{Value: 1}},
	}}

	boomBody := &ast.Block{Statements: []ast.Stmt{
		&ast.Throw{Value: &ast.StringLit{Value: "kaboom"}},
	}}

	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "boom", Value: &ast.FuncLit{Body: boomBody}},
		&ast.LetStmt{Name: "f", Value: &ast.FuncLit{Body: fnBody}},
		&ast.ExprStmt{X: &ast.Call{Callee: ident("f")}},
	}}

	_, rerr := interp.Run(prog)
	if rerr == nil {
		t.Fatal("expected the defer's throw to propagate")
	}
	if rerr.Kind != UserThrow {
		t.Fatalf("Kind = %v, want UserThrow", rerr.Kind)
	}
	if rerr.Message != "kaboom" {
		t.Fatalf("Message = %q, want %q", rerr.Message, "kaboom")
	}
}

func TestTryCatchBindsThrownPayload(t *testing.T) {
	interp := newTestInterp()

	tryStmt := &ast.Try{
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.Throw{Value: &ast.StringLit{Value: "oops"}},
		}},
		Catch: &ast.Catch{
			Name: "e",
			Body: &ast.Block{Statements: []ast.Stmt{
				&ast.ExprStmt{X: &ast.Assign{Target: ident("caught"), Value: ident("e")}},
			}},
		},
	}

	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "caught", Value: &ast.NullLit{}},
		tryStmt,
	}}
	if _, err := interp.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	caught, ok := interp.Globals.Get("caught")
	if !ok || caught.Kind != KindString || interp.GetString(caught) != "oops" {
		t.Fatalf("caught = %+v, ok=%v, want string %q", caught, ok, "oops")
	}
}

func TestTryCatchBindsBuiltinErrorAsObject(t *testing.T) {
	interp := newTestInterp()

	tryStmt := &ast.Try{
		Body: &ast.Block{Statements: []ast.Stmt{
			// Calling a non-function value raises a built-in TypeError,
			// not a UserThrow.
			&ast.ExprStmt{X: &ast.Call{Callee: &ast.IntLit{Value: 1}}},
		}},
		Catch: &ast.Catch{
			Name: "e",
			Body: &ast.Block{Statements: []ast.Stmt{
				&ast.ExprStmt{X: &ast.Assign{Target: ident("caught"), Value: ident("e")}},
			}},
		},
	}

	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "caught", Value: &ast.NullLit{}},
		tryStmt,
	}}
	if _, err := interp.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	caught, ok := interp.Globals.Get("caught")
	if !ok || caught.Kind != KindObject {
		t.Fatalf("caught = %+v, ok=%v, want an error object", caught, ok)
	}
	obj := interp.Heap.Get(caught.Heap)
	if interp.GetString(obj.Fields["kind"]) != TypeError.String() {
		t.Fatalf("kind = %v, want %v", obj.Fields["kind"], TypeError)
	}
	if interp.GetString(obj.Fields["message"]) == "" {
		t.Fatal("expected a non-empty error message")
	}
}

func TestTryFinallyAlwaysRuns(t *testing.T) {
	interp := newTestInterp()

	tryStmt := &ast.Try{
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.ExprStmt{X: &ast.IntLit{Value: 1}},
		}},
		Finally: &ast.Block{Statements: []ast.Stmt{
			&ast.ExprStmt{X: &ast.Assign{Target: ident("ran"), Value: &ast.BoolLit{Value: true}}},
		}},
	}

	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "ran", Value: &ast.BoolLit{Value: false}},
		tryStmt,
	}}
	if _, err := interp.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	ran, _ := interp.Globals.Get("ran")
	if ran.Kind != KindBool || !ran.B {
		t.Fatalf("ran = %+v, want true", ran)
	}
}

func TestFinallyOverridesPropagatingThrow(t *testing.T) {
	interp := newTestInterp()

	tryStmt := &ast.Try{
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.Throw{Value: &ast.StringLit{Value: "from try"}},
		}},
		Finally: &ast.Block{Statements: []ast.Stmt{
			&ast.Return{Value: &ast.IntLit{Value: 99}},
		}},
	}

	fnBody := &ast.Block{Statements: []ast.Stmt{tryStmt}}
	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "f", Value: &ast.FuncLit{Body: fnBody}},
		&ast.LetStmt{Name: "result", Value: &ast.Call{Callee: ident("f")}},
	}}

	if _, err := interp.Run(prog); err != nil {
		t.Fatalf("expected the finally's return to win over the try's throw, got error: %v", err)
	}
	result, _ := interp.Globals.Get("result")
	if result.I != 99 {
		t.Fatalf("result = %v, want 99", result.I)
	}
}

func TestWhileBreakAndContinue(t *testing.T) {
	interp := newTestInterp()

	whileStmt := &ast.While{
		Cond: &ast.Binary{Op: ast.OpLt, Left: ident("i"), Right: &ast.IntLit{Value: 10}},
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.ExprStmt{X: &ast.IncDec{Target: ident("i"), Delta: 1, Postfix: true}},
			&ast.If{
				Cond: &ast.Binary{Op: ast.OpEq, Left: ident("i"), Right: &ast.IntLit{Value: 3}},
				Then: &ast.Block{Statements: []ast.Stmt{&ast.Continue{}}},
			},
			&ast.If{
				Cond: &ast.Binary{Op: ast.OpEq, Left: ident("i"), Right: &ast.IntLit{Value: 5}},
				Then: &ast.Block{Statements: []ast.Stmt{&ast.Break{}}},
			},
			&ast.ExprStmt{X: &ast.Assign{
				Target: ident("sum"),
				Value:  &ast.Binary{Op: ast.OpAdd, Left: ident("sum"), Right: ident("i")},
			}},
		}},
	}

	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "i", Value: &ast.IntLit{Value: 0}},
		&ast.LetStmt{Name: "sum", Value: &ast.IntLit{Value: 0}},
		whileStmt,
	}}

	if _, err := interp.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// i goes 1,2,3(skip add),4,5(break before add) -> sum = 1+2+4 = 7
	sum, _ := interp.Globals.Get("sum")
	if sum.I != 7 {
		t.Fatalf("sum = %d, want 7", sum.I)
	}
}

func TestForInOverArray(t *testing.T) {
	interp := newTestInterp()

	forIn := &ast.ForIn{
		Name:     "x",
		Iterable: ident("arr"),
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.ExprStmt{X: &ast.Assign{
				Target: ident("total"),
				Value:  &ast.Binary{Op: ast.OpAdd, Left: ident("total"), Right: ident("x")},
			}},
		}},
	}

	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "arr", Value: &ast.ArrayLit{Elements: []ast.Expr{
			&ast.IntLit{Value: 1}, &ast.IntLit{Value: 2}, &ast.IntLit{Value: 3},
		}}},
		&ast.LetStmt{Name: "total", Value: &ast.IntLit{Value: 0}},
		forIn,
	}}

	if _, err := interp.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	total, _ := interp.Globals.Get("total")
	if total.I != 6 {
		t.Fatalf("total = %d, want 6", total.I)
	}
}

func TestSwitchFallsBackToDefault(t *testing.T) {
	interp := newTestInterp()

	sw := &ast.Switch{
		Subject: &ast.IntLit{Value: 7},
		Cases: []ast.SwitchCase{
			{Pattern: &ast.IntLit{Value: 1}, Body: []ast.Stmt{
				&ast.ExprStmt{X: &ast.Assign{Target: ident("hit"), Value: &ast.StringLit{Value: "one"}}},
			}},
		},
		Default: []ast.Stmt{
			&ast.ExprStmt{X: &ast.Assign{Target: ident("hit"), Value: &ast.StringLit{Value: "default"}}},
		},
	}

	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "hit", Value: &ast.NullLit{}},
		sw,
	}}
	if _, err := interp.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	hit, _ := interp.Globals.Get("hit")
	if hit.Kind != KindString || interp.GetString(hit) != "default" {
		t.Fatalf("hit = %+v, want string %q", hit, "default")
	}
}

func TestSwitchMatchesAndBreaksEarly(t *testing.T) {
	interp := newTestInterp()

	sw := &ast.Switch{
		Subject: &ast.IntLit{Value: 2},
		Cases: []ast.SwitchCase{
			{Pattern: &ast.IntLit{Value: 2}, Body: []ast.Stmt{
				&ast.ExprStmt{X: &ast.Assign{Target: ident("matched"), Value: &ast.BoolLit{Value: true}}},
				&ast.Break{},
				&ast.ExprStmt{X: &ast.Assign{Target: ident("unreached"), Value: &ast.BoolLit{Value: true}}},
			}},
		},
	}

	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "matched", Value: &ast.BoolLit{Value: false}},
		&ast.LetStmt{Name: "unreached", Value: &ast.BoolLit{Value: false}},
		sw,
	}}
	if _, err := interp.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	matched, _ := interp.Globals.Get("matched")
	if !matched.B {
		t.Fatal("expected the matching case to run")
	}
	unreached, _ := interp.Globals.Get("unreached")
	if unreached.B {
		t.Fatal("expected break to skip the rest of the case body")
	}
}

func TestArityErrorOnWrongArgCount(t *testing.T) {
	interp := newTestInterp()

	fnBody := &ast.Block{Statements: []ast.Stmt{&ast.Return{Value: ident("a")}}}
	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "f", Value: &ast.FuncLit{Params: []ast.Param{{Name: "a"}}, Body: fnBody}},
		&ast.ExprStmt{X: &ast.Call{Callee: ident("f")}},
	}}

	_, rerr := interp.Run(prog)
	if rerr == nil || rerr.Kind != ArityError {
		t.Fatalf("err = %v, want ArityError", rerr)
	}
}

func TestUndefinedVariableErrors(t *testing.T) {
	interp := newTestInterp()
	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.ExprStmt{X: ident("nope")},
	}}
	_, rerr := interp.Run(prog)
	if rerr == nil || rerr.Kind != UndefinedError {
		t.Fatalf("err = %v, want UndefinedError", rerr)
	}
}

func TestConstAssignmentErrors(t *testing.T) {
	interp := newTestInterp()
	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "x", Value: &ast.IntLit{Value: 1}, Const: true},
		&ast.ExprStmt{X: &ast.Assign{Target: ident("x"), Value: &ast.IntLit{Value: 2}}},
	}}
	_, rerr := interp.Run(prog)
	if rerr == nil || rerr.Kind != ConstError {
		t.Fatalf("err = %v, want ConstError", rerr)
	}
}

func TestIntegerWidthOverflowRaisesRangeError(t *testing.T) {
	interp := newTestInterp()
	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.LetStmt{Name: "x", Value: &ast.IntLit{Value: 300, Width: "i8"}},
	}}
	_, rerr := interp.Run(prog)
	if rerr == nil || rerr.Kind != RangeError {
		t.Fatalf("err = %v, want RangeError", rerr)
	}
}
