package runtime

import (
	"testing"

	"hemlock/internal/ast"
)

func TestSpawnJoinReturnsFunctionResult(t *testing.T) {
	interp := newTestInterp()
	fn := interp.NewFunction(&ast.FuncLit{
		IsAsync: true,
		Body:    &ast.Block{Statements: []ast.Stmt{&ast.Return{Value: &ast.IntLit{Value: 7}}}},
	}, interp.Globals)

	task, err := interp.Spawn(fn, nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	result, err := interp.Join(task)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if result.I != 7 {
		t.Fatalf("result = %d, want 7", result.I)
	}
}

func TestSpawnJoinPropagatesThrow(t *testing.T) {
	interp := newTestInterp()
	fn := interp.NewFunction(&ast.FuncLit{
		IsAsync: true,
		Body:    &ast.Block{Statements: []ast.Stmt{&ast.Throw{Value: &ast.StringLit{Value: "boom"}}}},
	}, interp.Globals)

	task, err := interp.Spawn(fn, nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	_, err = interp.Join(task)
	if err == nil {
		t.Fatal("expected the task's throw to surface from Join")
	}
	rerr, ok := err.(*Error)
	if !ok || rerr.Kind != UserThrow {
		t.Fatalf("err = %v, want UserThrow", err)
	}
}

func TestChannelSendRecvTransfersOwnership(t *testing.T) {
	interp := newTestInterp()
	ch := interp.NewChannel(1)
	s := interp.NewString("payload")

	if err := interp.Send(ch, s); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got := interp.Heap.Get(s.Heap).RefCount; got != 2 {
		t.Fatalf("RefCount after Send = %d, want 2", got)
	}

	v, ok, err := interp.Recv(ch)
	if err != nil || !ok {
		t.Fatalf("Recv: %v, ok=%v", err, ok)
	}
	if v.Heap != s.Heap {
		t.Fatal("Recv returned a different handle than what was sent")
	}
	if got := interp.Heap.Get(s.Heap).RefCount; got != 1 {
		t.Fatalf("RefCount after Recv = %d, want 1", got)
	}
}

func TestChannelCloseThenSendErrors(t *testing.T) {
	interp := newTestInterp()
	ch := interp.NewChannel(1)
	if err := interp.CloseChannel(ch); err != nil {
		t.Fatalf("CloseChannel: %v", err)
	}
	if err := interp.Send(ch, MakeInt(1, WidthDefault)); err == nil {
		t.Fatal("expected send on a closed channel to error")
	}
}

func TestJoinOnDetachedTaskFails(t *testing.T) {
	interp := newTestInterp()
	fn := interp.NewFunction(&ast.FuncLit{
		IsAsync: true,
		Body:    &ast.Block{Statements: []ast.Stmt{&ast.Return{Value: &ast.IntLit{Value: 1}}}},
	}, interp.Globals)
	task, err := interp.Spawn(fn, nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if err := interp.Detach(task); err != nil {
		t.Fatalf("Detach: %v", err)
	}
	_, err = interp.Join(task)
	if err == nil {
		t.Fatal("expected join on a detached task to fail")
	}
	rerr, ok := err.(*Error)
	if !ok || rerr.Kind != ConcurrencyError {
		t.Fatalf("err = %v, want ConcurrencyError", err)
	}
}

func TestSecondJoinFailsWithAlreadyJoined(t *testing.T) {
	interp := newTestInterp()
	fn := interp.NewFunction(&ast.FuncLit{
		IsAsync: true,
		Body:    &ast.Block{Statements: []ast.Stmt{&ast.Return{Value: &ast.IntLit{Value: 42}}}},
	}, interp.Globals)
	task, err := interp.Spawn(fn, nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if _, err := interp.Join(task); err != nil {
		t.Fatalf("first Join: %v", err)
	}
	_, err = interp.Join(task)
	if err == nil {
		t.Fatal("expected a second join to fail")
	}
	rerr, ok := err.(*Error)
	if !ok || rerr.Kind != ConcurrencyError || rerr.Message != "task handle already joined" {
		t.Fatalf("err = %v, want ConcurrencyError \"task handle already joined\"", err)
	}
}

func TestChannelMethodCallsSendRecvClose(t *testing.T) {
	interp := newTestInterp()
	ch := interp.NewChannel(2)
	if _, err := lookupMethod(KindChannel, "send")(interp, ch, []Value{interp.NewString("a")}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := lookupMethod(KindChannel, "send")(interp, ch, []Value{interp.NewString("b")}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := lookupMethod(KindChannel, "close")(interp, ch, nil); err != nil {
		t.Fatalf("close: %v", err)
	}
	first, err := lookupMethod(KindChannel, "recv")(interp, ch, nil)
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	if interp.GetString(first) != "a" {
		t.Fatalf("first = %v, want a", first)
	}
	second, err := lookupMethod(KindChannel, "recv")(interp, ch, nil)
	if err != nil || interp.GetString(second) != "b" {
		t.Fatalf("second = %v, %v, want b", second, err)
	}
	third, err := lookupMethod(KindChannel, "recv")(interp, ch, nil)
	if err != nil || third.Kind != KindNull {
		t.Fatalf("third = %v, %v, want null", third, err)
	}
}

func TestChannelTrySendTryRecvNonBlocking(t *testing.T) {
	interp := newTestInterp()
	ch := interp.NewChannel(1)
	ok, err := interp.TrySend(ch, MakeInt(1, WidthDefault))
	if err != nil || !ok {
		t.Fatalf("TrySend on empty slot: ok=%v err=%v", ok, err)
	}
	ok, err = interp.TrySend(ch, MakeInt(2, WidthDefault))
	if err != nil || ok {
		t.Fatalf("TrySend on full channel should report ok=false, got ok=%v err=%v", ok, err)
	}
	v, ok, err := interp.TryRecv(ch)
	if err != nil || !ok || v.I != 1 {
		t.Fatalf("TryRecv = %v, ok=%v, err=%v, want 1/true/nil", v, ok, err)
	}
	_, ok, err = interp.TryRecv(ch)
	if err != nil || ok {
		t.Fatalf("TryRecv on empty channel should report ok=false, got ok=%v err=%v", ok, err)
	}
}

func TestTaskMethodJoinAndDetach(t *testing.T) {
	interp := newTestInterp()
	fn := interp.NewFunction(&ast.FuncLit{
		IsAsync: true,
		Body:    &ast.Block{Statements: []ast.Stmt{&ast.Return{Value: &ast.IntLit{Value: 9}}}},
	}, interp.Globals)
	task, err := interp.Spawn(fn, nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	result, err := lookupMethod(KindTask, "join")(interp, task, nil)
	if err != nil || result.I != 9 {
		t.Fatalf("join method = %v, %v, want 9", result, err)
	}
}
