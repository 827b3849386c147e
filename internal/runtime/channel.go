package runtime

import (
	"time"

	"hemlock/internal/asyncrt"
	"hemlock/internal/trace"
)

// ChannelObj is the heap payload of a KindChannel value.
type ChannelObj struct {
	ch *asyncrt.Channel
}

// NewChannel allocates a bounded channel value.
func (interp *Interp) NewChannel(capacity int) Value {
	handle := interp.Heap.Alloc(&Object{Kind: ObjChannel, Chan: &ChannelObj{ch: asyncrt.NewChannel(capacity)}})
	return makeHeapValue(KindChannel, handle)
}

// Send blocks until v is accepted by the channel or it is closed. Sending a
// heap value transfers ownership: the sender's reference is retained on
// behalf of the channel slot and released again once the receiver takes it.
func (interp *Interp) Send(ch, v Value) error {
	obj := interp.Heap.Get(ch.Heap)
	if obj == nil || obj.Kind != ObjChannel {
		return NewError(TypeError, "send target is not a channel")
	}
	if v.IsHeap() {
		interp.Heap.Retain(v.Heap)
	}
	span := trace.Begin(interp.Tracer, trace.ScopeScheduler, "chan:send", 0)
	defer span.End("")
	if err := obj.Chan.ch.Send(v); err != nil {
		if v.IsHeap() {
			interp.Heap.Release(v.Heap)
		}
		return NewError(ConcurrencyError, "send on closed channel")
	}
	return nil
}

// Recv blocks until a value is available or the channel is closed and
// drained, in which case it returns Null and ok=false.
func (interp *Interp) Recv(ch Value) (Value, bool, error) {
	obj := interp.Heap.Get(ch.Heap)
	if obj == nil || obj.Kind != ObjChannel {
		return Value{}, false, NewError(TypeError, "recv target is not a channel")
	}
	span := trace.Begin(interp.Tracer, trace.ScopeScheduler, "chan:recv", 0)
	defer span.End("")
	raw, ok := obj.Chan.ch.Recv()
	if !ok {
		return Null, false, nil
	}
	v := raw.(Value)
	// The channel slot held one reference since Send; whatever the
	// receiver does with v (bind it, drop it) will retain its own as
	// needed, so release the channel's hold now.
	if v.IsHeap() {
		interp.Heap.Release(v.Heap)
	}
	return v, true, nil
}

// TrySend is the non-blocking variant of Send: ok is false when the channel
// has no room, with no ownership transfer in that case.
func (interp *Interp) TrySend(ch, v Value) (bool, error) {
	obj := interp.Heap.Get(ch.Heap)
	if obj == nil || obj.Kind != ObjChannel {
		return false, NewError(TypeError, "send target is not a channel")
	}
	if v.IsHeap() {
		interp.Heap.Retain(v.Heap)
	}
	ok, err := obj.Chan.ch.TrySend(v)
	if err != nil {
		if v.IsHeap() {
			interp.Heap.Release(v.Heap)
		}
		return false, NewError(ConcurrencyError, "send on closed channel")
	}
	if !ok && v.IsHeap() {
		interp.Heap.Release(v.Heap)
	}
	return ok, nil
}

// TryRecv is the non-blocking variant of Recv: ok is false when the channel
// is empty and not closed.
func (interp *Interp) TryRecv(ch Value) (Value, bool, error) {
	obj := interp.Heap.Get(ch.Heap)
	if obj == nil || obj.Kind != ObjChannel {
		return Value{}, false, NewError(TypeError, "recv target is not a channel")
	}
	raw, ok := obj.Chan.ch.TryRecv()
	if !ok {
		return Null, false, nil
	}
	v := raw.(Value)
	if v.IsHeap() {
		interp.Heap.Release(v.Heap)
	}
	return v, true, nil
}

// RecvTimeout blocks until a value arrives, the channel closes, or timeout
// elapses, returning ok=false without error on expiry.
func (interp *Interp) RecvTimeout(ch Value, timeout time.Duration) (Value, bool, error) {
	obj := interp.Heap.Get(ch.Heap)
	if obj == nil || obj.Kind != ObjChannel {
		return Value{}, false, NewError(TypeError, "recv target is not a channel")
	}
	span := trace.Begin(interp.Tracer, trace.ScopeScheduler, "chan:recv", 0)
	defer span.End("")
	raw, ok, timedOut := obj.Chan.ch.RecvTimeout(timeout)
	if timedOut {
		return Null, false, nil
	}
	if !ok {
		return Null, false, nil
	}
	v := raw.(Value)
	if v.IsHeap() {
		interp.Heap.Release(v.Heap)
	}
	return v, true, nil
}

// CloseChannel closes ch; further sends fail and receives drain the buffer.
func (interp *Interp) CloseChannel(ch Value) error {
	obj := interp.Heap.Get(ch.Heap)
	if obj == nil || obj.Kind != ObjChannel {
		return NewError(TypeError, "close target is not a channel")
	}
	obj.Chan.ch.Close()
	return nil
}
