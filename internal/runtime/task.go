package runtime

import (
	"hemlock/internal/asyncrt"
	"hemlock/internal/trace"
)

// TaskObj is the heap payload of a KindTask value.
type TaskObj struct {
	task *asyncrt.Task
}

// Spawn evaluates fn's body on a new goroutine, dispatched through the
// interpreter's task pool, and returns a Task value immediately.
func (interp *Interp) Spawn(fnValue Value, args []Value) (Value, error) {
	fnObj := interp.Heap.Get(fnValue.Heap)
	if fnObj == nil || fnObj.Kind != ObjFunction {
		return Value{}, NewError(TypeError, "spawn target is not a function")
	}
	fn := fnObj.Fn
	if !fn.IsAsync {
		return Value{}, NewError(ConcurrencyError, "spawn requires an async function, got %q", fn.Name)
	}

	// Retain the arguments and callee for the lifetime of the spawned
	// goroutine, since the caller's own stack slots may be released
	// before the task runs.
	interp.Heap.Retain(fnValue.Heap)
	for _, a := range args {
		if a.IsHeap() {
			interp.Heap.Retain(a.Heap)
		}
	}

	t := asyncrt.Spawn(interp.Pool, func() (any, error) {
		span := trace.Begin(interp.Tracer, trace.ScopeScheduler, "task:"+fn.Name, 0)
		defer span.End("")
		defer interp.Heap.Release(fnValue.Heap)
		for _, a := range args {
			if a.IsHeap() {
				defer interp.Heap.Release(a.Heap)
			}
		}
		result, sig := interp.callFunction(fn, args)
		if sig != nil && sig.kind == sigThrow {
			return nil, sig.err
		}
		return result, nil
	})

	handle := interp.Heap.Alloc(&Object{Kind: ObjTask, Task: &TaskObj{task: t}})
	return makeHeapValue(KindTask, handle), nil
}

// Join blocks until the task named by v completes, returning its result.
// An error raised inside the task is re-raised unchanged; joining twice,
// joining a detached task, or any other task failure raises a
// ConcurrencyError.
func (interp *Interp) Join(v Value) (Value, error) {
	obj := interp.Heap.Get(v.Heap)
	if obj == nil || obj.Kind != ObjTask {
		return Value{}, NewError(TypeError, "join target is not a task")
	}
	result, err := obj.Task.task.Join()
	if err != nil {
		if rerr, ok := err.(*Error); ok {
			return Value{}, rerr
		}
		if err == asyncrt.ErrAlreadyJoined {
			return Value{}, NewError(ConcurrencyError, "task handle already joined")
		}
		if err == asyncrt.ErrJoinDetached {
			return Value{}, NewError(ConcurrencyError, "cannot join a detached task")
		}
		return Value{}, NewError(ConcurrencyError, "task failed: %v", err)
	}
	if result == nil {
		return Null, nil
	}
	return result.(Value), nil
}

// Detach marks the task fire-and-forget.
func (interp *Interp) Detach(v Value) error {
	obj := interp.Heap.Get(v.Heap)
	if obj == nil || obj.Kind != ObjTask {
		return NewError(TypeError, "detach target is not a task")
	}
	obj.Task.task.Detach()
	return nil
}
