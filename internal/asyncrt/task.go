// Package asyncrt implements Hemlock's concurrency primitives: tasks
// backed by real goroutines dispatched onto Go's OS-thread pool, and
// bounded channels with blocking send/recv. Every suspension point
// (join, send, recv) blocks the calling goroutine on a sync.Mutex/sync.Cond
// pair rather than cooperatively yielding, matching the "parallel OS
// threads, preemptible, no cooperative yield" execution model.
package asyncrt

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrAlreadyJoined is returned by Join when the task has already been
// joined once before.
var ErrAlreadyJoined = errors.New("task handle already joined")

// ErrJoinDetached is returned by Join when the task was marked detached.
var ErrJoinDetached = errors.New("cannot join a detached task")

// TaskState is the lifecycle stage of a Task.
type TaskState uint8

const (
	TaskRunning TaskState = iota
	TaskCompleted
	TaskFailed
)

// TaskID is a stable identifier independent of any heap handle, used by
// tracing and the debugger.
type TaskID = uuid.UUID

// Task runs fn on its own goroutine and lets other goroutines block until
// it finishes via Join.
type Task struct {
	ID TaskID

	mu       sync.Mutex
	cond     *sync.Cond
	state    TaskState
	result   any
	err      error
	detached bool
	joined   bool
}

// Spawn starts fn on a new goroutine and returns immediately with a handle
// to it. pool bounds how many tasks may run concurrently; the new goroutine
// waits for a free slot before it runs fn.
func Spawn(pool *Pool, fn func() (any, error)) *Task {
	t := &Task{ID: uuid.New()}
	t.cond = sync.NewCond(&t.mu)

	go func() {
		pool.acquire()
		defer pool.release()
		result, err := fn()
		t.mu.Lock()
		t.result = result
		t.err = err
		if err != nil {
			t.state = TaskFailed
		} else {
			t.state = TaskCompleted
		}
		t.cond.Broadcast()
		t.mu.Unlock()
	}()
	return t
}

// Join blocks the calling goroutine until t finishes, returning its result
// or error. A task may only be joined once, and never after Detach.
func (t *Task) Join() (any, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.detached {
		return nil, ErrJoinDetached
	}
	if t.joined {
		return nil, ErrAlreadyJoined
	}
	for t.state == TaskRunning {
		t.cond.Wait()
	}
	t.joined = true
	return t.result, t.err
}

// Detach marks t as fire-and-forget: nothing will ever call Join on it.
// Kept for parity with a joinable Task's API surface; detaching does not
// otherwise change scheduling since every task already runs on its own
// goroutine.
func (t *Task) Detach() {
	t.mu.Lock()
	t.detached = true
	t.mu.Unlock()
}

// State returns the task's current lifecycle stage without blocking.
func (t *Task) State() TaskState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
