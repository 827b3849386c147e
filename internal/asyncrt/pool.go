package asyncrt

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many tasks may run concurrently, preventing an unbounded
// spawn loop from starving the OS thread pool.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool creates a Pool allowing up to max concurrently-running tasks. A
// non-positive max means unbounded.
func NewPool(max int) *Pool {
	if max <= 0 {
		return &Pool{}
	}
	return &Pool{sem: semaphore.NewWeighted(int64(max))}
}

func (p *Pool) acquire() {
	if p.sem == nil {
		return
	}
	_ = p.sem.Acquire(context.Background(), 1)
}

func (p *Pool) release() {
	if p.sem == nil {
		return
	}
	p.sem.Release(1)
}
