// Package trace provides a tracing subsystem for the Hemlock execution core.
//
// It lets the evaluator, the heap and the task scheduler emit structured
// events (span begin/end, instant points, heartbeats) without depending on
// where those events end up: nowhere (Nop), immediately to a writer
// (StreamTracer), into a fixed-size circular buffer for post-mortem dumps
// (RingTracer), or both (MultiTracer).
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: reserved for uncaught-error dumps
//   - LevelPhase: evaluator calls and scheduler spawn/join/park
//   - LevelDetail: adds heap allocation/free events
//   - LevelDebug: adds per-expression evaluation events
//
// # Scopes
//
//   - ScopeEval: whole evaluator invocations
//   - ScopeScheduler: task and channel operations
//   - ScopeHeap: allocation and free events
//   - ScopeExpr: individual statement/expression evaluation
//
// # Usage
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//	span := trace.Begin(t, trace.ScopeEval, "call:fib", parentID)
//	defer span.End("")
package trace
