package pool

import "runtime"

// runnable is the type-erased capability every submitted task reduces
// to: a run method plus whatever state run needs to close over. Task
// erasure per spec.md §4.3 Design Notes is realized in Go as this small
// interface implemented by the generic task[R] below, rather than a
// C++-style polymorphic base class.
type runnable interface {
	// run invokes the task's callable and resolves its Future.
	run(ctx TaskContext)
	// abandon resolves the task's Future to ErrTaskAbandoned without
	// ever invoking the callable. Used when Pool.Kill drops a task that
	// was queued but never reached a worker.
	abandon()
}

// task is the concrete runnable for a submission of result type R. It
// owns the caller's callable, the caller's already-captured arguments
// (via closure), and the producer half of the paired Future.
//
// Exactly one of fn or fnCtx is set, selected at Submit/SubmitCtx time —
// the Go equivalent of the "WithContext"/"WithoutContext" capability
// split in spec.md §4.3 Design Notes.
type task[R any] struct {
	fn     func() (R, error)
	fnCtx  func(TaskContext) (R, error)
	future *Future[R]
}

// run invokes the task's callable exactly once and always delivers a
// result to its Future, whether the callable returns normally, returns
// an error, or panics. run itself never panics.
func (t *task[R]) run(ctx TaskContext) {
	value, err := t.invoke(ctx)
	t.future.deliver(value, err)
}

// abandon resolves the task's Future to ErrTaskAbandoned. The future
// invariant in spec.md §3 ("always delivers a result ... to its bound
// future") holds even for a task that never ran.
func (t *task[R]) abandon() {
	var zero R
	t.future.deliver(zero, ErrTaskAbandoned)
}

func (t *task[R]) invoke(ctx TaskContext) (value R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = &PanicError{Value: r, Stack: buf[:n]}
		}
	}()

	if t.fnCtx != nil {
		return t.fnCtx(ctx)
	}
	return t.fn()
}
