package pool

import (
	"errors"
	"fmt"
)

// ErrPoolNotListening is returned by Submit/SubmitCtx when the pool's
// underlying channel has left the Listening state (Join or Kill has
// already been called).
var ErrPoolNotListening = errors.New("pool: submit on a pool that is not listening")

// ErrTaskAbandoned is delivered to a task's Future when Pool.Kill drops
// the task from the queue before any worker started running it.
var ErrTaskAbandoned = errors.New("pool: task abandoned by kill before it started")

// PanicError wraps a panic recovered while running a task, carrying the
// recovered value and a stack trace captured at the moment of recovery.
// It is delivered through the task's Future exactly like any other task
// error — it never terminates the worker goroutine.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("pool: task panicked: %v\n%s", e.Value, e.Stack)
}
