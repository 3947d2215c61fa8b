// Package channel implements a bounded-lifetime, multi-producer
// multi-consumer message queue with an explicit four-state lifecycle:
// Listening, Joining, Killing and Dead.
//
// # Basic Usage
//
//	ch := channel.New[int]()
//	go func() {
//	    for i := 1; i <= 1000; i++ {
//	        _ = ch.Send(i)
//	    }
//	    ch.Join(func() {}) // drain: let the queue empty, then go Dead
//	}()
//	for {
//	    v, err := ch.Recv()
//	    if err != nil {
//	        break // channel.ErrDead: no more messages will ever arrive
//	    }
//	    process(v)
//	}
//
// # Graceful Drain vs Abort
//
// Join lets whatever is already queued reach a receiver before the
// channel goes Dead; Kill discards it immediately. Both are safe to call
// from any goroutine at any time, and both are infallible except Join's
// AlreadyJoiningOrDead guard against calling it twice.
//
// Channel[T] is safe for concurrent use by any number of senders and
// receivers. A Channel that is still Listening or Joining when it is no
// longer needed should be stopped with Join or Kill — Go has no
// destructors, so there is no automatic equivalent of a defensive
// destructor; callers own that call.
package channel
