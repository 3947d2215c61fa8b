package channel

import "sync"

// SignalChannel is the Channel[Unit] variant of spec.md §4.2: a
// degenerate channel whose payload is "a signal". Backed by a
// non-negative counter rather than a queue, it is meant for cheap N-way
// signalling and has no message inventory to drain, so unlike Channel[T]
// it has no graceful Join.
type SignalChannel struct {
	mu    sync.Mutex
	avail *sync.Cond
	count int
	state lifecycle
}

// NewSignal creates a SignalChannel in the Listening state.
func NewSignal() *SignalChannel {
	s := &SignalChannel{}
	s.avail = sync.NewCond(&s.mu)
	return s
}

// Send increments the pending-signal counter by n (n defaults to 1) and
// wakes that many waiters. It fails with ErrNotListening if the channel
// is not Listening.
func (s *SignalChannel) Send(n ...int) error {
	count := 1
	if len(n) > 0 {
		count = n[0]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !canSend(s.state.load()) {
		return ErrNotListening
	}

	s.count += count
	for i := 0; i < count; i++ {
		s.avail.Signal()
	}
	return nil
}

// Recv blocks until the counter is positive or the channel is no longer
// receivable, in which case it returns ErrDead. On success it
// decrements the counter and wakes a further receiver if more signals
// remain.
func (s *SignalChannel) Recv() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if s.count > 0 {
			s.count--
			if s.count > 0 {
				s.avail.Signal()
			}
			return nil
		}
		if !canReceive(s.state.load()) {
			return ErrDead
		}
		s.avail.Wait()
	}
}

// TryRecv is the non-blocking variant of Recv.
func (s *SignalChannel) TryRecv() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count == 0 {
		return false
	}
	s.count--
	if s.count > 0 {
		s.avail.Signal()
	}
	return true
}

// Kill resets the counter to zero, wakes every waiter and advances the
// channel to Dead. Non-blocking and infallible.
func (s *SignalChannel) Kill() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.load() == stateDead {
		return
	}
	s.state.store(stateDead)
	s.count = 0
	s.avail.Broadcast()
}

// Joinable reports whether the channel is currently Listening.
func (s *SignalChannel) Joinable() bool {
	return s.state.load() == stateListening
}
