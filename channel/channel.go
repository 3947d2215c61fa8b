package channel

import "sync"

// Channel is a multi-producer, multi-consumer, in-memory FIFO of owned
// values of type T. See the package doc and spec.md §4.1 for the full
// state machine and ordering guarantees.
type Channel[T any] struct {
	mu         sync.Mutex
	msgAvail   *sync.Cond
	queueEmpty *sync.Cond
	queue      []T
	state      lifecycle

	// joinInFlight guards against a second Join racing in while the first
	// Join's hook runs with the channel still (deliberately) Listening.
	joinInFlight bool
}

// New creates a Channel in the Listening state.
func New[T any]() *Channel[T] {
	c := &Channel[T]{}
	c.msgAvail = sync.NewCond(&c.mu)
	c.queueEmpty = sync.NewCond(&c.mu)
	return c
}

// Send enqueues msg and wakes every waiting receiver. It fails with
// ErrNotListening if the channel is not in the Listening state; on
// failure the caller retains ownership of msg (it is never consumed).
func (c *Channel[T]) Send(msg T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !canSend(c.state.load()) {
		return ErrNotListening
	}

	c.queue = append(c.queue, msg)
	c.msgAvail.Broadcast()
	debugLog("send: queue len=%d", len(c.queue))
	return nil
}

// SendBulk enqueues msgs atomically with respect to every other Channel
// operation: the batch appears contiguously in the queue, and either all
// of it is enqueued or none of it is. It fails with ErrNotListening under
// the same conditions as Send.
func (c *Channel[T]) SendBulk(msgs []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !canSend(c.state.load()) {
		return ErrNotListening
	}

	c.queue = append(c.queue, msgs...)
	c.msgAvail.Broadcast()
	return nil
}

// Recv blocks until a message is available or the channel can no longer
// yield one, in which case it returns ErrDead. Recv returns failure only
// after observing, simultaneously, an empty queue and a state outside
// {Listening, Joining}.
func (c *Channel[T]) Recv() (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		if msg, ok := c.popLocked(); ok {
			return msg, nil
		}
		if !canReceive(c.state.load()) {
			debugLog("recv: returning ErrDead, state=%s", c.state.load())
			var zero T
			return zero, ErrDead
		}
		c.msgAvail.Wait()
	}
}

// TryRecv is the non-blocking variant of Recv. It never fails: it returns
// (msg, true) if a message was immediately available, or (zero, false)
// otherwise (empty queue, or a state that no longer admits receiving).
func (c *Channel[T]) TryRecv() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.popLocked()
}

// popLocked removes and returns the head of the queue, if any, applying
// the wake policy described in spec.md §4.1: a pop that leaves the queue
// non-empty wakes remaining receivers, one that empties it signals the
// queue-empty condition so a concurrent Join can observe drain.
func (c *Channel[T]) popLocked() (T, bool) {
	if len(c.queue) == 0 {
		var zero T
		return zero, false
	}

	msg := c.queue[0]
	c.queue = c.queue[1:]

	if len(c.queue) > 0 {
		c.msgAvail.Broadcast()
	} else {
		c.queueEmpty.Broadcast()
	}

	return msg, true
}

// Join requires the channel to be Listening on entry, else it fails with
// ErrAlreadyJoiningOrDead. hook runs before the state advances to
// Joining — the last moment a caller can perform a final Listening-time
// side effect (e.g. enqueue a poison pill) while sends can still
// succeed. Join then blocks until the queue drains, at which point the
// channel advances to Dead and every blocked Recv returns ErrDead. A
// concurrent Kill overrides the drain and Join returns once Kill has
// finished.
func (c *Channel[T]) Join(hook func()) error {
	c.mu.Lock()
	if c.state.load() != stateListening || c.joinInFlight {
		c.mu.Unlock()
		return ErrAlreadyJoiningOrDead
	}
	c.joinInFlight = true
	c.mu.Unlock()

	if hook != nil {
		hook()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.joinInFlight = false }()

	if c.state.load() == stateListening {
		c.state.store(stateJoining)
		debugLog("join: advanced to Joining, queue len=%d", len(c.queue))
	}

	for len(c.queue) > 0 && c.state.load() == stateJoining {
		c.queueEmpty.Wait()
	}

	if c.state.load() == stateJoining {
		c.state.store(stateDead)
		c.msgAvail.Broadcast()
		debugLog("join: drain complete, advanced to Dead")
	}

	return nil
}

// Kill is non-blocking and infallible. It advances the channel straight
// to Dead, waking every blocked Recv and Join, and returns whatever
// messages were still queued and unreceived so the caller can finalize
// them (e.g. resolve a paired future to an abandoned state) — ownership
// of those messages passes back to the caller of Kill, the same way
// Recv transfers ownership on a successful receive. Callers that have no
// finalization to do may simply discard the return value.
func (c *Channel[T]) Kill() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.load() == stateDead {
		return nil
	}

	c.state.store(stateKilling)
	c.msgAvail.Broadcast()
	dropped := c.queue
	c.queue = nil
	c.queueEmpty.Broadcast()
	c.state.store(stateDead)
	debugLog("kill: dropped %d unreceived message(s)", len(dropped))
	return dropped
}

// Joinable reports whether the channel is currently Listening.
func (c *Channel[T]) Joinable() bool {
	return c.state.load() == stateListening
}
