package channel

import "sync/atomic"

// lifecycleState is the four-state channel lifecycle: Listening, Joining,
// Killing, Dead. Transitions are monotonic in "shutdownness": Listening may
// advance to Joining or Killing; Joining may advance to Dead or be
// overridden by Killing; Killing always advances to Dead.
type lifecycleState int32

const (
	stateListening lifecycleState = iota
	stateJoining
	stateKilling
	stateDead
)

func (s lifecycleState) String() string {
	switch s {
	case stateListening:
		return "Listening"
	case stateJoining:
		return "Joining"
	case stateKilling:
		return "Killing"
	case stateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// lifecycle is the atomic lifecycle variable shared by Channel[T] and
// SignalChannel. Reads that gate behaviour use acquire semantics; writes
// that publish a transition use release semantics, via atomic.Int32's
// Load/Store (Go's memory model gives atomic loads/stores the necessary
// acquire/release ordering without an explicit memory-order parameter).
type lifecycle struct {
	v atomic.Int32
}

func (l *lifecycle) load() lifecycleState {
	return lifecycleState(l.v.Load())
}

func (l *lifecycle) store(s lifecycleState) {
	l.v.Store(int32(s))
}

// canSend reports whether the given state permits enqueuing a new message.
func canSend(s lifecycleState) bool {
	return s == stateListening
}

// canReceive reports whether the given state permits a message still
// reaching a receiver (directly, or by draining what remains queued).
func canReceive(s lifecycleState) bool {
	return s == stateListening || s == stateJoining
}
