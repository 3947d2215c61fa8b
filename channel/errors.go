package channel

import "errors"

var (
	// ErrNotListening is returned by Send/SendBulk when the channel has
	// already left the Listening state.
	ErrNotListening = errors.New("channel: send on a channel that is not listening")

	// ErrDead is returned by Recv when the channel has no more messages
	// and will never receive another one.
	ErrDead = errors.New("channel: receive on a dead channel")

	// ErrAlreadyJoiningOrDead is returned by Join when the channel is not
	// in the Listening state at the time Join is called, or when another
	// Join is already in progress.
	ErrAlreadyJoiningOrDead = errors.New("channel: join called on a channel that is not listening")
)
