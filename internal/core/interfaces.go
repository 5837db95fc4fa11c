package core

import "context"

// Transport is the chat connection the dispatch loop reads from and replies
// through.
type Transport interface {
	// Next blocks until an event arrives. It returns io.EOF once the
	// transport has shut down for good.
	Next(ctx context.Context) (Event, error)

	// Send posts text to a channel.
	Send(ctx context.Context, channel, text string) error
}
