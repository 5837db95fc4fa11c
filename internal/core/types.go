package core

import "pkdindustries/bytebot/internal/commands"

// Event is anything the transport hands to the dispatch loop.
type Event interface {
	EventName() string
}

// ChatMessage is a message posted to a channel the bot has joined.
type ChatMessage struct {
	Channel string
	Source  string
	Text    string
	Caller  commands.Caller
}

func (*ChatMessage) EventName() string { return "chat_message" }

// TransportEvent is any other transport-level event (joins, notices,
// reconnects). The dispatch loop ignores it.
type TransportEvent struct {
	Command string
	Params  []string
}

func (e *TransportEvent) EventName() string { return e.Command }
