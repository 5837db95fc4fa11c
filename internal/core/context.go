package core

import (
	"crypto/rand"
	"encoding/hex"

	"go.uber.org/zap"
)

// MessageLogger returns a logger tagged with a fresh request ID and the
// message's channel and source, so every line logged while handling one
// message can be correlated.
func MessageLogger(base *zap.SugaredLogger, msg *ChatMessage) *zap.SugaredLogger {
	return base.With(
		"request_id", generateRequestID(),
		"channel", msg.Channel,
		"source", msg.Source,
	)
}

// generateRequestID creates a unique 8-character request ID for correlation
func generateRequestID() string {
	b := make([]byte, 4)
	rand.Read(b)
	return hex.EncodeToString(b)
}
