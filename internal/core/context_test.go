package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMessageLoggerFields(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(obs).Sugar()

	msg := &ChatMessage{Channel: "#test", Source: "viewer", Text: "!hi"}
	MessageLogger(base, msg).Infow("handled")
	MessageLogger(base, msg).Infow("handled")

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "#test", first["channel"])
	assert.Equal(t, "viewer", first["source"])

	id1, _ := first["request_id"].(string)
	id2, _ := entries[1].ContextMap()["request_id"].(string)
	assert.Len(t, id1, 8)
	assert.NotEqual(t, id1, id2, "each message gets its own request id")
}

func TestLogDuration(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	LogDuration(zap.New(obs).Sugar(), "dispatch", time.Now().Add(-time.Millisecond))

	entries := logs.FilterMessage("dispatch_completed").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap(), "duration_us")
}

func TestGetLoggerBeforeInit(t *testing.T) {
	assert.NotNil(t, GetLogger())
	assert.NotNil(t, WithFields("k", "v"))
}

func TestEventNames(t *testing.T) {
	assert.Equal(t, "chat_message", (&ChatMessage{}).EventName())
	assert.Equal(t, "JOIN", (&TransportEvent{Command: "JOIN"}).EventName())
}
