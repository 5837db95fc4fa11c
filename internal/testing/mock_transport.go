package testing

import (
	"context"
	"io"
	"strings"
	"sync"

	"pkdindustries/bytebot/internal/core"
)

// SendCall records a Send() invocation
type SendCall struct {
	Channel string
	Text    string
}

// MockTransport implements core.Transport for testing. It hands out a
// scripted list of events and then ends with io.EOF, or blocks until the
// context is done when built with WithBlockWhenEmpty.
type MockTransport struct {
	mu sync.Mutex

	events         []core.Event
	nextErr        error
	sendErr        error
	blockWhenEmpty bool

	// Recorded calls (for assertions)
	Sends []SendCall
}

// Verify MockTransport implements core.Transport
var _ core.Transport = (*MockTransport)(nil)

// NewMockTransport creates a MockTransport with no scripted events
func NewMockTransport() *MockTransport {
	return &MockTransport{nextErr: io.EOF}
}

// Builder methods for fluent test setup

func (m *MockTransport) WithEvents(events ...core.Event) *MockTransport {
	m.events = append(m.events, events...)
	return m
}

func (m *MockTransport) WithMessages(msgs ...*core.ChatMessage) *MockTransport {
	for _, msg := range msgs {
		m.events = append(m.events, msg)
	}
	return m
}

// WithNextError sets the error Next returns once the script is exhausted.
func (m *MockTransport) WithNextError(err error) *MockTransport {
	m.nextErr = err
	return m
}

func (m *MockTransport) WithSendError(err error) *MockTransport {
	m.sendErr = err
	return m
}

func (m *MockTransport) WithBlockWhenEmpty() *MockTransport {
	m.blockWhenEmpty = true
	return m
}

func (m *MockTransport) Next(ctx context.Context) (core.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	if len(m.events) > 0 {
		ev := m.events[0]
		m.events = m.events[1:]
		m.mu.Unlock()
		return ev, nil
	}
	block := m.blockWhenEmpty
	err := m.nextErr
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return nil, err
}

func (m *MockTransport) Send(_ context.Context, channel, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sends = append(m.Sends, SendCall{Channel: channel, Text: text})
	return m.sendErr
}

// Helper methods for assertions

// HasReply checks if any sent text contains the substring
func (m *MockTransport) HasReply(substring string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.Sends {
		if strings.Contains(s.Text, substring) {
			return true
		}
	}
	return false
}

// LastReply returns the most recent send, or an empty call if none
func (m *MockTransport) LastReply() SendCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sends) == 0 {
		return SendCall{}
	}
	return m.Sends[len(m.Sends)-1]
}

// ReplyCount returns the number of Send calls
func (m *MockTransport) ReplyCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sends)
}
