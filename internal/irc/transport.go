package irc

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lrstanley/girc"
	"go.uber.org/zap"

	"pkdindustries/bytebot/internal/config"
	"pkdindustries/bytebot/internal/core"
)

const eventBuffer = 64

var ErrNotConnected = errors.New("not connected to chat server")

// Transport connects to Twitch chat over IRC and implements core.Transport.
// girc delivers events on its own goroutines; they are queued here and
// consumed one at a time through Next.
type Transport struct {
	client *girc.Client
	cfg    *config.Configuration
	logger *zap.SugaredLogger

	events    chan core.Event
	done      chan struct{}
	closeOnce sync.Once
	joined    atomic.Bool

	// overridden in tests
	connected func() bool
	message   func(target, text string)
}

func NewTransport(cfg *config.Configuration, logger *zap.SugaredLogger) *Transport {
	client := girc.New(girc.Config{
		Server:     cfg.Server.Server,
		Port:       cfg.Server.Port,
		Nick:       cfg.Server.Nick,
		User:       cfg.Server.Nick,
		Name:       cfg.Server.Nick,
		ServerPass: FormatOAuthToken(cfg.Auth.AccessToken),
		SSL:        cfg.Server.SSL,
		TLSConfig:  &tls.Config{InsecureSkipVerify: cfg.Server.TLSInsecure},
		SupportedCaps: map[string][]string{
			"twitch.tv/tags":     nil,
			"twitch.tv/commands": nil,
		},
	})

	t := &Transport{
		client:    client,
		cfg:       cfg,
		logger:    logger,
		events:    make(chan core.Event, eventBuffer),
		done:      make(chan struct{}),
		connected: client.IsConnected,
		message:   client.Cmd.Message,
	}

	client.Handlers.AddBg(girc.CONNECTED, func(c *girc.Client, e girc.Event) {
		t.joined.Store(true)
		t.logger.Infow("joining_channel", "channel", cfg.Server.Channel)
		c.Cmd.Join(cfg.Server.Channel)
		t.deliver(&core.TransportEvent{Command: e.Command, Params: e.Params})
	})
	client.Handlers.AddBg(girc.PRIVMSG, func(_ *girc.Client, e girc.Event) {
		t.handleEvent(&e)
	})
	client.Handlers.AddBg(girc.NOTICE, func(_ *girc.Client, e girc.Event) {
		t.logger.Warnw("server_notice", "text", e.Last())
	})

	return t
}

func (t *Transport) handleEvent(e *girc.Event) {
	msg, ok := MessageFromEvent(e)
	if !ok {
		return
	}
	t.logger.Debugw("message_received",
		"channel", msg.Channel,
		"source", msg.Source,
		"text", msg.Text,
		"broadcaster", msg.Caller.IsBroadcaster,
		"mod", msg.Caller.IsModerator,
	)
	t.deliver(msg)
}

func (t *Transport) deliver(ev core.Event) {
	select {
	case t.events <- ev:
	case <-t.done:
	}
}

// Next blocks until an event is available. It returns io.EOF once Run has
// returned and the queue is drained.
func (t *Transport) Next(ctx context.Context) (core.Event, error) {
	select {
	case ev := <-t.events:
		return ev, nil
	default:
	}

	select {
	case ev := <-t.events:
		return ev, nil
	case <-t.done:
		return nil, io.EOF
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Send posts text to channel, split into lines of at most chunkmax bytes.
func (t *Transport) Send(ctx context.Context, channel, text string) error {
	if !t.connected() {
		return ErrNotConnected
	}
	for _, line := range SplitMessage(text, t.cfg.Bot.ChunkMax) {
		if err := ctx.Err(); err != nil {
			return err
		}
		t.message(channel, line)
	}
	return nil
}

// Run connects and keeps the connection alive until ctx is cancelled or
// the retry budget is spent. A connection that reached CONNECTED resets the
// budget.
func (t *Transport) Run(ctx context.Context) error {
	defer t.close()

	go func() {
		select {
		case <-ctx.Done():
			if t.client.IsConnected() {
				t.client.Quit("Shutting down...")
			} else {
				t.client.Close()
			}
			t.logger.Info("irc_client_closed")
		case <-t.done:
		}
	}()

	maxRetries := t.cfg.Server.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}
	delay := t.cfg.Server.RetryDelay

	for attempt := 0; attempt < maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil
		}

		t.logger.Infow("connecting",
			"server", t.cfg.Server.Server,
			"port", t.cfg.Server.Port,
			"tls", t.cfg.Server.SSL,
			"attempt", attempt+1,
		)

		t.joined.Store(false)
		err := t.client.Connect()
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			return nil
		}
		if t.joined.Load() {
			attempt = -1
		}

		t.logger.Errorw("connection_failed", "error", err)
		t.logger.Infow("reconnecting", "delay", delay, "attempt", attempt+2, "max", maxRetries)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil
		}
	}

	return fmt.Errorf("failed to connect after %d attempts", maxRetries)
}

func (t *Transport) close() {
	t.closeOnce.Do(func() { close(t.done) })
}
