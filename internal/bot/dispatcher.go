package bot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pkdindustries/bytebot/internal/commands"
	"pkdindustries/bytebot/internal/core"
	"pkdindustries/bytebot/internal/metrics"
)

// Dispatcher answers chat messages from a command registry.
type Dispatcher struct {
	registry  *commands.Registry
	transport core.Transport
	metrics   *metrics.Metrics
	logger    *zap.SugaredLogger
}

// NewDispatcher wires a registry to the transport replies go out on. A nil
// metrics or logger gets a private default.
func NewDispatcher(registry *commands.Registry, transport core.Transport, m *metrics.Metrics, logger *zap.SugaredLogger) *Dispatcher {
	if m == nil {
		m = metrics.New()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Dispatcher{
		registry:  registry,
		transport: transport,
		metrics:   m,
		logger:    logger,
	}
}

// Handle sends at most one reply for msg. Empty messages, unknown triggers
// and callers without the required role produce nothing. The only error is
// a failed send.
func (d *Dispatcher) Handle(ctx context.Context, msg *core.ChatMessage) error {
	d.metrics.Messages.Inc()
	log := core.MessageLogger(d.logger, msg)
	defer core.LogDuration(log, "dispatch", time.Now())

	trigger, args, ok := commands.Tokenize(msg.Text)
	if !ok {
		return nil
	}
	def, ok := d.registry.Lookup(trigger)
	if !ok {
		return nil
	}
	d.metrics.Matched.Inc()

	reply, ok := def.Render(args, msg.Caller)
	if !ok {
		d.metrics.Denied.Inc()
		log.Debugw("command_denied", "trigger", trigger, "roles", fmt.Sprint(def.Roles))
		return nil
	}

	if err := d.transport.Send(ctx, msg.Channel, reply); err != nil {
		d.metrics.SendErrors.Inc()
		return fmt.Errorf("sending reply for %s: %w", trigger, err)
	}
	d.metrics.Replies.Inc()
	log.Infow("command_replied", "trigger", trigger, "args", len(args))
	return nil
}
