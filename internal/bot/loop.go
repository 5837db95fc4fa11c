package bot

import (
	"context"
	"errors"
	"fmt"
	"io"

	"pkdindustries/bytebot/internal/core"
)

// Loop feeds chat messages from t through d one at a time until ctx is
// cancelled or t shuts down. Send failures are logged and do not stop the
// loop.
func Loop(ctx context.Context, t core.Transport, d *Dispatcher) error {
	for {
		ev, err := t.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading event: %w", err)
		}

		msg, ok := ev.(*core.ChatMessage)
		if !ok {
			d.logger.Debugw("event_ignored", "event", ev.EventName())
			continue
		}

		if err := d.Handle(ctx, msg); err != nil {
			d.logger.Errorw("reply_failed", "channel", msg.Channel, "error", err)
		}
	}
}
