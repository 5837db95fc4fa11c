package bot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pkdindustries/bytebot/internal/commands"
	"pkdindustries/bytebot/internal/config"
	"pkdindustries/bytebot/internal/core"
	"pkdindustries/bytebot/internal/credentials"
	"pkdindustries/bytebot/internal/irc"
	"pkdindustries/bytebot/internal/metrics"
)

const Version = "0.3.0"

// LoadRegistry reads the command file and builds the registry. Triggers
// defined more than once are logged; the last definition wins.
func LoadRegistry(path string, logger *zap.SugaredLogger) (*commands.Registry, error) {
	defs, err := config.LoadCommands(path)
	if err != nil {
		return nil, err
	}
	for _, trigger := range commands.Duplicates(defs) {
		logger.Warnw("duplicate_trigger", "trigger", trigger, "path", path)
	}

	reg := commands.NewRegistry(defs)
	logger.Infow("commands_loaded", "count", reg.Len(), "path", path, "triggers", reg.Triggers())
	for _, d := range reg.All() {
		logger.Debugw("command_registered", "trigger", d.Trigger, "args", d.Args, "roles", fmt.Sprint(d.Roles))
	}
	return reg, nil
}

// Run starts the bot with the given configuration and blocks until ctx is
// cancelled or the connection cannot be kept up.
func Run(ctx context.Context, cfg *config.Configuration) error {
	logger := core.WithFields("nick", cfg.Server.Nick)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.LogConfig(logger)

	registry, err := LoadRegistry(cfg.Bot.Commands, logger)
	if err != nil {
		return err
	}

	if err := credentials.NewRefresher(cfg.Auth, logger).Apply(ctx, cfg.Auth); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := metrics.New()
	if cfg.Bot.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Bot.MetricsAddr, logger); err != nil {
				logger.Errorw("metrics_server_failed", "error", err)
			}
		}()
	}

	transport := irc.NewTransport(cfg, logger)
	runErr := make(chan error, 1)
	go func() {
		runErr <- transport.Run(ctx)
	}()

	dispatcher := NewDispatcher(registry, transport, m, logger)
	if err := Loop(ctx, transport, dispatcher); err != nil {
		cancel()
		<-runErr
		return err
	}
	return <-runErr
}
