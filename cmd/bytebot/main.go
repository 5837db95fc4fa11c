package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"pkdindustries/bytebot/internal/bot"
	"pkdindustries/bytebot/internal/config"
	"pkdindustries/bytebot/internal/core"
)

func main() {
	// .env values fill in BYTEBOT_* variables that are not already set
	_ = godotenv.Load()

	fmt.Println(bot.GetBanner(bot.Version, isTerminal(os.Stdout)))

	cmd := &cli.Command{
		Name:    "bytebot",
		Usage:   "answer twitch chat commands from a YAML file",
		Version: bot.Version + " - http://github.com/pkdindustries/bytebot",
		Flags:   config.GetFlags(),
		Action:  runBot,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		// Print to stderr first in case logger isn't initialized
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runBot(ctx context.Context, c *cli.Command) error {
	if err := core.InitLogger(c.Bool("verbose")); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer zap.L().Sync() // Flushes buffer, if any

	return bot.Run(ctx, config.NewConfiguration(c))
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
