// uttt-bot plays on stdin/stdout using the competition line protocol.
// Logs go to stderr.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"uttt_go/internal/bot"
	"uttt_go/internal/config"
	"uttt_go/internal/logging"
)

func main() {
	cfg := config.Load()
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	b := bot.New(bot.Options{
		MaxDepth: cfg.Depth,
		MoveTime: cfg.MoveTime,
		Logger:   logger,
	})
	log.Info().Int("depth", cfg.Depth).Dur("movetime", cfg.MoveTime).Msg("bot ready")
	if err := b.Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("bot stopped")
	}
}
