// uttt-server exposes the engine as a websocket move service.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"uttt_go/internal/config"
	"uttt_go/internal/logging"
	"uttt_go/internal/server"
)

func main() {
	cfg := config.Load()
	cfg.BindFlags(flag.CommandLine)
	flag.StringVar(&cfg.Listen, "listen", cfg.Listen, "listen address")
	flag.Parse()

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Options{
		MaxDepth: cfg.Depth,
		MoveTime: cfg.MoveTime,
		Logger:   logger,
	})
	if err := srv.Serve(ctx, cfg.Listen); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server shut down")
}
