package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog/log"

	"uttt_go/internal/config"
	"uttt_go/internal/logging"
	"uttt_go/internal/selfplay"
	"uttt_go/internal/store"
)

func main() {
	// ───── 参数 ─────
	cfg := config.Load()
	cfg.BindFlags(flag.CommandLine)
	cfg.BindStorageFlags(flag.CommandLine)
	numGames := flag.Int("n", 1000, "目标总对局数")
	workers := flag.Int("workers", cfg.Workers, "并行 worker 数")
	opening := flag.Int("opening", 4, "随机开局步数")
	batch := flag.Int("batch", 50000, "每个 parquet 文件的行数")
	seed := flag.Int64("seed", time.Now().UnixNano(), "随机种子")
	flag.Parse()

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// ───── 存储 ─────
	archive, err := store.OpenArchive(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open archive")
	}
	defer archive.Close()
	sink := &selfplay.StoreSink{Archive: archive, RecordsDir: cfg.RecordsDir, BatchRows: *batch}

	start := time.Now()
	sum, err := selfplay.Run(ctx, selfplay.Options{
		Games:        *numGames,
		Workers:      *workers,
		Depth:        cfg.Depth,
		OpeningPlies: *opening,
		Seed:         *seed,
		Source:       "selfplay",
		Logger:       logger,
	}, sink)
	if ferr := sink.Flush(); ferr != nil {
		log.Error().Err(ferr).Msg("flush records")
	}
	if err != nil {
		log.Error().Err(err).Msg("self-play stopped")
	}
	log.Info().
		Int("games", sum.Games).
		Int("wins_a", sum.WinsA).
		Int("wins_b", sum.WinsB).
		Int("draws", sum.Draws).
		Int("plies", sum.Plies).
		Strs("files", sink.Files()).
		Dur("elapsed", time.Since(start)).
		Msg("self-play done")
}

// go build -ldflags="-s -w" -o selfplay ./cmd/selfplay
