// cmd/uttt/replay/main.go
package main

import (
	"context"
	"flag"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"uttt_go/internal/config"
	"uttt_go/internal/logging"
	"uttt_go/internal/store"
	"uttt_go/internal/ui"
)

func main() {
	cfg := config.Load()
	cfg.BindStorageFlags(flag.CommandLine)
	gameID := flag.String("id", "", "只回放该 id 的对局")
	limit := flag.Int("limit", 50, "最多加载多少盘（最新的优先）")
	delay := flag.Duration("delay", 300*time.Millisecond, "每步播放间隔")
	flag.Parse()

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	archive, err := store.OpenArchive(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open archive")
	}
	defer archive.Close()

	ctx := context.Background()
	var records []store.GameRecord
	if *gameID != "" {
		rec, err := archive.LoadGame(ctx, *gameID)
		if err != nil {
			log.Fatal().Err(err).Msg("load game")
		}
		records = append(records, rec)
	} else if records, err = archive.ListGames(ctx, *limit); err != nil {
		log.Fatal().Err(err).Msg("list games")
	}

	screen, err := ui.NewReplayScreen(records, *delay, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("init replay")
	}
	ebiten.SetWindowSize(ui.WindowWidth, ui.WindowHeight)
	ebiten.SetWindowTitle("Ultimate Tic-Tac-Toe 回放")
	if err := ebiten.RunGame(screen); err != nil {
		log.Fatal().Err(err).Msg("run replay")
	}
}
