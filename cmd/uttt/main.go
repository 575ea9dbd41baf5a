package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog/log"

	"uttt_go/internal/assets"
	"uttt_go/internal/config"
	"uttt_go/internal/logging"
	"uttt_go/internal/store"
	"uttt_go/internal/ui"
)

func main() {
	cfg := config.Load()
	cfg.BindFlags(flag.CommandLine)
	cfg.BindStorageFlags(flag.CommandLine)
	noArchive := flag.Bool("no-archive", false, "不保存对局")
	mute := flag.Bool("mute", false, "关闭音效")
	flag.Parse()

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	opts := ui.Options{Depth: cfg.Depth, MoveTime: cfg.MoveTime, Logger: logger}
	if !*noArchive {
		archive, err := store.OpenArchive(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open archive")
		}
		defer archive.Close()
		opts.Archive = archive
	}

	if !*mute {
		// audio.Context 全进程只能创建一次
		am, err := assets.NewAudioManager(audio.NewContext(assets.SampleRate), logger)
		if err != nil {
			log.Fatal().Err(err).Msg("init audio")
		}
		opts.Audio = am
	}

	screen, err := ui.NewGameScreen(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("init screen")
	}
	ebiten.SetTPS(30) // 每秒逻辑更新次数限制为30
	ebiten.SetWindowSize(ui.WindowWidth, ui.WindowHeight)
	ebiten.SetWindowTitle("Ultimate Tic-Tac-Toe")

	if err := ebiten.RunGame(screen); err != nil {
		log.Fatal().Err(err).Msg("run game")
	}
}

// go build -ldflags="-s -w" -o uttt ./cmd/uttt
