package ui

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"uttt_go/internal/assets"
	"uttt_go/internal/game"
	"uttt_go/internal/store"
)

// ReplayScreen 逐步回放存档中的对局
type ReplayScreen struct {
	records     []store.GameRecord
	gi, ply     int // 当前对局、已回放步数
	state       *game.GameState
	lastAdvance time.Time
	delay       time.Duration
	playing     bool // 是否自动播放
	sprites     *Sprites
	log         zerolog.Logger
}

// NewReplayScreen 从第一盘的初始局面开始
func NewReplayScreen(records []store.GameRecord, delay time.Duration, log zerolog.Logger) (*ReplayScreen, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("没有可回放的对局")
	}
	sprites, err := LoadSprites()
	if err != nil {
		return nil, err
	}
	rs := &ReplayScreen{
		records:     records,
		delay:       delay,
		lastAdvance: time.Now(),
		sprites:     sprites,
		log:         log,
	}
	rs.rebuild()
	return rs, nil
}

func (rs *ReplayScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

func (rs *ReplayScreen) Update() error {
	// --- 1) 处理按键 ---
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		rs.playing = !rs.playing
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		rs.playing = false
		rs.step(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		rs.playing = false
		rs.step(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		rs.switchGame(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		rs.switchGame(-1)
	}

	// --- 2) 自动播放 ---
	if rs.playing && time.Since(rs.lastAdvance) >= rs.delay {
		if rs.ply >= len(rs.records[rs.gi].Moves) {
			rs.switchGame(1)
		} else {
			rs.step(1)
		}
	}
	return nil
}

func (rs *ReplayScreen) step(d int) {
	rs.lastAdvance = time.Now()
	n := rs.ply + d
	if n < 0 || n > len(rs.records[rs.gi].Moves) {
		return
	}
	rs.ply = n
	rs.rebuild()
}

func (rs *ReplayScreen) switchGame(d int) {
	rs.lastAdvance = time.Now()
	n := rs.gi + d
	if n < 0 || n >= len(rs.records) {
		rs.playing = false
		return
	}
	rs.gi, rs.ply = n, 0
	rs.rebuild()
}

// rebuild 从头重放到当前步
func (rs *ReplayScreen) rebuild() {
	st, err := rs.records[rs.gi].Replay(rs.ply)
	if err != nil {
		rs.log.Error().Err(err).Str("game_id", rs.records[rs.gi].ID).Msg("replay failed")
		rs.playing = false
		if st == nil {
			st = game.NewGameState()
		}
	}
	rs.state = st
}

func (rs *ReplayScreen) Draw(screen *ebiten.Image) {
	screen.Fill(assets.ColorBackground)

	view := BoardView{Sprites: rs.sprites}
	if n := len(rs.state.History); n > 0 {
		last := rs.state.History[n-1]
		view.LastMove = &last
	}
	DrawBoardAndPieces(screen, rs.state.Board, view)

	rec := rs.records[rs.gi]
	mode := "paused"
	if rs.playing {
		mode = "playing"
	}
	info := fmt.Sprintf("Game %d/%d  Ply %d/%d  Winner=%v  [%s]  Space/Left/Right/Up/Down",
		rs.gi+1, len(rs.records),
		rs.ply, len(rec.Moves),
		rec.Winner,
		mode,
	)
	DrawStatus(screen, rs.sprites.Face, info, assets.ColorText)
}
