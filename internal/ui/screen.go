// File /ui/screen.go
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"uttt_go/internal/assets"
	"uttt_go/internal/game"
	"uttt_go/internal/store"
	"uttt_go/internal/ui/layout"
)

const (
	// 窗口尺寸
	WindowWidth  = layout.WindowWidth
	WindowHeight = layout.WindowHeight
)

// Options 人机对局参数
type Options struct {
	Depth    int
	MoveTime time.Duration
	Archive  *store.Archive        // 可为 nil：不存档
	Audio    *assets.AudioManager // 可为 nil：静音
	Logger   zerolog.Logger
}

type searchResult struct {
	gen   int
	move  game.Move
	ok    bool
	err   error
	stats game.SearchStats
}

// GameScreen 实现 ebiten.Game 接口：人类执 X (PlayerA)，引擎执 O (PlayerB)。
// 引擎在棋盘副本上搜索，主循环不阻塞。
type GameScreen struct {
	state   *game.GameState
	opts    Options
	log     zerolog.Logger
	sprites *Sprites
	anims   []*FrameAnim // 正在播放的动画列表

	thinking bool
	gen      int // 每次重开 +1，丢弃过期的搜索结果
	cancel   context.CancelFunc
	results  chan searchResult

	started time.Time
	saved   bool
	message string
}

// NewGameScreen 构造并初始化游戏界面
func NewGameScreen(opts Options) (*GameScreen, error) {
	sprites, err := LoadSprites()
	if err != nil {
		return nil, fmt.Errorf("加载贴图失败: %w", err)
	}
	if opts.Depth < 1 {
		opts.Depth = 1
	}
	return &GameScreen{
		state:   game.NewGameState(),
		opts:    opts,
		log:     opts.Logger,
		sprites: sprites,
		results: make(chan searchResult, 8),
		started: time.Now(),
	}, nil
}

// Update 每帧更新：处理按键、引擎结果和人类输入
func (gs *GameScreen) Update() error {
	gs.opts.Audio.Update()
	if gs.handleKeys() {
		return nil
	}

	select {
	case res := <-gs.results:
		gs.applyEngineMove(res)
	default:
	}

	if gs.state.GameOver {
		gs.saveOnce()
		return nil
	}

	// AI 回合
	if gs.state.CurrentPlayer == game.PlayerB {
		if !gs.thinking {
			gs.startSearch()
		}
		return nil
	}

	// 人类回合
	gs.handleInput()
	return nil
}

func (gs *GameScreen) startSearch() {
	gs.thinking = true
	gen := gs.gen
	board := gs.state.Board.Clone()
	ctx, cancel := context.WithTimeout(context.Background(), gs.opts.MoveTime)
	gs.cancel = cancel
	depth := gs.opts.Depth
	logger := gs.log

	go func() {
		defer cancel()
		s := game.NewSearcher(board).WithLogger(logger)
		mv, ok, err := s.IterativeDeepening(ctx, game.PlayerB, depth)
		gs.results <- searchResult{gen: gen, move: mv, ok: ok, err: err, stats: s.Stats()}
	}()
}

func (gs *GameScreen) applyEngineMove(res searchResult) {
	if res.gen != gs.gen {
		return
	}
	gs.thinking = false
	if res.err != nil {
		gs.log.Error().Err(res.err).Msg("search failed")
		gs.message = "engine error: " + res.err.Error()
		return
	}
	if !res.ok {
		return
	}
	gs.log.Debug().
		Str("move", res.move.String()).
		Int("depth", res.stats.Depth).
		Int("nodes", res.stats.Nodes).
		Dur("elapsed", res.stats.Elapsed).
		Msg("engine move")
	if err := gs.state.MakeMove(res.move); err != nil {
		gs.log.Error().Err(err).Msg("engine move rejected")
		return
	}
	gs.message = ""
	gs.addMoveAnims(gs.lastMove(), gs.state.Board)
}

// restart 重开一局；进行中的搜索被取消，其结果在 applyEngineMove 中丢弃
func (gs *GameScreen) restart() {
	if gs.cancel != nil {
		gs.cancel()
	}
	gs.gen++
	gs.thinking = false
	gs.state.Reset()
	gs.anims = nil
	gs.started = time.Now()
	gs.saved = false
	gs.message = ""
}

func (gs *GameScreen) saveOnce() {
	if gs.saved {
		return
	}
	gs.saved = true
	gs.log.Info().Str("result", gs.state.String()).Msg("game over")
	switch gs.state.Winner {
	case game.PlayerA:
		gs.opts.Audio.Play("game_won")
	case game.PlayerB:
		gs.opts.Audio.Play("game_lost")
	default:
		gs.opts.Audio.Play("game_draw")
	}
	if gs.opts.Archive == nil {
		return
	}
	rec := store.NewGameRecord(gs.state, "human", fmt.Sprintf("negamax-d%d", gs.opts.Depth), gs.started)
	if err := gs.opts.Archive.SaveGame(context.Background(), rec); err != nil {
		gs.log.Error().Err(err).Msg("save game")
		return
	}
	gs.log.Info().Str("game_id", rec.ID).Msg("game archived")
}

func (gs *GameScreen) lastMove() game.Move {
	h := gs.state.History
	return h[len(h)-1]
}

// Draw 每帧渲染：背景、棋盘、动画、状态栏
func (gs *GameScreen) Draw(screen *ebiten.Image) {
	screen.Fill(assets.ColorBackground)

	view := BoardView{Sprites: gs.sprites, Hidden: hiddenCells(gs.anims)}
	if n := len(gs.state.History); n > 0 {
		last := gs.state.History[n-1]
		view.LastMove = &last
	}
	if !gs.state.GameOver && gs.state.CurrentPlayer == game.PlayerA {
		view.HintFor = game.PlayerA
	}
	DrawBoardAndPieces(screen, gs.state.Board, view)
	gs.anims = drawAnims(screen, gs.anims)
	DrawStatus(screen, gs.sprites.Face, gs.statusLine(), assets.ColorText)
}

func (gs *GameScreen) statusLine() string {
	if gs.message != "" {
		return gs.message
	}
	switch {
	case gs.state.GameOver && gs.state.Winner == game.PlayerA:
		return "You win!  [R] restart"
	case gs.state.GameOver && gs.state.Winner == game.PlayerB:
		return "Engine wins.  [R] restart"
	case gs.state.GameOver:
		return "Draw.  [R] restart"
	case gs.thinking:
		return "Engine thinking..."
	}
	return fmt.Sprintf("Your move (X), ply %d  [R] restart", len(gs.state.History)+1)
}

// Layout 定义窗口尺寸
func (gs *GameScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}
