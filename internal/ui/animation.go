// internal/ui/animation.go
package ui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"uttt_go/internal/assets"
	"uttt_go/internal/game"
	"uttt_go/internal/ui/layout"
)

type FrameAnim struct {
	Frames []*ebiten.Image
	FPS    float64   // 每秒多少帧
	Start  time.Time // 动画开始时间
	Done   bool
	X, Y   float64 // 左上角像素
	Cell   int     // 落子动画所在格 row*9+col；-1 表示整块子棋盘
}

func (a *FrameAnim) Current() *ebiten.Image {
	if a.Done || len(a.Frames) == 0 {
		return nil
	}
	elapsed := time.Since(a.Start).Seconds()
	// 延迟播放：还没到 Start，就返回 nil
	if elapsed < 0 {
		return nil
	}
	idx := int(elapsed * a.FPS)
	if idx >= len(a.Frames) {
		a.Done = true
		return nil
	}
	return a.Frames[idx]
}

// addMoveAnims 落子放大动画；若该步赢下子棋盘，随后闪烁整块
func (gs *GameScreen) addMoveAnims(m game.Move, sb *game.SuperBoard) {
	key := "x_place"
	if m.Player == game.PlayerB {
		key = "o_place"
	}
	place, err := assets.Anim(key)
	if err != nil {
		gs.log.Warn().Err(err).Msg("动画资源缺失")
		return
	}
	gs.opts.Audio.Play(key)
	row, col := m.Absolute()
	x, y := layout.CellOrigin(row, col)
	now := time.Now()
	gs.anims = append(gs.anims, &FrameAnim{
		Frames: place.Frames,
		FPS:    place.FPS,
		Start:  now,
		X:      x,
		Y:      y,
		Cell:   row*game.FieldCols + col,
	})

	if st, _ := sb.StatusAt(m.BoardRow, m.BoardCol); st.IsWon() {
		gs.opts.Audio.Play(key[:1] + "_win")
		win, err := assets.Anim(key[:1] + "_win")
		if err != nil {
			return
		}
		bx, by := layout.BoardOrigin(m.BoardRow, m.BoardCol)
		delay := time.Duration(float64(len(place.Frames)) / place.FPS * float64(time.Second))
		gs.anims = append(gs.anims, &FrameAnim{
			Frames: win.Frames,
			FPS:    win.FPS,
			Start:  now.Add(delay),
			X:      bx,
			Y:      by,
			Cell:   -1,
		})
	}
}

// hiddenCells 正在播放落子动画的格子，静态棋子先不画
func hiddenCells(anims []*FrameAnim) map[int]bool {
	var h map[int]bool
	for _, a := range anims {
		if a.Cell < 0 || a.Done {
			continue
		}
		if h == nil {
			h = make(map[int]bool)
		}
		h[a.Cell] = true
	}
	return h
}

func drawAnims(dst *ebiten.Image, anims []*FrameAnim) []*FrameAnim {
	live := anims[:0]
	for _, a := range anims {
		if img := a.Current(); img != nil {
			drawImageAt(dst, img, a.X, a.Y)
		}
		if !a.Done {
			live = append(live, a)
		}
	}
	return live
}
