// File ui/input.go
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"uttt_go/internal/ui/layout"
)

// handleKeys R 重开；返回 true 表示本帧已处理完
func (gs *GameScreen) handleKeys() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		gs.restart()
		return true
	}
	return false
}

// handleInput 处理鼠标点击：点中合法空格即落子
func (gs *GameScreen) handleInput() {
	// 只在鼠标左键刚按下时响应
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	row, col, ok := layout.PixelToCell(mx, my)
	if !ok {
		return
	}
	if err := gs.state.PlayAt(row, col); err != nil {
		gs.log.Debug().Err(err).Int("row", row).Int("col", col).Msg("rejected click")
		gs.message = "Not playable here"
		gs.opts.Audio.Play("rejected")
		return
	}
	gs.message = ""
	gs.addMoveAnims(gs.lastMove(), gs.state.Board)
}
