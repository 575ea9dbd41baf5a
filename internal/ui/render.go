// File /ui/render.go
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"uttt_go/internal/assets"
	"uttt_go/internal/game"
	"uttt_go/internal/ui/layout"
)

// Sprites 渲染所需的全部贴图
type Sprites struct {
	Pieces   map[game.CellState]*ebiten.Image // 单格棋子
	Boards   map[game.CellState]*ebiten.Image // 覆盖整个子棋盘的大号标记
	Hint     *ebiten.Image
	LastMove *ebiten.Image
	Face     text.Face
}

// LoadSprites builds every sprite the screens use.
func LoadSprites() (*Sprites, error) {
	sp := &Sprites{
		Pieces: make(map[game.CellState]*ebiten.Image),
		Boards: make(map[game.CellState]*ebiten.Image),
		Face:   assets.Face(),
	}
	var err error
	if sp.Pieces[game.PlayerA], err = assets.LoadImage("x_piece"); err != nil {
		return nil, err
	}
	if sp.Pieces[game.PlayerB], err = assets.LoadImage("o_piece"); err != nil {
		return nil, err
	}
	if sp.Boards[game.PlayerA], err = assets.LoadImage("x_board"); err != nil {
		return nil, err
	}
	if sp.Boards[game.PlayerB], err = assets.LoadImage("o_board"); err != nil {
		return nil, err
	}
	if sp.Hint, err = assets.LoadImage("move_hint"); err != nil {
		return nil, err
	}
	if sp.LastMove, err = assets.LoadImage("last_move"); err != nil {
		return nil, err
	}
	return sp, nil
}

// BoardView is what DrawBoard needs besides the board itself.
type BoardView struct {
	LastMove *game.Move
	HintFor  game.CellState // 为该玩家画合法落点提示；Empty 表示不画
	Hidden   map[int]bool   // 正在播放落子动画的格子 (row*9+col)
	Sprites  *Sprites
}

// DrawBoardAndPieces 在 dst 上依次绘制子棋盘底色、网格、提示、棋子和获胜标记
func DrawBoardAndPieces(dst *ebiten.Image, sb *game.SuperBoard, v BoardView) {
	// 1) 子棋盘底色：可下的子棋盘高亮
	for br := 0; br < game.Rows; br++ {
		for bc := 0; bc < game.Cols; bc++ {
			st, _ := sb.StatusAt(br, bc)
			bg := assets.ColorBoard
			if st == game.Active {
				bg = assets.ColorActive
			}
			x, y := layout.BoardOrigin(br, bc)
			size := float32(layout.SubBoardPixels)
			vector.DrawFilledRect(dst, float32(x), float32(y), size, size, bg, false)
			drawGrid(dst, float32(x), float32(y))
		}
	}

	// 2) 合法落点提示
	if v.HintFor.IsPlayer() {
		moves, _ := sb.LegalMoves(v.HintFor)
		for _, m := range moves {
			r, c := m.Absolute()
			drawAtCell(dst, v.Sprites.Hint, r, c)
		}
	}

	// 3) 棋子
	for row := 0; row < game.FieldRows; row++ {
		for col := 0; col < game.FieldCols; col++ {
			if v.Hidden[row*game.FieldCols+col] {
				continue
			}
			if c, _ := sb.CellAt(row, col); c.IsPlayer() {
				drawAtCell(dst, v.Sprites.Pieces[c], row, col)
			}
		}
	}

	// 4) 最后一步
	if v.LastMove != nil {
		r, c := v.LastMove.Absolute()
		drawAtCell(dst, v.Sprites.LastMove, r, c)
	}

	// 5) 已获胜子棋盘盖上大号标记
	for br := 0; br < game.Rows; br++ {
		for bc := 0; bc < game.Cols; bc++ {
			st, _ := sb.StatusAt(br, bc)
			if !st.IsWon() {
				continue
			}
			x, y := layout.BoardOrigin(br, bc)
			drawImageAt(dst, v.Sprites.Boards[st.Owner()], x, y)
		}
	}
}

func drawGrid(dst *ebiten.Image, x, y float32) {
	cs := float32(layout.CellSize)
	size := float32(layout.SubBoardPixels)
	for i := 1; i < game.Cols; i++ {
		d := float32(i) * cs
		vector.StrokeLine(dst, x+d, y, x+d, y+size, 1, assets.ColorGrid, false)
		vector.StrokeLine(dst, x, y+d, x+size, y+d, 1, assets.ColorGrid, false)
	}
}

func drawAtCell(dst, img *ebiten.Image, row, col int) {
	x, y := layout.CellOrigin(row, col)
	drawImageAt(dst, img, x, y)
}

func drawImageAt(dst, img *ebiten.Image, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	dst.DrawImage(img, op)
}

// DrawStatus 在底部状态栏写一行文字
func DrawStatus(dst *ebiten.Image, face text.Face, msg string, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(layout.Margin, float64(layout.WindowHeight-layout.StatusBar))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, msg, face, op)
}
