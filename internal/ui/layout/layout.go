// Package layout maps between the 9×9 field and window pixels. It has no
// ebiten dependency so it can be tested headless.
package layout

import "uttt_go/internal/game"

const (
	CellSize  = 56 // 单格像素
	BoardGap  = 10 // 子棋盘之间的间隙
	Margin    = 24
	StatusBar = 48 // 底部状态栏高度

	BoardPixels  = game.Cols*CellSize*game.Cols + (game.Cols-1)*BoardGap
	WindowWidth  = BoardPixels + 2*Margin
	WindowHeight = BoardPixels + 2*Margin + StatusBar
)

// CellOrigin returns the top-left pixel of absolute cell (row, col).
func CellOrigin(row, col int) (x, y float64) {
	return axis(col), axis(row)
}

func axis(i int) float64 {
	return float64(Margin + i*CellSize + (i/game.Cols)*BoardGap)
}

// CellCenter returns the centre pixel of absolute cell (row, col).
func CellCenter(row, col int) (x, y float64) {
	x, y = CellOrigin(row, col)
	return x + CellSize/2, y + CellSize/2
}

// BoardOrigin returns the top-left pixel of sub-board (br, bc).
func BoardOrigin(br, bc int) (x, y float64) {
	return CellOrigin(br*game.Rows, bc*game.Cols)
}

// SubBoardPixels is the side of one sub-board.
const SubBoardPixels = game.Cols * CellSize

// PixelToCell maps a window pixel to an absolute cell. Pixels in the margins
// or gaps map to ok=false.
func PixelToCell(px, py int) (row, col int, ok bool) {
	col, okc := pixelToIndex(px)
	row, okr := pixelToIndex(py)
	return row, col, okc && okr
}

func pixelToIndex(p int) (int, bool) {
	p -= Margin
	if p < 0 {
		return 0, false
	}
	span := SubBoardPixels + BoardGap
	board, off := p/span, p%span
	if board >= game.Cols || off >= SubBoardPixels {
		return 0, false
	}
	return board*game.Cols + off/CellSize, true
}
