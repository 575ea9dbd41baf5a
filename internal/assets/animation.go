package assets

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"uttt_go/internal/ui/layout"
)

// AnimData is a generated frame sequence.
type AnimData struct {
	Frames []*ebiten.Image
	FPS    float64
}

const placeFrames = 8

var animCache = map[string]AnimData{}

// Anim returns a generated animation:
//
//	x_place / o_place  落子：棋子从小放大到一格大小
//	x_win / o_win      子棋盘获胜：整块闪烁
func Anim(key string) (AnimData, error) {
	if a, ok := animCache[key]; ok {
		return a, nil
	}
	var a AnimData
	switch key {
	case "x_place", "o_place":
		a = placeAnim(key[:1])
	case "x_win", "o_win":
		c := ColorX
		if key[0] == 'o' {
			c = ColorO
		}
		a = flashAnim(c)
	default:
		return AnimData{}, fmt.Errorf("未知动画 %s", key)
	}
	animCache[key] = a
	return a, nil
}

func placeAnim(side string) AnimData {
	s := float32(layout.CellSize)
	frames := make([]*ebiten.Image, placeFrames)
	for i := range frames {
		img := ebiten.NewImage(layout.CellSize, layout.CellSize)
		k := 0.3 + 0.7*float32(i+1)/placeFrames
		inner := s * k
		off := (s - inner) / 2
		if side == "x" {
			drawXAt(img, off, inner, s*0.08, ColorX)
		} else {
			vector.StrokeCircle(img, s/2, s/2, inner*0.3, s*0.08, ColorO, true)
		}
		frames[i] = img
	}
	return AnimData{Frames: frames, FPS: 30}
}

func flashAnim(c color.RGBA) AnimData {
	frames := make([]*ebiten.Image, 6)
	for i := range frames {
		img := ebiten.NewImage(layout.SubBoardPixels, layout.SubBoardPixels)
		a := uint8(0x80)
		if i%2 == 1 {
			a = 0x20
		}
		img.Fill(withAlpha(c, a))
		frames[i] = img
	}
	return AnimData{Frames: frames, FPS: 12}
}

func drawXAt(img *ebiten.Image, off, size, w float32, c color.Color) {
	pad := size * 0.2
	lo, hi := off+pad, off+size-pad
	vector.StrokeLine(img, lo, lo, hi, hi, w, c, true)
	vector.StrokeLine(img, hi, lo, lo, hi, w, c, true)
}
