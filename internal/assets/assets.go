package assets

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"uttt_go/internal/ui/layout"
)

// 调色板
var (
	ColorBackground = color.RGBA{0x10, 0x10, 0x30, 0xff}
	ColorBoard      = color.RGBA{0x24, 0x24, 0x48, 0xff}
	ColorActive     = color.RGBA{0x2e, 0x5a, 0x3a, 0xff}
	ColorGrid       = color.RGBA{0x90, 0x90, 0xb0, 0xff}
	ColorX          = color.RGBA{0xe0, 0x40, 0x40, 0xff}
	ColorO          = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	ColorLastMove   = color.RGBA{0xf0, 0xc0, 0x30, 0xff}
	ColorText       = color.White
)

// painters draw a named sprite into a size×size image.
var painters = map[string]func(img *ebiten.Image, size float32){
	"x_piece":   func(img *ebiten.Image, s float32) { drawX(img, s, s*0.08, ColorX) },
	"o_piece":   func(img *ebiten.Image, s float32) { drawO(img, s, s*0.08, ColorO) },
	"x_board":   func(img *ebiten.Image, s float32) { drawX(img, s, s*0.05, withAlpha(ColorX, 0xc0)) },
	"o_board":   func(img *ebiten.Image, s float32) { drawO(img, s, s*0.05, withAlpha(ColorO, 0xc0)) },
	"move_hint": func(img *ebiten.Image, s float32) { vector.DrawFilledCircle(img, s/2, s/2, s*0.1, withAlpha(ColorActive, 0xff), true) },
	"last_move": func(img *ebiten.Image, s float32) { vector.StrokeRect(img, 2, 2, s-4, s-4, 3, ColorLastMove, false) },
}

var cache = map[string]*ebiten.Image{}

// LoadImage returns the named sprite, drawn on first use. Board sprites cover
// a whole sub-board; the rest cover one cell.
func LoadImage(name string) (*ebiten.Image, error) {
	if img, ok := cache[name]; ok {
		return img, nil
	}
	paint, ok := painters[name]
	if !ok {
		return nil, fmt.Errorf("未知贴图 %s", name)
	}
	size := layout.CellSize
	if name == "x_board" || name == "o_board" {
		size = layout.SubBoardPixels
	}
	img := ebiten.NewImage(size, size)
	paint(img, float32(size))
	cache[name] = img
	return img, nil
}

// Face is the bitmap face used for every label.
func Face() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}

func drawX(img *ebiten.Image, s, w float32, c color.Color) {
	pad := s * 0.2
	vector.StrokeLine(img, pad, pad, s-pad, s-pad, w, c, true)
	vector.StrokeLine(img, s-pad, pad, pad, s-pad, w, c, true)
}

func drawO(img *ebiten.Image, s, w float32, c color.Color) {
	vector.StrokeCircle(img, s/2, s/2, s*0.3, w, c, true)
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	// 预乘 alpha
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 0xff) }
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), a}
}
