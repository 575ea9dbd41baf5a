// Package pcm synthesizes the game's sound effects as 16-bit little-endian
// stereo PCM, the format ebiten's audio players read.
package pcm

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"time"
)

// SampleRate is the rate every effect is rendered at.
const SampleRate = 44100

const (
	bytesPerFrame = 4   // 2 声道 × 16 bit
	fadeFrames    = 220 // 5ms 淡入淡出，避免爆音
)

// Note is one sine tone; Freq 0 is silence.
type Note struct {
	Freq float64
	Dur  time.Duration
	Vol  float64 // 0..1
}

// effects 每个音效是若干音符顺序拼接
var effects = map[string][]Note{
	"x_place":   {{Freq: 660, Dur: 60 * time.Millisecond, Vol: 0.4}},
	"o_place":   {{Freq: 440, Dur: 60 * time.Millisecond, Vol: 0.4}},
	"x_win":     {{523.25, 80 * time.Millisecond, 0.4}, {659.25, 80 * time.Millisecond, 0.4}, {783.99, 140 * time.Millisecond, 0.4}},
	"o_win":     {{392.00, 80 * time.Millisecond, 0.4}, {329.63, 80 * time.Millisecond, 0.4}, {261.63, 140 * time.Millisecond, 0.4}},
	"game_won":  {{523.25, 120 * time.Millisecond, 0.5}, {0, 40 * time.Millisecond, 0}, {1046.5, 300 * time.Millisecond, 0.5}},
	"game_lost": {{311.13, 200 * time.Millisecond, 0.5}, {233.08, 400 * time.Millisecond, 0.5}},
	"game_draw": {{440, 150 * time.Millisecond, 0.4}, {440, 150 * time.Millisecond, 0.4}},
	"rejected":  {{180, 50 * time.Millisecond, 0.3}},
}

// Names lists every effect key, sorted.
func Names() []string {
	out := make([]string, 0, len(effects))
	for k := range effects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Effect renders the named effect.
func Effect(name string) ([]byte, error) {
	notes, ok := effects[name]
	if !ok {
		return nil, fmt.Errorf("unknown sound effect %q", name)
	}
	return Render(notes...), nil
}

// Render concatenates notes into one PCM buffer. Each note fades in and out
// over a few milliseconds.
func Render(notes ...Note) []byte {
	total := 0
	for _, n := range notes {
		total += frames(n.Dur)
	}
	buf := make([]byte, total*bytesPerFrame)
	off := 0
	for _, n := range notes {
		cnt := frames(n.Dur)
		for i := 0; i < cnt; i++ {
			v := 0.0
			if n.Freq > 0 {
				v = n.Vol * envelope(i, cnt) * math.Sin(2*math.Pi*n.Freq*float64(i)/SampleRate)
			}
			s := uint16(int16(v * math.MaxInt16))
			binary.LittleEndian.PutUint16(buf[off:], s)   // 左
			binary.LittleEndian.PutUint16(buf[off+2:], s) // 右
			off += bytesPerFrame
		}
	}
	return buf
}

func frames(d time.Duration) int {
	return int(d.Seconds() * SampleRate)
}

func envelope(i, n int) float64 {
	f := fadeFrames
	if 2*f > n {
		f = n / 2
	}
	switch {
	case f == 0:
		return 1
	case i < f:
		return float64(i) / float64(f)
	case i >= n-f:
		return float64(n-1-i) / float64(f)
	}
	return 1
}
