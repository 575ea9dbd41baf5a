package pcm

import (
	"encoding/binary"
	"math"
	"testing"
	"time"
)

func sample(buf []byte, frame int) (l, r int16) {
	off := frame * bytesPerFrame
	return int16(binary.LittleEndian.Uint16(buf[off:])), int16(binary.LittleEndian.Uint16(buf[off+2:]))
}

func TestRenderLengthAndChannels(t *testing.T) {
	buf := Render(Note{Freq: 440, Dur: 100 * time.Millisecond, Vol: 0.5})
	want := SampleRate / 10 * bytesPerFrame
	if len(buf) != want {
		t.Fatalf("len = %d, want %d", len(buf), want)
	}
	peak := 0
	for i := 0; i < len(buf)/bytesPerFrame; i++ {
		l, r := sample(buf, i)
		if l != r {
			t.Fatalf("frame %d: left %d != right %d", i, l, r)
		}
		if a := int(math.Abs(float64(l))); a > peak {
			peak = a
		}
	}
	// 音量 0.5 → 峰值约为满幅的一半
	if peak < math.MaxInt16*45/100 || peak > math.MaxInt16/2 {
		t.Errorf("peak = %d", peak)
	}
}

func TestRenderFadesAtEdges(t *testing.T) {
	buf := Render(Note{Freq: 1000, Dur: 50 * time.Millisecond, Vol: 1})
	n := len(buf) / bytesPerFrame
	for _, i := range []int{0, n - 1} {
		if l, _ := sample(buf, i); l != 0 {
			t.Errorf("frame %d = %d, want silence", i, l)
		}
	}
}

func TestRestIsSilent(t *testing.T) {
	buf := Render(Note{Dur: 10 * time.Millisecond})
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d in a rest", i, b)
		}
	}
}

func TestEffects(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("no effects")
	}
	for _, name := range names {
		buf, err := Effect(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(buf) == 0 || len(buf)%bytesPerFrame != 0 {
			t.Errorf("%s: %d bytes", name, len(buf))
		}
	}
	if _, err := Effect("nope"); err == nil {
		t.Error("unknown effect accepted")
	}
}
