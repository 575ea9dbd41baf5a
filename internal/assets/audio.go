package assets

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"

	"uttt_go/internal/assets/pcm"
)

// SampleRate is the rate the audio context must be created with.
const SampleRate = pcm.SampleRate

type AudioManager struct {
	ctx     *audio.Context
	buffers map[string][]byte
	log     zerolog.Logger

	mu      sync.Mutex
	players []*audio.Player // 播放中的 player，保留引用防止被 GC
}

// NewAudioManager 接收 main 创建好的 *audio.Context，不再 NewContext；
// 所有音效在这里一次合成好
func NewAudioManager(ctx *audio.Context, log zerolog.Logger) (*AudioManager, error) {
	if ctx.SampleRate() != SampleRate {
		return nil, fmt.Errorf("audio context runs at %d Hz, want %d", ctx.SampleRate(), SampleRate)
	}
	names := pcm.Names()
	buf := make(map[string][]byte, len(names))
	for _, name := range names {
		data, err := pcm.Effect(name)
		if err != nil {
			return nil, fmt.Errorf("合成音效 %s 失败: %w", name, err)
		}
		buf[name] = data
	}
	return &AudioManager{ctx: ctx, buffers: buf, log: log}, nil
}

// Play 播放 key 对应音效。nil 的 AudioManager 表示静音。
func (m *AudioManager) Play(key string) {
	if m == nil {
		return
	}
	data, ok := m.buffers[key]
	if !ok {
		m.log.Warn().Str("key", key).Msg("未找到音效")
		return
	}
	p := m.ctx.NewPlayerFromBytes(data)
	p.Play()

	m.mu.Lock()
	m.players = append(m.players, p)
	m.mu.Unlock()
}

// Update 应每帧调用一次，清理已停止的播放器
func (m *AudioManager) Update() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	alive := m.players[:0]
	for _, p := range m.players {
		if p.IsPlaying() {
			alive = append(alive, p)
		}
	}
	m.players = alive
}
