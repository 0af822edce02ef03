package desktop

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/lkarlslund/screenwatch/internal/common"
)

// resampleQuality is passed to beep.Resample when a clip does not match the
// speaker rate.
const resampleQuality = 4

// Player plays MP3 alert sounds on the default output device. The speaker
// is initialised on first use with the rate of the first clip.
type Player struct {
	mu     sync.Mutex
	stream beep.StreamSeekCloser

	initOnce sync.Once
	initErr  error
	rate     beep.SampleRate

	playing atomic.Bool
}

// NewPlayer creates an idle player.
func NewPlayer() *Player {
	return &Player{}
}

// Play starts path asynchronously, replacing anything already playing.
func (p *Player) Play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open sound: %w", err)
	}

	stream, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode %s: %w", path, err)
	}

	p.initOnce.Do(func() {
		p.rate = format.SampleRate
		p.initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	if p.initErr != nil {
		stream.Close()
		return fmt.Errorf("init speaker: %w", p.initErr)
	}

	p.Stop()

	var s beep.Streamer = stream
	if format.SampleRate != p.rate {
		s = beep.Resample(resampleQuality, format.SampleRate, p.rate, stream)
	}

	p.mu.Lock()
	p.stream = stream
	p.mu.Unlock()

	p.playing.Store(true)
	speaker.Play(beep.Seq(s, beep.Callback(func() {
		p.playing.Store(false)
	})))

	common.LogDebug("Playing alert sound", common.Fields{"path": path, "rate": int(format.SampleRate)})
	return nil
}

// Stop silences the current clip. It is a no-op when nothing plays.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return
	}
	speaker.Clear()
	p.playing.Store(false)
	if err := p.stream.Close(); err != nil {
		common.LogDebug("Failed to close sound stream", common.Fields{"error": err.Error()})
	}
	p.stream = nil
}

// IsPlaying reports whether a clip is still audible.
func (p *Player) IsPlaying() bool {
	return p.playing.Load()
}
