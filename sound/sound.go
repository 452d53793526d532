// Package sound plays the companion sound effect for achievement
// notifications. Playback is a separate capability from the platform
// notification sound, which achievement toasts always silence.
package sound

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// Player plays a sound file.
type Player interface {
	// Play plays the file at path and returns once playback completes
	// or ctx is done.
	Play(ctx context.Context, path string) error
}

// Supported reports whether the companion sound effect is played on this
// platform. Linux is excluded: the desktop notification daemon already owns
// alert sounds there.
func Supported() bool {
	return runtime.GOOS != "linux"
}

// speakerBufferLen is the speaker buffer duration.
const speakerBufferLen = time.Second / 10

// BeepPlayer plays wav and mp3 files through the system audio device.
// The speaker is initialized once at the sample rate of the first file;
// later files at other rates are resampled.
type BeepPlayer struct {
	mu         sync.Mutex
	once       sync.Once
	initErr    error
	sampleRate beep.SampleRate
}

// NewBeepPlayer creates a BeepPlayer.
func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{}
}

// Play plays the sound file at path.
func (p *BeepPlayer) Play(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open sound file: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		_ = f.Close()
		return fmt.Errorf("unsupported sound format: %s", ext)
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to decode sound file: %w", err)
	}
	defer func() {
		_ = streamer.Close()
		_ = f.Close()
	}()

	p.once.Do(func() {
		p.initErr = speaker.Init(format.SampleRate, format.SampleRate.N(speakerBufferLen))
		p.sampleRate = format.SampleRate
	})
	if p.initErr != nil {
		return fmt.Errorf("failed to initialize speaker: %w", p.initErr)
	}

	p.mu.Lock()
	var stream beep.Streamer = streamer
	if format.SampleRate != p.sampleRate {
		stream = beep.Resample(4, format.SampleRate, p.sampleRate, streamer)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
