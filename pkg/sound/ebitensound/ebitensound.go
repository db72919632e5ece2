// Package ebitensound plays the engine loop through Ebiten's audio driver.
package ebitensound

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/golangdaddy/supercar/pkg/sound"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

// SampleRate is used when no audio context exists yet.
const SampleRate = 44100

type player struct {
	p    *audio.Player
	rate *sound.RateReader
}

func (p *player) Play()                        { p.p.Play() }
func (p *player) SetVolume(volume float64)     { p.p.SetVolume(volume) }
func (p *player) SetPlaybackRate(rate float64) { p.rate.SetRate(rate) }

// Open returns an opener that decodes the MP3 at path and loops it forever.
func Open(path string) sound.Opener {
	return func() (sound.Player, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read engine sound: %w", err)
		}

		ctx := audio.CurrentContext()
		if ctx == nil {
			ctx = audio.NewContext(SampleRate)
		}

		stream, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode engine sound: %w", err)
		}

		rate := sound.NewRateReader(audio.NewInfiniteLoop(stream, stream.Length()))
		p, err := ctx.NewPlayer(rate)
		if err != nil {
			return nil, fmt.Errorf("failed to create engine player: %w", err)
		}
		p.SetBufferSize(100 * time.Millisecond)
		return &player{p: p, rate: rate}, nil
	}
}
