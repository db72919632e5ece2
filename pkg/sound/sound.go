package sound

import (
	"github.com/rs/zerolog"
)

// DefaultVolume is the engine loop volume.
const DefaultVolume = 0.5

// Player is a looping audio source.
type Player interface {
	Play()
	SetVolume(volume float64)
	SetPlaybackRate(rate float64)
}

// Opener prepares a looping source without starting it.
type Opener func() (Player, error)

// Controller owns the engine sound. Playback only starts on the first user
// interaction; later calls to Start do nothing.
type Controller struct {
	player  Player
	openErr error
	started bool
	rate    float64
	logger  zerolog.Logger
}

// NewController opens the engine loop at the given volume. A failed open is
// logged and remembered; the controller still works, silently.
func NewController(open Opener, volume float64, logger zerolog.Logger) *Controller {
	c := &Controller{
		rate:   1,
		logger: logger,
	}
	if open == nil {
		return c
	}
	p, err := open()
	if err != nil {
		c.openErr = err
		logger.Warn().Err(err).Msg("engine sound unavailable")
		return c
	}
	p.SetVolume(volume)
	c.player = p
	return c
}

// Start begins playback once. Failures are swallowed.
func (c *Controller) Start() {
	if c.started {
		return
	}
	c.started = true
	if c.player == nil {
		c.logger.Debug().Err(c.openErr).Msg("engine sound start skipped")
		return
	}
	c.player.Play()
	c.logger.Info().Msg("engine sound started")
}

// Started reports whether Start has been called.
func (c *Controller) Started() bool {
	return c.started
}

// SetPlaybackRate changes the engine pitch. It has no effect before Start.
func (c *Controller) SetPlaybackRate(rate float64) {
	if !c.started || rate <= 0 {
		return
	}
	c.rate = rate
	if c.player != nil {
		c.player.SetPlaybackRate(rate)
	}
}

// PlaybackRate returns the last rate applied.
func (c *Controller) PlaybackRate() float64 {
	return c.rate
}

// RateForSpeed maps a driving speed to an engine playback rate.
func RateForSpeed(speed float64) float64 {
	return 1 + speed*2
}
