package ui

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// StartPrompt asks the player to click so the engine sound can start, and
// tells them how to drive. It hides itself once the engine is running.
type StartPrompt struct {
	startTime time.Time
	started   func() bool
	loading   func() bool
}

// NewStartPrompt creates a prompt. started reports whether the engine sound
// is running; loading reports whether the car is still on its way.
func NewStartPrompt(started, loading func() bool) *StartPrompt {
	return &StartPrompt{
		startTime: time.Now(),
		started:   started,
		loading:   loading,
	}
}

// Draw renders the prompt along the bottom of the screen
func (sp *StartPrompt) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	centerX := float64(width) / 2

	if sp.loading != nil && sp.loading() {
		drawCentredText(screen, "Loading car...", centerX, float64(height)/2, 2, color.RGBA{255, 255, 255, 255})
	}

	if sp.started != nil && sp.started() {
		return
	}

	bandY := float64(height) - 80
	vector.DrawFilledRect(screen, 0, float32(bandY), float32(width), 70, color.RGBA{15, 20, 35, 0xb0}, false)

	// Blink every 0.5 seconds
	elapsed := time.Since(sp.startTime).Seconds()
	if int(elapsed*2)%2 == 0 {
		drawCentredText(screen, "Click to start the engine", centerX, bandY+22, 1.5, color.RGBA{150, 200, 255, 255})
	}
	drawCentredText(screen, "W / Up: drive   A / Left, D / Right: steer", centerX, bandY+50, 1, color.RGBA{180, 180, 200, 255})
}
