package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ScoreBoard shows the running score in the top-left corner. It is the
// session's score sink.
type ScoreBoard struct {
	score int
	label string
}

// NewScoreBoard creates a score board showing zero.
func NewScoreBoard() *ScoreBoard {
	sb := &ScoreBoard{}
	sb.SetScore(0)
	return sb
}

// SetScore updates the displayed score.
func (sb *ScoreBoard) SetScore(score int) {
	if score == sb.score && sb.label != "" {
		return
	}
	sb.score = score
	sb.label = fmt.Sprintf("Score: %d", score)
}

// Score returns the last score written.
func (sb *ScoreBoard) Score() int {
	return sb.score
}

// Draw renders the board
func (sb *ScoreBoard) Draw(screen *ebiten.Image) {
	const (
		margin  = 10.0
		padding = 8.0
		scale   = 1.5
	)
	w := textWidth(sb.label, scale) + 2*padding
	h := glyphHeight*scale + 2*padding

	// Translucent panel so the score stays readable over the sky
	vector.DrawFilledRect(screen, margin, margin, float32(w), float32(h), color.RGBA{0, 0, 0, 0x80}, false)
	vector.StrokeRect(screen, margin, margin, float32(w), float32(h), 1, color.RGBA{0xff, 0xff, 0xff, 0x60}, false)
	drawText(screen, sb.label, margin+padding, margin+padding, scale, color.White)
}
