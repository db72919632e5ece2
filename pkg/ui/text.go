package ui

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// glyphHeight is the bitmap font's natural line height in pixels.
const glyphHeight = 16.0

var face = text.NewGoXFace(bitmapfont.Face)

// textWidth returns the width of str drawn at scale.
func textWidth(str string, scale float64) float64 {
	return text.Advance(str, face) * scale
}

// drawText draws str with its top-left corner at (x, y).
func drawText(screen *ebiten.Image, str string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	// Scale first (around the origin), then move into place
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawCentredText draws str centred on (cx, cy).
func drawCentredText(screen *ebiten.Image, str string, cx, cy, scale float64, clr color.Color) {
	drawText(screen, str, cx-textWidth(str, scale)/2, cy-glyphHeight*scale/2, scale, clr)
}
