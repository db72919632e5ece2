package render

import (
	"image"

	"github.com/golangdaddy/supercar/pkg/background"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"
)

const textureSize = 256

// LoadTexture reads an image file for a texture key. When the file cannot be
// read the fallback is used instead, so a missing texture never stops the
// game.
func LoadTexture(path string, fallback func() image.Image, logger zerolog.Logger) *ebiten.Image {
	if path != "" {
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err == nil {
			return img
		}
		logger.Warn().Err(err).Str("path", path).Msg("texture load failed, using generated texture")
	}
	return ebiten.NewImageFromImage(fallback())
}

// GrassFallback generates the grass texture used when none is on disk.
func GrassFallback() image.Image {
	return background.NewGenerator(textureSize, textureSize).GenerateGrass(1)
}

// AsphaltFallback generates the road texture used when none is on disk.
func AsphaltFallback() image.Image {
	return background.NewGenerator(textureSize, textureSize).GenerateAsphalt(2)
}
