package background

import (
	"image"
	"image/color"
	"math"
	"math/rand"
)

// Generator creates ground textures for when the image files are missing.
// Every texture is tileable: its edges line up when repeated.
type Generator struct {
	Width  int
	Height int
}

// NewGenerator creates a new texture generator
func NewGenerator(width, height int) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
	}
}

// GenerateGrass creates a speckled grass texture with darker clumps
func (g *Generator) GenerateGrass(seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	rng := rand.New(rand.NewSource(seed))

	// Base grass layer (rich green)
	g.fill(img, color.RGBA{40, 110, 40, 255})

	// Blades: varying shades of green
	for i := 0; i < g.Width*g.Height/6; i++ {
		x := rng.Intn(g.Width)
		y := rng.Intn(g.Height)
		shade := uint8(80 + rng.Intn(70))
		img.SetRGBA(x, y, color.RGBA{30, shade, 30, 255})
	}

	// Clumps, density rising and falling down the texture
	for y := 0; y < g.Height; y += 8 {
		density := 0.3 + 0.2*math.Sin(float64(y)*2*math.Pi/float64(g.Height))
		for x := 0; x < g.Width; x += 6 + rng.Intn(12) {
			if rng.Float64() > density {
				continue
			}
			g.drawClump(img, x+rng.Intn(8)-4, y+rng.Intn(8)-4, rng)
		}
	}

	return img
}

// GenerateAsphalt creates a grey road surface with a white edge line on
// both sides. Lane dividers are separate meshes, so none are painted here.
func (g *Generator) GenerateAsphalt(seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	rng := rand.New(rand.NewSource(seed))

	g.fill(img, color.RGBA{0x33, 0x33, 0x33, 255})

	// Aggregate
	for i := 0; i < g.Width*g.Height/4; i++ {
		x := rng.Intn(g.Width)
		y := rng.Intn(g.Height)
		v := uint8(0x28 + rng.Intn(0x20))
		img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
	}

	line := g.Width / 32
	if line < 1 {
		line = 1
	}
	edge := color.RGBA{0xee, 0xee, 0xee, 255}
	for y := 0; y < g.Height; y++ {
		for x := line; x < 2*line; x++ {
			img.SetRGBA(x, y, edge)
			img.SetRGBA(g.Width-1-x, y, edge)
		}
	}

	return img
}

func (g *Generator) fill(img *image.RGBA, c color.RGBA) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawClump draws a round tuft of grass, wrapping at the edges so the
// texture still tiles
func (g *Generator) drawClump(img *image.RGBA, x, y int, rng *rand.Rand) {
	radius := 2 + rng.Intn(4)
	c := color.RGBA{
		uint8(30 + rng.Intn(30)),
		uint8(90 + rng.Intn(50)),
		uint8(30 + rng.Intn(30)),
		255,
	}

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				px := ((x+dx)%g.Width + g.Width) % g.Width
				py := ((y+dy)%g.Height + g.Height) % g.Height
				img.SetRGBA(px, py, c)
			}
		}
	}
}
