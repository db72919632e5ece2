// Package render draws a scene onto an Ebiten screen.
package render

import (
	"image"
	"image/color"

	"github.com/golangdaddy/supercar/pkg/camera"
	"github.com/golangdaddy/supercar/pkg/render/pipeline"
	"github.com/golangdaddy/supercar/pkg/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// DrawTriangles indexes vertices with uint16.
const maxVertices = 1 << 16

// Renderer batches projected faces into DrawTriangles calls. Faces sharing a
// source image go out in one call as long as draw order allows it.
type Renderer struct {
	pipeline *pipeline.Pipeline
	textures map[string]*ebiten.Image
	missing  map[string]bool
	white    *ebiten.Image
	logger   zerolog.Logger

	vertices []ebiten.Vertex
	indices  []uint16
	source   *ebiten.Image
	calls    int
}

// New creates a renderer with no textures.
func New(logger zerolog.Logger) *Renderer {
	base := ebiten.NewImage(3, 3)
	base.Fill(color.White)
	return &Renderer{
		pipeline: pipeline.New(1, 1),
		textures: make(map[string]*ebiten.Image),
		missing:  make(map[string]bool),
		white:    base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		logger:   logger,
	}
}

// SetTexture registers an image under a mesh texture key.
func (r *Renderer) SetTexture(key string, img *ebiten.Image) {
	r.textures[key] = img
}

// SetDrawDistance limits how far from the camera triangles are drawn.
func (r *Renderer) SetDrawDistance(d float64) {
	r.pipeline.DrawDistance = d
}

// Stats returns pipeline counters and the number of draw calls of the last
// frame.
func (r *Renderer) Stats() (pipeline.Stats, int) {
	return r.pipeline.Stats(), r.calls
}

// Draw fills the sky and renders sc from cam.
func (r *Renderer) Draw(screen *ebiten.Image, sc *scene.Scene, cam *camera.Chase) {
	b := screen.Bounds()
	r.pipeline.Resize(b.Dx(), b.Dy())
	screen.Fill(sc.Background)

	r.calls = 0
	for _, f := range r.pipeline.Build(sc, cam) {
		src := r.image(f.Texture)
		if src != r.source || len(r.vertices)+len(f.Verts) > maxVertices {
			r.flush(screen)
			r.source = src
		}
		r.appendFace(f, src)
	}
	r.flush(screen)
}

func (r *Renderer) image(key string) *ebiten.Image {
	if key == "" {
		return r.white
	}
	img, ok := r.textures[key]
	if !ok {
		if !r.missing[key] {
			r.missing[key] = true
			r.logger.Warn().Str("texture", key).Msg("no image registered, drawing flat")
		}
		return r.white
	}
	return img
}

func (r *Renderer) appendFace(f pipeline.Face, src *ebiten.Image) {
	sb := src.Bounds()
	cr := float32(f.Color.R) / 0xff
	cg := float32(f.Color.G) / 0xff
	cb := float32(f.Color.B) / 0xff
	ca := float32(f.Color.A) / 0xff

	base := uint16(len(r.vertices))
	for _, v := range f.Verts {
		sx, sy := float32(sb.Min.X)+0.5, float32(sb.Min.Y)+0.5
		if src != r.white {
			sx = float32(sb.Min.X) + float32(v.U)*float32(sb.Dx())
			sy = float32(sb.Min.Y) + float32(v.V)*float32(sb.Dy())
		}
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX:   float32(v.X),
			DstY:   float32(v.Y),
			SrcX:   sx,
			SrcY:   sy,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	// Clipped faces are convex, so a fan covers them.
	for i := 1; i+1 < len(f.Verts); i++ {
		r.indices = append(r.indices, base, base+uint16(i), base+uint16(i+1))
	}
}

func (r *Renderer) flush(screen *ebiten.Image) {
	if len(r.indices) == 0 || r.source == nil {
		r.vertices, r.indices = r.vertices[:0], r.indices[:0]
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	if r.source != r.white {
		op.Filter = ebiten.FilterLinear
	}
	screen.DrawTriangles(r.vertices, r.indices, r.source, op)
	r.calls++
	r.vertices, r.indices = r.vertices[:0], r.indices[:0]
}
