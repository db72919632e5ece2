// Package pipeline turns a scene and a camera into screen-space faces,
// ordered for painter's-algorithm drawing.
package pipeline

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golangdaddy/supercar/pkg/camera"
	"github.com/golangdaddy/supercar/pkg/scene"
)

// Pass orders faces: receivers (ground) first, then shadows on them, then
// everything that casts shadows.
type Pass int

const (
	PassReceiver Pass = iota
	PassShadow
	PassCaster
)

const (
	DefaultDrawDistance = 300.0
	DefaultShadowAlpha  = 0x60
	shadowLift          = 0.02
)

// Vertex is a projected vertex in pixels plus texture coordinates.
type Vertex struct {
	X, Y float64
	U, V float64
}

// Face is a convex polygon ready to draw.
type Face struct {
	Verts   []Vertex
	Depth   float64 // distance along the view axis, larger is farther
	Layer   int
	Pass    Pass
	Color   color.RGBA
	Texture string
}

// Stats counts what happened to triangles in the last Build.
type Stats struct {
	Triangles int
	Culled    int
	Clipped   int
	Faces     int
}

type viewVertex struct {
	pos mgl64.Vec3
	uv  mgl64.Vec2
}

// Pipeline projects scenes. Reuse one Pipeline across frames.
type Pipeline struct {
	Width, Height int
	DrawDistance  float64
	ShadowAlpha   uint8

	view, proj mgl64.Mat4
	eye        mgl64.Vec3
	near       float64
	sun        mgl64.Vec3
	sunPower   float64
	ambient    float64

	faces []Face
	stats Stats
}

// New returns a pipeline for a screen of the given size.
func New(width, height int) *Pipeline {
	return &Pipeline{
		Width:        width,
		Height:       height,
		DrawDistance: DefaultDrawDistance,
		ShadowAlpha:  DefaultShadowAlpha,
	}
}

// Resize changes the target size.
func (p *Pipeline) Resize(width, height int) {
	p.Width, p.Height = width, height
}

// Stats returns counters from the last Build.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// Build projects every drawable mesh in sc through cam and returns the faces
// in draw order. The returned slice is reused by the next Build.
func (p *Pipeline) Build(sc *scene.Scene, cam *camera.Chase) []Face {
	p.faces = p.faces[:0]
	p.stats = Stats{}
	p.view = cam.View()
	p.proj = cam.Projection()
	p.eye = cam.Position
	p.near = cam.Near
	p.sun = sc.Sun.Direction()
	p.sunPower = sc.Sun.Intensity
	p.ambient = sc.Ambient

	sc.Root.Walk(p)

	sort.SliceStable(p.faces, func(i, j int) bool {
		a, b := p.faces[i], p.faces[j]
		if a.Pass != b.Pass {
			return a.Pass < b.Pass
		}
		if a.Pass == PassReceiver && a.Layer != b.Layer {
			return a.Layer < b.Layer
		}
		return a.Depth > b.Depth
	})
	p.stats.Faces = len(p.faces)
	return p.faces
}

// VisitDrawable implements scene.Visitor.
func (p *Pipeline) VisitDrawable(world mgl64.Mat4, m *scene.Mesh) {
	pass := PassCaster
	if m.Has(scene.ShadowReceiver) && !m.Has(scene.ShadowCaster) {
		pass = PassReceiver
	}
	for _, tri := range m.Triangles {
		p.stats.Triangles++
		var w [3]mgl64.Vec3
		for i, v := range tri.V {
			w[i] = world.Mul4x1(v.Vec4(1)).Vec3()
		}
		if p.tooFar(w) || p.backFacing(w) {
			p.stats.Culled++
			continue
		}
		clr := p.shade(m, w)
		p.emit(w, tri.UV, clr, m.Texture, m.Layer, pass)
	}
}

// VisitShadowCaster implements scene.Visitor. Shadows are the caster's
// sun-facing triangles flattened onto the ground along the sun direction.
// For a closed convex part those cover the shadow exactly once.
func (p *Pipeline) VisitShadowCaster(world mgl64.Mat4, m *scene.Mesh) {
	if p.sun.Y() <= 0 {
		return
	}
	shadow := color.RGBA{0, 0, 0, p.ShadowAlpha}
	for _, tri := range m.Triangles {
		var w [3]mgl64.Vec3
		for i, v := range tri.V {
			w[i] = world.Mul4x1(v.Vec4(1)).Vec3()
		}
		if !FacesLight(w, p.sun) {
			continue
		}
		for i := range w {
			w[i] = ProjectShadow(w[i], p.sun)
		}
		if p.tooFar(w) {
			continue
		}
		p.emit(w, tri.UV, shadow, "", 0, PassShadow)
	}
}

// FacesLight reports whether a world-space triangle's front side points
// toward the light.
func FacesLight(w [3]mgl64.Vec3, towardLight mgl64.Vec3) bool {
	n := w[1].Sub(w[0]).Cross(w[2].Sub(w[0]))
	return n.Dot(towardLight) > 0
}

// ProjectShadow drops a world point onto the ground plane along the
// direction toward the light.
func ProjectShadow(point, towardLight mgl64.Vec3) mgl64.Vec3 {
	t := point.Y() / towardLight.Y()
	flat := point.Sub(towardLight.Mul(t))
	return mgl64.Vec3{flat.X(), shadowLift, flat.Z()}
}

func (p *Pipeline) tooFar(w [3]mgl64.Vec3) bool {
	if p.DrawDistance <= 0 {
		return false
	}
	c := w[0].Add(w[1]).Add(w[2]).Mul(1.0 / 3)
	return c.Sub(p.eye).Len() > p.DrawDistance
}

func (p *Pipeline) backFacing(w [3]mgl64.Vec3) bool {
	n := w[1].Sub(w[0]).Cross(w[2].Sub(w[0]))
	return n.Dot(w[0].Sub(p.eye)) >= 0
}

// Shade returns the lit colour of a face: ambient plus Lambert sun, clamped.
func Shade(base color.RGBA, normal, towardLight mgl64.Vec3, ambient, sunPower float64) color.RGBA {
	i := ambient + math.Max(0, normal.Dot(towardLight))*sunPower
	if i > 1 {
		i = 1
	}
	return color.RGBA{
		R: uint8(float64(base.R) * i),
		G: uint8(float64(base.G) * i),
		B: uint8(float64(base.B) * i),
		A: base.A,
	}
}

func (p *Pipeline) shade(m *scene.Mesh, w [3]mgl64.Vec3) color.RGBA {
	base := m.Color
	if m.Texture != "" {
		base = color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
	n := w[1].Sub(w[0]).Cross(w[2].Sub(w[0]))
	if n.Len() == 0 {
		return base
	}
	return Shade(base, n.Normalize(), p.sun, p.ambient, p.sunPower)
}

func (p *Pipeline) emit(w [3]mgl64.Vec3, uv [3]mgl64.Vec2, clr color.RGBA, texture string, layer int, pass Pass) {
	in := make([]viewVertex, 3, 4)
	for i := range w {
		in[i] = viewVertex{pos: p.view.Mul4x1(w[i].Vec4(1)).Vec3(), uv: uv[i]}
	}
	poly, clipped := clipNear(in, p.near)
	if len(poly) < 3 {
		p.stats.Culled++
		return
	}
	if clipped {
		p.stats.Clipped++
	}

	face := Face{
		Verts:   make([]Vertex, len(poly)),
		Layer:   layer,
		Pass:    pass,
		Color:   clr,
		Texture: texture,
	}
	for i, v := range poly {
		x, y := p.toScreen(v.pos)
		face.Verts[i] = Vertex{X: x, Y: y, U: v.uv.X(), V: v.uv.Y()}
		face.Depth += -v.pos.Z()
	}
	face.Depth /= float64(len(poly))
	p.faces = append(p.faces, face)
}

func (p *Pipeline) toScreen(v mgl64.Vec3) (float64, float64) {
	c := p.proj.Mul4x1(v.Vec4(1))
	nx, ny := c.X()/c.W(), c.Y()/c.W()
	return (nx + 1) / 2 * float64(p.Width), (1 - ny) / 2 * float64(p.Height)
}

// clipNear clips a view-space polygon against the plane z = -near, keeping
// the part in front of the camera. It reports whether anything was cut.
func clipNear(poly []viewVertex, near float64) ([]viewVertex, bool) {
	limit := -near
	inside := func(v viewVertex) bool { return v.pos.Z() <= limit }

	all := true
	for _, v := range poly {
		if !inside(v) {
			all = false
			break
		}
	}
	if all {
		return poly, false
	}

	out := make([]viewVertex, 0, len(poly)+1)
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		ain, bin := inside(a), inside(b)
		if ain {
			out = append(out, a)
		}
		if ain != bin {
			t := (limit - a.pos.Z()) / (b.pos.Z() - a.pos.Z())
			out = append(out, viewVertex{
				pos: a.pos.Add(b.pos.Sub(a.pos).Mul(t)),
				uv:  a.uv.Add(b.uv.Sub(a.uv).Mul(t)),
			})
		}
	}
	return out, true
}
