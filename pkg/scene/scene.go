package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Capability describes what the renderer may do with a mesh. Capabilities are
// fixed when a mesh is built or loaded; nothing probes meshes at runtime.
type Capability uint8

const (
	Drawable Capability = 1 << iota
	ShadowCaster
	ShadowReceiver
)

// Triangle is a single face in model space. UV coordinates are in [0, 1] and
// only matter for textured meshes.
type Triangle struct {
	V  [3]mgl64.Vec3
	UV [3]mgl64.Vec2
}

// Normal returns the face normal from the winding order (counter-clockwise
// seen from the front).
func (t Triangle) Normal() mgl64.Vec3 {
	n := t.V[1].Sub(t.V[0]).Cross(t.V[2].Sub(t.V[0]))
	if n.Len() == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

// Mesh is a set of triangles sharing one material.
type Mesh struct {
	Name      string
	Triangles []Triangle
	Color     color.RGBA
	Texture   string // texture key, empty for a flat colour
	Layer     int    // draw order among shadow receivers, lowest first
	caps      Capability
}

// NewMesh builds a drawable mesh with the given extra capabilities.
func NewMesh(name string, tris []Triangle, clr color.RGBA, caps ...Capability) *Mesh {
	m := &Mesh{
		Name:      name,
		Triangles: tris,
		Color:     clr,
		caps:      Drawable,
	}
	for _, c := range caps {
		m.caps |= c
	}
	return m
}

// Has reports whether the mesh carries capability c.
func (m *Mesh) Has(c Capability) bool {
	return m.caps&c == c
}

// Enable adds capability c to the mesh.
func (m *Mesh) Enable(c Capability) {
	m.caps |= c
}

// Node is a transform with meshes and child nodes.
type Node struct {
	Name     string
	Position mgl64.Vec3
	Scale    mgl64.Vec3
	Yaw      float64 // rotation around +Y in radians
	Meshes   []*Mesh
	Children []*Node
}

// NewNode returns a node at the origin with unit scale.
func NewNode(name string, meshes ...*Mesh) *Node {
	return &Node{
		Name:   name,
		Scale:  mgl64.Vec3{1, 1, 1},
		Meshes: meshes,
	}
}

// Add appends child nodes.
func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Local returns the node's transform relative to its parent (T * Ry * S).
func (n *Node) Local() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := mgl64.HomogRotate3DY(n.Yaw)
	s := mgl64.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// Visitor receives meshes by capability during Walk. A mesh that is both
// drawable and a shadow caster is visited once for each.
type Visitor interface {
	VisitDrawable(world mgl64.Mat4, m *Mesh)
	VisitShadowCaster(world mgl64.Mat4, m *Mesh)
}

// Walk visits every mesh under n with its accumulated world transform.
func (n *Node) Walk(v Visitor) {
	n.walk(mgl64.Ident4(), v)
}

func (n *Node) walk(parent mgl64.Mat4, v Visitor) {
	world := parent.Mul4(n.Local())
	for _, m := range n.Meshes {
		if m.Has(Drawable) {
			v.VisitDrawable(world, m)
		}
		if m.Has(ShadowCaster) {
			v.VisitShadowCaster(world, m)
		}
	}
	for _, c := range n.Children {
		c.walk(world, v)
	}
}

// EachMesh calls fn for every mesh under n, depth first.
func (n *Node) EachMesh(fn func(*Mesh)) {
	for _, m := range n.Meshes {
		fn(m)
	}
	for _, c := range n.Children {
		c.EachMesh(fn)
	}
}

// CastShadows marks every mesh under n as a shadow caster.
func (n *Node) CastShadows() {
	n.EachMesh(func(m *Mesh) { m.Enable(ShadowCaster) })
}

// Light is a directional light shining from Position toward the origin.
type Light struct {
	Position  mgl64.Vec3
	Intensity float64
}

// Direction returns the unit vector pointing from the scene toward the light.
func (l Light) Direction() mgl64.Vec3 {
	if l.Position.Len() == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return l.Position.Normalize()
}

// Scene is the full scene graph handed to the renderer.
type Scene struct {
	Background color.RGBA
	Ambient    float64
	Sun        Light
	Root       *Node
}

// New returns an empty scene with a sky background, ambient 0.6 and a sun
// at (10, 20, 10).
func New() *Scene {
	return &Scene{
		Background: color.RGBA{0x87, 0xce, 0xeb, 0xff},
		Ambient:    0.6,
		Sun: Light{
			Position:  mgl64.Vec3{10, 20, 10},
			Intensity: 1,
		},
		Root: NewNode("root"),
	}
}

// Add attaches nodes to the scene root.
func (s *Scene) Add(nodes ...*Node) {
	s.Root.Add(nodes...)
}
