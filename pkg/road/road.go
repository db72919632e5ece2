package road

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golangdaddy/supercar/pkg/scene"
)

// Texture keys the renderer resolves to images.
const (
	TextureRoad  = "road"
	TextureGrass = "grass"
)

var (
	asphalt   = color.RGBA{0x33, 0x33, 0x33, 0xff}
	grass     = color.RGBA{0x22, 0x8b, 0x22, 0xff}
	roadGrey  = color.RGBA{0x40, 0x40, 0x40, 0xff}
	lineWhite = color.RGBA{0xff, 0xff, 0xff, 0xff}
	trunk     = color.RGBA{0x5c, 0x3a, 0x1e, 0xff}
	leaves    = color.RGBA{0x2e, 0x7d, 0x32, 0xff}
)

// Layout describes the static world.
type Layout struct {
	GroundWidth  float64 // across X
	GroundLength float64 // along Z, centred on the origin
	TileSize     float64

	Lanes     int     // 0 means no road strip, just plain ground
	LaneWidth float64 // width of one lane
	DashEvery float64 // lane divider spacing; 0 disables markings
	Textured  bool    // use road/grass textures instead of flat colours

	PropEvery  float64 // roadside prop spacing; 0 disables props
	PropMargin float64 // gap between road edge and props
}

// DefaultLayout is a plain 500 x 5000 asphalt plane with no road or props.
func DefaultLayout() Layout {
	return Layout{
		GroundWidth:  500,
		GroundLength: 5000,
		TileSize:     25,
		LaneWidth:    4,
		DashEvery:    6,
		PropMargin:   3,
	}
}

// RoadWidth returns the width of the road strip.
func (l Layout) RoadWidth() float64 {
	if l.Lanes <= 0 {
		return 0
	}
	return float64(l.Lanes) * l.LaneWidth
}

// World holds the nodes the builder added. None of them move.
type World struct {
	Ground   *scene.Node
	Road     *scene.Node
	Props    []*scene.Node
	Dividers int
}

// Build adds ground, road and props to s.
func Build(s *scene.Scene, l Layout) *World {
	w := &World{}

	groundColor, groundTexture := asphalt, ""
	if l.Lanes > 0 {
		groundColor = grass
		if l.Textured {
			groundTexture = TextureGrass
		}
	}
	ground := scene.NewMesh("ground",
		scene.PlaneTiles(0, 0, l.GroundWidth, l.GroundLength, l.TileSize),
		groundColor, scene.ShadowReceiver)
	ground.Texture = groundTexture
	w.Ground = scene.NewNode("ground", ground)
	s.Add(w.Ground)

	if l.Lanes > 0 {
		w.Road = buildRoad(l)
		w.Dividers = len(w.Road.Meshes) - 1
		s.Add(w.Road)
	}

	if l.PropEvery > 0 {
		w.Props = buildProps(l)
		s.Add(w.Props...)
	}
	return w
}

func buildRoad(l Layout) *scene.Node {
	width := l.RoadWidth()
	surface := scene.NewMesh("road",
		scene.PlaneTiles(0, 0, width, l.GroundLength, width),
		roadGrey, scene.ShadowReceiver)
	surface.Layer = 1
	if l.Textured {
		surface.Texture = TextureRoad
	}
	node := scene.NewNode("road", surface)
	node.Position = mgl64.Vec3{0, 0.01, 0}

	if l.DashEvery <= 0 {
		return node
	}
	left := -width / 2
	for lane := 1; lane < l.Lanes; lane++ {
		x := left + float64(lane)*l.LaneWidth
		var dashes []scene.Triangle
		for z := l.GroundLength / 2; z > -l.GroundLength/2; z -= l.DashEvery {
			center := mgl64.Vec3{x, 0.01, z - l.DashEvery/4}
			dashes = append(dashes, scene.Quad(center, mgl64.Vec3{0.075, 0, 0}, mgl64.Vec3{0, 0, -l.DashEvery / 4})...)
		}
		marking := scene.NewMesh("divider", dashes, lineWhite, scene.ShadowReceiver)
		marking.Layer = 2
		node.Meshes = append(node.Meshes, marking)
	}
	return node
}

// buildProps places a tree on both verges every PropEvery units along the
// road.
func buildProps(l Layout) []*scene.Node {
	edge := l.RoadWidth()/2 + l.PropMargin
	var props []*scene.Node
	for z := l.GroundLength / 2; z >= -l.GroundLength/2; z -= l.PropEvery {
		for _, x := range []float64{-edge, edge} {
			props = append(props, tree(x, z))
		}
	}
	return props
}

func tree(x, z float64) *scene.Node {
	t := scene.NewMesh("trunk", scene.Box(0.3, 1.2, 0.3), trunk, scene.ShadowCaster)
	crown := scene.NewNode("crown", scene.NewMesh("leaves", scene.Box(1.4, 1.4, 1.4), leaves, scene.ShadowCaster))
	crown.Position = mgl64.Vec3{0, 1.3, 0}

	n := scene.NewNode("tree", t)
	n.Position = mgl64.Vec3{x, 0.6, z}
	n.Add(crown)
	return n
}
