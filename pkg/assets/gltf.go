package assets

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golangdaddy/supercar/pkg/scene"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var defaultModelColor = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}

// DecodeGLTF reads a .glb or .gltf file and flattens every triangle
// primitive of the default scene into meshes, baking node transforms in.
func DecodeGLTF(path string) ([]*scene.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}

	var roots []int
	switch {
	case doc.Scene != nil && *doc.Scene < len(doc.Scenes):
		roots = doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		roots = doc.Scenes[0].Nodes
	default:
		for i := range doc.Nodes {
			roots = append(roots, i)
		}
	}

	var meshes []*scene.Mesh
	seen := make(map[int]bool)
	var visit func(idx int, parent mgl64.Mat4) error
	visit = func(idx int, parent mgl64.Mat4) error {
		if idx < 0 || idx >= len(doc.Nodes) || seen[idx] {
			return nil
		}
		seen[idx] = true
		node := doc.Nodes[idx]
		world := parent.Mul4(nodeMatrix(node))
		if node.Mesh != nil && *node.Mesh < len(doc.Meshes) {
			m, err := decodeMesh(doc, doc.Meshes[*node.Mesh], world)
			if err != nil {
				return err
			}
			meshes = append(meshes, m...)
		}
		for _, c := range node.Children {
			if err := visit(c, world); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range roots {
		if err := visit(r, mgl64.Ident4()); err != nil {
			return nil, err
		}
	}
	return meshes, nil
}

func nodeMatrix(n *gltf.Node) mgl64.Mat4 {
	m := mgl64.Mat4(n.MatrixOrDefault())
	if m != mgl64.Ident4() {
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize()
	return mgl64.Translate3D(t[0], t[1], t[2]).Mul4(q.Mat4()).Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

func decodeMesh(doc *gltf.Document, mesh *gltf.Mesh, world mgl64.Mat4) ([]*scene.Mesh, error) {
	var out []*scene.Mesh
	for i, p := range mesh.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := p.Attributes[gltf.POSITION]
		if !ok || posIdx >= len(doc.Accessors) {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
		}

		var indices []uint32
		if p.Indices != nil && *p.Indices < len(doc.Accessors) {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*p.Indices], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for j := range indices {
				indices[j] = uint32(j)
			}
		}

		tris := make([]scene.Triangle, 0, len(indices)/3)
		for j := 0; j+2 < len(indices); j += 3 {
			var tri scene.Triangle
			valid := true
			for k := 0; k < 3; k++ {
				idx := int(indices[j+k])
				if idx >= len(positions) {
					valid = false
					break
				}
				v := positions[idx]
				tri.V[k] = world.Mul4x1(mgl64.Vec4{float64(v[0]), float64(v[1]), float64(v[2]), 1}).Vec3()
			}
			if valid {
				tris = append(tris, tri)
			}
		}
		if len(tris) == 0 {
			continue
		}

		name := mesh.Name
		if name == "" {
			name = fmt.Sprintf("mesh%d", len(out))
		}
		out = append(out, scene.NewMesh(name, tris, materialColor(doc, p)))
	}
	return out, nil
}

func materialColor(doc *gltf.Document, p *gltf.Primitive) color.RGBA {
	if p.Material == nil || *p.Material >= len(doc.Materials) {
		return defaultModelColor
	}
	pbr := doc.Materials[*p.Material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return defaultModelColor
	}
	f := *pbr.BaseColorFactor
	return color.RGBA{
		R: channel(f[0]),
		G: channel(f[1]),
		B: channel(f[2]),
		A: 0xff,
	}
}

func channel(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 0xff
	}
	return uint8(f*255 + 0.5)
}
