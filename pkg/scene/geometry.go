package scene

import "github.com/go-gl/mathgl/mgl64"

// Quad returns two triangles spanning center±u±v. The front face points
// along u × v.
func Quad(center, u, v mgl64.Vec3) []Triangle {
	a := center.Sub(u).Sub(v)
	b := center.Add(u).Sub(v)
	c := center.Add(u).Add(v)
	d := center.Sub(u).Add(v)
	ua, ub, uc, ud := mgl64.Vec2{0, 1}, mgl64.Vec2{1, 1}, mgl64.Vec2{1, 0}, mgl64.Vec2{0, 0}
	return []Triangle{
		{V: [3]mgl64.Vec3{a, b, c}, UV: [3]mgl64.Vec2{ua, ub, uc}},
		{V: [3]mgl64.Vec3{a, c, d}, UV: [3]mgl64.Vec2{ua, uc, ud}},
	}
}

// Box returns the 12 outward-facing triangles of a box centred on the origin.
func Box(width, height, depth float64) []Triangle {
	hx, hy, hz := width/2, height/2, depth/2
	faces := []struct {
		normal, u, v mgl64.Vec3
	}{
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -hz}, mgl64.Vec3{0, hy, 0}},
		{mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 0, hz}, mgl64.Vec3{0, hy, 0}},
		{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{hx, 0, 0}, mgl64.Vec3{0, 0, -hz}},
		{mgl64.Vec3{0, -1, 0}, mgl64.Vec3{hx, 0, 0}, mgl64.Vec3{0, 0, hz}},
		{mgl64.Vec3{0, 0, 1}, mgl64.Vec3{hx, 0, 0}, mgl64.Vec3{0, hy, 0}},
		{mgl64.Vec3{0, 0, -1}, mgl64.Vec3{-hx, 0, 0}, mgl64.Vec3{0, hy, 0}},
	}
	tris := make([]Triangle, 0, 12)
	for _, f := range faces {
		center := mgl64.Vec3{f.normal.X() * hx, f.normal.Y() * hy, f.normal.Z() * hz}
		tris = append(tris, Quad(center, f.u, f.v)...)
	}
	return tris
}

// PlaneTiles returns an upward-facing plane on y = 0 centred on
// (centerX, centerZ), split into square tiles of the given size. Each tile
// maps the whole texture once.
func PlaneTiles(centerX, centerZ, width, depth, tile float64) []Triangle {
	if tile <= 0 {
		tile = depth
	}
	cols := int(width/tile + 0.5)
	rows := int(depth/tile + 0.5)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	tw, td := width/float64(cols), depth/float64(rows)
	left, near := centerX-width/2, centerZ+depth/2

	tris := make([]Triangle, 0, cols*rows*2)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			center := mgl64.Vec3{left + (float64(c)+0.5)*tw, 0, near - (float64(r)+0.5)*td}
			tris = append(tris, Quad(center, mgl64.Vec3{tw / 2, 0, 0}, mgl64.Vec3{0, 0, -td / 2})...)
		}
	}
	return tris
}
