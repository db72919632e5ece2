package camera

import "github.com/go-gl/mathgl/mgl64"

const (
	DefaultFovY = 75.0
	DefaultNear = 0.1
	DefaultFar  = 5000.0
)

// Chase trails a target with a fixed offset. Position is smoothed toward
// target+offset every Follow, while the aim snaps to the target itself.
type Chase struct {
	Position mgl64.Vec3
	LookAt   mgl64.Vec3
	Offset   mgl64.Vec3
	Lerp     float64

	FovY   float64 // degrees
	Near   float64
	Far    float64
	Aspect float64
}

// NewChase returns a camera parked at offset from the origin.
func NewChase(offset mgl64.Vec3, lerp float64) *Chase {
	return &Chase{
		Position: offset,
		Offset:   offset,
		Lerp:     lerp,
		FovY:     DefaultFovY,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Aspect:   1,
	}
}

// Goal returns where the camera wants to be for a target.
func (c *Chase) Goal(target mgl64.Vec3) mgl64.Vec3 {
	return target.Add(c.Offset)
}

// Follow moves the camera one step toward target+offset and aims it at
// target.
func (c *Chase) Follow(target mgl64.Vec3) {
	goal := c.Goal(target)
	c.Position = c.Position.Add(goal.Sub(c.Position).Mul(c.Lerp))
	c.LookAt = target
}

// SetViewport refits the aspect ratio. It reports whether anything changed.
func (c *Chase) SetViewport(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	aspect := float64(width) / float64(height)
	if aspect == c.Aspect {
		return false
	}
	c.Aspect = aspect
	return true
}

// View returns the world-to-camera matrix.
func (c *Chase) View() mgl64.Mat4 {
	eye, center := c.Position, c.LookAt
	if eye.ApproxEqual(center) {
		center = eye.Sub(mgl64.Vec3{0, 0, 1})
	}
	return mgl64.LookAtV(eye, center, mgl64.Vec3{0, 1, 0})
}

// Projection returns the perspective projection matrix.
func (c *Chase) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}
