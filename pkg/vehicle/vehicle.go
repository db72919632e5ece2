package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golangdaddy/supercar/pkg/scene"
)

// Vehicle is anything the update loop can steer.
type Vehicle interface {
	Position() mgl64.Vec3
	Translate(dx, dz float64)
}

// Car is the player's car. Its height is fixed when the car is created and
// only the X and Z axes ever move.
type Car struct {
	node *scene.Node
	y    float64
}

// NewCar wraps a scene node. The node's current height becomes the car's
// fixed height.
func NewCar(node *scene.Node) *Car {
	return &Car{
		node: node,
		y:    node.Position.Y(),
	}
}

// Node returns the scene node the car moves.
func (c *Car) Node() *scene.Node {
	return c.node
}

// Position returns the car's world position.
func (c *Car) Position() mgl64.Vec3 {
	return c.node.Position
}

// Translate moves the car in the ground plane.
func (c *Car) Translate(dx, dz float64) {
	p := c.node.Position
	c.node.Position = mgl64.Vec3{p.X() + dx, c.y, p.Z() + dz}
}

// Slot holds a car that may not be ready yet, while its model is still
// loading.
type Slot struct {
	car   *Car
	ready bool
}

// Fill stores the car and marks the slot ready. A filled slot keeps its
// first car.
func (s *Slot) Fill(c *Car) bool {
	if s.ready || c == nil {
		return false
	}
	s.car = c
	s.ready = true
	return true
}

// Get returns the car and whether it is ready.
func (s *Slot) Get() (*Car, bool) {
	return s.car, s.ready
}
