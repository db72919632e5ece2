package vehicle

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golangdaddy/supercar/pkg/scene"
	"github.com/stretchr/testify/assert"
)

func newCar() *Car {
	n := scene.NewNode("car")
	n.Position = mgl64.Vec3{0, 0.3, 0}
	return NewCar(n)
}

func TestCar_TranslateKeepsHeight(t *testing.T) {
	c := newCar()
	c.Translate(-0.15, -0.25)
	c.Translate(0.3, -0.25)

	p := c.Position()
	assert.InDelta(t, 0.15, p.X(), 1e-9)
	assert.Equal(t, 0.3, p.Y())
	assert.InDelta(t, -0.5, p.Z(), 1e-9)
	assert.Equal(t, p, c.Node().Position)
}

func TestCar_HeightSurvivesExternalEdits(t *testing.T) {
	c := newCar()
	c.Node().Position = mgl64.Vec3{1, 5, 1}
	c.Translate(0, 0)

	assert.Equal(t, 0.3, c.Position().Y())
}

func TestSlot(t *testing.T) {
	var s Slot
	car, ok := s.Get()
	assert.Nil(t, car)
	assert.False(t, ok)
	assert.False(t, s.Fill(nil))

	first, second := newCar(), newCar()
	assert.True(t, s.Fill(first))
	assert.False(t, s.Fill(second))

	car, ok = s.Get()
	assert.True(t, ok)
	assert.Same(t, first, car)
}
