package car

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box describes the stand-in shape used when the model cannot be loaded.
type Box struct {
	Width  float64    `json:"width" mapstructure:"width"`
	Height float64    `json:"height" mapstructure:"height"`
	Depth  float64    `json:"depth" mapstructure:"depth"`
	Color  color.RGBA `json:"-" mapstructure:"-"`
}

// Car describes how the player's car is loaded and placed.
type Car struct {
	Name      string     `json:"name"`
	ModelPath string     `json:"model_path"` // .glb or .gltf
	Scale     float64    `json:"scale"`
	Yaw       float64    `json:"yaw"` // radians; π faces the model away from the camera
	Start     mgl64.Vec3 `json:"start"`
	Fallback  Box        `json:"fallback"`
}

// NewCar creates a car description with the default placement: scale 0.8,
// turned 180° and resting at (0, 0.3, 0), with a red 1.8 x 0.6 x 3.5 box as
// its fallback.
func NewCar(name, modelPath string) *Car {
	return &Car{
		Name:      name,
		ModelPath: modelPath,
		Scale:     0.8,
		Yaw:       math.Pi,
		Start:     mgl64.Vec3{0, 0.3, 0},
		Fallback: Box{
			Width:  1.8,
			Height: 0.6,
			Depth:  3.5,
			Color:  color.RGBA{0xff, 0x00, 0x00, 0xff},
		},
	}
}
