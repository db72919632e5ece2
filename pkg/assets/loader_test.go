package assets

import (
	"context"
	"errors"
	"image/color"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golangdaddy/supercar/pkg/models/car"
	"github.com/golangdaddy/supercar/pkg/scene"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitResult(t *testing.T, p *Pending) Result {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := p.Wait(ctx)
	require.NoError(t, err)
	return res
}

func TestLoad_MissingFileFallsBackToBox(t *testing.T) {
	l := NewLoader(nil, zerolog.Nop())
	desc := car.NewCar("supercar", filepath.Join(t.TempDir(), "missing.glb"))

	res := waitResult(t, l.Load(context.Background(), desc))

	assert.Equal(t, Fallback, res.Outcome)
	require.Error(t, res.Err)
	require.NotNil(t, res.Node)
	assert.Equal(t, mgl64.Vec3{0, 0.3, 0}, res.Node.Position)
	require.Len(t, res.Node.Meshes, 1)

	box := res.Node.Meshes[0]
	assert.Len(t, box.Triangles, 12)
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, box.Color)
	assert.True(t, box.Has(scene.ShadowCaster))
	assert.True(t, box.Has(scene.Drawable))
}

func TestLoad_EmptyModelFallsBack(t *testing.T) {
	l := NewLoader(func(string) ([]*scene.Mesh, error) { return nil, nil }, zerolog.Nop())
	res := waitResult(t, l.Load(context.Background(), car.NewCar("c", "empty.glb")))

	assert.Equal(t, Fallback, res.Outcome)
	assert.Error(t, res.Err)
}

func TestLoad_SuccessAppliesPlacement(t *testing.T) {
	parts := []*scene.Mesh{
		scene.NewMesh("body", scene.Box(1, 1, 1), color.RGBA{}),
		scene.NewMesh("wheel", scene.Box(0.2, 0.2, 0.2), color.RGBA{}),
	}
	l := NewLoader(func(string) ([]*scene.Mesh, error) { return parts, nil }, zerolog.Nop())
	desc := car.NewCar("supercar", "models/supercar.glb")

	res := waitResult(t, l.Load(context.Background(), desc))

	assert.Equal(t, Loaded, res.Outcome)
	assert.NoError(t, res.Err)
	assert.Equal(t, mgl64.Vec3{0, 0.3, 0}, res.Node.Position)
	assert.Equal(t, mgl64.Vec3{0.8, 0.8, 0.8}, res.Node.Scale)
	assert.InDelta(t, 3.14159265, res.Node.Yaw, 1e-6)
	for _, m := range parts {
		assert.True(t, m.Has(scene.ShadowCaster), m.Name)
	}
}

func TestPending_PollIsNonBlockingAndSticky(t *testing.T) {
	release := make(chan struct{})
	l := NewLoader(func(string) ([]*scene.Mesh, error) {
		<-release
		return nil, errors.New("boom")
	}, zerolog.Nop())
	p := l.Load(context.Background(), car.NewCar("c", "x.glb"))

	_, ok := p.Poll()
	assert.False(t, ok)

	close(release)
	first := waitResult(t, p)
	second, ok := p.Poll()
	assert.True(t, ok)
	assert.Same(t, first.Node, second.Node)
}

func TestPending_WaitHonoursContext(t *testing.T) {
	l := NewLoader(func(string) ([]*scene.Mesh, error) {
		select {}
	}, zerolog.Nop())
	p := l.Load(context.Background(), car.NewCar("c", "x.glb"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "fallback", Fallback.String())
}

func TestDecodeGLTF_SingleTriangle(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0), Translation: [3]float64{0, 2, 0}}}
	doc.Scenes[0].Nodes = []int{0}

	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))

	meshes, err := DecodeGLTF(path)
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	require.Len(t, meshes[0].Triangles, 1)

	tri := meshes[0].Triangles[0]
	assert.True(t, tri.V[1].ApproxEqual(mgl64.Vec3{1, 2, 0}), "got %v", tri.V[1])
	assert.Equal(t, defaultModelColor, meshes[0].Color)
}

func TestChannel(t *testing.T) {
	assert.Equal(t, uint8(0), channel(-1))
	assert.Equal(t, uint8(255), channel(2))
	assert.Equal(t, uint8(128), channel(0.5))
}
