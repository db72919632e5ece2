package assets

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golangdaddy/supercar/pkg/models/car"
	"github.com/golangdaddy/supercar/pkg/scene"
	"github.com/rs/zerolog"
)

// Outcome says which way a model load went.
type Outcome int

const (
	Loaded Outcome = iota
	Fallback
)

func (o Outcome) String() string {
	if o == Loaded {
		return "loaded"
	}
	return "fallback"
}

// Result is the single outcome of a model load. Node is always usable.
type Result struct {
	Outcome Outcome
	Node    *scene.Node
	Err     error // why the fallback was used
}

// Decoder turns a model file into meshes in model space.
type Decoder func(path string) ([]*scene.Mesh, error)

// Loader loads the car model in the background.
type Loader struct {
	decode Decoder
	logger zerolog.Logger
}

// NewLoader returns a loader that decodes glTF files. A nil decoder means
// DecodeGLTF.
func NewLoader(decode Decoder, logger zerolog.Logger) *Loader {
	if decode == nil {
		decode = DecodeGLTF
	}
	return &Loader{
		decode: decode,
		logger: logger,
	}
}

// Pending is a load in flight.
type Pending struct {
	ch     chan Result
	result Result
	done   bool
}

// Load starts loading desc's model. Exactly one result is delivered: the
// model, or the fallback box if anything goes wrong. Cancelling ctx only
// drops the delivery.
func (l *Loader) Load(ctx context.Context, desc *car.Car) *Pending {
	p := &Pending{ch: make(chan Result, 1)}
	go func() {
		res := l.load(desc)
		select {
		case p.ch <- res:
		case <-ctx.Done():
		}
	}()
	return p
}

func (l *Loader) load(desc *car.Car) Result {
	meshes, err := l.decode(desc.ModelPath)
	if err == nil && len(meshes) == 0 {
		err = fmt.Errorf("model %s has no triangle meshes", desc.ModelPath)
	}
	if err != nil {
		l.logger.Warn().Err(err).Str("path", desc.ModelPath).Msg("model load failed, using box car")
		return Result{Outcome: Fallback, Node: FallbackNode(desc), Err: err}
	}

	node := scene.NewNode(desc.Name, meshes...)
	node.Position = desc.Start
	node.Scale = mgl64.Vec3{desc.Scale, desc.Scale, desc.Scale}
	node.Yaw = desc.Yaw
	node.CastShadows()

	l.logger.Info().Str("path", desc.ModelPath).Int("meshes", len(meshes)).Msg("car model loaded")
	return Result{Outcome: Loaded, Node: node}
}

// FallbackNode builds the box car for desc.
func FallbackNode(desc *car.Car) *scene.Node {
	b := desc.Fallback
	mesh := scene.NewMesh("box", scene.Box(b.Width, b.Height, b.Depth), b.Color, scene.ShadowCaster)
	node := scene.NewNode(desc.Name, mesh)
	node.Position = desc.Start
	return node
}

// Poll returns the result if it has arrived. It never blocks.
func (p *Pending) Poll() (Result, bool) {
	if p.done {
		return p.result, true
	}
	select {
	case res := <-p.ch:
		p.result, p.done = res, true
		return res, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the result arrives or ctx ends.
func (p *Pending) Wait(ctx context.Context) (Result, error) {
	if p.done {
		return p.result, nil
	}
	select {
	case res := <-p.ch:
		p.result, p.done = res, true
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
