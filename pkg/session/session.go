package session

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golangdaddy/supercar/pkg/assets"
	"github.com/golangdaddy/supercar/pkg/camera"
	"github.com/golangdaddy/supercar/pkg/input"
	"github.com/golangdaddy/supercar/pkg/scene"
	"github.com/golangdaddy/supercar/pkg/sound"
	"github.com/golangdaddy/supercar/pkg/vehicle"
	"github.com/rs/zerolog"
)

// Params are fixed for the whole session.
type Params struct {
	Speed        float64 // forward distance per frame
	LateralStep  float64 // sideways distance per frame
	LerpFactor   float64 // camera smoothing per frame
	CameraOffset mgl64.Vec3
}

// DefaultParams matches the classic variant.
func DefaultParams() Params {
	return Params{
		Speed:        0.25,
		LateralStep:  0.15,
		LerpFactor:   0.1,
		CameraOffset: mgl64.Vec3{0, 4, 10},
	}
}

// Engine is the part of the audio controller the loop drives.
type Engine interface {
	Start()
	Started() bool
	SetPlaybackRate(rate float64)
}

// ScoreSink displays the score. It is optional.
type ScoreSink interface {
	SetScore(score int)
}

// CarSource delivers the car once its model has loaded (or failed to).
type CarSource interface {
	Poll() (assets.Result, bool)
}

// Session owns every piece of mutable game state and advances it one frame
// per Update. It is not safe for concurrent use; the game goroutine owns it.
type Session struct {
	params Params
	scene  *scene.Scene
	input  *input.State
	camera *camera.Chase
	engine Engine
	sink   ScoreSink

	car     vehicle.Slot
	pending CarSource
	outcome assets.Outcome

	score  int
	frames uint64
	logger zerolog.Logger
}

// New creates a session. engine may be nil.
func New(p Params, sc *scene.Scene, in *input.State, engine Engine, logger zerolog.Logger) *Session {
	if in == nil {
		in = input.NewState(nil)
	}
	return &Session{
		params: p,
		scene:  sc,
		input:  in,
		camera: camera.NewChase(p.CameraOffset, p.LerpFactor),
		engine: engine,
		logger: logger,
	}
}

// Await registers the pending car load. Update polls it until it delivers.
func (s *Session) Await(src CarSource) {
	s.pending = src
}

// AttachScore sets the score display. Nil detaches it.
func (s *Session) AttachScore(sink ScoreSink) {
	s.sink = sink
}

// HandleInput feeds one tick of key edges into the input state. A click
// starts the engine sound; the engine ignores every click after the first.
func (s *Session) HandleInput(e input.Edges, clicked bool) {
	s.input.Apply(e)
	if clicked && s.engine != nil {
		s.engine.Start()
	}
}

// Update advances one frame.
func (s *Session) Update() {
	s.frames++

	if car, ok := s.readyCar(); ok {
		s.drive(car)
		s.camera.Follow(car.Position())
		if s.engine != nil && s.engine.Started() {
			s.engine.SetPlaybackRate(sound.RateForSpeed(s.params.Speed))
		}
	}

	if s.sink != nil {
		s.sink.SetScore(s.score)
	}
}

func (s *Session) readyCar() (*vehicle.Car, bool) {
	if car, ok := s.car.Get(); ok {
		return car, true
	}
	if s.pending == nil {
		return nil, false
	}
	res, ok := s.pending.Poll()
	if !ok || res.Node == nil {
		return nil, false
	}

	car := vehicle.NewCar(res.Node)
	s.car.Fill(car)
	s.outcome = res.Outcome
	s.pending = nil
	if s.scene != nil {
		s.scene.Add(res.Node)
	}
	s.logger.Info().
		Str("outcome", res.Outcome.String()).
		Uint64("frame", s.frames).
		Msg("car ready")
	return car, true
}

func (s *Session) drive(car vehicle.Vehicle) {
	var dx, dz float64
	if s.input.Forward() {
		dz -= s.params.Speed
		s.score++
	}
	if s.input.Left() {
		dx -= s.params.LateralStep
	}
	if s.input.Right() {
		dx += s.params.LateralStep
	}
	if dx != 0 || dz != 0 {
		car.Translate(dx, dz)
	}
}

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Frames returns how many updates have run.
func (s *Session) Frames() uint64 { return s.frames }

// Car returns the car once it is ready.
func (s *Session) Car() (*vehicle.Car, bool) { return s.car.Get() }

// Outcome reports how the car was obtained. Only meaningful once Car is ready.
func (s *Session) Outcome() assets.Outcome { return s.outcome }

// Input returns the session's input state.
func (s *Session) Input() *input.State { return s.input }

// Camera returns the chase camera.
func (s *Session) Camera() *camera.Chase { return s.camera }

// Scene returns the scene graph.
func (s *Session) Scene() *scene.Scene { return s.scene }

// Params returns the session parameters.
func (s *Session) Params() Params { return s.params }
