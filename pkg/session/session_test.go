package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golangdaddy/supercar/pkg/assets"
	"github.com/golangdaddy/supercar/pkg/input"
	"github.com/golangdaddy/supercar/pkg/models/car"
	"github.com/golangdaddy/supercar/pkg/scene"
	"github.com/golangdaddy/supercar/pkg/sound"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readySource delivers its result on the first poll.
type readySource struct {
	res   assets.Result
	polls int
}

func (r *readySource) Poll() (assets.Result, bool) {
	r.polls++
	return r.res, true
}

// laterSource delivers after n polls.
type laterSource struct {
	res assets.Result
	n   int
}

func (l *laterSource) Poll() (assets.Result, bool) {
	if l.n > 0 {
		l.n--
		return assets.Result{}, false
	}
	return l.res, true
}

type sink struct {
	writes []int
}

func (s *sink) SetScore(score int) { s.writes = append(s.writes, score) }

type fakeEngine struct {
	started bool
	starts  int
	rates   []float64
}

func (f *fakeEngine) Start() {
	f.starts++
	f.started = true
}

func (f *fakeEngine) Started() bool             { return f.started }
func (f *fakeEngine) SetPlaybackRate(r float64) { f.rates = append(f.rates, r) }

func loadedCar() assets.Result {
	n := assets.FallbackNode(car.NewCar("supercar", ""))
	return assets.Result{Outcome: assets.Loaded, Node: n}
}

func newSession(t *testing.T, engine Engine) *Session {
	t.Helper()
	s := New(DefaultParams(), scene.New(), nil, engine, zerolog.Nop())
	s.Await(&readySource{res: loadedCar()})
	return s
}

func run(s *Session, frames int) {
	for i := 0; i < frames; i++ {
		s.Update()
	}
}

func TestUpdate_ForwardTenFrames(t *testing.T) {
	s := newSession(t, nil)
	s.Input().KeyDown("w")
	run(s, 10)

	c, ok := s.Car()
	require.True(t, ok)
	assert.InDelta(t, -2.5, c.Position().Z(), 1e-9)
	assert.Equal(t, 10, s.Score())
}

func TestUpdate_ScoreOnlyWhileForward(t *testing.T) {
	s := newSession(t, nil)
	out := &sink{}
	s.AttachScore(out)

	s.Input().KeyDown("a")
	run(s, 3)
	s.Input().KeyDown("ArrowUp")
	run(s, 4)
	s.Input().KeyUp("ArrowUp")
	run(s, 2)

	assert.Equal(t, 4, s.Score())
	assert.Equal(t, []int{0, 0, 0, 1, 2, 3, 4, 4, 4}, out.writes)
	for i := 1; i < len(out.writes); i++ {
		assert.GreaterOrEqual(t, out.writes[i], out.writes[i-1])
	}
}

func TestUpdate_HeightNeverChanges(t *testing.T) {
	s := newSession(t, nil)
	keys := []string{"w", "a", "d", "ArrowUp", "ArrowLeft", "ArrowRight"}
	for i := 0; i < 60; i++ {
		k := keys[i%len(keys)]
		if i%4 == 0 {
			s.Input().KeyUp(inputKey(k))
		} else {
			s.Input().KeyDown(inputKey(k))
		}
		s.Update()
		c, _ := s.Car()
		assert.Equal(t, 0.3, c.Position().Y())
	}
}

func TestUpdate_ReleaseAllKeysHalts(t *testing.T) {
	s := newSession(t, nil)
	s.Input().KeyDown("w")
	s.Input().KeyDown("d")
	run(s, 5)
	s.Input().KeyUp("w")
	s.Input().KeyUp("d")

	c, _ := s.Car()
	rest := c.Position()
	score := s.Score()
	run(s, 20)

	assert.Equal(t, rest, c.Position())
	assert.Equal(t, score, s.Score())
}

func TestUpdate_LeftAndRightCancel(t *testing.T) {
	s := newSession(t, nil)
	s.Input().KeyDown("a")
	s.Input().KeyDown("d")
	run(s, 10)

	c, _ := s.Car()
	assert.Equal(t, 0.0, c.Position().X())

	s.Input().KeyUp("d")
	run(s, 2)
	assert.InDelta(t, -0.3, c.Position().X(), 1e-9)
}

func TestUpdate_CameraTrailsCar(t *testing.T) {
	s := newSession(t, nil)
	run(s, 1)
	c, _ := s.Car()
	goal := c.Position().Add(mgl64.Vec3{0, 4, 10})

	prev := goal.Sub(s.Camera().Position).Len()
	for i := 0; i < 30; i++ {
		s.Update()
		d := goal.Sub(s.Camera().Position).Len()
		assert.InDelta(t, prev*0.9, d, 1e-9)
		prev = d
	}
	assert.Equal(t, c.Position(), s.Camera().LookAt)
}

func TestUpdate_EngineRateConstantAfterStart(t *testing.T) {
	engine := &fakeEngine{}
	s := newSession(t, engine)
	s.Input().KeyDown("w")
	run(s, 3)
	assert.Empty(t, engine.rates, "no pitch changes before the engine starts")

	engine.started = true
	run(s, 5)
	require.Len(t, engine.rates, 5)
	for _, r := range engine.rates {
		assert.Equal(t, sound.RateForSpeed(0.25), r)
	}
}

func TestUpdate_NoCarYetStillRuns(t *testing.T) {
	engine := &fakeEngine{started: true}
	s := New(DefaultParams(), scene.New(), nil, engine, zerolog.Nop())
	out := &sink{}
	s.AttachScore(out)
	s.Input().KeyDown("w")

	assert.NotPanics(t, func() { run(s, 5) })
	_, ok := s.Car()
	assert.False(t, ok)
	assert.Zero(t, s.Score())
	assert.Empty(t, engine.rates)
	assert.Equal(t, []int{0, 0, 0, 0, 0}, out.writes)
	assert.Equal(t, uint64(5), s.Frames())
}

func TestUpdate_PendingLoadArrivesLater(t *testing.T) {
	sc := scene.New()
	s := New(DefaultParams(), sc, nil, nil, zerolog.Nop())
	s.Await(&laterSource{res: loadedCar(), n: 3})
	s.Input().KeyDown("w")

	run(s, 3)
	assert.Zero(t, s.Score())
	assert.Empty(t, sc.Root.Children)

	run(s, 1)
	assert.Equal(t, 1, s.Score())
	assert.Len(t, sc.Root.Children, 1)
}

func TestUpdate_PollStopsOnceReady(t *testing.T) {
	src := &readySource{res: loadedCar()}
	s := New(DefaultParams(), scene.New(), nil, nil, zerolog.Nop())
	s.Await(src)
	run(s, 10)

	assert.Equal(t, 1, src.polls)
}

func TestUpdate_FallbackCarDrivesLikeModel(t *testing.T) {
	loader := assets.NewLoader(func(string) ([]*scene.Mesh, error) {
		return nil, errors.New("no such model")
	}, zerolog.Nop())
	pending := loader.Load(context.Background(), car.NewCar("supercar", filepath.Join(t.TempDir(), "missing.glb")))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := pending.Wait(ctx)
	require.NoError(t, err)

	s := New(DefaultParams(), scene.New(), nil, nil, zerolog.Nop())
	s.Await(pending)
	s.Update()

	c, ok := s.Car()
	require.True(t, ok)
	assert.Equal(t, assets.Fallback, s.Outcome())
	assert.Equal(t, mgl64.Vec3{0, 0.3, 0}, c.Position())

	s.Input().KeyDown("w")
	run(s, 10)
	assert.InDelta(t, -2.5, c.Position().Z(), 1e-9)
	assert.Equal(t, 10, s.Score())
}

func inputKey(k string) input.Key { return input.Key(k) }

func TestHandleInput_KeyEdgesDrive(t *testing.T) {
	s := newSession(t, nil)

	s.HandleInput(input.Edges{Pressed: []input.Key{"W", "ArrowRight"}}, false)
	run(s, 2)
	s.HandleInput(input.Edges{Released: []input.Key{"W", "ArrowRight"}}, false)
	run(s, 3)

	car, ok := s.Car()
	require.True(t, ok)
	assert.InDelta(t, -0.5, car.Position().Z(), 1e-9)
	assert.InDelta(t, 0.3, car.Position().X(), 1e-9)
	assert.Equal(t, 2, s.Score())
}

func TestHandleInput_ClickStartsEngine(t *testing.T) {
	engine := &fakeEngine{}
	s := newSession(t, engine)

	s.HandleInput(input.Edges{}, false)
	assert.Zero(t, engine.starts)

	s.HandleInput(input.Edges{}, true)
	s.Update()
	assert.Equal(t, 1, engine.starts)
	require.Len(t, engine.rates, 1)
	assert.InDelta(t, 1.5, engine.rates[0], 1e-9)
}

func TestHandleInput_ClickWithoutEngine(t *testing.T) {
	s := newSession(t, nil)
	assert.NotPanics(t, func() { s.HandleInput(input.Edges{}, true) })
}
