package game

import (
	"fmt"

	"github.com/golangdaddy/supercar/pkg/input"
	"github.com/golangdaddy/supercar/pkg/render"
	"github.com/golangdaddy/supercar/pkg/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
)

// Overlay is anything drawn on top of the 3D view (score, prompts).
type Overlay interface {
	Draw(screen *ebiten.Image)
}

// Game implements the ebiten.Game interface around a driving session.
// Update feeds keyboard and mouse state into the session and ticks it once;
// Draw renders the scene from the session camera and then the overlays.
type Game struct {
	session  *session.Session
	renderer *render.Renderer
	overlays []Overlay
	logger   zerolog.Logger

	focused bool
	debug   bool
	width   int
	height  int

	pressed  []ebiten.Key
	released []ebiten.Key
	edges    input.Edges
}

// NewGame creates a new game instance
func NewGame(s *session.Session, r *render.Renderer, logger zerolog.Logger, overlays ...Overlay) *Game {
	return &Game{
		session:  s,
		renderer: r,
		overlays: overlays,
		logger:   logger,
		focused:  true,
	}
}

// Update handles one tick: input first, then the session
func (g *Game) Update() error {
	g.pollFocus()

	// The first click unlocks audio; later clicks do nothing
	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	g.session.HandleInput(g.pollKeys(), clicked)

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	g.session.Update()
	return nil
}

// pollFocus releases every key when the window loses focus, since the
// matching key-up events will never arrive
func (g *Game) pollFocus() {
	focused := ebiten.IsFocused()
	if g.focused && !focused {
		g.session.Input().Reset()
		g.logger.Debug().Msg("focus lost, input reset")
	}
	g.focused = focused
}

// pollKeys names this tick's key edges ("W", "ArrowUp", ...). Unbound keys
// are ignored by the input state.
func (g *Game) pollKeys() input.Edges {
	g.pressed = inpututil.AppendJustPressedKeys(g.pressed[:0])
	g.released = inpututil.AppendJustReleasedKeys(g.released[:0])

	g.edges.Pressed = appendKeyNames(g.edges.Pressed[:0], g.pressed)
	g.edges.Released = appendKeyNames(g.edges.Released[:0], g.released)
	return g.edges
}

func appendKeyNames(dst []input.Key, keys []ebiten.Key) []input.Key {
	for _, k := range keys {
		dst = append(dst, input.Key(k.String()))
	}
	return dst
}

// Draw renders the scene and the overlays
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.session.Scene(), g.session.Camera())

	for _, o := range g.overlays {
		o.Draw(screen)
	}

	if g.debug {
		g.drawDebug(screen)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	stats, calls := g.renderer.Stats()
	pos := "loading"
	if car, ok := g.session.Car(); ok {
		p := car.Position()
		pos = fmt.Sprintf("%.2f, %.2f, %.2f", p.X(), p.Y(), p.Z())
	}
	msg := fmt.Sprintf("TPS %.0f  FPS %.0f  speed %.2f\ncar %s (%s)\ntris %d  culled %d  clipped %d  faces %d  draws %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(), g.session.Params().Speed,
		pos, g.session.Outcome(),
		stats.Triangles, stats.Culled, stats.Clipped, stats.Faces, calls)
	ebitenutil.DebugPrintAt(screen, msg, 10, 50)
}

// Layout follows the window size and refits the camera to it
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if g.session.Camera().SetViewport(outsideWidth, outsideHeight) {
			g.logger.Debug().Int("width", outsideWidth).Int("height", outsideHeight).Msg("viewport resized")
		}
	}
	return outsideWidth, outsideHeight
}
