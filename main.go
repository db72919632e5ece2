package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/golangdaddy/supercar/pkg/assets"
	"github.com/golangdaddy/supercar/pkg/config"
	"github.com/golangdaddy/supercar/pkg/game"
	"github.com/golangdaddy/supercar/pkg/input"
	"github.com/golangdaddy/supercar/pkg/logging"
	"github.com/golangdaddy/supercar/pkg/models/car"
	"github.com/golangdaddy/supercar/pkg/render"
	"github.com/golangdaddy/supercar/pkg/road"
	"github.com/golangdaddy/supercar/pkg/scene"
	"github.com/golangdaddy/supercar/pkg/session"
	"github.com/golangdaddy/supercar/pkg/sound"
	"github.com/golangdaddy/supercar/pkg/sound/ebitensound"
	"github.com/golangdaddy/supercar/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	flags := config.Flags("supercar")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	dir, _ := flags.GetString("config")
	settings, err := config.Load(dir, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, settings.LogLevel)
	if err := run(settings, logger); err != nil {
		logger.Fatal().Err(err).Msg("game stopped")
	}
}

func run(settings config.Settings, logger zerolog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sc := scene.New()
	world := road.Build(sc, settings.Layout)
	logger.Info().
		Str("variant", settings.Variant).
		Int("lanes", settings.Layout.Lanes).
		Int("props", len(world.Props)).
		Float64("speed", settings.Speed).
		Msg("world built")

	// The model loads in the background; the session drives whatever
	// arrives, model or fallback box
	pending := assets.NewLoader(nil, logger).Load(ctx, car.NewCar("supercar", settings.ModelPath))

	engine := sound.NewController(ebitensound.Open(settings.EngineSound), settings.Volume, logger)

	sess := session.New(session.Params{
		Speed:        settings.Speed,
		LateralStep:  settings.LateralStep,
		LerpFactor:   settings.LerpFactor,
		CameraOffset: settings.CameraOffset,
	}, sc, input.NewState(nil), engine, logger)
	sess.Await(pending)

	board := ui.NewScoreBoard()
	sess.AttachScore(board)
	prompt := ui.NewStartPrompt(engine.Started, func() bool {
		_, ready := sess.Car()
		return !ready
	})

	r := render.New(logger)
	r.SetDrawDistance(settings.DrawDistance)
	if settings.Layout.Textured {
		r.SetTexture(road.TextureRoad, render.LoadTexture(settings.RoadTexture, render.AsphaltFallback, logger))
		r.SetTexture(road.TextureGrass, render.LoadTexture(settings.GrassTexture, render.GrassFallback, logger))
	}

	ebiten.SetWindowSize(settings.WindowWidth, settings.WindowHeight)
	ebiten.SetWindowTitle("Supercar")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(game.NewGame(sess, r, logger, board, prompt))
}
