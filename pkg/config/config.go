package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golangdaddy/supercar/pkg/road"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "supercar.cfg"

// Preset holds the values that differ between the demo variants.
type Preset struct {
	Speed      float64
	LerpFactor float64
	Lanes      int
	Textured   bool
	PropEvery  float64
}

// Presets are the built-in variants.
var Presets = map[string]Preset{
	"classic":  {Speed: 0.25, LerpFactor: 0.1},
	"textured": {Speed: 0.3, LerpFactor: 0.1, Lanes: 3, Textured: true},
	"highway":  {Speed: 0.4, LerpFactor: 0.08, Lanes: 4, Textured: true, PropEvery: 20},
}

// Settings is the resolved configuration for one session.
type Settings struct {
	Variant  string
	LogLevel string

	WindowWidth  int
	WindowHeight int

	Speed        float64
	LateralStep  float64
	LerpFactor   float64
	CameraOffset mgl64.Vec3

	ModelPath    string
	RoadTexture  string
	GrassTexture string
	EngineSound  string
	Volume       float64

	DrawDistance float64

	Layout road.Layout
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("variant", "classic")
	v.SetDefault("logLevel", "info")

	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 600)

	v.SetDefault("lateralStep", 0.15)
	v.SetDefault("camera.offset", []float64{0, 4, 10})

	v.SetDefault("assets.model", "models/supercar.glb")
	v.SetDefault("assets.roadTexture", "textures/road.png")
	v.SetDefault("assets.grassTexture", "textures/grass.png")
	v.SetDefault("assets.engineSound", "sounds/engine.mp3")
	v.SetDefault("audio.volume", 0.5)
	v.SetDefault("render.drawDistance", 300)

	v.SetDefault("road.groundWidth", 500)
	v.SetDefault("road.groundLength", 5000)
	v.SetDefault("road.tileSize", 25)
	v.SetDefault("road.laneWidth", 4)
	v.SetDefault("road.dashEvery", 6)
	v.SetDefault("road.propMargin", 3)
}

// Load reads FileName (JSON) from configDir. A missing file is not an error:
// the defaults of the chosen variant apply. Keys set in the file override
// the variant preset, and command-line flags that were set override both.
// flags may be nil.
func Load(configDir string, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	setDefaults(v)
	if err := bindFlags(v, flags); err != nil {
		return Settings{}, err
	}

	v.SetConfigName(FileName)
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return resolve(v)
}

// Flags registers the command-line flags Load understands.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", ".", "directory holding "+FileName+".json")
	fs.String("variant", "classic", fmt.Sprintf("scene preset, one of %v", Variants()))
	fs.String("log-level", "info", "trace, debug, info, warn or error")
	fs.Float64("speed", 0, "forward speed in units per frame (overrides the preset)")
	return fs
}

var flagKeys = map[string]string{
	"variant":   "variant",
	"log-level": "logLevel",
	"speed":     "speed",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

func resolve(v *viper.Viper) (Settings, error) {
	variant := v.GetString("variant")
	preset, ok := Presets[variant]
	if !ok {
		return Settings{}, fmt.Errorf("unknown variant %q (want one of %v)", variant, Variants())
	}

	offset, err := cast.ToFloat64SliceE(v.Get("camera.offset"))
	if err != nil {
		return Settings{}, fmt.Errorf("camera.offset: %w", err)
	}
	if len(offset) != 3 {
		return Settings{}, fmt.Errorf("camera.offset needs 3 values, got %d", len(offset))
	}

	s := Settings{
		Variant:      variant,
		LogLevel:     v.GetString("logLevel"),
		WindowWidth:  v.GetInt("window.width"),
		WindowHeight: v.GetInt("window.height"),

		Speed:        floatOr(v, "speed", preset.Speed),
		LateralStep:  v.GetFloat64("lateralStep"),
		LerpFactor:   floatOr(v, "lerpFactor", preset.LerpFactor),
		CameraOffset: mgl64.Vec3{offset[0], offset[1], offset[2]},

		ModelPath:    v.GetString("assets.model"),
		RoadTexture:  v.GetString("assets.roadTexture"),
		GrassTexture: v.GetString("assets.grassTexture"),
		EngineSound:  v.GetString("assets.engineSound"),
		Volume:       v.GetFloat64("audio.volume"),

		DrawDistance: v.GetFloat64("render.drawDistance"),

		Layout: road.Layout{
			GroundWidth:  v.GetFloat64("road.groundWidth"),
			GroundLength: v.GetFloat64("road.groundLength"),
			TileSize:     v.GetFloat64("road.tileSize"),
			Lanes:        intOr(v, "road.lanes", preset.Lanes),
			LaneWidth:    v.GetFloat64("road.laneWidth"),
			DashEvery:    v.GetFloat64("road.dashEvery"),
			Textured:     boolOr(v, "road.textured", preset.Textured),
			PropEvery:    floatOr(v, "road.propEvery", preset.PropEvery),
			PropMargin:   v.GetFloat64("road.propMargin"),
		},
	}

	if s.LerpFactor <= 0 || s.LerpFactor > 1 {
		return Settings{}, fmt.Errorf("lerpFactor must be in (0, 1], got %v", s.LerpFactor)
	}
	if s.Speed < 0 || s.LateralStep < 0 {
		return Settings{}, fmt.Errorf("speed and lateralStep must not be negative")
	}
	return s, nil
}

func floatOr(v *viper.Viper, key string, fallback float64) float64 {
	if v.IsSet(key) {
		return v.GetFloat64(key)
	}
	return fallback
}

func intOr(v *viper.Viper, key string, fallback int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return fallback
}

func boolOr(v *viper.Viper, key string, fallback bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return fallback
}

// Variants lists the preset names in order.
func Variants() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
